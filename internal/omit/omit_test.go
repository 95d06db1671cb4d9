package omit

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type profileForm struct {
	Name  Omit[string] `json:"nom,omitzero"`
	Phone Omit[string] `json:"telephone,omitzero"`
}

func TestOmitSkipsUnsetFields(t *testing.T) {
	data, err := json.Marshal(profileForm{Name: New("Amine")})
	require.NoError(t, err)
	assert.JSONEq(t, `{"nom":"Amine"}`, string(data))
}

func TestOmitUnmarshalMarksPresent(t *testing.T) {
	var form profileForm
	require.NoError(t, json.Unmarshal([]byte(`{"telephone":"0600000000"}`), &form))
	assert.False(t, form.Name.OK)
	assert.True(t, form.Phone.OK)
	assert.Equal(t, "0600000000", form.Phone.Value)
	assert.Equal(t, "fallback", form.Name.Or("fallback"))
}
