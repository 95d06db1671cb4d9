package xpgtype

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONScan(t *testing.T) {
	var j JSON[map[string]string]
	require.NoError(t, j.Scan([]byte(`{"has_team":"true"}`)))
	assert.Equal(t, "true", j.V["has_team"])

	require.NoError(t, j.Scan(`{"id_teams":"3"}`))
	assert.Equal(t, map[string]string{"id_teams": "3"}, j.V)

	require.NoError(t, j.Scan(nil))
	assert.Nil(t, j.V)

	assert.Error(t, j.Scan(42))
}

func TestJSONValue(t *testing.T) {
	v, err := NewJSON(map[string]string{"a": "b"}).Value()
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":"b"}`, v.(string))
}

func TestJSONScan_KeepsPreviousOnError(t *testing.T) {
	j := NewJSON(map[string]string{"has_team": "true"})
	assert.Error(t, j.Scan(`{"id_teams":`))
	assert.Equal(t, map[string]string{"has_team": "true"}, j.V)
}
