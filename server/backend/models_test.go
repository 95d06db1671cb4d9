package backend

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIDUnmarshal(t *testing.T) {
	var v struct {
		A ID `json:"a"`
		B ID `json:"b"`
		C ID `json:"c"`
		D ID `json:"d"`
		E ID `json:"e"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"a": 7, "b": "7", "c": null, "d": {"id_player": 9}, "e": 7.0}`), &v))
	assert.Equal(t, ID("7"), v.A)
	assert.Equal(t, ID("7"), v.B)
	assert.Equal(t, ID(""), v.C)
	assert.Equal(t, ID("9"), v.D)
	assert.Equal(t, ID("7"), v.E)
}

func TestIDMarshal(t *testing.T) {
	data, err := json.Marshal(map[string]ID{"n": "42", "s": "abc"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"n": 42, "s": "abc"}`, string(data))
}

func TestNumbersTolerateStrings(t *testing.T) {
	var p Player
	require.NoError(t, json.Unmarshal([]byte(`{"id_player": "3", "rating": "4.5", "misses": "2", "total_invites": null}`), &p))
	assert.Equal(t, Float(4.5), p.Rating)
	assert.Equal(t, Int(2), p.Misses)
	assert.Equal(t, Int(0), p.TotalInvites)
}

func TestProfileUpdateOmitsUnsetFields(t *testing.T) {
	var update ProfileUpdate
	update.Phone.Value, update.Phone.OK = "0611223344", true
	update.Age.Value, update.Age.OK = 30, true

	data, err := json.Marshal(update)
	require.NoError(t, err)
	assert.JSONEq(t, `{"telephone": "0611223344", "age": 30}`, string(data))
}

func TestIDValid(t *testing.T) {
	assert.True(t, ID("42").Valid())
	assert.True(t, ID("a1_b-2").Valid())
	assert.False(t, ID("").Valid())
	assert.False(t, ID("..").Valid())
	assert.False(t, ID("7/../1").Valid())
	assert.False(t, ID("a.b").Valid())
}
