package xquery

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	q := url.Values{
		"page":   {"3"},
		"bad":    {"x"},
		"neg":    {"-2"},
		"search": {"  court  "},
		"past":   {"on"},
	}

	assert.Equal(t, 3, ParseInt(q, "page", 1))
	assert.Equal(t, 5, ParseInt(q, "bad", 5))
	assert.Equal(t, 1, ParsePage(q, "neg"))
	assert.Equal(t, 1, ParsePage(q, "missing"))
	assert.Equal(t, "court", ParseString(q, "search", ""))
	assert.Equal(t, "all", ParseString(q, "status", "all"))
	assert.True(t, ParseBool(q, "past", false))
}
