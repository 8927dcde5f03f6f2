package prompt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBool(t *testing.T) {
	for _, in := range []string{"y", "Yes", "true", "1"} {
		v, err := ParseBool(in)
		require.NoError(t, err, in)
		assert.True(t, v, in)
	}
	for _, in := range []string{"n", "No", "false", "0"} {
		v, err := ParseBool(in)
		require.NoError(t, err, in)
		assert.False(t, v, in)
	}
	_, err := ParseBool("maybe")
	assert.Error(t, err)
}

func TestScripted(t *testing.T) {
	s := &Scripted{Answers: []string{"", "hunter2", "y", "forest"}}

	name, err := s.Text("Username", "dreamer")
	require.NoError(t, err)
	assert.Equal(t, "dreamer", name)

	pw, err := s.Secret("Password")
	require.NoError(t, err)
	assert.Equal(t, "hunter2", pw)

	ok, err := s.Confirm("Sure")
	require.NoError(t, err)
	assert.True(t, ok)

	i, err := s.Select("Theme", []string{"amber", "forest"})
	require.NoError(t, err)
	assert.Equal(t, 1, i)

	_, err = s.Confirm("Again")
	assert.Error(t, err)
}
