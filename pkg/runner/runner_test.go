package runner

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBaseEncode(t *testing.T) {
	buf := &bytes.Buffer{}
	b := &Base{Out: buf}
	assert.False(t, b.Structured())

	b.Format = "json"
	assert.True(t, b.Structured())
	require.NoError(t, b.Encode([]string{"sea"}))
	assert.JSONEq(t, `["sea"]`, buf.String())
	assert.Equal(t, buf, b.Printer().Out)
}
