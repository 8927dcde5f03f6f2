package key

import (
	"bytes"
	"context"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tableflip.dev/dreamlog/pkg/runner"
)

func TestKey(t *testing.T) {
	color.NoColor = true
	buf := &bytes.Buffer{}
	k := &Key{Base: runner.Base{Out: buf}}
	require.NoError(t, k.Do(context.Background()))

	out := buf.String()
	assert.Contains(t, out, "vivid or lucid")
	assert.Contains(t, out, "Peaceful")
	assert.Contains(t, out, "●●●●●  Lucid")
	assert.Contains(t, out, "Deep")
}
