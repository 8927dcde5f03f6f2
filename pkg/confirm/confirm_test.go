package confirm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGuardNeedsArmFirst(t *testing.T) {
	var g Guard
	assert.False(t, g.Confirmed("dream:1"))
	assert.ErrorIs(t, g.Commit("account"), ErrNotArmed)
}

func TestGuardSameTarget(t *testing.T) {
	var g Guard
	g.Arm("dream:1")
	assert.True(t, g.Armed("dream:1"))
	assert.False(t, g.Armed("dream:2"))
	assert.True(t, g.Confirmed("dream:1"))
	assert.False(t, g.Confirmed("dream:1"), "arming is consumed")
}

func TestGuardOtherTargetDisarms(t *testing.T) {
	var g Guard
	g.Arm("dream:1")
	assert.False(t, g.Confirmed("dream:2"))
	assert.False(t, g.Confirmed("dream:1"))
}

func TestGuardReset(t *testing.T) {
	var g Guard
	g.Arm("account")
	g.Reset()
	assert.False(t, g.Armed("account"))
	assert.Error(t, g.Commit("account"))

	g.Arm("account")
	assert.NoError(t, g.Commit("account"))
}
