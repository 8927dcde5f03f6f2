package ui

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"tableflip.dev/dreamlog/pkg/api/apitest"
	"tableflip.dev/dreamlog/pkg/app"
	"tableflip.dev/dreamlog/pkg/runner"
	"tableflip.dev/dreamlog/pkg/store"
)

func TestRefusesWithoutTerminal(t *testing.T) {
	srv := apitest.NewServer(t)
	svc := app.New(store.NewMemory(), srv.URL, nil)
	u := &UI{Base: runner.Base{Service: svc}, Interactive: func() bool { return false }}
	assert.ErrorIs(t, u.Do(context.Background()), ErrNoTerminal)
}
