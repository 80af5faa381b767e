package app_test

import (
	"testing"

	"github.com/dkeye/disagree/internal/app"
	"github.com/dkeye/disagree/internal/core"
	"github.com/stretchr/testify/assert"
)

func TestSimplePolicy(t *testing.T) {
	p := app.SimplePolicy{}
	assert.Equal(t, app.DropFrame, p.OnBackPressure("c", core.Event{Type: core.EventStatsUpdate}))
	assert.Equal(t, app.KickMember, p.OnBackPressure("c", core.Event{Type: core.EventSignal}))
	assert.Equal(t, app.KickMember, p.OnBackPressure("c", core.RedirectHome()))
}
