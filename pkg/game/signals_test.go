package game

import (
	"testing"

	"github.com/decker502/dragonsweeper/pkg/engine"
)

func TestSignalForEvent(t *testing.T) {
	tests := []struct {
		ev   engine.Event
		want Signal
		ok   bool
	}{
		{engine.EventRejected, "", false},
		{engine.EventCleared, SignalClear, true},
		{engine.EventWarned, SignalWarning, true},
		{engine.EventDetonated, SignalDefeat, true},
		{engine.EventVictorious, SignalVictory, true},
		{engine.EventMarked, SignalMark, true},
		{engine.EventUnmarked, SignalUnmark, true},
	}
	for _, tt := range tests {
		got, ok := SignalForEvent(tt.ev)
		if got != tt.want || ok != tt.ok {
			t.Errorf("SignalForEvent(%s) = %q, %v; want %q, %v", tt.ev, got, ok, tt.want, tt.ok)
		}
	}
}

func TestFlagReadout(t *testing.T) {
	tests := []struct {
		flagged, total int
		want           string
	}{
		{0, 20, "0 eggs marked out of 20 live ones"},
		{1, 20, "1 egg marked out of 20 live ones"},
		{2, 1, "2 eggs marked out of 1 live ones"},
	}
	for _, tt := range tests {
		if got := FlagReadout(tt.flagged, tt.total); got != tt.want {
			t.Errorf("FlagReadout(%d, %d) = %q, want %q", tt.flagged, tt.total, got, tt.want)
		}
	}
}
