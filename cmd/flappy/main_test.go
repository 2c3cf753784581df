package main

import (
	"testing"
	"time"

	"github.com/vovakirdan/tui-flappy/internal/config"
)

func TestRuntimeConfig(t *testing.T) {
	cfg := config.DefaultFlappyConfig()
	cfg.Loop.TickInterval = 33 * time.Millisecond

	rt := runtimeConfig(cfg, 120, 40)
	if rt.ScreenW != 120 || rt.ScreenH != 40 {
		t.Errorf("size = %dx%d, expected 120x40", rt.ScreenW, rt.ScreenH)
	}
	if rt.TickInterval != 33*time.Millisecond {
		t.Errorf("TickInterval = %v, expected 33ms", rt.TickInterval)
	}

	// Unknown terminal size falls back to 80x24
	rt = runtimeConfig(config.DefaultFlappyConfig(), 0, 0)
	if rt.ScreenW != 80 || rt.ScreenH != 24 {
		t.Errorf("fallback size = %dx%d, expected 80x24", rt.ScreenW, rt.ScreenH)
	}
	if rt.TickInterval != 20*time.Millisecond {
		t.Errorf("fallback TickInterval = %v, expected 20ms", rt.TickInterval)
	}
}
