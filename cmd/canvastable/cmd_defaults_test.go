package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rudderlabs/rudder-go-kit/config"
)

func TestRunDefaultsCore(t *testing.T) {
	var buf bytes.Buffer
	if err := runDefaultsCore(testEnv(t), &buf, "yaml"); err != nil {
		t.Fatalf("runDefaultsCore: %v", err)
	}
	for _, want := range []string{"devicePixelRatio: 2", "minCharWidth: 3", "fontWeight: bold"} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("output missing %q:\n%s", want, buf.String())
		}
	}

	buf.Reset()
	if err := runDefaultsCore(testEnv(t), &buf, "json"); err != nil {
		t.Fatalf("runDefaultsCore: %v", err)
	}
	if !strings.Contains(buf.String(), `"devicePixelRatio": 2`) {
		t.Errorf("unexpected JSON:\n%s", buf.String())
	}
}

func TestBaseSettingsFromEnv(t *testing.T) {
	t.Setenv("CANVASTABLE_DEVICE_PIXEL_RATIO", "1.5")
	t.Setenv("CANVASTABLE_MIN_CHAR_WIDTH", "5")
	t.Setenv("CANVASTABLE_FIT", "true")
	t.Setenv("CANVASTABLE_BACKGROUND", "#000000")

	s := baseSettings(config.New(config.WithEnvPrefix("CANVASTABLE")))
	if s.DevicePixelRatio != 1.5 {
		t.Errorf("DevicePixelRatio = %v, want 1.5", s.DevicePixelRatio)
	}
	if s.MinCharWidth != 5 {
		t.Errorf("MinCharWidth = %v, want 5", s.MinCharWidth)
	}
	if !s.Fit {
		t.Error("Fit not read from the environment")
	}
	if s.Background != "#000000" {
		t.Errorf("Background = %q", s.Background)
	}
	if s.HideHeader || s.Fader.Size != 40 {
		t.Errorf("unset variables must keep defaults, got %+v %+v", s.HideHeader, s.Fader)
	}
}
