package detector_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/margin/internal/adapters/detector"
)

func TestDetectEnvironment_CI(t *testing.T) {
	for _, v := range []string{"true", "1"} {
		t.Run("CI="+v, func(t *testing.T) {
			t.Setenv("CI", v)
			assert.Equal(t, detector.ModeLinear, detector.DetectEnvironment())
		})
	}
}

func TestResolveMode(t *testing.T) {
	tests := []struct {
		name         string
		autoDetected detector.OutputMode
		userFlag     string
		expected     detector.OutputMode
	}{
		{"auto keeps detection", detector.ModeTUI, "auto", detector.ModeTUI},
		{"empty keeps detection", detector.ModeLinear, "", detector.ModeLinear},
		{"tui overrides", detector.ModeLinear, "tui", detector.ModeTUI},
		{"linear overrides", detector.ModeTUI, "linear", detector.ModeLinear},
		{"ci is alias for linear", detector.ModeTUI, "ci", detector.ModeLinear},
		{"unknown keeps detection", detector.ModeTUI, "fancy", detector.ModeTUI},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, detector.ResolveMode(tt.autoDetected, tt.userFlag))
		})
	}
}

func TestOutputMode_String(t *testing.T) {
	assert.Equal(t, "auto", detector.ModeAuto.String())
	assert.Equal(t, "tui", detector.ModeTUI.String())
	assert.Equal(t, "linear", detector.ModeLinear.String())
}
