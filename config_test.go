package peoplecount

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/swdee/go-peoplecount/tracker"
)

func TestDefaultConfig(t *testing.T) {

	cfg := DefaultConfig()

	require.NoError(t, cfg.Validate())
	assert.Equal(t, 15, cfg.TargetClass())

	p := cfg.ScheduleParams()
	assert.Equal(t, 200, p.SkipFrames)
	assert.Equal(t, float32(0.3), p.Confidence)
	assert.Equal(t, 15, p.TargetClass)

	assert.Equal(t, tracker.DefaultConfig(), cfg.TrackerConfig())
}

func TestConfigValidate(t *testing.T) {

	tests := []struct {
		name   string
		field  string
		modify func(c *Config)
	}{
		{"zero skip frames", "SkipFrames", func(c *Config) { c.SkipFrames = 0 }},
		{"negative skip frames", "SkipFrames", func(c *Config) { c.SkipFrames = -30 }},
		{"confidence too high", "Confidence", func(c *Config) { c.Confidence = 1.1 }},
		{"negative confidence", "Confidence", func(c *Config) { c.Confidence = -0.1 }},
		{"no workers", "Workers", func(c *Config) { c.Workers = 0 }},
		{"negative width", "ResizeWidth", func(c *Config) { c.ResizeWidth = -1 }},
		{"no labels", "Labels", func(c *Config) { c.Labels = nil }},
		{"unknown target", "TargetLabel", func(c *Config) { c.TargetLabel = "unicorn" }},
		{"unknown tracker", "Tracker", func(c *Config) { c.Tracker = "dlib" }},
		{"negative max disappeared", "IdentityTracker", func(c *Config) { c.MaxDisappeared = -1 }},
		{"negative max distance", "IdentityTracker", func(c *Config) { c.MaxDistance = -5 }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {

			cfg := DefaultConfig()
			tc.modify(&cfg)

			err := cfg.Validate()
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrConfiguration)

			var cfgErr *ConfigError
			require.True(t, errors.As(err, &cfgErr))
			assert.Equal(t, tc.field, cfgErr.Field)
		})
	}
}

func TestConfigErrorWrapsCause(t *testing.T) {

	cfg := DefaultConfig()
	cfg.MaxDistance = -1

	err := cfg.Validate()
	assert.ErrorIs(t, err, tracker.ErrInvalidConfig)
	assert.Contains(t, err.Error(), "IdentityTracker")
}

func TestZeroResizeWidthAllowed(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ResizeWidth = 0
	assert.NoError(t, cfg.Validate())
}

func TestParseTrackerKind(t *testing.T) {

	for _, k := range TrackerKinds {
		got, err := ParseTrackerKind(string(k))
		require.NoError(t, err)
		assert.Equal(t, k, got)
	}

	got, err := ParseTrackerKind(" KCF ")
	require.NoError(t, err)
	assert.Equal(t, TrackerKCF, got)

	for _, name := range []string{"goturn", "mosse", "boosting", "medianflow", "tld"} {
		_, err = ParseTrackerKind(name)
		assert.Error(t, err, name)
	}
}
