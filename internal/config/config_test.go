package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spf13/pflag"
)

func defaultConfig(t *testing.T) *Config {
	t.Helper()
	cfg := &Config{}
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	RegisterFlags(fs, cfg)
	require.NoError(t, fs.Parse(nil))
	return cfg
}

func TestDefaults(t *testing.T) {
	cfg := defaultConfig(t)

	assert.Equal(t, "0.0.0.0:8080", cfg.Addr())
	assert.Equal(t, 5, cfg.Game.RoomCodeLength)
	assert.Equal(t, 2*time.Hour, cfg.Game.StaleRoomTimeout)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "text", cfg.Logging.Format)
	assert.NoError(t, cfg.Validate())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(cfg *Config)
		wantErr bool
	}{
		{"defaults", func(cfg *Config) {}, false},
		{"port too low", func(cfg *Config) { cfg.Server.Port = 0 }, true},
		{"port too high", func(cfg *Config) { cfg.Server.Port = 70000 }, true},
		{"room code too short", func(cfg *Config) { cfg.Game.RoomCodeLength = 2 }, true},
		{"room code too long", func(cfg *Config) { cfg.Game.RoomCodeLength = 20 }, true},
		{"bad log format", func(cfg *Config) { cfg.Logging.Format = "xml" }, true},
		{"json log format", func(cfg *Config) { cfg.Logging.Format = "json" }, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := defaultConfig(t)
			tc.mutate(cfg)

			err := cfg.Validate()
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestEnvOverride(t *testing.T) {
	t.Setenv("CODENAMES_PORT", "9090")
	t.Setenv("CODENAMES_LOG_FORMAT", "json")

	cfg := &Config{}
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	RegisterFlags(fs, cfg)
	require.NoError(t, fs.Parse(nil))
	BindEnv(fs)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestFlagBeatsEnv(t *testing.T) {
	t.Setenv("CODENAMES_PORT", "9090")

	cfg := &Config{}
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	RegisterFlags(fs, cfg)
	require.NoError(t, fs.Parse([]string{"--port", "7070"}))
	BindEnv(fs)

	assert.Equal(t, 7070, cfg.Server.Port)
}
