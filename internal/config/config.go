package config

import (
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix for environment variable overrides
const EnvPrefix = "CODENAMES"

// Config holds all application configuration
type Config struct {
	Server  ServerConfig
	Game    GameConfig
	Logging LoggingConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Bind string
	Port int
}

// GameConfig holds room-related configuration
type GameConfig struct {
	RoomCodeLength   int
	StaleRoomTimeout time.Duration
	CleanupInterval  time.Duration
}

// LoggingConfig holds logging-related configuration
type LoggingConfig struct {
	Level  string
	Format string // "json" or "text"
}

// Validate checks the configuration before the server starts
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid port (must be between 1-65535 inclusive): %d", c.Server.Port)
	}
	if c.Game.RoomCodeLength < 3 || c.Game.RoomCodeLength > 16 {
		return fmt.Errorf("invalid room code length (must be between 3-16 inclusive): %d", c.Game.RoomCodeLength)
	}
	if c.Logging.Format != "text" && c.Logging.Format != "json" {
		return fmt.Errorf("invalid log format (must be \"text\" or \"json\"): %q", c.Logging.Format)
	}
	return nil
}

// Addr returns the listen address in host:port form
func (c *Config) Addr() string {
	return net.JoinHostPort(c.Server.Bind, strconv.Itoa(c.Server.Port))
}

// RegisterFlags declares every flag on the given flag set, writing into cfg
func RegisterFlags(fs *pflag.FlagSet, cfg *Config) {
	fs.SetNormalizeFunc(func(_ *pflag.FlagSet, name string) pflag.NormalizedName {
		return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
	})

	fs.StringVarP(&cfg.Server.Bind, "bind", "b", "0.0.0.0", "address to bind to (env: CODENAMES_BIND)")
	fs.IntVarP(&cfg.Server.Port, "port", "p", 8080, "port to listen on (env: CODENAMES_PORT)")
	fs.IntVar(&cfg.Game.RoomCodeLength, "room-code-length", 5, "length of generated room codes (env: CODENAMES_ROOM_CODE_LENGTH)")
	fs.DurationVar(&cfg.Game.StaleRoomTimeout, "stale-room-timeout", 2*time.Hour, "time before empty rooms are reaped (env: CODENAMES_STALE_ROOM_TIMEOUT)")
	fs.DurationVar(&cfg.Game.CleanupInterval, "cleanup-interval", 10*time.Minute, "how often the room reaper runs (env: CODENAMES_CLEANUP_INTERVAL)")
	fs.StringVar(&cfg.Logging.Level, "log-level", "info", "log level: debug, info, warn or error (env: CODENAMES_LOG_LEVEL)")
	fs.StringVar(&cfg.Logging.Format, "log-format", "text", "log format: text or json (env: CODENAMES_LOG_FORMAT)")
}

// BindEnv mirrors every flag into an environment variable, so unset flags
// pick up CODENAMES_* values
func BindEnv(fs *pflag.FlagSet) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	fs.VisitAll(func(f *pflag.Flag) {
		_ = v.BindPFlag(f.Name, f)
		_ = v.BindEnv(f.Name)
		if !f.Changed && v.IsSet(f.Name) {
			_ = fs.Set(f.Name, fmt.Sprintf("%v", v.Get(f.Name)))
		}
	})
}
