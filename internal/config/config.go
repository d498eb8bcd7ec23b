package config

import (
	"time"

	"github.com/spf13/viper"
)

type AppConfig struct {
	Env    string `mapstructure:"env"`
	UserID string `mapstructure:"user_id"`
}

type APIConfig struct {
	BaseURL                string `mapstructure:"base_url"`
	TimeoutSeconds         int    `mapstructure:"timeout_seconds"`
	RetryMaxElapsedSeconds int    `mapstructure:"retry_max_elapsed_seconds"`
}

type WSConfig struct {
	BaseURL               string `mapstructure:"base_url"`
	PingIntervalSeconds   int    `mapstructure:"ping_interval_seconds"`
	ReconnectDelaySeconds int    `mapstructure:"reconnect_delay_seconds"`
	MaxReconnectSeconds   int    `mapstructure:"max_reconnect_seconds"`
	WriteDeadlineSeconds  int    `mapstructure:"write_deadline_seconds"`
	MaxMessageSizeBytes   int64  `mapstructure:"max_message_size_bytes"`
}

type SyncConfig struct {
	TypingTTLSeconds int     `mapstructure:"typing_ttl_seconds"`
	TypingRatePerSec float64 `mapstructure:"typing_rate_per_sec"`
	TypingBurst      int     `mapstructure:"typing_burst"`
	ResyncLimit      int     `mapstructure:"resync_limit"`
}

type Config struct {
	App  AppConfig  `mapstructure:"app"`
	API  APIConfig  `mapstructure:"api"`
	WS   WSConfig   `mapstructure:"ws"`
	Sync SyncConfig `mapstructure:"sync"`

	// derived timeouts
	APITimeout      time.Duration
	APIRetryElapsed time.Duration
	PingInterval    time.Duration
	ReconnectDelay  time.Duration
	MaxReconnect    time.Duration
	WriteDeadline   time.Duration
	TypingTTL       time.Duration
}

// Load reads config from file and environment. Defaults mirror the backend
// contract: 30s ping, 3s reconnect delay, 3s typing expiry. A zero
// max_reconnect_seconds keeps the backend's fixed-delay retry; setting it
// switches the supervisor to capped exponential backoff.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetEnvPrefix("SKILLSWAP")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, err
	}
	applyDefaults(&c)
	return &c, nil
}

func applyDefaults(c *Config) {
	if c.API.TimeoutSeconds == 0 {
		c.API.TimeoutSeconds = 15
	}
	if c.API.RetryMaxElapsedSeconds == 0 {
		c.API.RetryMaxElapsedSeconds = 30
	}
	if c.WS.PingIntervalSeconds == 0 {
		c.WS.PingIntervalSeconds = 30
	}
	if c.WS.ReconnectDelaySeconds == 0 {
		c.WS.ReconnectDelaySeconds = 3
	}
	if c.WS.WriteDeadlineSeconds == 0 {
		c.WS.WriteDeadlineSeconds = 10
	}
	if c.WS.MaxMessageSizeBytes == 0 {
		c.WS.MaxMessageSizeBytes = 65536
	}
	if c.Sync.TypingTTLSeconds == 0 {
		c.Sync.TypingTTLSeconds = 3
	}
	if c.Sync.TypingRatePerSec == 0 {
		c.Sync.TypingRatePerSec = 1
	}
	if c.Sync.TypingBurst == 0 {
		c.Sync.TypingBurst = 3
	}
	if c.Sync.ResyncLimit == 0 {
		c.Sync.ResyncLimit = 50
	}

	c.APITimeout = time.Duration(c.API.TimeoutSeconds) * time.Second
	c.APIRetryElapsed = time.Duration(c.API.RetryMaxElapsedSeconds) * time.Second
	c.PingInterval = time.Duration(c.WS.PingIntervalSeconds) * time.Second
	c.ReconnectDelay = time.Duration(c.WS.ReconnectDelaySeconds) * time.Second
	c.MaxReconnect = time.Duration(c.WS.MaxReconnectSeconds) * time.Second
	c.WriteDeadline = time.Duration(c.WS.WriteDeadlineSeconds) * time.Second
	c.TypingTTL = time.Duration(c.Sync.TypingTTLSeconds) * time.Second
}
