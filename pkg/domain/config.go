package domain

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type CacheDriver string

const (
	CacheDriverMemory CacheDriver = "memory"
	CacheDriverRedis  CacheDriver = "redis"
)

type BridgeConfig struct {
	HTTPAddress string `mapstructure:"http_address"`

	RunAlloyAPIKey     string `mapstructure:"runalloy_api_key"`
	RunAlloyAPIURL     string `mapstructure:"runalloy_api_url"`
	RunAlloyUserID     string `mapstructure:"runalloy_user_id"`
	RunAlloyAPIVersion string `mapstructure:"runalloy_api_version"`

	MondayClientID     string `mapstructure:"monday_client_id"`
	MondayClientSecret string `mapstructure:"monday_client_secret"`
	MondayRedirectURI  string `mapstructure:"monday_redirect_uri"`

	// AppURL is the public site the OAuth flows return the browser to.
	AppURL string `mapstructure:"url"`

	RequestTimeout time.Duration `mapstructure:"request_timeout"`

	CacheDriver        CacheDriver   `mapstructure:"cache_driver"`
	RedisURL           string        `mapstructure:"redis_url"`
	CredentialCacheTTL time.Duration `mapstructure:"credential_cache_ttl"`
	SessionTTL         time.Duration `mapstructure:"session_ttl"`

	// UserMappings maps lower-cased emails to RunAlloy user ids (config file only).
	UserMappings map[string]string `mapstructure:"user_mappings"`

	// ServerURL is where the terminal client finds a running bridge.
	ServerURL string `mapstructure:"server_url"`
}

func (c BridgeConfig) Validate() error {
	var missing []string

	if c.RunAlloyAPIKey == "" {
		missing = append(missing, "RUNALLOY_API_KEY")
	}

	if c.RunAlloyAPIURL == "" {
		missing = append(missing, "RUNALLOY_API_URL")
	}

	if c.CacheDriver == CacheDriverRedis && c.RedisURL == "" {
		missing = append(missing, "REDIS_URL")
	}

	if len(missing) > 0 {
		return fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}

	switch c.CacheDriver {
	case CacheDriverMemory, CacheDriverRedis:
	default:
		return fmt.Errorf("unsupported cache driver %q", c.CacheDriver)
	}

	return nil
}

type ConfigManager interface {
	GetConfig(ctx context.Context) (BridgeConfig, error)
}

type configManager struct {
	viper *viper.Viper
}

// configKeyDelimiter replaces viper's "." so email keys under user_mappings stay whole.
const configKeyDelimiter = "::"

func NewConfigManager() (ConfigManager, error) {
	v := viper.NewWithOptions(viper.KeyDelimiter(configKeyDelimiter))

	setDefaults(v)

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	envMappings := map[string]string{
		"http_address":         "HTTP_ADDRESS",
		"runalloy_api_key":     "RUNALLOY_API_KEY",
		"runalloy_api_url":     "RUNALLOY_API_URL",
		"runalloy_user_id":     "RUNALLOY_USER_ID",
		"runalloy_api_version": "RUNALLOY_API_VERSION",
		"monday_client_id":     "MONDAY_CLIENT_ID",
		"monday_client_secret": "MONDAY_CLIENT_SECRET",
		"monday_redirect_uri":  "MONDAY_REDIRECT_URI",
		"url":                  "URL",
		"request_timeout":      "REQUEST_TIMEOUT",
		"cache_driver":         "CACHE_DRIVER",
		"redis_url":            "REDIS_URL",
		"credential_cache_ttl": "CREDENTIAL_CACHE_TTL",
		"session_ttl":          "SESSION_TTL",
		"server_url":           "ALLOYBRIDGE_SERVER_URL",
	}

	for configKey, envVar := range envMappings {
		if err := v.BindEnv(configKey, envVar); err != nil {
			log.Warn().Err(err).Msgf("Failed to bind environment variable %s for %s", envVar, configKey)
		}
	}

	v.SetConfigName("alloybridge")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("$HOME/.alloybridge")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		log.Debug().Msg("Config file not found, using environment variables and defaults")
	} else {
		log.Debug().Msgf("Using config file: %s", v.ConfigFileUsed())
	}

	return &configManager{
		viper: v,
	}, nil
}

func (m *configManager) GetConfig(ctx context.Context) (BridgeConfig, error) {
	var config BridgeConfig
	if err := m.viper.Unmarshal(&config); err != nil {
		return BridgeConfig{}, fmt.Errorf("unable to decode config: %w", err)
	}

	config.RunAlloyAPIURL = strings.TrimRight(config.RunAlloyAPIURL, "/")
	config.AppURL = strings.TrimRight(config.AppURL, "/")

	if len(config.UserMappings) > 0 {
		mappings := make(map[string]string, len(config.UserMappings))
		for email, userID := range config.UserMappings {
			mappings[strings.ToLower(strings.TrimSpace(email))] = userID
		}
		config.UserMappings = mappings
	}

	return config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("http_address", ":8888")
	v.SetDefault("runalloy_api_url", "https://production.runalloy.com")
	v.SetDefault("runalloy_user_id", "default_user")
	v.SetDefault("runalloy_api_version", "2025-06")
	v.SetDefault("url", "https://runalloy.netlify.app")
	v.SetDefault("request_timeout", 30*time.Second)
	v.SetDefault("cache_driver", string(CacheDriverMemory))
	v.SetDefault("credential_cache_ttl", time.Duration(0))
	v.SetDefault("session_ttl", time.Hour)
	v.SetDefault("server_url", "http://localhost:8888")
}
