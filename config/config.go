package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all service configuration.
type Config struct {
	// Environment
	Environment EnvironmentConfig

	// Server
	HTTPServer HTTPServerConfig
	Logger     LoggerConfig

	// GitHub webhooks
	Webhook WebhookConfig

	// Websocket command bridge
	Bridge BridgeConfig

	// Local development tunnel
	Tunnel TunnelConfig
}

type EnvironmentConfig struct {
	Name string
}

type HTTPServerConfig struct {
	Port int
	Mode string
}

type LoggerConfig struct {
	Level        string
	Mode         string
	Encoding     string
	ColorEnabled bool
}

type WebhookConfig struct {
	Secret          string
	AllowedIPs      []string
	RateLimitPerMin int
	MaxBodyBytes    int64
}

type BridgeConfig struct {
	SendBuffer      int
	WriteWait       time.Duration
	PongWait        time.Duration
	MaxMessageBytes int64
	AllowedOrigins  []string
	MaxFileBytes    int64
}

type TunnelConfig struct {
	// NgrokAPI is the ngrok local API base, e.g. http://ngrok:4040. Empty disables detection.
	NgrokAPI string
}

// Load loads configuration using Viper.
// Config file name: config.yaml, searched in ./config, ., /etc/app/
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")
	viper.AddConfigPath(".")
	viper.AddConfigPath("/etc/app/")

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{}

	// Environment & Server
	cfg.Environment.Name = viper.GetString("environment.name")
	cfg.HTTPServer.Port = viper.GetInt("http_server.port")
	cfg.HTTPServer.Mode = viper.GetString("http_server.mode")
	if port := viper.GetInt("port"); port != 0 {
		cfg.HTTPServer.Port = port
	}
	cfg.Logger.Level = viper.GetString("logger.level")
	cfg.Logger.Mode = viper.GetString("logger.mode")
	cfg.Logger.Encoding = viper.GetString("logger.encoding")
	cfg.Logger.ColorEnabled = viper.GetBool("logger.color_enabled")

	// Webhooks. GITHUB_WEBHOOK_SECRET wins over WEBHOOK_SECRET, which wins over the file.
	cfg.Webhook.Secret = viper.GetString("webhook.secret")
	if webhookSecret := viper.GetString("webhook_secret"); webhookSecret != "" {
		cfg.Webhook.Secret = webhookSecret
	}
	if githubSecret := viper.GetString("github_webhook_secret"); githubSecret != "" {
		cfg.Webhook.Secret = githubSecret
	}
	cfg.Webhook.RateLimitPerMin = viper.GetInt("webhook.rate_limit_per_min")
	cfg.Webhook.MaxBodyBytes = viper.GetInt64("webhook.max_body_bytes")
	cfg.Webhook.AllowedIPs = getList("webhook.allowed_ips")

	// Bridge
	cfg.Bridge.SendBuffer = viper.GetInt("bridge.send_buffer")
	cfg.Bridge.WriteWait = viper.GetDuration("bridge.write_wait")
	cfg.Bridge.PongWait = viper.GetDuration("bridge.pong_wait")
	cfg.Bridge.MaxMessageBytes = viper.GetInt64("bridge.max_message_bytes")
	cfg.Bridge.AllowedOrigins = getList("bridge.allowed_origins")
	cfg.Bridge.MaxFileBytes = viper.GetInt64("bridge.max_file_bytes")

	// Tunnel
	cfg.Tunnel.NgrokAPI = viper.GetString("tunnel.ngrok_api")

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.HTTPServer.Port <= 0 || c.HTTPServer.Port > 65535 {
		return fmt.Errorf("http_server.port out of range: %d", c.HTTPServer.Port)
	}
	if c.Webhook.RateLimitPerMin < 0 {
		return fmt.Errorf("webhook.rate_limit_per_min must not be negative")
	}
	if c.Bridge.PongWait > 0 && c.Bridge.PongWait < time.Second {
		return fmt.Errorf("bridge.pong_wait too short: %s", c.Bridge.PongWait)
	}
	return nil
}

func setDefaults() {
	viper.SetDefault("environment.name", "development")
	viper.SetDefault("http_server.port", 8081)
	viper.SetDefault("http_server.mode", "debug")
	viper.SetDefault("logger.level", "debug")
	viper.SetDefault("logger.mode", "debug")
	viper.SetDefault("logger.encoding", "console")
	viper.SetDefault("logger.color_enabled", true)

	viper.SetDefault("webhook.rate_limit_per_min", 60)
	viper.SetDefault("webhook.max_body_bytes", 25<<20)

	viper.SetDefault("bridge.send_buffer", 256)
	viper.SetDefault("bridge.write_wait", "10s")
	viper.SetDefault("bridge.pong_wait", "60s")
	viper.SetDefault("bridge.max_message_bytes", 512*1024)
	viper.SetDefault("bridge.max_file_bytes", 1<<20)
}

// getList reads a YAML list or a comma separated string; viper does not split env strings.
func getList(key string) []string {
	if items, ok := viper.Get(key).([]interface{}); ok {
		var out []string
		for _, item := range items {
			if s := strings.TrimSpace(fmt.Sprint(item)); s != "" {
				out = append(out, s)
			}
		}
		return out
	}
	return splitList(viper.GetString(key))
}

func splitList(raw string) []string {
	var out []string
	for _, item := range strings.Split(raw, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			out = append(out, item)
		}
	}
	return out
}
