package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server       ServerConfig    `mapstructure:"server"`
	OpenAI       OpenAIConfig    `mapstructure:"openai"`
	Anthropic    AnthropicConfig `mapstructure:"anthropic"`
	Figma        FigmaConfig     `mapstructure:"figma"`
	CORS         CORSConfig      `mapstructure:"cors"`
	Log          LogConfig       `mapstructure:"log"`
	DebugRequest bool            `mapstructure:"debug_request"`
}

type ServerConfig struct {
	Port           int           `mapstructure:"port"`
	ReadTimeout    time.Duration `mapstructure:"read_timeout"`
	WriteTimeout   time.Duration `mapstructure:"write_timeout"`
	MaxHeaderBytes int           `mapstructure:"max_header_bytes"`
	MaxUploadBytes int64         `mapstructure:"max_upload_bytes"`
}

// OpenAIConfig Timeout 为 0 时不设置客户端超时
type OpenAIConfig struct {
	APIKey    string        `mapstructure:"api_key"`
	BaseURL   string        `mapstructure:"base_url"`
	Model     string        `mapstructure:"model"`
	MaxTokens int           `mapstructure:"max_tokens"`
	Timeout   time.Duration `mapstructure:"timeout"`
}

type AnthropicConfig struct {
	APIKey    string        `mapstructure:"api_key"`
	BaseURL   string        `mapstructure:"base_url"`
	Model     string        `mapstructure:"model"`
	MaxTokens int           `mapstructure:"max_tokens"`
	Timeout   time.Duration `mapstructure:"timeout"`
}

type FigmaConfig struct {
	APIKey  string        `mapstructure:"api_key"`
	FileID  string        `mapstructure:"file_id"`
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type CORSConfig struct {
	AllowedOrigins   []string `mapstructure:"allowed_origins"`
	AllowedMethods   []string `mapstructure:"allowed_methods"`
	AllowedHeaders   []string `mapstructure:"allowed_headers"`
	ExposedHeaders   []string `mapstructure:"exposed_headers"`
	AllowCredentials bool     `mapstructure:"allow_credentials"`
	MaxAge           int      `mapstructure:"max_age"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 60*time.Second)
	v.SetDefault("server.write_timeout", 0)
	v.SetDefault("server.max_header_bytes", 1<<20)
	v.SetDefault("server.max_upload_bytes", 20<<20)

	v.SetDefault("openai.api_key", "")
	v.SetDefault("openai.base_url", "")
	v.SetDefault("openai.model", "gpt-4o")
	v.SetDefault("openai.max_tokens", 4096)
	v.SetDefault("openai.timeout", 0)

	v.SetDefault("anthropic.api_key", "")
	v.SetDefault("anthropic.base_url", "")
	v.SetDefault("anthropic.model", "claude-opus-4-20250514")
	v.SetDefault("anthropic.max_tokens", 4096)
	v.SetDefault("anthropic.timeout", 0)

	v.SetDefault("figma.api_key", "")
	v.SetDefault("figma.file_id", "")
	v.SetDefault("figma.base_url", "https://api.figma.com/v1")
	v.SetDefault("figma.timeout", 30*time.Second)

	v.SetDefault("cors.allowed_origins", []string{"*"})
	v.SetDefault("cors.allowed_methods", []string{"GET", "POST", "OPTIONS"})
	v.SetDefault("cors.allowed_headers", []string{"Origin", "Content-Type", "Accept", "X-Request-ID"})
	v.SetDefault("cors.exposed_headers", []string{"X-Request-ID"})
	v.SetDefault("cors.allow_credentials", false)
	v.SetDefault("cors.max_age", 43200)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("debug_request", false)
}

// Load 读取配置文件和环境变量。配置文件不存在时仅使用默认值和环境变量
func Load(configPath string) (*Config, error) {
	// .env 仅用于本地开发，不存在时忽略
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("SKETCHUI")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			v.SetConfigFile(configPath)
			v.SetConfigType("yaml")
			if err := v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("failed to read config %s: %w", configPath, err)
			}
		} else if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to stat config %s: %w", configPath, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	// 配置文件优先，如果配置文件中没有设置，则使用环境变量
	applyEnvFallback(&cfg.OpenAI.APIKey, "OPENAI_API_KEY")
	applyEnvFallback(&cfg.Anthropic.APIKey, "ANTHROPIC_API_KEY")
	applyEnvFallback(&cfg.Figma.APIKey, "FIGMA_API_KEY")
	applyEnvFallback(&cfg.Figma.FileID, "FIGMA_FILE_ID")

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func applyEnvFallback(target *string, key string) {
	if *target != "" {
		return
	}
	if value := os.Getenv(key); value != "" {
		*target = value
	}
}

// Validate 校验配置。API Key 缺失不算错误，请求时按提供方返回 500
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535")
	}
	if c.Server.MaxUploadBytes <= 0 {
		return fmt.Errorf("server.max_upload_bytes must be positive")
	}
	if c.OpenAI.MaxTokens <= 0 {
		return fmt.Errorf("openai.max_tokens must be positive")
	}
	if c.Anthropic.MaxTokens <= 0 {
		return fmt.Errorf("anthropic.max_tokens must be positive")
	}
	switch c.Log.Format {
	case "", "text", "json":
	default:
		return fmt.Errorf("log.format must be text or json")
	}
	return nil
}

// FigmaConfigured 文件 ID 和 Token 均已配置
func (c *Config) FigmaConfigured() bool {
	return c.Figma.APIKey != "" && c.Figma.FileID != ""
}
