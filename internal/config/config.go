package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Storage  StorageConfig  `mapstructure:"storage"`
	TextGen  TextGenConfig  `mapstructure:"textgen"`
	ImageGen ImageGenConfig `mapstructure:"imagegen"`
	Pipeline PipelineConfig `mapstructure:"pipeline"`
	Trends   TrendsConfig   `mapstructure:"trends"`
}

type ServerConfig struct {
	Port int        `mapstructure:"port"`
	Mode string     `mapstructure:"mode"`
	CORS CORSConfig `mapstructure:"cors"`
}

type CORSConfig struct {
	AllowedOrigins  []string `mapstructure:"allowed_origins"`
	AllowAllOrigins bool     `mapstructure:"allow_all_origins"`
}

type DatabaseConfig struct {
	Driver          string        `mapstructure:"driver"`
	Path            string        `mapstructure:"path"`
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	Name            string        `mapstructure:"name"`
	SSLMode         string        `mapstructure:"ssl_mode"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	AutoMigrate     bool          `mapstructure:"auto_migrate"`
}

// DSN builds the driver-specific connection string.
func (c *DatabaseConfig) DSN() string {
	if c.Driver == "postgres" {
		return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
			c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode)
	}
	return c.Path
}

type StorageConfig struct {
	Enabled   bool   `mapstructure:"enabled"`
	Type      string `mapstructure:"type"` // s3, minio
	Endpoint  string `mapstructure:"endpoint"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
	UseSSL    bool   `mapstructure:"use_ssl"`
	Bucket    string `mapstructure:"bucket"`
	Region    string `mapstructure:"region"`
	PublicURL string `mapstructure:"public_url"`
}

type TextGenConfig struct {
	Endpoint    string        `mapstructure:"endpoint"`
	APIKey      string        `mapstructure:"api_key"`
	MaxTokens   int           `mapstructure:"max_tokens"`
	Temperature float64       `mapstructure:"temperature"`
	Timeout     time.Duration `mapstructure:"timeout"`
}

type ImageGenConfig struct {
	Endpoint string        `mapstructure:"endpoint"`
	APIKey   string        `mapstructure:"api_key"`
	Model    string        `mapstructure:"model"`
	Size     string        `mapstructure:"size"`
	Quality  string        `mapstructure:"quality"`
	Style    string        `mapstructure:"style"`
	Timeout  time.Duration `mapstructure:"timeout"`
}

type PipelineConfig struct {
	// PlaceholderOnly skips the remote image stage entirely and always uses
	// the styled placeholder renderer.
	PlaceholderOnly bool          `mapstructure:"placeholder_only"`
	LookCount       int           `mapstructure:"look_count"`
	StageDelay      time.Duration `mapstructure:"stage_delay"`
}

type TrendsConfig struct {
	Enabled   bool `mapstructure:"enabled"`
	MaxTokens int  `mapstructure:"max_tokens"`
}

func Load(configPath string) (*Config, error) {
	// Load .env file if exists
	_ = godotenv.Load()

	v := viper.New()

	// Set config file path
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./configs")
		v.AddConfigPath(".")
	}

	// Enable environment variable override
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Set defaults
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "debug")
	v.SetDefault("server.cors.allow_all_origins", true)
	v.SetDefault("server.cors.allowed_origins", []string{})
	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.path", "./data/stylesync.db")
	v.SetDefault("database.ssl_mode", "disable")
	v.SetDefault("database.max_idle_conns", 2)
	v.SetDefault("database.max_open_conns", 10)
	v.SetDefault("database.conn_max_lifetime", time.Hour)
	v.SetDefault("database.auto_migrate", true)
	v.SetDefault("storage.enabled", false)
	v.SetDefault("storage.type", "s3")
	v.SetDefault("storage.endpoint", "localhost:9000")
	v.SetDefault("storage.use_ssl", false)
	v.SetDefault("storage.bucket", "looks")
	v.SetDefault("textgen.endpoint", "https://router.huggingface.co/models/meta-llama/Meta-Llama-3-8B-Instruct")
	v.SetDefault("textgen.max_tokens", 250)
	v.SetDefault("textgen.temperature", 0.7)
	v.SetDefault("textgen.timeout", 30*time.Second)
	v.SetDefault("imagegen.endpoint", "https://api.openai.com/v1/images/generations")
	v.SetDefault("imagegen.model", "dall-e-3")
	v.SetDefault("imagegen.size", "1024x1792")
	v.SetDefault("imagegen.quality", "standard")
	v.SetDefault("imagegen.style", "vivid")
	// Image generation is slow; this must stay independent of the text timeout
	v.SetDefault("imagegen.timeout", 120*time.Second)
	v.SetDefault("pipeline.placeholder_only", false)
	v.SetDefault("pipeline.look_count", 3)
	v.SetDefault("pipeline.stage_delay", 500*time.Millisecond)
	v.SetDefault("trends.enabled", true)
	v.SetDefault("trends.max_tokens", 800)

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// Bind environment variables explicitly for sensitive data
	v.BindEnv("database.host", "DB_HOST")
	v.BindEnv("database.password", "DB_PASSWORD")
	v.BindEnv("storage.endpoint", "STORAGE_ENDPOINT")
	v.BindEnv("storage.access_key", "STORAGE_ACCESS_KEY")
	v.BindEnv("storage.secret_key", "STORAGE_SECRET_KEY")
	v.BindEnv("textgen.api_key", "HUGGINGFACE_API_TOKEN")
	v.BindEnv("textgen.endpoint", "TEXTGEN_ENDPOINT")
	v.BindEnv("imagegen.api_key", "OPENAI_API_KEY")
	v.BindEnv("imagegen.endpoint", "IMAGEGEN_ENDPOINT")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}
