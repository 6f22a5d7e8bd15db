package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds application configuration
type Config struct {
	Server      ServerConfig
	Database    DatabaseConfig
	Redis       RedisConfig
	YTDLP       YTDLPConfig
	HuggingFace HuggingFaceConfig
	Ollama      OllamaConfig
	Storage     StorageConfig
	Pipeline    PipelineConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port            string
	Host            string
	Environment     string
	AllowedOrigins  []string
	ShutdownTimeout int
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host        string
	Port        string
	User        string
	Password    string
	Name        string
	SSLMode     string
	MaxConns    int
	MinConns    int
	AutoMigrate bool
}

// RedisConfig holds Redis configuration. Redis is optional; when disabled
// the application falls back to the in-memory store.
type RedisConfig struct {
	Enabled  bool
	Host     string
	Port     string
	Password string
	DB       int
}

// YTDLPConfig holds yt-dlp extraction configuration
type YTDLPConfig struct {
	BinaryPath string
	Timeout    time.Duration
	MaxRetries int
}

// HuggingFaceConfig holds Hugging Face inference API configuration
type HuggingFaceConfig struct {
	Enabled bool
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
}

// OllamaConfig holds local Ollama summarization configuration
type OllamaConfig struct {
	Enabled bool
	BaseURL string
	Model   string
	Timeout time.Duration
}

// StorageConfig holds object storage configuration for raw comment snapshots
type StorageConfig struct {
	Enabled         bool
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	BucketName      string
	UseSSL          bool
}

// PipelineConfig holds analysis pipeline tuning. Loaded through envconfig
// so every knob shares the PIPELINE_ prefix.
type PipelineConfig struct {
	MaxComments     int           `envconfig:"PIPELINE_MAX_COMMENTS" default:"500"`
	MinComments     int           `envconfig:"PIPELINE_MIN_COMMENTS" default:"5"`
	Workers         int           `envconfig:"PIPELINE_WORKERS" default:"8"`
	MinClusterSize  int           `envconfig:"PIPELINE_MIN_CLUSTER_SIZE" default:"2"`
	MaxTopics       int           `envconfig:"PIPELINE_MAX_TOPICS" default:"8"`
	StageTimeout    time.Duration `envconfig:"PIPELINE_STAGE_TIMEOUT" default:"2m"`
	RunTimeout      time.Duration `envconfig:"PIPELINE_RUN_TIMEOUT" default:"10m"`
	SummarySamples  int           `envconfig:"PIPELINE_SUMMARY_SAMPLES" default:"20"`
	HistoryLimit    int           `envconfig:"PIPELINE_HISTORY_LIMIT" default:"10"`
	MaxHistoryLimit int           `envconfig:"PIPELINE_MAX_HISTORY_LIMIT" default:"50"`
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if exists (ignore error if file doesn't exist)
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables or defaults")
	}

	config := &Config{
		Server: ServerConfig{
			Port:            getEnv("PORT", "8080"),
			Host:            getEnv("HOST", "0.0.0.0"),
			Environment:     getEnv("ENVIRONMENT", "development"),
			AllowedOrigins:  []string{getEnv("ALLOWED_ORIGINS", "http://localhost:3000")},
			ShutdownTimeout: getEnvAsInt("SHUTDOWN_TIMEOUT", 10),
		},
		Database: DatabaseConfig{
			Host:        getEnv("DB_HOST", "localhost"),
			Port:        getEnv("DB_PORT", "5432"),
			User:        getEnv("DB_USER", "postgres"),
			Password:    getEnv("DB_PASSWORD", "postgres"),
			Name:        getEnv("DB_NAME", "vidinsight"),
			SSLMode:     getEnv("DB_SSLMODE", "disable"),
			MaxConns:    getEnvAsInt("DB_MAX_CONNS", 25),
			MinConns:    getEnvAsInt("DB_MIN_CONNS", 5),
			AutoMigrate: getEnvAsBool("DB_AUTO_MIGRATE", true),
		},
		Redis: RedisConfig{
			Enabled:  getEnvAsBool("REDIS_ENABLED", false),
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		YTDLP: YTDLPConfig{
			BinaryPath: getEnv("YTDLP_BINARY", "yt-dlp"),
			Timeout:    getEnvAsDuration("YTDLP_TIMEOUT", "3m"),
			MaxRetries: getEnvAsInt("YTDLP_MAX_RETRIES", 3),
		},
		HuggingFace: HuggingFaceConfig{
			Enabled: getEnvAsBool("HF_ENABLED", false),
			APIKey:  getEnv("HF_API_KEY", ""),
			BaseURL: getEnv("HF_BASE_URL", "https://api-inference.huggingface.co"),
			Model:   getEnv("HF_MODEL", "facebook/bart-large-mnli"),
			Timeout: getEnvAsDuration("HF_TIMEOUT", "30s"),
		},
		Ollama: OllamaConfig{
			Enabled: getEnvAsBool("OLLAMA_ENABLED", false),
			BaseURL: getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			Model:   getEnv("OLLAMA_MODEL", "llama3.2:3b"),
			Timeout: getEnvAsDuration("OLLAMA_TIMEOUT", "60s"),
		},
		Storage: StorageConfig{
			Enabled:         getEnvAsBool("STORAGE_ENABLED", false),
			Endpoint:        getEnv("STORAGE_ENDPOINT", "localhost:9000"),
			AccessKeyID:     getEnv("STORAGE_ACCESS_KEY", "minioadmin"),
			SecretAccessKey: getEnv("STORAGE_SECRET_KEY", "minioadmin"),
			BucketName:      getEnv("STORAGE_BUCKET", "vidinsight-snapshots"),
			UseSSL:          getEnvAsBool("STORAGE_USE_SSL", false),
		},
	}

	if err := envconfig.Process("", &config.Pipeline); err != nil {
		return nil, fmt.Errorf("failed to load pipeline config: %w", err)
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.HuggingFace.Enabled && c.HuggingFace.APIKey == "" {
		return fmt.Errorf("HF_API_KEY is required when HF_ENABLED is true")
	}
	if c.Pipeline.MinComments < 1 {
		return fmt.Errorf("PIPELINE_MIN_COMMENTS must be at least 1")
	}
	if c.Pipeline.MaxComments < c.Pipeline.MinComments {
		return fmt.Errorf("PIPELINE_MAX_COMMENTS must be >= PIPELINE_MIN_COMMENTS")
	}
	if c.Pipeline.Workers < 1 {
		return fmt.Errorf("PIPELINE_WORKERS must be at least 1")
	}
	if c.Pipeline.MinClusterSize < 2 {
		return fmt.Errorf("PIPELINE_MIN_CLUSTER_SIZE must be at least 2")
	}
	return nil
}

// GetDatabaseDSN returns the database connection string
func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

// GetRedisAddr returns the Redis address
func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", c.Redis.Host, c.Redis.Port)
}

// Helper functions

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := getEnv(key, defaultValue)
	duration, err := time.ParseDuration(valueStr)
	if err != nil {
		duration, _ = time.ParseDuration(defaultValue)
	}
	return duration
}
