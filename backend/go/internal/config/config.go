package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// AppInfo holds basic information about the application.
type AppInfo struct {
	Name        string `yaml:"name"`        // application name
	Version     string `yaml:"version"`     // application version
	Environment string `yaml:"environment"` // e.g. "development", "production"
}

// LoggerConfig configures the log output.
type LoggerConfig struct {
	Level string `yaml:"level"` // "debug", "info", "warn", "error"
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Address string `yaml:"address"` // listen address, e.g. ":8000"
	BaseURL string `yaml:"baseURL"` // public base URL used to build media links
}

// MySQLConfig holds the MySQL connection settings.
type MySQLConfig struct {
	Address         string `yaml:"address"`         // host:port
	Username        string `yaml:"username"`        // user name
	Password        string `yaml:"password"`        // password
	Database        string `yaml:"database"`        // database name
	MaxOpenConns    int    `yaml:"maxOpenConns"`    // max open connections
	MaxIdleConns    int    `yaml:"maxIdleConns"`    // max idle connections
	ConnMaxLifetime int    `yaml:"connMaxLifetime"` // connection lifetime in seconds
}

// RedisConfig holds the Redis connection settings.
type RedisConfig struct {
	Address  string `yaml:"address"`  // host:port
	Password string `yaml:"password"` // password, empty when auth is off
	DB       int    `yaml:"db"`       // database number
}

// MinIOConfig holds the MinIO object storage settings.
type MinIOConfig struct {
	Endpoint  string `yaml:"endpoint"`  // service endpoint
	AccessKey string `yaml:"accessKey"` // access key
	SecretKey string `yaml:"secretKey"` // secret key
	Bucket    string `yaml:"bucket"`    // bucket used for media objects
	Secure    bool   `yaml:"secure"`    // use HTTPS
}

// DatabaseConfigs groups all storage backend settings.
type DatabaseConfigs struct {
	MySQL MySQLConfig `yaml:"mysql"`
	Redis RedisConfig `yaml:"redis"`
	MinIO MinIOConfig `yaml:"minio"`
}

// ModelConfig identifies one hosted model with its credentials.
type ModelConfig struct {
	APIKey  string `yaml:"apiKey"`  // provider API key
	Model   string `yaml:"model"`   // model name
	BaseURL string `yaml:"baseURL"` // optional service URL (ollama, self-hosted)
}

// EmbeddingConfig selects the embedding provider.
// An empty provider disables embeddings; the assistant then ranks
// documents lexically.
type EmbeddingConfig struct {
	Provider string      `yaml:"provider"` // "gemini", "openai", "ollama" or ""
	Gemini   ModelConfig `yaml:"gemini"`
	OpenAI   ModelConfig `yaml:"openai"`
	Ollama   ModelConfig `yaml:"ollama"`
}

// LLMConfig selects the answer-generation provider.
// An empty provider disables generation; QnA then answers with the
// retrieved context directly.
type LLMConfig struct {
	Provider string      `yaml:"provider"` // "gemini", "openai", "ollama" or ""
	Gemini   ModelConfig `yaml:"gemini"`
	OpenAI   ModelConfig `yaml:"openai"`
	Ollama   ModelConfig `yaml:"ollama"`
}

// TranslationConfig configures question/answer translation.
type TranslationConfig struct {
	CorpusLang string `yaml:"corpusLang"` // language the indexed corpus is written in
}

// CacheConfig selects the answer cache backend.
type CacheConfig struct {
	Backend string `yaml:"backend"` // "mysql" (default) or "redis"
}

// GoogleDirectionsConfig configures the primary directions provider.
type GoogleDirectionsConfig struct {
	APIKey string `yaml:"apiKey"` // empty disables the provider
}

// OSRMConfig configures the secondary directions provider.
type OSRMConfig struct {
	BaseURL string `yaml:"baseURL"` // e.g. "https://router.project-osrm.org"
}

// DirectionsConfig groups the routing provider settings.
type DirectionsConfig struct {
	Google GoogleDirectionsConfig `yaml:"google"`
	OSRM   OSRMConfig             `yaml:"osrm"`
}

// RoutingConfig configures the itinerary planner.
type RoutingConfig struct {
	OriginLat       float64 `yaml:"originLat"`       // configured tour origin
	OriginLng       float64 `yaml:"originLng"`       //
	UseRequestStart bool    `yaml:"useRequestStart"` // honor caller-supplied start coordinates
}

// TTSConfig configures narration synthesis.
type TTSConfig struct {
	OpenAI     ModelConfig `yaml:"openai"`     // OpenAI speech synthesis
	ElevenLabs ModelConfig `yaml:"elevenlabs"` // ElevenLabs fallback
	Voice      string      `yaml:"voice"`      // default voice name
}

// MediaConfig selects where uploaded media is stored.
type MediaConfig struct {
	Backend string `yaml:"backend"` // "local" (default) or "minio"
	Root    string `yaml:"root"`    // directory for the local backend
}

// AppConfig is the root of the YAML configuration file.
type AppConfig struct {
	App         AppInfo           `yaml:"app"`
	Logger      LoggerConfig      `yaml:"logger"`
	Server      ServerConfig      `yaml:"server"`
	Databases   DatabaseConfigs   `yaml:"databases"`
	Embedding   EmbeddingConfig   `yaml:"embedding"`
	LLM         LLMConfig         `yaml:"llm"`
	Translation TranslationConfig `yaml:"translation"`
	Cache       CacheConfig       `yaml:"cache"`
	Directions  DirectionsConfig  `yaml:"directions"`
	Routing     RoutingConfig     `yaml:"routing"`
	TTS         TTSConfig         `yaml:"tts"`
	Media       MediaConfig       `yaml:"media"`
}

// LoadConfig reads and parses the YAML configuration file at path.
func LoadConfig(path string) (*AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg AppConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	cfg.applyDefaults()
	return &cfg, nil
}

func (c *AppConfig) applyDefaults() {
	if c.Server.Address == "" {
		c.Server.Address = ":8000"
	}
	if c.Translation.CorpusLang == "" {
		c.Translation.CorpusLang = "en"
	}
	if c.Cache.Backend == "" {
		c.Cache.Backend = "mysql"
	}
	if c.Media.Backend == "" {
		c.Media.Backend = "local"
	}
	if c.Media.Root == "" {
		c.Media.Root = "media"
	}
	if c.Directions.OSRM.BaseURL == "" {
		c.Directions.OSRM.BaseURL = "https://router.project-osrm.org"
	}
}
