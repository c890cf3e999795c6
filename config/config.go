package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	ProviderOpenAI = "openai"
	ProviderOllama = "ollama"
)

// Persona policies select which system instruction seeds a fresh
// conversation. "strict" enforces the domain-restriction refusal,
// "guide" is the softer tour-guide voice used by the terminal client.
const (
	PersonaStrict = "strict"
	PersonaGuide  = "guide"
)

type LLMConfig struct {
	Provider string
	Model    string
	APIKey   string
	BaseURL  string
}

type EmbeddingsConfig struct {
	Provider  string
	Model     string
	Dimension int
	APIKey    string
	BaseURL   string
}

type Config struct {
	PostgresDSN string
	CatalogPath string
	ServerAddr  string

	LLM        LLMConfig
	Embeddings EmbeddingsConfig
	OllamaHost string

	PersonaPolicy string

	// RetrievalK is the candidate set pulled from the vector index,
	// ContextTopK the number of passages kept after re-ranking.
	RetrievalK  int
	ContextTopK int

	MaxAnswerTokens int
	RequestTimeout  time.Duration

	// TemplateSeed fixes the phrasing-template choice; 0 seeds from the clock.
	TemplateSeed int64
}

func Load() Config {
	// A missing .env is fine; deployments may set the environment directly.
	_ = godotenv.Load()

	return Config{
		PostgresDSN: getEnv("POSTGRES_DSN", "postgres://localhost:5432/toba-guide?sslmode=disable"),
		CatalogPath: getEnv("CATALOG_PATH", "data/data_toba_guide.csv"),
		ServerAddr:  getEnv("SERVER_ADDR", ":5000"),
		LLM: LLMConfig{
			Provider: getEnv("LLM_PROVIDER", ProviderOpenAI),
			Model:    getEnv("LLM_MODEL", "deepseek/deepseek-r1-0528:free"),
			APIKey:   getEnv("OPENROUTER_API_KEY", ""),
			BaseURL:  getEnv("LLM_BASE_URL", "https://openrouter.ai/api/v1"),
		},
		Embeddings: EmbeddingsConfig{
			Provider:  getEnv("EMBEDDINGS_PROVIDER", ProviderOpenAI),
			Model:     getEnv("EMBEDDINGS_MODEL", "mistral-embed"),
			Dimension: getEnvInt("EMBEDDINGS_DIMENSION", 1024),
			APIKey:    getEnv("MISTRAL_API_KEY", ""),
			BaseURL:   getEnv("EMBEDDINGS_BASE_URL", "https://api.mistral.ai/v1"),
		},
		OllamaHost:      getEnv("OLLAMA_HOST", "http://localhost:11434"),
		PersonaPolicy:   getEnv("PERSONA_POLICY", PersonaStrict),
		RetrievalK:      getEnvInt("RETRIEVAL_K", 20),
		ContextTopK:     getEnvInt("CONTEXT_TOP_K", 5),
		MaxAnswerTokens: getEnvInt("MAX_ANSWER_TOKENS", 1024),
		RequestTimeout:  getEnvDuration("REQUEST_TIMEOUT", 60*time.Second),
		TemplateSeed:    getEnvInt64("TEMPLATE_SEED", 0),
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return fallback
}

func getEnvInt64(key string, fallback int64) int64 {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		if parsed, err := strconv.ParseInt(value, 10, 64); err == nil {
			return parsed
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return fallback
}
