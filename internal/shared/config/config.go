package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// ScoringPolicy names the prompt-level scoring rules for gap analysis.
type ScoringPolicy struct {
	// IgnoreSoftSkills restricts missing-keyword detection to hard skills,
	// tools and certifications.
	IgnoreSoftSkills bool
}

// RewritePolicy names the prompt-level rules for resume rewriting.
type RewritePolicy struct {
	// AllowFabricatedMetrics permits the model to invent plausible numbers
	// for accomplishment bullets. Off by default: authenticity clause.
	AllowFabricatedMetrics bool
}

// Config holds application configuration.
type Config struct {
	Port            string
	Env             string
	CORSAllowOrigin []string

	ObjectStoreType string
	LocalStoreDir   string
	AWSRegion       string
	S3Bucket        string
	S3Prefix        string

	DatabaseURL string

	LLMProvider     string
	LLMModel        string
	OpenAIAPIKey    string
	PromptCharLimit int
	Scoring         ScoringPolicy
	Rewrite         RewritePolicy

	ReaderProxyURL string
	ChromePath     string
}

// DefaultPromptCharLimit bounds how much of each input reaches the model.
// Truncation keeps the prefix only; trailing content is dropped.
const DefaultPromptCharLimit = 3000

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	// Best-effort load of local env files for dev convenience.
	_ = godotenv.Load(".env")

	env := normalizeEnv(getEnv("ENV", "dev"))
	apiKey := os.Getenv("OPENAI_API_KEY")
	provider := getEnv("LLM_PROVIDER", "openai")

	if env == "production" && provider == "openai" && apiKey == "" {
		log.Fatal("OPENAI_API_KEY is required in production")
	}

	return Config{
		Port:            getEnv("PORT", "8080"),
		Env:             env,
		CORSAllowOrigin: splitAndTrim(getEnv("CORS_ALLOW_ORIGINS", "http://localhost:5173")),
		ObjectStoreType: normalizeStoreType(getEnv("OBJECT_STORE", "local")),
		LocalStoreDir:   getEnv("LOCAL_STORE_DIR", "./data"),
		AWSRegion:       getEnv("AWS_REGION", ""),
		S3Bucket:        getEnv("S3_BUCKET", ""),
		S3Prefix:        getEnv("S3_PREFIX", ""),
		DatabaseURL:     os.Getenv("DATABASE_URL"),
		LLMProvider:     provider,
		LLMModel:        getEnv("LLM_MODEL", "gpt-4o-mini"),
		OpenAIAPIKey:    apiKey,
		PromptCharLimit: getEnvInt("PROMPT_CHAR_LIMIT", DefaultPromptCharLimit),
		Scoring: ScoringPolicy{
			IgnoreSoftSkills: getEnvBool("SCORING_IGNORE_SOFT_SKILLS", true),
		},
		Rewrite: RewritePolicy{
			AllowFabricatedMetrics: getEnvBool("REWRITE_ALLOW_FABRICATED_METRICS", false),
		},
		ReaderProxyURL: getEnv("READER_PROXY_URL", "https://r.jina.ai/"),
		ChromePath:     getEnv("CHROME_PATH", ""),
	}
}

func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

func getEnvInt(key string, def int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	parsed, err := strconv.Atoi(raw)
	if err != nil || parsed <= 0 {
		return def
	}
	return parsed
}

func getEnvBool(key string, def bool) bool {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	parsed, err := strconv.ParseBool(raw)
	if err != nil {
		return def
	}
	return parsed
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	var out []string
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func normalizeEnv(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "production", "prod":
		return "production"
	case "staging":
		return "staging"
	case "local":
		return "local"
	default:
		return "dev"
	}
}

func normalizeStoreType(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "s3":
		return "s3"
	default:
		return "local"
	}
}
