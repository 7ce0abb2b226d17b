package config

import (
	"os"
	"strconv"
)

type Config struct {
	APIPort  string
	LogLevel string

	CorpusPath string

	SerpAPIKey string
	SerpAPIURL string

	ReaderURL   string
	ReaderModel string

	WebResults          int
	FetchTimeoutSeconds int
}

func Load() Config {
	return Config{
		APIPort:  mustEnv("API_PORT", "8080"),
		LogLevel: mustEnv("LOG_LEVEL", "info"),

		CorpusPath: mustEnv("CORPUS_PATH", "models/documents.json"),

		SerpAPIKey: os.Getenv("SERPAPI_KEY"),
		SerpAPIURL: mustEnv("SERPAPI_URL", "https://serpapi.com"),

		ReaderURL:   mustEnv("READER_URL", "http://localhost:8000"),
		ReaderModel: mustEnv("READER_MODEL", "deepset/roberta-base-squad2"),

		WebResults:          mustEnvInt("WEB_RESULTS", 5),
		FetchTimeoutSeconds: mustEnvInt("FETCH_TIMEOUT_SECONDS", 10),
	}
}

// WebEnabled reports whether a web-search credential is configured.
func (c Config) WebEnabled() bool {
	return c.SerpAPIKey != ""
}

func mustEnv(key, fallback string) string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	return v
}

func mustEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
