package config

import "os"

// Proxy configures cmd/bananabread-proxy.
type Proxy struct {
	ListenAddr    string
	GeminiAPIKey  string
	GeminiModel   string
	GeminiBackend string
	GeminiBaseURL string
	LogLevel      string
	LogFormat     string
	LogFile       string
}

// Client configures the cmd/bananabread terminal checklist.
type Client struct {
	ProxyURL     string
	StateBackend string
	StateDBPath  string
	LogLevel     string
	LogFile      string
}

// LoadProxy reads proxy settings from the environment. A missing
// GEMINI_API_KEY is allowed; requests fail individually until it is set.
func LoadProxy() *Proxy {
	return &Proxy{
		ListenAddr:    getEnv("LISTEN_ADDR", ":8080"),
		GeminiAPIKey:  getEnv("GEMINI_API_KEY", ""),
		GeminiModel:   getEnv("GEMINI_MODEL", "gemini-2.0-flash-exp"),
		GeminiBackend: getEnv("GEMINI_BACKEND", "rest"),
		GeminiBaseURL: getEnv("GEMINI_BASE_URL", ""),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		LogFormat:     getEnv("LOG_FORMAT", "json"),
		LogFile:       getEnv("LOG_FILE", ""),
	}
}

func LoadClient() *Client {
	return &Client{
		ProxyURL:     getEnv("PROXY_URL", "http://localhost:8080"),
		StateBackend: getEnv("STATE_BACKEND", "sqlite"),
		StateDBPath:  getEnv("STATE_DB_PATH", "bananabread.db"),
		LogLevel:     getEnv("LOG_LEVEL", "warn"),
		LogFile:      getEnv("LOG_FILE", ""),
	}
}

func getEnv(key, defaultVal string) string {
	if val, exists := os.LookupEnv(key); exists {
		return val
	}
	return defaultVal
}
