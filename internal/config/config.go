package config

import "os"

type Config struct {
	ListenAddr string
	DBPath     string
	ExportDir  string
	LogLevel   string
	LogFile    string
}

func Load() *Config {
	return &Config{
		ListenAddr: getEnv("LISTEN_ADDR", ":8080"),
		DBPath:     getEnv("DB_PATH", "/data/unitcheck.db"),
		ExportDir:  getEnv("EXPORT_DIR", ""),
		LogLevel:   getEnv("LOG_LEVEL", "info"),
		LogFile:    getEnv("LOG_FILE", ""),
	}
}

func getEnv(key, defaultVal string) string {
	if val, exists := os.LookupEnv(key); exists {
		return val
	}
	return defaultVal
}
