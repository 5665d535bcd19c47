package config

import "os"

type Config struct {
	HTTPAddr     string
	PublicDir    string
	UploadDir    string
	DataFile     string
	BaseURL      string
	ResponseMode string // "redirect" or "json"
	LinkSecret   string
	LinkTTLMin   int
	GelfAddr     string

	MailHost string
	MailPort int
	MailUser string
	MailPass string
	MailFrom string
}

func Load() *Config {
	cfg := &Config{
		HTTPAddr:     getEnv("APP_ADDR", ":8080"),
		PublicDir:    getEnv("APP_PUBLIC_DIR", "public"),
		UploadDir:    getEnv("APP_UPLOAD_DIR", "uploads"),
		DataFile:     getEnv("APP_DATA_FILE", "data/submissions.json"),
		BaseURL:      getEnv("APP_BASE_URL", "http://localhost:8080"),
		ResponseMode: getEnv("APP_RESPONSE_MODE", "redirect"),
		LinkSecret:   getEnv("APP_LINK_SECRET", "appintake-dev-secret-change-me"),
		LinkTTLMin:   getEnvInt("APP_LINK_TTL_MIN", 15),
		GelfAddr:     getEnv("APP_GELF_ADDR", ""),

		MailHost: getEnv("EMAIL_HOST", ""),
		MailPort: getEnvInt("EMAIL_PORT", 587),
		MailUser: getEnv("EMAIL_USER", ""),
		MailPass: getEnv("EMAIL_PASS", ""),
		MailFrom: getEnv("EMAIL_FROM", ""),
	}
	if cfg.MailFrom == "" {
		cfg.MailFrom = cfg.MailUser
	}
	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n := 0
	for _, c := range v {
		if c < '0' || c > '9' {
			return fallback
		}
		n = n*10 + int(c-'0')
	}
	return n
}
