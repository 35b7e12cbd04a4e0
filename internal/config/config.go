package config

import (
	"os"
	"strings"
)

type Config struct {
	HTTPAddr    string
	PublicURL   string
	FrontendURL string

	DBDriver string
	DBDSN    string

	BlobBasePath string // archive dir for generated PDF exports

	CORSOrigins []string

	AuthSecret  string // HMAC key for the session cookie JWT
	RequireAuth bool   // gate the /api surface behind a valid session

	EnableGitHubAuth   bool
	GitHubClientID     string
	GitHubClientSecret string
	GitHubRedirectURI  string
}

func FromEnv() Config {
	addr := os.Getenv("HTTP_ADDR")
	if addr == "" {
		addr = ":5000"
	}
	pub := os.Getenv("PUBLIC_URL")
	defRedirect := ""
	if pub != "" {
		defRedirect = strings.TrimSuffix(pub, "/") + "/api/auth/github/callback"
	}
	return Config{
		HTTPAddr:    addr,
		PublicURL:   pub,
		FrontendURL: envOr("FRONTEND_URL", "http://localhost:3000"),

		DBDriver: envOr("DB_DRIVER", "sqlite"),
		DBDSN:    envOr("DB_DSN", ""),

		BlobBasePath: envOr("BLOB_BASE_PATH", "./data"),

		CORSOrigins: csvOr("CORS_ORIGINS", "http://localhost:3000"),

		AuthSecret:  envOr("AUTH_HMAC_SECRET", "supersecret-dev-key"),
		RequireAuth: envBool("REQUIRE_AUTH", false),

		EnableGitHubAuth:   envBool("ENABLE_GITHUB_AUTH", false),
		GitHubClientID:     os.Getenv("GITHUB_CLIENT_ID"),
		GitHubClientSecret: os.Getenv("GITHUB_CLIENT_SECRET"),
		GitHubRedirectURI:  envOr("GITHUB_REDIRECT_URI", defRedirect),
	}
}

func envOr(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}

func envBool(k string, def bool) bool {
	switch os.Getenv(k) {
	case "1", "true", "TRUE", "yes", "YES":
		return true
	case "0", "false", "FALSE", "no", "NO":
		return false
	default:
		return def
	}
}

func csvOr(k, def string) []string {
	v := envOr(k, def)
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}
