// Package config loads runtime settings from configs/config.yml, an
// optional .env file and the environment, in increasing precedence.
package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const envProduction = "production"

var ErrMissingSecret = errors.New("auth secret (APP_SECRET) is not set")

// Config holds runtime settings for the API server.
type Config struct {
	Port     string
	Env      string
	LogLevel string
	DBPath   string
	// FrontendOrigins are the browser origins allowed to call the API with
	// cookies (FRONTEND_URL, comma-separated).
	FrontendOrigins []string
	Auth            Auth
	Images          Images
}

// Auth configures access tokens and the cookie that carries them.
type Auth struct {
	Secret     string
	TokenTTL   time.Duration
	CookieName string
}

// Images configures the S3-compatible image host.
type Images struct {
	Bucket        string
	Region        string
	Endpoint      string
	AccessKey     string
	SecretKey     string
	PublicBaseURL string
	Folder        string
	UsePathStyle  bool
	MaxUploadSize int64
}

// IsProduction reports whether cookies must be Secure and cross-site.
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Env, envProduction)
}

var defaults = map[string]any{
	"port":                   "5000",
	"env":                    "development",
	"log.level":              "info",
	"db.path":                "app.db",
	"auth.token_expires_in":  "1d",
	"auth.cookie_name":       "accessToken",
	"images.region":          "us-east-1",
	"images.folder":          "projects",
	"images.use_path_style":  false,
	"images.max_upload_size": 5 << 20,
}

// Environment variable names per key; the first set one wins.
var envBindings = map[string][]string{
	"port":                  {"PORT"},
	"env":                   {"NODE_ENV", "APP_ENV"},
	"log.level":             {"LOG_LEVEL"},
	"db.path":               {"DB_PATH"},
	"cors.frontend_url":     {"FRONTEND_URL"},
	"auth.secret":           {"APP_SECRET"},
	"auth.token_expires_in": {"TOKEN_EXPIRES_IN"},
	"auth.cookie_name":      {"COOKIE_NAME"},
	"images.bucket":         {"S3_BUCKET"},
	"images.region":         {"S3_REGION"},
	"images.endpoint":       {"S3_ENDPOINT"},
	"images.access_key":     {"S3_ACCESS_KEY"},
	"images.secret_key":     {"S3_SECRET_KEY"},
	"images.public_url":     {"S3_PUBLIC_URL"},
	"images.use_path_style": {"S3_USE_PATH_STYLE"},
}

// LoadDotEnv loads variables from the given .env files (default ".env")
// without overriding ones already set.
func LoadDotEnv(files ...string) error {
	return godotenv.Load(files...)
}

// Load reads config.yml from the first matching path (default "configs")
// and overlays environment variables. A missing file is not an error; a
// missing auth secret is.
func Load(paths ...string) (*Config, error) {
	if len(paths) == 0 {
		paths = []string{"configs"}
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yml")
	for _, p := range paths {
		v.AddConfigPath(p)
	}
	for k, val := range defaults {
		v.SetDefault(k, val)
	}
	for k, envs := range envBindings {
		if err := v.BindEnv(append([]string{k}, envs...)...); err != nil {
			return nil, fmt.Errorf("bind env for %q: %w", k, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	ttl, err := ParseTTL(v.GetString("auth.token_expires_in"))
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Port:     v.GetString("port"),
		Env:      v.GetString("env"),
		LogLevel: v.GetString("log.level"),
		DBPath:   v.GetString("db.path"),

		FrontendOrigins: splitList(v.GetString("cors.frontend_url")),
		Auth: Auth{
			Secret:     v.GetString("auth.secret"),
			TokenTTL:   ttl,
			CookieName: v.GetString("auth.cookie_name"),
		},
		Images: Images{
			Bucket:        v.GetString("images.bucket"),
			Region:        v.GetString("images.region"),
			Endpoint:      v.GetString("images.endpoint"),
			AccessKey:     v.GetString("images.access_key"),
			SecretKey:     v.GetString("images.secret_key"),
			PublicBaseURL: v.GetString("images.public_url"),
			Folder:        v.GetString("images.folder"),
			UsePathStyle:  v.GetBool("images.use_path_style"),
			MaxUploadSize: v.GetInt64("images.max_upload_size"),
		},
	}

	if strings.TrimSpace(cfg.Auth.Secret) == "" {
		return nil, ErrMissingSecret
	}
	return cfg, nil
}

// ParseTTL accepts Go durations ("90m", "24h"), whole days ("7d") and
// bare seconds ("3600").
func ParseTTL(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	var (
		d   time.Duration
		err error
	)
	switch {
	case strings.HasSuffix(s, "d"):
		var days int
		days, err = strconv.Atoi(strings.TrimSuffix(s, "d"))
		d = time.Duration(days) * 24 * time.Hour
	default:
		if secs, convErr := strconv.Atoi(s); convErr == nil {
			d = time.Duration(secs) * time.Second
		} else {
			d, err = time.ParseDuration(s)
		}
	}
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid token lifetime %q", s)
	}
	return d, nil
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
