package config

import (
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	// Store
	MongoDBURI string `envconfig:"MONGODB_URI"`
	DBUser     string `envconfig:"DB_USER"`
	DBPass     string `envconfig:"DB_PASS"`
	DBHost     string `envconfig:"DB_HOST" default:"cluster0.yk1xelo.mongodb.net"`
	DBName     string `envconfig:"DB_NAME" default:"laptopDb"`
	AppName    string `envconfig:"DB_APP_NAME" default:"Cluster0"`

	StoreTimeout time.Duration `envconfig:"STORE_TIMEOUT" default:"5s"`

	// Tokens
	AccessTokenSecret string        `envconfig:"ACCESS_TOKEN_SECRET" required:"true"`
	TokenTTL          time.Duration `envconfig:"TOKEN_TTL" default:"1h"`

	// HTTP
	Port        string   `envconfig:"PORT" default:"5000"`
	CORSOrigins []string `envconfig:"CORS_ORIGINS" default:"*"`

	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
}

var (
	ErrMissingSecret      = errors.New("ACCESS_TOKEN_SECRET must not be empty")
	ErrMissingCredentials = errors.New("DB_USER and DB_PASS are required when MONGODB_URI is not set")
)

// Load reads the configuration from the process environment.
func Load() (Config, error) {
	var c Config
	if err := envconfig.Process("", &c); err != nil {
		return c, fmt.Errorf("load config: %w", err)
	}
	if c.AccessTokenSecret == "" {
		return c, ErrMissingSecret
	}
	if c.MongoDBURI == "" && (c.DBUser == "" || c.DBPass == "") {
		return c, ErrMissingCredentials
	}
	return c, nil
}

// MongoURI returns MONGODB_URI when set, otherwise an Atlas SRV URI built
// from the credentials and host.
func (c Config) MongoURI() string {
	if c.MongoDBURI != "" {
		return c.MongoDBURI
	}
	u := url.URL{
		Scheme: "mongodb+srv",
		User:   url.UserPassword(c.DBUser, c.DBPass),
		Host:   c.DBHost,
		Path:   "/",
	}
	q := url.Values{}
	q.Set("retryWrites", "true")
	q.Set("w", "majority")
	q.Set("appName", c.AppName)
	u.RawQuery = q.Encode()
	return u.String()
}

func (c Config) Addr() string {
	return ":" + c.Port
}
