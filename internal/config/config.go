package config

import (
	"os"
	"strings"

	"github.com/roamerv/dealer-backend/internal/errs"
)

type Config struct {
	ProjectID      string
	DatabaseURL    string
	Region         string
	LogLevel       string
	VertexModel    string
	AdminAllowlist []string
	FeedPollSpec   string
}

func New() *Config {
	cfg := &Config{
		ProjectID:    os.Getenv("PROJECTID"),
		DatabaseURL:  os.Getenv("DATABASEURL"),
		Region:       os.Getenv("REGION"),
		LogLevel:     os.Getenv("LOGLEVEL"),
		VertexModel:  os.Getenv("VERTEXMODEL"),
		FeedPollSpec: os.Getenv("FEEDPOLLSPEC"),
	}
	if cfg.FeedPollSpec == "" {
		cfg.FeedPollSpec = "@every 30s"
	}
	for _, email := range strings.Split(os.Getenv("ADMINALLOWLIST"), ",") {
		if email = strings.TrimSpace(email); email != "" {
			cfg.AdminAllowlist = append(cfg.AdminAllowlist, email)
		}
	}
	return cfg
}

func (c *Config) Validate() error {
	if c.ProjectID == "" {
		return errs.NewConfigError("PROJECTID", "project id is required")
	}
	if c.DatabaseURL == "" {
		return errs.NewConfigError("DATABASEURL", "realtime database url is required")
	}
	return nil
}
