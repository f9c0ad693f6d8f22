package bootstrap

import (
	"context"
	"log/slog"

	"firebase.google.com/go/v4/auth"
	"firebase.google.com/go/v4/db"

	vertexclient "github.com/roamerv/dealer-backend/internal/client/vertex"
	"github.com/roamerv/dealer-backend/internal/config"
	"github.com/roamerv/dealer-backend/pkg/logger"
)

type Bootstrap struct {
	Log           *slog.Logger
	Database      *db.Client
	Firebase      *auth.Client
	VertexAdapter *vertexclient.Adapter
}

func Run(cfg *config.Config) (*Bootstrap, error) {
	var err error
	applicationCtx := context.Background()
	bs := new(Bootstrap)

	bs.Log = logger.New(cfg.LogLevel, logger.NewCloudRunHandler)
	if err = cfg.Validate(); err != nil {
		return bs, err
	}
	bs.Database, bs.Firebase, err = InitFirebase(applicationCtx, cfg.DatabaseURL)
	if err != nil {
		return bs, err
	}

	// Insights run without a model configured; the service reports the
	// missing config on use instead of failing startup.
	if cfg.VertexModel != "" {
		bs.VertexAdapter, err = vertexclient.NewAdapter(applicationCtx, bs.Log, cfg.ProjectID, cfg.Region, cfg.VertexModel)
		if err != nil {
			return bs, err
		}
	}

	return bs, nil
}

func (bs *Bootstrap) Close() {
	if bs.VertexAdapter != nil {
		bs.VertexAdapter.Close()
	}
}
