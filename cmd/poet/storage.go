package main

import (
	"context"
	"fmt"
	"github.com/gissleh/poet/adapters/jsonstorage"
	"github.com/gissleh/poet/adapters/sourcestorage"
	"github.com/gissleh/poet/adapters/sqlitestorage"
	"github.com/gissleh/poet/internal/config"
	"github.com/gissleh/poet/service"
	"go.uber.org/zap"
)

// attachStorage opens the configured poem library and sets it on the service. The returned
// function closes it again.
func attachStorage(ctx context.Context) (func(), error) {
	storage, closeFn, err := openStorage(ctx, app.cfg.Storage, app.svc, app.logger)
	if err != nil {
		return nil, err
	}

	app.svc.Storage = storage
	app.svc.ReadOnly = app.cfg.Storage.ReadOnly

	return func() {
		if closeFn != nil {
			if err := closeFn(); err != nil {
				app.logger.Warn("could not close storage", zap.Error(err))
			}
		}
	}, nil
}

func openStorage(ctx context.Context, cfg config.StorageConfig, svc *service.Service, logger *zap.Logger) (service.PoemStorage, func() error, error) {
	switch cfg.Driver {
	case "none":
		return nil, nil, nil
	case "json":
		storage, err := jsonstorage.Open(cfg.Path, cfg.ReadOnly)
		if err != nil {
			return nil, nil, fmt.Errorf("could not open json storage: %w", err)
		}

		return storage, nil, nil
	case "yaml":
		storage, err := sourcestorage.Open(ctx, cfg.Path, svc.Dictionary, logger.Named("sourcestorage"))
		if err != nil {
			return nil, nil, fmt.Errorf("could not open yaml storage: %w", err)
		}
		logger.Info("poems loaded", zap.Int("count", storage.PoemCount()))

		return storage, nil, nil
	case "sqlite":
		storage, err := sqlitestorage.Open(ctx, cfg.Path, cfg.ReadOnly)
		if err != nil {
			return nil, nil, fmt.Errorf("could not open sqlite storage: %w", err)
		}

		return storage, storage.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}
