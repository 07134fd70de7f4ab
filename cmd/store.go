package main

import (
	"context"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/clearhaul/dispatch-cli/internal/config"
	"github.com/clearhaul/dispatch-cli/internal/extract"
	"github.com/clearhaul/dispatch-cli/internal/pricing"
	"github.com/clearhaul/dispatch-cli/internal/store"
)

// initStore opens the configured order store and runs migrations.
func initStore(ctx context.Context, cfg *config.Config) (store.Store, error) {
	var (
		st  store.Store
		err error
	)
	switch cfg.Store.Driver {
	case "postgres":
		st, err = store.NewPostgres(ctx, cfg.Store.DatabaseURL)
	case "sqlite", "":
		st, err = store.NewSQLite(cfg.Store.SQLitePath)
	default:
		return nil, eris.Errorf("unknown store driver %q", cfg.Store.Driver)
	}
	if err != nil {
		return nil, err
	}
	if err := st.Migrate(ctx); err != nil {
		st.Close()
		return nil, err
	}
	zap.L().Debug("store ready", zap.String("driver", cfg.Store.Driver))
	return st, nil
}

// initAreas loads the service-area table when one is configured. A missing
// path is not an error: the orchestrator leaves service_area empty.
func initAreas(cfg *config.Config) (extract.AreaResolver, error) {
	if cfg.Pricing.AreaTablePath == "" {
		return nil, nil
	}
	table, err := pricing.Load(cfg.Pricing.AreaTablePath)
	if err != nil {
		return nil, err
	}
	zap.L().Debug("service-area table loaded",
		zap.String("path", cfg.Pricing.AreaTablePath),
		zap.Int("areas", len(table.Areas)),
	)
	return table, nil
}
