package main

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync/atomic"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/clearhaul/dispatch-cli/internal/extract"
	"github.com/clearhaul/dispatch-cli/internal/model"
	"github.com/clearhaul/dispatch-cli/internal/store"
)

var (
	batchDir         string
	batchConcurrency int
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Extract and store every payload JSON file in a directory",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		paths, err := filepath.Glob(filepath.Join(batchDir, "*.json"))
		if err != nil {
			return eris.Wrap(err, "glob payload dir")
		}

		areas, err := initAreas(cfg)
		if err != nil {
			return err
		}
		st, err := initStore(ctx, cfg)
		if err != nil {
			return err
		}
		defer st.Close()

		concurrency := batchConcurrency
		if concurrency <= 0 {
			concurrency = cfg.Batch.Concurrency
		}

		succeeded, failed := processPayloadBatch(ctx, st, areas, paths, concurrency)
		zap.L().Info("batch complete",
			zap.Int64("succeeded", succeeded),
			zap.Int64("failed", failed),
			zap.Int("total", len(paths)),
		)
		return nil
	},
}

// processPayloadBatch extracts each payload file concurrently. Individual
// failures are logged, not fatal: one malformed payload must never block the
// rest of the batch.
func processPayloadBatch(ctx context.Context, st store.Store, areas extract.AreaResolver, paths []string, concurrency int) (int64, int64) {
	if len(paths) == 0 {
		zap.L().Info("no payload files found")
		return 0, 0
	}

	zap.L().Info("processing batch",
		zap.Int("payloads", len(paths)),
		zap.Int("concurrency", concurrency),
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	var succeeded, failed atomic.Int64

	for _, path := range paths {
		g.Go(func() error {
			log := zap.L().With(zap.String("payload", path))

			order, err := extractPayloadFile(gctx, st, areas, path)
			if err != nil {
				failed.Add(1)
				log.Error("payload extraction failed", zap.Error(err))
				return nil // don't abort batch on individual failure
			}

			succeeded.Add(1)
			log.Info("order created",
				zap.String("id", order.ID),
				zap.String("vin", order.Form.Vehicle.VIN),
			)
			return nil
		})
	}

	_ = g.Wait()
	return succeeded.Load(), failed.Load()
}

func extractPayloadFile(ctx context.Context, st store.Store, areas extract.AreaResolver, path string) (*model.Order, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrap(err, "read payload")
	}
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, eris.Wrap(err, "decode payload")
	}
	form := extract.InitForm(raw, areas)
	if form == nil {
		return nil, eris.New("payload is not an object-like document")
	}
	return st.CreateOrder(ctx, form, model.OrderSourceImport)
}

func init() {
	batchCmd.Flags().StringVar(&batchDir, "dir", "", "directory of payload JSON files (required)")
	batchCmd.Flags().IntVar(&batchConcurrency, "concurrency", 0, "concurrent extractions (default from config)")
	_ = batchCmd.MarkFlagRequired("dir")
	rootCmd.AddCommand(batchCmd)
}
