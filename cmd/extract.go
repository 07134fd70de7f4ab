package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/clearhaul/dispatch-cli/internal/extract"
	"github.com/clearhaul/dispatch-cli/internal/model"
)

var (
	extractPayloadPath string
	extractSave        bool
)

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Resolve one extraction payload into a canonical order",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		data, err := os.ReadFile(extractPayloadPath)
		if err != nil {
			return eris.Wrap(err, "read payload")
		}
		var raw any
		if err := json.Unmarshal(data, &raw); err != nil {
			return eris.Wrap(err, "decode payload")
		}

		areas, err := initAreas(cfg)
		if err != nil {
			return err
		}

		form := extract.InitForm(raw, areas)
		if form == nil {
			return eris.Errorf("payload %s is not an object-like document", extractPayloadPath)
		}

		if extractSave {
			st, err := initStore(ctx, cfg)
			if err != nil {
				return err
			}
			defer st.Close()

			order, err := st.CreateOrder(ctx, form, model.OrderSourceImport)
			if err != nil {
				return err
			}
			zap.L().Info("order saved",
				zap.String("id", order.ID),
				zap.String("vin", form.Vehicle.VIN),
			)
		}

		out, err := json.MarshalIndent(form, "", "  ")
		if err != nil {
			return eris.Wrap(err, "encode form")
		}
		fmt.Println(string(out))
		return nil
	},
}

func init() {
	extractCmd.Flags().StringVar(&extractPayloadPath, "payload", "", "path to payload JSON file (required)")
	extractCmd.Flags().BoolVar(&extractSave, "save", false, "store the resolved order")
	_ = extractCmd.MarkFlagRequired("payload")
	rootCmd.AddCommand(extractCmd)
}
