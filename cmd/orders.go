package main

import (
	"encoding/json"
	"fmt"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/clearhaul/dispatch-cli/internal/model"
	"github.com/clearhaul/dispatch-cli/internal/store"
)

var ordersCmd = &cobra.Command{
	Use:   "orders",
	Short: "Inspect stored orders",
}

var (
	ordersListSource string
	ordersListStatus string
	ordersListLimit  int
)

var ordersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored orders",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		st, err := initStore(ctx, cfg)
		if err != nil {
			return err
		}
		defer st.Close()

		orders, err := st.ListOrders(ctx, store.OrderFilter{
			Source: model.OrderSource(ordersListSource),
			Status: model.OrderStatus(ordersListStatus),
			Limit:  ordersListLimit,
		})
		if err != nil {
			return err
		}

		for _, order := range orders {
			fmt.Printf("%s  %-8s %-9s %-20s %s\n",
				order.ID,
				order.Source,
				order.Status,
				order.Form.Vehicle.VIN,
				order.CreatedAt.Format("2006-01-02 15:04"),
			)
		}
		zap.L().Debug("orders listed", zap.Int("count", len(orders)))
		return nil
	},
}

var ordersShowCmd = &cobra.Command{
	Use:   "show <order-id>",
	Short: "Print one stored order as JSON",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		st, err := initStore(ctx, cfg)
		if err != nil {
			return err
		}
		defer st.Close()

		order, err := st.GetOrder(ctx, args[0])
		if err != nil {
			return err
		}
		out, err := json.MarshalIndent(order, "", "  ")
		if err != nil {
			return eris.Wrap(err, "encode order")
		}
		fmt.Println(string(out))
		return nil
	},
}

var ordersConfirmCmd = &cobra.Command{
	Use:   "confirm <order-id>",
	Short: "Mark an order as confirmed",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		st, err := initStore(ctx, cfg)
		if err != nil {
			return err
		}
		defer st.Close()

		if err := st.UpdateOrderStatus(ctx, args[0], model.OrderStatusConfirmed); err != nil {
			return err
		}
		zap.L().Info("order confirmed", zap.String("id", args[0]))
		return nil
	},
}

func init() {
	ordersListCmd.Flags().StringVar(&ordersListSource, "source", "", "filter by source (webhook|manual|import)")
	ordersListCmd.Flags().StringVar(&ordersListStatus, "status", "", "filter by status (draft|confirmed)")
	ordersListCmd.Flags().IntVar(&ordersListLimit, "limit", 50, "max orders to list")
	ordersCmd.AddCommand(ordersListCmd, ordersShowCmd, ordersConfirmCmd)
	rootCmd.AddCommand(ordersCmd)
}
