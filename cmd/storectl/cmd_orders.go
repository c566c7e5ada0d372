package main

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/dukerupert/gymsup/internal/domain"
)

var ordersCmd = &cobra.Command{
	Use:   "orders",
	Short: "Order history",
}

var ordersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List your orders",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withClient(cmd, func(ctx context.Context, c *Client, s *State) error {
			var result struct {
				Orders []domain.Order `json:"orders"`
			}
			if err := c.Do(ctx, http.MethodGet, "/api/orders", nil, &result); err != nil {
				return err
			}
			if len(result.Orders) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No orders yet")
				return nil
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tDATE\tSTATUS\tPAYMENT\tTOTAL")
			for _, o := range result.Orders {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", o.ID, o.DateLabel, o.StatusLabel, o.PaymentStatusLabel, formatVND(o.Total.IntPart()))
			}
			return tw.Flush()
		})
	},
}

var ordersCancelCmd = &cobra.Command{
	Use:   "cancel <id>",
	Short: "Cancel a pending order",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withClient(cmd, func(ctx context.Context, c *Client, s *State) error {
			var result struct {
				Orders []domain.Order `json:"orders"`
			}
			if err := c.Do(ctx, http.MethodGet, "/api/orders", nil, &result); err != nil {
				return err
			}

			var order *domain.Order
			for i := range result.Orders {
				if result.Orders[i].ID == args[0] {
					order = &result.Orders[i]
					break
				}
			}
			if order == nil {
				return fmt.Errorf("order %s not found", args[0])
			}
			if !order.CanCancel() {
				return fmt.Errorf("order %s is %s and can no longer be cancelled", order.ID, order.StatusLabel)
			}

			if err := c.Do(ctx, http.MethodPost, "/api/orders/"+url.PathEscape(order.ID)+"/cancel", nil, nil); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Order %s cancelled\n", order.ID)
			return nil
		})
	},
}

func init() {
	ordersCmd.AddCommand(ordersListCmd)
	ordersCmd.AddCommand(ordersCancelCmd)
	rootCmd.AddCommand(ordersCmd)
}
