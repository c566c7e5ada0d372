package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/dukerupert/gymsup/internal/domain"
)

var (
	addProduct int64
	addFlavor  string
	addSize    string
)

var cartCmd = &cobra.Command{
	Use:   "cart",
	Short: "Inspect and change the cart",
}

var cartShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the cart",
	RunE: func(cmd *cobra.Command, args []string) error {
		return cartRequest(cmd, http.MethodGet, "/api/cart", nil)
	},
}

var cartAddCmd = &cobra.Command{
	Use:   "add [sku] [quantity]",
	Short: "Add a SKU, or a product variant picked with --product/--flavor/--size",
	Args:  cobra.RangeArgs(0, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		body := map[string]any{}
		qtyArg := ""
		switch {
		case addProduct > 0:
			body["productId"] = addProduct
			body["flavor"] = addFlavor
			body["size"] = addSize
			if len(args) > 0 {
				qtyArg = args[len(args)-1]
			}
		case len(args) > 0:
			body["sku"] = args[0]
			if len(args) > 1 {
				qtyArg = args[1]
			}
		default:
			return fmt.Errorf("give a SKU or --product")
		}

		qty := 1
		if qtyArg != "" {
			n, err := strconv.Atoi(qtyArg)
			if err != nil || n < 1 {
				return fmt.Errorf("invalid quantity %q", qtyArg)
			}
			qty = n
		}
		body["quantity"] = qty

		return cartRequest(cmd, http.MethodPost, "/api/cart/add", body)
	},
}

var cartUpdateCmd = &cobra.Command{
	Use:   "update <variant-id> <quantity>",
	Short: "Set a line's quantity; zero removes it",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid variant id %q", args[0])
		}
		qty, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid quantity %q", args[1])
		}
		return cartRequest(cmd, http.MethodPost, "/api/cart/update", map[string]any{"variantId": id, "quantity": qty})
	},
}

var cartRemoveCmd = &cobra.Command{
	Use:   "remove <variant-id>",
	Short: "Remove a line",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid variant id %q", args[0])
		}
		return cartRequest(cmd, http.MethodPost, "/api/cart/remove", map[string]any{"variantId": id})
	},
}

var cartClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Empty the cart",
	RunE: func(cmd *cobra.Command, args []string) error {
		return cartRequest(cmd, http.MethodPost, "/api/cart/clear", nil)
	},
}

func init() {
	cartAddCmd.Flags().Int64Var(&addProduct, "product", 0, "product id")
	cartAddCmd.Flags().StringVar(&addFlavor, "flavor", "", "variant flavor")
	cartAddCmd.Flags().StringVar(&addSize, "size", "", "variant size")

	cartCmd.AddCommand(cartShowCmd, cartAddCmd, cartUpdateCmd, cartRemoveCmd, cartClearCmd)
	rootCmd.AddCommand(cartCmd)
}

// cartRequest performs a cart call and prints the resulting cart.
func cartRequest(cmd *cobra.Command, method, path string, body any) error {
	return withClient(cmd, func(ctx context.Context, c *Client, s *State) error {
		var cart domain.CartSummary
		if err := c.Do(ctx, method, path, body, &cart); err != nil {
			return err
		}
		return printCart(cmd.OutOrStdout(), cart)
	})
}

func printCart(w io.Writer, cart domain.CartSummary) error {
	if len(cart.Items) == 0 {
		_, err := fmt.Fprintln(w, "Cart is empty")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "VARIANT\tSKU\tNAME\tQTY\tPRICE\tLINE")
	for _, item := range cart.Items {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%s\t%s\n",
			item.VariantID, item.SKU, item.Name, item.Quantity,
			formatVND(item.Price.IntPart()), formatVND(item.LineTotal().IntPart()))
	}
	fmt.Fprintf(tw, "\t\t\t%d\t\t%s\n", cart.ItemCount, formatVND(cart.Total.IntPart()))
	return tw.Flush()
}
