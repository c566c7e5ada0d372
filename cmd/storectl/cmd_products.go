package main

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/dukerupert/gymsup/internal/domain"
)

var (
	listCategory string
	listBrand    string
	listSearch   string
	listSort     string
	listInStock  bool
)

var productsCmd = &cobra.Command{
	Use:   "products",
	Short: "Browse the catalog",
}

var productsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List products",
	RunE: func(cmd *cobra.Command, args []string) error {
		q := url.Values{}
		setIf(q, "category", listCategory)
		setIf(q, "brand", listBrand)
		setIf(q, "q", listSearch)
		setIf(q, "sort", listSort)
		if listInStock {
			q.Set("inStock", "true")
		}

		path := "/api/products"
		if len(q) > 0 {
			path += "?" + q.Encode()
		}

		return withClient(cmd, func(ctx context.Context, c *Client, s *State) error {
			var result domain.BrowseResult
			if err := c.Do(ctx, http.MethodGet, path, nil, &result); err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tNAME\tBRAND\tPRICE\tSTOCK")
			for _, p := range result.Products {
				fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%d\n", p.ID, p.Name, p.Brand, formatVND(p.Price.IntPart()), p.StockQuantity)
			}
			return tw.Flush()
		})
	},
}

var productsShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a product with its variants",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withClient(cmd, func(ctx context.Context, c *Client, s *State) error {
			var p domain.Product
			if err := c.Do(ctx, http.MethodGet, "/api/products/"+url.PathEscape(args[0]), nil, &p); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s\n%s · %s · %.1f★ (%d)\n\n", p.Name, p.Brand, p.Category, p.Rating, p.ReviewCount)
			tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "SKU\tFLAVOR\tSIZE\tPRICE\tSTOCK")
			for _, v := range p.Variants {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\n", v.SKU, v.Flavor, v.Size, formatVND(v.Price.IntPart()), v.StockQuantity)
			}
			return tw.Flush()
		})
	},
}

func init() {
	productsListCmd.Flags().StringVar(&listCategory, "category", "", "filter by category")
	productsListCmd.Flags().StringVar(&listBrand, "brand", "", "filter by brand")
	productsListCmd.Flags().StringVar(&listSearch, "search", "", "search product names")
	productsListCmd.Flags().StringVar(&listSort, "sort", "", "default|popularity|price-asc|price-desc")
	productsListCmd.Flags().BoolVar(&listInStock, "in-stock", false, "only products in stock")

	productsCmd.AddCommand(productsListCmd, productsShowCmd)
	rootCmd.AddCommand(productsCmd)
}

func setIf(q url.Values, key, value string) {
	if value != "" {
		q.Set(key, value)
	}
}

// formatVND renders 1650000 as "1.650.000₫".
func formatVND(amount int64) string {
	sign := ""
	if amount < 0 {
		sign, amount = "-", -amount
	}
	digits := fmt.Sprint(amount)
	var b strings.Builder
	for i, d := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(d)
	}
	return sign + b.String() + "₫"
}
