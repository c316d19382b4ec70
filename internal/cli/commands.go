package cli

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/simaogato/inventory-backend/internal/domain"
)

func newSubmitCmd(opts *options) *cobra.Command {
	var req SubmitItemRequest

	cmd := &cobra.Command{
		Use:   "submit",
		Short: "Record a purchase in the inventory ledger",
		Long: `Submit sends one product-entry form to the server.

Numeric values are sent exactly as typed; the server validates them.
Repeat --tax for each tax/VAT line.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := opts.client().SubmitItem(cmd.Context(), req)
			if err != nil {
				var verrs domain.ValidationErrors
				if errors.As(err, &verrs) {
					printValidationErrors(cmd.ErrOrStderr(), verrs)
					return errors.New("submission rejected")
				}
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Recorded item %d (%s)\n", resp.Item.ID, resp.Item.Name)
			fmt.Fprintf(out, "Unit paid: %s  Projected earnings: %s  Margin: %s%%\n",
				resp.Item.UnitPaid, resp.Item.ProjectedEarnings, resp.Item.MarginPercent)
			if resp.SyncWarning != "" {
				fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %s\n", resp.SyncWarning)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&req.AssetID, "asset-id", "", "Asset ID (required)")
	cmd.Flags().StringVar(&req.Name, "name", "", "Product name (required)")
	cmd.Flags().StringVar(&req.Description, "description", "", "Product description")
	cmd.Flags().StringVar(&req.Quantity, "quantity", "", "Quantity (defaults to 1)")
	cmd.Flags().StringVar(&req.AmountPaid, "paid", "", "Total paid for all units (required)")
	cmd.Flags().StringArrayVar(&req.TaxLines, "tax", nil, "Tax/VAT paid, repeatable")
	cmd.Flags().StringVar(&req.ProjectedSalePrice, "sale-price", "", "Projected sale price per unit")

	return cmd
}

func printValidationErrors(w io.Writer, verrs domain.ValidationErrors) {
	fields := make([]string, 0, len(verrs))
	for field := range verrs {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	for _, field := range fields {
		fmt.Fprintf(w, "  %s: %s\n", field, verrs[field])
	}
}

func newListCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Show the inventory table with its totals row",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			inv, err := opts.client().ListItems(cmd.Context())
			if err != nil {
				return err
			}
			return printInventory(cmd.OutOrStdout(), inv)
		},
	}
}

func printInventory(w io.Writer, inv *Inventory) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "ID\tAsset ID\tName\tQty\tPaid\tTax\tUnit\tSale\tProj. Tax\tEarnings\tMargin %\t")
	for _, item := range inv.Items {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t\n",
			item.ID, item.AssetID, item.Name, item.Quantity,
			item.AmountPaid, item.TaxPaid, item.UnitPaid, item.ProjectedSalePrice,
			item.ProjectedTaxExpected, item.ProjectedEarnings, item.MarginPercent)
	}
	t := inv.Totals
	fmt.Fprintf(tw, "Total\t\t\t%d\t%s\t%s\t\t\t%s\t%s\t\t\n",
		t.ItemCount, t.AmountPaid, t.TaxPaid, t.ProjectedTaxExpected, t.ProjectedEarnings)
	return tw.Flush()
}

func newTotalsCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "totals",
		Short: "Show the totals row",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := opts.client().Totals(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Items:              %d\n", t.ItemCount)
			fmt.Fprintf(out, "Total paid:         %s\n", t.AmountPaid)
			fmt.Fprintf(out, "Tax paid:           %s\n", t.TaxPaid)
			fmt.Fprintf(out, "Projected tax:      %s\n", t.ProjectedTaxExpected)
			fmt.Fprintf(out, "Projected earnings: %s\n", t.ProjectedEarnings)
			return nil
		},
	}
}

func newProductsCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "products",
		Short: "List products held by the server's product store",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			products, err := opts.client().Products(cmd.Context())
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tLedger ID\tAsset ID\tName\tQty\tPrice")
			for _, p := range products {
				ledgerID := "-"
				if p.LedgerID != nil {
					ledgerID = fmt.Sprint(*p.LedgerID)
				}
				fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%d\t%.2f\n", p.ID, ledgerID, p.AssetID, p.Name, p.Quantity, p.Price)
			}
			return tw.Flush()
		},
	}
}

func newExportCmd(opts *options) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the inventory table to an Excel workbook",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			inv, err := opts.client().ListItems(cmd.Context())
			if err != nil {
				return err
			}
			if err := WriteWorkbook(inv, out); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d items to %s\n", len(inv.Items), out)
			return nil
		},
	}

	cmd.Flags().StringVar(&out, "out", "inventory.xlsx", "Output workbook path")

	return cmd
}
