// Package cli implements inventoryctl, a command-line client for the inventory API.
package cli

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
)

const defaultServer = "http://localhost:8081"

// options holds the persistent flags shared by every subcommand
type options struct {
	server  string
	timeout time.Duration
}

func (o *options) client() *Client {
	return NewClient(o.server, &http.Client{Timeout: o.timeout})
}

// NewRootCommand builds the inventoryctl command tree
func NewRootCommand() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:   "inventoryctl",
		Short: "Inventory ledger client - record purchases and review projected earnings",
		Long: `inventoryctl talks to the inventory server's HTTP API.

Example Usage:
  inventoryctl submit --asset-id SKU-1 --name Widget --quantity 10 --paid 100 --tax 10 --sale-price 15
  inventoryctl list
  inventoryctl export --out inventory.xlsx`,
		SilenceUsage: true,
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Help()
		},
	}

	server := os.Getenv("INVENTORY_SERVER")
	if server == "" {
		server = defaultServer
	}

	rootCmd.PersistentFlags().StringVar(&opts.server, "server", server, "Base URL of the inventory HTTP API (env INVENTORY_SERVER)")
	rootCmd.PersistentFlags().DurationVar(&opts.timeout, "timeout", 10*time.Second, "Request timeout")

	rootCmd.AddCommand(
		newSubmitCmd(opts),
		newListCmd(opts),
		newTotalsCmd(opts),
		newProductsCmd(opts),
		newExportCmd(opts),
		newVersionCmd(),
	)

	return rootCmd
}

// Execute runs the root command and exits non-zero on failure
func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
