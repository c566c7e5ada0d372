// Command storectl drives the GymSup storefront API from a terminal: sign
// in, browse products and manage the cart without a browser.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	serverURL string
	statePath string
)

var rootCmd = &cobra.Command{
	Use:   "storectl",
	Short: "GymSup storefront command-line client",
	Long: `storectl talks to a running GymSup storefront server.

The session is kept in ~/.gymsup/session.yaml so a login survives between
invocations. Use --state to keep several sessions apart.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "", "storefront base URL (default $GYMSUP_SERVER or http://localhost:3000)")
	rootCmd.PersistentFlags().StringVar(&statePath, "state", "", "state file (default ~/.gymsup/session.yaml)")
}

// withClient loads state, runs fn and persists any cookie changes, even
// when fn fails.
func withClient(cmd *cobra.Command, fn func(ctx context.Context, c *Client, s *State) error) error {
	path := statePath
	if path == "" {
		var err error
		if path, err = DefaultStatePath(); err != nil {
			return err
		}
	}

	state, err := LoadState(path)
	if err != nil {
		return err
	}
	switch {
	case serverURL != "":
		state.Server = serverURL
	case state.Server == "":
		state.Server = os.Getenv("GYMSUP_SERVER")
		if state.Server == "" {
			state.Server = "http://localhost:3000"
		}
	}

	runErr := fn(cmd.Context(), NewClient(state), state)
	if err := state.Save(path); err != nil {
		if runErr != nil {
			return runErr
		}
		return err
	}
	return runErr
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
