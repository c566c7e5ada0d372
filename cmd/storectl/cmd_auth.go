package main

import (
	"context"
	"fmt"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/dukerupert/gymsup/internal/domain"
)

var (
	loginEmail    string
	loginPassword string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in to the storefront",
	RunE: func(cmd *cobra.Command, args []string) error {
		if loginEmail == "" || loginPassword == "" {
			return fmt.Errorf("--email and --password are required")
		}
		return withClient(cmd, func(ctx context.Context, c *Client, s *State) error {
			var result struct {
				User *domain.User       `json:"user"`
				Cart domain.CartSummary `json:"cart"`
				Page string             `json:"page"`
			}
			creds := domain.Credentials{Email: loginEmail, Password: loginPassword}
			if err := c.Do(ctx, http.MethodPost, "/api/auth/login", creds, &result); err != nil {
				return err
			}
			if result.User == nil {
				return fmt.Errorf("login response carried no user")
			}
			s.Email = result.User.Email

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Signed in as %s (%s)\n", result.User.Name, result.User.Role)
			return nil
		})
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out and forget the session",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withClient(cmd, func(ctx context.Context, c *Client, s *State) error {
			if err := c.Do(ctx, http.MethodPost, "/api/auth/logout", nil, nil); err != nil {
				return err
			}
			s.Email = ""
			fmt.Fprintln(cmd.OutOrStdout(), "Signed out")
			return nil
		})
	},
}

func init() {
	loginCmd.Flags().StringVar(&loginEmail, "email", "", "account email")
	loginCmd.Flags().StringVar(&loginPassword, "password", "", "account password")
	rootCmd.AddCommand(loginCmd, logoutCmd)
}
