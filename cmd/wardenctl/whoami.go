package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/doodlesbykumbi/warden/pkg/authn"
	"github.com/doodlesbykumbi/warden/pkg/flow"
	"github.com/doodlesbykumbi/warden/pkg/identity"
	"github.com/doodlesbykumbi/warden/pkg/security"
)

// whoamiCmd represents the whoami command
var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Authenticate a token and print the resolved identity",
	Long: `Authenticate a token through the security facade and print the
identity it resolves to: principals in order, followed by roles.

Example:
  wardenctl whoami --token "$(wardenctl token mint alice --roles admin)"`,
	Run: func(cmd *cobra.Command, args []string) {
		token, _ := cmd.Flags().GetString("token")

		if err := whoami(token); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to resolve identity: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(whoamiCmd)
	whoamiCmd.Flags().String("token", "", "Token to authenticate")
	_ = whoamiCmd.MarkFlagRequired("token")
}

func whoami(token string) error {
	auth, _, err := jwtAuthenticator(nil)
	if err != nil {
		return err
	}

	facade := security.New(security.WithAuthenticator(auth))
	ctx := flow.NewContext(context.Background())

	if err := facade.Authenticate(ctx, authn.BearerToken(token)); err != nil {
		return err
	}

	for _, p := range facade.Principals(ctx) {
		fmt.Printf("principal: %s\n", p)
	}

	if resolved, ok := facade.Current(ctx); ok {
		if r, ok := resolved.(*identity.Resolved); ok {
			for _, role := range r.Roles() {
				fmt.Printf("role: %s\n", role)
			}
		}
	}

	return nil
}
