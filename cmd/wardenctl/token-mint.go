package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// tokenMintCmd represents the token mint command
var tokenMintCmd = &cobra.Command{
	Use:   "mint <subject>",
	Short: "Mint a signed token for a subject",
	Long: `Mint a signed token for a subject.

The token is signed with WARDEN_SIGNING_KEY and carries the issuer,
audience and TTL from configuration.

Example:
  wardenctl token mint alice --roles admin,auditor`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		roles, _ := cmd.Flags().GetStringSlice("roles")

		if err := mintToken(args[0], roles); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to mint token: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	tokenCmd.AddCommand(tokenMintCmd)
	tokenMintCmd.Flags().StringSlice("roles", nil, "Roles to embed in the token")
}

func mintToken(subject string, roles []string) error {
	auth, cfg, err := jwtAuthenticator(nil)
	if err != nil {
		return err
	}

	signed, err := auth.Mint(subject, roles, cfg.TokenTTL())
	if err != nil {
		return err
	}

	fmt.Println(signed)
	return nil
}
