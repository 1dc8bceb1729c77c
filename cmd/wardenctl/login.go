package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/doodlesbykumbi/warden/pkg/authn"
	"github.com/doodlesbykumbi/warden/pkg/authn/apikey"
	"github.com/doodlesbykumbi/warden/pkg/db"
	"github.com/doodlesbykumbi/warden/pkg/flow"
	"github.com/doodlesbykumbi/warden/pkg/security"
)

// loginCmd represents the login command
var loginCmd = &cobra.Command{
	Use:   "login <login>",
	Short: "Authenticate a login and secret against the credential store",
	Long: `Authenticate a login against the credentials table.

The secret is read from stdin. The database is located through
DATABASE_URL.

Example:
  echo -n "$SECRET" | wardenctl login alice`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := login(args[0]); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to authenticate: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(loginCmd)
}

func login(loginName string) error {
	secret, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil && secret == "" {
		return fmt.Errorf("failed to read secret from stdin: %w", err)
	}
	secret = strings.TrimRight(secret, "\r\n")

	database, err := db.Connect(db.Config{})
	if err != nil {
		return err
	}

	facade := security.New(security.WithAuthenticator(apikey.New(database)))
	ctx := flow.NewContext(context.Background())

	if err := facade.Authenticate(ctx, authn.Credentials{
		Login:  loginName,
		Secret: []byte(secret),
	}); err != nil {
		return err
	}

	for _, p := range facade.Principals(ctx) {
		fmt.Printf("principal: %s\n", p)
	}
	return nil
}
