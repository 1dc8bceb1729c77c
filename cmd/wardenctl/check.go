package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/doodlesbykumbi/warden/pkg/authn"
	"github.com/doodlesbykumbi/warden/pkg/authz"
	"github.com/doodlesbykumbi/warden/pkg/flow"
	"github.com/doodlesbykumbi/warden/pkg/security"
)

// checkCmd represents the check command
var checkCmd = &cobra.Command{
	Use:   "check <privilege> <resource>",
	Short: "Check a permission for a token's identity",
	Long: `Authenticate a token and check a permission against a policy file.

The policy file maps roles to permission grants:

  admin:
    - privilege: "*"
      resource: "*"
  reader:
    - privilege: read
      resource: secret:db-password

Exit status is 0 when the permission is granted and 1 otherwise.

Example:
  wardenctl check --token "$TOKEN" --policy policy.yml read secret:db-password`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		token, _ := cmd.Flags().GetString("token")
		policyFile, _ := cmd.Flags().GetString("policy")

		if err := checkPermission(token, policyFile, args[0], args[1]); err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			os.Exit(1)
		}
		fmt.Println("allowed")
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
	checkCmd.Flags().String("token", "", "Token to authenticate")
	checkCmd.Flags().String("policy", "", "Policy file with role grants")
	_ = checkCmd.MarkFlagRequired("token")
	_ = checkCmd.MarkFlagRequired("policy")
}

func checkPermission(token, policyFile, privilege, resource string) error {
	rules, err := loadPolicy(policyFile)
	if err != nil {
		return fmt.Errorf("failed to load policy: %w", err)
	}

	auth, _, err := jwtAuthenticator(rules)
	if err != nil {
		return err
	}

	facade := security.New(security.WithAuthenticator(auth))
	ctx := flow.NewContext(context.Background())

	if err := facade.Authenticate(ctx, authn.BearerToken(token)); err != nil {
		return err
	}

	return facade.CheckPermission(ctx, authz.Permission{
		Privilege: privilege,
		Resource:  resource,
	})
}

type policyGrant struct {
	Privilege string `yaml:"privilege"`
	Resource  string `yaml:"resource"`
}

func loadPolicy(path string) (*authz.RuleSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var grants map[string][]policyGrant
	if err := yaml.Unmarshal(data, &grants); err != nil {
		return nil, err
	}

	rules := authz.NewRuleSet()
	for role, perms := range grants {
		for _, g := range perms {
			rules.Grant(role, authz.Permission{Privilege: g.Privilege, Resource: g.Resource})
		}
	}
	return rules, nil
}
