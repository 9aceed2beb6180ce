package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (c *Cli) loginCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "login",
		Short: "Authorize access to cloud files and calendar",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := c.deps.Session.ValidateToken(cmd.Context()); err != nil {
				return fmt.Errorf("login failed: %w", err)
			}
			c.io.Printf("✓ Logged in as %s\n", c.deps.Session.Username(cmd.Context()))
			return nil
		},
	}
}

func (c *Cli) logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the cached access token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := c.deps.Session.Logout(cmd.Context()); err != nil {
				return err
			}
			c.io.Println("✓ Logged out")
			return nil
		},
	}
}
