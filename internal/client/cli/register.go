package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (c *Cli) registerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account on the cloud service",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c.io.Println("=== Registration ===")

			username, err := c.io.ReadInput("Username: ")
			if err != nil {
				return fmt.Errorf("failed to read username: %w", err)
			}
			password, err := c.getPassword("Password: ")
			if err != nil {
				return err
			}

			accountID, err := c.deps.Session.Register(cmd.Context(), username, password)
			if err != nil {
				return fmt.Errorf("registration failed: %w", err)
			}

			c.io.Println()
			c.io.Println("✓ Registration successful!")
			c.io.Printf("Account ID: %s\n", accountID)
			c.io.Println("Run 'wanderlust login' to grant the journal access to your files and calendar.")
			return nil
		},
	}
	c.addPasswordFlags(cmd)
	return cmd
}
