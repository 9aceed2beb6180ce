package cli

import (
	"github.com/spf13/cobra"

	"github.com/iudanet/wanderlust/internal/client/config"
)

// Root собирает дерево команд
func (c *Cli) Root(version string) *cobra.Command {
	root := &cobra.Command{
		Use:                "wanderlust",
		Short:              "Wanderlust travel journal",
		Long:               "Plan trips, track budgets, keep photo albums, back up the journal and push itineraries to the calendar.",
		Version:            version,
		SilenceUsage:       true,
		PersistentPreRunE:  c.setup,
		PersistentPostRunE: c.teardown,
	}
	root.SetOut(c.io)
	root.SetErr(c.io)

	flags := root.PersistentFlags()
	flags.StringVar(&c.configPath, "config", config.DefaultPath(), "path to config file")
	flags.StringVar(&c.serverURL, "server", "", "cloud service URL (overrides config)")
	flags.StringVar(&c.dbPath, "db", "", "path to local journal database (overrides config)")
	flags.StringVar(&c.logLevel, "log-level", "", "log level: debug, info, warn, error")

	root.AddCommand(
		c.registerCmd(),
		c.loginCmd(),
		c.logoutCmd(),
		c.statusCmd(),
		c.tripCmd(),
		c.eventCmd(),
		c.flightCmd(),
		c.dayCmd(),
		c.photoCmd(),
		c.vlogCmd(),
		c.memoCmd(),
		c.plannerCmd(),
		c.profileCmd(),
		c.settingsCmd(),
		c.backupCmd(),
		c.restoreCmd(),
		c.syncCmd(),
		c.calendarCmd(),
	)
	return root
}

func (c *Cli) addPasswordFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&c.passwords.FromFile, "password-file", "", "path to file containing the account password")
	cmd.Flags().StringVar(&c.passwords.FromArgs, "password", "", "account password (not recommended, use "+PasswordEnv+" or --password-file)")
}
