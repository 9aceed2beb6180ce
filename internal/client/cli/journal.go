package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/iudanet/wanderlust/internal/models"
)

func (c *Cli) memoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "memo",
		Short: "Notes on the memo board",
	}

	var color string
	add := &cobra.Command{
		Use:   "add <text>",
		Short: "Pin a memo",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			memo, err := c.deps.Data.AddMemo(cmd.Context(), models.Memo{
				Text:  strings.Join(args, " "),
				Color: color,
			})
			if err != nil {
				return err
			}
			c.io.Printf("✓ Memo added (ID: %s)\n", memo.ID)
			return nil
		},
	}
	add.Flags().StringVar(&color, "color", "yellow", "memo color")

	list := &cobra.Command{
		Use:   "list",
		Short: "Show memos",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			memos, err := c.deps.Data.Memos(cmd.Context())
			if err != nil {
				return err
			}
			return render(c.io, memoListTemplate, memos)
		},
	}

	del := &cobra.Command{
		Use:   "delete <memo-id>",
		Short: "Remove a memo",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.deps.Data.DeleteMemo(cmd.Context(), args[0]); err != nil {
				return err
			}
			c.io.Println("✓ Memo deleted")
			return nil
		},
	}

	cmd.AddCommand(add, list, del)
	return cmd
}

func (c *Cli) plannerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "planner",
		Short: "Holidays and custom dates on the planner calendar",
	}

	var event models.CustomEvent
	var kind string
	add := &cobra.Command{
		Use:   "add <date> <name>",
		Short: "Add a custom date",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			event.Date = args[0]
			event.Name = strings.Join(args[1:], " ")
			event.Type = models.CustomEventType(kind)
			event.HasReminder = event.ReminderTime != ""

			saved, err := c.deps.Data.AddEvent(cmd.Context(), event)
			if err != nil {
				return err
			}
			c.io.Printf("✓ %s on %s (ID: %s)\n", saved.Name, saved.Date, saved.ID)
			return nil
		},
	}
	add.Flags().StringVar(&event.Color, "color", "blue", "label color")
	add.Flags().StringVar(&kind, "type", string(models.CustomEventCustom), "holiday, custom or nationality-holiday")
	add.Flags().StringVar(&event.ReminderTime, "remind-at", "", "reminder time HH:mm")

	list := &cobra.Command{
		Use:   "list",
		Short: "Show planner dates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			events, err := c.deps.Data.Events(cmd.Context())
			if err != nil {
				return err
			}
			return render(c.io, plannerListTemplate, events)
		},
	}

	cmd.AddCommand(add, list)
	return cmd
}

func (c *Cli) profileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Show or change the traveller profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			profile, err := c.deps.Data.Profile(cmd.Context())
			if err != nil {
				return err
			}
			return render(c.io, profileTemplate, profile)
		},
	}

	var name, nationality, pfp string
	set := &cobra.Command{
		Use:   "set",
		Short: "Update profile fields",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			profile, err := c.deps.Data.Profile(cmd.Context())
			if err != nil {
				return err
			}
			if name != "" {
				profile.Name = name
			}
			if nationality != "" {
				profile.Nationality = nationality
			}
			if pfp != "" {
				profile.Pfp = pfp
			}
			profile.IsOnboarded = true

			if err := c.deps.Data.SaveProfile(cmd.Context(), profile); err != nil {
				return err
			}
			c.io.Println("✓ Profile updated")
			return nil
		},
	}
	set.Flags().StringVar(&name, "name", "", "display name")
	set.Flags().StringVar(&nationality, "nationality", "", "nationality, used for holidays")
	set.Flags().StringVar(&pfp, "pfp", "", "avatar URL")

	cmd.AddCommand(set)
	return cmd
}

func (c *Cli) settingsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Interface language and theme",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			lang, err := c.deps.Data.Language(cmd.Context())
			if err != nil {
				return err
			}
			dark, err := c.deps.Data.DarkMode(cmd.Context())
			if err != nil {
				return err
			}
			c.io.Printf("Language:  %s\n", lang)
			c.io.Printf("Dark mode: %t\n", dark)
			return nil
		},
	}

	language := &cobra.Command{
		Use:       "language <en|zh-TW|ja|ko>",
		Short:     "Set the interface language",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"en", "zh-TW", "ja", "ko"},
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.deps.Data.SetLanguage(cmd.Context(), models.Language(args[0])); err != nil {
				return err
			}
			c.io.Printf("✓ Language set to %s\n", args[0])
			return nil
		},
	}

	dark := &cobra.Command{
		Use:   "dark <on|off>",
		Short: "Toggle dark mode",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var on bool
			switch strings.ToLower(args[0]) {
			case "on":
				on = true
			case "off":
			default:
				v, err := strconv.ParseBool(args[0])
				if err != nil {
					return fmt.Errorf("expected on or off, got %q", args[0])
				}
				on = v
			}
			if err := c.deps.Data.SetDarkMode(cmd.Context(), on); err != nil {
				return err
			}
			c.io.Printf("✓ Dark mode: %t\n", on)
			return nil
		},
	}

	cmd.AddCommand(language, dark)
	return cmd
}
