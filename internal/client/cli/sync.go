package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/iudanet/wanderlust/internal/client/errs"
	"github.com/iudanet/wanderlust/internal/client/sync"
)

func (c *Cli) backupCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "backup",
		Short: "Upload the whole journal to the cloud backup",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.backup(cmd.Context())
		},
	}
}

func (c *Cli) backup(ctx context.Context) error {
	snap, err := c.deps.Data.Snapshot(ctx)
	if err != nil {
		return err
	}

	ts, err := c.deps.Data.LocalModified(ctx)
	if err != nil {
		return err
	}
	if ts == 0 {
		ts = c.now().UnixMilli()
	}

	result, err := c.deps.Sync.Backup(ctx, snap, ts)
	if err != nil {
		return fmt.Errorf("backup failed: %w", err)
	}

	if result.Created {
		c.io.Println("✓ Backup created")
	} else {
		c.io.Println("✓ Backup updated")
	}
	c.io.Printf("Trips: %d, saved at %s\n", len(snap.Trips), formatMillis(ts))
	return nil
}

func (c *Cli) restoreCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "restore",
		Short: "Replace the local journal with the cloud backup",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !yes {
				ok, err := c.io.Confirm("This replaces every local trip, memo and setting. Continue?")
				if err != nil {
					return err
				}
				if !ok {
					c.io.Println("Cancelled")
					return nil
				}
			}
			return c.restore(cmd.Context())
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "do not ask for confirmation")
	return cmd
}

func (c *Cli) restore(ctx context.Context) error {
	result, err := c.deps.Sync.Restore(ctx)
	if errors.Is(err, errs.ErrBackupNotFound) {
		c.io.Println("No backup found in the cloud. Run 'wanderlust backup' first.")
		return nil
	}
	if err != nil {
		return fmt.Errorf("restore failed: %w", err)
	}

	if err := c.deps.Data.ApplySnapshot(ctx, result.Snapshot, result.Timestamp); err != nil {
		return err
	}
	c.io.Println("✓ Journal restored")
	c.io.Printf("Trips: %d, backup from %s\n", len(result.Snapshot.Trips), formatMillis(result.Timestamp))
	return nil
}

// syncCmd: побеждает сторона с более поздним временем изменения
func (c *Cli) syncCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Back up or restore, whichever side is newer",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			c.io.Println("=== Synchronization ===")

			local, err := c.deps.Data.LocalModified(ctx)
			if err != nil {
				return err
			}
			probe := c.deps.Sync.RemoteMetadata(ctx)

			switch sync.Decide(local, probe) {
			case sync.DecisionBackup:
				return c.backup(ctx)
			case sync.DecisionRestore:
				c.io.Println("Cloud backup is newer, restoring...")
				return c.restore(ctx)
			case sync.DecisionNone:
				c.io.Println("✓ Already up to date")
				return nil
			default:
				return fmt.Errorf("cannot reach the cloud backup: %w", probe.Err)
			}
		},
	}
}

func (c *Cli) calendarCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "calendar <trip-id>",
		Short: "Create calendar events for every planned item of a trip",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			trip, err := c.deps.Data.Trip(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			n, err := c.deps.Sync.SyncTripToCalendar(cmd.Context(), trip)
			if err != nil {
				return fmt.Errorf("calendar sync failed: %w", err)
			}
			c.io.Printf("✓ %d event(s) added to your calendar\n", n)
			return nil
		},
	}
}
