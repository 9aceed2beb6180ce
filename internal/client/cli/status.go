package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/iudanet/wanderlust/internal/client/auth"
	"github.com/iudanet/wanderlust/internal/client/sync"
)

type statusView struct {
	Username      string
	Token         string
	LocalModified string
	Remote        string
	Decision      string
}

func (c *Cli) statusCmd() *cobra.Command {
	var offline bool

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show login state and how the local journal compares with the cloud backup",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			view := statusView{Username: c.deps.Session.Username(ctx)}

			tokenStatus, err := c.deps.Session.Status(ctx)
			if err != nil {
				view.Token = "unknown (" + err.Error() + ")"
			} else {
				view.Token = tokenStatus.String()
			}

			local, err := c.deps.Data.LocalModified(ctx)
			if err != nil {
				return err
			}
			view.LocalModified = formatMillis(local)

			switch {
			case offline:
				view.Remote = "not checked"
			case tokenStatus != auth.TokenValid:
				view.Remote = "login required"
			default:
				probe := c.deps.Sync.RemoteMetadata(ctx)
				switch probe.Kind {
				case sync.ProbeKindFound:
					view.Remote = formatMillis(probe.Meta.Timestamp)
				case sync.ProbeKindNotFound:
					view.Remote = "no backup yet"
				default:
					view.Remote = "unavailable (" + probe.Err.Error() + ")"
				}
				view.Decision = sync.Decide(local, probe).String()
			}

			return render(c.io, statusTemplate, view)
		},
	}
	cmd.Flags().BoolVar(&offline, "offline", false, "do not contact the cloud service")
	return cmd
}

func formatMillis(ms int64) string {
	if ms == 0 {
		return "never"
	}
	return time.UnixMilli(ms).Local().Format(time.DateTime)
}
