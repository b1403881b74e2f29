package update

import (
	"context"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/cncf/automation/utilities/lifecycle-audit/cmd/lifecycle-audit/flagutil"
	"github.com/cncf/automation/utilities/lifecycle-audit/pkg/audit"
	"github.com/cncf/automation/utilities/lifecycle-audit/pkg/cache"
)

func New() *cobra.Command {
	cmd := &cobra.Command{
		Use:                   "update",
		Short:                 "Refetch the source documents",
		Args:                  cobra.NoArgs,
		RunE:                  action,
		DisableFlagsInUseLine: true,
	}
	return cmd
}

func action(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	onProgress := func(ctx context.Context, ev cache.ProgressEvent) {
		slog.InfoContext(ctx, "progress: "+ev.Message)
	}
	c, err := flagutil.NewCache(cmd.Flags(), cache.WithProgressEventHandler(onProgress))
	if err != nil {
		return err
	}
	return c.Update(ctx, audit.Documents()...)
}
