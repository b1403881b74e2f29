package audit

import (
	"context"
	"log/slog"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/cncf/automation/utilities/lifecycle-audit/cmd/lifecycle-audit/flagutil"
	"github.com/cncf/automation/utilities/lifecycle-audit/pkg/audit"
	"github.com/cncf/automation/utilities/lifecycle-audit/pkg/cache"
)

func New() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "audit",
		Short: "Compare the PCC statuses with the other sources and write the reports",
		Long: `Compare the PCC statuses with the other sources and write the reports.

Source documents missing from the datasources directory are fetched once and kept.
Run "lifecycle-audit update" to refresh them.`,
		Args:                  cobra.NoArgs,
		RunE:                  action,
		DisableFlagsInUseLine: true,
	}
	flags := cmd.Flags()
	flags.StringP("output-dir", "o", audit.DefaultOutputDir, "directory to write "+audit.AnomaliesFilename+" and "+audit.FullFilename+" into")
	return cmd
}

func action(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	flags := cmd.Flags()
	outputDir, err := flags.GetString("output-dir")
	if err != nil {
		return err
	}
	onProgress := func(ctx context.Context, ev cache.ProgressEvent) {
		slog.InfoContext(ctx, "progress: "+ev.Message)
	}
	c, err := flagutil.NewCache(flags, cache.WithProgressEventHandler(onProgress))
	if err != nil {
		return err
	}
	res, err := audit.Run(ctx, audit.Opts{
		Datasources: c.Dir(),
		Loader:      c,
	})
	if err != nil {
		return err
	}
	if err = audit.WriteReports(outputDir, nil, res); err != nil {
		return err
	}
	slog.InfoContext(ctx, "wrote the reports",
		"projects", len(res.Rows),
		"anomalies", len(res.Anomalies),
		"path", filepath.Join(outputDir, audit.AnomaliesFilename))
	return nil
}
