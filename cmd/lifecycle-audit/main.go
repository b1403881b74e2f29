package main

import (
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"

	"github.com/cncf/automation/utilities/lifecycle-audit/cmd/lifecycle-audit/commands/audit"
	"github.com/cncf/automation/utilities/lifecycle-audit/cmd/lifecycle-audit/commands/fetchpcc"
	"github.com/cncf/automation/utilities/lifecycle-audit/cmd/lifecycle-audit/commands/lookup"
	"github.com/cncf/automation/utilities/lifecycle-audit/cmd/lifecycle-audit/commands/update"
	"github.com/cncf/automation/utilities/lifecycle-audit/cmd/lifecycle-audit/envutil"
	"github.com/cncf/automation/utilities/lifecycle-audit/cmd/lifecycle-audit/flagutil"
	"github.com/cncf/automation/utilities/lifecycle-audit/cmd/lifecycle-audit/version"
	"github.com/cncf/automation/utilities/lifecycle-audit/pkg/cache"
)

var logLevel = new(slog.LevelVar)

func main() {
	logHandler := tint.NewHandler(os.Stderr, &tint.Options{
		Level:      logLevel,
		TimeFormat: time.Kitchen,
	})
	slog.SetDefault(slog.New(logHandler))
	// .env is optional; it usually holds $LFX_TOKEN
	_ = godotenv.Load()
	cmd := newRootCommand()
	if err := cmd.Execute(); err != nil {
		slog.Error("exiting with an error: " + err.Error())
		os.Exit(1)
	}
}

const example = `
  # Generate datasources/pcc_projects.yaml (needs $LFX_TOKEN, may be set in .env)
  lifecycle-audit fetch-pcc

  # Write audit/status_audit.md and audit/all_statuses.md
  lifecycle-audit audit

  # Refresh the cached copies of the source documents
  lifecycle-audit update
`

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "lifecycle-audit",
		Short:         "Audit the lifecycle status of CNCF projects across tools",
		Example:       example,
		Version:       version.GetVersion(),
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := cmd.PersistentFlags()
	flags.Bool("debug", envutil.Bool("DEBUG", false), "debug mode [$DEBUG]")
	flags.String(flagutil.Datasources, envutil.String("LIFECYCLE_AUDIT_DATASOURCES", cache.DefaultDir),
		"directory of the PCC registry and of the cached source documents [$LIFECYCLE_AUDIT_DATASOURCES]")
	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		flags := cmd.Flags()
		if debug, _ := flags.GetBool("debug"); debug {
			logLevel.Set(slog.LevelDebug)
		}
		return nil
	}

	cmd.AddCommand(
		audit.New(),
		fetchpcc.New(),
		update.New(),
		lookup.New(),
	)
	return cmd
}
