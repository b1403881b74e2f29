package fetchpcc

import (
	"errors"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/cncf/automation/utilities/lifecycle-audit/cmd/lifecycle-audit/flagutil"
	"github.com/cncf/automation/utilities/lifecycle-audit/pkg/source/pcc"
)

const tokenEnv = "LFX_TOKEN"

func New() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fetch-pcc",
		Short: "Generate the PCC registry from the LFX project-service",
		Long: `Generate the PCC registry from the LFX project-service.

The bearer token is read from $` + tokenEnv + ` (or from .env).`,
		Args:                  cobra.NoArgs,
		RunE:                  action,
		DisableFlagsInUseLine: true,
	}
	flags := cmd.Flags()
	flags.String("url", pcc.URL, "URL of the project-service")
	flags.Int("page-size", pcc.DefaultPageSize, "number of projects per request")
	return cmd
}

func action(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	flags := cmd.Flags()
	token := os.Getenv(tokenEnv)
	if token == "" {
		return errors.New("$" + tokenEnv + " is not set")
	}
	dir, err := flagutil.DatasourcesDir(flags)
	if err != nil {
		return err
	}
	u, err := flags.GetString("url")
	if err != nil {
		return err
	}
	pageSize, err := flags.GetInt("page-size")
	if err != nil {
		return err
	}
	if pageSize <= 0 {
		return errors.New("--page-size must be positive")
	}
	r, err := pcc.Fetch(ctx, token, pcc.WithURL(u), pcc.WithPageSize(pageSize))
	if err != nil {
		return err
	}
	if err = pcc.Write(dir, r); err != nil {
		return err
	}
	slog.InfoContext(ctx, "wrote the PCC registry",
		"expected", len(pcc.ExpectedStatuses(r)),
		"forming", len(r.FormingProjects),
		"archived", len(r.ArchivedProjects),
		"dir", dir)
	return nil
}
