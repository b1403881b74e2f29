package lookup

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/cncf/automation/utilities/lifecycle-audit/cmd/lifecycle-audit/flagutil"
	"github.com/cncf/automation/utilities/lifecycle-audit/pkg/alias"
	"github.com/cncf/automation/utilities/lifecycle-audit/pkg/audit"
	"github.com/cncf/automation/utilities/lifecycle-audit/pkg/reconcile"
)

func New() *cobra.Command {
	cmd := &cobra.Command{
		Use:                   "lookup NAME",
		Short:                 "[DEBUG] Show the aliases of a project name and its status in every source",
		Args:                  cobra.ExactArgs(1),
		RunE:                  action,
		DisableFlagsInUseLine: true,
	}
	return cmd
}

type result struct {
	Name    string          `json:"name"`
	Aliases []string        `json:"aliases"`
	Hits    []reconcile.Hit `json:"hits"`
}

func action(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	name := args[0]
	c, err := flagutil.NewCache(cmd.Flags())
	if err != nil {
		return err
	}
	e, err := audit.NewEngine(ctx, c, audit.Adapters)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetEscapeHTML(false)
	return enc.Encode(result{
		Name:    name,
		Aliases: alias.Generate(name),
		Hits:    e.Explain(name),
	})
}
