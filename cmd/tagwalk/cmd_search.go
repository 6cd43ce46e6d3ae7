package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"tagwalk/internal/catalog"
	"tagwalk/internal/format"
	"tagwalk/internal/logging"
	"tagwalk/internal/search"
)

func newSearchCmd(a *app) *cobra.Command {
	var classes []string
	cmd := &cobra.Command{
		Use:   "search",
		Short: "Show the search layout declared by search tags",
		Long: `Search resolves, for each class, the default search field (the first field
tagged search:"default"), the fields tagged search:"multi", and the methods
carrying either name.

Classes without a default field are reported with "-" unless they were named
with --class, in which case the command fails.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runSearch(cmd, classes)
		},
	}
	cmd.Flags().StringSliceVar(&classes, "class", nil, "Class to resolve (repeatable; default every class)")
	return cmd
}

func (a *app) runSearch(cmd *cobra.Command, names []string) error {
	tbl, err := a.loadTable()
	if err != nil {
		return err
	}
	classes, err := catalog.Select(tbl, names)
	if err != nil {
		return err
	}
	logger := logging.New("search")

	tb := format.NewTable(a.outputMode())
	tb.Header("Class", "Default", "Multi", "Methods")
	for _, c := range classes {
		cfg, err := search.Resolve(tbl, c)
		if errors.Is(err, search.ErrNoDefaultField) && len(names) == 0 {
			logger.Debug("class has no default search field", "class", c.Name())
			tb.Row(c.Name(), "-", "-", "-")
			continue
		}
		if err != nil {
			return err
		}
		tb.Row(cfg.Class, cfg.Default, format.List(cfg.Multi), format.List(cfg.Methods))
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), tb.String())
	return err
}
