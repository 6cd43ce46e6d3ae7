package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"tagwalk/internal/catalog"
	"tagwalk/internal/format"
	"tagwalk/internal/logging"
	"tagwalk/pkg/annotation"
)

// typeWidth caps the Type column in table output; JSON keeps it whole.
const typeWidth = 40

type walkKind struct {
	use   string
	short string
	mode  catalog.Mode
}

var (
	walkFields  = walkKind{use: "fields", short: "List field tags using the field-only collector", mode: catalog.ModeFields}
	walkMethods = walkKind{use: "methods", short: "List method tags using the method-only collector", mode: catalog.ModeMethods}
	walkAll     = walkKind{use: "collect", short: "List field then method tags using the full collector", mode: catalog.ModeAll}
)

type walkFlags struct {
	classes []string
	keys    []string
	stopOn  string
}

func newWalkCmd(a *app, kind walkKind) *cobra.Command {
	var flags walkFlags
	cmd := &cobra.Command{
		Use:   kind.use,
		Short: kind.short,
		Long: kind.short + `.

Classes are walked in table order unless --class names them. With --stop-on,
the walk of a class ends at the first tag with that key; the tag itself is
not reported.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runWalk(cmd, kind.mode, flags)
		},
	}
	f := cmd.Flags()
	f.StringSliceVar(&flags.classes, "class", nil, "Class to walk (repeatable; default every class)")
	f.StringSliceVar(&flags.keys, "key", nil, "Only report tags with this key (repeatable)")
	f.StringVar(&flags.stopOn, "stop-on", "", "Stop a class's walk at the first tag with this key")
	return cmd
}

func (a *app) runWalk(cmd *cobra.Command, mode catalog.Mode, flags walkFlags) error {
	tbl, err := a.loadTable()
	if err != nil {
		return err
	}
	classes, err := catalog.Select(tbl, flags.classes)
	if err != nil {
		return err
	}

	rows, err := catalog.Run(cmd.Context(), tbl, catalog.Request{
		Classes:  classes,
		Mode:     mode,
		Keys:     flags.keys,
		StopOn:   flags.stopOn,
		Parallel: a.cfg.Parallel,
		Observer: &annotation.LogObserver{Logger: logging.New("walk")},
	})
	if err != nil {
		return err
	}

	out := a.outputMode()
	tb := format.NewTable(out)
	tb.Header("Class", "Axis", "Member", "Type", "Tag")
	for _, r := range rows {
		typ := r.Type
		if out != format.JSON {
			typ = format.Truncate(typ, typeWidth)
		}
		tb.Row(r.Class, string(r.Axis), r.Member, typ, r.Tag.String())
	}
	if out == format.ASCII || out == format.Markdown {
		tb.Footer("", "", "", "TOTAL", len(rows))
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), tb.String())
	return err
}
