// Package catalog lists the tags of many classes at once. Each class gets
// its own collector, so classes can be walked in parallel while every
// collector stays single-goroutine.
package catalog

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"golang.org/x/sync/errgroup"

	"tagwalk/internal/logging"
	"tagwalk/pkg/annotation"
)

// Mode selects which member axes are walked.
type Mode string

const (
	ModeFields  Mode = "fields"
	ModeMethods Mode = "methods"
	ModeAll     Mode = "all"
)

// ParseMode accepts fields, methods or all. Empty means all.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(strings.ToLower(strings.TrimSpace(s))); m {
	case "":
		return ModeAll, nil
	case ModeFields, ModeMethods, ModeAll:
		return m, nil
	}
	return "", fmt.Errorf("catalog: unknown mode %q: want fields, methods or all", s)
}

// Row is one collected tag.
type Row struct {
	Class  string          `json:"class"`
	Axis   annotation.Axis `json:"axis"`
	Member string          `json:"member"`
	Type   string          `json:"type,omitempty"`
	Tag    annotation.Tag  `json:"tag"`
}

// Request describes one catalog run.
type Request struct {
	Classes []annotation.Class
	Mode    Mode
	// Keys keeps only tags with these keys. Empty keeps every tag.
	Keys []string
	// StopOn ends a class's walk at the first tag with this key. That tag
	// is not collected.
	StopOn string
	// Parallel bounds how many classes are walked at once; 1 or less is serial.
	Parallel int
	// Observer sees every class's events. It must be safe for concurrent use
	// when Parallel is above 1.
	Observer annotation.Observer
}

// Run collects rows for every requested class. Rows come back grouped by
// class in request order, each group in traversal order. The first error
// cancels classes not yet started.
func Run(ctx context.Context, p annotation.Provider, req Request) ([]Row, error) {
	logger := logging.New("catalog")
	if req.Mode == "" {
		req.Mode = ModeAll
	}
	limit := max(req.Parallel, 1)
	logger.Debug("catalog start", "classes", len(req.Classes), "mode", req.Mode, "parallel", limit)

	var opts []annotation.Option
	if req.Observer != nil {
		opts = append(opts, annotation.WithObserver(req.Observer))
	}

	perClass := make([][]Row, len(req.Classes))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i, c := range req.Classes {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			rows, err := collectClass(p, c, req, opts)
			if err != nil {
				logger.Warn("class failed", "class", c.Name(), "error", err)
				return err
			}
			perClass[i] = rows
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	rows := slices.Concat(perClass...)
	logger.Debug("catalog complete", "rows", len(rows))
	return rows, nil
}

func collectClass(p annotation.Provider, c annotation.Class, req Request, opts []annotation.Option) ([]Row, error) {
	switch req.Mode {
	case ModeFields:
		var fc *annotation.FieldCollector[Row]
		fc = annotation.NewFieldCollector[Row](p, annotation.FieldHookFuncs[Row]{
			OnFieldTag: rowHook[annotation.Field](req, func() { fc.SetFinished(true) }),
		}, opts...)
		if err := fc.Collect(c); err != nil {
			return nil, err
		}
		return fc.Results(), nil

	case ModeMethods:
		var mc *annotation.MethodCollector[Row]
		mc = annotation.NewMethodCollector[Row](p, annotation.MethodHookFuncs[Row]{
			OnMethodTag: rowHook[annotation.Method](req, func() { mc.SetFinished(true) }),
		}, opts...)
		if err := mc.Collect(c); err != nil {
			return nil, err
		}
		return mc.MethodResults(), nil

	case ModeAll:
		var col *annotation.Collector[Row, Row]
		stop := func() { col.SetFinished(true) }
		col = annotation.NewCollector[Row, Row](p, annotation.HookFuncs[Row, Row]{
			FieldHookFuncs:  annotation.FieldHookFuncs[Row]{OnFieldTag: rowHook[annotation.Field](req, stop)},
			MethodHookFuncs: annotation.MethodHookFuncs[Row]{OnMethodTag: rowHook[annotation.Method](req, stop)},
		}, opts...)
		if err := col.Collect(c); err != nil {
			return nil, err
		}
		return slices.Concat(col.FieldResults(), col.MethodResults()), nil
	}
	return nil, fmt.Errorf("catalog: unknown mode %q", req.Mode)
}

// rowHook turns each kept tag into a Row and calls stop on the StopOn key.
func rowHook[M annotation.Member](req Request, stop func()) func(M, annotation.Tag) (Row, bool, error) {
	return func(m M, tag annotation.Tag) (Row, bool, error) {
		if req.StopOn != "" && tag.Key == req.StopOn {
			stop()
			return Row{}, false, nil
		}
		if len(req.Keys) > 0 && !slices.Contains(req.Keys, tag.Key) {
			return Row{}, false, nil
		}
		info := m.Info()
		return Row{
			Class:  info.Class,
			Axis:   m.Axis(),
			Member: info.Name,
			Type:   info.Type,
			Tag:    tag,
		}, true, nil
	}
}

// Lister is a provider that can enumerate and look up its classes.
type Lister interface {
	Class(name string) (annotation.Class, error)
	Classes() []annotation.Class
}

// Select resolves class names against l. No names selects every class.
func Select(l Lister, names []string) ([]annotation.Class, error) {
	if len(names) == 0 {
		return l.Classes(), nil
	}
	out := make([]annotation.Class, 0, len(names))
	for _, n := range names {
		c, err := l.Class(n)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}
