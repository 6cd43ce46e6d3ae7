// Package search resolves which members of a class feed a full-text index.
// Members opt in with a search tag: search:"default" marks the field used
// when a query names no field, search:"multi" marks members searched
// together. A single tag may carry both, as in search:"default,multi".
package search

import (
	"errors"
	"fmt"

	"tagwalk/pkg/annotation"
)

// Tag vocabulary.
const (
	TagKey  = "search"
	Default = "default"
	Multi   = "multi"
)

// ErrNoDefaultField is returned when no field of a class is tagged default.
var ErrNoDefaultField = errors.New("search: no default search field")

// Config is the resolved search layout of one class.
type Config struct {
	Class   string   `json:"class"`
	Default string   `json:"default"`
	Multi   []string `json:"multi"`
	Methods []string `json:"methods,omitempty"`
}

// Resolve walks the members of c and returns its search layout. The first
// field tagged default wins; the walk for it stops there.
func Resolve(p annotation.Provider, c annotation.Class, opts ...annotation.Option) (*Config, error) {
	var dc *annotation.FieldCollector[string]
	dc = annotation.NewFieldCollector[string](p, annotation.FieldHookFuncs[string]{
		OnFieldTag: func(f annotation.Field, tag annotation.Tag) (string, bool, error) {
			if !tag.Marks(TagKey, Default) {
				return "", false, nil
			}
			dc.SetFinished(true)
			return f.Name, true, nil
		},
	}, opts...)
	if err := dc.Collect(c); err != nil {
		return nil, err
	}
	defaults := dc.Results()
	if len(defaults) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoDefaultField, c.Name())
	}

	mc := annotation.NewFieldCollector[string](p, annotation.FieldHookFuncs[string]{
		OnFieldTag: memberIf[annotation.Field](Multi),
	}, opts...)
	if err := mc.Collect(c); err != nil {
		return nil, err
	}

	meth := annotation.NewMethodCollector[string](p, annotation.MethodHookFuncs[string]{
		OnMethodTag: memberIf[annotation.Method](Default, Multi),
	}, opts...)
	if err := meth.Collect(c); err != nil {
		return nil, err
	}

	return &Config{
		Class:   c.Name(),
		Default: defaults[0],
		Multi:   mc.Results(),
		Methods: meth.MethodResults(),
	}, nil
}

// memberIf collects the member name when its search tag carries any of names.
func memberIf[M annotation.Member](names ...string) func(M, annotation.Tag) (string, bool, error) {
	return func(m M, tag annotation.Tag) (string, bool, error) {
		for _, n := range names {
			if tag.Marks(TagKey, n) {
				return m.Info().Name, true, nil
			}
		}
		return "", false, nil
	}
}

// Document extracts the searchable values of record, keyed by member name.
// Unexported fields are read too. Methods must be niladic accessors;
// pointer-receiver accessors work on a value record.
func Document(p annotation.Provider, record any) (map[string]any, error) {
	cfg, err := Resolve(p, annotation.TypeOf(record))
	if err != nil {
		return nil, err
	}
	doc := make(map[string]any, 1+len(cfg.Multi)+len(cfg.Methods))
	for _, name := range append([]string{cfg.Default}, cfg.Multi...) {
		if _, done := doc[name]; done {
			continue
		}
		v, err := annotation.FieldValue(record, name)
		if err != nil {
			return nil, err
		}
		doc[name] = v
	}
	for _, name := range cfg.Methods {
		v, err := annotation.MethodValue(record, name)
		if err != nil {
			return nil, err
		}
		doc[name] = v
	}
	return doc, nil
}
