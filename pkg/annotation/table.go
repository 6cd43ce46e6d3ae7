package annotation

import (
	"encoding/json"
	"fmt"
	"go/token"
	"os"
	"path/filepath"
	"strings"

	yaml "go.yaml.in/yaml/v3"
)

// TableMember describes one field or method of a TableClass. Tag holds
// struct tag syntax and is parsed when the member is traversed.
type TableMember struct {
	Name string `json:"name" yaml:"name"`
	Type string `json:"type,omitempty" yaml:"type,omitempty"`
	Tag  string `json:"tag,omitempty" yaml:"tag,omitempty"`
}

// TableClass describes a class by its members, in declaration order.
type TableClass struct {
	Name    string        `json:"name" yaml:"name"`
	Fields  []TableMember `json:"fields,omitempty" yaml:"fields,omitempty"`
	Methods []TableMember `json:"methods,omitempty" yaml:"methods,omitempty"`
}

type tableDocument struct {
	Classes []TableClass `json:"classes" yaml:"classes"`
}

// Table is a Provider over a precomputed metadata table. It is immutable
// once built and safe for concurrent use.
type Table struct {
	classes []*tableClass
	byName  map[string]*tableClass
}

type tableClass struct {
	name    string
	fields  []Field
	methods []Method
}

func (c *tableClass) Name() string { return c.name }

// NewTable builds a table from class descriptions. Class names must be
// unique and non-empty, and so must member names within one axis.
func NewTable(classes ...TableClass) (*Table, error) {
	t := &Table{byName: make(map[string]*tableClass, len(classes))}
	for i, tc := range classes {
		if tc.Name == "" {
			return nil, fmt.Errorf("annotation: table class %d has no name", i)
		}
		if _, dup := t.byName[tc.Name]; dup {
			return nil, fmt.Errorf("annotation: duplicate table class %q", tc.Name)
		}
		c := &tableClass{name: tc.Name}
		seen := map[string]bool{}
		for j, m := range tc.Fields {
			if err := checkMemberName(tc.Name, AxisFields, j, m.Name, seen); err != nil {
				return nil, err
			}
			c.fields = append(c.fields, Field{
				MemberInfo: tableMemberInfo(tc.Name, j, m),
				Exported:   token.IsExported(m.Name),
			})
		}
		seen = map[string]bool{}
		for j, m := range tc.Methods {
			if err := checkMemberName(tc.Name, AxisMethods, j, m.Name, seen); err != nil {
				return nil, err
			}
			c.methods = append(c.methods, Method{MemberInfo: tableMemberInfo(tc.Name, j, m)})
		}
		t.classes = append(t.classes, c)
		t.byName[c.name] = c
	}
	return t, nil
}

// LoadTable reads a table file (YAML or JSON) and builds the Table.
// Format is detected by extension (.yaml/.yml → YAML, .json → JSON) or by content.
func LoadTable(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read table: %w", err)
	}
	return ParseTable(data, filepath.Ext(path))
}

// ParseTable parses a table from bytes. ext is the file extension used as a
// format hint; empty means detect from content (a leading '{' is JSON).
func ParseTable(data []byte, ext string) (*Table, error) {
	ext = strings.ToLower(ext)
	if ext == ".yml" {
		ext = ".yaml"
	}
	if ext == "" {
		if strings.HasPrefix(strings.TrimSpace(string(data)), "{") {
			ext = ".json"
		} else {
			ext = ".yaml"
		}
	}

	var doc tableDocument
	switch ext {
	case ".json":
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("parse table json: %w", err)
		}
	case ".yaml":
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("parse table yaml: %w", err)
		}
	default:
		return nil, fmt.Errorf("parse table: unsupported extension %q", ext)
	}
	return NewTable(doc.Classes...)
}

// Class returns the named class.
func (t *Table) Class(name string) (Class, error) {
	c, ok := t.byName[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownClass, name)
	}
	return c, nil
}

// Classes returns every class in table order.
func (t *Table) Classes() []Class {
	out := make([]Class, len(t.classes))
	for i, c := range t.classes {
		out[i] = c
	}
	return out
}

func (t *Table) DeclaredFields(c Class) ([]Field, error) {
	tc, err := t.lookup(c)
	if err != nil {
		return nil, err
	}
	return append([]Field(nil), tc.fields...), nil
}

func (t *Table) DeclaredMethods(c Class) ([]Method, error) {
	tc, err := t.lookup(c)
	if err != nil {
		return nil, err
	}
	return append([]Method(nil), tc.methods...), nil
}

func (t *Table) AnnotationsOf(m Member) ([]Tag, error) {
	return rawTagsOf(m)
}

func (t *Table) lookup(c Class) (*tableClass, error) {
	tc, ok := c.(*tableClass)
	if !ok || tc == nil || t.byName[tc.name] != tc {
		return nil, fmt.Errorf("%w: %s", ErrUnknownClass, className(c))
	}
	return tc, nil
}

func tableMemberInfo(class string, index int, m TableMember) MemberInfo {
	return MemberInfo{
		Class:  class,
		Name:   m.Name,
		Index:  index,
		Type:   m.Type,
		RawTag: m.Tag,
	}
}

func checkMemberName(class string, axis Axis, index int, name string, seen map[string]bool) error {
	if name == "" {
		return fmt.Errorf("annotation: %s %s[%d] has no name", class, axis, index)
	}
	if seen[name] {
		return fmt.Errorf("annotation: %s declares %s %q twice", class, axis, name)
	}
	seen[name] = true
	return nil
}
