package annotation_test

import (
	"errors"
	"testing"

	"tagwalk/pkg/annotation"
)

// sampleTable holds class C: fields f1 [A], f2 [], f3 [A B] and methods
// M1 [A B], M2 [B].
func sampleTable(t *testing.T) (*annotation.Table, annotation.Class) {
	t.Helper()
	tbl, err := annotation.NewTable(annotation.TableClass{
		Name: "C",
		Fields: []annotation.TableMember{
			{Name: "f1", Type: "string", Tag: `A:""`},
			{Name: "f2", Type: "int"},
			{Name: "f3", Type: "bool", Tag: `A:"" B:""`},
		},
		Methods: []annotation.TableMember{
			{Name: "M1", Type: "func() string", Tag: `A:"" B:""`},
			{Name: "M2", Type: "func()", Tag: `B:""`},
		},
	})
	if err != nil {
		t.Fatalf("NewTable: %v", err)
	}
	c, err := tbl.Class("C")
	if err != nil {
		t.Fatalf("Class: %v", err)
	}
	return tbl, c
}

// countingProvider records how often each Provider method is called.
type countingProvider struct {
	annotation.Provider
	fieldCalls  int
	methodCalls int
	tagCalls    int
}

func (p *countingProvider) DeclaredFields(c annotation.Class) ([]annotation.Field, error) {
	p.fieldCalls++
	return p.Provider.DeclaredFields(c)
}

func (p *countingProvider) DeclaredMethods(c annotation.Class) ([]annotation.Method, error) {
	p.methodCalls++
	return p.Provider.DeclaredMethods(c)
}

func (p *countingProvider) AnnotationsOf(m annotation.Member) ([]annotation.Tag, error) {
	p.tagCalls++
	return p.Provider.AnnotationsOf(m)
}

// failingProvider fails every method lookup.
type failingProvider struct {
	annotation.Provider
	err error
}

func (p failingProvider) DeclaredMethods(annotation.Class) ([]annotation.Method, error) {
	return nil, p.err
}

var errBoom = errors.New("boom")

func fieldLabel(f annotation.Field, tag annotation.Tag) (string, bool, error) {
	return f.Name + "/" + tag.Key, true, nil
}

func methodLabel(m annotation.Method, tag annotation.Tag) (string, bool, error) {
	return m.Name + "/" + tag.Key, true, nil
}
