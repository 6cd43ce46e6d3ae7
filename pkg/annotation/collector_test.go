package annotation_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"tagwalk/pkg/annotation"
)

func TestCollector_PreservesProviderOrder(t *testing.T) {
	tbl, c := sampleTable(t)
	col := annotation.NewCollector[string, string](tbl, annotation.HookFuncs[string, string]{
		FieldHookFuncs:  annotation.FieldHookFuncs[string]{OnFieldTag: fieldLabel},
		MethodHookFuncs: annotation.MethodHookFuncs[string]{OnMethodTag: methodLabel},
	})

	if err := col.Collect(c); err != nil {
		t.Fatalf("Collect: %v", err)
	}

	if diff := cmp.Diff([]string{"f1/A", "f3/A", "f3/B"}, col.FieldResults()); diff != "" {
		t.Errorf("field results mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"M1/A", "M1/B", "M2/B"}, col.MethodResults()); diff != "" {
		t.Errorf("method results mismatch (-want +got):\n%s", diff)
	}
}

func TestCollector_CollectsOnlyReportedValues(t *testing.T) {
	tbl, c := sampleTable(t)
	col := annotation.NewCollector[string, string](tbl, annotation.HookFuncs[string, string]{
		FieldHookFuncs: annotation.FieldHookFuncs[string]{
			OnFieldTag: func(_ annotation.Field, tag annotation.Tag) (string, bool, error) {
				if tag.Key != "A" {
					return "", false, nil
				}
				return tag.Key, true, nil
			},
		},
	})

	if err := col.Collect(c); err != nil {
		t.Fatalf("Collect: %v", err)
	}
	if diff := cmp.Diff([]string{"A", "A"}, col.FieldResults()); diff != "" {
		t.Errorf("field results mismatch (-want +got):\n%s", diff)
	}
}

func TestCollector_NothingReportedLeavesResultsEmpty(t *testing.T) {
	tbl, c := sampleTable(t)
	var tagsSeen int
	col := annotation.NewCollector[int, int](tbl, annotation.HookFuncs[int, int]{
		FieldHookFuncs: annotation.FieldHookFuncs[int]{
			OnFieldTag: func(annotation.Field, annotation.Tag) (int, bool, error) {
				tagsSeen++
				return 0, false, nil
			},
		},
		MethodHookFuncs: annotation.MethodHookFuncs[int]{
			OnMethodTag: func(annotation.Method, annotation.Tag) (int, bool, error) {
				tagsSeen++
				return 0, false, nil
			},
		},
	})

	if err := col.Collect(c); err != nil {
		t.Fatalf("Collect: %v", err)
	}
	if tagsSeen != 6 {
		t.Errorf("expected 6 tag hook calls, got %d", tagsSeen)
	}
	if n := len(col.FieldResults()); n != 0 {
		t.Errorf("expected no field results, got %d", n)
	}
	if n := len(col.MethodResults()); n != 0 {
		t.Errorf("expected no method results, got %d", n)
	}
}

func TestCollector_FinishedOnTagSkipsRestAndMethodPass(t *testing.T) {
	tbl, c := sampleTable(t)
	var methodsEntered int
	var col *annotation.Collector[string, string]
	col = annotation.NewCollector[string, string](tbl, annotation.HookFuncs[string, string]{
		FieldHookFuncs: annotation.FieldHookFuncs[string]{
			OnFieldTag: func(_ annotation.Field, tag annotation.Tag) (string, bool, error) {
				if tag.Key == "B" {
					col.SetFinished(true)
					return "", false, nil
				}
				return tag.Key, true, nil
			},
		},
		MethodHookFuncs: annotation.MethodHookFuncs[string]{
			OnMethod: func(annotation.Method) error {
				methodsEntered++
				return nil
			},
		},
	})

	if err := col.Collect(c); err != nil {
		t.Fatalf("Collect: %v", err)
	}
	if diff := cmp.Diff([]string{"A", "A"}, col.FieldResults()); diff != "" {
		t.Errorf("field results mismatch (-want +got):\n%s", diff)
	}
	if methodsEntered != 0 {
		t.Errorf("method pass should be skipped, entered %d methods", methodsEntered)
	}
	if !col.Finished() {
		t.Error("expected Finished() to report true")
	}
}

func TestCollector_FinishedMidMemberStopsLaterTagsAndMembers(t *testing.T) {
	tbl, err := annotation.NewTable(annotation.TableClass{
		Name: "Wide",
		Fields: []annotation.TableMember{
			{Name: "a", Tag: `x:"" y:"" z:""`},
			{Name: "b", Tag: `x:""`},
		},
		Methods: []annotation.TableMember{{Name: "M", Tag: `x:""`}},
	})
	if err != nil {
		t.Fatalf("NewTable: %v", err)
	}
	c, _ := tbl.Class("Wide")

	var visits []string
	var col *annotation.Collector[string, string]
	col = annotation.NewCollector[string, string](tbl, annotation.HookFuncs[string, string]{
		FieldHookFuncs: annotation.FieldHookFuncs[string]{
			OnField: func(f annotation.Field) error {
				visits = append(visits, "enter "+f.Name)
				return nil
			},
			OnFieldTag: func(f annotation.Field, tag annotation.Tag) (string, bool, error) {
				visits = append(visits, f.Name+"/"+tag.Key)
				if tag.Key == "y" {
					col.SetFinished(true)
				}
				return f.Name + "/" + tag.Key, true, nil
			},
		},
		MethodHookFuncs: annotation.MethodHookFuncs[string]{OnMethodTag: methodLabel},
	})

	if err := col.Collect(c); err != nil {
		t.Fatalf("Collect: %v", err)
	}

	// The stopping hook's own value is still collected.
	if diff := cmp.Diff([]string{"a/x", "a/y"}, col.FieldResults()); diff != "" {
		t.Errorf("field results mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"enter a", "a/x", "a/y"}, visits); diff != "" {
		t.Errorf("hook calls mismatch (-want +got):\n%s", diff)
	}
	if n := len(col.MethodResults()); n != 0 {
		t.Errorf("expected no method results, got %d", n)
	}
}

func TestCollector_FlagSetInMemberHookBlocksItsTags(t *testing.T) {
	tbl, c := sampleTable(t)
	var entered []string
	var col *annotation.Collector[string, string]
	col = annotation.NewCollector[string, string](tbl, annotation.HookFuncs[string, string]{
		FieldHookFuncs: annotation.FieldHookFuncs[string]{
			OnField: func(f annotation.Field) error {
				entered = append(entered, f.Name)
				if f.Name == "f3" {
					col.SetFieldsFinished(true)
				}
				return nil
			},
			OnFieldTag: fieldLabel,
		},
		MethodHookFuncs: annotation.MethodHookFuncs[string]{OnMethodTag: methodLabel},
	})

	if err := col.Collect(c); err != nil {
		t.Fatalf("Collect: %v", err)
	}
	if diff := cmp.Diff([]string{"f1", "f2", "f3"}, entered); diff != "" {
		t.Errorf("entered fields mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"f1/A"}, col.FieldResults()); diff != "" {
		t.Errorf("field results mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"M1/A", "M1/B", "M2/B"}, col.MethodResults()); diff != "" {
		t.Errorf("method pass should still run (-want +got):\n%s", diff)
	}
}

func TestCollector_AxisFlags(t *testing.T) {
	tests := []struct {
		name        string
		setup       func(c *annotation.Collector[string, string])
		wantFields  []string
		wantMethods []string
	}{
		{
			name:        "open",
			setup:       func(*annotation.Collector[string, string]) {},
			wantFields:  []string{"f1/A", "f3/A", "f3/B"},
			wantMethods: []string{"M1/A", "M1/B", "M2/B"},
		},
		{
			name:        "fields finished",
			setup:       func(c *annotation.Collector[string, string]) { c.SetFieldsFinished(true) },
			wantFields:  []string{},
			wantMethods: []string{"M1/A", "M1/B", "M2/B"},
		},
		{
			name:        "methods finished",
			setup:       func(c *annotation.Collector[string, string]) { c.SetMethodsFinished(true) },
			wantFields:  []string{"f1/A", "f3/A", "f3/B"},
			wantMethods: []string{},
		},
		{
			name:        "finished",
			setup:       func(c *annotation.Collector[string, string]) { c.SetFinished(true) },
			wantFields:  []string{},
			wantMethods: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tbl, c := sampleTable(t)
			col := annotation.NewCollector[string, string](tbl, annotation.HookFuncs[string, string]{
				FieldHookFuncs:  annotation.FieldHookFuncs[string]{OnFieldTag: fieldLabel},
				MethodHookFuncs: annotation.MethodHookFuncs[string]{OnMethodTag: methodLabel},
			})
			tt.setup(col)

			if err := col.Collect(c); err != nil {
				t.Fatalf("Collect: %v", err)
			}
			if diff := cmp.Diff(tt.wantFields, col.FieldResults()); diff != "" {
				t.Errorf("field results mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(tt.wantMethods, col.MethodResults()); diff != "" {
				t.Errorf("method results mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestCollector_MethodsFinishedMidPass(t *testing.T) {
	tbl, c := sampleTable(t)
	var col *annotation.Collector[string, string]
	col = annotation.NewCollector[string, string](tbl, annotation.HookFuncs[string, string]{
		MethodHookFuncs: annotation.MethodHookFuncs[string]{
			OnMethodTag: func(m annotation.Method, tag annotation.Tag) (string, bool, error) {
				col.SetMethodsFinished(true)
				return m.Name + "/" + tag.Key, true, nil
			},
		},
	})

	if err := col.Collect(c); err != nil {
		t.Fatalf("Collect: %v", err)
	}
	if diff := cmp.Diff([]string{"M1/A"}, col.MethodResults()); diff != "" {
		t.Errorf("method results mismatch (-want +got):\n%s", diff)
	}
}

func TestCollector_RepeatedCollectAppends(t *testing.T) {
	tbl, c := sampleTable(t)
	col := annotation.NewCollector[string, string](tbl, annotation.HookFuncs[string, string]{
		FieldHookFuncs:  annotation.FieldHookFuncs[string]{OnFieldTag: fieldLabel},
		MethodHookFuncs: annotation.MethodHookFuncs[string]{OnMethodTag: methodLabel},
	})

	for i := 0; i < 2; i++ {
		if err := col.Collect(c); err != nil {
			t.Fatalf("Collect #%d: %v", i+1, err)
		}
	}

	want := []string{"f1/A", "f3/A", "f3/B", "f1/A", "f3/A", "f3/B"}
	if diff := cmp.Diff(want, col.FieldResults()); diff != "" {
		t.Errorf("field results mismatch (-want +got):\n%s", diff)
	}
	if n := len(col.MethodResults()); n != 6 {
		t.Errorf("expected 6 method results after two collects, got %d", n)
	}
}

func TestCollector_ClearingFlagAffectsOnlyLaterCollects(t *testing.T) {
	tbl, c := sampleTable(t)
	var col *annotation.Collector[string, string]
	stopOnB := true
	col = annotation.NewCollector[string, string](tbl, annotation.HookFuncs[string, string]{
		FieldHookFuncs: annotation.FieldHookFuncs[string]{
			OnFieldTag: func(f annotation.Field, tag annotation.Tag) (string, bool, error) {
				if tag.Key == "B" && stopOnB {
					col.SetFinished(true)
					return "", false, nil
				}
				return f.Name + "/" + tag.Key, true, nil
			},
		},
	})

	if err := col.Collect(c); err != nil {
		t.Fatalf("Collect: %v", err)
	}
	if err := col.Collect(c); err != nil {
		t.Fatalf("Collect while finished: %v", err)
	}
	if diff := cmp.Diff([]string{"f1/A", "f3/A"}, col.FieldResults()); diff != "" {
		t.Errorf("finished collector should not collect (-want +got):\n%s", diff)
	}

	stopOnB = false
	col.SetFinished(false)
	if err := col.Collect(c); err != nil {
		t.Fatalf("Collect after reopen: %v", err)
	}
	want := []string{"f1/A", "f3/A", "f1/A", "f3/A", "f3/B"}
	if diff := cmp.Diff(want, col.FieldResults()); diff != "" {
		t.Errorf("field results mismatch (-want +got):\n%s", diff)
	}
}

func TestCollector_HookErrorKeepsPartialResults(t *testing.T) {
	tbl, c := sampleTable(t)
	var methodsEntered int
	col := annotation.NewCollector[string, string](tbl, annotation.HookFuncs[string, string]{
		FieldHookFuncs: annotation.FieldHookFuncs[string]{
			OnFieldTag: func(f annotation.Field, tag annotation.Tag) (string, bool, error) {
				if f.Name == "f3" {
					return "", false, errBoom
				}
				return f.Name + "/" + tag.Key, true, nil
			},
		},
		MethodHookFuncs: annotation.MethodHookFuncs[string]{
			OnMethod: func(annotation.Method) error {
				methodsEntered++
				return nil
			},
		},
	})

	err := col.Collect(c)
	if !errors.Is(err, errBoom) {
		t.Fatalf("expected hook error, got %v", err)
	}
	if err != errBoom {
		t.Errorf("hook errors should pass through unwrapped, got %v", err)
	}
	if diff := cmp.Diff([]string{"f1/A"}, col.FieldResults()); diff != "" {
		t.Errorf("partial results mismatch (-want +got):\n%s", diff)
	}
	if methodsEntered != 0 {
		t.Errorf("method pass should not run after a hook error, entered %d", methodsEntered)
	}
}

func TestCollector_MemberHookError(t *testing.T) {
	tbl, c := sampleTable(t)
	col := annotation.NewCollector[string, string](tbl, annotation.HookFuncs[string, string]{
		MethodHookFuncs: annotation.MethodHookFuncs[string]{
			OnMethod: func(m annotation.Method) error {
				if m.Name == "M2" {
					return errBoom
				}
				return nil
			},
			OnMethodTag: methodLabel,
		},
	})

	if err := col.Collect(c); !errors.Is(err, errBoom) {
		t.Fatalf("expected hook error, got %v", err)
	}
	if diff := cmp.Diff([]string{"M1/A", "M1/B"}, col.MethodResults()); diff != "" {
		t.Errorf("partial results mismatch (-want +got):\n%s", diff)
	}
}

func TestCollector_ProviderErrors(t *testing.T) {
	t.Run("unknown class", func(t *testing.T) {
		tbl, _ := sampleTable(t)
		col := annotation.NewCollector[string, string](tbl, annotation.HookFuncs[string, string]{})
		err := col.Collect(annotation.TypeOf(struct{}{}))
		if !errors.Is(err, annotation.ErrUnknownClass) {
			t.Fatalf("expected ErrUnknownClass, got %v", err)
		}
	})

	t.Run("malformed tag", func(t *testing.T) {
		tbl, err := annotation.NewTable(annotation.TableClass{
			Name: "Bad",
			Fields: []annotation.TableMember{
				{Name: "ok", Tag: `A:""`},
				{Name: "broken", Tag: `A:unquoted`},
				{Name: "never", Tag: `A:""`},
			},
		})
		if err != nil {
			t.Fatalf("NewTable: %v", err)
		}
		c, _ := tbl.Class("Bad")

		var entered []string
		col := annotation.NewCollector[string, string](tbl, annotation.HookFuncs[string, string]{
			FieldHookFuncs: annotation.FieldHookFuncs[string]{
				OnField: func(f annotation.Field) error {
					entered = append(entered, f.Name)
					return nil
				},
				OnFieldTag: fieldLabel,
			},
		})

		err = col.Collect(c)
		if !errors.Is(err, annotation.ErrMalformedTag) {
			t.Fatalf("expected ErrMalformedTag, got %v", err)
		}
		if diff := cmp.Diff([]string{"ok", "broken"}, entered); diff != "" {
			t.Errorf("entered fields mismatch (-want +got):\n%s", diff)
		}
		if diff := cmp.Diff([]string{"ok/A"}, col.FieldResults()); diff != "" {
			t.Errorf("partial results mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("method lookup", func(t *testing.T) {
		tbl, c := sampleTable(t)
		prov := failingProvider{Provider: tbl, err: errBoom}
		col := annotation.NewCollector[string, string](prov, annotation.HookFuncs[string, string]{
			FieldHookFuncs: annotation.FieldHookFuncs[string]{OnFieldTag: fieldLabel},
		})

		err := col.Collect(c)
		if !errors.Is(err, errBoom) {
			t.Fatalf("expected wrapped provider error, got %v", err)
		}
		if n := len(col.FieldResults()); n != 3 {
			t.Errorf("field pass results should survive, got %d", n)
		}
	})
}

func TestCollector_ResultsAreCopies(t *testing.T) {
	tbl, c := sampleTable(t)
	col := annotation.NewCollector[string, string](tbl, annotation.HookFuncs[string, string]{
		FieldHookFuncs: annotation.FieldHookFuncs[string]{OnFieldTag: fieldLabel},
	})
	if err := col.Collect(c); err != nil {
		t.Fatalf("Collect: %v", err)
	}

	got := col.FieldResults()
	got[0] = "mutated"
	_ = append(got, "extra")

	if diff := cmp.Diff([]string{"f1/A", "f3/A", "f3/B"}, col.FieldResults()); diff != "" {
		t.Errorf("collector state changed through accessor (-want +got):\n%s", diff)
	}
}

func TestCollector_AccessorsBeforeCollect(t *testing.T) {
	tbl, _ := sampleTable(t)
	col := annotation.NewCollector[string, string](tbl, annotation.HookFuncs[string, string]{})

	if got := col.FieldResults(); got == nil || len(got) != 0 {
		t.Errorf("expected empty field results, got %#v", got)
	}
	if got := col.MethodResults(); got == nil || len(got) != 0 {
		t.Errorf("expected empty method results, got %#v", got)
	}
	if col.Finished() || col.FieldsFinished() || col.MethodsFinished() {
		t.Error("flags should start false")
	}
}

func TestNewCollector_RequiresProviderAndHooks(t *testing.T) {
	tbl, _ := sampleTable(t)
	assertPanics(t, "nil provider", func() {
		annotation.NewCollector[int, int](nil, annotation.HookFuncs[int, int]{})
	})
	assertPanics(t, "nil hooks", func() {
		annotation.NewCollector[int, int](tbl, nil)
	})
}

func assertPanics(t *testing.T, name string, fn func()) {
	t.Helper()
	defer func() {
		if recover() == nil {
			t.Errorf("%s: expected panic", name)
		}
	}()
	fn()
}
