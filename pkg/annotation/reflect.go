package annotation

import (
	"fmt"
	"reflect"

	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultCacheSize is the number of types whose member lists a
// ReflectProvider keeps by default.
const DefaultCacheSize = 256

// MethodTagger supplies tags for methods, which Go cannot annotate directly.
// The map is keyed by method name and holds struct tag syntax, for example
//
//	func (Gene) MethodTags() map[string]string {
//		return map[string]string{"Describe": `search:"multi"`}
//	}
//
// It is read from the zero value of the type, so it must not depend on state.
type MethodTagger interface {
	MethodTags() map[string]string
}

var methodTaggerName = reflect.TypeFor[MethodTagger]().Method(0).Name

// reflectClass is the Class produced by TypeOf and ClassOf.
type reflectClass struct {
	t reflect.Type
}

func (c reflectClass) Name() string {
	if c.t == nil {
		return "<nil>"
	}
	return c.t.String()
}

// TypeOf returns the class of v's dynamic type.
func TypeOf(v any) Class {
	return reflectClass{t: reflect.TypeOf(v)}
}

// ClassOf returns the class of t.
func ClassOf(t reflect.Type) Class {
	return reflectClass{t: t}
}

// ReflectProvider reads class metadata from Go types. Fields are the struct
// fields in declaration order with their struct tags. Methods are the
// exported methods of the pointer method set in reflect order (sorted by
// name), with tags from MethodTagger. Safe for concurrent use.
type ReflectProvider struct {
	cache *lru.Cache[reflect.Type, *typeMembers]
}

type typeMembers struct {
	fields  []Field
	methods []Method
}

// ReflectOption configures a ReflectProvider.
type ReflectOption func(*reflectSettings)

type reflectSettings struct {
	cacheSize int
}

// WithCacheSize sets how many types keep their member lists cached.
// Non-positive sizes fall back to DefaultCacheSize.
func WithCacheSize(n int) ReflectOption {
	return func(s *reflectSettings) { s.cacheSize = n }
}

// NewReflectProvider returns a provider backed by runtime reflection.
func NewReflectProvider(opts ...ReflectOption) *ReflectProvider {
	s := reflectSettings{cacheSize: DefaultCacheSize}
	for _, o := range opts {
		o(&s)
	}
	if s.cacheSize <= 0 {
		s.cacheSize = DefaultCacheSize
	}
	cache, err := lru.New[reflect.Type, *typeMembers](s.cacheSize)
	if err != nil {
		panic(err) // lru only rejects non-positive sizes
	}
	return &ReflectProvider{cache: cache}
}

func (p *ReflectProvider) DeclaredFields(c Class) ([]Field, error) {
	tm, err := p.members(c)
	if err != nil {
		return nil, err
	}
	return append([]Field(nil), tm.fields...), nil
}

func (p *ReflectProvider) DeclaredMethods(c Class) ([]Method, error) {
	tm, err := p.members(c)
	if err != nil {
		return nil, err
	}
	return append([]Method(nil), tm.methods...), nil
}

func (p *ReflectProvider) AnnotationsOf(m Member) ([]Tag, error) {
	return rawTagsOf(m)
}

func (p *ReflectProvider) members(c Class) (*typeMembers, error) {
	rc, ok := c.(reflectClass)
	if !ok || rc.t == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownClass, className(c))
	}
	if tm, ok := p.cache.Get(rc.t); ok {
		return tm, nil
	}
	tm := inspectType(rc.t)
	p.cache.Add(rc.t, tm)
	return tm, nil
}

func inspectType(t reflect.Type) *typeMembers {
	base := t
	for base.Kind() == reflect.Pointer {
		base = base.Elem()
	}
	name := t.String()
	tm := &typeMembers{}

	if base.Kind() == reflect.Struct {
		for i := 0; i < base.NumField(); i++ {
			sf := base.Field(i)
			tm.fields = append(tm.fields, Field{
				MemberInfo: MemberInfo{
					Class:  name,
					Name:   sf.Name,
					Index:  i,
					Type:   sf.Type.String(),
					RawTag: string(sf.Tag),
				},
				Exported: sf.IsExported(),
				Embedded: sf.Anonymous,
			})
		}
	}

	methodSet := base
	if base.Kind() != reflect.Interface {
		methodSet = reflect.PointerTo(base)
	}
	tags := methodTagsOf(base)
	for i := 0; i < methodSet.NumMethod(); i++ {
		m := methodSet.Method(i)
		// Interface method sets include unexported methods.
		if !m.IsExported() || m.Name == methodTaggerName {
			continue
		}
		tm.methods = append(tm.methods, Method{
			MemberInfo: MemberInfo{
				Class:  name,
				Name:   m.Name,
				Index:  len(tm.methods),
				Type:   m.Type.String(),
				RawTag: tags[m.Name],
			},
		})
	}
	return tm
}

func methodTagsOf(base reflect.Type) map[string]string {
	if base.Kind() == reflect.Interface {
		return nil
	}
	if tagger, ok := reflect.New(base).Interface().(MethodTagger); ok {
		return tagger.MethodTags()
	}
	return nil
}
