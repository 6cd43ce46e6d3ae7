package annotation

import "fmt"

// Provider supplies class metadata to the engine. Implementations must return
// members and tags in a stable order: the same class yields the same sequence
// on every call.
type Provider interface {
	DeclaredFields(c Class) ([]Field, error)
	DeclaredMethods(c Class) ([]Method, error)
	AnnotationsOf(m Member) ([]Tag, error)
}

// rawTagsOf parses the RawTag of m. Both bundled providers resolve tags this way.
func rawTagsOf(m Member) ([]Tag, error) {
	if m == nil {
		return nil, ErrNilMember
	}
	info := m.Info()
	tags, err := ParseTags(info.RawTag)
	if err != nil {
		return nil, fmt.Errorf("%s.%s: %w", info.Class, info.Name, err)
	}
	return tags, nil
}
