package annotation

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/fatih/structtag"
)

// Tag is one key:"value" pair of a member's tag, with the value split on
// commas into a name and options (json:"id,omitempty" has Key "json", Name
// "id" and Options ["omitempty"]).
type Tag struct {
	Key     string   `json:"key" yaml:"key"`
	Name    string   `json:"name,omitempty" yaml:"name,omitempty"`
	Options []string `json:"options,omitempty" yaml:"options,omitempty"`
}

// Value returns the tag value as written: the name followed by its options.
func (t Tag) Value() string {
	if len(t.Options) == 0 {
		return t.Name
	}
	return t.Name + "," + strings.Join(t.Options, ",")
}

// String renders the tag in struct tag syntax.
func (t Tag) String() string {
	return t.Key + ":" + strconv.Quote(t.Value())
}

// HasOption reports whether opt is one of the tag's options.
func (t Tag) HasOption(opt string) bool {
	return slices.Contains(t.Options, opt)
}

// Marks reports whether the tag has the given key and carries name either as
// its name or as one of its options.
func (t Tag) Marks(key, name string) bool {
	return t.Key == key && (t.Name == name || t.HasOption(name))
}

// ParseTags parses struct tag text into tags, keeping declaration order.
// Blank text yields no tags.
func ParseTags(raw string) ([]Tag, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	parsed, err := structtag.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrMalformedTag, raw, err)
	}
	if parsed == nil {
		return nil, nil
	}
	tags := make([]Tag, 0, len(parsed.Tags()))
	for _, t := range parsed.Tags() {
		tag := Tag{Key: t.Key, Name: t.Name}
		if len(t.Options) > 0 {
			tag.Options = slices.Clone(t.Options)
		}
		tags = append(tags, tag)
	}
	return tags, nil
}
