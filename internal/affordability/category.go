package affordability

import (
	"fmt"
	"sort"
	"strings"

	apperrors "foodafford/internal/errors"
)

// Category is the nutritional group an item belongs to.
type Category string

const (
	Healthy   Category = "Healthy"
	Neutral   Category = "Neutral"
	Unhealthy Category = "Unhealthy"
)

// Categories lists every category in display order.
var Categories = []Category{Healthy, Neutral, Unhealthy}

// ParseCategory matches a category name case-insensitively.
func ParseCategory(s string) (Category, error) {
	for _, c := range Categories {
		if strings.EqualFold(strings.TrimSpace(s), string(c)) {
			return c, nil
		}
	}
	return "", apperrors.WithMessage(apperrors.ErrInvalidInput,
		fmt.Sprintf("unknown category %q (want Healthy, Neutral or Unhealthy)", s))
}

// Tagger is a static item to category lookup.
type Tagger struct {
	tags  map[string]Category
	names map[string]string
}

// NewTagger builds a tagger from item names to categories.
func NewTagger(tags map[string]Category) *Tagger {
	t := &Tagger{
		tags:  make(map[string]Category, len(tags)),
		names: make(map[string]string, len(tags)),
	}
	t.Merge(tags)
	return t
}

// Merge adds tags, replacing the category of items already known.
func (t *Tagger) Merge(tags map[string]Category) {
	for item, c := range tags {
		key := ItemKey(item)
		t.tags[key] = c
		t.names[key] = strings.TrimSpace(item)
	}
}

// Tag returns the category of item.
func (t *Tagger) Tag(item string) (Category, bool) {
	c, ok := t.tags[ItemKey(item)]
	return c, ok
}

// MustTag returns the category of item or an UNCATEGORIZED_ITEM error.
func (t *Tagger) MustTag(item string) (Category, error) {
	c, ok := t.Tag(item)
	if !ok {
		return "", apperrors.WithMessage(apperrors.ErrUncategorizedItem,
			fmt.Sprintf("item %q has no category", item))
	}
	return c, nil
}

// Items returns the tagged item names sorted alphabetically.
func (t *Tagger) Items() []string {
	items := make([]string, 0, len(t.names))
	for _, name := range t.names {
		items = append(items, name)
	}
	sort.Strings(items)
	return items
}

// Len returns the number of tagged items.
func (t *Tagger) Len() int { return len(t.tags) }
