package query

import (
	"fmt"
	"strings"
	"sync"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Collator orders text values in WHERE comparisons
type Collator interface {
	// Compare returns -1 if a < b, 0 if a == b, 1 if a > b
	Compare(a, b string) int
}

// BinaryCollator compares strings byte-wise and case-sensitively
type BinaryCollator struct{}

// Compare implements Collator
func (BinaryCollator) Compare(a, b string) int {
	return strings.Compare(a, b)
}

// LocaleCollator orders strings using Unicode collation rules for a language.
// It is safe for concurrent use.
type LocaleCollator struct {
	mu       sync.Mutex // collate.Collator reuses internal buffers
	collator *collate.Collator
	tag      language.Tag
}

// NewLocaleCollator creates a collator for a BCP 47 tag such as "en" or "de-DE"
func NewLocaleCollator(locale string) (*LocaleCollator, error) {
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, fmt.Errorf("invalid collation locale %q: %w", locale, err)
	}
	return &LocaleCollator{
		collator: collate.New(tag),
		tag:      tag,
	}, nil
}

// Compare implements Collator
func (c *LocaleCollator) Compare(a, b string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.collator.CompareString(a, b)
}

// String returns the locale tag
func (c *LocaleCollator) String() string {
	return c.tag.String()
}

// CollatorFor returns the collator for a configuration name.
// "" and "binary" select byte-wise ordering; anything else is a locale tag.
func CollatorFor(name string) (Collator, error) {
	switch strings.ToLower(name) {
	case "", "binary":
		return BinaryCollator{}, nil
	default:
		return NewLocaleCollator(name)
	}
}
