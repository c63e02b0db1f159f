// Package fixtures builds deterministic code collections for tests.
//
// Example usage:
//
//	codes := fixtures.NewBuilder().
//		WithCodes("General", 3).
//		WithUsedCodes("Apple", 2).
//		WithCode("Other", "GIFTCARD0000000000000001").
//		Build()
package fixtures

import (
	"fmt"
	"strings"

	"github.com/Veraticus/codevault/internal/model"
)

// Builder provides a fluent interface for constructing test codes. Codes
// come out in the order they were added, with strictly increasing
// timestamps and ids "code-1", "code-2", ...
type Builder interface {
	// WithCode adds one unused code with an explicit value.
	WithCode(category, value string) Builder

	// WithCodes adds n unused generated codes.
	WithCodes(category string, n int) Builder

	// WithUsedCodes adds n used generated codes.
	WithUsedCodes(category string, n int) Builder

	// Build returns the codes built so far.
	Build() []model.Code
}

type codeBuilder struct {
	codes []model.Code
	seq   int
}

// NewBuilder creates an empty builder.
func NewBuilder() Builder {
	return &codeBuilder{}
}

func (b *codeBuilder) WithCode(category, value string) Builder {
	b.add(category, value, false)
	return b
}

func (b *codeBuilder) WithCodes(category string, n int) Builder {
	for i := 0; i < n; i++ {
		b.add(category, "", false)
	}
	return b
}

func (b *codeBuilder) WithUsedCodes(category string, n int) Builder {
	for i := 0; i < n; i++ {
		b.add(category, "", true)
	}
	return b
}

func (b *codeBuilder) Build() []model.Code {
	out := make([]model.Code, len(b.codes))
	copy(out, b.codes)
	return out
}

func (b *codeBuilder) add(category, value string, used bool) {
	b.seq++
	if value == "" {
		value = GeneratedValue(category, b.seq)
	}
	b.codes = append(b.codes, model.Code{
		ID:        fmt.Sprintf("code-%d", b.seq),
		Value:     value,
		Prefix:    model.PrefixOf(value),
		Category:  category,
		IsUsed:    used,
		CreatedAt: int64(1000 + b.seq),
	})
}

// GeneratedValue returns the value the builder generates for category at
// position seq: a 24 character alphanumeric token whose prefix derives from
// the category name.
func GeneratedValue(category string, seq int) string {
	var head strings.Builder
	for _, r := range strings.ToUpper(category) {
		if (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			head.WriteRune(r)
		}
		if head.Len() == model.PrefixLength {
			break
		}
	}
	prefix := head.String() + strings.Repeat("X", model.PrefixLength-head.Len())
	return fmt.Sprintf("%s%020d", prefix, seq)
}
