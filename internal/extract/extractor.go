// Package extract pulls redemption-code shaped tokens out of free text.
package extract

import (
	"regexp"
	"time"

	"github.com/Veraticus/codevault/internal/model"
	"github.com/google/uuid"
)

// Token length bounds, inclusive.
const (
	MinCodeLength = 20
	MaxCodeLength = 60
)

// codePattern scans leftmost-first with a greedy repeat, so a run longer
// than MaxCodeLength is consumed in MaxCodeLength chunks and a tail shorter
// than MinCodeLength is dropped.
var codePattern = regexp.MustCompile(`[A-Za-z0-9]{20,60}`)

// Extractor turns pasted text into candidate codes. It never touches the
// vault; merging candidates is the caller's job.
type Extractor struct {
	now   func() time.Time
	newID func() string
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithClock overrides the clock used for the batch base timestamp.
func WithClock(now func() time.Time) Option {
	return func(e *Extractor) {
		e.now = now
	}
}

// WithIDGenerator overrides the id source.
func WithIDGenerator(newID func() string) Option {
	return func(e *Extractor) {
		e.newID = newID
	}
}

// New creates an Extractor. By default ids are random UUIDs and the batch
// base instant is time.Now.
func New(opts ...Option) *Extractor {
	e := &Extractor{
		now:   time.Now,
		newID: func() string { return uuid.New().String() },
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

var defaultExtractor = New()

// Extract runs the default extractor.
func Extract(text, category string) []model.Code {
	return defaultExtractor.Extract(text, category)
}

// Tokens returns the distinct code tokens in text in first-seen order.
func Tokens(text string) []string {
	matches := codePattern.FindAllString(text, -1)
	if len(matches) == 0 {
		return nil
	}

	seen := make(map[string]struct{}, len(matches))
	tokens := make([]string, 0, len(matches))
	for _, m := range matches {
		if _, ok := seen[m]; ok {
			continue
		}
		seen[m] = struct{}{}
		tokens = append(tokens, m)
	}
	return tokens
}

// Count reports how many distinct tokens text holds.
func Count(text string) int {
	return len(Tokens(text))
}

// Extract builds one candidate per distinct token, filed under category.
// Every candidate of a batch shares one clock reading offset by its position,
// so pasted order survives a coarse clock. An empty result is not an error.
func (e *Extractor) Extract(text, category string) []model.Code {
	tokens := Tokens(text)
	if len(tokens) == 0 {
		return nil
	}

	base := e.now().UnixMilli()
	codes := make([]model.Code, len(tokens))
	for i, token := range tokens {
		codes[i] = model.Code{
			ID:        e.newID(),
			Value:     token,
			Prefix:    model.PrefixOf(token),
			Category:  category,
			IsUsed:    false,
			CreatedAt: base + int64(i),
		}
	}
	return codes
}
