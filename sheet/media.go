package sheet

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// Query is a width range media condition in pixels. Zero bounds are absent.
type Query struct {
	MinWidth int
	MaxWidth int
}

// MaxWidth returns a query matching viewports up to px wide.
func MaxWidth(px int) Query { return Query{MaxWidth: px} }

// MinWidth returns a query matching viewports at least px wide.
func MinWidth(px int) Query { return Query{MinWidth: px} }

// Between returns a query matching viewports from lo to hi wide.
func Between(lo, hi int) Query { return Query{MinWidth: lo, MaxWidth: hi} }

// IsZero reports whether q has no bounds.
func (q Query) IsZero() bool {
	return q.MinWidth <= 0 && q.MaxWidth <= 0
}

// CSS renders the condition, e.g. "(min-width: 300px) and (max-width: 600px)".
func (q Query) CSS() string {
	var parts []string
	if q.MinWidth > 0 {
		parts = append(parts, fmt.Sprintf("(min-width: %dpx)", q.MinWidth))
	}
	if q.MaxWidth > 0 {
		parts = append(parts, fmt.Sprintf("(max-width: %dpx)", q.MaxWidth))
	}
	return strings.Join(parts, " and ")
}

func (q Query) String() string {
	return q.CSS()
}

// Media runs fn with q as the active scope: every Select and Redefine made
// by fn lands in the @media block for q. The scope is released on every exit
// path, including a panic inside fn. Scopes cannot be nested. Opening a
// query that was opened before continues its existing block.
func (s *StyleSheet) Media(q Query, fn func() error) error {
	if s.active != nil {
		return fmt.Errorf("opening %q inside %q: %w", q.CSS(), s.active.query.CSS(), ErrNestedMedia)
	}
	if q.IsZero() {
		return ErrEmptyMedia
	}
	if q.MinWidth > 0 && q.MaxWidth > 0 && q.MinWidth > q.MaxWidth {
		return fmt.Errorf("media query %q: min width exceeds max width", q.CSS())
	}

	s.active = s.scopeFor(q)
	defer func() { s.active = nil }()

	s.log.Debug("Media scope", zap.String("query", q.CSS()))
	return fn()
}

// scopeFor returns the scope for q, opening a new one after the existing
// scopes when needed.
func (s *StyleSheet) scopeFor(q Query) *scope {
	for _, sc := range s.media {
		if sc.query == q {
			return sc
		}
	}
	sc := newScope(q)
	s.media = append(s.media, sc)
	return sc
}
