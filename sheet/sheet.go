// Package sheet implements the stylesheet: an ordered forest of styles, media
// scopes for breakpoint overrides and keyframe registration, rendered into a
// single deterministic CSS document.
package sheet

import (
	"errors"
	"slices"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"stylekit/selector"
	"stylekit/style"
)

var (
	// ErrNestedMedia is returned when Media is called inside an active scope.
	ErrNestedMedia = errors.New("media scopes cannot be nested")
	// ErrNoMedia is returned by Redefine outside of a media scope.
	ErrNoMedia = errors.New("redefine requires an active media scope")
	// ErrEmptyMedia is returned for a media query without any width bound.
	ErrEmptyMedia = errors.New("media query requires min or max width")
	// ErrAnonymous is returned by Redefine for a style without selector.
	ErrAnonymous = errors.New("cannot redefine a style without selector")
)

// scope is an ordered set of top-level styles keyed by selector CSS.
type scope struct {
	query  Query
	styles []*style.Style
	index  map[string]*style.Style
}

func newScope(q Query) *scope {
	return &scope{query: q, index: make(map[string]*style.Style)}
}

// lookup returns the style for sel, creating and appending it when missing.
func (sc *scope) lookup(sel selector.Selector) (*style.Style, bool) {
	key := sel.CSS()
	if st, ok := sc.index[key]; ok {
		return st, false
	}
	st := style.For(sel)
	sc.index[key] = st
	sc.styles = append(sc.styles, st)
	return st, true
}

// StyleSheet is an ordered collection of top-level styles. It is not safe
// for concurrent use.
type StyleSheet struct {
	log        *zap.Logger
	header     string
	normalize  bool
	namer      style.Namer
	base       *style.Style
	root       *scope
	media      []*scope
	active     *scope
	animations []*style.Animation
	errs       []error
}

// Option configures a StyleSheet.
type Option func(*StyleSheet)

// WithNormalize prepends the normalize.css preamble to the rendered output.
func WithNormalize() Option {
	return func(s *StyleSheet) { s.normalize = true }
}

// WithHeader prepends a comment to the rendered output.
func WithHeader(text string) Option {
	return func(s *StyleSheet) { s.header = text }
}

// WithLogger sets the logger, zap.NewNop() by default.
func WithLogger(log *zap.Logger) Option {
	return func(s *StyleSheet) {
		if log != nil {
			s.log = log
		}
	}
}

// WithNamer sets the namer for anonymous animations, style.DefaultNamer by
// default.
func WithNamer(n style.Namer) Option {
	return func(s *StyleSheet) {
		if n != nil {
			s.namer = n
		}
	}
}

// WithBase applies the declarations of base to the body element.
func WithBase(base *style.Style) Option {
	return func(s *StyleSheet) {
		s.base = base
	}
}

// New creates an empty stylesheet.
func New(opts ...Option) *StyleSheet {
	s := &StyleSheet{
		log:   zap.NewNop(),
		namer: style.DefaultNamer,
		root:  newScope(Query{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = s.log.Named("stylesheet")
	if s.base != nil {
		s.Select("body").Apply(s.base)
	}
	return s
}

func (s *StyleSheet) current() *scope {
	if s.active != nil {
		return s.active
	}
	return s.root
}

// Select returns the top-level style for a selector string in the current
// scope, creating it on first use. Repeated calls with the same selector
// return the same style. A malformed selector yields a detached style which
// carries the *selector.ParseError and is reported by Err.
func (s *StyleSheet) Select(sel string) *style.Style {
	parsed, err := selector.Parse(sel)
	if err == nil && parsed.IsEmpty() {
		err = &selector.ParseError{Input: sel}
	}
	if err != nil {
		s.log.Debug("Invalid selector", zap.String("selector", sel), zap.Error(err))
		s.errs = append(s.errs, err)
		return style.Invalid(err)
	}
	st, created := s.current().lookup(parsed)
	if created {
		s.log.Debug("New style", zap.String("selector", parsed.CSS()), zap.String("media", s.current().query.CSS()))
	}
	return st
}

// Redefine returns a style with the selector of st (not its declarations)
// in the active media scope. Redefining the same selector twice in a scope
// returns the same style.
func (s *StyleSheet) Redefine(st *style.Style) (*style.Style, error) {
	if s.active == nil {
		return nil, ErrNoMedia
	}
	sel, ok := st.Selector()
	if !ok {
		return nil, ErrAnonymous
	}
	out, _ := s.active.lookup(sel)
	s.log.Debug("Redefined style", zap.String("selector", sel.CSS()), zap.String("media", s.active.query.CSS()))
	return out, nil
}

// Animation returns a new animation registered with the sheet. An empty name
// is replaced by one from the sheet namer.
func (s *StyleSheet) Animation(name string) *style.Animation {
	var a *style.Animation
	if name == "" {
		a = style.Anonymous(s.namer)
	} else {
		a = style.NewAnimation(name)
	}
	s.Keyframes(a)
	return a
}

// Keyframes registers animations for rendering. Animations attached to
// styles with Animate are registered implicitly at render time, after the
// explicit ones.
func (s *StyleSheet) Keyframes(anims ...*style.Animation) *StyleSheet {
	for _, a := range anims {
		if a != nil && !slices.Contains(s.animations, a) {
			s.animations = append(s.animations, a)
		}
	}
	return s
}

// Extend adopts the styles, media scopes and animations of other. Styles
// with a selector already present in the matching scope are merged into it.
func (s *StyleSheet) Extend(other *StyleSheet) *StyleSheet {
	if other == nil || other == s {
		return s
	}
	for _, st := range other.root.styles {
		s.adopt(s.root, st)
	}
	for _, sc := range other.media {
		mine := s.scopeFor(sc.query)
		for _, st := range sc.styles {
			s.adopt(mine, st)
		}
	}
	s.Keyframes(other.animations...)
	s.errs = append(s.errs, other.errs...)
	s.log.Debug("Extended stylesheet", zap.Int("styles", len(other.root.styles)), zap.Int("media", len(other.media)))
	return s
}

func (s *StyleSheet) adopt(sc *scope, st *style.Style) {
	sel, ok := st.Selector()
	if !ok {
		return
	}
	mine, _ := sc.lookup(sel)
	mine.Merge(st)
}

// Styles returns the unscoped top-level styles in insertion order.
func (s *StyleSheet) Styles() []*style.Style {
	return slices.Clone(s.root.styles)
}

// Queries returns the media queries in the order their scopes were opened.
func (s *StyleSheet) Queries() []Query {
	out := make([]Query, len(s.media))
	for i, sc := range s.media {
		out[i] = sc.query
	}
	return out
}

// Scoped returns the top-level styles of the scope for q.
func (s *StyleSheet) Scoped(q Query) []*style.Style {
	for _, sc := range s.media {
		if sc.query == q {
			return slices.Clone(sc.styles)
		}
	}
	return nil
}

// Animations returns every animation that will be rendered: explicitly
// registered ones first, then those attached to styles, in walk order.
func (s *StyleSheet) Animations() []*style.Animation {
	out := slices.Clone(s.animations)
	s.each(func(st *style.Style, _ int) {
		for _, a := range st.Animations() {
			if !slices.Contains(out, a) {
				out = append(out, a)
			}
		}
	})
	return out
}

// each walks every style of every scope, unscoped first.
func (s *StyleSheet) each(fn func(st *style.Style, depth int)) {
	for _, sc := range append([]*scope{s.root}, s.media...) {
		for _, st := range sc.styles {
			st.Walk(fn)
		}
	}
}

// Err returns every error recorded while building the sheet: malformed
// selectors and failed helper calls on any style or keyframe.
func (s *StyleSheet) Err() error {
	errs := slices.Clone(s.errs)
	s.each(func(st *style.Style, _ int) {
		if err := st.Err(); err != nil {
			errs = append(errs, err)
		}
	})
	for _, a := range s.Animations() {
		errs = append(errs, a.Errors()...)
	}
	return multierr.Combine(errs...)
}
