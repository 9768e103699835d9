package design

import (
	"bytes"
	"fmt"
	"slices"
	"strings"
	"text/template"

	sprig "github.com/go-task/slim-sprig/v3"
	"github.com/gosimple/slug"
	"github.com/rupor-github/gencfg"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"stylekit/color"
	"stylekit/preset"
	"stylekit/sheet"
	"stylekit/style"
)

// Compiler turns design documents into stylesheets.
type Compiler struct {
	log  *zap.Logger
	opts []sheet.Option
}

// NewCompiler returns a compiler. Options are applied to every stylesheet
// before the options requested by the document itself. The compiler logger
// always wins over one passed in options.
func NewCompiler(log *zap.Logger, opts ...sheet.Option) *Compiler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Compiler{log: log.Named("design"), opts: opts}
}

// Compile builds the stylesheet described by doc. Every entry is validated
// and compiled independently: a failing entry is skipped and all failures
// are returned together along with the sheet built from the rest.
func (c *Compiler) Compile(doc *Document) (*sheet.StyleSheet, error) {
	opts := append(slices.Clone(c.opts), sheet.WithLogger(c.log))
	if doc.Normalize {
		opts = append(opts, sheet.WithNormalize())
	}
	if doc.Header != "" {
		opts = append(opts, sheet.WithHeader(doc.Header))
	}
	if len(doc.Base) > 0 {
		opts = append(opts, sheet.WithBase(doc.Base.style()))
	}
	u := preset.NewUtilitySystem(c.log, opts...)
	s := u.StyleSheet

	var errs error
	entry := func(section string, i int, v any, fn func() error) {
		err := gencfg.Validate(v)
		if err == nil {
			err = fn()
		}
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("%s[%d]: %w", section, i, err))
		}
	}

	for i := range doc.Styles {
		e := &doc.Styles[i]
		entry("styles", i, e, func() error { return addStyle(s, e) })
	}
	for i := range doc.Media {
		e := &doc.Media[i]
		entry("media", i, e, func() error {
			q := sheet.Query{MinWidth: e.MinWidth, MaxWidth: e.MaxWidth}
			return s.Media(q, func() error {
				var errs error
				for j := range e.Styles {
					errs = multierr.Append(errs, addStyle(s, &e.Styles[j]))
				}
				return errs
			})
		})
	}
	for i := range doc.Animations {
		e := &doc.Animations[i]
		entry("animations", i, e, func() error { return addAnimation(s, e) })
	}
	for i := range doc.Utilities {
		e := &doc.Utilities[i]
		entry("utilities", i, e, func() error { return addUtility(u, e) })
	}
	for i := range doc.Palettes {
		e := &doc.Palettes[i]
		entry("palettes", i, e, func() error { return addPalette(s, e) })
	}
	for i := range doc.Colors {
		e := &doc.Colors[i]
		entry("colors", i, e, func() error { return addColors(s, e) })
	}

	errs = multierr.Append(errs, s.Err())
	c.log.Debug("Compiled design document",
		zap.Int("styles", len(s.Styles())),
		zap.Int("media", len(s.Queries())),
		zap.Int("animations", len(s.Animations())),
		zap.Int("errors", len(multierr.Errors(errs))))
	return s, errs
}

func (r Rules) style() *style.Style {
	return r.apply(style.New())
}

func (r Rules) apply(st *style.Style) *style.Style {
	for _, p := range r {
		st.Rule(p.Name, p.Value)
	}
	return st
}

func addStyle(s *sheet.StyleSheet, e *StyleEntry) error {
	if e.Nth > 0 {
		return fmt.Errorf("%s: nth is only allowed on children", e.Select)
	}
	if _, err := style.Parse(e.Select); err != nil {
		return err
	}
	fillStyle(s.Select(e.Select), e)
	return nil
}

func fillStyle(st *style.Style, e *StyleEntry) {
	e.Rules.apply(st)
	for _, sr := range e.On {
		sr.Rules.apply(st.On(sr.State))
	}
	for i := range e.Children {
		child := &e.Children[i]
		fillStyle(st.Children(child.Select, child.Nth), child)
	}
}

func addAnimation(s *sheet.StyleSheet, e *AnimationEntry) error {
	a := s.Animation(e.Name)
	for _, kf := range e.Keyframes {
		a.At(kf.At, kf.Rules.style())
	}
	return nil
}

type nameData struct {
	Class   string
	Variant []any
	Index   int
}

func addUtility(u *preset.UtilitySystem, e *UtilityEntry) error {
	var (
		tmpl    *template.Template
		nameErr error
		index   int
	)
	if e.Name != "" {
		var err error
		if tmpl, err = template.New(e.Class).Funcs(sprig.FuncMap()).Parse(e.Name); err != nil {
			return fmt.Errorf("name template: %w", err)
		}
	}

	name := func(variant ...any) string {
		defer func() { index++ }()
		if tmpl == nil {
			parts := []string{e.Class}
			for _, v := range variant {
				parts = append(parts, fmt.Sprint(v))
			}
			return slug.Make(strings.Join(parts, "-"))
		}
		var buf bytes.Buffer
		if err := tmpl.Execute(&buf, nameData{Class: e.Class, Variant: variant, Index: index}); err != nil {
			nameErr = multierr.Append(nameErr, err)
		}
		return slug.Make(buf.String())
	}

	err := u.Define(preset.Definition{
		Class:    e.Class,
		Variants: e.Variants,
		Values:   e.Values,
		Name:     name,
		Truncate: e.Truncate,
		Rule: func(st *style.Style, values ...any) {
			parts := make([]string, len(values))
			for i, v := range values {
				parts[i] = fmt.Sprint(v)
			}
			st.Rule(e.Property, strings.Join(parts, " "))
		},
	})
	return multierr.Append(err, nameErr)
}

func addPalette(s *sheet.StyleSheet, e *PaletteEntry) error {
	start, err := color.FromHex(e.Start)
	if err != nil {
		return fmt.Errorf("start: %w", err)
	}
	end, err := color.FromHex(e.End)
	if err != nil {
		return fmt.Errorf("end: %w", err)
	}
	space, err := color.ParseSpace(e.Space)
	if err != nil {
		return err
	}
	colors, err := color.Palette(start, end, e.Steps, space)
	if err != nil {
		return err
	}
	for i, c := range colors {
		s.Select(fmt.Sprintf(".%s-%d", slug.Make(e.Class), i+1)).Rule(e.Property, c)
	}
	return nil
}

func addColors(s *sheet.StyleSheet, e *ColorEntry) error {
	var errs error
	for _, name := range e.Names {
		c, ok := color.Lookup(name)
		if !ok {
			errs = multierr.Append(errs, fmt.Errorf("unknown color %q", name))
			continue
		}
		class := slug.Make(e.Class + "-" + name)
		s.Select("." + class).Rule(e.Property, c)
	}
	return errs
}
