package sheet

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"stylekit/css"
	"stylekit/style"
)

var nthChild = regexp.MustCompile(`:nth-child\((\d+)\)`)

// Import parses CSS text and replays every compatible rule into the sheet
// with Select and Rule. Width-only @media blocks become media scopes and
// @keyframes become animations. Constructs the sheet cannot represent are
// skipped and returned as warnings along with those of the parser. The error
// aggregates failures to open media scopes.
func (s *StyleSheet) Import(data []byte) ([]string, error) {
	parsed := css.NewParser(s.log).Parse(data)
	warnings := append([]string(nil), parsed.Warnings...)

	var errs error
	for _, item := range parsed.Items {
		switch {
		case item.Rule != nil:
			if w := s.importRule(item.Rule); w != "" {
				warnings = append(warnings, w)
			}
		case item.MediaBlock != nil:
			q := item.MediaBlock.Query
			if !q.Supported {
				continue
			}
			err := s.Media(Query{MinWidth: q.MinWidth, MaxWidth: q.MaxWidth}, func() error {
				for i := range item.MediaBlock.Rules {
					if w := s.importRule(&item.MediaBlock.Rules[i]); w != "" {
						warnings = append(warnings, w)
					}
				}
				return nil
			})
			errs = multierr.Append(errs, err)
		case item.Keyframes != nil:
			s.importKeyframes(item.Keyframes, &warnings)
		case item.Import != nil:
			warnings = append(warnings, fmt.Sprintf("@import %q not followed", *item.Import))
		}
	}

	s.log.Debug("Imported CSS",
		zap.Int("items", len(parsed.Items)),
		zap.Int("warnings", len(warnings)),
		zap.Error(errs))
	return warnings, errs
}

// importRule replays one rule in the current scope. It returns a warning when
// the selector cannot be represented.
func (s *StyleSheet) importRule(r *css.Rule) string {
	st, ok := s.resolve(r.Selector)
	if !ok {
		return fmt.Sprintf("selector not supported: %s", r.Selector)
	}
	for _, d := range r.Declarations {
		st.Rule(d.Property, d.Value)
	}
	return ""
}

// resolve maps a rendered selector back to a style: "a>b:nth-child(2):hover"
// is Select("a").Children("b", 2).On("hover"). Every part is validated before
// anything is created so an unsupported selector leaves the sheet untouched.
func (s *StyleSheet) resolve(sel string) (*style.Style, bool) {
	parts := strings.Split(sel, ">")
	type step struct {
		sel    string
		nth    int
		states []string // applied with On after nth-child
	}
	steps := make([]step, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		p := step{sel: part}
		if loc := nthChild.FindStringSubmatchIndex(part); loc != nil {
			n, err := strconv.Atoi(part[loc[2]:loc[3]])
			if err != nil || n <= 0 {
				return nil, false
			}
			prefix, suffix := part[:loc[0]], part[loc[1]:]
			i := strings.IndexByte(suffix, '[')
			if i < 0 {
				i = len(suffix)
			}
			states, attrs := suffix[:i], suffix[i:]
			if states != "" {
				if !strings.HasPrefix(states, ":") {
					return nil, false
				}
				p.states = strings.Split(states[1:], ":")
			}
			if _, err := style.Parse(prefix + states + attrs); err != nil {
				return nil, false
			}
			p.sel, p.nth = prefix+attrs, n
		}
		if p.sel == "" {
			return nil, false
		}
		if _, err := style.Parse(p.sel); err != nil {
			return nil, false
		}
		steps = append(steps, p)
	}

	on := func(st *style.Style, p step) *style.Style {
		for _, state := range p.states {
			st = st.On(state)
		}
		return st
	}
	st := s.Select(steps[0].sel)
	if steps[0].nth > 0 {
		st = st.On(fmt.Sprintf("nth-child(%d)", steps[0].nth))
	}
	st = on(st, steps[0])
	for _, p := range steps[1:] {
		st = on(st.Children(p.sel, p.nth), p)
	}
	return st, true
}
