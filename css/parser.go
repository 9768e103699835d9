package css

import (
	"bytes"
	"strconv"
	"strings"

	parse "github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
	"go.uber.org/zap"
)

// Parser parses CSS stylesheets into structured rules.
type Parser struct {
	log *zap.Logger
}

// NewParser creates a new CSS parser.
func NewParser(log *zap.Logger) *Parser {
	if log == nil {
		log = zap.NewNop()
	}
	return &Parser{log: log.Named("css-parser")}
}

// Parse parses CSS text into a Stylesheet.
// The optional source parameter identifies what's being parsed (for debug logging).
func (p *Parser) Parse(src []byte, source ...string) *Stylesheet {
	sheet := &Stylesheet{
		Items:    make([]StylesheetItem, 0),
		Warnings: make([]string, 0),
	}

	if len(source) > 0 && source[0] != "" {
		p.log.Debug("Parsing CSS", zap.String("source", source[0]), zap.Int("bytes", len(src)))
	}

	input := parse.NewInput(bytes.NewReader(src))
	parser := css.NewParser(input, false)

	for {
		gt, _, data := parser.Next()

		switch gt {
		case css.ErrorGrammar:
			// End of input or error
			if parser.Err() != nil && parser.Err().Error() != "EOF" {
				p.log.Debug("CSS parse error", zap.Error(parser.Err()))
				sheet.Warnings = append(sheet.Warnings, "parse error: "+parser.Err().Error())
			}
			return sheet

		case css.BeginAtRuleGrammar:
			atRule := strings.ToLower(string(data))
			switch atRule {
			case "@media":
				mq := p.parseMediaQueryFromTokens(parser.Values())
				rules := p.parseMediaBlockRules(parser, src, sheet)
				if !mq.Supported {
					sheet.Warnings = append(sheet.Warnings, "unsupported media query: "+mq.Raw)
				}
				p.log.Debug("Parsed @media block", zap.String("query", mq.Raw), zap.Int("rules", len(rules)))
				sheet.Items = append(sheet.Items, StylesheetItem{
					MediaBlock: &MediaBlock{Query: mq, Rules: rules},
				})
			case "@keyframes":
				name := keyframesName(parser.Values())
				kf := &Keyframes{Name: name, Frames: p.parseKeyframes(parser, src, sheet)}
				if name == "" {
					sheet.Warnings = append(sheet.Warnings, "@keyframes without name")
					continue
				}
				p.log.Debug("Parsed @keyframes", zap.String("name", name), zap.Int("frames", len(kf.Frames)))
				sheet.Items = append(sheet.Items, StylesheetItem{Keyframes: kf})
			default:
				// Skip other @-rules with blocks
				p.skipAtRuleBlock(parser)
				sheet.Warnings = append(sheet.Warnings, "unsupported at-rule: "+atRule)
				p.log.Debug("Skipping @-rule", zap.String("rule", atRule))
			}

		case css.AtRuleGrammar:
			// Simple @-rule without block (e.g., @import)
			atRule := strings.ToLower(string(data))
			if atRule == "@import" {
				url := extractImportURL(parser.Values())
				if url != "" {
					sheet.Items = append(sheet.Items, StylesheetItem{Import: &url})
					p.log.Debug("Parsed @import", zap.String("url", url))
				}
			} else {
				sheet.Warnings = append(sheet.Warnings, "unsupported at-rule: "+atRule)
				p.log.Debug("Skipping @-rule", zap.String("rule", atRule))
			}

		case css.BeginRulesetGrammar:
			selectors := p.parseSelectors(data, parser.Values())
			decls := p.parseDeclarations(parser, src)
			for _, sel := range selectors {
				sheet.Items = append(sheet.Items, StylesheetItem{
					Rule: &Rule{Selector: sel, Declarations: cloneDeclarations(decls)},
				})
			}

		case css.QualifiedRuleGrammar:
			// Selector list without a block, nothing to keep
			p.log.Debug("Skipping qualified rule without block")
		}
	}
}

// extractImportURL extracts the URL from @import tokens.
// Handles: @import "url"; @import url("url"); @import url(url);
func extractImportURL(tokens []css.Token) string {
	for _, t := range tokens {
		switch t.TokenType {
		case css.StringToken:
			return unquote(string(t.Data))
		case css.URLToken:
			// the token data is the full url(...) string
			s := string(t.Data)
			s = strings.TrimPrefix(s, "url(")
			s = strings.TrimSuffix(s, ")")
			return unquote(strings.TrimSpace(s))
		}
	}
	return ""
}

// keyframesName returns the first identifier or string of the prelude.
func keyframesName(tokens []css.Token) string {
	for _, t := range tokens {
		switch t.TokenType {
		case css.IdentToken:
			return string(t.Data)
		case css.StringToken:
			return unquote(string(t.Data))
		}
	}
	return ""
}

// parseSelectors extracts selector strings from token data.
func (p *Parser) parseSelectors(data []byte, values []css.Token) []string {
	var sb strings.Builder
	sb.Write(data)
	for _, v := range values {
		sb.Write(v.Data)
	}

	// Split by comma for grouped selectors
	var selectors []string
	for s := range strings.SplitSeq(sb.String(), ",") {
		s = strings.Join(strings.Fields(s), " ")
		if s != "" {
			selectors = append(selectors, s)
		}
	}
	return selectors
}

// parseDeclarations parses property declarations until the end of the
// current block. A repeated property keeps its first position. Values are
// taken from the source text, the token stream loses spacing around commas
// and slashes.
func (p *Parser) parseDeclarations(parser *css.Parser, src []byte) []Declaration {
	var decls []Declaration
	set := func(prop, value string) {
		for i := range decls {
			if decls[i].Property == prop {
				decls[i].Value = value
				return
			}
		}
		decls = append(decls, Declaration{Property: prop, Value: value})
	}

	for {
		start := parser.Offset()
		gt, _, data := parser.Next()

		switch gt {
		case css.ErrorGrammar, css.EndRulesetGrammar, css.EndAtRuleGrammar:
			return decls

		case css.DeclarationGrammar:
			raw, ok := declarationValue(src, start, parser.Offset())
			if !ok {
				raw = joinTokens(parser.Values())
			}
			if raw != "" {
				set(strings.ToLower(string(data)), raw)
			}

		case css.CustomPropertyGrammar:
			if raw := joinTokens(parser.Values()); raw != "" {
				set(string(data), raw)
			}
		}
	}
}

// declarationValue extracts the value of the declaration occupying
// src[start:end], terminator included.
func declarationValue(src []byte, start, end int) (string, bool) {
	if start < 0 || end > len(src) || start >= end {
		return "", false
	}
	raw := src[start:end]
	if last := raw[len(raw)-1]; last == ';' || last == '}' {
		raw = raw[:len(raw)-1]
	}
	_, value, ok := strings.Cut(compactValue(raw), ":")
	if !ok {
		return "", false
	}
	return strings.TrimSpace(value), true
}

// compactValue drops comments and collapses whitespace runs outside of
// quoted strings into a single space.
func compactValue(raw []byte) string {
	var b strings.Builder
	var quote byte
	space := false
	for i := 0; i < len(raw); i++ {
		c := raw[i]
		if quote != 0 {
			b.WriteByte(c)
			if c == '\\' && i+1 < len(raw) {
				i++
				b.WriteByte(raw[i])
			} else if c == quote {
				quote = 0
			}
			continue
		}
		switch {
		case c == '/' && i+1 < len(raw) && raw[i+1] == '*':
			end := bytes.Index(raw[i+2:], []byte("*/"))
			if end < 0 {
				i = len(raw)
			} else {
				i += end + 3
			}
			space = true
			continue
		case c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f':
			space = true
			continue
		}
		if space && b.Len() > 0 {
			b.WriteByte(' ')
		}
		space = false
		if c == '"' || c == '\'' {
			quote = c
		}
		b.WriteByte(c)
	}
	return strings.TrimSpace(b.String())
}

// joinTokens rebuilds a value from tokens, collapsing whitespace runs into a
// single space.
func joinTokens(tokens []css.Token) string {
	var parts []string
	for _, t := range tokens {
		if t.TokenType != css.WhitespaceToken {
			parts = append(parts, string(t.Data))
		} else if len(parts) > 0 {
			parts = append(parts, " ")
		}
	}
	return strings.TrimSpace(strings.Join(parts, ""))
}

func cloneDeclarations(decls []Declaration) []Declaration {
	out := make([]Declaration, len(decls))
	copy(out, decls)
	return out
}

// skipAtRuleBlock skips tokens until the matching end of an @-rule block.
func (p *Parser) skipAtRuleBlock(parser *css.Parser) {
	depth := 1
	for depth > 0 {
		gt, _, _ := parser.Next()
		switch gt {
		case css.ErrorGrammar:
			return
		case css.BeginAtRuleGrammar, css.BeginRulesetGrammar:
			depth++
		case css.EndAtRuleGrammar, css.EndRulesetGrammar:
			depth--
		}
	}
}

// parseMediaQueryFromTokens parses a media query from CSS tokens.
// Handles "(min-width: Npx)", "(max-width: Npx)" and both joined by "and".
func (p *Parser) parseMediaQueryFromTokens(tokens []css.Token) MediaQuery {
	mq := MediaQuery{Raw: joinTokens(tokens)}

	var significant []css.Token
	for _, t := range tokens {
		if t.TokenType != css.WhitespaceToken {
			significant = append(significant, t)
		}
	}

	// Format: feature [and feature]... where feature is ( name : Npx )
	i := 0
	for {
		if i+5 > len(significant) {
			return mq
		}
		f := significant[i : i+5]
		if f[0].TokenType != css.LeftParenthesisToken ||
			f[1].TokenType != css.IdentToken ||
			f[2].TokenType != css.ColonToken ||
			f[4].TokenType != css.RightParenthesisToken {
			return mq
		}
		width, ok := pixels(f[3])
		if !ok {
			return mq
		}
		switch strings.ToLower(string(f[1].Data)) {
		case "min-width":
			mq.MinWidth = width
		case "max-width":
			mq.MaxWidth = width
		default:
			return mq
		}
		i += 5

		if i == len(significant) {
			mq.Supported = true
			return mq
		}
		if significant[i].TokenType != css.IdentToken || !strings.EqualFold(string(significant[i].Data), "and") {
			return mq
		}
		i++
	}
}

// pixels accepts "Npx" dimensions with integral N and a bare "0".
func pixels(t css.Token) (int, bool) {
	s := string(t.Data)
	switch t.TokenType {
	case css.NumberToken:
		if s != "0" {
			return 0, false
		}
		return 0, true
	case css.DimensionToken:
		num, ok := strings.CutSuffix(strings.ToLower(s), "px")
		if !ok {
			return 0, false
		}
		v, err := strconv.Atoi(num)
		if err != nil || v < 0 {
			return 0, false
		}
		return v, true
	}
	return 0, false
}

// parseMediaBlockRules parses rules inside an @media block and returns them.
func (p *Parser) parseMediaBlockRules(parser *css.Parser, src []byte, sheet *Stylesheet) []Rule {
	var rules []Rule

	for {
		gt, _, data := parser.Next()

		switch gt {
		case css.ErrorGrammar, css.EndAtRuleGrammar:
			return rules

		case css.BeginAtRuleGrammar:
			p.skipAtRuleBlock(parser)
			sheet.Warnings = append(sheet.Warnings, "unsupported nested at-rule: "+string(data))

		case css.BeginRulesetGrammar:
			selectors := p.parseSelectors(data, parser.Values())
			decls := p.parseDeclarations(parser, src)
			for _, sel := range selectors {
				rules = append(rules, Rule{Selector: sel, Declarations: cloneDeclarations(decls)})
			}
		}
	}
}

// parseKeyframes parses the steps of a @keyframes block.
func (p *Parser) parseKeyframes(parser *css.Parser, src []byte, sheet *Stylesheet) []Keyframe {
	var frames []Keyframe

	for {
		gt, _, data := parser.Next()

		switch gt {
		case css.ErrorGrammar, css.EndAtRuleGrammar:
			return frames

		case css.BeginAtRuleGrammar:
			p.skipAtRuleBlock(parser)
			sheet.Warnings = append(sheet.Warnings, "unsupported nested at-rule: "+string(data))

		case css.BeginRulesetGrammar:
			selectors := p.parseSelectors(data, parser.Values())
			decls := p.parseDeclarations(parser, src)
			for _, sel := range selectors {
				frames = append(frames, Keyframe{Selector: sel, Declarations: cloneDeclarations(decls)})
			}
		}
	}
}

// unquote removes surrounding quotes from a string.
func unquote(s string) string {
	s = strings.TrimSpace(s)
	if len(s) < 2 {
		return s
	}
	if (s[0] == '"' && s[len(s)-1] == '"') ||
		(s[0] == '\'' && s[len(s)-1] == '\'') {
		return s[1 : len(s)-1]
	}
	return s
}
