package domain

import (
	"regexp"
	"strings"

	"github.com/mouse-blink/turretlint/internal/domain/ncode"
	m "github.com/mouse-blink/turretlint/internal/model"
)

const ignoreDirective = "turretlint:ignore"

var rxComment = regexp.MustCompile(`\(([^()]*)\)`)

type ignoreRule struct {
	all   bool
	names map[string]struct{}
}

func (r ignoreRule) ignores(severity m.Severity) bool {
	if r.all {
		return true
	}

	if len(r.names) == 0 {
		return false
	}

	_, ok := r.names[string(severity)]

	return ok
}

func (r ignoreRule) empty() bool {
	return !r.all && len(r.names) == 0
}

func mergeIgnoreRule(dst *ignoreRule, src ignoreRule) {
	if src.all {
		dst.all = true
		dst.names = nil

		return
	}

	if dst.all || len(src.names) == 0 {
		return
	}

	if dst.names == nil {
		dst.names = make(map[string]struct{}, len(src.names))
	}

	for name := range src.names {
		dst.names[name] = struct{}{}
	}
}

// parseIgnoreDirective parses the body of one NC comment, e.g.
// "turretlint:ignore" or "TURRETLINT:IGNORE warning, info".
func parseIgnoreDirective(commentText string) (ignoreRule, bool) {
	s := strings.ToLower(strings.TrimSpace(commentText))

	if !strings.HasPrefix(s, ignoreDirective) {
		return ignoreRule{}, false
	}

	rest := strings.TrimSpace(strings.TrimPrefix(s, ignoreDirective))
	if rest == "" {
		return ignoreRule{all: true}, true
	}

	parts := strings.Split(rest, ",")
	rule := ignoreRule{names: make(map[string]struct{}, len(parts))}

	for _, part := range parts {
		name := strings.TrimSpace(part)
		if name == "" {
			continue
		}

		rule.names[name] = struct{}{}
	}

	if len(rule.names) == 0 {
		rule.all = true
		rule.names = nil
	}

	return rule, true
}

// ignoreIndex maps suppression directives to the lines they cover.
type ignoreIndex struct {
	file ignoreRule
	line map[int]ignoreRule
}

// buildIgnoreIndex collects directives from text. A directive on a comment
// line of the preamble covers the whole program. A directive on a comment
// line after the first turret selection covers the next code line. An
// inline directive covers its own line.
func buildIgnoreIndex(text string) ignoreIndex {
	idx := ignoreIndex{line: make(map[int]ignoreRule)}
	preamble := true

	var pending ignoreRule

	for i, raw := range strings.Split(text, "\n") {
		lineNo := i + 1
		line := strings.TrimSpace(raw)

		if line == "" {
			continue
		}

		if ncode.DetectTurretSelection(line) != m.TurretNone {
			preamble = false
		}

		rule := lineDirectives(line)

		if ncode.IsComment(line) {
			switch {
			case preamble:
				mergeIgnoreRule(&idx.file, rule)
			default:
				mergeIgnoreRule(&pending, rule)
			}

			continue
		}

		mergeIgnoreRule(&rule, pending)
		pending = ignoreRule{}

		if !rule.empty() {
			idx.line[lineNo] = rule
		}
	}

	return idx
}

func lineDirectives(line string) ignoreRule {
	var rule ignoreRule

	for _, match := range rxComment.FindAllStringSubmatch(line, -1) {
		r, ok := parseIgnoreDirective(match[1])
		if !ok {
			continue
		}

		mergeIgnoreRule(&rule, r)
	}

	return rule
}

func (idx ignoreIndex) suppresses(d m.Diagnostic) bool {
	if idx.file.ignores(d.Severity) {
		return true
	}

	return idx.line[d.Line].ignores(d.Severity)
}

// filter returns a copy of a without the suppressed diagnostics. Streams
// and machine state are shared with a.
func (idx ignoreIndex) filter(a m.Analysis) m.Analysis {
	if idx.file.empty() && len(idx.line) == 0 {
		return a
	}

	a.Errors = idx.keep(a.Errors)
	a.Warnings = idx.keep(a.Warnings)
	a.Info = idx.keep(a.Info)

	return a
}

func (idx ignoreIndex) keep(diags []m.Diagnostic) []m.Diagnostic {
	var out []m.Diagnostic

	for _, d := range diags {
		if !idx.suppresses(d) {
			out = append(out, d)
		}
	}

	return out
}
