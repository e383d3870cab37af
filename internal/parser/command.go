// Package parser turns raw terminal lines into commands and reduces
// polymorphic command parameters to positional sub-commands.
package parser

import (
	"regexp"
	"strings"

	"github.com/kballard/go-shellquote"

	"kaya/pkg/kayatypes"
)

var fieldKeyPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_.-]*$`)

// Parse splits a trimmed, non-empty line into a lower-cased command name and
// the parameters derived from the remainder. It never fails: a blank line
// yields an empty name, which the registry reports as unknown.
//
// A remainder is exposed as fields carrying both views a handler may want:
// "args" (positional tokens, quotes removed) and "rest" (the raw remainder).
// Tokens shaped key=value become named fields.
func Parse(line string) (string, kayatypes.Params) {
	line = strings.TrimSpace(line)
	if line == "" {
		return "", kayatypes.NoParams()
	}

	name, remainder := splitHead(line)
	name = strings.ToLower(name)
	if remainder == "" {
		return name, kayatypes.NoParams()
	}

	fields := make(map[string]any)
	positional := make([]string, 0, 4)
	for _, token := range Tokenize(remainder) {
		if key, value, ok := splitField(token); ok {
			fields[key] = value
			continue
		}
		positional = append(positional, token)
	}

	fields["args"] = positional
	fields[kayatypes.RestKey] = remainder
	return name, kayatypes.FieldParams(fields)
}

// Tokenize splits s with shell quoting rules. Unbalanced quotes fall back to a
// plain whitespace split.
func Tokenize(s string) []string {
	tokens, err := shellquote.Split(s)
	if err != nil {
		return strings.Fields(s)
	}
	return tokens
}

func splitHead(line string) (string, string) {
	idx := strings.IndexFunc(line, isSpace)
	if idx < 0 {
		return line, ""
	}
	return line[:idx], strings.TrimSpace(line[idx:])
}

func splitField(token string) (string, string, bool) {
	key, value, found := strings.Cut(token, "=")
	if !found || !fieldKeyPattern.MatchString(key) {
		return "", "", false
	}
	return key, value, true
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r' || r == '\v' || r == '\f'
}
