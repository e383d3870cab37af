// Package kayatypes defines the shared types of the Kaya command pipeline.
// This file contains the Params tagged variant that carries a command's remainder
// in one of four shapes: absent, plain text, token list, or named fields.
package kayatypes

import (
	"fmt"
	"sort"
	"strings"
)

// ParamsKind identifies which shape a Params value holds.
type ParamsKind int

const (
	// ParamsAbsent means the command carried no remainder at all.
	ParamsAbsent ParamsKind = iota
	// ParamsText holds the remainder as a single string.
	ParamsText
	// ParamsList holds the remainder as an ordered token list.
	ParamsList
	// ParamsFields holds the remainder as named fields.
	ParamsFields
)

// String returns the kind name used in logs.
func (k ParamsKind) String() string {
	switch k {
	case ParamsAbsent:
		return "absent"
	case ParamsText:
		return "text"
	case ParamsList:
		return "list"
	case ParamsFields:
		return "fields"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// TokenListKeys are the field keys carrying auxiliary token lists, probed in order.
var TokenListKeys = []string{"args", "argv", "tokens"}

// RestKey holds the raw remainder text inside a fields value.
const RestKey = "rest"

// Params is the polymorphic payload accompanying a command.
// The zero value is absent. Params values are treated as immutable; derived
// values are always returned as copies.
type Params struct {
	kind   ParamsKind
	text   string
	list   []string
	fields map[string]any
}

// NoParams returns the absent value.
func NoParams() Params {
	return Params{}
}

// TextParams wraps a plain string.
func TextParams(text string) Params {
	return Params{kind: ParamsText, text: text}
}

// ListParams wraps an ordered token list.
func ListParams(tokens ...string) Params {
	list := make([]string, len(tokens))
	copy(list, tokens)
	return Params{kind: ParamsList, list: list}
}

// FieldParams wraps a mapping of named fields. A nil map yields an empty mapping.
func FieldParams(fields map[string]any) Params {
	m := make(map[string]any, len(fields))
	for k, v := range fields {
		m[k] = v
	}
	return Params{kind: ParamsFields, fields: m}
}

// Kind reports the shape of p.
func (p Params) Kind() ParamsKind {
	return p.kind
}

// IsAbsent reports whether p carries nothing.
func (p Params) IsAbsent() bool {
	return p.kind == ParamsAbsent
}

// Text returns the text payload; empty for other kinds.
func (p Params) Text() string {
	return p.text
}

// List returns a copy of the list payload; nil for other kinds.
func (p Params) List() []string {
	if p.kind != ParamsList {
		return nil
	}
	out := make([]string, len(p.list))
	copy(out, p.list)
	return out
}

// Fields returns a copy of the fields payload; nil for other kinds.
func (p Params) Fields() map[string]any {
	if p.kind != ParamsFields {
		return nil
	}
	out := make(map[string]any, len(p.fields))
	for k, v := range p.fields {
		out[k] = v
	}
	return out
}

// Field looks up a single named field.
func (p Params) Field(key string) (any, bool) {
	if p.kind != ParamsFields {
		return nil, false
	}
	v, ok := p.fields[key]
	return v, ok
}

// Tokens derives the positional token list regardless of shape.
func (p Params) Tokens() []string {
	switch p.kind {
	case ParamsText:
		return strings.Fields(p.text)
	case ParamsList:
		return p.List()
	case ParamsFields:
		tokens, _ := AuxTokens(p.fields)
		return tokens
	default:
		return nil
	}
}

// Raw derives the joined remainder string regardless of shape.
func (p Params) Raw() string {
	switch p.kind {
	case ParamsText:
		return p.text
	case ParamsList:
		return strings.Join(p.list, " ")
	case ParamsFields:
		if rest, ok := p.fields[RestKey].(string); ok {
			return rest
		}
		return strings.Join(p.Tokens(), " ")
	default:
		return ""
	}
}

// WithDefaults returns a fields value where every key of defaults that p does
// not already carry is filled in. Text and list payloads are lifted into fields
// first (text under "rest", list under "args").
func (p Params) WithDefaults(defaults map[string]any) Params {
	var base map[string]any
	switch p.kind {
	case ParamsText:
		base = map[string]any{RestKey: p.text}
	case ParamsList:
		base = map[string]any{"args": p.List()}
	case ParamsFields:
		base = p.Fields()
	default:
		base = map[string]any{}
	}
	for k, v := range defaults {
		if _, exists := base[k]; !exists {
			base[k] = v
		}
	}
	return Params{kind: ParamsFields, fields: base}
}

// Prepend places tokens before p's positional tokens. A fields value keeps its
// named fields and carries the joined tokens under "args"; other kinds become a list.
func (p Params) Prepend(tokens ...string) Params {
	joined := append(append([]string{}, tokens...), p.Tokens()...)
	if p.kind != ParamsFields {
		return ListParams(joined...)
	}
	fields := p.Fields()
	fields["args"] = joined
	return Params{kind: ParamsFields, fields: fields}
}

// String renders p for logging.
func (p Params) String() string {
	switch p.kind {
	case ParamsText:
		return fmt.Sprintf("text(%q)", p.text)
	case ParamsList:
		return fmt.Sprintf("list%q", p.list)
	case ParamsFields:
		keys := make([]string, 0, len(p.fields))
		for k := range p.fields {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts := make([]string, 0, len(keys))
		for _, k := range keys {
			parts = append(parts, fmt.Sprintf("%s=%v", k, p.fields[k]))
		}
		return "fields{" + strings.Join(parts, ", ") + "}"
	default:
		return "absent"
	}
}

// AuxTokens resolves the auxiliary token list of a fields mapping: the first of
// "args", "argv", "tokens" present wins; list values are used element-wise, any
// other value is stringified and split on whitespace. Without those keys a string
// "rest" field is split on whitespace. The boolean reports whether a source was found.
func AuxTokens(fields map[string]any) ([]string, bool) {
	for _, key := range TokenListKeys {
		v, ok := fields[key]
		if !ok {
			continue
		}
		return tokenize(v), true
	}
	if rest, ok := fields[RestKey].(string); ok {
		return strings.Fields(rest), true
	}
	return nil, false
}

func tokenize(v any) []string {
	switch t := v.(type) {
	case nil:
		return nil
	case []string:
		out := make([]string, len(t))
		copy(out, t)
		return out
	case []any:
		out := make([]string, 0, len(t))
		for _, item := range t {
			out = append(out, Stringify(item))
		}
		return out
	default:
		return strings.Fields(Stringify(v))
	}
}
