package parser

import (
	"strings"

	"kaya/pkg/kayatypes"
)

// Field keys probed, in order, for the sub-command and its name argument.
var (
	subKeys  = []string{"sub", "action", "verb", "cmd", "0"}
	nameKeys = []string{"name", "accent", "value", "1"}
)

// Normalize reduces params of any shape to a (sub, name) pair, lower-cased and
// trimmed. An empty string stands for "not given". It is total: every input,
// however malformed, yields a pair.
//
// Fields are resolved independently: sub and name are probed through their
// alias keys first, and whichever is still missing is then taken from the
// auxiliary token list (args, argv, tokens, or a split rest string).
func Normalize(params kayatypes.Params) (sub, name string) {
	switch params.Kind() {
	case kayatypes.ParamsText, kayatypes.ParamsList:
		return fromTokens(params.Tokens())
	case kayatypes.ParamsFields:
		return fromFields(params.Fields())
	default:
		return "", ""
	}
}

func fromTokens(tokens []string) (string, string) {
	if len(tokens) == 0 {
		return "", ""
	}
	sub := clean(tokens[0])
	name := ""
	if len(tokens) > 1 {
		name = clean(tokens[1])
	}
	return sub, name
}

func fromFields(fields map[string]any) (string, string) {
	sub := probe(fields, subKeys)
	name := probe(fields, nameKeys)

	if tokens, ok := kayatypes.AuxTokens(fields); ok && len(tokens) > 0 {
		if sub == "" {
			sub = tokens[0]
		}
		if name == "" && len(tokens) > 1 {
			name = tokens[1]
		}
	}
	return clean(sub), clean(name)
}

// probe returns the first non-empty value among keys, stringified.
func probe(fields map[string]any, keys []string) string {
	for _, key := range keys {
		v, ok := fields[key]
		if !ok || kayatypes.IsEmptyValue(v) {
			continue
		}
		return kayatypes.Stringify(v)
	}
	return ""
}

func clean(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
