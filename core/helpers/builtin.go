package helpers

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"model-generator/core/utils"
)

// StringsModule returns the string manipulation helpers.
func StringsModule() Module {
	return Module{
		Name: "strings",
		Funcs: map[string]any{
			"firstToUpperCase":      utils.Capitalize,
			"firstToLowerCase":      utils.Uncapitalize,
			"lowerCase":             strings.ToLower,
			"upperCase":             strings.ToUpper,
			"camelCaseToSnakeCase":  utils.ScreamingSnakeCase,
			"decorateWithAsterisks": DecorateWithAsterisks,
			"cleanup":               Cleanup,
			"quote":                 strconv.Quote,
			"trim":                  strings.TrimSpace,
			"replace":               strings.ReplaceAll,
			"hasPrefix":             strings.HasPrefix,
			"hasSuffix":             strings.HasSuffix,
			"contains":              strings.Contains,
		},
	}
}

// CaseModule returns identifier case conversions.
func CaseModule() Module {
	return Module{
		Name: "case",
		Funcs: map[string]any{
			"pascalCase": utils.PascalCase,
			"camelCase":  utils.CamelCase,
			"snakeCase":  utils.SnakeCase,
		},
	}
}

// UtilModule returns predicates and template plumbing helpers.
func UtilModule() Module {
	return Module{
		Name: "util",
		Funcs: map[string]any{
			"notEmpty": NotEmpty,
			"empty":    Empty,
			"isTrue":   IsTrue,
			"dict":     Dict,
			"default":  DefaultValue,
			"toString": utils.ToString,
			"toInt":    utils.ToInt,
			"join":     Join,
			"split":    strings.Split,
		},
	}
}

// DecorateWithAsterisks continues a block comment over multi-line text.
func DecorateWithAsterisks(text string) string {
	return strings.ReplaceAll(text, "\n", "\n * ")
}

var cleanupPattern = regexp.MustCompile(`[\n\t ]`)

// Cleanup removes spaces, tabs and newlines.
func Cleanup(s string) string {
	return cleanupPattern.ReplaceAllString(s, "")
}

// NotEmpty reports whether s has non-whitespace content.
func NotEmpty(s string) bool {
	return strings.TrimSpace(s) != ""
}

// Empty reports whether s is empty or whitespace only.
func Empty(s string) bool {
	return !NotEmpty(s)
}

// IsTrue reports whether s spells "true", ignoring case.
func IsTrue(s string) bool {
	return strings.EqualFold(strings.TrimSpace(s), "true")
}

// Join joins the string form of every element with sep.
func Join(sep string, items any) string {
	switch v := items.(type) {
	case []string:
		return strings.Join(v, sep)
	case []any:
		parts := make([]string, len(v))
		for i, item := range v {
			parts[i] = utils.ToString(item)
		}
		return strings.Join(parts, sep)
	default:
		return utils.ToString(items)
	}
}

// Dict creates a map from alternating key-value pairs
// Usage in template: {{ include "partial.tpl" (dict "key1" val1 "key2" val2) }}
func Dict(values ...any) (map[string]any, error) {
	if len(values)%2 != 0 {
		return nil, fmt.Errorf("dict requires an even number of arguments")
	}

	result := make(map[string]any, len(values)/2)
	for i := 0; i < len(values); i += 2 {
		key, ok := values[i].(string)
		if !ok {
			return nil, fmt.Errorf("dict keys must be strings, got %T at position %d", values[i], i)
		}
		result[key] = values[i+1]
	}
	return result, nil
}

// DefaultValue returns defaultVal when val is nil, blank or an empty collection.
func DefaultValue(defaultVal, val any) any {
	if utils.IsBlank(val) {
		return defaultVal
	}
	return val
}
