package scaffold

import (
	"cmp"
	"slices"
	"strings"
)

// sortedKeys orders keys longest first so a key that is a prefix of another
// (e.g. FOO and FOO_BAR) never consumes part of the longer token.
func sortedKeys(repl map[string]string) []string {
	keys := make([]string, 0, len(repl))
	for k := range repl {
		if k != "" {
			keys = append(keys, k)
		}
	}
	slices.SortFunc(keys, func(a, b string) int {
		if c := cmp.Compare(len(b), len(a)); c != 0 {
			return c
		}
		return strings.Compare(a, b)
	})
	return keys
}

// Replacer returns a single-pass replacer for both $KEY and {KEY} forms.
// Substituted values are never re-scanned, so a value that happens to
// contain another token is written out literally.
func Replacer(repl map[string]string) *strings.Replacer {
	keys := sortedKeys(repl)
	pairs := make([]string, 0, len(keys)*4)
	for _, k := range keys {
		pairs = append(pairs, "$"+k, repl[k], "{"+k+"}", repl[k])
	}
	return strings.NewReplacer(pairs...)
}

// Replace substitutes every $KEY and {KEY} token in text.
func Replace(text string, repl map[string]string) string {
	if len(repl) == 0 {
		return text
	}
	return Replacer(repl).Replace(text)
}

func nameReplacer(repl map[string]string) *strings.Replacer {
	keys := sortedKeys(repl)
	pairs := make([]string, 0, len(keys)*2)
	for _, k := range keys {
		pairs = append(pairs, "$"+k, repl[k])
	}
	return strings.NewReplacer(pairs...)
}

// SubstituteName replaces $KEY tokens in a file or directory name.
// Only the $KEY form applies to names.
func SubstituteName(name string, repl map[string]string) string {
	if len(repl) == 0 || !strings.Contains(name, "$") {
		return name
	}
	return nameReplacer(repl).Replace(name)
}
