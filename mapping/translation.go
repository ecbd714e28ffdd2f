package mapping

import (
	"cmp"
	"maps"
	"slices"
	"strings"
)

// TranslationMap maps placeholder names to literal values. Every `$<key>`
// occurrence in a working template is replaced by its value.
type TranslationMap map[string]string

// Apply substitutes every placeholder in template. Longer keys are applied
// first so `$productId` is never clobbered by a `$product` key.
func (t TranslationMap) Apply(template string) string {
	if len(t) == 0 || !strings.Contains(template, "$") {
		return template
	}
	keys := slices.SortedFunc(maps.Keys(t), func(a, b string) int {
		if c := cmp.Compare(len(b), len(a)); c != 0 {
			return c
		}
		return strings.Compare(a, b)
	})
	for _, k := range keys {
		template = strings.ReplaceAll(template, "$"+k, t[k])
	}
	return template
}

// Clone returns an independent copy of t. A nil map clones to an empty one.
func (t TranslationMap) Clone() TranslationMap {
	out := make(TranslationMap, len(t))
	maps.Copy(out, t)
	return out
}
