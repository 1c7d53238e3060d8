// Package synonym maps the many surface forms of a product onto its canonical name.
package synonym

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/bassam-st/bassam-customs-ai/internal/extract"
	"github.com/bassam-st/bassam-customs-ai/internal/model"
	"github.com/bassam-st/bassam-customs-ai/internal/textnorm"
	aho "github.com/petar-dambovaliev/aho-corasick"
)

const (
	// minVariantRunes is the shortest derived form worth registering.
	minVariantRunes = 2
	// minMatchRunes is the shortest synonym the resolver accepts as a substring hit.
	minMatchRunes = 3

	pluralSuffix = "ات"
)

var (
	parentheticalRegex = regexp.MustCompile(`\([^)]*\)`)
	dashRegex          = regexp.MustCompile(`[–—-]`)
)

type binding struct {
	key       string
	canonical string
	runes     int
}

// Index is an immutable synonym index built from one catalog snapshot.
// The first binding registered for a key wins. It is safe for concurrent readers.
type Index struct {
	automaton  aho.AhoCorasick
	byKey      map[string]int
	bindings   []binding
	canonicals []string
	// patterns maps an automaton pattern id to its binding.
	patterns []int
}

// Build derives every surface form of every catalog item, then applies the
// curated table. Row order of items is significant.
func Build(items []model.CatalogItem, extra []Entry) *Index {
	ix := &Index{byKey: make(map[string]int)}

	seen := make(map[string]struct{})
	for _, item := range items {
		canonical := item.Name
		if canonical == "" {
			continue
		}
		if _, ok := seen[canonical]; !ok {
			seen[canonical] = struct{}{}
			ix.canonicals = append(ix.canonicals, canonical)
		}

		for _, v := range nameVariants(canonical) {
			ix.bind(v, canonical)
		}
		for _, kw := range item.Keywords {
			if n := normalize(kw); utf8.RuneCountInString(n) >= minVariantRunes {
				ix.bind(n, canonical)
			}
		}
	}

	for _, entry := range extra {
		target, ok := ix.curatedTarget(entry.Key)
		if !ok {
			continue
		}
		for _, syn := range entry.Synonyms {
			ix.bind(syn, target)
		}
	}

	ix.compile()
	return ix
}

// nameVariants lists the normalized derived forms of a canonical name in
// registration order, without duplicates.
func nameVariants(canonical string) []string {
	var variants []string
	seen := make(map[string]struct{})
	add := func(v string) {
		n := normalize(v)
		if utf8.RuneCountInString(n) < minVariantRunes {
			return
		}
		if _, ok := seen[n]; ok {
			return
		}
		seen[n] = struct{}{}
		variants = append(variants, n)
	}

	base := simplifyName(canonical)
	tokens := textnorm.Tokens(extract.FoldDigits(base))

	add(canonical)
	add(base)

	for _, tok := range tokens {
		for _, pv := range pluralVariants(tok) {
			add(pv)
		}
	}

	if len(tokens) >= 2 {
		add(strings.Join(tokens[:2], " "))
	}
	if len(tokens) >= 3 {
		add(strings.Join(tokens[:3], " "))
	}

	kept := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		if !extract.IsUnitWord(tok) {
			kept = append(kept, tok)
		}
	}
	if len(kept) > 0 {
		add(strings.Join(kept, " "))
	}

	return variants
}

// simplifyName drops parenthesised segments and turns dashes into spaces.
func simplifyName(name string) string {
	s := parentheticalRegex.ReplaceAllString(name, " ")
	s = dashRegex.ReplaceAllString(s, " ")
	return strings.Join(strings.Fields(s), " ")
}

// pluralVariants returns the word and its toggled plural form.
func pluralVariants(word string) []string {
	if stem, ok := strings.CutSuffix(word, pluralSuffix); ok {
		return []string{word, stem}
	}
	if utf8.RuneCountInString(word) >= 3 {
		return []string{word, word + pluralSuffix}
	}
	return []string{word}
}

// bind registers syn for canonical unless the key is already taken.
func (ix *Index) bind(syn, canonical string) {
	key := normalize(syn)
	if key == "" {
		return
	}
	if _, taken := ix.byKey[key]; taken {
		return
	}
	ix.byKey[key] = len(ix.bindings)
	ix.bindings = append(ix.bindings, binding{
		key:       key,
		canonical: canonical,
		runes:     utf8.RuneCountInString(key),
	})
}

// normalize is textnorm.Normalize with every digit folded to ASCII, so
// "سلك ٣٠٥" and "سلك 305" share a key.
func normalize(s string) string {
	return textnorm.Normalize(extract.FoldDigits(s))
}

// curatedTarget picks the canonical name a curated entry applies to: an exact
// normalized match first, otherwise the first canonical containing the key.
func (ix *Index) curatedTarget(key string) (string, bool) {
	keyN := normalize(key)
	if keyN == "" {
		return "", false
	}
	for _, c := range ix.canonicals {
		if textnorm.Equal(extract.FoldDigits(c), extract.FoldDigits(key)) {
			return c, true
		}
	}
	for _, c := range ix.canonicals {
		if strings.Contains(normalize(c), keyN) {
			return c, true
		}
	}
	return "", false
}

func (ix *Index) compile() {
	var keys []string
	for i, b := range ix.bindings {
		if b.runes < minMatchRunes {
			continue
		}
		keys = append(keys, b.key)
		ix.patterns = append(ix.patterns, i)
	}
	if len(keys) == 0 {
		return
	}

	builder := aho.NewAhoCorasickBuilder(aho.Opts{
		DFA: true,
	})
	ix.automaton = builder.Build(keys)
}

// Len returns the number of registered synonyms.
func (ix *Index) Len() int {
	if ix == nil {
		return 0
	}
	return len(ix.bindings)
}

// Lookup returns the canonical name bound to the normalized form of key.
func (ix *Index) Lookup(key string) (string, bool) {
	if ix == nil {
		return "", false
	}
	i, ok := ix.byKey[normalize(key)]
	if !ok {
		return "", false
	}
	return ix.bindings[i].canonical, true
}

// Canonicals returns the distinct canonical names in catalog order.
func (ix *Index) Canonicals() []string {
	if ix == nil {
		return nil
	}
	out := make([]string, len(ix.canonicals))
	copy(out, ix.canonicals)
	return out
}
