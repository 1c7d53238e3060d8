package synonym

// Resolve maps a free-form query to a canonical product name.
//
// An exact match of the whole normalized query wins. Otherwise the longest
// registered synonym of at least three runes that occurs inside the query
// wins, ties going to the synonym registered first.
func (ix *Index) Resolve(query string) (string, bool) {
	if ix == nil {
		return "", false
	}

	text := normalize(query)
	if text == "" {
		return "", false
	}
	if i, ok := ix.byKey[text]; ok {
		return ix.bindings[i].canonical, true
	}
	if len(ix.patterns) == 0 {
		return "", false
	}

	best := -1
	iter := ix.automaton.IterOverlappingByte([]byte(text))
	for next := iter.Next(); next != nil; next = iter.Next() {
		candidate := ix.patterns[next.Pattern()]
		if best < 0 || ix.better(candidate, best) {
			best = candidate
		}
	}
	if best < 0 {
		return "", false
	}
	return ix.bindings[best].canonical, true
}

// better reports whether binding a beats binding b.
func (ix *Index) better(a, b int) bool {
	ra, rb := ix.bindings[a].runes, ix.bindings[b].runes
	if ra != rb {
		return ra > rb
	}
	return a < b
}
