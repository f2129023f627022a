package valuation

import "slices"

// QuoteLookup resolves a symbol to a quote. The second return reports whether
// the symbol could be resolved at all; lookups may be partial.
type QuoteLookup func(symbol string) (Quote, bool)

// TypeBucket accumulates current value and position count for one asset type.
type TypeBucket struct {
	Type  string  `json:"type"`
	Value float64 `json:"value"`
	Count int     `json:"count"`
}

// AggregateByType groups positions into one bucket per distinct asset type,
// in order of first appearance. A position whose symbol cannot be resolved
// still counts toward its bucket's Count but contributes zero to Value;
// dropping it silently would misrepresent totals.
func AggregateByType(positions []Position, lookup QuoteLookup) []TypeBucket {
	buckets := []TypeBucket{}
	index := make(map[string]int)

	for _, pos := range positions {
		i, ok := index[pos.Type]
		if !ok {
			i = len(buckets)
			index[pos.Type] = i
			buckets = append(buckets, TypeBucket{Type: pos.Type})
		}

		buckets[i].Count++
		if q, ok := lookup(pos.Symbol); ok {
			buckets[i].Value += ValuePosition(pos, q).CurrentValue
		}
	}

	return buckets
}

// RankByValue returns up to limit items ordered by valueOf descending. The
// sort is stable: ties keep their original input order. A limit of zero or
// less yields an empty slice. The input is never modified.
func RankByValue[T any](items []T, valueOf func(T) float64, limit int) []T {
	if limit <= 0 {
		return []T{}
	}

	ranked := slices.Clone(items)
	slices.SortStableFunc(ranked, func(a, b T) int {
		va, vb := valueOf(a), valueOf(b)
		switch {
		case va > vb:
			return -1
		case va < vb:
			return 1
		default:
			return 0
		}
	})

	if limit < len(ranked) {
		ranked = ranked[:limit]
	}
	return ranked
}
