// Package rank implements tie-aware competition ranking: items with
// equal keys share the same 1-based rank, and the next distinct key
// resumes at its ordinal position (1, 1, 3, ...).
package rank

import (
	"cmp"
	"sort"
)

type Ranked[T any] struct {
	Rank int
	Item T
}

// By ranks items descending by key, so the largest key ranks 1st.
func By[T any, K cmp.Ordered](items []T, key func(T) K) []Ranked[T] {
	return rank(items, key, func(a, b K) bool { return a > b })
}

// ByAscending ranks items ascending by key, so the smallest key ranks 1st.
func ByAscending[T any, K cmp.Ordered](items []T, key func(T) K) []Ranked[T] {
	return rank(items, key, func(a, b K) bool { return a < b })
}

func rank[T any, K cmp.Ordered](items []T, key func(T) K, before func(a, b K) bool) []Ranked[T] {
	order := make([]int, len(items))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return before(key(items[order[a]]), key(items[order[b]]))
	})

	ranked := make([]Ranked[T], len(items))
	for pos, idx := range order {
		r := pos + 1
		if pos > 0 && key(items[idx]) == key(items[order[pos-1]]) {
			r = ranked[pos-1].Rank
		}
		ranked[pos] = Ranked[T]{Rank: r, Item: items[idx]}
	}
	return ranked
}

// Tied reports whether more than one item holds the given rank.
func Tied[T any](ranked []Ranked[T], r int) bool {
	n := 0
	for _, rk := range ranked {
		if rk.Rank == r {
			n++
		}
	}
	return n > 1
}
