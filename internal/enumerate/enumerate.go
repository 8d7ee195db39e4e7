// Package enumerate implements the factorings enumerator (spec §4.2): given
// a target integer N and a tuple length L, it produces L-tuples of positive
// integers whose product is >= N.
package enumerate

import (
	"math"
	"strconv"
	"strings"
)

// Tuples returns length-L tuples of positive integers whose product is
// >= target, found via a bounded backtracking search over a sorted
// representative space and then expanded into all distinct permutations of
// each representative.
//
// Only the representatives the search accepts are expanded, so the result
// is not every tuple with a large enough product: for target 6 the
// representatives are (6,1,1,1,1), (3,2,1,1,1) and (2,2,2,1,1), and a tuple
// such as (4,2,1,1,1) is not returned.
//
// This mirrors the original solver's next_branch/max_value bookkeeping
// verbatim: each time a representative is accepted, max_value is lowered to
// max(p)-1 so the same sorted shape is never re-accepted with a larger
// trailing element, which keeps the search finite.
func Tuples(target int, length int) [][]int {
	if length <= 0 {
		return nil
	}
	if target < 1 {
		target = 1
	}

	parameter := make([]int, length)
	for i := range parameter {
		parameter[i] = 1
	}

	maxLevel := length - 1
	maxValue := math.MaxInt
	level := 0

	var representatives [][]int
	for {
		maxPara := maxOf(parameter)
		if maxPara <= maxValue {
			if product(parameter) >= target {
				rep := append([]int(nil), parameter...)
				representatives = append(representatives, rep)
				maxValue = maxOf(parameter) - 1
				level++
				parameter = nextBranch(parameter, level)
				level = 0
			} else {
				parameter[0]++
			}
		} else {
			level = indexOf(parameter, maxPara) + 1
			if level > maxLevel {
				break
			}
			parameter = nextBranch(parameter, level)
			level = 0
		}
	}

	seen := map[string]bool{}
	var out [][]int
	for _, rep := range representatives {
		for _, perm := range permutations(rep) {
			key := tupleKey(perm)
			if !seen[key] {
				seen[key] = true
				out = append(out, perm)
			}
		}
	}
	return out
}

func tupleKey(p []int) string {
	parts := make([]string, len(p))
	for i, v := range p {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, ",")
}

// nextBranch increases parameter[level] and resets all lower indices to 1,
// the "switch to the next upper branch" step of the backtracking search.
func nextBranch(parameter []int, level int) []int {
	parameter[level]++
	for i := 0; i < level; i++ {
		parameter[i] = 1
	}
	return parameter
}

func maxOf(p []int) int {
	m := p[0]
	for _, v := range p[1:] {
		if v > m {
			m = v
		}
	}
	return m
}

func indexOf(p []int, v int) int {
	for i, x := range p {
		if x == v {
			return i
		}
	}
	return -1
}

func product(p []int) int {
	prod := 1
	for _, v := range p {
		prod *= v
	}
	return prod
}

// permutations returns all distinct permutations of p, deduplicating
// repeated elements (the set() cast in the original that speeds up the
// permutation step by collapsing duplicates from repeated factors).
func permutations(p []int) [][]int {
	seen := map[string]bool{}
	var out [][]int
	perm := append([]int(nil), p...)
	permute(perm, 0, func(candidate []int) {
		key := tupleKey(candidate)
		if !seen[key] {
			seen[key] = true
			out = append(out, append([]int(nil), candidate...))
		}
	})
	return out
}

func permute(a []int, k int, visit func([]int)) {
	if k == len(a) {
		visit(a)
		return
	}
	for i := k; i < len(a); i++ {
		a[k], a[i] = a[i], a[k]
		permute(a, k+1, visit)
		a[k], a[i] = a[i], a[k]
	}
}
