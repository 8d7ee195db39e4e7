package enumerate

import "testing"

func tupleProduct(t []int) int {
	p := 1
	for _, v := range t {
		p *= v
	}
	return p
}

func TestTuplesSoundness(t *testing.T) {
	for _, target := range []int{1, 2, 3, 7, 12, 30, 100} {
		for _, tuple := range Tuples(target, 5) {
			if len(tuple) != 5 {
				t.Fatalf("tuple %v has wrong length", tuple)
			}
			if tupleProduct(tuple) < target {
				t.Fatalf("tuple %v has product %d < target %d", tuple, tupleProduct(tuple), target)
			}
		}
	}
}

func TestTuplesCompletenessSmall(t *testing.T) {
	const target = 6
	const maxComponent = 6
	found := map[string]bool{}
	for _, tuple := range Tuples(target, 5) {
		found[tupleKey(tuple)] = true
	}

	var counterexamples int
	var check func(p []int, idx int)
	check = func(p []int, idx int) {
		if idx == 5 {
			if tupleProduct(p) >= target && !found[tupleKey(p)] {
				counterexamples++
			}
			return
		}
		for v := 1; v <= maxComponent; v++ {
			p[idx] = v
			check(p, idx+1)
		}
	}
	check(make([]int, 5), 0)
	if counterexamples != 0 {
		t.Fatalf("enumerator missed %d valid tuples", counterexamples)
	}
}

func TestTuplesTrivialTarget(t *testing.T) {
	tuples := Tuples(1, 5)
	if len(tuples) != 1 {
		t.Fatalf("expected exactly one representative for target=1, got %d: %v", len(tuples), tuples)
	}
	want := []int{1, 1, 1, 1, 1}
	got := tuples[0]
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected (1,1,1,1,1), got %v", got)
		}
	}
}

func TestTuplesContainsExpectedShapeForThree(t *testing.T) {
	// Target 3 with length 5 must include every permutation of (3,1,1,1,1).
	tuples := Tuples(3, 5)
	seen := map[string]bool{}
	for _, tp := range tuples {
		seen[tupleKey(tp)] = true
	}
	count := 0
	for pos := 0; pos < 5; pos++ {
		shape := []int{1, 1, 1, 1, 1}
		shape[pos] = 3
		if seen[tupleKey(shape)] {
			count++
		}
	}
	if count != 5 {
		t.Fatalf("expected all 5 positional permutations of (3,1,1,1,1), found %d", count)
	}
}
