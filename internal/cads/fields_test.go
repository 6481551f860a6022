package cads

import "testing"

func TestSubsetsExactCountAndDistinctness(t *testing.T) {
	got := subsets(4, 2)
	want := 6 // C(4,2)
	if len(got) != want {
		t.Fatalf("expected %d subsets, got %d", want, len(got))
	}
	seen := make(map[string]bool)
	for _, s := range got {
		if len(s) != 2 {
			t.Fatalf("subset %v has wrong size", s)
		}
		key := ""
		for _, v := range s {
			key += string(rune('0' + v))
		}
		if seen[key] {
			t.Fatalf("duplicate subset %v", s)
		}
		seen[key] = true
	}
}

func TestPermutationsExactCountAndLexicographic(t *testing.T) {
	perms := permutations([]int{1, 3, 5})
	if len(perms) != 6 { // 3!
		t.Fatalf("expected 6 permutations, got %d", len(perms))
	}
	for i := 1; i < len(perms); i++ {
		less := false
		for j := range perms[i-1] {
			if perms[i-1][j] != perms[i][j] {
				less = perms[i-1][j] < perms[i][j]
				break
			}
		}
		if !less {
			t.Fatalf("permutations not in strict lexicographic order at index %d: %v then %v", i, perms[i-1], perms[i])
		}
	}
}

func TestFieldCombinationsMatchesSubsetTimesPermutations(t *testing.T) {
	combos := FieldCombinations(4, 2)
	if len(combos) != 6*2 { // C(4,2) * 2!
		t.Fatalf("expected 12 combinations, got %d", len(combos))
	}
}
