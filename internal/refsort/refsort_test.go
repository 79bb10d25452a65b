package refsort_test

import (
	"math/rand"
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"

	"blocksort/internal/refsort"
)

type element struct {
	Value int
	Index int
}

func elementLess(a, b element) bool { return a.Value < b.Value }

// The oracle itself is checked against the standard library's stable
// sort so the rest of the repo can trust it blindly.
func TestSortMatchesStdlibStableSort(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewSource(5))

	for _, n := range []int{0, 1, 2, 31, 32, 33, 100, 1000, 32768} {
		items := make([]element, n)
		for i := range items {
			items[i] = element{Value: rng.Intn(50), Index: i}
		}

		want := make([]element, n)
		copy(want, items)
		sort.SliceStable(want, func(i, j int) bool { return elementLess(want[i], want[j]) })

		refsort.Sort(items, elementLess)

		if diff := cmp.Diff(want, items); diff != "" {
			t.Fatalf("n=%d mismatch with stdlib stable sort (-want +got):\n%s", n, diff)
		}
	}
}

func TestSortEmptyAndSingle(t *testing.T) {
	t.Parallel()

	empty := []element{}
	refsort.Sort(empty, elementLess)

	if len(empty) != 0 {
		t.Fatal("empty slice changed length")
	}

	single := []element{{Value: 7, Index: 0}}
	refsort.Sort(single, elementLess)

	if single[0] != (element{Value: 7, Index: 0}) {
		t.Fatalf("single element changed: %+v", single[0])
	}
}
