package blocksort_test

import (
	"slices"
	"testing"

	"blocksort/internal/refsort"
	"blocksort/pkg/blocksort"
)

// itemsFromBytes maps fuzz input to tagged elements. Narrowing values to
// a byte keeps duplicates common, which is where stability bugs live.
func itemsFromBytes(data []byte) []element {
	items := make([]element, len(data))
	for i, b := range data {
		items[i] = element{Value: int(b), Index: i}
	}

	return items
}

func FuzzSortMatchesReference(f *testing.F) {
	f.Add([]byte{})
	f.Add([]byte{5, 2, 4, 2, 1})
	f.Add([]byte{0, 0, 0, 0, 0, 0, 0, 0})
	f.Add([]byte{255, 254, 253, 3, 2, 1})

	seed := make([]byte, 200)
	for i := range seed {
		seed[i] = byte(i * 37)
	}
	f.Add(seed)

	f.Fuzz(func(t *testing.T, data []byte) {
		input := itemsFromBytes(data)

		want := slices.Clone(input)
		refsort.Sort(want, elementLess)

		got := slices.Clone(input)
		blocksort.Sort(got, elementLess)

		if !slices.Equal(want, got) {
			t.Fatalf("sort diverges from reference on %v", data)
		}
	})
}

func FuzzSortBufferedMatchesReference(f *testing.F) {
	f.Add([]byte{})
	f.Add([]byte{5, 2, 4, 2, 1})
	f.Add([]byte{9, 9, 9, 1, 1, 1})

	f.Fuzz(func(t *testing.T, data []byte) {
		input := itemsFromBytes(data)

		want := slices.Clone(input)
		refsort.Sort(want, elementLess)

		got := slices.Clone(input)
		blocksort.SortBuffered(got, elementLess)

		if !slices.Equal(want, got) {
			t.Fatalf("buffered sort diverges from reference on %v", data)
		}
	})
}
