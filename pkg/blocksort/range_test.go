package blocksort_test

import (
	"math/rand"
	"testing"

	"blocksort/pkg/blocksort"
)

func TestFloorPowerOfTwo(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input int
		want  int
	}{
		{1, 1},
		{2, 2},
		{3, 2},
		{4, 4},
		{5, 4},
		{31, 16},
		{32, 32},
		{33, 32},
		{63, 32},
		{64, 64},
		{65, 64},
		{1 << 20, 1 << 20},
		{1<<20 + 1, 1 << 20},
		{1<<21 - 1, 1 << 20},
	}

	for _, testCase := range tests {
		got := blocksort.FloorPowerOfTwo(testCase.input)
		if got != testCase.want {
			t.Errorf("floorPowerOfTwo(%d) = %d, want %d", testCase.input, got, testCase.want)
		}
	}
}

// Every level must tile the array exactly: runs are emitted left to
// right, adjacent, and their lengths sum to the array size. At level 0
// each run has between 16 and 32 elements, small enough for the
// insertion-sort pass.
func TestStepperTilesEveryLevel(t *testing.T) {
	t.Parallel()

	sizes := []int{16, 17, 31, 32, 33, 63, 64, 100, 1000, 32768, 50000, 1 << 17, 1<<17 + 12345}

	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 50; i++ {
		sizes = append(sizes, 33+rng.Intn(1_000_000))
	}

	for _, size := range sizes {
		st := blocksort.NewStepper(size)

		pot := blocksort.FloorPowerOfTwo(size)
		level := 0

		for mergeSize := 16; mergeSize <= pot; mergeSize += mergeSize {
			minLen := st.DecStep()
			maxLen := st.DecStep() + 1

			st.Begin()

			prevEnd := 0
			for !st.Done() {
				start, end := st.NextRange()

				if start != prevEnd {
					t.Fatalf("size %d level %d: run starts at %d, want %d", size, level, start, prevEnd)
				}

				length := end - start
				if length < minLen || length > maxLen {
					t.Fatalf("size %d level %d: run length %d outside [%d,%d]", size, level, length, minLen, maxLen)
				}

				prevEnd = end
			}

			if prevEnd != size {
				t.Fatalf("size %d level %d: runs sum to %d, want %d", size, level, prevEnd, size)
			}

			if level == 0 && (minLen < 16 || maxLen > 32) {
				t.Fatalf("size %d: base run lengths [%d,%d], want within [16,32]", size, minLen, maxLen)
			}

			st.DoubleStep()
			level++
		}
	}
}

// Boundaries must stay aligned across levels: every boundary emitted at
// level k+1 is also a boundary at level k, so pairs are always
// well-formed unions of lower-level runs.
func TestStepperBoundariesAlignAcrossLevels(t *testing.T) {
	t.Parallel()

	for _, size := range []int{33, 100, 1000, 4096, 32768, 99999} {
		st := blocksort.NewStepper(size)
		pot := blocksort.FloorPowerOfTwo(size)

		var prev map[int]bool

		for mergeSize := 16; mergeSize <= pot; mergeSize += mergeSize {
			bounds := map[int]bool{0: true}

			st.Begin()
			for !st.Done() {
				_, end := st.NextRange()
				bounds[end] = true
			}

			if prev != nil {
				for b := range bounds {
					if !prev[b] {
						t.Fatalf("size %d: boundary %d at merge size %d missing one level down", size, b, mergeSize)
					}
				}
			}

			prev = bounds
			st.DoubleStep()
		}
	}
}
