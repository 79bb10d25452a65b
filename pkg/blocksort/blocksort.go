package blocksort

import "math"

// cacheSize is the number of elements in the fixed scratch cache used to
// speed up rotations and small merges. The cache keeps the sort O(1) in
// memory; removing it entirely still yields most of the performance.
const cacheSize = 512

// sorter bundles the slice, the comparator, and the scratch cache so the
// merge machinery does not thread them through every call.
type sorter[T any] struct {
	items []T
	less  func(a, b T) bool
	cache []T
}

// levelBuffers holds the internal buffer ranges shared by every pair
// merge at one level. The buffers are extracted at the first pair that
// needs them and redistributed when the level is done.
type levelBuffers struct {
	buffer1 Range
	buffer2 Range
	bufferA Range
	bufferB Range
}

// Sort stably sorts items in place using O(1) auxiliary memory.
//
// less must define a strict weak ordering; it reports whether a strictly
// precedes b. Elements that compare equal keep their original relative
// order. The call never fails and never allocates proportionally to the
// input; the only scratch is a fixed cache of 512 elements.
func Sort[T any](items []T, less func(a, b T) bool) {
	var cache [cacheSize]T

	s := &sorter[T]{items: items, less: less, cache: cache[:]}
	s.sort()
}

func (s *sorter[T]) sort() {
	items, less := s.items, s.less
	size := len(items)

	// Reverse every maximal strictly-descending run so ascending runs are
	// as long as possible going in.
	rev := makeRange(0, 1)
	for i := 1; i < size; i++ {
		if less(items[i], items[i-1]) {
			rev.end++
		} else {
			reverse(items, rev)
			rev = makeRange(i, i+1)
		}
	}
	reverse(items, rev)

	if size <= 32 {
		insertionSort(items, makeRange(0, size), less)

		return
	}

	powerOfTwo := floorPowerOfTwo(size)
	st := newStepper(size)

	// Level 0: insertion sort each base run, 16-32 elements at a time.
	st.begin()
	for !st.done() {
		insertionSort(items, st.nextRange(), less)
	}

	// Merge pairs of runs at 32-63, 64-127, 128-255 elements and so on,
	// until a single sorted range covers the array.
	for mergeSize := 16; mergeSize < powerOfTwo; mergeSize += mergeSize {
		blockSize := int(math.Sqrt(float64(st.decStep)))
		bufferSize := st.decStep/blockSize + 1

		// One buffer extraction serves every merge at this level; the
		// buffers are put back in order once the level is finished.
		var level levelBuffers

		st.begin()
		for !st.done() {
			A := st.nextRange()
			B := st.nextRange()

			if less(items[B.end-1], items[A.start]) {
				// The two runs are in reverse order: a rotation suffices.
				s.rotate(A.length(), makeRange(A.start, B.end), true)
			} else if less(items[B.start], items[B.start-1]) {
				s.mergeInPlace(A, B, blockSize, bufferSize, &level)
			}
			// Otherwise the pair is already ordered.
		}

		if level.buffer1.length() > 0 {
			s.redistributeBuffers(level)
		}

		st.doubleStep()
	}
}

// mergeInPlace merges the adjacent sorted runs A and B using the internal
// buffer machinery, extracting buffers on the first pair of the level and
// reusing them afterwards.
func (s *sorter[T]) mergeInPlace(A, B Range, blockSize, bufferSize int, level *levelBuffers) {
	items := s.items

	if A.length() <= len(s.cache) {
		copy(s.cache, items[A.start:A.end])
		s.merge(Range{}, A, B)

		return
	}

	var pb pairBuffers

	if level.buffer1.length() > 0 {
		// Reuse the buffers found on an earlier pair at this level. They
		// live inside that pair's region, disjoint from A and B.
		pb = pairBuffers{
			buffer1: level.buffer1,
			buffer2: level.buffer2,
			bufferA: makeRange(A.start, A.start),
			bufferB: makeRange(B.end, B.end),
		}
	} else {
		found, ok := s.findBuffers(A, B, bufferSize)
		if !ok {
			// Too few distinct values for an internal buffer.
			s.mergeByRotation(A, B)

			return
		}

		s.collapseBuffers(&found, A, B)
		pb = found

		level.buffer1 = pb.buffer1
		level.buffer2 = pb.buffer2
		level.bufferA = pb.bufferA
		level.bufferB = pb.bufferB
	}

	s.rollBlocks(A, B, blockSize, pb)
}

// redistributeBuffers restores the internal buffers at the end of a merge
// level. buffer2 is the one the local merges jumbled; it holds O(sqrt(N))
// distinct values and is nearly sorted, so an insertion sort is enough.
// Each buffer element is then rotated one at a time into its unique
// sorted position: a rightward sweep for the front buffer, a symmetric
// leftward sweep for the back one.
func (s *sorter[T]) redistributeBuffers(level levelBuffers) {
	items, less := s.items, s.less

	insertionSort(items, level.buffer2, less)

	levelA, levelB := level.bufferA, level.bufferB
	levelStart := levelA.start

	for index := levelA.end; levelA.length() > 0; index++ {
		if index == levelB.start || !less(items[index], items[levelA.start]) {
			amount := index - levelA.end
			s.rotate(-amount, makeRange(levelA.start, index), true)
			levelA.start += amount + 1
			levelA.end += amount
			index--
		}
	}

	for index := levelB.start; levelB.length() > 0; index-- {
		if index == levelStart || !less(items[levelB.end-1], items[index-1]) {
			amount := levelB.start - index
			s.rotate(amount, makeRange(index, levelB.end), true)
			levelB.start -= amount
			levelB.end -= amount + 1
			index++
		}
	}
}
