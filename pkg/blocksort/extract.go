package blocksort

// pairBuffers describes the internal buffers carved out of a pair (A, B)
// before its in-place merge. buffer1 tags the A blocks during the roll
// and buffer2 is the merge swap space; bufferA and bufferB are their
// collapsed homes at the outer edges of A and B. Any of them may be
// empty, depending on which extraction path succeeded.
type pairBuffers struct {
	buffer1 Range
	buffer2 Range
	bufferA Range
	bufferB Range
}

// findBuffers tries to locate one or two runs of bufferSize pairwise
// distinct values within A and B. It reports false when the pair does not
// contain enough distinct values, in which case the caller falls back to
// the rotation-based merge for repeated values.
//
// Search order: buffer1 from the front of A; if one buffer suffices
// (bufferSize fits the cache, so the cache doubles as merge swap), retry
// from the back of B on failure. Otherwise continue scanning A for
// buffer2, fall back to the back of B for whichever buffers A could not
// supply.
func (s *sorter[T]) findBuffers(A, B Range, bufferSize int) (pairBuffers, bool) {
	items, less := s.items, s.less

	distinct := func(i, j int) bool {
		return less(items[i], items[j]) || less(items[j], items[i])
	}

	var buffer1, buffer2, bufferA, bufferB Range

	// The first item is always the first distinct value, so the scan can
	// start at the next index.
	count := 1
	for buffer1.start = A.start + 1; buffer1.start < A.end; buffer1.start++ {
		if distinct(buffer1.start-1, buffer1.start) {
			count++
			if count == bufferSize {
				break
			}
		}
	}
	buffer1.end = buffer1.start + count

	if bufferSize <= len(s.cache) {
		// Each block fits the cache, so the cache replaces the merge swap
		// buffer and only the tag buffer is needed.
		buffer2 = makeRange(A.start, A.start)

		if buffer1.length() == bufferSize {
			bufferA = makeRange(buffer1.start, buffer1.start+bufferSize)
			bufferB = makeRange(B.end, B.end)
			buffer1 = makeRange(A.start, A.start+bufferSize)
		} else {
			// Not enough distinct values in A; scan B back to front. The
			// last item is guaranteed to be the first distinct value seen.
			bufferA = makeRange(buffer1.start, buffer1.start)
			buffer1 = makeRange(A.start, A.start)

			count = 1
			for buffer1.start = B.end - 2; buffer1.start >= B.start; buffer1.start-- {
				if distinct(buffer1.start, buffer1.start+1) {
					count++
					if count == bufferSize {
						break
					}
				}
			}
			buffer1.end = buffer1.start + count

			if buffer1.length() == bufferSize {
				bufferB = makeRange(buffer1.start, buffer1.start+bufferSize)
				buffer1 = makeRange(B.end-bufferSize, B.end)
			}
		}
	} else {
		// Two buffers are needed. The item after buffer1 is not guaranteed
		// to be distinct from its predecessor, so count starts at zero.
		count = 0
		for buffer2.start = buffer1.start + 1; buffer2.start < A.end; buffer2.start++ {
			if distinct(buffer2.start-1, buffer2.start) {
				count++
				if count == bufferSize {
					break
				}
			}
		}
		buffer2.end = buffer2.start + count

		switch {
		case buffer2.length() == bufferSize:
			// Both buffers fit in A.
			bufferA = makeRange(buffer2.start, buffer2.start+bufferSize*2)
			bufferB = makeRange(B.end, B.end)
			buffer1 = makeRange(A.start, A.start+bufferSize)
			buffer2 = makeRange(A.start+bufferSize, A.start+bufferSize*2)

		case buffer1.length() == bufferSize:
			// One buffer in A; find the second at the back of B.
			bufferA = makeRange(buffer1.start, buffer1.start+bufferSize)
			buffer1 = makeRange(A.start, A.start+bufferSize)

			count = 1
			for buffer2.start = B.end - 2; buffer2.start >= B.start; buffer2.start-- {
				if distinct(buffer2.start, buffer2.start+1) {
					count++
					if count == bufferSize {
						break
					}
				}
			}
			buffer2.end = buffer2.start + count

			if buffer2.length() == bufferSize {
				bufferB = makeRange(buffer2.start, buffer2.start+bufferSize)
				buffer2 = makeRange(B.end-bufferSize, B.end)
			} else {
				buffer1.end = buffer1.start
			}

		default:
			// Nothing usable in A; both buffers must come from B.
			count = 1
			for buffer1.start = B.end - 2; buffer1.start >= B.start; buffer1.start-- {
				if distinct(buffer1.start, buffer1.start+1) {
					count++
					if count == bufferSize {
						break
					}
				}
			}
			buffer1.end = buffer1.start + count

			count = 0
			for buffer2.start = buffer1.start - 1; buffer2.start >= B.start; buffer2.start-- {
				if distinct(buffer2.start, buffer2.start+1) {
					count++
					if count == bufferSize {
						break
					}
				}
			}
			buffer2.end = buffer2.start + count

			if buffer2.length() == bufferSize {
				bufferA = makeRange(A.start, A.start)
				bufferB = makeRange(buffer2.start, buffer2.start+bufferSize*2)
				buffer1 = makeRange(B.end-bufferSize, B.end)
				buffer2 = makeRange(buffer1.start-bufferSize, buffer1.start)
			} else {
				buffer1.end = buffer1.start
			}
		}
	}

	if buffer1.length() < bufferSize {
		return pairBuffers{}, false
	}

	return pairBuffers{buffer1: buffer1, buffer2: buffer2, bufferA: bufferA, bufferB: bufferB}, true
}

// collapseBuffers moves the chosen distinct values to the outer edges of
// their owning ranges: bufferA to the front of A, bufferB to the back of
// B. Each pass picks up one chosen element and rotates the already
// collected block one position further outward, which preserves the order
// of the non-chosen values in between.
func (s *sorter[T]) collapseBuffers(pb *pairBuffers, A, B Range) {
	items, less := s.items, s.less

	distinct := func(i, j int) bool {
		return less(items[i], items[j]) || less(items[j], items[i])
	}

	length := pb.bufferA.length()
	count := 0
	for index := pb.bufferA.start; count < length; index-- {
		if index == A.start || distinct(index-1, index) {
			s.rotate(-count, makeRange(index+1, pb.bufferA.start+1), true)
			pb.bufferA.start = index + count
			count++
		}
	}
	pb.bufferA = makeRange(A.start, A.start+length)

	length = pb.bufferB.length()
	count = 0
	for index := pb.bufferB.start; count < length; index++ {
		if index == B.end-1 || distinct(index, index+1) {
			s.rotate(count, makeRange(pb.bufferB.start, index), true)
			pb.bufferB.start = index - count
			count++
		}
	}
	pb.bufferB = makeRange(B.end-length, B.end)
}

// mergeByRotation merges A and B when they contain too few distinct
// values for an internal buffer. Each step binary-searches B for the
// insertion point of A's head, rotates the head into place, and shrinks A
// past the values that are now known to be positioned. O(sqrt(N) * N)
// worst case, but cheap when few distinct keys exist.
func (s *sorter[T]) mergeByRotation(A, B Range) {
	items, less := s.items, s.less

	for A.length() > 0 && B.length() > 0 {
		value := items[A.start]
		mid := binaryFirst(items, value, B, less)

		amount := mid - A.end
		s.rotate(-amount, makeRange(A.start, mid), true)

		B.start = mid
		A = makeRange(binaryLast(items, value, A, less), B.start)
	}
}
