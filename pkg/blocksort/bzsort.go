package blocksort

// swapSize is the number of elements in the circular swap buffer used by
// SortBuffered. The merge treats the buffer as circular, so any fixed
// size works; this one has not been tuned beyond "64 was too little".
const swapSize = 1024

// SortBuffered stably sorts items in place using a fixed-size circular
// swap buffer and no internal buffer extraction.
//
// It is a much simpler alternative to [Sort]: the same level scaling, but
// each pair is handled by one of three cases - already ordered (skip),
// fully reversed (swap the halves through the buffer), or a standard
// merge into the circular buffer with periodic flushes. The merge can go
// quadratic when run lengths far exceed the swap buffer and most of the
// left run is greater than the right; see the package documentation.
func SortBuffered[T any](items []T, less func(a, b T) bool) {
	count := len(items)

	if count < 32 {
		insertionSort(items, makeRange(0, count), less)

		return
	}

	var swap [swapSize]T

	pot := floorPowerOfTwo(count)
	base := pot / 16

	// Boundary for run index i (always a multiple of 16). Exact integer
	// form of floor(i * count / pot); i/16 * count stays well inside an
	// int64 for any slice that fits in memory.
	scale := func(index int) int {
		return index / 16 * count / base
	}

	for index := 0; index < pot; {
		// Insertion sort the two base runs of the next pair.
		start := scale(index)
		mid := scale(index + 16)
		end := scale(index + 32)

		insertionSort(items, makeRange(start, mid), less)
		insertionSort(items, makeRange(mid, end), less)

		// Bottom-up "fake recursion": after every second run at a given
		// level, merge the pair one level up.
		merge := index
		index += 32
		length := 16

		for iteration := index / 16; iteration&1 == 0; iteration >>= 1 {
			start = scale(merge)
			mid = scale(merge + length)
			end = scale(merge + length + length)

			if less(items[mid], items[mid-1]) {
				if less(items[end-1], items[start]) {
					swapReversedHalves(items, swap[:], start, mid, end)
				} else {
					mergeCircular(items, swap[:], start, mid, end, less)
				}
			}

			length += length
			merge -= length
		}
	}
}

// swapReversedHalves exchanges the two halves of [start, end) through the
// swap buffer when every element of the left half follows every element
// of the right half. The halves never differ in size by more than one, so
// a single spilled element covers the uneven case.
func swapReversedHalves[T any](items, swap []T, start, mid, end int) {
	var spill T

	if mid-start >= end-mid {
		// The left side has one more item, or they are the same size.
		aFrom, aTo, bFrom, bTo := start, mid, mid, start
		remaining := end - mid

		uneven := mid-start != end-mid
		if uneven {
			aTo = mid - 1
			spill = items[aTo]
		}

		for remaining > 0 {
			read := min(len(swap), remaining)
			copy(swap[:read], items[aFrom:aFrom+read])
			copy(items[bTo:bTo+read], items[bFrom:bFrom+read])
			copy(items[aTo:aTo+read], swap[:read])
			aFrom += read
			aTo += read
			bFrom += read
			bTo += read
			remaining -= read
		}

		if uneven {
			items[end-1] = spill
		}

		return
	}

	// The right side has one more item.
	aFrom, aTo, bFrom, bTo := end, mid+1, mid, end
	remaining := mid - start
	spill = items[mid]

	for remaining > 0 {
		read := min(len(swap), remaining)
		aFrom -= read
		aTo -= read
		bFrom -= read
		bTo -= read
		remaining -= read
		copy(swap[:read], items[aFrom:aFrom+read])
		copy(items[bTo:bTo+read], items[bFrom:bFrom+read])
		copy(items[aTo:aTo+read], swap[:read])
	}

	items[start] = spill
}

// mergeCircular merges the sorted halves of [start, end) by writing the
// smaller head into the circular swap buffer. When the buffer fills, the
// left remainder either slides all the way right (if at least a quarter
// of the consumed gap is free) or just far enough to flush part of the
// buffer back into the array.
func mergeCircular[T any](items, swap []T, start, mid, end int, less func(a, b T) bool) {
	insert, count := 0, 0
	index1, index2 := start, mid
	swapTo, swapFrom := start, 0

	for index1 < mid && index2 < end {
		count++

		if !less(items[index2], items[index1]) {
			swap[insert] = items[index1]
			index1++
		} else {
			swap[insert] = items[index2]
			index2++
		}

		insert++
		if insert >= len(swap) {
			insert = 0
		}

		if count >= len(swap) {
			if index1-swapTo <= count/4 {
				// Enough free space on the left: shift the left remainder
				// all the way right and write out the entire buffer.
				copy(items[index2-(mid-index1):index2], items[index1:mid])
				index1 = index2 - (mid - index1)
				mid = index2
				count = 0
			} else {
				count -= index1 - swapTo
			}

			for swapTo < index1 {
				items[swapTo] = swap[swapFrom]
				swapTo++
				swapFrom++
				if swapFrom >= len(swap) {
					swapFrom = 0
				}
			}
		}
	}

	if mid < index2 {
		copy(items[index2-(mid-index1):index2], items[index1:mid])
		index1 = index2 - (mid - index1)
	}

	for swapTo < index1 {
		items[swapTo] = swap[swapFrom]
		swapTo++
		swapFrom++
		if swapFrom >= len(swap) {
			swapFrom = 0
		}
	}
}
