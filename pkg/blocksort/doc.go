// Package blocksort provides a stable, in-place comparison sort that runs
// in O(N log N) time using O(1) auxiliary memory.
//
// The core algorithm is a bottom-up merge sort whose merge step works
// without an O(N) scratch array. Instead, it carves a buffer of distinct
// elements out of the array itself, uses that buffer as swap space while
// rolling sqrt(N)-sized blocks of the left half through the right half,
// and rotates the buffer elements back into sorted position at the end of
// each merge level. The approach is due to Kutzner, Kim, and McFadden.
//
// # Basic Usage
//
//	items := []int{5, 2, 4, 2, 1}
//	blocksort.Sort(items, func(a, b int) bool { return a < b })
//
// The comparator must be a strict weak ordering: less(a, b) reports
// whether a strictly precedes b. Elements for which neither less(a, b)
// nor less(b, a) holds are equal and keep their original relative order.
//
// # Memory
//
// [Sort] uses a fixed 512-element scratch cache and nothing else; no
// allocation grows with the input. [SortBuffered] is a simpler variant
// built around a fixed 1024-element circular swap buffer. Both are
// single-threaded and take exclusive ownership of the slice for the
// duration of the call.
//
// # Choosing a variant
//
// [Sort] is the general-purpose entry point. [SortBuffered] trades the
// internal-buffer machinery for a much simpler merge; it degrades when
// runs far exceed its swap buffer and the left run is mostly greater
// than the right, so prefer [Sort] unless simplicity matters more than
// worst-case behavior.
package blocksort
