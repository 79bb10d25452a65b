package blocksort

// Hooks for white-box tests.

var FloorPowerOfTwo = floorPowerOfTwo

type Stepper = stepper

func NewStepper(size int) Stepper { return newStepper(size) }

func (st *stepper) DecStep() int { return st.decStep }

func (st *stepper) Begin() { st.begin() }

func (st *stepper) Done() bool { return st.done() }

func (st *stepper) NextRange() (start, end int) {
	r := st.nextRange()
	return r.start, r.end
}

func (st *stepper) DoubleStep() { st.doubleStep() }

func MakeRange(start, end int) Range { return makeRange(start, end) }

func (r Range) Start() int { return r.start }

func (r Range) End() int { return r.end }

func (r Range) Length() int { return r.length() }

func BinaryFirst[T any](items []T, value T, r Range, less func(a, b T) bool) int {
	return binaryFirst(items, value, r, less)
}

func BinaryLast[T any](items []T, value T, r Range, less func(a, b T) bool) int {
	return binaryLast(items, value, r, less)
}

func InsertionSort[T any](items []T, r Range, less func(a, b T) bool) {
	insertionSort(items, r, less)
}

func Reverse[T any](items []T, r Range) { reverse(items, r) }

func BlockSwap[T any](items []T, start1, start2, count int) { blockSwap(items, start1, start2, count) }

func Rotate[T any](items []T, amount int, r Range, useCache bool) {
	var cache [cacheSize]T

	s := &sorter[T]{items: items, cache: cache[:]}
	s.rotate(amount, r, useCache)
}
