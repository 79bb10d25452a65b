package blocksort

// rollBlocks performs the in-place merge of A and B once buffers are in
// place at the outer edges: it splits the remainder of A into blockSize
// sized blocks, tags each block's second element with a distinct value
// from buffer1 so the blocks stay ordered by origin, and rolls them
// through B. Whenever the minimum remaining A block reaches its home, the
// previous A block is locally merged with the B values left behind it,
// using buffer2 (or the cache) as swap space.
func (s *sorter[T]) rollBlocks(A, B Range, blockSize int, pb pairBuffers) {
	items, less := s.items, s.less
	buffer1, buffer2 := pb.buffer1, pb.buffer2
	bufferA, bufferB := pb.bufferA, pb.bufferB

	// firstA is the uneven-sized prefix; the remaining A blocks are full.
	blockA := makeRange(bufferA.end, A.end)
	firstA := makeRange(bufferA.end, bufferA.end+blockA.length()%blockSize)

	// Tag each full A block. The tags are distinct and written in order,
	// so comparing them orders the blocks by their original position.
	tag := 0
	for indexA := firstA.end + 1; indexA < blockA.end; indexA += blockSize {
		items[buffer1.start+tag], items[indexA] = items[indexA], items[buffer1.start+tag]
		tag++
	}

	lastA := firstA
	lastB := makeRange(0, 0)
	blockB := makeRange(B.start, B.start+min(blockSize, B.length()-bufferB.length()))
	blockA.start += firstA.length()

	minA := blockA.start
	minValue := items[minA]
	indexA := 0

	// Stash lastA where the local merge will want it.
	if lastA.length() <= len(s.cache) {
		copy(s.cache, items[lastA.start:lastA.end])
	} else {
		blockSwap(items, lastA.start, buffer2.start, lastA.length())
	}

	for {
		if (lastB.length() > 0 && !less(items[lastB.end-1], minValue)) || blockB.length() == 0 {
			// The minimum A block belongs here. Split the previous B block
			// where the block's first value lands.
			bSplit := binaryFirst(items, minValue, lastB, less)
			bRemaining := lastB.end - bSplit

			// Swap the minimum A block to the front so the A blocks stay
			// contiguous.
			blockSwap(items, blockA.start, minA, blockSize)

			// Restore the tagged second element from buffer1. firstA never
			// had a tag, which is why firstA carries the uneven size.
			items[blockA.start+1], items[buffer1.start+indexA] = items[buffer1.start+indexA], items[blockA.start+1]
			indexA++

			// Locally merge the previous A block with the B values that
			// followed it.
			s.merge(buffer2, lastA, makeRange(lastA.end, bSplit))

			// Stash the just-arrived A block; that is where the next local
			// merge needs it anyway.
			if blockSize <= len(s.cache) {
				copy(s.cache, items[blockA.start:blockA.start+blockSize])
			} else {
				blockSwap(items, blockA.start, buffer2.start, blockSize)
			}

			// The A block's old home now holds either buffer2's contents or
			// data already stashed in the cache, so order there is
			// irrelevant: a block swap replaces a full rotation.
			blockSwap(items, bSplit, blockA.start+blockSize-bRemaining, bRemaining)

			lastA = makeRange(blockA.start-bRemaining, blockA.start-bRemaining+blockSize)
			lastB = makeRange(lastA.end, lastA.end+bRemaining)

			blockA.start += blockSize
			if blockA.length() == 0 {
				break
			}

			// Scan the tags for the new minimum A block.
			minA = blockA.start + 1
			for findA := minA + blockSize; findA < blockA.end; findA += blockSize {
				if less(items[findA], items[minA]) {
					minA = findA
				}
			}
			minA-- // back to the start of that A block
			minValue = items[minA]
		} else if blockB.length() < blockSize {
			// The last B block is unevenly sized; rotate it in front of the
			// remaining A blocks. The cache is off limits here because it
			// holds the contents of the previous A block.
			s.rotate(-blockB.length(), makeRange(blockA.start, blockB.end), false)

			lastB = makeRange(blockA.start, blockA.start+blockB.length())
			blockA.start += blockB.length()
			blockA.end += blockB.length()
			minA += blockB.length()
			blockB.end = blockB.start
		} else {
			// Roll the leftmost A block past the next B block.
			blockSwap(items, blockA.start, blockB.start, blockSize)
			lastB = makeRange(blockA.start, blockA.start+blockSize)

			if minA == blockA.start {
				minA = blockA.end
			}

			blockA.start += blockSize
			blockA.end += blockSize
			blockB.start += blockSize
			blockB.end += blockSize

			if blockB.end > bufferB.start {
				blockB.end = bufferB.start
			}
		}
	}

	// Merge the last A block with the remaining B values.
	s.merge(buffer2, lastA, makeRange(lastA.end, B.end-bufferB.length()))
}
