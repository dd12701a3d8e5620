package chart

import (
	"github.com/janekbaraniewski/daytrend/internal/core"
	"github.com/samber/lo"
)

// ChunkSize is the number of days per heat grid row.
const ChunkSize = 7

// WeekChunks slices seq into rows of ChunkSize days, oldest first. The last
// row holds the remainder, so a 30-day window splits 7,7,7,7,2.
func WeekChunks(seq core.Sequence) []core.Sequence {
	if len(seq) == 0 {
		return nil
	}
	chunks := lo.Chunk([]core.Point(seq), ChunkSize)
	out := make([]core.Sequence, len(chunks))
	for i, c := range chunks {
		out[i] = core.Sequence(c)
	}
	return out
}

// ChunkLens reports the row lengths WeekChunks produces for n days.
func ChunkLens(n int) []int {
	if n <= 0 {
		return nil
	}
	out := make([]int, 0, (n+ChunkSize-1)/ChunkSize)
	for n > 0 {
		size := min(n, ChunkSize)
		out = append(out, size)
		n -= size
	}
	return out
}
