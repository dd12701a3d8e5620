package chart

import (
	"testing"

	"github.com/janekbaraniewski/daytrend/internal/core"
	"github.com/stretchr/testify/assert"
)

func TestWeekChunks_ThirtyDays(t *testing.T) {
	s := make(core.Sequence, 30)
	for i := range s {
		s[i] = core.Present(float64(i%10 + 1))
	}

	chunks := WeekChunks(s)
	lens := make([]int, len(chunks))
	total := 0
	for i, c := range chunks {
		lens[i] = len(c)
		total += len(c)
	}
	assert.Equal(t, []int{7, 7, 7, 7, 2}, lens)
	assert.Equal(t, 30, total)
	assert.Equal(t, s[28], chunks[4][0])
	assert.Equal(t, s[7], chunks[1][0])
}

func TestWeekChunks_OtherLengths(t *testing.T) {
	tests := []struct {
		n    int
		want []int
	}{
		{0, nil},
		{1, []int{1}},
		{7, []int{7}},
		{14, []int{7, 7}},
		{15, []int{7, 7, 1}},
	}
	for _, tt := range tests {
		chunks := WeekChunks(make(core.Sequence, tt.n))
		var lens []int
		for _, c := range chunks {
			lens = append(lens, len(c))
		}
		assert.Equal(t, tt.want, lens, "n=%d", tt.n)
		assert.Equal(t, tt.want, ChunkLens(tt.n), "ChunkLens(%d)", tt.n)
	}
}

func TestWeekChunks_PreservesMissing(t *testing.T) {
	s := seq(1, 0, 3, 0, 0, 0, 0, 8)
	chunks := WeekChunks(s)
	assert.False(t, chunks[0][1].Present)
	assert.True(t, chunks[1][0].Present)
}
