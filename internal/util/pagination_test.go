package util

import (
	"math"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculate(t *testing.T) {
	tests := []struct {
		name        string
		page, size  int
		offset, lim int
	}{
		{name: "defaults", page: 0, size: 0, offset: 0, lim: DefaultPageSize},
		{name: "third page", page: 3, size: 10, offset: 20, lim: 10},
		{name: "clamped size", page: 2, size: 1000, offset: MaxPageSize, lim: MaxPageSize},
		{name: "negative page", page: -4, size: 5, offset: 0, lim: 5},
		{name: "huge page", page: math.MaxInt, size: 100, offset: (MaxPage - 1) * 100, lim: 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			offset, limit := Calculate(tt.page, tt.size)
			assert.Equal(t, tt.offset, offset)
			assert.Equal(t, tt.lim, limit)
		})
	}
}

func TestParseIntDefault(t *testing.T) {
	assert.Equal(t, 7, ParseIntDefault("", 7))
	assert.Equal(t, 7, ParseIntDefault("seven", 7))
	assert.Equal(t, 3, ParseIntDefault("3", 7))
}

func TestNewPage(t *testing.T) {
	p := NewPage[int](nil, 2, 10, 10, 25)
	assert.NotNil(t, p.Items)
	assert.Equal(t, int64(3), p.Meta.TotalPages)
	assert.True(t, p.Meta.HasPrev)
	assert.True(t, p.Meta.HasNext)

	last := NewPage([]int{1}, 3, 20, 10, 21)
	assert.False(t, last.Meta.HasNext)
}

func TestNewPage_HugePage(t *testing.T) {
	page := ParseIntDefault(strconv.Itoa(math.MaxInt), 1)
	offset, limit := Calculate(page, 20)
	require.GreaterOrEqual(t, offset, 0)

	p := NewPage([]int{}, page, offset, limit, 25)
	assert.Equal(t, MaxPage, p.Meta.Page)
	assert.False(t, p.Meta.HasNext)
	assert.True(t, p.Meta.HasPrev)
}
