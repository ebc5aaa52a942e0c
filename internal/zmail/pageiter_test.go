package zmail

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPageIteratorFetchAll(t *testing.T) {
	items := make([]int, 120)
	for i := range items {
		items[i] = i
	}

	var starts []int
	it := NewPageIterator(func(start, limit int) ([]int, error) {
		starts = append(starts, start)
		idx := start - 1
		if idx >= len(items) {
			return nil, nil
		}
		end := idx + limit
		if end > len(items) {
			end = len(items)
		}
		return items[idx:end], nil
	}, 50)

	all, err := it.FetchAll()
	require.NoError(t, err)
	assert.Len(t, all, 120)
	assert.Equal(t, []int{1, 51, 101}, starts)
}

func TestPageIteratorPropagatesError(t *testing.T) {
	boom := errors.New("boom")
	it := NewPageIterator(func(start, limit int) ([]int, error) {
		return nil, boom
	}, 50)

	_, err := it.FetchAll()
	assert.ErrorIs(t, err, boom)
}

func TestPageIteratorEachStopsEarly(t *testing.T) {
	it := NewPageIterator(func(start, limit int) ([]int, error) {
		page := make([]int, limit)
		for i := range page {
			page[i] = start + i
		}
		return page, nil
	}, 10)

	var seen []int
	err := it.Each(func(item int) bool {
		seen = append(seen, item)
		return len(seen) < 5
	})
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3, 4, 5}, seen)
}
