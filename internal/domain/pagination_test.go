package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPagination_Window(t *testing.T) {
	tests := []struct {
		name      string
		page      Pagination
		n         int
		wantStart int
		wantEnd   int
	}{
		{"first page", Pagination{Limit: 10, Offset: 0}, 25, 0, 10},
		{"last partial page", Pagination{Limit: 10, Offset: 20}, 25, 20, 25},
		{"offset past end", Pagination{Limit: 10, Offset: 30}, 25, 25, 25},
		{"empty input", Pagination{Limit: 10, Offset: 0}, 0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := tt.page.Window(tt.n)
			assert.Equal(t, tt.wantStart, start)
			assert.Equal(t, tt.wantEnd, end)
		})
	}
}

func TestPagination_Valid(t *testing.T) {
	assert.True(t, DefaultPagination().Valid())
	assert.True(t, Pagination{Limit: 100}.Valid())
	assert.False(t, Pagination{Limit: 0}.Valid())
	assert.False(t, Pagination{Limit: 101}.Valid())
	assert.False(t, Pagination{Limit: 10, Offset: -1}.Valid())
}
