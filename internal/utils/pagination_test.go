package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPagedResponse(t *testing.T) {
	tests := []struct {
		name       string
		page, size int
		total      int64
		wantPages  int64
		wantFirst  bool
		wantLast   bool
	}{
		{"first of many", 0, 10, 25, 3, true, false},
		{"middle page", 1, 10, 25, 3, false, false},
		{"last partial page", 2, 10, 25, 3, false, true},
		{"exact fit", 1, 10, 20, 2, false, true},
		{"empty result", 0, 10, 0, 0, true, true},
		{"single element", 0, 10, 1, 1, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := NewPagedResponse([]string{}, Pagination{Page: tt.page, Size: tt.size}, tt.total)
			assert.Equal(t, tt.wantPages, resp.TotalPages)
			assert.Equal(t, tt.total, resp.TotalElements)
			assert.Equal(t, tt.wantFirst, resp.First)
			assert.Equal(t, tt.wantLast, resp.Last)
			assert.Equal(t, tt.page, resp.Page)
			assert.Equal(t, tt.size, resp.Size)
		})
	}
}
