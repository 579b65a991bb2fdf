package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParsePagination(t *testing.T) {
	tests := []struct {
		name      string
		page      string
		limit     string
		wantPage  int
		wantLimit int
	}{
		{"defaults on empty", "", "", DefaultPage, DefaultLimit},
		{"valid", "3", "50", 3, 50},
		{"negative page", "-2", "10", DefaultPage, 10},
		{"limit capped", "1", "1000", 1, MaxLimit},
		{"garbage", "x", "y", DefaultPage, DefaultLimit},
		{"page capped", "9223372036854775807", "100", MaxPage, 100},
		{"page overflows int", "99999999999999999999", "10", DefaultPage, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, limit := ParsePagination(tt.page, tt.limit)
			assert.Equal(t, tt.wantPage, page)
			assert.Equal(t, tt.wantLimit, limit)
		})
	}
}
