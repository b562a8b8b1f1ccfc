package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConvertTourToEdges(t *testing.T) {
	edges := ConvertTourToEdges([]int{3, 1, 2})

	assert.Equal(t, []Edge{{From: 3, To: 1}, {From: 1, To: 2}, {From: 2, To: 3}}, edges)
	assert.Nil(t, ConvertTourToEdges(nil))
	assert.Equal(t, []Edge{{From: 7, To: 7}}, ConvertTourToEdges([]int{7}))
}

func TestIsPermutation(t *testing.T) {
	indices := []int{1, 2, 5}

	tests := []struct {
		name string
		tour []int
		want bool
	}{
		{"exact", []int{5, 1, 2}, true},
		{"duplicate", []int{5, 5, 2}, false},
		{"missing", []int{5, 1}, false},
		{"foreign", []int{5, 1, 3}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsPermutation(tt.tour, indices))
		})
	}
}
