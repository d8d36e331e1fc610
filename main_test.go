package main

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProgressPercent(t *testing.T) {
	tests := []struct {
		name          string
		frame, frames int
		want          float64
	}{
		{"start", 0, 300, 0},
		{"halfway", 150, 300, 50},
		{"done", 300, 300, 100},
		{"zero-length run", 0, 0, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := progressPercent(tt.frame, tt.frames)
			assert.Equal(t, tt.want, got)
			assert.False(t, math.IsNaN(got))
		})
	}
}
