package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompute(t *testing.T) {
	tests := []struct {
		name     string
		duration int
		images   int
		want     int64
	}{
		{"base short no images", 10, 0, 5},
		{"base default duration", 15, 2, 5},
		{"base at 20s boundary", 20, 2, 5},
		{"images lift to tier", 10, 3, 7},
		{"images lift many", 15, 8, 7},
		{"duration just over 20", 25, 0, 7},
		{"duration at 30 boundary", 30, 0, 7},
		{"duration and images do not add", 25, 5, 7},
		{"duration over 30 forces premium", 35, 0, 10},
		{"premium overrides images", 45, 10, 10},
		{"premium at 35 with two images", 35, 2, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Compute(tt.duration, tt.images))
		})
	}
}

func TestComputeWholeDomain(t *testing.T) {
	for d := 10; d <= 45; d += 5 {
		for n := 0; n <= 6; n++ {
			got := Compute(d, n)

			switch {
			case d > 30:
				assert.Equal(t, int64(10), got, "d=%d n=%d", d, n)
			case d > 20 || n > 2:
				assert.Equal(t, int64(7), got, "d=%d n=%d", d, n)
			default:
				assert.Equal(t, int64(5), got, "d=%d n=%d", d, n)
			}
		}
	}
}
