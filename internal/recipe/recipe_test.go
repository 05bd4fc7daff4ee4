package recipe

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRequiresBatching(t *testing.T) {
	tests := []struct {
		bananas int
		want    bool
	}{
		{bananas: 1, want: false},
		{bananas: 3, want: false},
		{bananas: 4, want: true},
		{bananas: 6, want: true},
		{bananas: 7, want: false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, RequiresBatching(tt.bananas), "bananas=%d", tt.bananas)
	}
}

func TestHasTip(t *testing.T) {
	assert.True(t, HasTip(0))
	assert.False(t, HasTip(len(Steps)-1), "cooling step has no tip")
	assert.False(t, HasTip(-1))
	assert.False(t, HasTip(len(Steps)))
}
