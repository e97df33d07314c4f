package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRandomTTLWithinJitterBounds(t *testing.T) {
	base := 5 * time.Minute
	low := time.Duration(float64(base) * (1 - DefaultJitter))
	high := time.Duration(float64(base) * (1 + DefaultJitter))

	for i := 0; i < 100; i++ {
		ttl := RandomTTL(base)
		assert.GreaterOrEqual(t, ttl, low)
		assert.LessOrEqual(t, ttl, high)
	}
}

func TestRandomTTLSecondsPositive(t *testing.T) {
	assert.Greater(t, RandomTTLSeconds(time.Minute), 0)
}

func TestSearchResultKey(t *testing.T) {
	assert.Equal(t, "search:result:thread:ab12", SearchResultKey("thread", "ab12"))
	assert.Equal(t, "search:result:thread:*", SearchResultTypePattern("thread"))
}

func TestSuggestKeyDefaultsToAll(t *testing.T) {
	assert.Equal(t, "search:suggest:all:django", SuggestKey("", "django"))
	assert.Equal(t, "search:suggest:news:django", SuggestKey("news", "django"))
}
