package time

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRealTimeProvider(t *testing.T) {
	tp := NewRealTimeProvider()

	now := tp.Now()
	assert.Equal(t, time.UTC, now.Location())
	assert.GreaterOrEqual(t, tp.Since(now.Add(-time.Second)), time.Second)
}
