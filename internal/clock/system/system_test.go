package system

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestClock_NowIsUTC(t *testing.T) {
	c := New()
	now := c.Now()
	assert.Equal(t, time.UTC, now.Location())
	assert.WithinDuration(t, time.Now().UTC(), now, time.Second)
}
