package throttle

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestThrottle_BurstThenDeny(t *testing.T) {
	th := New(1, 3)

	for i := 0; i < 3; i++ {
		assert.True(t, th.Allow(), "request %d within burst should pass", i+1)
	}
	assert.False(t, th.Allow(), "request past the burst should be denied")
}

func TestThrottle_DisabledAdmitsEverything(t *testing.T) {
	th := New(0, 0)

	for i := 0; i < 10000; i++ {
		assert.True(t, th.Allow())
	}
}

func TestThrottle_BurstFloor(t *testing.T) {
	// Burst below rps would deny requests a steady client is entitled to.
	th := New(100, 1)

	for i := 0; i < 100; i++ {
		assert.True(t, th.Allow(), "request %d should fit the adjusted burst", i+1)
	}
}
