package colors

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPulse(t *testing.T) {
	white := Color{1, 1, 1, 1}
	assert.Equal(t, Color{0.5, 0.5, 0.5, 1}, white.Pulse(0.5))
	assert.Equal(t, Color{1, 1, 1, 1}, white.Pulse(2))
	assert.Equal(t, Color{0, 0, 0, 1}, white.Pulse(-1))
	assert.Equal(t, Color{0, 0.1, 0.5, 1}, Azure.Pulse(0.5))
	assert.Equal(t, Color{1, 1, 1, 1}, white, "receiver is not modified")
}
