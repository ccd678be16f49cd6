package colors

type Color [4]float32

var (
	// Teal is the tutorial's clear colour.
	Teal = Color{0.2, 0.3, 0.3, 1}
	// Azure is the full-brightness colour of the animated tint.
	Azure = Color{0, 0.2, 1, 1}
)

// Pulse scales the RGB channels by the brightness k in [0,1], clamping the
// result. Alpha is kept.
func (c Color) Pulse(k float32) Color {
	for i := 0; i < 3; i++ {
		v := c[i] * k
		if v < 0 {
			v = 0
		} else if v > 1 {
			v = 1
		}
		c[i] = v
	}
	return c
}
