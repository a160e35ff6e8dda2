package motion

// GamepadButton is one entry of a gamepad's flat button array.
type GamepadButton struct {
	Value   float64
	Pressed bool
	Touched bool
}

// Gamepad is the minimal surface the runtime needs from a gamepad-like
// input: flat button and axis arrays indexed by the profile's resolved
// gamepad indices.
type Gamepad interface {
	Buttons() []GamepadButton
	Axes() []float64
}

// Frame is a plain value implementation of Gamepad, convenient for tests
// and for callers that snapshot device state elsewhere.
type Frame struct {
	ButtonValues []GamepadButton
	AxisValues   []float64
}

// Buttons implements Gamepad.
func (f Frame) Buttons() []GamepadButton { return f.ButtonValues }

// Axes implements Gamepad.
func (f Frame) Axes() []float64 { return f.AxisValues }

// clamp limits v to the [lo, hi] interval.
func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// normalizeAxis converts an axis value from [-1, 1] to the [0, 1] range used
// by visual responses.
func normalizeAxis(v float64) float64 {
	return clamp(v+1, 0, 2) / 2
}
