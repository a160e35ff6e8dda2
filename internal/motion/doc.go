// Package motion maps live gamepad frames onto a concrete profile's
// components. It owns no polling loop and talks to no device: callers push a
// frame, the controller recomputes per-component values, discrete states,
// and visual-response weights, and the viewer reads them out to drive node
// transforms and visibility.
package motion
