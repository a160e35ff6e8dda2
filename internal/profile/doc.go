// Package profile defines the canonical data model for WebXR input profiles:
// immutable value objects describing a controller's components, their gamepad
// data sources, and the visual responses that bind live component state to
// named 3D model nodes.
//
// Entities in this package are constructed once per load by the registry
// expander and the asset builder; nothing here is mutated in place. Selecting
// a new profile discards the old object graph and builds a fresh one.
package profile
