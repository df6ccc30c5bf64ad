// Package sim is the Worlds Below simulation: the component types, the World
// that owns their stores, the spawn routines and the per-tick systems.
package sim

import "image/color"

// Health is a continuous scalar in [0, max health].
type Health float32

// Color is the fill color the renderer uses for an entity's bounding box.
type Color struct {
	R, G, B uint8
}

// RGBA implements color.Color as a fully opaque color.
func (c Color) RGBA() (r, g, b, a uint32) {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 0xff}.RGBA()
}

// BoundingBox is an entity's position and footprint.
type BoundingBox struct {
	Rect
}

// Oxygenator marks an entity as a source of breathable air. Its radius is its
// bounding box.
type Oxygenator bool

// PlayerControlled marks the entity driven by input intents.
type PlayerControlled bool

// Intents is the snapshot of movement input for one tick.
type Intents struct {
	Left, Right, Up, Down bool
}
