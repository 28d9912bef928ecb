// Package components defines the entity data for paddles and balls.
package components

// Vector2 is a 2D point or velocity.
type Vector2 struct {
	X, Y float32
}

// Position represents an entity's field position.
type Position Vector2

// Velocity represents an entity's velocity in units per second.
type Velocity Vector2
