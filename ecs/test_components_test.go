package ecs_test

// Common test component types
type Position struct {
	X, Y float32
}

type Velocity struct {
	DX, DY float32
}

type Health struct {
	Current int
	Max     int
}

type Name struct {
	Value string
}

type Frozen struct{}

type PlayerTag struct{}

// Custom primitive types for testing non-struct components
type Score int32
type Label string
type Temperature float64
