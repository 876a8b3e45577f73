package ecs_test

import (
	"fmt"

	"github.com/plus3/roster/ecs"
)

// ExampleView demonstrates iterating the intersection of two component
// pools. The view struct declares the shape of each row: embedded
// pointer fields are required components.
func ExampleView() {
	reg := ecs.NewRegistry()

	e := reg.Create()
	ecs.Emplace(reg, e, Position{X: 0, Y: 0})
	ecs.Emplace(reg, e, Velocity{DX: 1, DY: 2})

	// Position without Velocity: not part of the view.
	stationary := reg.Create()
	ecs.Emplace(reg, stationary, Position{X: 99, Y: 99})

	view := ecs.NewView[struct {
		*Position
		*Velocity
	}](reg)

	for _, row := range view.Iter() {
		row.Position.X += row.Velocity.DX
		row.Position.Y += row.Velocity.DY
	}

	pos, _ := ecs.Get[Position](reg, e)
	fmt.Printf("moved to (%.0f, %.0f)\n", pos.X, pos.Y)
	fmt.Println("matches:", view.Len())

	// Output:
	// moved to (1, 2)
	// matches: 1
}

// ExampleView_tags marks view fields as optional or excluded. Optional
// components are nil when absent; excluded types filter entities out of
// the view entirely.
func ExampleView_tags() {
	reg := ecs.NewRegistry()

	soldier := reg.Create()
	ecs.Emplace(reg, soldier, Position{})
	ecs.Emplace(reg, soldier, Name{Value: "soldier"})

	statue := reg.Create()
	ecs.Emplace(reg, statue, Position{})
	ecs.Emplace(reg, statue, Frozen{})

	view := ecs.NewView[struct {
		*Position
		Name   *Name   `ecs:"optional"`
		Frozen *Frozen `ecs:"exclude"`
	}](reg)

	for _, row := range view.Iter() {
		name := "<unnamed>"
		if row.Name != nil {
			name = row.Name.Value
		}
		fmt.Println("visible:", name)
	}

	// Output:
	// visible: soldier
}
