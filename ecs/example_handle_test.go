package ecs_test

import (
	"fmt"

	"github.com/plus3/roster/ecs"
)

// ExampleHandle binds one entity identifier to one registry so call
// sites can pass a single value around instead of the pair.
func ExampleHandle() {
	reg := ecs.NewRegistry()
	h := ecs.NewHandle(reg, reg.Create())

	ecs.HandleEmplace(h, Name{Value: "crate"})

	name, _ := ecs.HandleGet[Name](h)
	fmt.Println("name:", name.Value)

	ro := h.ReadOnly()
	copied, _ := ecs.ReadOnlyGet[Name](ro)
	copied.Value = "mutated copy"
	name, _ = ecs.HandleGet[Name](h)
	fmt.Println("still:", name.Value)

	h.Destroy()
	fmt.Println("nil:", h.Nil(), "valid:", h.Valid())

	// Output:
	// name: crate
	// still: crate
	// nil: false valid: false
}
