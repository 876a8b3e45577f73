package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"runtime"
	"time"

	"github.com/pkg/profile"
	"github.com/plus3/roster/ecs"
)

type Position struct {
	X, Y float32
}

type Velocity struct {
	DX, DY float32
}

type Health struct {
	Current, Max int
}

type Lifetime struct {
	Remaining time.Duration
}

type Frozen struct{}

func main() {
	duration := flag.Duration("duration", 10*time.Second, "The total duration the test should run for.")
	entityCount := flag.Int("entities", 10000, "The initial number of entities to create.")
	churn := flag.Int("churn", 100, "Entities destroyed and recreated per tick.")
	gcPauseMetrics := flag.Bool("gc-pause-metrics", false, "Enable detailed GC pause metrics in the report.")
	memProfile := flag.Bool("mem-profile", false, "Write an allocation profile to the working directory.")
	flag.Parse()

	if *memProfile {
		p := profile.Start(profile.MemProfileAllocs, profile.ProfilePath("."), profile.NoShutdownHook)
		defer p.Stop()
	}

	log.Println("Starting ECS stress test...")

	// 1. Setup registry, group, and views
	reg := ecs.NewRegistry()

	group, err := ecs.NewGroup2[Position, Velocity](reg)
	if err != nil {
		log.Fatalf("Failed to create group: %v", err)
	}

	mortal := ecs.NewView[struct {
		*Health
		*Lifetime
		Skip *Frozen `ecs:"exclude"`
	}](reg)

	// 2. Populate the registry with initial entities
	log.Printf("Populating registry with %d entities...\n", *entityCount)
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	entities := make([]ecs.Entity, 0, *entityCount)
	for i := 0; i < *entityCount; i++ {
		entities = append(entities, spawnRandom(reg, rng))
	}
	log.Println("Population complete.")

	// 3. Run the simulation loop
	report := &Report{
		Duration:       *duration,
		Entities:       *entityCount,
		Churn:          *churn,
		GCPauseMetrics: *gcPauseMetrics,
	}

	runtime.ReadMemStats(&report.MemStatsStart)

	log.Printf("Running simulation for %s...\n", *duration)
	ctx, cancel := context.WithTimeout(context.Background(), *duration)
	defer cancel()

	startTime := time.Now()
	var totalTicks int64
	lastTick := time.Now()

Loop:
	for {
		select {
		case <-ctx.Done():
			break Loop
		default:
			dt := time.Since(lastTick)
			lastTick = time.Now()

			tickStart := time.Now()
			tick(reg, group, mortal, rng, &entities, *churn, dt)
			tickDuration := time.Since(tickStart)

			report.TickTime.Samples = append(report.TickTime.Samples, tickDuration)
			totalTicks++
		}
	}

	report.TotalTime = time.Since(startTime)
	report.TotalTicks = totalTicks
	report.FinalEntities = reg.Alive()
	report.TickTime.Finalize()
	runtime.ReadMemStats(&report.MemStatsEnd)

	log.Println("Simulation finished.")

	// 4. Generate report to console
	fmt.Println("\n\n--- Stress Test Report ---")
	if err := report.Generate(os.Stdout); err != nil {
		log.Fatalf("Failed to generate report: %v", err)
	}
	fmt.Println("--- End of Report ---")

	log.Println("Stress test complete.")
}

// spawnRandom creates an entity with a random component mix.
func spawnRandom(reg *ecs.Registry, rng *rand.Rand) ecs.Entity {
	e := reg.Create()
	ecs.Emplace(reg, e, Position{X: rng.Float32() * 1000, Y: rng.Float32() * 1000})
	if rng.Intn(2) == 0 {
		ecs.Emplace(reg, e, Velocity{DX: rng.Float32() - 0.5, DY: rng.Float32() - 0.5})
	}
	if rng.Intn(2) == 0 {
		ecs.Emplace(reg, e, Health{Current: 100, Max: 100})
		ecs.Emplace(reg, e, Lifetime{Remaining: time.Duration(rng.Intn(5000)) * time.Millisecond})
	}
	if rng.Intn(10) == 0 {
		ecs.Emplace(reg, e, Frozen{})
	}
	return e
}

// tick advances every moving entity through the group's packed columns,
// expires mortal entities through the view, and churns a slice of the
// population through destroy/create.
func tick(reg *ecs.Registry, group *ecs.Group, mortal *ecs.View[struct {
	*Health
	*Lifetime
	Skip *Frozen `ecs:"exclude"`
}], rng *rand.Rand, entities *[]ecs.Entity, churn int, dt time.Duration) {
	positions := ecs.GroupColumn[Position](group)
	velocities := ecs.GroupColumn[Velocity](group)
	for i := range positions {
		positions[i].X += velocities[i].DX
		positions[i].Y += velocities[i].DY
	}

	for e, row := range mortal.Iter() {
		row.Lifetime.Remaining -= dt
		if row.Lifetime.Remaining <= 0 {
			row.Health.Current = 0
			reg.Destroy(e)
		}
	}

	pool := *entities
	for i := 0; i < churn && len(pool) > 0; i++ {
		j := rng.Intn(len(pool))
		if reg.Valid(pool[j]) {
			reg.Destroy(pool[j])
		}
		pool[j] = spawnRandom(reg, rng)
	}
	*entities = pool
}
