package sim

// OrderSource spawns orders at stochastic intervals until the cumulative bottle
// count reaches Target.
//
// The guard is checked only before sampling each inter-arrival delay; the order
// produced when that delay elapses is always spawned. While earlier orders are
// still in flight the source keeps spawning, so a run can end with more bottles
// than strictly needed to reach Target.
type OrderSource struct {
	Target  int64
	Spawned int
	// Stopped is set once the guard fails; StoppedAt is the clock at that moment.
	Stopped   bool
	StoppedAt float64

	sampler DurationSampler
	nextID  int
}

// Start begins spawning. A non-positive target spawns nothing.
func (src *OrderSource) Start(sim *Simulator) {
	if src.Target <= 0 {
		sim.log.Warnf("Target bottles (%d) is not positive. No orders will be generated.", src.Target)
		src.stop(sim)
		return
	}
	src.next(sim)
}

// next re-checks the guard and, if production is still short, schedules the next spawn.
func (src *OrderSource) next(sim *Simulator) {
	if sim.Metrics.BottlesProduced >= src.Target {
		src.stop(sim)
		return
	}
	src.nextID++
	delay := src.sampler.Sample(sim.RNG.ForSubsystem(SubsystemArrivals))
	sim.mustSchedule(delay, &OrderSpawnEvent{OrderID: src.nextID})
}

func (src *OrderSource) stop(sim *Simulator) {
	src.Stopped = true
	src.StoppedAt = sim.Clock
	sim.log.Infof("%.2f: Source stopping. Target bottles (%d) met or exceeded (current: %d). Orders generated: %d.",
		sim.Clock, src.Target, sim.Metrics.BottlesProduced, src.Spawned)
}
