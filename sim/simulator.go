// sim/simulator.go
package sim

import (
	"container/heap"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/bottling-sim/bottling-sim/sim/trace"
)

// queuedEvent is an event bound to its firing time and insertion sequence.
type queuedEvent struct {
	time float64
	seq  uint64
	ev   Event
}

// EventQueue implements heap.Interface and orders events by (time, insertion sequence),
// so events scheduled for the same instant run in FIFO order.
// See canonical Golang example here: https://pkg.go.dev/container/heap#example-package-IntHeap
type EventQueue []queuedEvent

func (eq EventQueue) Len() int { return len(eq) }
func (eq EventQueue) Less(i, j int) bool {
	if eq[i].time != eq[j].time {
		return eq[i].time < eq[j].time
	}
	return eq[i].seq < eq[j].seq
}
func (eq EventQueue) Swap(i, j int) { eq[i], eq[j] = eq[j], eq[i] }

func (eq *EventQueue) Push(x any) {
	*eq = append(*eq, x.(queuedEvent))
}

func (eq *EventQueue) Pop() any {
	old := *eq
	n := len(old)
	item := old[n-1]
	old[n-1] = queuedEvent{}
	*eq = old[0 : n-1]
	return item
}

// Simulator is the run context: it owns simulated time, the future-event set,
// the five stations, the order source and every statistic of one run.
// Nothing is shared between Simulators, so independent runs may execute concurrently.
type Simulator struct {
	RunID string
	// Clock is the current simulated time in minutes. It never decreases.
	Clock float64
	// EventQueue has all pending events, ordered by (time, insertion sequence)
	EventQueue EventQueue

	Config   FactoryConfig
	Stations [NumStages]*Station
	Source   *OrderSource
	// Orders holds every order that has arrived, in arrival order.
	Orders  []*Order
	Metrics *Metrics
	Trace   *trace.SimulationTrace
	RNG     *PartitionedRNG

	// OnEvent, when set, is invoked after every dispatched event.
	OnEvent    func(sim *Simulator, ev Event)
	EventCount int

	samplers [NumStages]DurationSampler
	seq      uint64
	log      *logrus.Entry
	started  bool
	injected int
	wall     time.Duration
}

// Option customizes a Simulator at construction.
type Option func(*Simulator)

// WithTraceLevel sets the stage trace level (default trace.TraceLevelStages).
func WithTraceLevel(level trace.TraceLevel) Option {
	return func(s *Simulator) {
		s.Trace = trace.NewSimulationTrace(trace.TraceConfig{Level: level})
	}
}

// WithStageSampler replaces the processing-time sampler of one stage.
func WithStageSampler(stage Stage, sampler DurationSampler) Option {
	return func(s *Simulator) {
		s.samplers[stage] = sampler
	}
}

// WithArrivalSampler replaces the source's inter-arrival sampler.
func WithArrivalSampler(sampler DurationSampler) Option {
	return func(s *Simulator) {
		s.Source.sampler = sampler
	}
}

// NewSimulator builds a run for the given factory and bottle target.
// A non-positive target is valid and yields a run with no orders.
func NewSimulator(cfg FactoryConfig, target int64, opts ...Option) (*Simulator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	runID := uuid.NewString()
	s := &Simulator{
		RunID:      runID,
		EventQueue: make(EventQueue, 0),
		Config:     cfg.Clone(),
		Metrics:    NewMetrics(),
		Trace:      trace.NewSimulationTrace(trace.TraceConfig{Level: trace.TraceLevelStages}),
		RNG:        NewPartitionedRNG(NewSimulationKey(cfg.Seed)),
		Source: &OrderSource{
			Target:  target,
			sampler: ExponentialSampler{Mean: cfg.InterarrivalMean},
		},
		log: logrus.WithField("run", runID[:8]),
	}
	for _, stage := range Stages() {
		sc := cfg.Station(stage)
		st, err := NewStation(stage, sc.Capacity)
		if err != nil {
			return nil, err
		}
		s.Stations[stage] = st
		s.samplers[stage] = NormalSampler{Mean: sc.Mean, StdDev: sc.StdDev, Floor: cfg.MinProcessingTime}
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Schedule inserts ev to fire at Clock + delay. delay must be a finite value >= 0.
func (sim *Simulator) Schedule(delay float64, ev Event) error {
	if math.IsNaN(delay) || math.IsInf(delay, 0) || delay < 0 {
		return fmt.Errorf("%w: %v (must be finite and >= 0)", ErrInvalidDelay, delay)
	}
	if ev == nil {
		return fmt.Errorf("%w: nil event", ErrInvalidDelay)
	}
	heap.Push(&sim.EventQueue, queuedEvent{time: sim.Clock + delay, seq: sim.seq, ev: ev})
	sim.seq++
	return nil
}

// mustSchedule is used by event handlers, where a bad delay is a programming error.
func (sim *Simulator) mustSchedule(delay float64, ev Event) {
	if err := sim.Schedule(delay, ev); err != nil {
		panic(fmt.Sprintf("schedule %T at t=%.4f: %v", ev, sim.Clock, err))
	}
}

// InjectOrder schedules an extra order to arrive after delay, independent of the source.
// Injected orders take IDs from a separate range starting at 1_000_001.
func (sim *Simulator) InjectOrder(delay float64) (*Order, error) {
	sim.injected++
	order := NewOrder(1_000_000+sim.injected, sim.Config.BottlesPerOrder, 0)
	if err := sim.Schedule(delay, &OrderArrivalEvent{Order: order}); err != nil {
		sim.injected--
		return nil, err
	}
	return order, nil
}

// Station returns the station serving stage.
func (sim *Simulator) Station(stage Stage) *Station {
	return sim.Stations[stage]
}

// Run starts the source and dispatches events in time order until none remain,
// i.e. the source has stopped spawning and every arrived order has departed.
// Simulated time has no relation to wall-clock time.
func (sim *Simulator) Run() {
	start := time.Now()
	if !sim.started {
		sim.started = true
		sim.log.Infof("Starting simulation: target %d bottles, %d bottles per order", sim.Source.Target, sim.Config.BottlesPerOrder)
		sim.Source.Start(sim)
	}
	for len(sim.EventQueue) > 0 {
		// get the next event to be simulated
		qe := heap.Pop(&sim.EventQueue).(queuedEvent)
		// advance the clock
		sim.Clock = qe.time
		sim.log.Tracef("[t %10.2f] Executing %T", sim.Clock, qe.ev)
		// process the event
		qe.ev.Execute(sim)
		sim.EventCount++
		if sim.OnEvent != nil {
			sim.OnEvent(sim, qe.ev)
		}
	}
	sim.Metrics.SimEndedTime = sim.Clock
	sim.wall += time.Since(start)
	sim.log.Infof("[t %10.2f] Simulation ended: %d bottles from %d completed orders",
		sim.Clock, sim.Metrics.BottlesProduced, sim.Metrics.OrdersDeparted)
}

// WallClock returns the real time spent inside Run.
func (sim *Simulator) WallClock() time.Duration {
	return sim.wall
}

// requestStage moves order into the waiting state for stage and asks the station for a server.
func (sim *Simulator) requestStage(order *Order, stage Stage) {
	order.State = WaitingState(stage)
	order.RequestedAt[stage] = sim.Clock
	sim.Stations[stage].Acquire(sim, &StageGrantEvent{Order: order, Stage: stage})
}

// sampleDuration draws a processing time for stage from that stage's RNG stream.
func (sim *Simulator) sampleDuration(stage Stage) float64 {
	return sim.samplers[stage].Sample(sim.RNG.ForSubsystem(SubsystemStage(stage)))
}
