package sim

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/bottling-sim/bottling-sim/sim/trace"
)

// Event defines the interface for all simulation events.
// Each event is a continuation: the scheduler binds it to a firing time and
// calls Execute once the clock reaches that time.
type Event interface {
	Execute(*Simulator)
}

// OrderSpawnEvent fires when the source's inter-arrival delay has elapsed.
type OrderSpawnEvent struct {
	OrderID int
}

// Execute creates the order, hands it to the pipeline and lets the source decide on the next one.
func (e *OrderSpawnEvent) Execute(sim *Simulator) {
	order := NewOrder(e.OrderID, sim.Config.BottlesPerOrder, sim.Clock)
	sim.Source.Spawned++
	sim.mustSchedule(0, &OrderArrivalEvent{Order: order})
	sim.Source.next(sim)
}

// OrderArrivalEvent represents a batch entering the factory.
type OrderArrivalEvent struct {
	Order *Order
}

// Execute records the arrival and requests the first station.
func (e *OrderArrivalEvent) Execute(sim *Simulator) {
	o := e.Order
	o.ArrivalTime = sim.Clock
	o.State = StateArrived
	sim.Orders = append(sim.Orders, o)
	sim.Metrics.recordArrival(sim.Clock)
	sim.orderLog(o, StageMixing).Infof("%.2f: %s (batch for %d bottles) arrives at the factory.", sim.Clock, o.Name, o.Bottles)
	sim.requestStage(o, StageMixing)
}

// StageGrantEvent resumes an order once a station server has been granted to it.
type StageGrantEvent struct {
	Order *Order
	Stage Stage
}

// Execute records the wait and starts processing for a sampled duration.
func (e *StageGrantEvent) Execute(sim *Simulator) {
	o, stage := e.Order, e.Stage
	o.GrantedAt[stage] = sim.Clock
	wait := o.Wait(stage)
	sim.Metrics.recordWait(stage, wait)
	o.State = ActiveState(stage)

	d := sim.sampleDuration(stage)
	o.Durations[stage] = d
	sim.orderLog(o, stage).Infof("%.2f: %s seizes %s. Waited %.2f min.", sim.Clock, o.Name, stage.Label(), wait)
	sim.mustSchedule(d, &StageCompleteEvent{Order: o, Stage: stage})
}

func (e *StageGrantEvent) String() string {
	return fmt.Sprintf("grant(%d@%s)", e.Order.ID, e.Stage)
}

// StageCompleteEvent fires when an order finishes processing at a station.
type StageCompleteEvent struct {
	Order *Order
	Stage Stage
}

// Execute counts the completion, credits bottles at Packaging, releases the
// server and advances the order to the next stage or out of the factory.
func (e *StageCompleteEvent) Execute(sim *Simulator) {
	o, stage := e.Order, e.Stage
	o.CompletedAt[stage] = sim.Clock
	sim.Metrics.StageCompleted[stage]++
	if stage == StagePackaging {
		// sole mutation point of the production counter
		sim.Metrics.BottlesProduced += o.Bottles
	}
	sim.Trace.RecordStage(trace.StageRecord{
		OrderID:     o.ID,
		Stage:       stage.String(),
		RequestedAt: o.RequestedAt[stage],
		GrantedAt:   o.GrantedAt[stage],
		CompletedAt: o.CompletedAt[stage],
	})
	if err := sim.Stations[stage].Release(sim); err != nil {
		panic(fmt.Sprintf("%s at t=%.4f: %v", o.Name, sim.Clock, err))
	}

	log := sim.orderLog(o, stage)
	if stage == StagePackaging {
		log.Infof("%.2f: %s finishes packaging. Bottles from this order: %d. Total bottles produced: %d.",
			sim.Clock, o.Name, o.Bottles, sim.Metrics.BottlesProduced)
	} else {
		log.Infof("%.2f: %s finishes %s.", sim.Clock, o.Name, stage.Label())
	}

	if next, ok := stage.Next(); ok {
		sim.requestStage(o, next)
		return
	}
	sim.depart(o)
}

func (sim *Simulator) depart(o *Order) {
	o.State = StateDeparted
	o.DepartureTime = sim.Clock
	sim.Metrics.recordDeparture(sim.Clock, o.CycleTime())
	sim.Trace.RecordDeparture(trace.DepartureRecord{
		OrderID:      o.ID,
		Clock:        sim.Clock,
		CycleTime:    o.CycleTime(),
		BottlesTotal: sim.Metrics.BottlesProduced,
	})
	sim.log.WithField("order", o.ID).Infof("%.2f: %s departs the factory. Total time in system: %.2f min.",
		sim.Clock, o.Name, o.CycleTime())
}

func (sim *Simulator) orderLog(o *Order, stage Stage) *logrus.Entry {
	return sim.log.WithFields(logrus.Fields{"order": o.ID, "stage": stage.String()})
}
