// Defines the Order struct that models one production batch in the simulation.
// Tracks arrival, per-stage request/grant/completion times, and departure.

package sim

import "fmt"

// OrderState represents where a batch is in the pipeline.
// States are strictly sequential; there is no branching, retry, or cancellation.
type OrderState int

const (
	StateArrived OrderState = iota
	StateWaitingMixing
	StateMixing
	StateWaitingFilling
	StateFilling
	StateWaitingCapping
	StateCapping
	StateWaitingLabeling
	StateLabeling
	StateWaitingPackaging
	StatePackaging
	StateDeparted
)

// WaitingState returns the state an order is in while queued for stage.
func WaitingState(stage Stage) OrderState {
	return OrderState(1 + 2*int(stage))
}

// ActiveState returns the state an order is in while being processed at stage.
func ActiveState(stage Stage) OrderState {
	return OrderState(2 + 2*int(stage))
}

func (s OrderState) String() string {
	switch {
	case s == StateArrived:
		return "arrived"
	case s == StateDeparted:
		return "departed"
	case s > StateArrived && s < StateDeparted:
		stage := Stage((int(s) - 1) / 2)
		if (int(s)-1)%2 == 0 {
			return "waiting_" + stage.String()
		}
		return stage.String()
	default:
		return fmt.Sprintf("unknown(%d)", int(s))
	}
}

// Order is a single batch. It is owned by its lifecycle events; the shared
// stations are the only state it contends on.
type Order struct {
	ID      int    // sequence number, starting at 1
	Name    string // "Order-<ID>"
	Bottles int64  // fixed yield credited at Packaging completion

	State         OrderState
	ArrivalTime   float64
	DepartureTime float64

	RequestedAt [NumStages]float64 // time the station was requested
	GrantedAt   [NumStages]float64 // time a server was granted
	CompletedAt [NumStages]float64 // time processing finished
	Durations   [NumStages]float64 // sampled processing time
}

// NewOrder creates an order in the Arrived state.
func NewOrder(id int, bottles int64, arrival float64) *Order {
	return &Order{
		ID:          id,
		Name:        fmt.Sprintf("Order-%d", id),
		Bottles:     bottles,
		State:       StateArrived,
		ArrivalTime: arrival,
	}
}

// Wait returns the request-to-grant interval at stage.
func (o *Order) Wait(stage Stage) float64 {
	return o.GrantedAt[stage] - o.RequestedAt[stage]
}

// Departed reports whether the order finished all five stages.
func (o *Order) Departed() bool {
	return o.State == StateDeparted
}

// CycleTime returns departure minus arrival. Only meaningful once departed.
func (o *Order) CycleTime() float64 {
	return o.DepartureTime - o.ArrivalTime
}

func (o Order) String() string {
	return fmt.Sprintf("Order: (ID: %d, State: %s, ArrivalTime: %.2f)", o.ID, o.State, o.ArrivalTime)
}
