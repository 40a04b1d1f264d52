package sim

import "fmt"

// Station models N identical parallel servers in front of a single FIFO wait queue.
// Grants are handed out strictly in request order; there is no priority or preemption.
//
// Invariant: 0 <= InUse() <= Capacity(), and the wait queue is non-empty only
// while every server is held.
type Station struct {
	Stage    Stage
	capacity int
	inUse    int
	waitQ    *WaitQueue

	// busy server-time integral, advanced on every change of inUse
	busyTime   float64
	lastChange float64

	// grants - releases == inUse at every instant
	grants   int
	releases int
}

// NewStation creates a station with the given number of servers.
func NewStation(stage Stage, capacity int) (*Station, error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("%w: station %s: capacity must be > 0, got %d", ErrInvalidCapacity, stage, capacity)
	}
	return &Station{
		Stage:    stage,
		capacity: capacity,
		waitQ:    &WaitQueue{},
	}, nil
}

// Capacity returns the number of servers.
func (st *Station) Capacity() int { return st.capacity }

// InUse returns the number of servers currently held (including grants
// handed off but not yet delivered).
func (st *Station) InUse() int { return st.inUse }

// QueueLen returns the number of requests waiting for a server.
func (st *Station) QueueLen() int { return st.waitQ.Len() }

// Grants returns the number of grants handed out so far.
func (st *Station) Grants() int { return st.grants }

// Releases returns the number of servers given back so far, including hand-offs.
func (st *Station) Releases() int { return st.releases }

// BusyTime returns the accumulated server-minutes up to now.
func (st *Station) BusyTime(now float64) float64 {
	return st.busyTime + float64(st.inUse)*(now-st.lastChange)
}

// Acquire requests a server on behalf of the caller. grant is delivered through the
// scheduler: immediately (at the current time) when a server is free, otherwise
// once every earlier waiter has been served and a holder releases.
func (st *Station) Acquire(sim *Simulator, grant Event) {
	if st.inUse < st.capacity {
		st.advance(sim.Clock)
		st.inUse++
		st.grants++
		sim.mustSchedule(0, grant)
		return
	}
	st.waitQ.Enqueue(grant)
}

// Release returns a server. If requests are waiting, the server passes directly
// to the longest waiter, so InUse is unchanged; otherwise InUse drops by one.
func (st *Station) Release(sim *Simulator) error {
	if st.inUse == 0 {
		return fmt.Errorf("%w: station %s has no holders", ErrInvalidRelease, st.Stage)
	}
	st.releases++
	if next := st.waitQ.Dequeue(); next != nil {
		st.grants++
		sim.mustSchedule(0, next)
		return nil
	}
	st.advance(sim.Clock)
	st.inUse--
	return nil
}

func (st *Station) advance(now float64) {
	st.busyTime += float64(st.inUse) * (now - st.lastChange)
	st.lastChange = now
}

// StationSnapshot is the state of a station at one instant.
type StationSnapshot struct {
	Stage    Stage
	Capacity int
	InUse    int
	QueueLen int
}

// Snapshot captures the station's current occupancy.
func (st *Station) Snapshot() StationSnapshot {
	return StationSnapshot{Stage: st.Stage, Capacity: st.capacity, InUse: st.inUse, QueueLen: st.waitQ.Len()}
}
