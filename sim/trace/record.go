// Package trace provides per-stage event recording for pipeline analysis.
// It stores plain data and does not import sim/.
package trace

// StageRecord captures one order's pass through one station.
type StageRecord struct {
	OrderID     int
	Stage       string
	RequestedAt float64 // time the station was requested
	GrantedAt   float64 // time a server was granted
	CompletedAt float64 // time processing finished and the server was released
}

// Wait returns the request-to-grant interval.
func (r StageRecord) Wait() float64 {
	return r.GrantedAt - r.RequestedAt
}

// Duration returns the processing interval.
func (r StageRecord) Duration() float64 {
	return r.CompletedAt - r.GrantedAt
}

// DepartureRecord captures an order leaving the factory after Packaging.
type DepartureRecord struct {
	OrderID      int
	Clock        float64 // departure time
	CycleTime    float64 // departure - arrival
	BottlesTotal int64   // cumulative bottles produced after this departure
}
