// Package delay provides fixed-capacity ring buffers for look-ahead
// processing.
//
// A [Ring] of capacity N acts as an N-sample delay line: every [Ring.Push]
// stores a new value and returns the value stored N pushes earlier. Missing
// history at start-up reads as the zero value. Storage is allocated only by
// [New] and [Ring.Resize], never by Push, so a Ring is safe to drive from a
// real-time streaming loop.
package delay
