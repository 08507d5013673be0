package render

import (
	"github.com/emirpasic/gods/maps/treemap"
	"github.com/npillmayer/epicycle"
)

// Trail is a bounded history of tip points. When full, the oldest point
// is dropped first.
//
// Points are stored in a sorted map, keyed by a running sequence number.
// A trail is not safe for concurrent use; it is owned by one renderer.
type Trail struct {
	points   *treemap.Map
	capacity int
	seq      int
}

// NewTrail creates a trail holding at most capacity points. A capacity
// of 0 or less disables the trail.
func NewTrail(capacity int) *Trail {
	if capacity < 0 {
		capacity = 0
	}
	return &Trail{
		points:   treemap.NewWithIntComparator(),
		capacity: capacity,
	}
}

// Push appends a point to the trail.
func (tr *Trail) Push(p epicycle.Pair) {
	if tr.capacity == 0 {
		return
	}
	tr.points.Put(tr.seq, p)
	tr.seq++
	for tr.points.Size() > tr.capacity {
		oldest, _ := tr.points.Min()
		tr.points.Remove(oldest)
	}
}

// Len returns the number of points in the trail.
func (tr *Trail) Len() int {
	return tr.points.Size()
}

// Cap returns the maximum number of points in the trail.
func (tr *Trail) Cap() int {
	return tr.capacity
}

// Points returns the points of the trail, oldest first.
func (tr *Trail) Points() []epicycle.Pair {
	pts := make([]epicycle.Pair, 0, tr.points.Size())
	it := tr.points.Iterator()
	for it.Next() {
		pts = append(pts, it.Value().(epicycle.Pair))
	}
	return pts
}

// Clear removes all points from the trail.
func (tr *Trail) Clear() {
	tr.points.Clear()
}
