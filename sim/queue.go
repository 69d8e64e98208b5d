// Implements the ArrivalQueue, the per-server FIFO of waiting customers.
// Customers are enqueued when they arrive at a busy server.

package sim

import (
	"fmt"
	"strings"
)

// ArrivalQueue is a FIFO queue of arrival timestamps. Each server owns one;
// it models the customers waiting for that server, recorded by the simulated
// time at which they arrived so their delay can be computed at departure.
type ArrivalQueue struct {
	queue []float64 // FIFO queue of arrival times
}

// Enqueue adds an arrival timestamp to the back of the queue.
func (aq *ArrivalQueue) Enqueue(arrivedAt float64) {
	aq.queue = append(aq.queue, arrivedAt)
}

// Len returns the number of waiting customers.
func (aq *ArrivalQueue) Len() int {
	return len(aq.queue)
}

// Peek returns the arrival time at the front of the queue without removing
// it. The second return value is false if the queue is empty.
func (aq *ArrivalQueue) Peek() (float64, bool) {
	if len(aq.queue) == 0 {
		return 0, false
	}
	return aq.queue[0], true
}

// Dequeue removes and returns the oldest arrival timestamp. The departure
// handler only pops after checking occupancy, so an empty pop is a defect in
// the handler logic and panics rather than returning a sentinel.
func (aq *ArrivalQueue) Dequeue() float64 {
	if len(aq.queue) == 0 {
		panic("Dequeue: arrival queue is empty")
	}
	oldest := aq.queue[0]
	aq.queue = aq.queue[1:]
	return oldest
}

func (aq *ArrivalQueue) String() string {
	var sb strings.Builder
	sb.WriteString("[")
	for i, t := range aq.queue {
		sb.WriteString(fmt.Sprintf("%.4f", t))
		if i < len(aq.queue)-1 {
			sb.WriteString(" ")
		}
	}
	sb.WriteString("]")
	return sb.String()
}
