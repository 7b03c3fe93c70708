package meteor

import (
	"container/heap"
	"time"

	"github.com/oklog/ulid/v2"
)

type expiry struct {
	at time.Time
	id ulid.ULID
}

// expiryQueue is a min-heap of pending removals ordered by time.
type expiryQueue []expiry

func (q expiryQueue) Len() int { return len(q) }

func (q expiryQueue) Less(i, j int) bool {
	if q[i].at.Equal(q[j].at) {
		return q[i].id.Compare(q[j].id) < 0
	}
	return q[i].at.Before(q[j].at)
}

func (q expiryQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

func (q *expiryQueue) Push(x any) { *q = append(*q, x.(expiry)) }

func (q *expiryQueue) Pop() any {
	old := *q
	n := len(old)
	item := old[n-1]
	*q = old[:n-1]
	return item
}

func (q *expiryQueue) schedule(at time.Time, id ulid.ULID) {
	heap.Push(q, expiry{at: at, id: id})
}

// due pops and returns the ids whose removal time is at or before now.
func (q *expiryQueue) due(now time.Time) []ulid.ULID {
	var ids []ulid.ULID
	for q.Len() > 0 && !(*q)[0].at.After(now) {
		ids = append(ids, heap.Pop(q).(expiry).id)
	}
	return ids
}
