package crawl

// Queue is a FIFO of URLs that accepts each URL at most once.
type Queue struct {
	items []string
	seen  map[string]struct{}
	next  int
}

// NewQueue creates an empty Queue.
func NewQueue() *Queue {
	return &Queue{seen: make(map[string]struct{})}
}

// Add enqueues u unless it was added before. It reports whether u was new.
func (q *Queue) Add(u string) bool {
	if _, ok := q.seen[u]; ok {
		return false
	}
	q.seen[u] = struct{}{}
	q.items = append(q.items, u)
	return true
}

// HasNext reports whether unvisited URLs remain.
func (q *Queue) HasNext() bool {
	return q.next < len(q.items)
}

// Next returns the oldest unvisited URL.
func (q *Queue) Next() string {
	u := q.items[q.next]
	q.next++
	return u
}

// Len is the number of distinct URLs added so far.
func (q *Queue) Len() int {
	return len(q.items)
}

// All returns every URL in insertion order.
func (q *Queue) All() []string {
	return q.items
}
