package crawler

// Task is one pending unit of crawl work: process a single album. Either
// URL or AlbumID must be set; a URL is resolved to its canonical ID when
// the task is processed. Tasks carry their target by value, so each
// queued task keeps the identity it was created with.
type Task struct {
	// URL is a raw source URL referencing an album.
	URL string
	// AlbumID is the canonical album identifier.
	AlbumID string
	// Dest overrides the configured base directory when set.
	Dest string
}

// taskQueue is a strict FIFO of crawl tasks. Processing a task may push
// further tasks; the queue has no other producers.
type taskQueue struct {
	tasks []Task
}

func newTaskQueue() *taskQueue {
	return &taskQueue{}
}

// Push appends a task to the back of the queue.
func (q *taskQueue) Push(t Task) {
	q.tasks = append(q.tasks, t)
}

// Pop removes and returns the front task. ok is false when the queue is
// empty.
func (q *taskQueue) Pop() (t Task, ok bool) {
	if len(q.tasks) == 0 {
		return Task{}, false
	}
	t = q.tasks[0]
	q.tasks = q.tasks[1:]
	return t, true
}

// Len returns the number of pending tasks.
func (q *taskQueue) Len() int {
	return len(q.tasks)
}

// seenSet is the process-wide dedup ledger of album IDs already scheduled
// or completed. It only ever grows: a single run is bounded by the finite
// album graph reachable from the seed.
type seenSet map[string]struct{}

func newSeenSet() seenSet {
	return make(seenSet)
}

// Add inserts the ID and reports whether it was new.
func (s seenSet) Add(id string) bool {
	if _, ok := s[id]; ok {
		return false
	}
	s[id] = struct{}{}
	return true
}

// Has reports whether the ID was already recorded.
func (s seenSet) Has(id string) bool {
	_, ok := s[id]
	return ok
}
