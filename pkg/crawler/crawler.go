package crawler

import (
	"errors"
	"time"

	"imgurgrab/pkg/config"
	"imgurgrab/pkg/imgur"
	"imgurgrab/pkg/logger"
	"imgurgrab/pkg/ratelimit"
)

// ErrEmptyTask reports a task created with neither a URL nor an album ID.
// This is a caller defect, not a runtime condition: it propagates out of
// Run instead of being downgraded to a skipped album.
var ErrEmptyTask = errors.New("crawl task needs a source URL or an album ID")

// Crawler owns the work queue, the seen-set and the collaborators used to
// process albums. All state is confined to the single goroutine that
// calls Run.
type Crawler struct {
	client  APIClient
	cfg     *config.Config
	limiter ratelimit.Limiter
	queue   *taskQueue
	seen    seenSet
	logger  logger.Logger
}

// New creates a Crawler from the run configuration.
func New(cfg *config.Config) (*Crawler, error) {
	log := logger.GetLogger()

	client := imgur.NewClient(cfg.Imgur.ClientID, cfg.Download.Timeout, log)
	client.SetMaxRetries(cfg.Download.RetryAttempts)
	if cfg.Imgur.UserAgent != "" {
		client.SetHeader("User-Agent", cfg.Imgur.UserAgent)
	}

	return &Crawler{
		client:  client,
		cfg:     cfg,
		limiter: ratelimit.NewTokenBucket(cfg.RateLimit.RequestsPerMinute, time.Minute),
		queue:   newTaskQueue(),
		seen:    newSeenSet(),
		logger:  log,
	}, nil
}

// Client returns the underlying API client.
func (c *Crawler) Client() APIClient {
	return c.client
}

// Run seeds the queue with the given source URL and drains it to
// quiescence. Tasks execute strictly sequentially; executing one may
// enqueue more. Termination follows from seen-set monotonicity: every
// enqueue either targets an already-seen ID (a fast no-op at dequeue) or
// a new one, bounded by the finite album graph.
func (c *Crawler) Run(sourceURL string) error {
	c.queue.Push(Task{URL: sourceURL, Dest: c.cfg.Output.BaseDirectory})
	return c.drain()
}

// drain pops and executes tasks until the queue is empty.
func (c *Crawler) drain() error {
	for {
		task, ok := c.queue.Pop()
		if !ok {
			return nil
		}
		if err := c.process(task); err != nil {
			return err
		}
	}
}

// enqueueDiscovered scans free text for album references and queues one
// task per discovered ID. Already-seen IDs still enqueue; they collapse
// to no-ops when dequeued.
func (c *Crawler) enqueueDiscovered(text string) {
	for _, id := range imgur.FindAlbumIDs(text) {
		c.logger.InfoWithFields("queuing discovered album", map[string]interface{}{
			"album_id": id,
		})
		c.queue.Push(Task{AlbumID: id})
	}
}

// throttle blocks until the API rate limit admits another request.
func (c *Crawler) throttle() {
	if c.limiter.Allow() {
		return
	}
	c.logger.Warn("API rate limit reached, waiting")
	c.limiter.Wait()
}
