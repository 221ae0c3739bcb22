package client

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/distbank/platform/internal/domain"
	"github.com/distbank/platform/internal/logging"
	"github.com/distbank/platform/internal/metrics"
)

// State is the offline queue's explicit state, replacing an implicit
// sleep-loop retry with something tests can drive deterministically
// (spec.md §9 REDESIGN FLAGS).
type State int

const (
	StateIdle State = iota
	StateDraining
	StateCoolingDown
)

func (s State) String() string {
	switch s {
	case StateDraining:
		return "draining"
	case StateCoolingDown:
		return "cooling_down"
	default:
		return "idle"
	}
}

// Outcome is the eventual result of a submitted payment, whether it was
// sent immediately or retried off the offline queue.
type Outcome struct {
	Success bool
	Message string
	Err     error // non-nil if every retry attempt hit a transport error, or if Client.SubmitPayment found no session key for the sender
}

// Sender abstracts "send this payment to the gateway" so the queue can be
// tested without a real network connection.
type Sender interface {
	SendPayment(ctx context.Context, req domain.TransactionRequest) (success bool, message string, err error)
}

type queueItem struct {
	req           domain.TransactionRequest
	attempts      int
	needsCooldown bool // true after any failed attempt, including the one that enqueued it
	outcome       chan Outcome
}

// Queue is the client-side FIFO of payments that failed to reach the
// gateway with a transport error, per spec.md §4.3. Submissions are
// retried in strict FIFO order; a later payment is never sent ahead of
// an earlier one still queued.
type Queue struct {
	mu    sync.Mutex
	items []*queueItem
	state State

	sender      Sender
	clock       Clock
	cooldown    time.Duration
	maxAttempts int
	log         *logging.Logger
	metrics     *metrics.Collector

	wake chan struct{}
	done chan struct{}
}

// Config bundles Queue construction options.
type Config struct {
	Sender      Sender
	Clock       Clock // nil -> RealClock()
	Cooldown    time.Duration
	MaxAttempts int // reference value: 5
	Logger      *logging.Logger
	Metrics     *metrics.Collector // nil -> queue depth goes unrecorded
}

func NewQueue(cfg Config) *Queue {
	clock := cfg.Clock
	if clock == nil {
		clock = RealClock()
	}
	cooldown := cfg.Cooldown
	if cooldown == 0 {
		cooldown = 5 * time.Second
	}
	maxAttempts := cfg.MaxAttempts
	if maxAttempts == 0 {
		maxAttempts = 5
	}
	log := cfg.Logger
	if log == nil {
		log = logging.NewNoOp()
	}

	q := &Queue{
		sender:      cfg.Sender,
		clock:       clock,
		cooldown:    cooldown,
		maxAttempts: maxAttempts,
		log:         log.Named("offline_queue"),
		metrics:     cfg.Metrics,
		wake:        make(chan struct{}, 1),
		done:        make(chan struct{}),
	}
	go q.run()
	return q
}

func (q *Queue) recordDepth() {
	if q.metrics == nil {
		return
	}
	q.metrics.RecordQueueDepth(q.Depth())
}

// Close stops the queue's background drain loop. Payments still queued
// at the time of Close never deliver an outcome.
func (q *Queue) Close() {
	close(q.done)
}

// State reports the queue's current state, for tests and diagnostics.
func (q *Queue) State() State {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.state
}

// Depth reports the number of payments waiting in the queue.
func (q *Queue) Depth() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

// Submit sends req immediately if the queue is idle; otherwise (or on a
// transport failure) it enqueues req and returns a channel that receives
// its eventual outcome once sent or dropped.
func (q *Queue) Submit(ctx context.Context, req domain.TransactionRequest) <-chan Outcome {
	q.mu.Lock()
	canSendDirectly := len(q.items) == 0 && q.state == StateIdle
	q.mu.Unlock()

	if canSendDirectly {
		success, message, err := q.sender.SendPayment(ctx, req)
		if err == nil {
			out := make(chan Outcome, 1)
			out <- Outcome{Success: success, Message: message}
			return out
		}
		q.log.Warn("transport error submitting payment, enqueueing", zap.String("txn_id", req.TxnID), zap.Error(err))
		item := &queueItem{req: req, attempts: 1, needsCooldown: true, outcome: make(chan Outcome, 1)}
		q.mu.Lock()
		q.items = append(q.items, item)
		q.state = StateCoolingDown
		q.mu.Unlock()
		q.recordDepth()
		q.signal()
		return item.outcome
	}

	item := &queueItem{req: req, outcome: make(chan Outcome, 1)}
	q.mu.Lock()
	q.items = append(q.items, item)
	if q.state == StateIdle {
		q.state = StateCoolingDown
	}
	q.mu.Unlock()
	q.recordDepth()
	q.signal()
	return item.outcome
}

func (q *Queue) signal() {
	select {
	case q.wake <- struct{}{}:
	default:
	}
}

// run drives the FIFO drain loop: send the head, and on success keep
// opportunistically draining; on transport failure wait out the cooldown
// before retrying the same head, up to maxAttempts.
func (q *Queue) run() {
	ctx := context.Background()
	for {
		q.mu.Lock()
		if len(q.items) == 0 {
			q.state = StateIdle
			q.mu.Unlock()
			select {
			case <-q.wake:
			case <-q.done:
				return
			}
			continue
		}
		head := q.items[0]
		q.mu.Unlock()

		if head.needsCooldown {
			q.mu.Lock()
			q.state = StateCoolingDown
			q.mu.Unlock()
			select {
			case <-q.clock.After(q.cooldown):
			case <-q.done:
				return
			}
			head.needsCooldown = false
		}

		q.mu.Lock()
		q.state = StateDraining
		q.mu.Unlock()

		success, message, err := q.sender.SendPayment(ctx, head.req)
		if err != nil {
			head.attempts++
			head.needsCooldown = true
			if head.attempts >= q.maxAttempts {
				q.mu.Lock()
				q.items = q.items[1:]
				q.mu.Unlock()
				q.recordDepth()
				q.log.Warn("dropping payment after exhausting retries",
					zap.String("txn_id", head.req.TxnID), zap.Int("attempts", head.attempts))
				head.outcome <- Outcome{Success: false, Message: "dropped after max retry attempts", Err: err}
			}
			continue
		}

		q.mu.Lock()
		q.items = q.items[1:]
		q.mu.Unlock()
		q.recordDepth()
		head.outcome <- Outcome{Success: success, Message: message}
	}
}
