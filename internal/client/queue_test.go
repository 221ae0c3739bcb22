package client

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/distbank/platform/internal/domain"
)

// fakeClock lets tests fire cooldown timers on demand instead of waiting
// on wall-clock time, per spec.md §9's virtual-time requirement.
type fakeClock struct {
	mu      sync.Mutex
	waiters []chan time.Time
}

func newFakeClock() *fakeClock { return &fakeClock{} }

func (c *fakeClock) Now() time.Time { return time.Time{} }

func (c *fakeClock) After(d time.Duration) <-chan time.Time {
	ch := make(chan time.Time, 1)
	c.mu.Lock()
	c.waiters = append(c.waiters, ch)
	c.mu.Unlock()
	return ch
}

// Advance fires the oldest pending timer, if any.
func (c *fakeClock) Advance() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.waiters) == 0 {
		return
	}
	ch := c.waiters[0]
	c.waiters = c.waiters[1:]
	ch <- time.Time{}
}

// scriptedSender replays canned responses per txn_id, in the order they
// were pushed (succeeding once a txn_id's script runs out), and records
// every txn_id it was asked to send.
type scriptedSender struct {
	mu      sync.Mutex
	script  map[string][]scriptedResult
	calls   []string
}

type scriptedResult struct {
	success bool
	message string
	err     error
}

func newScriptedSender() *scriptedSender {
	return &scriptedSender{script: make(map[string][]scriptedResult)}
}

func (s *scriptedSender) push(txnID string, r scriptedResult) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.script[txnID] = append(s.script[txnID], r)
}

func (s *scriptedSender) SendPayment(ctx context.Context, req domain.TransactionRequest) (bool, string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, req.TxnID)
	results := s.script[req.TxnID]
	if len(results) == 0 {
		return true, "ok", nil
	}
	r := results[0]
	s.script[req.TxnID] = results[1:]
	return r.success, r.message, r.err
}

func paymentReq(txnID string) domain.TransactionRequest {
	return domain.TransactionRequest{
		TxnID: txnID, FromBank: "bank_a", FromAccount: "alice", ToBank: "bank_a", ToAccount: "bob",
		Amount: decimal.NewFromInt(10),
	}
}

func TestQueue_DirectSendWhenIdle(t *testing.T) {
	sender := newScriptedSender()
	q := NewQueue(Config{Sender: sender, Clock: newFakeClock()})
	defer q.Close()

	out := <-q.Submit(context.Background(), paymentReq("p1"))
	assert.True(t, out.Success)
	assert.Equal(t, 0, q.Depth())
}

func TestQueue_TransportFailureEnqueuesAndRetries(t *testing.T) {
	sender := newScriptedSender()
	sender.push("p1", scriptedResult{err: assertErr})
	clock := newFakeClock()
	q := NewQueue(Config{Sender: sender, Clock: clock, Cooldown: time.Millisecond})
	defer q.Close()

	ch := q.Submit(context.Background(), paymentReq("p1"))
	require.Eventually(t, func() bool { return q.Depth() == 1 }, time.Second, time.Millisecond)

	clock.Advance() // fire the cooldown timer; retry now succeeds (no more scripted errors)
	out := <-ch
	assert.True(t, out.Success)
}

func TestQueue_DropsAfterMaxAttempts(t *testing.T) {
	sender := newScriptedSender()
	for i := 0; i < 5; i++ {
		sender.push("p1", scriptedResult{err: assertErr})
	}
	clock := newFakeClock()
	q := NewQueue(Config{Sender: sender, Clock: clock, Cooldown: time.Millisecond, MaxAttempts: 5})
	defer q.Close()

	ch := q.Submit(context.Background(), paymentReq("p1"))
	for i := 0; i < 4; i++ {
		require.Eventually(t, func() bool { return q.Depth() == 1 }, time.Second, time.Millisecond)
		clock.Advance()
	}

	out := <-ch
	assert.False(t, out.Success)
	assert.Error(t, out.Err)
}

func TestQueue_FIFOOrderPreservedAcrossRetries(t *testing.T) {
	// S6: q1 fails once then succeeds, q2 and q3 are submitted while the
	// queue is non-empty and must drain strictly after q1, in order.
	sender := newScriptedSender()
	sender.push("q1", scriptedResult{err: assertErr})
	clock := newFakeClock()
	q := NewQueue(Config{Sender: sender, Clock: clock, Cooldown: time.Millisecond})
	defer q.Close()

	ch1 := q.Submit(context.Background(), paymentReq("q1"))
	require.Eventually(t, func() bool { return q.Depth() == 1 }, time.Second, time.Millisecond)

	ch2 := q.Submit(context.Background(), paymentReq("q2"))
	ch3 := q.Submit(context.Background(), paymentReq("q3"))
	require.Eventually(t, func() bool { return q.Depth() == 3 }, time.Second, time.Millisecond)

	clock.Advance()
	out1 := <-ch1
	out2 := <-ch2
	out3 := <-ch3

	assert.True(t, out1.Success)
	assert.True(t, out2.Success)
	assert.True(t, out3.Success)

	sender.mu.Lock()
	defer sender.mu.Unlock()
	require.Len(t, sender.calls, 4) // q1 fails, q1 retried, q2, q3
	assert.Equal(t, []string{"q1", "q1", "q2", "q3"}, sender.calls)
}

var assertErr = &transportErr{"simulated transport failure"}

type transportErr struct{ msg string }

func (e *transportErr) Error() string { return e.msg }
