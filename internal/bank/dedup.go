package bank

import (
	"sync"

	"github.com/bits-and-blooms/bloom/v3"
)

// txnFilter is an advisory, never-authoritative pre-check for "have we
// possibly prepared this txn_id before", consulted without acquiring the
// bank's main mutex. Seen()==false is a cheap, exact negative; Seen()==true
// is never trusted on its own — the filter is sized once at construction
// and never rotated, so its false-positive rate climbs for the life of a
// long-running process. Either way Prepare always falls through to the
// authoritative checks under mu (Bank.prepared for in-flight entries,
// Bank.finalized for entries already committed or aborted away); this
// filter only ever decides whether to log, never whether to reject.
// Grounded on hvitorino-cache-chain's pkg/cache/bloom/bloom.go
// membership-test wrapper, generalized with its own mutex (as that
// wrapper does) so it is safe to query before the caller holds any other
// lock.
type txnFilter struct {
	mu     sync.Mutex
	filter *bloom.BloomFilter
}

func newTxnFilter(expectedTxns uint) *txnFilter {
	if expectedTxns == 0 {
		expectedTxns = 10000
	}
	return &txnFilter{filter: bloom.NewWithEstimates(expectedTxns, 0.01)}
}

func (f *txnFilter) Seen(txnID string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.filter.TestString(txnID)
}

// MarkSeen records txnID as prepared. Idempotent: marking it twice is
// harmless since TestAndAdd is not required here — Prepare only calls
// this once, on the success path, under the bank's main mutex.
func (f *txnFilter) MarkSeen(txnID string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.filter.AddString(txnID)
}
