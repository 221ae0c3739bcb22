package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionRequest is immutable once created by the client.
// Adheres to the data model defined in spec.md §3.
type TransactionRequest struct {
	TxnID            string
	FromBank         string
	FromAccount      string
	ToBank           string
	ToAccount        string
	Amount           decimal.Decimal
	Timestamp        time.Time
	SenderSessionKey string
}

// Validate checks the structural invariants spec.md §4.2 step 2 requires
// the gateway to enforce before touching any participant.
func (t *TransactionRequest) Validate() error {
	if t.Amount.LessThanOrEqual(decimal.Zero) {
		return NewError(KindInvalidAmount, "amount must be greater than zero")
	}
	return nil
}

// BankDirectory is the gateway's static mapping from bank name to network
// address, loaded at startup and never mutated at runtime (spec.md §3).
type BankDirectory map[string]string

func (d BankDirectory) Address(bankName string) (string, bool) {
	addr, ok := d[bankName]
	return addr, ok
}
