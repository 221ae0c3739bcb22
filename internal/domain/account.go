package domain

import (
	"github.com/shopspring/decimal"
)

// Account represents a bank account entity in the domain layer.
// Adheres to the data model defined in spec.md §3.
type Account struct {
	AccountID  string
	Username   string
	Password   string // stored only to verify LoginAccount credentials; never transmitted after registration
	Balance    decimal.Decimal
	SessionKey string
}

// Role describes which side(s) of a transfer this bank plays for a given
// txn_id. Both bits may be set for an intra-bank transfer — see spec.md §9
// Open Question 2, which requires Abort and Commit to treat the composite
// case symmetrically instead of one role silently overwriting the other.
type Role int

const (
	RoleNone      Role = 0
	RoleSender    Role = 1 << 0
	RoleRecipient Role = 1 << 1
)

func (r Role) Has(bit Role) bool { return r&bit != 0 }

// PreparedEntry is a participant's per-transaction record of its role and
// reserved amount, held between Prepare and Commit/Abort. Adheres to
// spec.md §3.
type PreparedEntry struct {
	TxnID          string
	Role           Role
	ReservedAmount decimal.Decimal
	FromAccount    string
	ToAccount      string
}
