package model

import "time"

// XPBalance is the running XP total for a member.
type XPBalance struct {
	UserID    uint64    // xp_balances.user_id
	TotalXP   int       // xp_balances.total_xp
	UpdatedAt time.Time // xp_balances.updated_at
}

// XPTransaction records a single signed XP mutation.  Completing a
// mission inserts a positive row; undoing a completion inserts a
// negative row of the same magnitude.
//
// Fields:
//  ID        – primary key identifier.
//  UserID    – member whose balance changed.
//  Amount    – signed XP delta.
//  Reason    – short machine-readable cause (e.g. mission_completed).
//  Reference – identifier of the causing entity, such as a mission id.
//  CreatedAt – when the mutation happened.
type XPTransaction struct {
	ID        uint64    // xp_transactions.id
	UserID    uint64    // xp_transactions.user_id
	Amount    int       // xp_transactions.amount
	Reason    string    // xp_transactions.reason
	Reference string    // xp_transactions.reference
	CreatedAt time.Time // xp_transactions.created_at
}
