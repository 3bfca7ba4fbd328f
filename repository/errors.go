package repository

// ReferentialIntegrityError blocks an operation that would orphan dependent
// records. It carries a machine-checkable code so callers can distinguish it
// from transport failures.
type ReferentialIntegrityError struct {
	Code    string
	Message string
}

func (e *ReferentialIntegrityError) Error() string {
	return e.Message
}

// ErrBettorHasWagers is returned when deleting a bettor that still has
// wagers referencing it. Reassign or delete those wagers first.
var ErrBettorHasWagers = &ReferentialIntegrityError{
	Code:    "APOSTADOR_HAS_BETS",
	Message: "bettor still has wagers attached; reassign or delete them first",
}
