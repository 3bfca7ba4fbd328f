package models

// Stats is the dashboard rollup computed from the full bettor and wager
// collections.
type Stats struct {
	TotalBettors         int
	ActiveBettors        int
	TotalWagers          int
	PendingWagers        int
	WonWagers            int
	LostWagers           int
	TotalAmountWagered   float64
	PendingAmount        float64
	PendingPotentialGain float64
	TotalRealizedGain    float64
}
