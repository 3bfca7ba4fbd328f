package models

// WagerState represents the state of a wager
type WagerState string

const (
	WagerStatePending WagerState = "Pendiente"
	WagerStateWon     WagerState = "Ganada"
	WagerStateLost    WagerState = "Perdida"
)

// Valid reports whether the state is one of the known values.
func (s WagerState) Valid() bool {
	switch s {
	case WagerStatePending, WagerStateWon, WagerStateLost:
		return true
	}
	return false
}

// Wager represents a single bet placed by a bettor on a tournament outcome.
type Wager struct {
	ID             string     `json:"-"`
	BettorID       string     `json:"Apostador_ID"`
	BettorName     string     `json:"Apostador_Nombre,omitempty"`
	Tournament     string     `json:"Torneo"`
	WagerType      string     `json:"Tipo_Apuesta"`
	Description    string     `json:"Descripcion,omitempty"`
	Amount         float64    `json:"Monto"`
	Odds           float64    `json:"Odds"`
	ExpectedResult string     `json:"Resultado_Esperado,omitempty"`
	State          WagerState `json:"Estado"`
	CreatedAt      string     `json:"Fecha_Creacion,omitempty"`
	ResolvedAt     string     `json:"Fecha_Resolucion,omitempty"`
	// PotentialGain is Amount*Odds evaluated at creation and never
	// recomputed, even if Amount or Odds are edited later.
	PotentialGain float64 `json:"Ganancia_Potencial"`
	// RealizedGain is 0 while pending, Amount*Odds when won and -Amount
	// when lost.
	RealizedGain float64 `json:"Ganancia_Real"`
}

// IsResolved checks whether the wager has left the pending state.
func (w *Wager) IsResolved() bool {
	return w.State == WagerStateWon || w.State == WagerStateLost
}

// WagerCreate is the payload for creating a wager. Timestamps and the two
// gain fields are computed by the service.
type WagerCreate struct {
	BettorID       string     `json:"Apostador_ID"`
	Tournament     string     `json:"Torneo"`
	WagerType      string     `json:"Tipo_Apuesta"`
	Description    string     `json:"Descripcion,omitempty"`
	Amount         float64    `json:"Monto"`
	Odds           float64    `json:"Odds"`
	ExpectedResult string     `json:"Resultado_Esperado,omitempty"`
	State          WagerState `json:"Estado,omitempty"`
}

// WagerUpdate is a partial wager update. BettorName, ResolvedAt and
// RealizedGain are filled in by the service on state transitions and owner
// changes, never by callers.
type WagerUpdate struct {
	BettorID       *string     `json:"Apostador_ID,omitempty"`
	BettorName     *string     `json:"Apostador_Nombre,omitempty"`
	Tournament     *string     `json:"Torneo,omitempty"`
	WagerType      *string     `json:"Tipo_Apuesta,omitempty"`
	Description    *string     `json:"Descripcion,omitempty"`
	Amount         *float64    `json:"Monto,omitempty"`
	Odds           *float64    `json:"Odds,omitempty"`
	ExpectedResult *string     `json:"Resultado_Esperado,omitempty"`
	State          *WagerState `json:"Estado,omitempty"`
	ResolvedAt     *string     `json:"Fecha_Resolucion,omitempty"`
	RealizedGain   *float64    `json:"Ganancia_Real,omitempty"`
}

// WagerFilter narrows wager listings. State and BettorID are combined into
// a server-side formula; both are known text columns so no fallback probing
// is needed here.
type WagerFilter struct {
	State    *WagerState
	BettorID string
}
