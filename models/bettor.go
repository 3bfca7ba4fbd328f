package models

// Bettor represents a league member who places wagers. The three monetary
// totals are derived from the wager set and rewritten by the reconciler
// after every wager mutation.
type Bettor struct {
	ID           string  `json:"-"`
	Name         string  `json:"Nombre"`
	Email        string  `json:"Email,omitempty"`
	Phone        string  `json:"Telefono,omitempty"`
	Active       bool    `json:"Activo"`
	RegisteredAt string  `json:"Fecha_Registro,omitempty"`
	TotalWagered float64 `json:"Total_Apostado"`
	TotalWon     float64 `json:"Total_Ganado"`
	Balance      float64 `json:"Balance"`
}

// BettorCreate is the payload for registering a bettor. Totals and the
// registration date are set by the repository.
type BettorCreate struct {
	Name   string `json:"Nombre"`
	Email  string `json:"Email,omitempty"`
	Phone  string `json:"Telefono,omitempty"`
	Active bool   `json:"-"`
}

// BettorUpdate is a partial profile update. The derived totals are not
// expressible here; only UpdateTotals can touch them.
type BettorUpdate struct {
	Name   *string `json:"Nombre,omitempty"`
	Email  *string `json:"Email,omitempty"`
	Phone  *string `json:"Telefono,omitempty"`
	Active *bool   `json:"Activo,omitempty"`
}
