package models

// PenaltyState represents the payment state of a bocana
type PenaltyState string

const (
	PenaltyStatePending PenaltyState = "Pendiente"
	PenaltyStatePaid    PenaltyState = "Pagada"
)

// Valid reports whether the state is one of the known values.
func (s PenaltyState) Valid() bool {
	return s == PenaltyStatePending || s == PenaltyStatePaid
}

// PenaltyType is the bowling performance violation that triggered the bocana.
type PenaltyType string

const (
	PenaltyTypeAverage  PenaltyType = "Promedio"
	PenaltyTypeGutter   PenaltyType = "Canal"
	PenaltyTypeStrike   PenaltyType = "Strike"
	PenaltyTypeUnder140 PenaltyType = "Menor a 140"
	PenaltyTypeUnder100 PenaltyType = "Menor a 100"
)

// Valid reports whether the type is one of the known values.
func (t PenaltyType) Valid() bool {
	switch t {
	case PenaltyTypeAverage, PenaltyTypeGutter, PenaltyTypeStrike, PenaltyTypeUnder140, PenaltyTypeUnder100:
		return true
	}
	return false
}

// Tournament is the league season a record belongs to.
type Tournament string

const (
	TournamentX   Tournament = "X Empresarial"
	TournamentXI  Tournament = "XI Empresarial"
	TournamentXII Tournament = "XII Empresarial"
)

// Valid reports whether the tournament is one of the known seasons.
func (t Tournament) Valid() bool {
	return t == TournamentX || t == TournamentXI || t == TournamentXII
}

// Penalty represents a food-payment obligation ("bocana") owed by a player.
// The relation field holding the player reference varies between schema
// versions, so PlayerID is resolved by the repository rather than decoded
// from a fixed column.
type Penalty struct {
	ID         string       `json:"-"`
	PlayerID   string       `json:"-"`
	PlayerName string       `json:"Jugador_Nombre,omitempty"`
	Round      int          `json:"Jornada"`
	Type       PenaltyType  `json:"Tipo"`
	State      PenaltyState `json:"Status"`
	Tournament Tournament   `json:"Torneo"`
	// Food is free text for forward compatibility; the recommended values
	// list is advisory only. Empty while pending, set once paid.
	Food      string `json:"Comida,omitempty"`
	CreatedAt string `json:"creacion,omitempty"`
}

// PenaltyCreate is the payload for creating a bocana. Food is normally left
// empty at creation and set together with the transition to paid.
type PenaltyCreate struct {
	PlayerID   string       `json:"-"`
	Round      int          `json:"Jornada"`
	Type       PenaltyType  `json:"Tipo"`
	State      PenaltyState `json:"Status,omitempty"`
	Tournament Tournament   `json:"Torneo"`
	Food       string       `json:"Comida,omitempty"`
}

// PenaltyUpdate is a partial bocana update. Setting PlayerID triggers
// relation-field fallback probing in the repository.
type PenaltyUpdate struct {
	PlayerID   *string       `json:"-"`
	Round      *int          `json:"Jornada,omitempty"`
	Type       *PenaltyType  `json:"Tipo,omitempty"`
	State      *PenaltyState `json:"Status,omitempty"`
	Tournament *Tournament   `json:"Torneo,omitempty"`
	Food       *string       `json:"Comida,omitempty"`
}

// PenaltyFilter narrows bocana listings. State, Tournament and Round go
// server-side; the player filter is a post-fetch predicate, never a server
// predicate, because the relation column name is not statically known.
type PenaltyFilter struct {
	State      *PenaltyState
	Tournament *Tournament
	Round      *int
	PlayerID   string
	PlayerName string
}
