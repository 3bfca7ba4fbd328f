// Package schema validates and coerces payloads before any network call.
// Each validator reports the first violated constraint; a validation
// failure never reaches the record client.
package schema

import (
	"fmt"
	"math"
	"regexp"
	"strings"

	"boliche/models"
)

// ValidationError is a payload constraint violation, recoverable locally and
// never retried.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// RecommendedFoods is the advisory list of food items for paid bocanas.
// Comida stays free text for forward compatibility across schema versions.
var RecommendedFoods = []string{
	"Boneless",
	"Churrasco Bocas",
	"Paninni Churrasco",
	"Pizza",
	"Quesadilla",
}

// ValidateBettorCreate checks a new bettor payload.
func ValidateBettorCreate(in *models.BettorCreate) error {
	if strings.TrimSpace(in.Name) == "" {
		return &ValidationError{Field: "Nombre", Message: "name is required"}
	}
	if in.Email != "" && !emailPattern.MatchString(in.Email) {
		return &ValidationError{Field: "Email", Message: "malformed email address"}
	}
	return nil
}

// ValidateBettorUpdate checks a partial bettor profile update.
func ValidateBettorUpdate(in *models.BettorUpdate) error {
	if in.Name != nil && strings.TrimSpace(*in.Name) == "" {
		return &ValidationError{Field: "Nombre", Message: "name cannot be empty"}
	}
	if in.Email != nil && *in.Email != "" && !emailPattern.MatchString(*in.Email) {
		return &ValidationError{Field: "Email", Message: "malformed email address"}
	}
	return nil
}

// ValidateWagerCreate checks a new wager payload and defaults the state to
// pending.
func ValidateWagerCreate(in *models.WagerCreate) error {
	if strings.TrimSpace(in.BettorID) == "" {
		return &ValidationError{Field: "Apostador_ID", Message: "owning bettor is required"}
	}
	if strings.TrimSpace(in.Tournament) == "" {
		return &ValidationError{Field: "Torneo", Message: "tournament is required"}
	}
	if strings.TrimSpace(in.WagerType) == "" {
		return &ValidationError{Field: "Tipo_Apuesta", Message: "wager type is required"}
	}
	if err := checkAmount("Monto", in.Amount); err != nil {
		return err
	}
	if err := checkOdds("Odds", in.Odds); err != nil {
		return err
	}
	if in.State == "" {
		in.State = models.WagerStatePending
	}
	if !in.State.Valid() {
		return &ValidationError{Field: "Estado", Message: fmt.Sprintf("unknown state %q", in.State)}
	}
	return nil
}

// ValidateWagerUpdate checks a partial wager update.
func ValidateWagerUpdate(in *models.WagerUpdate) error {
	if in.BettorID != nil && strings.TrimSpace(*in.BettorID) == "" {
		return &ValidationError{Field: "Apostador_ID", Message: "owning bettor cannot be empty"}
	}
	if in.Tournament != nil && strings.TrimSpace(*in.Tournament) == "" {
		return &ValidationError{Field: "Torneo", Message: "tournament cannot be empty"}
	}
	if in.WagerType != nil && strings.TrimSpace(*in.WagerType) == "" {
		return &ValidationError{Field: "Tipo_Apuesta", Message: "wager type cannot be empty"}
	}
	if in.Amount != nil {
		if err := checkAmount("Monto", *in.Amount); err != nil {
			return err
		}
	}
	if in.Odds != nil {
		if err := checkOdds("Odds", *in.Odds); err != nil {
			return err
		}
	}
	if in.State != nil && !in.State.Valid() {
		return &ValidationError{Field: "Estado", Message: fmt.Sprintf("unknown state %q", *in.State)}
	}
	return nil
}

// ValidatePenaltyCreate checks a new bocana payload and defaults the state
// to pending.
func ValidatePenaltyCreate(in *models.PenaltyCreate) error {
	if strings.TrimSpace(in.PlayerID) == "" {
		return &ValidationError{Field: "Jugador_ID", Message: "owning player is required"}
	}
	if in.Round < 1 {
		return &ValidationError{Field: "Jornada", Message: "round number must be at least 1"}
	}
	if !in.Type.Valid() {
		return &ValidationError{Field: "Tipo", Message: fmt.Sprintf("unknown violation type %q", in.Type)}
	}
	if in.State == "" {
		in.State = models.PenaltyStatePending
	}
	if !in.State.Valid() {
		return &ValidationError{Field: "Status", Message: fmt.Sprintf("unknown state %q", in.State)}
	}
	if !in.Tournament.Valid() {
		return &ValidationError{Field: "Torneo", Message: fmt.Sprintf("unknown tournament %q", in.Tournament)}
	}
	return nil
}

// ValidatePenaltyUpdate checks a partial bocana update.
func ValidatePenaltyUpdate(in *models.PenaltyUpdate) error {
	if in.PlayerID != nil && strings.TrimSpace(*in.PlayerID) == "" {
		return &ValidationError{Field: "Jugador_ID", Message: "owning player cannot be empty"}
	}
	if in.Round != nil && *in.Round < 1 {
		return &ValidationError{Field: "Jornada", Message: "round number must be at least 1"}
	}
	if in.Type != nil && !in.Type.Valid() {
		return &ValidationError{Field: "Tipo", Message: fmt.Sprintf("unknown violation type %q", *in.Type)}
	}
	if in.State != nil && !in.State.Valid() {
		return &ValidationError{Field: "Status", Message: fmt.Sprintf("unknown state %q", *in.State)}
	}
	if in.Tournament != nil && !in.Tournament.Valid() {
		return &ValidationError{Field: "Torneo", Message: fmt.Sprintf("unknown tournament %q", *in.Tournament)}
	}
	if in.Food != nil && strings.TrimSpace(*in.Food) == "" {
		return &ValidationError{Field: "Comida", Message: "food item cannot be empty"}
	}
	return nil
}

func checkAmount(field string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return &ValidationError{Field: field, Message: "amount must be a finite number"}
	}
	if v < 0 {
		return &ValidationError{Field: field, Message: "amount cannot be negative"}
	}
	return nil
}

func checkOdds(field string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return &ValidationError{Field: field, Message: "odds must be a finite number"}
	}
	if v <= 0 {
		return &ValidationError{Field: field, Message: "odds must be positive"}
	}
	return nil
}
