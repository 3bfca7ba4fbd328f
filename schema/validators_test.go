package schema

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"boliche/models"
)

func assertViolation(t *testing.T, err error, field string) {
	t.Helper()
	require.Error(t, err)
	var v *ValidationError
	require.ErrorAs(t, err, &v)
	assert.Equal(t, field, v.Field)
}

func TestValidateBettorCreate(t *testing.T) {
	assert.NoError(t, ValidateBettorCreate(&models.BettorCreate{Name: "Ana", Email: "ana@example.com"}))
	assert.NoError(t, ValidateBettorCreate(&models.BettorCreate{Name: "Ana"}), "email is optional")

	assertViolation(t, ValidateBettorCreate(&models.BettorCreate{Name: "  "}), "Nombre")
	assertViolation(t, ValidateBettorCreate(&models.BettorCreate{Name: "Ana", Email: "not-an-email"}), "Email")
	assertViolation(t, ValidateBettorCreate(&models.BettorCreate{Name: "Ana", Email: "a b@example.com"}), "Email")
}

func TestValidateBettorUpdate(t *testing.T) {
	name := "Ana"
	empty := "  "
	badEmail := "nope"

	assert.NoError(t, ValidateBettorUpdate(&models.BettorUpdate{Name: &name}))
	assert.NoError(t, ValidateBettorUpdate(&models.BettorUpdate{}), "empty patch is valid")

	assertViolation(t, ValidateBettorUpdate(&models.BettorUpdate{Name: &empty}), "Nombre")
	assertViolation(t, ValidateBettorUpdate(&models.BettorUpdate{Email: &badEmail}), "Email")
}

func TestValidateWagerCreate(t *testing.T) {
	valid := func() *models.WagerCreate {
		return &models.WagerCreate{
			BettorID:   "rec123",
			Tournament: "XII Empresarial",
			WagerType:  "Campeon",
			Amount:     100,
			Odds:       1.5,
		}
	}
	assert.NoError(t, ValidateWagerCreate(valid()))

	in := valid()
	in.BettorID = ""
	assertViolation(t, ValidateWagerCreate(in), "Apostador_ID")

	in = valid()
	in.Tournament = "  "
	assertViolation(t, ValidateWagerCreate(in), "Torneo")

	in = valid()
	in.WagerType = ""
	assertViolation(t, ValidateWagerCreate(in), "Tipo_Apuesta")

	in = valid()
	in.Amount = -5
	assertViolation(t, ValidateWagerCreate(in), "Monto")

	in = valid()
	in.Amount = math.NaN()
	assertViolation(t, ValidateWagerCreate(in), "Monto")

	in = valid()
	in.Odds = 0
	assertViolation(t, ValidateWagerCreate(in), "Odds")

	in = valid()
	in.Odds = math.Inf(1)
	assertViolation(t, ValidateWagerCreate(in), "Odds")

	in = valid()
	in.State = "Cancelada"
	assertViolation(t, ValidateWagerCreate(in), "Estado")
}

func TestValidateWagerCreateDefaultsStateToPending(t *testing.T) {
	in := &models.WagerCreate{
		BettorID:   "rec123",
		Tournament: "XII Empresarial",
		WagerType:  "Campeon",
		Amount:     100,
		Odds:       1.5,
	}
	require.NoError(t, ValidateWagerCreate(in))
	assert.Equal(t, models.WagerStatePending, in.State)
}

func TestValidateWagerUpdate(t *testing.T) {
	amount := 50.0
	badAmount := math.Inf(-1)
	badOdds := -1.0
	emptyOwner := " "
	badState := models.WagerState("Anulada")

	assert.NoError(t, ValidateWagerUpdate(&models.WagerUpdate{Amount: &amount}))
	assert.NoError(t, ValidateWagerUpdate(&models.WagerUpdate{}))

	assertViolation(t, ValidateWagerUpdate(&models.WagerUpdate{BettorID: &emptyOwner}), "Apostador_ID")
	assertViolation(t, ValidateWagerUpdate(&models.WagerUpdate{Amount: &badAmount}), "Monto")
	assertViolation(t, ValidateWagerUpdate(&models.WagerUpdate{Odds: &badOdds}), "Odds")
	assertViolation(t, ValidateWagerUpdate(&models.WagerUpdate{State: &badState}), "Estado")
}

func TestValidatePenaltyCreate(t *testing.T) {
	valid := func() *models.PenaltyCreate {
		return &models.PenaltyCreate{
			PlayerID:   "rec123",
			Round:      1,
			Type:       models.PenaltyTypeGutter,
			Tournament: models.TournamentXII,
		}
	}

	in := valid()
	require.NoError(t, ValidatePenaltyCreate(in))
	assert.Equal(t, models.PenaltyStatePending, in.State, "state defaults to pending")

	in = valid()
	in.PlayerID = ""
	assertViolation(t, ValidatePenaltyCreate(in), "Jugador_ID")

	in = valid()
	in.Round = 0
	assertViolation(t, ValidatePenaltyCreate(in), "Jornada")

	in = valid()
	in.Type = "Spare"
	assertViolation(t, ValidatePenaltyCreate(in), "Tipo")

	in = valid()
	in.State = "Condonada"
	assertViolation(t, ValidatePenaltyCreate(in), "Status")

	in = valid()
	in.Tournament = "IX Empresarial"
	assertViolation(t, ValidatePenaltyCreate(in), "Torneo")
}

func TestValidatePenaltyUpdate(t *testing.T) {
	round := 2
	badRound := 0
	food := "Pizza"
	emptyFood := "  "
	badType := models.PenaltyType("Spare")

	assert.NoError(t, ValidatePenaltyUpdate(&models.PenaltyUpdate{Round: &round, Food: &food}))
	assert.NoError(t, ValidatePenaltyUpdate(&models.PenaltyUpdate{}))

	assertViolation(t, ValidatePenaltyUpdate(&models.PenaltyUpdate{Round: &badRound}), "Jornada")
	assertViolation(t, ValidatePenaltyUpdate(&models.PenaltyUpdate{Type: &badType}), "Tipo")
	assertViolation(t, ValidatePenaltyUpdate(&models.PenaltyUpdate{Food: &emptyFood}), "Comida")
}
