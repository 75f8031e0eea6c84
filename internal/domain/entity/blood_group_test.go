package entity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/hemocentro-api/internal/domain/entity"
)

func TestParseBloodGroup_ValoresValidos(t *testing.T) {
	for _, s := range []string{"A+", "A-", "B+", "B-", "AB+", "AB-", "O+", "O-"} {
		g, ok := entity.ParseBloodGroup(s)
		assert.True(t, ok, "el grupo %q debe ser válido", s)
		assert.Equal(t, s, g.String())
	}
}

func TestParseBloodGroup_ValoresInvalidos(t *testing.T) {
	for _, s := range []string{"", "C+", "a+", "O", "0+", "AB", "O +"} {
		_, ok := entity.ParseBloodGroup(s)
		assert.False(t, ok, "el valor %q no debe aceptarse como grupo sanguíneo", s)
	}
}

func TestDonationRequest_IsDecided(t *testing.T) {
	r := &entity.DonationRequest{Status: entity.RequestStatusPending}
	assert.False(t, r.IsDecided())

	r.Status = entity.RequestStatusApproved
	assert.True(t, r.IsDecided())

	r.Status = entity.RequestStatusDeclined
	assert.True(t, r.IsDecided())
}
