// Package donor contiene las reglas de elegibilidad de donantes
// (servicio de dominio, sin dependencias de infraestructura).
package donor

import (
	"time"

	"github.com/jhoicas/hemocentro-api/internal/domain/entity"
)

// Valores por defecto de las reglas de elegibilidad.
const (
	DefaultMinAge       = 18
	DefaultCooldownDays = 120 // días mínimos entre donaciones
)

// Rules parametriza la evaluación de elegibilidad.
type Rules struct {
	MinAge       int
	CooldownDays int
}

// DefaultRules devuelve las reglas con los valores por defecto.
func DefaultRules() Rules {
	return Rules{MinAge: DefaultMinAge, CooldownDays: DefaultCooldownDays}
}

// Age calcula la edad en años cumplidos a la fecha dada.
func Age(dob, at time.Time) int {
	years := at.Year() - dob.Year()
	anniversary := dob.AddDate(years, 0, 0)
	if anniversary.After(at) {
		years--
	}
	return years
}

// IsEligible evalúa si el donante puede donar en la fecha dada:
// edad mínima cumplida y período de espera desde su última donación.
func (r Rules) IsEligible(d *entity.Donor, at time.Time) bool {
	if d == nil || d.Status != entity.DonorStatusActive {
		return false
	}
	if Age(d.DOB, at) < r.MinAge {
		return false
	}
	if d.LastDonationDate != nil {
		nextAllowed := d.LastDonationDate.AddDate(0, 0, r.CooldownDays)
		if at.Before(nextAllowed) {
			return false
		}
	}
	return true
}
