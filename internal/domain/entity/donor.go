package entity

import "time"

// Estados de un donante.
const (
	DonorStatusActive   = "active"
	DonorStatusInactive = "inactive"
)

// Donor representa un donante registrado en el banco de sangre.
type Donor struct {
	ID               string
	Name             string
	Phone            string
	Email            string
	City             string
	Address          string
	Gender           string // Male, Female, Other
	DOB              time.Time
	BloodType        BloodGroup
	MedicalHistory   string
	LastDonationDate *time.Time // nil si nunca ha donado
	Status           string     // active, inactive
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
