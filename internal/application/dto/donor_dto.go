package dto

import "time"

// CreateDonorRequest body para POST /api/donors.
type CreateDonorRequest struct {
	Name             string `json:"name"`
	Phone            string `json:"phone"`
	Email            string `json:"email"`
	City             string `json:"city"`
	Address          string `json:"address"`
	Gender           string `json:"gender"`
	DOB              string `json:"dob"` // formato 2006-01-02
	BloodType        string `json:"blood_type"`
	MedicalHistory   string `json:"medical_history,omitempty"`
	LastDonationDate string `json:"last_donation_date,omitempty"`
	Status           string `json:"status,omitempty"`
}

// UpdateDonorRequest body para PUT /api/donors/:id. Campos vacíos no se modifican.
type UpdateDonorRequest struct {
	Name             string `json:"name,omitempty"`
	Phone            string `json:"phone,omitempty"`
	Email            string `json:"email,omitempty"`
	City             string `json:"city,omitempty"`
	Address          string `json:"address,omitempty"`
	MedicalHistory   string `json:"medical_history,omitempty"`
	LastDonationDate string `json:"last_donation_date,omitempty"`
	Status           string `json:"status,omitempty"`
}

// DonorResponse representación de un donante.
type DonorResponse struct {
	ID               string     `json:"id"`
	Name             string     `json:"name"`
	Phone            string     `json:"phone"`
	Email            string     `json:"email"`
	City             string     `json:"city"`
	Address          string     `json:"address"`
	Gender           string     `json:"gender"`
	DOB              time.Time  `json:"dob"`
	BloodType        string     `json:"blood_type"`
	MedicalHistory   string     `json:"medical_history,omitempty"`
	LastDonationDate *time.Time `json:"last_donation_date,omitempty"`
	Status           string     `json:"status"`
	Eligible         bool       `json:"eligible"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}
