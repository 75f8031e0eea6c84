package donor

import (
	"regexp"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/hemocentro-api/internal/application/dto"
	"github.com/jhoicas/hemocentro-api/internal/domain"
	donordomain "github.com/jhoicas/hemocentro-api/internal/domain/donor"
	"github.com/jhoicas/hemocentro-api/internal/domain/entity"
	"github.com/jhoicas/hemocentro-api/internal/domain/repository"
)

const dateLayout = "2006-01-02"

// Validaciones de formato de los datos de contacto del donante.
var (
	emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	phoneRegex = regexp.MustCompile(`^01[3-9]\d{8}$`)
)

// DonorUseCase casos de uso CRUD de donantes con reglas de elegibilidad.
type DonorUseCase struct {
	repo  repository.DonorRepository
	rules donordomain.Rules
}

// NewDonorUseCase construye el caso de uso con las reglas indicadas.
func NewDonorUseCase(repo repository.DonorRepository, rules donordomain.Rules) *DonorUseCase {
	return &DonorUseCase{repo: repo, rules: rules}
}

// Create registra un nuevo donante. Valida campos obligatorios, formato de
// email/teléfono, grupo sanguíneo y edad mínima.
func (uc *DonorUseCase) Create(in dto.CreateDonorRequest) (*dto.DonorResponse, error) {
	if in.Name == "" || in.Phone == "" || in.Email == "" || in.City == "" ||
		in.Address == "" || in.Gender == "" || in.DOB == "" || in.BloodType == "" {
		return nil, domain.ErrInvalidInput
	}
	if !emailRegex.MatchString(in.Email) || !phoneRegex.MatchString(in.Phone) {
		return nil, domain.ErrInvalidInput
	}
	bloodType, ok := entity.ParseBloodGroup(in.BloodType)
	if !ok {
		return nil, domain.ErrInvalidInput
	}
	dob, err := time.Parse(dateLayout, in.DOB)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	if donordomain.Age(dob, now) < uc.rules.MinAge {
		return nil, domain.ErrNotEligible
	}
	var lastDonation *time.Time
	if in.LastDonationDate != "" {
		d, err := time.Parse(dateLayout, in.LastDonationDate)
		if err != nil {
			return nil, domain.ErrInvalidInput
		}
		lastDonation = &d
	}
	status := in.Status
	if status == "" {
		status = entity.DonorStatusActive
	}
	d := &entity.Donor{
		ID:               uuid.New().String(),
		Name:             in.Name,
		Phone:            in.Phone,
		Email:            in.Email,
		City:             in.City,
		Address:          in.Address,
		Gender:           in.Gender,
		DOB:              dob,
		BloodType:        bloodType,
		MedicalHistory:   in.MedicalHistory,
		LastDonationDate: lastDonation,
		Status:           status,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := uc.repo.Create(d); err != nil {
		return nil, err
	}
	return uc.toResponse(d), nil
}

// GetByID obtiene un donante por ID.
func (uc *DonorUseCase) GetByID(id string) (*dto.DonorResponse, error) {
	d, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, domain.ErrNotFound
	}
	return uc.toResponse(d), nil
}

// Update modifica los campos de contacto/estado de un donante. Los campos
// vacíos del request no se tocan; DOB, género y grupo sanguíneo son inmutables.
func (uc *DonorUseCase) Update(id string, in dto.UpdateDonorRequest) (*dto.DonorResponse, error) {
	d, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, domain.ErrNotFound
	}
	if in.Phone != "" {
		if !phoneRegex.MatchString(in.Phone) {
			return nil, domain.ErrInvalidInput
		}
		d.Phone = in.Phone
	}
	if in.Email != "" {
		if !emailRegex.MatchString(in.Email) {
			return nil, domain.ErrInvalidInput
		}
		d.Email = in.Email
	}
	if in.Name != "" {
		d.Name = in.Name
	}
	if in.City != "" {
		d.City = in.City
	}
	if in.Address != "" {
		d.Address = in.Address
	}
	if in.MedicalHistory != "" {
		d.MedicalHistory = in.MedicalHistory
	}
	if in.LastDonationDate != "" {
		last, err := time.Parse(dateLayout, in.LastDonationDate)
		if err != nil {
			return nil, domain.ErrInvalidInput
		}
		d.LastDonationDate = &last
	}
	if in.Status != "" {
		if in.Status != entity.DonorStatusActive && in.Status != entity.DonorStatusInactive {
			return nil, domain.ErrInvalidInput
		}
		d.Status = in.Status
	}
	d.UpdatedAt = time.Now()
	if err := uc.repo.Update(d); err != nil {
		return nil, err
	}
	return uc.toResponse(d), nil
}

// Delete elimina un donante del registro.
func (uc *DonorUseCase) Delete(id string) error {
	d, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if d == nil {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(id)
}

// List devuelve donantes filtrados por grupo sanguíneo y/o ciudad.
// La ciudad se compara sin distinguir mayúsculas ni acentos.
func (uc *DonorUseCase) List(bloodType, city string, page dto.PageRequest) ([]dto.DonorResponse, error) {
	page.DefaultPage()
	filter := repository.DonorFilter{Limit: page.Limit, Offset: page.Offset}
	if bloodType != "" {
		g, ok := entity.ParseBloodGroup(bloodType)
		if !ok {
			return nil, domain.ErrInvalidInput
		}
		filter.BloodType = g
	}
	if city != "" {
		filter.CityKey = donordomain.SearchKey(city)
	}
	donors, err := uc.repo.List(filter)
	if err != nil {
		return nil, err
	}
	out := make([]dto.DonorResponse, 0, len(donors))
	for i := range donors {
		out = append(out, *uc.toResponse(&donors[i]))
	}
	return out, nil
}

func (uc *DonorUseCase) toResponse(d *entity.Donor) *dto.DonorResponse {
	return &dto.DonorResponse{
		ID:               d.ID,
		Name:             d.Name,
		Phone:            d.Phone,
		Email:            d.Email,
		City:             d.City,
		Address:          d.Address,
		Gender:           d.Gender,
		DOB:              d.DOB,
		BloodType:        d.BloodType.String(),
		MedicalHistory:   d.MedicalHistory,
		LastDonationDate: d.LastDonationDate,
		Status:           d.Status,
		Eligible:         uc.rules.IsEligible(d, time.Now()),
		CreatedAt:        d.CreatedAt,
		UpdatedAt:        d.UpdatedAt,
	}
}
