package auth

import (
	"regexp"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/hemocentro-api/internal/application/dto"
	"github.com/jhoicas/hemocentro-api/internal/domain"
	"github.com/jhoicas/hemocentro-api/internal/domain/entity"
	"github.com/jhoicas/hemocentro-api/internal/domain/repository"
	"github.com/jhoicas/hemocentro-api/pkg/jwt"
)

// phoneRegex valida el formato de teléfono: empieza en 01 y tiene 11 dígitos.
var phoneRegex = regexp.MustCompile(`^01[3-9]\d{8}$`)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticación: registro y login por teléfono.
type AuthUseCase struct {
	userRepo repository.UserRepository
	jwtCfg   JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, jwtCfg: jwtCfg}
}

// RegisterUser crea un usuario: valida teléfono y grupo sanguíneo, hashea el
// password con bcrypt y persiste. Devuelve ErrPhoneAlreadyExists si el
// teléfono ya está registrado.
func (uc *AuthUseCase) RegisterUser(in dto.RegisterRequest) (*dto.UserResponse, error) {
	if !phoneRegex.MatchString(in.Phone) {
		return nil, domain.ErrInvalidInput
	}
	bloodType, ok := entity.ParseBloodGroup(in.BloodType)
	if !ok {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.userRepo.FindByPhone(in.Phone)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrPhoneAlreadyExists
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	name := in.Name
	if name == "" {
		name = in.Phone
	}
	role := in.Role
	if role == "" {
		role = entity.RoleDonante
	}
	user := &entity.User{
		ID:           uuid.New().String(),
		Name:         name,
		Phone:        in.Phone,
		Gender:       in.Gender,
		BloodType:    bloodType,
		PasswordHash: string(hash),
		Role:         role,
		Status:       "active",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userRepo.Create(user); err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

// Login verifica teléfono/password, genera JWT y retorna token + usuario.
func (uc *AuthUseCase) Login(in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.userRepo.FindByPhone(in.Phone)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if user.Status != "active" {
		return nil, domain.ErrForbidden
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token: token,
		User:  *toUserResponse(user),
	}, nil
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Phone:     u.Phone,
		Gender:    u.Gender,
		BloodType: u.BloodType.String(),
		Role:      u.Role,
		Status:    u.Status,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
