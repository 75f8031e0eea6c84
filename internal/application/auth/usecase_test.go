package auth_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/hemocentro-api/internal/application/auth"
	"github.com/jhoicas/hemocentro-api/internal/application/dto"
	"github.com/jhoicas/hemocentro-api/internal/domain"
	"github.com/jhoicas/hemocentro-api/internal/domain/entity"
)

// fakeUserRepo repositorio en memoria indexado por teléfono. findErr permite
// simular una falla de la base de datos en FindByPhone.
type fakeUserRepo struct {
	byPhone map[string]*entity.User
	findErr error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byPhone: make(map[string]*entity.User)}
}

func (r *fakeUserRepo) Create(u *entity.User) error {
	cp := *u
	r.byPhone[u.Phone] = &cp
	return nil
}

func (r *fakeUserRepo) GetByID(id string) (*entity.User, error) {
	for _, u := range r.byPhone {
		if u.ID == id {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) FindByPhone(phone string) (*entity.User, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	if u, ok := r.byPhone[phone]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, nil
}

func newAuthUC(repo *fakeUserRepo) *auth.AuthUseCase {
	return auth.NewAuthUseCase(repo, auth.JWTConfig{
		Secret:     "test-secret",
		ExpMinutes: 60,
		Issuer:     "hemocentro-test",
	})
}

func validRegister() dto.RegisterRequest {
	return dto.RegisterRequest{
		Name:      "Carlos Pérez",
		Phone:     "01712345678",
		Gender:    "M",
		BloodType: "A+",
		Password:  "secreto123",
	}
}

func TestRegisterUser_CreaUsuarioConDefaults(t *testing.T) {
	repo := newFakeUserRepo()
	uc := newAuthUC(repo)

	out, err := uc.RegisterUser(validRegister())
	require.NoError(t, err)

	assert.NotEmpty(t, out.ID)
	assert.Equal(t, entity.RoleDonante, out.Role, "el rol por defecto es donante")
	assert.Equal(t, "active", out.Status)

	stored := repo.byPhone["01712345678"]
	require.NotNil(t, stored)
	assert.NotEqual(t, "secreto123", stored.PasswordHash,
		"el password debe guardarse hasheado")
}

func TestRegisterUser_TelefonoYaRegistrado(t *testing.T) {
	repo := newFakeUserRepo()
	uc := newAuthUC(repo)

	_, err := uc.RegisterUser(validRegister())
	require.NoError(t, err)

	_, err = uc.RegisterUser(validRegister())
	assert.Equal(t, domain.ErrPhoneAlreadyExists, err)
}

// Si la consulta de duplicados falla, el registro debe abortarse con ese
// error en lugar de seguir adelante y crear el usuario.
func TestRegisterUser_ErrorDeConsulta_NoCreaUsuario(t *testing.T) {
	repo := newFakeUserRepo()
	repo.findErr = errors.New("connection refused")
	uc := newAuthUC(repo)

	_, err := uc.RegisterUser(validRegister())
	require.Error(t, err)
	assert.Equal(t, repo.findErr, err, "el error de la consulta debe propagarse")
	assert.Empty(t, repo.byPhone, "no debe persistirse ningún usuario")
}

func TestRegisterUser_TelefonoInvalido(t *testing.T) {
	uc := newAuthUC(newFakeUserRepo())
	in := validRegister()
	in.Phone = "0999"
	_, err := uc.RegisterUser(in)
	assert.Equal(t, domain.ErrInvalidInput, err)
}

func TestRegisterUser_GrupoSanguineoInvalido(t *testing.T) {
	uc := newAuthUC(newFakeUserRepo())
	in := validRegister()
	in.BloodType = "X+"
	_, err := uc.RegisterUser(in)
	assert.Equal(t, domain.ErrInvalidInput, err)
}

func TestLogin_CredencialesCorrectas(t *testing.T) {
	repo := newFakeUserRepo()
	uc := newAuthUC(repo)
	_, err := uc.RegisterUser(validRegister())
	require.NoError(t, err)

	out, err := uc.Login(dto.LoginRequest{Phone: "01712345678", Password: "secreto123"})
	require.NoError(t, err)
	assert.NotEmpty(t, out.Token)
	assert.Equal(t, "01712345678", out.User.Phone)
}

func TestLogin_PasswordIncorrecto(t *testing.T) {
	repo := newFakeUserRepo()
	uc := newAuthUC(repo)
	_, err := uc.RegisterUser(validRegister())
	require.NoError(t, err)

	_, err = uc.Login(dto.LoginRequest{Phone: "01712345678", Password: "otro"})
	assert.Equal(t, domain.ErrUnauthorized, err)
}

func TestLogin_UsuarioInexistente(t *testing.T) {
	uc := newAuthUC(newFakeUserRepo())
	_, err := uc.Login(dto.LoginRequest{Phone: "01798765432", Password: "x"})
	assert.Equal(t, domain.ErrUserNotFound, err)
}

func TestLogin_UsuarioInactivo(t *testing.T) {
	repo := newFakeUserRepo()
	uc := newAuthUC(repo)
	_, err := uc.RegisterUser(validRegister())
	require.NoError(t, err)
	repo.byPhone["01712345678"].Status = "inactive"

	_, err = uc.Login(dto.LoginRequest{Phone: "01712345678", Password: "secreto123"})
	assert.Equal(t, domain.ErrForbidden, err)
}
