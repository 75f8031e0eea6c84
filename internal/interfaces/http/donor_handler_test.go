package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appdonor "github.com/jhoicas/hemocentro-api/internal/application/donor"
	"github.com/jhoicas/hemocentro-api/internal/domain"
	donordomain "github.com/jhoicas/hemocentro-api/internal/domain/donor"
	"github.com/jhoicas/hemocentro-api/internal/domain/entity"
	"github.com/jhoicas/hemocentro-api/internal/domain/repository"
	apphttp "github.com/jhoicas/hemocentro-api/internal/interfaces/http"
)

// fakeDonorRepo repositorio en memoria indexado por teléfono. Create devuelve
// domain.ErrDuplicate si el teléfono ya está registrado, igual que la
// restricción UNIQUE de la tabla.
type fakeDonorRepo struct {
	byPhone map[string]*entity.Donor
}

func newFakeDonorRepo() *fakeDonorRepo {
	return &fakeDonorRepo{byPhone: make(map[string]*entity.Donor)}
}

func (r *fakeDonorRepo) Create(d *entity.Donor) error {
	if _, ok := r.byPhone[d.Phone]; ok {
		return domain.ErrDuplicate
	}
	cp := *d
	r.byPhone[d.Phone] = &cp
	return nil
}

func (r *fakeDonorRepo) GetByID(id string) (*entity.Donor, error) {
	for _, d := range r.byPhone {
		if d.ID == id {
			cp := *d
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeDonorRepo) Update(d *entity.Donor) error {
	cp := *d
	r.byPhone[d.Phone] = &cp
	return nil
}

func (r *fakeDonorRepo) Delete(id string) error {
	for phone, d := range r.byPhone {
		if d.ID == id {
			delete(r.byPhone, phone)
		}
	}
	return nil
}

func (r *fakeDonorRepo) List(filter repository.DonorFilter) ([]entity.Donor, error) {
	var out []entity.Donor
	for _, d := range r.byPhone {
		out = append(out, *d)
	}
	return out, nil
}

func buildDonorApp() *fiber.App {
	uc := appdonor.NewDonorUseCase(newFakeDonorRepo(), donordomain.DefaultRules())
	h := apphttp.NewDonorHandler(uc)
	app := fiber.New()
	app.Post("/api/donors", h.Create)
	return app
}

func postDonor(t *testing.T, app *fiber.App, body map[string]string) *http.Response {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/api/donors", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func validDonorBody() map[string]string {
	return map[string]string{
		"name":       "María González",
		"phone":      "01712345678",
		"email":      "maria@example.com",
		"city":       "Bogotá",
		"address":    "Calle 10 #5-32",
		"gender":     "F",
		"dob":        "1990-01-15",
		"blood_type": "O+",
	}
}

// Registrar dos veces el mismo teléfono debe responder 409, no 500.
func TestDonorCreate_TelefonoDuplicado_Retorna409(t *testing.T) {
	app := buildDonorApp()

	resp := postDonor(t, app, validDonorBody())
	resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode,
		"el primer registro debe crearse")

	second := validDonorBody()
	second["name"] = "Otra Persona"
	resp = postDonor(t, app, second)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusConflict, resp.StatusCode,
		"reusar un teléfono registrado debe responder 409")
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "DUPLICATE",
		"la respuesta debe incluir el código DUPLICATE")
}

func TestDonorCreate_DatosValidos_Retorna201(t *testing.T) {
	app := buildDonorApp()
	resp := postDonor(t, app, validDonorBody())
	defer resp.Body.Close()

	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var out map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, "O+", out["blood_type"])
	assert.NotEmpty(t, out["id"])
}
