package http

import (
	"errors"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elhornero/panaderia-api/internal/domain"
)

func statusForError(t *testing.T, err error) (int, string) {
	t.Helper()
	app := fiber.New()
	app.Get("/fallo", func(c *fiber.Ctx) error {
		return respondError(c, err)
	})
	resp, errTest := app.Test(httptest.NewRequest("GET", "/fallo", nil))
	require.NoError(t, errTest)
	defer resp.Body.Close()
	body, errRead := io.ReadAll(resp.Body)
	require.NoError(t, errRead)
	return resp.StatusCode, string(body)
}

func TestRespondError_StockInsuficienteEs409(t *testing.T) {
	status, body := statusForError(t, &domain.InsufficientStockError{
		ItemID:      "harina",
		WarehouseID: "bodega-1",
		Requested:   decimal.NewFromInt(10),
		Available:   decimal.NewFromInt(3),
	})
	assert.Equal(t, fiber.StatusConflict, status)
	assert.Contains(t, body, "INSUFFICIENT_STOCK")
	assert.Contains(t, body, "solicitado 10")
}

func TestRespondError_TransicionInvalidaEs409(t *testing.T) {
	status, body := statusForError(t, &domain.InvalidStateTransitionError{
		DocumentID: "oc-1", Current: "borrador", Requested: "recibida",
	})
	assert.Equal(t, fiber.StatusConflict, status)
	assert.Contains(t, body, "INVALID_STATE")
}

func TestRespondError_ConflictoDeConcurrenciaEs409(t *testing.T) {
	status, body := statusForError(t, &domain.ConcurrencyConflictError{Cause: errors.New("deadlock detected")})
	assert.Equal(t, fiber.StatusConflict, status)
	assert.Contains(t, body, "CONCURRENCY_CONFLICT")
}

func TestRespondError_ReferenciaRotaEs422(t *testing.T) {
	status, body := statusForError(t, &domain.ReferentialIntegrityError{Entity: "ítem", ID: "x"})
	assert.Equal(t, fiber.StatusUnprocessableEntity, status)
	assert.Contains(t, body, "UNKNOWN_REFERENCE")
}

func TestRespondError_Sentinelas(t *testing.T) {
	cases := []struct {
		err    error
		status int
		code   string
	}{
		{domain.ErrInvalidInput, fiber.StatusBadRequest, "VALIDATION"},
		{domain.ErrNotFound, fiber.StatusNotFound, "NOT_FOUND"},
		{domain.ErrDuplicate, fiber.StatusConflict, "DUPLICATE"},
		{domain.ErrEmailAlreadyExists, fiber.StatusConflict, "EMAIL_EXISTS"},
		{domain.ErrUnauthorized, fiber.StatusUnauthorized, "UNAUTHORIZED"},
		{domain.ErrForbidden, fiber.StatusForbidden, "FORBIDDEN"},
	}
	for _, tc := range cases {
		status, body := statusForError(t, tc.err)
		assert.Equal(t, tc.status, status, tc.code)
		assert.Contains(t, body, tc.code)
	}
}

func TestRespondError_ErrorDesconocidoEs500(t *testing.T) {
	status, body := statusForError(t, errors.New("se cayó la base"))
	assert.Equal(t, fiber.StatusInternalServerError, status)
	assert.Contains(t, body, "INTERNAL")
}

func TestRespondError_SentinelaEnvueltoSeMapea(t *testing.T) {
	status, body := statusForError(t, errors.Join(errors.New("contexto"), domain.ErrNotFound))
	assert.Equal(t, fiber.StatusNotFound, status)
	assert.Contains(t, body, "NOT_FOUND")
}
