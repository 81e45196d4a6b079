package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Errores de dominio (sin dependencias de infraestructura).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
)

// InsufficientStockError indica que una salida pedía más cantidad de la
// disponible en la bodega. Recuperable por el caller (reducir la cantidad);
// nunca se reintenta automáticamente.
type InsufficientStockError struct {
	ItemID      string
	WarehouseID string
	Requested   decimal.Decimal
	Available   decimal.Decimal
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("stock insuficiente para el ítem %s en bodega %s: solicitado %s, disponible %s",
		e.ItemID, e.WarehouseID, e.Requested.String(), e.Available.String())
}

// InvalidStateTransitionError indica un intento de operar sobre un documento
// cuyo estado actual no admite la transición pedida.
type InvalidStateTransitionError struct {
	DocumentID string
	Current    string
	Requested  string
}

func (e *InvalidStateTransitionError) Error() string {
	return fmt.Sprintf("transición de estado inválida para el documento %s: %s → %s",
		e.DocumentID, e.Current, e.Requested)
}

// ReferentialIntegrityError indica una referencia a un ítem, bodega o
// documento inexistente.
type ReferentialIntegrityError struct {
	Entity string
	ID     string
}

func (e *ReferentialIntegrityError) Error() string {
	return fmt.Sprintf("%s %s no existe", e.Entity, e.ID)
}

// ConcurrencyConflictError indica una falla de serialización o un deadlock a
// nivel de fila. El caller puede reintentar la transacción completa una vez.
type ConcurrencyConflictError struct {
	Cause error
}

func (e *ConcurrencyConflictError) Error() string {
	return fmt.Sprintf("conflicto de concurrencia: %v", e.Cause)
}

func (e *ConcurrencyConflictError) Unwrap() error { return e.Cause }
