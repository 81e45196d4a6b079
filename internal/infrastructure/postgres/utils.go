package postgres

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/elhornero/panaderia-api/internal/domain"
)

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" // unique_violation
	}
	return false
}

// isForeignKeyViolation verifica si un error es una violación de llave foránea (23503).
func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23503" // foreign_key_violation
	}
	return false
}

// referentialError traduce una violación de llave foránea (23503) al error de
// dominio, nombrando la entidad referenciada según la constraint violada.
// Devuelve nil si el error no es una violación de llave foránea.
func referentialError(err error, itemID, warehouseID string) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != "23503" {
		return nil
	}
	if strings.Contains(pgErr.ConstraintName, "warehouse_id") {
		return &domain.ReferentialIntegrityError{Entity: "bodega", ID: warehouseID}
	}
	return &domain.ReferentialIntegrityError{Entity: "ítem", ID: itemID}
}

// isRetryableTxError verifica fallas de serialización o deadlock (40001, 40P01),
// que el cliente puede reintentar.
func isRetryableTxError(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "40001" || pgErr.Code == "40P01"
	}
	return false
}
