package entity

import "time"

// Warehouse representa una bodega física (almacén, punto de venta, planta de producción).
type Warehouse struct {
	ID        string
	Name      string
	Address   string
	CreatedAt time.Time
	UpdatedAt time.Time
}
