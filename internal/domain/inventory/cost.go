package inventory

import "github.com/shopspring/decimal"

// AverageReceiptCost devuelve el costo promedio de un ítem como la media
// aritmética simple de los costos unitarios de todas sus recepciones
// históricas. No pondera por cantidad: es el comportamiento acordado con
// producto (ver DESIGN.md); cambiarlo a promedio ponderado solo requiere
// tocar esta función.
func AverageReceiptCost(unitCosts []decimal.Decimal) decimal.Decimal {
	if len(unitCosts) == 0 {
		return decimal.Zero
	}
	sum := decimal.Zero
	for _, c := range unitCosts {
		sum = sum.Add(c)
	}
	return sum.Div(decimal.NewFromInt(int64(len(unitCosts))))
}
