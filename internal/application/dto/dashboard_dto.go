package dto

import "github.com/shopspring/decimal"

// DashboardStats agregados del panel sobre los paquetes visibles para el actor.
// Revenue solo suma paquetes originados en el ámbito del actor y queda en cero
// para quien no puede ver ingresos.
type DashboardStats struct {
	TotalParcels   int             `json:"totalParcels"`
	Delivered      int             `json:"delivered"`
	Pending        int             `json:"pending"`
	InTransit      int             `json:"inTransit"`
	InWarehouse    int             `json:"inWarehouse"`
	ByStatus       map[string]int  `json:"byStatus"`
	Revenue        decimal.Decimal `json:"revenue"`
	Currency       string          `json:"currency"`
	TotalCustomers int             `json:"totalCustomers"`
}

// ReportResponse resumen ejecutivo generado por IA.
type ReportResponse struct {
	Report string `json:"report"`
}
