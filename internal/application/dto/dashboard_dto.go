package dto

// DashboardSummaryDTO resumen para el panel administrativo:
// saldos por grupo sanguíneo y conteo de solicitudes por estado.
type DashboardSummaryDTO struct {
	Stock    []StockBalanceResponse `json:"stock"`
	Requests RequestCountsDTO       `json:"requests"`
}

// RequestCountsDTO solicitudes por estado.
type RequestCountsDTO struct {
	Pending  int `json:"pending"`
	Approved int `json:"approved"`
	Declined int `json:"declined"`
}
