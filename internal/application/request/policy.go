package request

// InsufficientStockPolicy decide qué pasa cuando se intenta aprobar una
// solicitud sin stock suficiente. El producto hoy rechaza automáticamente
// (la solicitud pasa a declined en el mismo intento); LeavePending deja la
// solicitud pendiente para reintentar cuando entre stock.
type InsufficientStockPolicy int

const (
	// AutoDecline: sin stock suficiente, la solicitud pasa a declined.
	AutoDecline InsufficientStockPolicy = iota
	// LeavePending: sin stock suficiente, la aprobación falla y la
	// solicitud queda pendiente.
	LeavePending
)
