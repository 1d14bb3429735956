package dto

// MovementRequest entrada para aplicar un movimiento. El usuario sale de la sesión.
type MovementRequest struct {
	ProductID string `json:"productId"`
	Type      string `json:"type"`
	Quantity  int    `json:"quantity"`
	Reason    string `json:"reason"`
	Notes     string `json:"notes"`
}

// MovementFilter criterios del listado de movimientos.
// Date acepta "today" o una fecha "2006-01-02" en la zona horaria configurada.
type MovementFilter struct {
	Date      string `query:"date"`
	Type      string `query:"type"`
	ProductID string `query:"productId"`
}

// TodayAggregate movimientos del día calendario actual.
type TodayAggregate struct {
	Date     string `json:"date"`
	Entries  int    `json:"entries"`
	Exits    int    `json:"exits"`
	Total    int    `json:"total"`
	UnitsIn  int    `json:"unitsIn"`
	UnitsOut int    `json:"unitsOut"`
}
