package entity

import "time"

// Tipos de movimiento.
const (
	MovementTypeEntry = "entry" // entrada: suma stock
	MovementTypeExit  = "exit"  // salida: resta stock
)

// Motivos de movimiento.
const (
	ReasonPurchase   = "purchase"
	ReasonSale       = "sale"
	ReasonAdjustment = "adjustment"
	ReasonDamage     = "damage"
	ReasonExpiry     = "expiry"
	ReasonReturn     = "return"
	ReasonOther      = "other"
)

var validReasons = map[string]struct{}{
	ReasonPurchase:   {},
	ReasonSale:       {},
	ReasonAdjustment: {},
	ReasonDamage:     {},
	ReasonExpiry:     {},
	ReasonReturn:     {},
	ReasonOther:      {},
}

// IsValidMovementType indica si t es entry o exit.
func IsValidMovementType(t string) bool {
	return t == MovementTypeEntry || t == MovementTypeExit
}

// IsValidReason indica si r es un motivo reconocido.
func IsValidReason(r string) bool {
	_, ok := validReasons[r]
	return ok
}

// Movement es un movimiento de inventario aplicado. Inmutable salvo borrado (que revierte su efecto).
// Quantity es siempre positiva; el signo lo da Type.
type Movement struct {
	ID        string    `json:"id"`
	ProductID string    `json:"productId"`
	Type      string    `json:"type"`
	Quantity  int       `json:"quantity"`
	Reason    string    `json:"reason"`
	Date      time.Time `json:"date"`
	UserID    string    `json:"userId"`
	Notes     string    `json:"notes,omitempty"`
}

// SignedQuantity devuelve +Quantity para entradas y -Quantity para salidas.
func (m *Movement) SignedQuantity() int {
	if m.Type == MovementTypeExit {
		return -m.Quantity
	}
	return m.Quantity
}
