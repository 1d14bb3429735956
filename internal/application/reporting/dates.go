package reporting

import (
	"fmt"
	"time"
)

var monthsES = [...]string{
	"enero", "febrero", "marzo", "abril", "mayo", "junio",
	"julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre",
}

// FormatTimestamp "15/10/2026, 14:03:00", fecha del documento exportado.
func FormatTimestamp(t time.Time) string {
	return t.Format("02/01/2006, 15:04:05")
}

// FormatLongDate "15 de octubre de 2026, 14:03", fecha de cada movimiento.
func FormatLongDate(t time.Time) string {
	if t.IsZero() {
		return "Fecha no disponible"
	}
	return fmt.Sprintf("%d de %s de %d, %s", t.Day(), monthsES[t.Month()-1], t.Year(), t.Format("15:04"))
}
