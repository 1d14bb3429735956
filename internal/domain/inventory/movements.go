package inventory

import (
	"sort"
	"time"

	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
)

// DayKey devuelve la fecha calendario de t en loc ("2006-01-02"). Dos instantes son del mismo día
// si sus DayKey coinciden, sin comparar rangos de tiempo.
func DayKey(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	return t.In(loc).Format(time.DateOnly)
}

// MovementCriteria criterios opcionales de filtrado; un campo vacío no filtra.
type MovementCriteria struct {
	Day       string // "2006-01-02" en la zona del filtro
	Type      string
	ProductID string
}

// FilterMovements devuelve los movimientos que cumplen todos los criterios, del más reciente al más antiguo.
// No modifica movs.
func FilterMovements(movs []*entity.Movement, c MovementCriteria, loc *time.Location) []*entity.Movement {
	out := make([]*entity.Movement, 0, len(movs))
	for _, m := range movs {
		if c.Day != "" && DayKey(m.Date, loc) != c.Day {
			continue
		}
		if c.Type != "" && m.Type != c.Type {
			continue
		}
		if c.ProductID != "" && m.ProductID != c.ProductID {
			continue
		}
		out = append(out, m)
	}
	SortNewestFirst(out)
	return out
}

// SortNewestFirst ordena por fecha descendente; empates conservan el orden original.
func SortNewestFirst(movs []*entity.Movement) {
	sort.SliceStable(movs, func(i, j int) bool {
		return movs[i].Date.After(movs[j].Date)
	})
}

// DayTotals resumen de movimientos de un día.
type DayTotals struct {
	Entries  int
	Exits    int
	UnitsIn  int
	UnitsOut int
}

// Total cantidad de movimientos del día.
func (d DayTotals) Total() int { return d.Entries + d.Exits }

// TotalsForDay agrega los movimientos cuya fecha cae en el mismo día calendario que day.
func TotalsForDay(movs []*entity.Movement, day time.Time, loc *time.Location) DayTotals {
	key := DayKey(day, loc)
	var t DayTotals
	for _, m := range movs {
		if DayKey(m.Date, loc) != key {
			continue
		}
		switch m.Type {
		case entity.MovementTypeEntry:
			t.Entries++
			t.UnitsIn += m.Quantity
		case entity.MovementTypeExit:
			t.Exits++
			t.UnitsOut += m.Quantity
		}
	}
	return t
}
