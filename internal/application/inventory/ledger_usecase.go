package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/inventario-ledger/internal/application/dto"
	"github.com/jhoicas/inventario-ledger/internal/application/ports"
	"github.com/jhoicas/inventario-ledger/internal/domain"
	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/inventario-ledger/internal/domain/inventory"
	"github.com/jhoicas/inventario-ledger/internal/domain/repository"
	"github.com/jhoicas/inventario-ledger/pkg/logger"
)

// FilterToday valor de MovementFilter.Date para el día calendario actual.
const FilterToday = "today"

// LedgerUseCase registra y revierte movimientos de inventario. Cada operación valida por
// completo antes de mutar, dentro de una unidad de trabajo de TxRunner.
type LedgerUseCase struct {
	txRunner repository.TxRunner
	movRepo  repository.MovementRepository
	stock    StockAdjuster
	access   ports.Access
	log      *logger.Logger
	now      func() time.Time
	loc      *time.Location
}

// Option configura el ledger.
type Option func(*LedgerUseCase)

// WithClock reemplaza el reloj (tests).
func WithClock(now func() time.Time) Option {
	return func(uc *LedgerUseCase) { uc.now = now }
}

// WithLocation fija la zona horaria que define el "día" de un movimiento.
func WithLocation(loc *time.Location) Option {
	return func(uc *LedgerUseCase) {
		if loc != nil {
			uc.loc = loc
		}
	}
}

// NewLedgerUseCase construye el caso de uso.
func NewLedgerUseCase(
	txRunner repository.TxRunner,
	movRepo repository.MovementRepository,
	stock StockAdjuster,
	access ports.Access,
	log *logger.Logger,
	opts ...Option,
) *LedgerUseCase {
	uc := &LedgerUseCase{
		txRunner: txRunner,
		movRepo:  movRepo,
		stock:    stock,
		access:   access,
		log:      log.Component("ledger"),
		now:      time.Now,
		loc:      time.Local,
	}
	for _, o := range opts {
		o(uc)
	}
	return uc
}

// Location zona horaria usada para agrupar por día.
func (uc *LedgerUseCase) Location() *time.Location { return uc.loc }

// ApplyMovement valida y aplica un movimiento: ajusta el stock vía catálogo y luego guarda el
// registro atribuido al usuario de la sesión. Una salida mayor al stock falla antes de mutar.
func (uc *LedgerUseCase) ApplyMovement(ctx context.Context, in dto.MovementRequest) (*entity.Movement, error) {
	user, err := uc.access.CurrentUser(ctx)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	if in.ProductID == "" {
		return nil, domain.NewFieldError("productId", "requerido")
	}
	if !entity.IsValidMovementType(in.Type) {
		return nil, domain.NewFieldError("type", "debe ser entry o exit")
	}
	if in.Quantity <= 0 {
		return nil, domain.NewFieldError("quantity", "debe ser un entero mayor que cero")
	}
	if !entity.IsValidReason(in.Reason) {
		return nil, domain.NewFieldError("reason", "motivo no reconocido")
	}

	mov := &entity.Movement{
		ID:        uuid.New().String(),
		ProductID: in.ProductID,
		Type:      in.Type,
		Quantity:  in.Quantity,
		Reason:    in.Reason,
		Date:      uc.now(),
		UserID:    user.ID,
		Notes:     in.Notes,
	}

	var stockAfter int
	err = uc.txRunner.Run(ctx, func(repos repository.Repositories) error {
		product, err := repos.Products.GetByID(ctx, mov.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}
		if mov.Type == entity.MovementTypeExit && product.CurrentStock < mov.Quantity {
			return domain.ErrInsufficientStock
		}
		updated, err := uc.stock.AdjustStockInTx(ctx, repos, mov.ProductID, mov.SignedQuantity())
		if err != nil {
			return err
		}
		stockAfter = updated.CurrentStock
		return repos.Movements.Create(ctx, mov)
	})
	if err != nil {
		return nil, err
	}
	uc.log.Debug().Str("movementId", mov.ID).Str("productId", mov.ProductID).Str("type", mov.Type).
		Int("quantity", mov.Quantity).Int("stock", stockAfter).Msg("movimiento aplicado")
	return mov, nil
}

// ReverseMovement deshace el efecto de un movimiento y lo elimina. Solo admin.
// No verifica stock suficiente: revertir una entrada puede dejar el stock negativo.
// Si el producto ya no existe, solo se elimina el registro.
func (uc *LedgerUseCase) ReverseMovement(ctx context.Context, id string) error {
	if _, err := uc.access.RequireAdmin(ctx); err != nil {
		return err
	}
	return uc.txRunner.Run(ctx, func(repos repository.Repositories) error {
		mov, err := repos.Movements.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if mov == nil {
			return domain.ErrNotFound
		}
		product, err := repos.Products.GetByID(ctx, mov.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			uc.log.Warn().Str("movementId", id).Str("productId", mov.ProductID).
				Msg("producto inexistente; se elimina el movimiento sin ajustar stock")
		} else if _, err := uc.stock.ReverseStockInTx(ctx, repos, mov.ProductID, -mov.SignedQuantity()); err != nil {
			return err
		}
		if err := repos.Movements.Delete(ctx, id); err != nil {
			return err
		}
		uc.log.Debug().Str("movementId", id).Msg("movimiento revertido")
		return nil
	})
}

// GetMovement obtiene un movimiento; ErrNotFound si no existe.
func (uc *LedgerUseCase) GetMovement(ctx context.Context, id string) (*entity.Movement, error) {
	m, err := uc.movRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, domain.ErrNotFound
	}
	return m, nil
}

// ListMovements todos los movimientos, del más reciente al más antiguo.
func (uc *LedgerUseCase) ListMovements(ctx context.Context) ([]*entity.Movement, error) {
	return uc.Filter(ctx, dto.MovementFilter{})
}

// Filter aplica los criterios opcionales de fecha, tipo y producto.
func (uc *LedgerUseCase) Filter(ctx context.Context, f dto.MovementFilter) ([]*entity.Movement, error) {
	criteria := inventory.MovementCriteria{Type: f.Type, ProductID: f.ProductID}
	switch f.Date {
	case "":
	case FilterToday:
		criteria.Day = inventory.DayKey(uc.now(), uc.loc)
	default:
		d, err := time.ParseInLocation(time.DateOnly, f.Date, uc.loc)
		if err != nil {
			return nil, domain.NewFieldError("date", "formato esperado AAAA-MM-DD o today")
		}
		criteria.Day = d.Format(time.DateOnly)
	}
	if f.Type != "" && !entity.IsValidMovementType(f.Type) {
		return nil, domain.NewFieldError("type", "debe ser entry o exit")
	}
	movs, err := uc.movRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	return inventory.FilterMovements(movs, criteria, uc.loc), nil
}

// Recent los n movimientos más recientes.
func (uc *LedgerUseCase) Recent(ctx context.Context, n int) ([]*entity.Movement, error) {
	movs, err := uc.ListMovements(ctx)
	if err != nil {
		return nil, err
	}
	if n >= 0 && len(movs) > n {
		movs = movs[:n]
	}
	return movs, nil
}

// TodayAggregate cuenta entradas y salidas del día calendario actual.
func (uc *LedgerUseCase) TodayAggregate(ctx context.Context) (*dto.TodayAggregate, error) {
	movs, err := uc.movRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	now := uc.now()
	t := inventory.TotalsForDay(movs, now, uc.loc)
	return &dto.TodayAggregate{
		Date:     inventory.DayKey(now, uc.loc),
		Entries:  t.Entries,
		Exits:    t.Exits,
		Total:    t.Total(),
		UnitsIn:  t.UnitsIn,
		UnitsOut: t.UnitsOut,
	}, nil
}
