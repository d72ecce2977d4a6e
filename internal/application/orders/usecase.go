package orders

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	appstock "github.com/frescosur/mayorista-api/internal/application/stock"
	"github.com/frescosur/mayorista-api/internal/domain"
	"github.com/frescosur/mayorista-api/internal/domain/entity"
	domstock "github.com/frescosur/mayorista-api/internal/domain/stock"
	"github.com/frescosur/mayorista-api/internal/domain/repository"
)

// Plazo por defecto de una venta a crédito.
const creditTermDays = 30

// TxRunner ejecuta el cierre de una orden en una transacción: el cambio de estado,
// todos los movimientos de stock de sus renglones y la cuenta por cobrar (si es
// venta a crédito) se confirman juntos o ninguno.
type TxRunner interface {
	RunOrders(ctx context.Context, fn func(
		movRepo repository.MovementRepository,
		productRepo repository.ProductRepository,
		orderRepo repository.OrderRepository,
		receivableRepo repository.ReceivableRepository,
	) error) error
}

// UseCase maneja órdenes de compra y venta: creación, cierre (con efectos de
// stock vía el motor), anulación y consultas.
type UseCase struct {
	txRunner      TxRunner
	engine        *appstock.Engine
	orderRepo     repository.OrderRepository
	proveedorRepo repository.ProveedorRepository
	clienteRepo   repository.ClienteRepository
}

// NewUseCase construye el caso de uso de órdenes.
func NewUseCase(
	txRunner TxRunner,
	engine *appstock.Engine,
	orderRepo repository.OrderRepository,
	proveedorRepo repository.ProveedorRepository,
	clienteRepo repository.ClienteRepository,
) *UseCase {
	return &UseCase{
		txRunner:      txRunner,
		engine:        engine,
		orderRepo:     orderRepo,
		proveedorRepo: proveedorRepo,
		clienteRepo:   clienteRepo,
	}
}

// CreateInput entrada para crear una orden en estado PENDIENTE.
type CreateInput struct {
	Kind    string // COMPRA | VENTA
	PartyID string // proveedor (COMPRA) o cliente (VENTA)
	Payment string // CONTADO | CREDITO, solo ventas
	Items   []CreateItem
	UserID  string
}

// CreateItem renglón de la orden a crear.
type CreateItem struct {
	ProductID string
	Quantity  decimal.Decimal
	UnitPrice decimal.Decimal
}

// Create valida y persiste una orden PENDIENTE. No toca stock: el stock solo
// cambia al completar la orden.
func (uc *UseCase) Create(ctx context.Context, in CreateInput) (*entity.Order, error) {
	if len(in.Items) == 0 || in.PartyID == "" {
		return nil, domain.ErrInvalidInput
	}
	switch in.Kind {
	case entity.OrderKindPurchase:
		p, err := uc.proveedorRepo.GetByID(in.PartyID)
		if err != nil {
			return nil, err
		}
		if p == nil {
			return nil, domain.ErrNotFound
		}
		in.Payment = ""
	case entity.OrderKindSale:
		c, err := uc.clienteRepo.GetByID(in.PartyID)
		if err != nil {
			return nil, err
		}
		if c == nil {
			return nil, domain.ErrNotFound
		}
		if in.Payment == "" {
			in.Payment = entity.PaymentCash
		}
		if in.Payment != entity.PaymentCash && in.Payment != entity.PaymentCredit {
			return nil, domain.ErrInvalidInput
		}
		if in.Payment == entity.PaymentCredit && !c.CreditOK {
			return nil, domain.ErrForbidden
		}
	default:
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	orderID := uuid.New().String()
	total := decimal.Zero
	items := make([]entity.OrderItem, 0, len(in.Items))
	for _, it := range in.Items {
		qty := domstock.Normalize(it.Quantity)
		if !qty.GreaterThan(decimal.Zero) {
			return nil, domain.ErrInvalidQuantity
		}
		if it.UnitPrice.LessThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		subtotal := qty.Mul(it.UnitPrice).Round(domstock.Precision)
		items = append(items, entity.OrderItem{
			ID:        uuid.New().String(),
			OrderID:   orderID,
			ProductID: it.ProductID,
			Quantity:  qty,
			UnitPrice: it.UnitPrice,
			Subtotal:  subtotal,
		})
		total = total.Add(subtotal)
	}

	ref, err := uc.orderRepo.NextReference(in.Kind)
	if err != nil {
		return nil, err
	}
	order := &entity.Order{
		ID:        orderID,
		Reference: ref,
		Kind:      in.Kind,
		PartyID:   in.PartyID,
		State:     entity.OrderStatePending,
		Payment:   in.Payment,
		Items:     items,
		Total:     total,
		CreatedAt: now,
		CreatedBy: in.UserID,
	}
	if err := uc.orderRepo.Create(order); err != nil {
		return nil, err
	}
	return order, nil
}

// CompleteResult resultado del cierre de una orden.
type CompleteResult struct {
	Order    *entity.Order
	Warnings []string // advertencias de umbral por producto (advisory)
}

// Complete cierra una orden PENDIENTE aplicando un movimiento de stock por renglón:
// INBOUND en compras, OUTBOUND en ventas, con la referencia de la orden como causa.
// Todo ocurre en una transacción: si cualquier renglón falla (por ejemplo stock
// insuficiente en una venta), la orden entera queda sin completar.
// El cambio de estado es condicional (PENDIENTE -> COMPLETADA), de modo que dos
// cierres concurrentes de la misma orden aplican los movimientos a lo sumo una vez.
func (uc *UseCase) Complete(ctx context.Context, orderID, userID string) (*CompleteResult, error) {
	now := time.Now()
	var result *CompleteResult
	err := uc.txRunner.RunOrders(ctx, func(
		movRepo repository.MovementRepository,
		productRepo repository.ProductRepository,
		orderRepo repository.OrderRepository,
		receivableRepo repository.ReceivableRepository,
	) error {
		order, err := orderRepo.GetByID(orderID)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.ErrNotFound
		}
		ok, err := orderRepo.MarkCompleted(orderID, userID, now)
		if err != nil {
			return err
		}
		if !ok {
			// Ya completada o anulada: la transición se aplica a lo sumo una vez.
			return domain.ErrConflict
		}

		kind := entity.MovementKindInbound
		if order.Kind == entity.OrderKindSale {
			kind = entity.MovementKindOutbound
		}
		var warnings []string
		for _, item := range order.Items {
			res, err := uc.engine.ApplyInTx(movRepo, productRepo, appstock.ApplyInput{
				ProductID: item.ProductID,
				Kind:      kind,
				Magnitude: item.Quantity,
				Cause:     order.Reference,
				ActorID:   userID,
			}, now)
			if err != nil {
				return err
			}
			if res.Warning != "" {
				warnings = append(warnings, res.Product.Name+": "+res.Warning)
			}
		}

		// Venta a crédito: genera la cuenta por cobrar en la misma transacción.
		if order.Kind == entity.OrderKindSale && order.Payment == entity.PaymentCredit {
			rec := &entity.Receivable{
				ID:        uuid.New().String(),
				ClienteID: order.PartyID,
				OrderID:   order.ID,
				Amount:    order.Total,
				Balance:   order.Total,
				DueDate:   now.AddDate(0, 0, creditTermDays),
				State:     entity.ReceivablePending,
				CreatedAt: now,
				UpdatedAt: now,
			}
			if err := receivableRepo.Create(rec); err != nil {
				return err
			}
		}

		order.State = entity.OrderStateCompleted
		order.CompletedAt = &now
		order.CompletedBy = userID
		result = &CompleteResult{Order: order, Warnings: warnings}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Cancel anula una orden PENDIENTE. Las completadas son inmutables.
func (uc *UseCase) Cancel(ctx context.Context, orderID string) error {
	order, err := uc.orderRepo.GetByID(orderID)
	if err != nil {
		return err
	}
	if order == nil {
		return domain.ErrNotFound
	}
	ok, err := uc.orderRepo.MarkCancelled(orderID)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrConflict
	}
	return nil
}

// GetByID devuelve una orden con sus renglones.
func (uc *UseCase) GetByID(id string) (*entity.Order, error) {
	return uc.orderRepo.GetByID(id)
}

// List lista órdenes filtradas por tipo y/o estado.
func (uc *UseCase) List(kind, state string, limit, offset int) ([]*entity.Order, error) {
	if limit <= 0 {
		limit = 20
	}
	return uc.orderRepo.List(kind, state, limit, offset)
}
