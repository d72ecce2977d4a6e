package stock

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/frescosur/mayorista-api/internal/domain"
	"github.com/frescosur/mayorista-api/internal/domain/entity"
	domstock "github.com/frescosur/mayorista-api/internal/domain/stock"
	"github.com/frescosur/mayorista-api/internal/domain/repository"
)

// Engine es el motor de mutación de stock: único dueño de las escrituras sobre
// Product.QuantityOnHand y sobre el libro de movimientos. Aplica una transición
// validada como unidad indivisible: un update de producto + un insert de
// movimiento, o ninguno de los dos.
type Engine struct {
	txRunner TxRunner
}

// NewEngine construye el motor.
func NewEngine(txRunner TxRunner) *Engine {
	return &Engine{txRunner: txRunner}
}

// ApplyInput es la petición tipada de una mutación de stock.
// Magnitude: para INBOUND/OUTBOUND la magnitud positiva; para ADJUSTMENT el
// valor absoluto objetivo.
type ApplyInput struct {
	ProductID string
	Kind      string // INBOUND | OUTBOUND | ADJUSTMENT
	Magnitude decimal.Decimal
	Cause     string // referencia de orden, etiquetas de merma, nota manual
	ActorID   string
}

// MovementResult es el resultado de una mutación exitosa: el producto con su
// nueva cantidad, el movimiento creado y la advertencia de umbral (advisory).
type MovementResult struct {
	Product  *entity.Product
	Movement *entity.Movement
	Level    domstock.Level
	Warning  string // vacío si el nivel es normal
}

// ApplyMovement aplica un movimiento en su propia transacción:
// bloquea la fila del producto, valida, escribe la nueva cantidad e inserta la
// entrada del libro; commit o rollback como unidad. Errores de dominio
// (ErrNotFound, ErrInvalidQuantity, ErrInsufficientStock) se devuelven tal cual;
// cualquier otra falla se envuelve en ErrPersistence y es segura de reintentar
// porque no quedó efecto parcial.
func (e *Engine) ApplyMovement(ctx context.Context, in ApplyInput) (*MovementResult, error) {
	if in.ProductID == "" || !entity.ValidMovementKind(in.Kind) {
		return nil, domain.ErrInvalidInput
	}
	var result *MovementResult
	err := e.txRunner.Run(ctx, func(
		movRepo repository.MovementRepository,
		productRepo repository.ProductRepository,
	) error {
		res, err := e.ApplyInTx(movRepo, productRepo, in, time.Now())
		if err != nil {
			return err
		}
		result = res
		return nil
	})
	if err != nil {
		if isDomainErr(err) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrPersistence, err)
	}
	return result, nil
}

// ApplyInTx aplica un movimiento usando repositorios ya atados a la transacción
// del caller (cierre de órdenes, registro de merma). El caller es responsable
// del commit/rollback de su transacción completa.
func (e *Engine) ApplyInTx(
	movRepo repository.MovementRepository,
	productRepo repository.ProductRepository,
	in ApplyInput,
	now time.Time,
) (*MovementResult, error) {
	if in.ProductID == "" || !entity.ValidMovementKind(in.Kind) {
		return nil, domain.ErrInvalidInput
	}
	// Bloquea la fila del producto: serializa leer-validar-escribir por producto.
	product, err := productRepo.GetForUpdate(in.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}

	before := domstock.Normalize(product.QuantityOnHand)
	decision := domstock.Validate(before, in.Magnitude, in.Kind)
	if decision.Err != nil {
		return nil, decision.Err
	}
	after := decision.Resulting

	if err := productRepo.UpdateQuantity(product.ID, after); err != nil {
		return nil, err
	}
	mov := &entity.Movement{
		ID:             uuid.New().String(),
		ProductID:      product.ID,
		Kind:           in.Kind,
		QuantityDelta:  after.Sub(before),
		QuantityBefore: before,
		QuantityAfter:  after,
		Cause:          in.Cause,
		ActorID:        in.ActorID,
		CreatedAt:      now,
	}
	if err := movRepo.Create(mov); err != nil {
		return nil, err
	}

	product.QuantityOnHand = after
	product.UpdatedAt = now
	level := domstock.Classify(after, product.MinimumThreshold)
	return &MovementResult{
		Product:  product,
		Movement: mov,
		Level:    level,
		Warning:  domstock.Warning(level),
	}, nil
}

// isDomainErr distingue errores de negocio de fallas de almacenamiento.
func isDomainErr(err error) bool {
	for _, sentinel := range []error{
		domain.ErrNotFound,
		domain.ErrInvalidInput,
		domain.ErrInvalidQuantity,
		domain.ErrInsufficientStock,
		domain.ErrForbidden,
		domain.ErrConflict,
	} {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}
