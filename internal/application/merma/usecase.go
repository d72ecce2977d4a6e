package merma

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	appstock "github.com/frescosur/mayorista-api/internal/application/stock"
	"github.com/frescosur/mayorista-api/internal/domain"
	"github.com/frescosur/mayorista-api/internal/domain/entity"
	domstock "github.com/frescosur/mayorista-api/internal/domain/stock"
	"github.com/frescosur/mayorista-api/internal/domain/repository"
)

// TxRunner ejecuta el registro de merma en una transacción: el movimiento OUTBOUND
// y el registro de merma se confirman juntos o ninguno.
type TxRunner interface {
	RunMerma(ctx context.Context, fn func(
		movRepo repository.MovementRepository,
		productRepo repository.ProductRepository,
		mermaRepo repository.MermaRepository,
	) error) error
}

// UseCase registra mermas descontando stock a través del motor y listándolas
// para reporting.
type UseCase struct {
	txRunner  TxRunner
	engine    *appstock.Engine
	mermaRepo repository.MermaRepository // lecturas fuera de transacción
}

// NewUseCase construye el caso de uso de mermas.
func NewUseCase(txRunner TxRunner, engine *appstock.Engine, mermaRepo repository.MermaRepository) *UseCase {
	return &UseCase{txRunner: txRunner, engine: engine, mermaRepo: mermaRepo}
}

// RegisterInput entrada tipada para registrar una merma.
type RegisterInput struct {
	ProductID     string
	Tipo          string // taxonomía: DETERIORO, MANIPULEO, TRANSPORTE, VENCIMIENTO, OTRO
	Causa         string // sub-causa dentro del tipo
	Clasificacion string // NORMAL | EXTRAORDINARIA
	Quantity      decimal.Decimal
	Notes         string
	UserID        string
}

// RegisterResult la merma creada más la advertencia de umbral del movimiento.
type RegisterResult struct {
	Merma    *entity.Merma
	Movement *entity.Movement
	Level    domstock.Level
	Warning  string
}

// Register descuenta el stock (OUTBOUND vía el motor) y crea el registro de merma
// referenciando el movimiento, todo en una transacción. Si la mutación falla no
// queda registro de merma.
func (uc *UseCase) Register(ctx context.Context, in RegisterInput) (*RegisterResult, error) {
	if in.ProductID == "" || !entity.ValidMermaTipo(in.Tipo) {
		return nil, domain.ErrInvalidInput
	}
	if in.Clasificacion != entity.MermaNormal && in.Clasificacion != entity.MermaExtraordinary {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	var result *RegisterResult
	err := uc.txRunner.RunMerma(ctx, func(
		movRepo repository.MovementRepository,
		productRepo repository.ProductRepository,
		mermaRepo repository.MermaRepository,
	) error {
		res, err := uc.engine.ApplyInTx(movRepo, productRepo, appstock.ApplyInput{
			ProductID: in.ProductID,
			Kind:      entity.MovementKindOutbound,
			Magnitude: in.Quantity,
			Cause:     fmt.Sprintf("merma:%s/%s", in.Tipo, in.Causa),
			ActorID:   in.UserID,
		}, now)
		if err != nil {
			return err
		}
		m := &entity.Merma{
			ID:            uuid.New().String(),
			ProductID:     in.ProductID,
			MovementID:    res.Movement.ID,
			Tipo:          in.Tipo,
			Causa:         in.Causa,
			Clasificacion: in.Clasificacion,
			Quantity:      domstock.Normalize(in.Quantity),
			Notes:         in.Notes,
			CreatedBy:     in.UserID,
			CreatedAt:     now,
		}
		if err := mermaRepo.Create(m); err != nil {
			return err
		}
		result = &RegisterResult{Merma: m, Movement: res.Movement, Level: res.Level, Warning: res.Warning}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// List devuelve mermas filtradas por producto y/o clasificación.
func (uc *UseCase) List(productID, clasificacion string, from, to *time.Time, limit, offset int) ([]*entity.Merma, error) {
	if limit <= 0 {
		limit = 20
	}
	return uc.mermaRepo.List(productID, clasificacion, from, to, limit, offset)
}
