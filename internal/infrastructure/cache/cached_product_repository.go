// Package cache decora repositorios con una caché TTL en memoria para las
// rutas de lectura del API. El motor de stock nunca pasa por aquí: sus
// lecturas van siempre a la base con lock de fila.
package cache

import (
	"github.com/shopspring/decimal"

	"github.com/frescosur/mayorista-api/internal/domain/entity"
	"github.com/frescosur/mayorista-api/internal/domain/repository"
	"github.com/frescosur/mayorista-api/pkg/ttlcache"
)

var _ repository.ProductRepository = (*CachedProductRepo)(nil)

// CachedProductRepo envuelve un ProductRepository cacheando GetByID y GetBySKU.
// Toda escritura invalida las entradas del producto afectado; las lecturas con
// lock (GetForUpdate) y los listados van directo al repositorio subyacente.
type CachedProductRepo struct {
	inner repository.ProductRepository
	byID  *ttlcache.Cache[*entity.Product]
	bySKU *ttlcache.Cache[string] // sku → id
}

func NewCachedProductRepository(inner repository.ProductRepository, byID *ttlcache.Cache[*entity.Product], bySKU *ttlcache.Cache[string]) *CachedProductRepo {
	return &CachedProductRepo{inner: inner, byID: byID, bySKU: bySKU}
}

func (r *CachedProductRepo) Create(product *entity.Product) error {
	return r.inner.Create(product)
}

func (r *CachedProductRepo) GetByID(id string) (*entity.Product, error) {
	if p, ok := r.byID.Get(id); ok {
		return p, nil
	}
	p, err := r.inner.GetByID(id)
	if err != nil || p == nil {
		return p, err
	}
	r.byID.Set(p.ID, p)
	return p, nil
}

func (r *CachedProductRepo) GetBySKU(sku string) (*entity.Product, error) {
	if id, ok := r.bySKU.Get(sku); ok {
		if p, ok := r.byID.Get(id); ok {
			return p, nil
		}
	}
	p, err := r.inner.GetBySKU(sku)
	if err != nil || p == nil {
		return p, err
	}
	r.byID.Set(p.ID, p)
	r.bySKU.Set(p.SKU, p.ID)
	return p, nil
}

// GetForUpdate no cachea: el lock de fila exige leer de la base.
func (r *CachedProductRepo) GetForUpdate(id string) (*entity.Product, error) {
	return r.inner.GetForUpdate(id)
}

func (r *CachedProductRepo) UpdateQuantity(id string, quantity decimal.Decimal) error {
	if err := r.inner.UpdateQuantity(id, quantity); err != nil {
		return err
	}
	r.byID.Delete(id)
	return nil
}

func (r *CachedProductRepo) Update(product *entity.Product) error {
	if err := r.inner.Update(product); err != nil {
		return err
	}
	r.byID.Delete(product.ID)
	r.bySKU.Delete(product.SKU)
	return nil
}

func (r *CachedProductRepo) List(limit, offset int) ([]*entity.Product, error) {
	return r.inner.List(limit, offset)
}

func (r *CachedProductRepo) ListAll() ([]*entity.Product, error) {
	return r.inner.ListAll()
}

func (r *CachedProductRepo) Delete(id string) error {
	if err := r.inner.Delete(id); err != nil {
		return err
	}
	r.byID.Delete(id)
	return nil
}
