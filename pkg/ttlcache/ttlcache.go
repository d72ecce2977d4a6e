// Package ttlcache implementa un mapa con TTL y tamaño acotado, pensado como
// servicio inyectado explícito: sin estado global ni goroutines de fondo, las
// entradas vencidas se descartan en el acceso y al insertar sobre el límite.
package ttlcache

import (
	"sync"
	"time"
)

type item[V any] struct {
	value     V
	expiresAt time.Time
}

// Cache es un mapa clave→valor con expiración por entrada y capacidad máxima.
// Seguro para uso concurrente.
type Cache[V any] struct {
	mu         sync.Mutex
	items      map[string]item[V]
	ttl        time.Duration
	maxEntries int
}

// New crea una caché con el TTL y la capacidad dados.
// maxEntries <= 0 significa sin límite de entradas.
func New[V any](ttl time.Duration, maxEntries int) *Cache[V] {
	return &Cache[V]{
		items:      make(map[string]item[V]),
		ttl:        ttl,
		maxEntries: maxEntries,
	}
}

// Get devuelve el valor si existe y no ha vencido.
func (c *Cache[V]) Get(key string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	it, ok := c.items[key]
	if !ok {
		var zero V
		return zero, false
	}
	if time.Now().After(it.expiresAt) {
		delete(c.items, key)
		var zero V
		return zero, false
	}
	return it.value, true
}

// Set guarda el valor con el TTL de la caché. Si la caché está llena, primero
// purga vencidas; si sigue llena, desaloja una entrada arbitraria.
func (c *Cache[V]) Set(key string, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.maxEntries > 0 && len(c.items) >= c.maxEntries {
		if _, exists := c.items[key]; !exists {
			c.evictLocked()
		}
	}
	c.items[key] = item[V]{value: value, expiresAt: time.Now().Add(c.ttl)}
}

// Delete invalida una entrada.
func (c *Cache[V]) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.items, key)
}

// Purge vacía la caché completa.
func (c *Cache[V]) Purge() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = make(map[string]item[V])
}

// Len devuelve la cantidad de entradas (incluidas vencidas aún no purgadas).
func (c *Cache[V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// evictLocked elimina vencidas y, si no había, una entrada arbitraria.
// El caller sostiene el lock.
func (c *Cache[V]) evictLocked() {
	now := time.Now()
	removed := false
	for k, it := range c.items {
		if now.After(it.expiresAt) {
			delete(c.items, k)
			removed = true
		}
	}
	if removed {
		return
	}
	for k := range c.items {
		delete(c.items, k)
		return
	}
}
