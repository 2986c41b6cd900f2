package services

import (
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"bakeShop/entities"
	"bakeShop/models"
	"bakeShop/repository"

	"github.com/google/uuid"
)

// CartStore is the single source of truth for one cart: its line items and the
// drawer visibility flag. Every mutation persists the full serialized items
// array to durable storage before returning; listeners registered through
// Subscribe are notified after each successful mutation. Reads of cart state
// always go through the in-memory copy, never back to storage.
type CartStore struct {
	mu      sync.Mutex
	storage repository.KeyValueStore
	key     string
	items   []entities.CartLineItem
	isOpen  bool
	nextSub int
	subs    map[int]func()
}

// NewCartStore hydrates the store from the persisted value under key. An
// absent key or an unparseable value seeds an empty cart; hydration never
// fails.
func NewCartStore(storage repository.KeyValueStore, key string) *CartStore {
	c := &CartStore{
		storage: storage,
		key:     key,
		subs:    make(map[int]func()),
	}
	raw, ok, err := storage.Get(key)
	if err != nil {
		log.Printf("CartStore hydrate: %v", err)
		return c
	}
	if !ok {
		return c
	}
	var items []entities.CartLineItem
	if e := json.Unmarshal([]byte(raw), &items); e != nil {
		log.Printf("CartStore hydrate: discarding stored cart: %v", e)
		return c
	}
	c.items = items
	return c
}

// AddItem appends a new line with a fresh id. The same product and variant
// added twice yields two separate lines; lines are never merged. A
// non-positive quantity is rejected and nothing changes.
func (c *CartStore) AddItem(product entities.Product, quantity int, variant *entities.ProductVariant, notes string) (line entities.CartLineItem, err error) {
	if quantity <= 0 {
		err = fmt.Errorf("%w: quantity must be a positive integer", models.ErrValidation)
		return
	}
	line = entities.CartLineItem{
		Id: uuid.NewString(),
		Product: entities.ProductSnapshot{
			ProductId: product.Id,
			Name:      product.Name,
			UnitPrice: product.Price,
			Image:     product.Image,
			Category:  product.Category,
		},
		Quantity: quantity,
		Variant:  variant,
		Notes:    notes,
		AddedAt:  time.Now().UTC(),
	}

	c.mu.Lock()
	c.items = append(c.items, line)
	c.persistLocked()
	c.mu.Unlock()
	c.notify()
	return
}

// UpdateQuantity replaces the line's quantity in place, preserving its
// position. A quantity of zero or less removes the line. An unknown line id is
// a no-op.
func (c *CartStore) UpdateQuantity(lineId string, quantity int) {
	if quantity <= 0 {
		c.RemoveItem(lineId)
		return
	}
	c.mu.Lock()
	changed := false
	for i := range c.items {
		if c.items[i].Id == lineId {
			c.items[i].Quantity = quantity
			changed = true
			break
		}
	}
	if changed {
		c.persistLocked()
	}
	c.mu.Unlock()
	if changed {
		c.notify()
	}
}

// RemoveItem deletes the matching line. Removal is idempotent: an absent line
// id changes nothing.
func (c *CartStore) RemoveItem(lineId string) {
	c.mu.Lock()
	changed := false
	for i := range c.items {
		if c.items[i].Id == lineId {
			c.items = append(c.items[:i], c.items[i+1:]...)
			changed = true
			break
		}
	}
	if changed {
		c.persistLocked()
	}
	c.mu.Unlock()
	if changed {
		c.notify()
	}
}

// Clear empties the cart. Clearing an already empty cart is a safe no-op and
// does not notify.
func (c *CartStore) Clear() {
	c.mu.Lock()
	if len(c.items) == 0 {
		c.mu.Unlock()
		return
	}
	c.items = nil
	c.persistLocked()
	c.mu.Unlock()
	c.notify()
}

// Items returns a snapshot copy of the current lines in display order.
func (c *CartStore) Items() []entities.CartLineItem {
	c.mu.Lock()
	defer c.mu.Unlock()
	items := make([]entities.CartLineItem, len(c.items))
	copy(items, c.items)
	return items
}

// TotalItems is the sum of line quantities, recomputed on every call.
func (c *CartStore) TotalItems() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	total := 0
	for _, l := range c.items {
		total = total + l.Quantity
	}
	return total
}

// TotalPrice folds effective unit price times quantity over all lines,
// recomputed on every call.
func (c *CartStore) TotalPrice() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	var total float64
	for _, l := range c.items {
		total = total + l.LineTotal()
	}
	return total
}

func (c *CartStore) IsOpen() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.isOpen
}

// OpenCart, CloseCart and ToggleCart mutate visibility only; items and the
// persisted snapshot are untouched and listeners are not notified.
func (c *CartStore) OpenCart() {
	c.mu.Lock()
	c.isOpen = true
	c.mu.Unlock()
}

func (c *CartStore) CloseCart() {
	c.mu.Lock()
	c.isOpen = false
	c.mu.Unlock()
}

func (c *CartStore) ToggleCart() {
	c.mu.Lock()
	c.isOpen = !c.isOpen
	c.mu.Unlock()
}

// Subscribe registers a listener called after every successful item mutation.
// The returned function unregisters it.
func (c *CartStore) Subscribe(fn func()) (unsubscribe func()) {
	c.mu.Lock()
	id := c.nextSub
	c.nextSub++
	c.subs[id] = fn
	c.mu.Unlock()
	return func() {
		c.mu.Lock()
		delete(c.subs, id)
		c.mu.Unlock()
	}
}

// persistLocked writes the serialized items under the store's key. A storage
// failure is logged and the in-memory state stays authoritative for the
// session; the mutation is not rolled back.
func (c *CartStore) persistLocked() {
	data, err := json.Marshal(c.items)
	if err != nil {
		log.Printf("CartStore persist: %v", err)
		return
	}
	if err = c.storage.Set(c.key, string(data)); err != nil {
		log.Printf("CartStore persist: %v", err)
	}
}

func (c *CartStore) notify() {
	c.mu.Lock()
	fns := make([]func(), 0, len(c.subs))
	for _, fn := range c.subs {
		fns = append(fns, fn)
	}
	c.mu.Unlock()
	for _, fn := range fns {
		fn()
	}
}
