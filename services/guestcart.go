package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const guestCartKeyPrefix = "guest_cart:"

// DefaultGuestCartTTL bounds how long an idle guest cart survives.
const DefaultGuestCartTTL = 24 * time.Hour

// GuestCartLine is one line of a session-keyed guest cart. Only the product
// reference and quantity are stored; listing enriches from the live catalog,
// exactly like the durable cart.
type GuestCartLine struct {
	ProductID uint `json:"product_id"`
	Quantity  int  `json:"quantity"`
}

// GuestCartService keeps guest carts in Redis, keyed by an opaque session id,
// with a TTL refreshed on every mutation. Writes are whole-value JSON puts, so
// concurrent writers to the same session key resolve last-writer-wins.
type GuestCartService struct {
	rdb     *redis.Client
	catalog *CatalogService
	ttl     time.Duration
}

func NewGuestCartService(rdb *redis.Client, catalog *CatalogService, ttl time.Duration) *GuestCartService {
	if ttl <= 0 {
		ttl = DefaultGuestCartTTL
	}
	return &GuestCartService{rdb: rdb, catalog: catalog, ttl: ttl}
}

func (s *GuestCartService) key(sessionID string) string {
	return guestCartKeyPrefix + sessionID
}

// Lines returns the raw cart lines for a session, or an empty slice when the
// cart does not exist (expired or never created).
func (s *GuestCartService) Lines(ctx context.Context, sessionID string) ([]GuestCartLine, error) {
	data, err := s.rdb.Get(ctx, s.key(sessionID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, errPersistence(err)
	}
	var lines []GuestCartLine
	if err := json.Unmarshal(data, &lines); err != nil {
		return nil, errPersistence(fmt.Errorf("corrupt guest cart %s: %w", sessionID, err))
	}
	return lines, nil
}

func (s *GuestCartService) save(ctx context.Context, sessionID string, lines []GuestCartLine) error {
	if len(lines) == 0 {
		return s.Clear(ctx, sessionID)
	}
	data, err := json.Marshal(lines)
	if err != nil {
		return errPersistence(err)
	}
	if err := s.rdb.Set(ctx, s.key(sessionID), data, s.ttl).Err(); err != nil {
		return errPersistence(err)
	}
	return nil
}

// AddItem adds a product to the guest cart; if a line for that product already
// exists its quantity is incremented rather than a second line created.
func (s *GuestCartService) AddItem(ctx context.Context, sessionID string, productID uint, quantity int) error {
	if sessionID == "" {
		return errInvalid("session id is required")
	}
	if quantity <= 0 {
		return errInvalid("quantity must be positive")
	}
	if _, err := s.catalog.GetProduct(ctx, productID); err != nil {
		return err
	}

	lines, err := s.Lines(ctx, sessionID)
	if err != nil {
		return err
	}
	found := false
	for i := range lines {
		if lines[i].ProductID == productID {
			lines[i].Quantity += quantity
			found = true
			break
		}
	}
	if !found {
		lines = append(lines, GuestCartLine{ProductID: productID, Quantity: quantity})
	}
	return s.save(ctx, sessionID, lines)
}

// RemoveItem drops the line for a product from the guest cart.
func (s *GuestCartService) RemoveItem(ctx context.Context, sessionID string, productID uint) error {
	if sessionID == "" {
		return errInvalid("session id is required")
	}
	lines, err := s.Lines(ctx, sessionID)
	if err != nil {
		return err
	}
	kept := lines[:0]
	removed := false
	for _, line := range lines {
		if line.ProductID == productID {
			removed = true
			continue
		}
		kept = append(kept, line)
	}
	if !removed {
		return errNotFound("cart item for product %d not found", productID)
	}
	return s.save(ctx, sessionID, kept)
}

// ListItems returns the guest cart enriched with live product data. Products
// deleted since they were added are skipped. The displayed price can drift
// from checkout-time price; checkout re-validates against the catalog.
func (s *GuestCartService) ListItems(ctx context.Context, sessionID string) ([]CartView, error) {
	lines, err := s.Lines(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	views := make([]CartView, 0, len(lines))
	for _, line := range lines {
		product, err := s.catalog.GetProduct(ctx, line.ProductID)
		if err != nil {
			if IsKind(err, KindNotFound) {
				continue
			}
			return nil, err
		}
		views = append(views, CartView{
			ProductID: product.ID,
			Name:      product.Name,
			Price:     product.Price,
			ImagePath: product.ImagePath,
			Quantity:  line.Quantity,
		})
	}
	return views, nil
}

// Clear destroys the guest cart, used on merge and on checkout completion.
func (s *GuestCartService) Clear(ctx context.Context, sessionID string) error {
	if err := s.rdb.Del(ctx, s.key(sessionID)).Err(); err != nil {
		return errPersistence(err)
	}
	return nil
}
