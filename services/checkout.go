package services

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/aurelia-jewels/jewelry-api/payment"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ClaimedLineItem is one line of the client's cart snapshot. The claimed unit
// price may be stale or tampered with; nothing downstream trusts it.
type ClaimedLineItem struct {
	ProductID uint            `json:"product_id"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity"`
}

// TrustedLineItem is the server-recomputed version of a claimed line: the
// authoritative catalog price at validation time. This list is the only input
// the stock reconciler and order ledger accept.
type TrustedLineItem struct {
	ProductID uint            `json:"product_id"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity"`
}

type CheckoutRequest struct {
	IdempotencyKey string            `json:"idempotency_key"`
	Items          []ClaimedLineItem `json:"items"`
	Buyer          BuyerInfo         `json:"buyer"`
	GuestSessionID string            `json:"-"`
}

type CheckoutResult struct {
	SessionID  string            `json:"session_id"`
	PaymentURL string            `json:"payment_url"`
	Items      []TrustedLineItem `json:"items"`
	Replayed   bool              `json:"replayed,omitempty"`
}

// CheckoutService revalidates a proposed cart snapshot against the live
// catalog and opens a payment session. It performs no writes to catalog or
// order state; the stock pre-check here is advisory, the authoritative gate is
// StockService.ConfirmStock.
type CheckoutService struct {
	catalog  *CatalogService
	provider payment.Provider
	sessions SessionStore
	currency string
}

func NewCheckoutService(catalog *CatalogService, provider payment.Provider, sessions SessionStore, currency string) *CheckoutService {
	return &CheckoutService{catalog: catalog, provider: provider, sessions: sessions, currency: currency}
}

// CreateSession validates every claimed line item, then asks the provider for
// a hosted checkout session. All validation failures are reported before any
// external call: a partially valid cart creates no session.
func (s *CheckoutService) CreateSession(ctx context.Context, req CheckoutRequest) (*CheckoutResult, error) {
	if len(req.Items) == 0 {
		return nil, errInvalid("cart is empty, nothing to check out")
	}
	if req.IdempotencyKey == "" {
		return nil, errInvalid("idempotency key is required")
	}

	// Replay a previously created session for this key instead of opening a
	// duplicate with the provider.
	if sessionID, ok, err := s.sessions.LookupIdempotencyKey(ctx, req.IdempotencyKey); err != nil {
		return nil, err
	} else if ok {
		payload, err := s.sessions.LoadSessionPayload(ctx, sessionID)
		if err != nil {
			return nil, err
		}
		return &CheckoutResult{
			SessionID:  sessionID,
			PaymentURL: payload.PaymentURL,
			Items:      payload.Items,
			Replayed:   true,
		}, nil
	}

	trusted := make([]TrustedLineItem, 0, len(req.Items))
	providerItems := make([]payment.LineItem, 0, len(req.Items))
	productQuantities := make(map[string]int)
	productCategories := make(map[string]string)
	var sellerIDs []string
	seenSellers := make(map[string]bool)

	for _, item := range req.Items {
		if item.Quantity <= 0 {
			return nil, errInvalid("quantity for product %d must be positive", item.ProductID)
		}
		product, err := s.catalog.GetProduct(ctx, item.ProductID)
		if err != nil {
			return nil, err
		}
		if !product.Price.Equal(item.UnitPrice) {
			return nil, errPriceMismatch(product.ID, item.UnitPrice.StringFixed(2), product.Price.StringFixed(2))
		}
		if item.Quantity > product.StockQuantity {
			return nil, errInsufficientStock(product.ID, item.Quantity, product.StockQuantity)
		}

		trusted = append(trusted, TrustedLineItem{
			ProductID: product.ID,
			UnitPrice: product.Price,
			Quantity:  item.Quantity,
		})
		providerItems = append(providerItems, payment.LineItem{
			Name:       product.Name,
			UnitAmount: product.Price.Mul(decimal.NewFromInt(100)).IntPart(),
			Quantity:   item.Quantity,
		})

		productQuantities[product.Name] += item.Quantity
		if len(product.Categories) > 0 {
			productCategories[product.Name] = product.Categories[0].Name
		}
		if product.SellerID != "" && !seenSellers[product.SellerID] {
			seenSellers[product.SellerID] = true
			sellerIDs = append(sellerIDs, product.SellerID)
		}
	}

	metadata, err := buildStatisticsMetadata(productQuantities, productCategories, sellerIDs)
	if err != nil {
		return nil, err
	}

	session, err := s.provider.CreateCheckoutSession(ctx, payment.SessionRequest{
		CartRef:  uuid.NewString(),
		Currency: s.currency,
		Items:    providerItems,
		Customer: payment.Customer{
			Name:    strings.TrimSpace(req.Buyer.FirstName + " " + req.Buyer.LastName),
			Email:   req.Buyer.Email,
			Phone:   req.Buyer.Phone,
			Address: req.Buyer.ShippingAddress,
		},
		Metadata: metadata,
	})
	if err != nil {
		return nil, errProvider(err)
	}

	payload := SessionPayload{
		Items:          trusted,
		Buyer:          req.Buyer,
		GuestSessionID: req.GuestSessionID,
		PaymentURL:     session.PaymentURL,
	}
	if err := s.sessions.SaveSessionPayload(ctx, session.ID, payload); err != nil {
		return nil, err
	}
	if err := s.sessions.StoreIdempotencyKey(ctx, req.IdempotencyKey, session.ID); err != nil {
		return nil, err
	}

	return &CheckoutResult{
		SessionID:  session.ID,
		PaymentURL: session.PaymentURL,
		Items:      trusted,
	}, nil
}

// buildStatisticsMetadata serializes the per-product quantity map, the
// per-product category map and the seller list the way the revenue statistics
// reader expects them back from provider charge records.
func buildStatisticsMetadata(quantities map[string]int, categories map[string]string, sellerIDs []string) (map[string]string, error) {
	quantitiesJSON, err := json.Marshal(quantities)
	if err != nil {
		return nil, errInvalid("failed to encode product quantities: %v", err)
	}
	categoriesJSON, err := json.Marshal(categories)
	if err != nil {
		return nil, errInvalid("failed to encode product categories: %v", err)
	}
	return map[string]string{
		"product_quantities": string(quantitiesJSON),
		"product_categories": string(categoriesJSON),
		"seller_id":          strings.Join(sellerIDs, ", "),
	}, nil
}
