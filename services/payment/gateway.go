package payment

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
)

// Config carries the gateway credentials. It is injected at construction so
// nothing in the payment path reads process-wide state.
type Config struct {
	KeyID     string
	KeySecret string
	BaseURL   string
	Currency  string
}

// Gateway is a Razorpay orders client plus callback signature verification.
type Gateway struct {
	cfg    Config
	client *resty.Client
}

func NewGateway(cfg Config) *Gateway {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.razorpay.com/v1"
	}
	if cfg.Currency == "" {
		cfg.Currency = "INR"
	}
	client := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetBasicAuth(cfg.KeyID, cfg.KeySecret).
		SetTimeout(10 * time.Second)

	return &Gateway{cfg: cfg, client: client}
}

// KeyID is the public key identifier the browser checkout widget needs.
func (g *Gateway) KeyID() string { return g.cfg.KeyID }

// Currency returns the configured settlement currency.
func (g *Gateway) Currency() string { return g.cfg.Currency }

// Order is the subset of the gateway's order object this service consumes.
type Order struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"` // minor currency units
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
	Status   string `json:"status"`
}

// CreateOrder creates a gateway order for the given amount in whole currency
// units. The gateway expects integer minor units, so the amount is multiplied
// by 100 here and nowhere else.
func (g *Gateway) CreateOrder(amount uint) (*Order, error) {
	var order Order
	resp, err := g.client.R().
		SetBody(map[string]interface{}{
			"amount":   uint64(amount) * 100,
			"currency": g.cfg.Currency,
			"receipt":  "rcpt_" + uuid.NewString(),
		}).
		SetResult(&order).
		Post("/orders")
	if err != nil {
		return nil, fmt.Errorf("failed to create gateway order: %w", err)
	}
	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("gateway order creation failed: %s", resp.String())
	}
	if order.ID == "" {
		return nil, fmt.Errorf("gateway returned no order id")
	}

	return &order, nil
}

// VerifySignature checks the client-relayed checkout callback. The signed
// payload is "orderID|paymentID", HMAC-SHA256 under the key secret, hex
// encoded. The client's claim of success is never trusted on its own.
func (g *Gateway) VerifySignature(orderID, paymentID, signature string) bool {
	mac := hmac.New(sha256.New, []byte(g.cfg.KeySecret))
	mac.Write([]byte(orderID + "|" + paymentID))
	expected := hex.EncodeToString(mac.Sum(nil))

	return hmac.Equal([]byte(expected), []byte(signature))
}
