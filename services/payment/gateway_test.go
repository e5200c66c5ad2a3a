package payment

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sign(secret, orderID, paymentID string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

func TestVerifySignature(t *testing.T) {
	g := NewGateway(Config{KeyID: "key", KeySecret: "secret"})

	good := sign("secret", "order_1", "pay_1")
	assert.True(t, g.VerifySignature("order_1", "pay_1", good))

	// Any single deviation from the signed payload must fail.
	assert.False(t, g.VerifySignature("order_2", "pay_1", good))
	assert.False(t, g.VerifySignature("order_1", "pay_2", good))
	assert.False(t, g.VerifySignature("order_1", "pay_1", good[:len(good)-1]+"0"))
	assert.False(t, g.VerifySignature("order_1", "pay_1", ""))
}

func TestVerifySignatureWrongSecret(t *testing.T) {
	g := NewGateway(Config{KeyID: "key", KeySecret: "secret"})

	forged := sign("other-secret", "order_1", "pay_1")
	assert.False(t, g.VerifySignature("order_1", "pay_1", forged))
}

func TestCreateOrderSendsMinorUnits(t *testing.T) {
	var gotBody map[string]interface{}
	var gotUser, gotPass string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUser, gotPass, _ = r.BasicAuth()
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"order_xyz","amount":49900,"currency":"INR","status":"created"}`))
	}))
	defer srv.Close()

	g := NewGateway(Config{KeyID: "key", KeySecret: "secret", BaseURL: srv.URL})

	order, err := g.CreateOrder(499)
	require.NoError(t, err)
	assert.Equal(t, "order_xyz", order.ID)
	assert.Equal(t, int64(49900), order.Amount)

	assert.Equal(t, "key", gotUser)
	assert.Equal(t, "secret", gotPass)
	assert.Equal(t, float64(49900), gotBody["amount"])
	assert.Equal(t, "INR", gotBody["currency"])
	assert.NotEmpty(t, gotBody["receipt"])
}

func TestCreateOrderGatewayError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":{"description":"amount too small"}}`))
	}))
	defer srv.Close()

	g := NewGateway(Config{KeyID: "key", KeySecret: "secret", BaseURL: srv.URL})

	_, err := g.CreateOrder(1)
	assert.Error(t, err)
}

func TestCreateOrderMissingID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	g := NewGateway(Config{KeyID: "key", KeySecret: "secret", BaseURL: srv.URL})

	_, err := g.CreateOrder(499)
	assert.Error(t, err)
}

func TestGatewayDefaults(t *testing.T) {
	g := NewGateway(Config{KeyID: "key", KeySecret: "secret"})

	assert.Equal(t, "INR", g.Currency())
	assert.Equal(t, "key", g.KeyID())
}
