package payment

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const razorpayBaseURL = "https://api.razorpay.com/v1"

// Client creates payment orders on Razorpay. No money moves inside this
// system; the client only obtains an externally-hosted payment intent.
type Client struct {
	httpClient *http.Client
	baseURL    string
	keyID      string
	keySecret  string
}

func NewClient(keyID, keySecret string) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		baseURL:   razorpayBaseURL,
		keyID:     keyID,
		keySecret: keySecret,
	}
}

// PaymentOrder is the gateway's order object
type PaymentOrder struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"` // in paise
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
	Status   string `json:"status"`
}

// CreateOrder creates a payment order for the given rupee amount
func (c *Client) CreateOrder(amount decimal.Decimal) (*PaymentOrder, error) {
	if !amount.IsPositive() {
		return nil, fmt.Errorf("payment amount must be positive")
	}

	// Razorpay expects the amount in paise
	paise := amount.Mul(decimal.NewFromInt(100)).IntPart()

	payload := map[string]interface{}{
		"amount":   paise,
		"currency": "INR",
		"receipt":  "receipt_" + uuid.NewString(),
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequest(http.MethodPost, c.baseURL+"/orders", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.SetBasicAuth(c.keyID, c.keySecret)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("razorpay request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		data, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("razorpay returned %d: %s", resp.StatusCode, string(data))
	}

	var order PaymentOrder
	if err := json.NewDecoder(resp.Body).Decode(&order); err != nil {
		return nil, fmt.Errorf("failed to decode razorpay response: %w", err)
	}
	return &order, nil
}
