package utils

import (
	"lms/config"
	"math/rand"
	"time"

	"github.com/google/uuid"
)

// PaymentResult mimics the response shape of a real payment gateway.
type PaymentResult struct {
	Success       bool    `json:"success"`
	TransactionID string  `json:"transactionId,omitempty"`
	Amount        float64 `json:"amount"`
	Currency      string  `json:"currency"`
	Timestamp     string  `json:"timestamp"`
	Status        string  `json:"status"`
	PaymentMethod string  `json:"paymentMethod"`
	OrderID       string  `json:"orderId"`
}

// ProcessPayment simulates a payment gateway call. PAYMENT_FAIL_RATE makes
// a configurable percentage of charges fail so the failure path stays
// exercised; the default is 0 (every charge succeeds).
func ProcessPayment(orderID string, amount float64) PaymentResult {
	result := PaymentResult{
		Amount:        amount,
		Currency:      config.AppConfig.CurrencyCode,
		Timestamp:     time.Now().UTC().Format(time.RFC3339),
		PaymentMethod: "test_card",
		OrderID:       orderID,
	}

	if rand.Intn(100) < config.AppConfig.PaymentFailRate {
		result.Success = false
		result.Status = "failed"
		return result
	}

	result.Success = true
	result.Status = "completed"
	result.TransactionID = "TXN_" + uuid.NewString()
	return result
}
