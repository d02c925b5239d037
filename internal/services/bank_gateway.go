package services

import (
	"strconv"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
)

// BankTransferSuccess is the exact body the bank returns for a completed
// transfer. Anything else is a failure message.
const BankTransferSuccess = "Transaction Successful"

type TransferResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type BankGateway interface {
	Transfer(fromAccount, toAccount string, amount float64, remarks string) TransferResult
}

type bankTransferRequest struct {
	FromAccountNumber string  `json:"fromAccountNumber"`
	ToAccountNumber   int64   `json:"toAccountNumber"`
	Amount            float64 `json:"amount"`
	Remarks           string  `json:"remarks"`
}

type HTTPBankGateway struct {
	baseURL string
	timeout time.Duration
}

func NewHTTPBankGateway(baseURL string, timeout time.Duration) *HTTPBankGateway {
	return &HTTPBankGateway{baseURL: strings.TrimRight(baseURL, "/"), timeout: timeout}
}

// Transfer posts to the bank's transfer endpoint. The call is not retried.
func (g *HTTPBankGateway) Transfer(fromAccount, toAccount string, amount float64, remarks string) TransferResult {
	to, err := strconv.ParseInt(toAccount, 10, 64)
	if err != nil {
		return TransferResult{Message: "Invalid destination account"}
	}

	agent := fiber.Post(g.baseURL + "/transaction/transferByAccount")
	agent.JSONEncoder(sonic.Marshal)
	agent.Timeout(g.timeout)
	agent.JSON(bankTransferRequest{
		FromAccountNumber: fromAccount,
		ToAccountNumber:   to,
		Amount:            amount,
		Remarks:           remarks,
	})

	_, body, errs := agent.String()
	if len(errs) > 0 {
		return TransferResult{Message: "Bank payment processing failed. Please try again."}
	}

	body = strings.TrimSpace(body)
	if body == BankTransferSuccess {
		return TransferResult{Success: true, Message: body}
	}
	if body == "" {
		body = "Bank payment failed"
	}
	return TransferResult{Message: bankMessage(body)}
}

// bankMessage extracts "message" from a JSON error body, or returns the body
// unchanged.
func bankMessage(body string) string {
	var payload struct {
		Message string `json:"message"`
	}
	if strings.HasPrefix(body, "{") && sonic.UnmarshalString(body, &payload) == nil && payload.Message != "" {
		return payload.Message
	}
	return body
}
