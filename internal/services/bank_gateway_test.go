package services

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestHTTPBankGatewayTransfer(t *testing.T) {
	var got bankTransferRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/transaction/transferByAccount" || r.Method != http.MethodPost {
			http.NotFound(w, r)
			return
		}
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &got)
		switch got.FromAccountNumber {
		case "111":
			_, _ = io.WriteString(w, BankTransferSuccess)
		case "222":
			_, _ = io.WriteString(w, "Insufficient Balance")
		default:
			w.WriteHeader(http.StatusBadRequest)
			_, _ = io.WriteString(w, `{"message":"Account not found"}`)
		}
	}))
	defer srv.Close()

	gw := NewHTTPBankGateway(srv.URL+"/", 2*time.Second)

	res := gw.Transfer("111", "341234", 250, "ticket 1")
	if !res.Success || res.Message != BankTransferSuccess {
		t.Fatalf("success transfer = %+v", res)
	}
	if got.ToAccountNumber != 341234 || got.Amount != 250 || got.Remarks != "ticket 1" {
		t.Fatalf("request body = %+v", got)
	}

	res = gw.Transfer("222", "341234", 250, "")
	if res.Success || res.Message != "Insufficient Balance" {
		t.Fatalf("declined transfer = %+v", res)
	}

	res = gw.Transfer("333", "341234", 250, "")
	if res.Success || res.Message != "Account not found" {
		t.Fatalf("error transfer = %+v", res)
	}
}

func TestHTTPBankGatewayUnreachable(t *testing.T) {
	gw := NewHTTPBankGateway("http://127.0.0.1:1", 500*time.Millisecond)
	res := gw.Transfer("111", "341234", 10, "")
	if res.Success || res.Message == "" {
		t.Fatalf("unreachable bank = %+v", res)
	}
}
