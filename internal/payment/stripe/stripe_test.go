package stripe

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
)

func TestValidateConfigNormalizes(t *testing.T) {
	cfg := &Config{
		SecretKey:      " sk_test_123 ",
		PublishableKey: " pk_test_123 ",
	}
	if err := ValidateConfig(cfg); err != nil {
		t.Fatalf("validate config failed: %v", err)
	}
	if cfg.SecretKey != "sk_test_123" {
		t.Fatalf("unexpected secret key: %s", cfg.SecretKey)
	}
	if cfg.APIBaseURL != defaultAPIBaseURL {
		t.Fatalf("unexpected default api base url: %s", cfg.APIBaseURL)
	}
	if err := ValidateConfig(&Config{}); !errors.Is(err, ErrConfigInvalid) {
		t.Fatalf("empty config should be invalid, got: %v", err)
	}
}

func TestCreateChargeSendsFormAndIdempotencyKey(t *testing.T) {
	var gotForm url.Values
	var gotKey, gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != chargesPath {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		body, _ := io.ReadAll(r.Body)
		gotForm, _ = url.ParseQuery(string(body))
		gotKey = r.Header.Get("Idempotency-Key")
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"ch_123","status":"succeeded","paid":true,"amount":2500,"currency":"usd","created":1760000000}`))
	}))
	defer server.Close()

	cfg := &Config{SecretKey: "sk_test", APIBaseURL: server.URL}
	result, err := CreateCharge(context.Background(), cfg, ChargeInput{
		Amount:         2500,
		Currency:       "USD",
		Source:         "tok_visa",
		IdempotencyKey: "key-1",
		Metadata:       map[string]string{"order_id": "7"},
	})
	if err != nil {
		t.Fatalf("create charge failed: %v", err)
	}
	if result.ChargeID != "ch_123" || !result.Paid || result.Amount != 2500 {
		t.Fatalf("unexpected result: %+v", result)
	}
	if result.PaidAt == nil {
		t.Fatalf("paid at should be parsed")
	}
	if gotForm.Get("amount") != "2500" || gotForm.Get("currency") != "usd" || gotForm.Get("source") != "tok_visa" {
		t.Fatalf("unexpected form: %v", gotForm)
	}
	if gotForm.Get("metadata[order_id]") != "7" {
		t.Fatalf("metadata missing: %v", gotForm)
	}
	if gotKey != "key-1" {
		t.Fatalf("idempotency key not sent: %q", gotKey)
	}
	if gotAuth != "Bearer sk_test" {
		t.Fatalf("unexpected auth header: %q", gotAuth)
	}
}

func TestCreateChargeCardError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusPaymentRequired)
		_, _ = w.Write([]byte(`{"error":{"type":"card_error","code":"card_declined","decline_code":"insufficient_funds","message":"Your card has insufficient funds."}}`))
	}))
	defer server.Close()

	_, err := CreateCharge(context.Background(), &Config{SecretKey: "sk", APIBaseURL: server.URL}, ChargeInput{Amount: 100, Source: "tok_chargeDeclined"})
	if !errors.Is(err, ErrCardDeclined) {
		t.Fatalf("expected card declined, got: %v", err)
	}
	var cardErr *CardError
	if !errors.As(err, &cardErr) {
		t.Fatalf("expected *CardError, got: %T", err)
	}
	if cardErr.Message != "Your card has insufficient funds." || cardErr.DeclineCode != "insufficient_funds" {
		t.Fatalf("unexpected card error: %+v", cardErr)
	}
}

func TestCreateChargeAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"type":"invalid_request_error","message":"Invalid API Key provided"}}`))
	}))
	defer server.Close()

	_, err := CreateCharge(context.Background(), &Config{SecretKey: "sk", APIBaseURL: server.URL}, ChargeInput{Amount: 100, Source: "tok"})
	if !errors.Is(err, ErrRequestFailed) || errors.Is(err, ErrCardDeclined) {
		t.Fatalf("expected request failed, got: %v", err)
	}
	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.StatusCode != http.StatusUnauthorized {
		t.Fatalf("unexpected api error: %v", err)
	}
}

func TestCreateChargeRejectsInvalidInput(t *testing.T) {
	cfg := &Config{SecretKey: "sk"}
	if _, err := CreateCharge(context.Background(), cfg, ChargeInput{Amount: 0, Source: "tok"}); !errors.Is(err, ErrConfigInvalid) {
		t.Fatalf("zero amount should fail, got: %v", err)
	}
	if _, err := CreateCharge(context.Background(), cfg, ChargeInput{Amount: 10, Source: " "}); !errors.Is(err, ErrConfigInvalid) {
		t.Fatalf("blank source should fail, got: %v", err)
	}
}

func TestToMinorAmount(t *testing.T) {
	minor, err := ToMinorAmount("25.00", "usd")
	if err != nil || minor != 2500 {
		t.Fatalf("unexpected usd minor: %d %v", minor, err)
	}
	minor, err = ToMinorAmount("1200", "JPY")
	if err != nil || minor != 1200 {
		t.Fatalf("unexpected jpy minor: %d %v", minor, err)
	}
	if _, err := ToMinorAmount("-1", "usd"); err == nil {
		t.Fatalf("negative amount should fail")
	}
}
