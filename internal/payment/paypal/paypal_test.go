package paypal

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestValidateConfigNormalizes(t *testing.T) {
	cfg := &Config{
		ClientID:     " cid ",
		ClientSecret: " secret ",
		BaseURL:      "https://api-m.sandbox.paypal.com/",
	}
	if err := ValidateConfig(cfg); err != nil {
		t.Fatalf("ValidateConfig should pass, got: %v", err)
	}
	if cfg.ClientID != "cid" {
		t.Fatalf("client id not normalized, got: %s", cfg.ClientID)
	}
	if cfg.BaseURL != "https://api-m.sandbox.paypal.com" {
		t.Fatalf("base url not normalized, got: %s", cfg.BaseURL)
	}
	if err := ValidateConfig(&Config{ClientID: "cid"}); !errors.Is(err, ErrConfigInvalid) {
		t.Fatalf("missing secret should fail, got: %v", err)
	}
}

func newPayPalServer(t *testing.T, captureStatus int, captureBody string, gotRequestID *string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/v1/oauth2/token":
			user, pass, ok := r.BasicAuth()
			if !ok || user != "cid" || pass != "secret" {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			_, _ = w.Write([]byte(`{"access_token":"tok-1"}`))
		case "/v2/checkout/orders/ORDER-1/capture":
			if r.Header.Get("Authorization") != "Bearer tok-1" {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			if gotRequestID != nil {
				*gotRequestID = r.Header.Get("PayPal-Request-Id")
			}
			w.WriteHeader(captureStatus)
			_, _ = w.Write([]byte(captureBody))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
}

func TestCaptureOrderCompleted(t *testing.T) {
	var requestID string
	body := `{"id":"ORDER-1","status":"COMPLETED","purchase_units":[{"payments":{"captures":[{"id":"CAP-9","status":"COMPLETED","amount":{"value":"25.00","currency_code":"USD"},"create_time":"2026-02-09T12:00:00Z"}]}}]}`
	server := newPayPalServer(t, http.StatusCreated, body, &requestID)
	defer server.Close()

	cfg := &Config{ClientID: "cid", ClientSecret: "secret", BaseURL: server.URL}
	result, err := CaptureOrder(context.Background(), cfg, CaptureInput{OrderID: "ORDER-1", RequestID: "req-7"})
	if err != nil {
		t.Fatalf("capture failed: %v", err)
	}
	if !result.Completed() || result.CaptureID != "CAP-9" {
		t.Fatalf("unexpected result: %+v", result)
	}
	if result.Amount != "25.00" || result.Currency != "USD" || result.PaidAt == nil {
		t.Fatalf("unexpected amount info: %+v", result)
	}
	if requestID != "req-7" {
		t.Fatalf("PayPal-Request-Id not sent: %q", requestID)
	}
}

func TestCaptureOrderInstrumentDeclined(t *testing.T) {
	body := `{"name":"UNPROCESSABLE_ENTITY","details":[{"issue":"INSTRUMENT_DECLINED","description":"The instrument presented was either declined by the processor or bank."}]}`
	server := newPayPalServer(t, http.StatusUnprocessableEntity, body, nil)
	defer server.Close()

	cfg := &Config{ClientID: "cid", ClientSecret: "secret", BaseURL: server.URL}
	_, err := CaptureOrder(context.Background(), cfg, CaptureInput{OrderID: "ORDER-1"})
	if !errors.Is(err, ErrInstrumentDeclined) {
		t.Fatalf("expected declined, got: %v", err)
	}
	var declineErr *DeclineError
	if !errors.As(err, &declineErr) || declineErr.Issue != "INSTRUMENT_DECLINED" {
		t.Fatalf("unexpected decline error: %v", err)
	}
}

func TestCaptureOrderServerError(t *testing.T) {
	server := newPayPalServer(t, http.StatusInternalServerError, `{"name":"INTERNAL_SERVER_ERROR"}`, nil)
	defer server.Close()

	cfg := &Config{ClientID: "cid", ClientSecret: "secret", BaseURL: server.URL}
	_, err := CaptureOrder(context.Background(), cfg, CaptureInput{OrderID: "ORDER-1"})
	if !errors.Is(err, ErrRequestFailed) || errors.Is(err, ErrInstrumentDeclined) {
		t.Fatalf("expected request failed, got: %v", err)
	}
}

func TestCaptureOrderAuthFailed(t *testing.T) {
	server := newPayPalServer(t, http.StatusCreated, `{}`, nil)
	defer server.Close()

	cfg := &Config{ClientID: "cid", ClientSecret: "wrong", BaseURL: server.URL}
	_, err := CaptureOrder(context.Background(), cfg, CaptureInput{OrderID: "ORDER-1"})
	if !errors.Is(err, ErrAuthFailed) {
		t.Fatalf("expected auth failure, got: %v", err)
	}
}

func TestReadStringPath(t *testing.T) {
	raw := map[string]interface{}{
		"details": []interface{}{map[string]interface{}{"issue": "X"}},
	}
	if got := readString(raw, "details", "0", "issue"); got != "X" {
		t.Fatalf("unexpected value: %s", got)
	}
	if got := readString(raw, "details", "3", "issue"); got != "" {
		t.Fatalf("out of range should be empty, got: %s", got)
	}
}
