package paypal

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

var (
	ErrConfigInvalid      = errors.New("paypal config invalid")
	ErrAuthFailed         = errors.New("paypal auth failed")
	ErrRequestFailed      = errors.New("paypal request failed")
	ErrResponseInvalid    = errors.New("paypal response invalid")
	ErrInstrumentDeclined = errors.New("paypal instrument declined")
)

const (
	defaultSandboxBaseURL = "https://api-m.sandbox.paypal.com"
	defaultTimeout        = 12 * time.Second
	statusCompleted       = "COMPLETED"
)

// Config PayPal 渠道配置。
type Config struct {
	ClientID     string       `json:"client_id"`
	ClientSecret string       `json:"client_secret"`
	BaseURL      string       `json:"base_url"`
	HTTPClient   *http.Client `json:"-"`
}

// CaptureInput 捕获已授权订单的输入。
type CaptureInput struct {
	// OrderID 买家在前端批准后的 PayPal 订单号
	OrderID string
	// RequestID 幂等请求号，透传为 PayPal-Request-Id
	RequestID string
}

// CaptureResult 捕获结果。
type CaptureResult struct {
	OrderID   string
	CaptureID string
	Status    string
	Amount    string
	Currency  string
	PaidAt    *time.Time
	Raw       map[string]interface{}
}

// Completed 是否已完成扣款
func (r *CaptureResult) Completed() bool {
	return r != nil && strings.EqualFold(r.Status, statusCompleted)
}

// DeclineError 支付工具被拒，Message 为网关返回的原文。
type DeclineError struct {
	Issue   string
	Message string
}

func (e *DeclineError) Error() string {
	if e == nil || e.Message == "" {
		return ErrInstrumentDeclined.Error()
	}
	return ErrInstrumentDeclined.Error() + ": " + e.Message
}

// Unwrap 便于 errors.Is(err, ErrInstrumentDeclined)
func (e *DeclineError) Unwrap() error {
	return ErrInstrumentDeclined
}

var declineIssues = map[string]struct{}{
	"INSTRUMENT_DECLINED":                     {},
	"PAYER_ACTION_REQUIRED":                   {},
	"TRANSACTION_REFUSED":                     {},
	"PAYER_CANNOT_PAY":                        {},
	"PAYEE_BLOCKED_TRANSACTION":               {},
	"MAX_NUMBER_OF_PAYMENT_ATTEMPTS_EXCEEDED": {},
}

// ValidateConfig 校验配置。
func ValidateConfig(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("%w: config is nil", ErrConfigInvalid)
	}
	cfg.normalize()
	if cfg.ClientID == "" {
		return fmt.Errorf("%w: client_id is required", ErrConfigInvalid)
	}
	if cfg.ClientSecret == "" {
		return fmt.Errorf("%w: client_secret is required", ErrConfigInvalid)
	}
	parsed, err := url.Parse(cfg.BaseURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("%w: base_url is invalid", ErrConfigInvalid)
	}
	return nil
}

// CaptureOrder 捕获买家已批准的订单。
func CaptureOrder(ctx context.Context, cfg *Config, input CaptureInput) (*CaptureResult, error) {
	if err := ValidateConfig(cfg); err != nil {
		return nil, err
	}
	orderID := strings.TrimSpace(input.OrderID)
	if orderID == "" {
		return nil, fmt.Errorf("%w: order id is empty", ErrConfigInvalid)
	}

	token, err := getAccessToken(ctx, cfg)
	if err != nil {
		return nil, err
	}

	endpoint := "/v2/checkout/orders/" + url.PathEscape(orderID) + "/capture"
	headers := map[string]string{}
	if requestID := strings.TrimSpace(input.RequestID); requestID != "" {
		headers["PayPal-Request-Id"] = requestID
	}
	respBody, statusCode, err := doJSONRequest(ctx, cfg, http.MethodPost, endpoint, token, []byte("{}"), headers)
	if err != nil {
		return nil, err
	}

	var raw map[string]interface{}
	if err := json.Unmarshal(respBody, &raw); err != nil {
		return nil, fmt.Errorf("%w: decode response failed", ErrResponseInvalid)
	}
	if statusCode < 200 || statusCode >= 300 {
		return nil, parseErrorResponse(statusCode, raw)
	}

	result := &CaptureResult{Raw: raw}
	result.OrderID = strings.TrimSpace(readString(raw, "id"))
	result.Status = strings.TrimSpace(readString(raw, "status"))

	captures := readArray(raw, "purchase_units", "0", "payments", "captures")
	if len(captures) > 0 {
		if captureMap, ok := captures[0].(map[string]interface{}); ok {
			result.CaptureID = strings.TrimSpace(readString(captureMap, "id"))
			if status := strings.TrimSpace(readString(captureMap, "status")); status != "" {
				result.Status = status
			}
			result.Amount = strings.TrimSpace(readString(captureMap, "amount", "value"))
			result.Currency = strings.TrimSpace(readString(captureMap, "amount", "currency_code"))
			if rawTime := strings.TrimSpace(readString(captureMap, "create_time")); rawTime != "" {
				if parsed, err := time.Parse(time.RFC3339, rawTime); err == nil {
					result.PaidAt = &parsed
				}
			}
		}
	}

	if result.OrderID == "" {
		result.OrderID = orderID
	}
	if result.Status == "" {
		return nil, fmt.Errorf("%w: missing capture status", ErrResponseInvalid)
	}
	if strings.EqualFold(result.Status, "DECLINED") {
		return nil, &DeclineError{Issue: "DECLINED", Message: "The instrument presented was declined."}
	}
	if result.CaptureID == "" {
		return nil, fmt.Errorf("%w: missing capture id", ErrResponseInvalid)
	}
	return result, nil
}

func parseErrorResponse(statusCode int, raw map[string]interface{}) error {
	issue := strings.ToUpper(strings.TrimSpace(readString(raw, "details", "0", "issue")))
	message := strings.TrimSpace(readString(raw, "details", "0", "description"))
	if message == "" {
		message = strings.TrimSpace(readString(raw, "message"))
	}
	if statusCode == http.StatusUnprocessableEntity {
		if _, ok := declineIssues[issue]; ok {
			return &DeclineError{Issue: issue, Message: message}
		}
	}
	name := strings.TrimSpace(readString(raw, "name"))
	return fmt.Errorf("%w: capture status %d %s %s", ErrRequestFailed, statusCode, name, issue)
}

func (c *Config) normalize() {
	c.ClientID = strings.TrimSpace(c.ClientID)
	c.ClientSecret = strings.TrimSpace(c.ClientSecret)
	c.BaseURL = strings.TrimRight(strings.TrimSpace(c.BaseURL), "/")
	if c.BaseURL == "" {
		c.BaseURL = defaultSandboxBaseURL
	}
}

func (c *Config) client() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return http.DefaultClient
}

func getAccessToken(ctx context.Context, cfg *Config) (string, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := withDefaultTimeout(ctx)
	defer cancel()

	values := url.Values{}
	values.Set("grant_type", "client_credentials")
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, cfg.BaseURL+"/v1/oauth2/token", strings.NewReader(values.Encode()))
	if err != nil {
		return "", fmt.Errorf("%w: build token request failed", ErrAuthFailed)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.SetBasicAuth(cfg.ClientID, cfg.ClientSecret)

	resp, err := cfg.client().Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: request token failed", ErrAuthFailed)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: read token response failed", ErrAuthFailed)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("%w: token status %d", ErrAuthFailed, resp.StatusCode)
	}

	var parsed map[string]interface{}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("%w: decode token response failed", ErrAuthFailed)
	}
	token := strings.TrimSpace(readString(parsed, "access_token"))
	if token == "" {
		return "", fmt.Errorf("%w: access_token is empty", ErrAuthFailed)
	}
	return token, nil
}

func doJSONRequest(ctx context.Context, cfg *Config, method, endpoint, token string, body []byte, headers map[string]string) ([]byte, int, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := withDefaultTimeout(ctx)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, method, cfg.BaseURL+endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, 0, fmt.Errorf("%w: build request failed", ErrRequestFailed)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if strings.TrimSpace(token) != "" {
		req.Header.Set("Authorization", "Bearer "+strings.TrimSpace(token))
	}
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	resp, err := cfg.client().Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: http request failed", ErrRequestFailed)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("%w: read response failed", ErrRequestFailed)
	}
	return respBody, resp.StatusCode, nil
}

func withDefaultTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if _, ok := ctx.Deadline(); ok {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, defaultTimeout)
}

func readString(raw map[string]interface{}, path ...string) string {
	if raw == nil {
		return ""
	}
	var current interface{} = raw
	for _, seg := range path {
		if idx, err := strconv.Atoi(seg); err == nil {
			arr, ok := current.([]interface{})
			if !ok || idx < 0 || idx >= len(arr) {
				return ""
			}
			current = arr[idx]
			continue
		}
		next, ok := current.(map[string]interface{})
		if !ok {
			return ""
		}
		current = next[seg]
	}
	if current == nil {
		return ""
	}
	if str, ok := current.(string); ok {
		return str
	}
	return fmt.Sprintf("%v", current)
}

func readArray(raw map[string]interface{}, path ...string) []interface{} {
	if raw == nil {
		return nil
	}
	var current interface{} = raw
	for _, seg := range path {
		if idx, err := strconv.Atoi(seg); err == nil {
			arr, ok := current.([]interface{})
			if !ok || idx < 0 || idx >= len(arr) {
				return nil
			}
			current = arr[idx]
			continue
		}
		next, ok := current.(map[string]interface{})
		if !ok {
			return nil
		}
		current = next[seg]
	}
	arr, ok := current.([]interface{})
	if !ok {
		return nil
	}
	return arr
}
