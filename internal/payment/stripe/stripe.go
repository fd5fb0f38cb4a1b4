package stripe

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrConfigInvalid   = errors.New("stripe config invalid")
	ErrRequestFailed   = errors.New("stripe request failed")
	ErrResponseInvalid = errors.New("stripe response invalid")
	ErrCardDeclined    = errors.New("stripe card declined")
)

const (
	defaultAPIBaseURL = "https://api.stripe.com"
	defaultTimeout    = 12 * time.Second
	chargesPath       = "/v1/charges"
)

var zeroDecimalCurrencies = map[string]struct{}{
	"BIF": {},
	"CLP": {},
	"DJF": {},
	"GNF": {},
	"JPY": {},
	"KMF": {},
	"KRW": {},
	"MGA": {},
	"PYG": {},
	"RWF": {},
	"UGX": {},
	"VND": {},
	"VUV": {},
	"XAF": {},
	"XOF": {},
	"XPF": {},
}

// Config Stripe 渠道配置。
type Config struct {
	SecretKey      string       `json:"secret_key"`
	PublishableKey string       `json:"publishable_key"`
	APIBaseURL     string       `json:"api_base_url"`
	HTTPClient     *http.Client `json:"-"`
}

// ChargeInput 创建扣款输入。
type ChargeInput struct {
	// Amount 以最小货币单位表示
	Amount         int64
	Currency       string
	Source         string
	Description    string
	IdempotencyKey string
	Metadata       map[string]string
}

// ChargeResult 扣款返回。
type ChargeResult struct {
	ChargeID string
	Status   string
	Paid     bool
	Amount   int64
	Currency string
	PaidAt   *time.Time
	Raw      map[string]interface{}
}

// CardError 卡片被拒，Message 为网关返回的原文。
type CardError struct {
	Code        string
	DeclineCode string
	Message     string
}

func (e *CardError) Error() string {
	if e == nil {
		return ErrCardDeclined.Error()
	}
	if e.Message == "" {
		return ErrCardDeclined.Error()
	}
	return ErrCardDeclined.Error() + ": " + e.Message
}

// Unwrap 便于 errors.Is(err, ErrCardDeclined)
func (e *CardError) Unwrap() error {
	return ErrCardDeclined
}

// APIError 非卡片类错误（鉴权、参数、限流、网关故障）。
type APIError struct {
	StatusCode int
	Type       string
	Code       string
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: status %d type %s code %s", ErrRequestFailed.Error(), e.StatusCode, e.Type, e.Code)
}

// Unwrap 便于 errors.Is(err, ErrRequestFailed)
func (e *APIError) Unwrap() error {
	return ErrRequestFailed
}

// ValidateConfig 校验配置。
func ValidateConfig(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("%w: config is nil", ErrConfigInvalid)
	}
	cfg.normalize()
	if cfg.SecretKey == "" {
		return fmt.Errorf("%w: secret_key is required", ErrConfigInvalid)
	}
	parsed, err := url.Parse(cfg.APIBaseURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("%w: api_base_url is invalid", ErrConfigInvalid)
	}
	return nil
}

// CreateCharge 使用前端 token 直接扣款。
func CreateCharge(ctx context.Context, cfg *Config, input ChargeInput) (*ChargeResult, error) {
	if err := ValidateConfig(cfg); err != nil {
		return nil, err
	}
	if input.Amount <= 0 {
		return nil, fmt.Errorf("%w: amount must be greater than zero", ErrConfigInvalid)
	}
	source := strings.TrimSpace(input.Source)
	if source == "" {
		return nil, fmt.Errorf("%w: source token is required", ErrConfigInvalid)
	}
	currency := strings.ToLower(strings.TrimSpace(input.Currency))
	if currency == "" {
		currency = "usd"
	}

	form := url.Values{}
	form.Set("amount", strconv.FormatInt(input.Amount, 10))
	form.Set("currency", currency)
	form.Set("source", source)
	if desc := strings.TrimSpace(input.Description); desc != "" {
		form.Set("description", desc)
	}
	keys := make([]string, 0, len(input.Metadata))
	for key := range input.Metadata {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		form.Set("metadata["+key+"]", input.Metadata[key])
	}

	body, statusCode, err := doFormRequest(ctx, cfg, http.MethodPost, chargesPath, form, strings.TrimSpace(input.IdempotencyKey))
	if err != nil {
		return nil, err
	}
	raw, err := decodeRawMap(body)
	if err != nil {
		return nil, err
	}
	if statusCode < 200 || statusCode >= 300 {
		return nil, parseAPIError(statusCode, raw)
	}

	result := &ChargeResult{
		ChargeID: strings.TrimSpace(readString(raw, "id")),
		Status:   strings.ToLower(strings.TrimSpace(readString(raw, "status"))),
		Paid:     readBool(raw, "paid"),
		Amount:   readInt64(raw, "amount"),
		Currency: strings.ToLower(strings.TrimSpace(readString(raw, "currency"))),
		Raw:      raw,
	}
	if result.ChargeID == "" {
		return nil, fmt.Errorf("%w: missing charge id", ErrResponseInvalid)
	}
	if created := readInt64(raw, "created"); created > 0 {
		paidAt := time.Unix(created, 0).UTC()
		result.PaidAt = &paidAt
	}
	if !result.Paid && result.Status == "failed" {
		return nil, &CardError{
			Code:    readString(raw, "failure_code"),
			Message: readString(raw, "failure_message"),
		}
	}
	return result, nil
}

// ToMinorAmount 将金额字符串按币种换算为最小货币单位。
func ToMinorAmount(amount string, currency string) (int64, error) {
	parsed, err := decimal.NewFromString(strings.TrimSpace(amount))
	if err != nil {
		return 0, fmt.Errorf("%w: amount is invalid", ErrConfigInvalid)
	}
	if parsed.LessThanOrEqual(decimal.Zero) {
		return 0, fmt.Errorf("%w: amount must be greater than zero", ErrConfigInvalid)
	}
	minor := parsed.Shift(int32(currencyScale(currency))).Round(0)
	return minor.IntPart(), nil
}

func currencyScale(currency string) int {
	if _, ok := zeroDecimalCurrencies[strings.ToUpper(strings.TrimSpace(currency))]; ok {
		return 0
	}
	return 2
}

func parseAPIError(statusCode int, raw map[string]interface{}) error {
	errMap := readMap(raw, "error")
	errType := readString(errMap, "type")
	if errType == "card_error" || statusCode == http.StatusPaymentRequired {
		return &CardError{
			Code:        readString(errMap, "code"),
			DeclineCode: readString(errMap, "decline_code"),
			Message:     readString(errMap, "message"),
		}
	}
	return &APIError{
		StatusCode: statusCode,
		Type:       errType,
		Code:       readString(errMap, "code"),
		Message:    readString(errMap, "message"),
	}
}

func (c *Config) normalize() {
	c.SecretKey = strings.TrimSpace(c.SecretKey)
	c.PublishableKey = strings.TrimSpace(c.PublishableKey)
	c.APIBaseURL = strings.TrimRight(strings.TrimSpace(c.APIBaseURL), "/")
	if c.APIBaseURL == "" {
		c.APIBaseURL = defaultAPIBaseURL
	}
}

func (c *Config) client() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return &http.Client{Timeout: defaultTimeout}
}

func doFormRequest(ctx context.Context, cfg *Config, method, path string, form url.Values, idempotencyKey string) ([]byte, int, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	endpoint := cfg.APIBaseURL + path
	req, err := http.NewRequestWithContext(ctx, method, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, 0, fmt.Errorf("%w: build request failed", ErrRequestFailed)
	}
	req.Header.Set("Authorization", "Bearer "+cfg.SecretKey)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if idempotencyKey != "" {
		req.Header.Set("Idempotency-Key", idempotencyKey)
	}

	resp, err := cfg.client().Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("%w: read response failed", ErrResponseInvalid)
	}
	return body, resp.StatusCode, nil
}

func decodeRawMap(body []byte) (map[string]interface{}, error) {
	var raw map[string]interface{}
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("%w: decode response failed", ErrResponseInvalid)
	}
	return raw, nil
}

func readString(raw map[string]interface{}, key string) string {
	if raw == nil {
		return ""
	}
	value, ok := raw[key]
	if !ok || value == nil {
		return ""
	}
	switch v := value.(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case json.Number:
		return v.String()
	default:
		return fmt.Sprintf("%v", v)
	}
}

func readMap(raw map[string]interface{}, key string) map[string]interface{} {
	if raw == nil {
		return nil
	}
	value, ok := raw[key].(map[string]interface{})
	if !ok {
		return nil
	}
	return value
}

func readBool(raw map[string]interface{}, key string) bool {
	if raw == nil {
		return false
	}
	value, ok := raw[key].(bool)
	return ok && value
}

func readInt64(raw map[string]interface{}, key string) int64 {
	if raw == nil {
		return 0
	}
	switch v := raw[key].(type) {
	case float64:
		return int64(v)
	case string:
		parsed, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		if err != nil {
			return 0
		}
		return parsed
	default:
		return 0
	}
}
