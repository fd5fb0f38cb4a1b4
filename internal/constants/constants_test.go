package constants

import "testing"

func TestNormalizePaymentOption(t *testing.T) {
	cases := map[string]string{
		"S":       PaymentOptionStripe,
		"s":       PaymentOptionStripe,
		"stripe":  PaymentOptionStripe,
		" P ":     PaymentOptionPayPal,
		"PayPal":  PaymentOptionPayPal,
		"X":       "",
		"":        "",
		"bitcoin": "",
	}
	for in, want := range cases {
		if got := NormalizePaymentOption(in); got != want {
			t.Fatalf("NormalizePaymentOption(%q) want %q got %q", in, want, got)
		}
	}
}
