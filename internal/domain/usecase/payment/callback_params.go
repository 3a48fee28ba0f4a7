package payment

import (
	"net/url"
	"strings"

	"github.com/amirhossein-jamali/wallet-funding/internal/domain/port/gateway"
	"github.com/amirhossein-jamali/wallet-funding/internal/domain/port/usecase"
)

// Token keys in priority order. Zarinpal sends Authority, Pay.ir sends token.
var (
	authorityKeys = []string{"Authority", "token", "authority"}
	statusKeys    = []string{"Status", "status"}
)

// cancellationHints are status values any provider may use for an abandoned payment
var cancellationHints = map[string]struct{}{
	"nok":       {},
	"failed":    {},
	"error":     {},
	"cancel":    {},
	"canceled":  {},
	"cancelled": {},
}

// ParseCallbackParams extracts the correlation token and status from a provider callback.
// Exact key matches win; otherwise keys are matched case-insensitively.
func ParseCallbackParams(values url.Values) usecase.CallbackRequest {
	return usecase.CallbackRequest{
		Authority: firstValue(values, authorityKeys),
		Status:    firstValue(values, statusKeys),
	}
}

func firstValue(values url.Values, keys []string) string {
	for _, key := range keys {
		if v := strings.TrimSpace(values.Get(key)); v != "" {
			return v
		}
	}
	for _, key := range keys {
		for k, vs := range values {
			if !strings.EqualFold(k, key) {
				continue
			}
			for _, v := range vs {
				if v = strings.TrimSpace(v); v != "" {
					return v
				}
			}
		}
	}
	return ""
}

// isCancellation reports whether the callback status means the user abandoned the payment
func isCancellation(client gateway.Client, status string) bool {
	status = strings.TrimSpace(status)
	if status == "" {
		return false
	}
	if _, ok := cancellationHints[strings.ToLower(status)]; ok {
		return true
	}
	// client is nil when the transaction's gateway is not registered
	if detector, ok := client.(gateway.CancellationDetector); ok {
		return detector.IsCancellation(status)
	}
	return false
}
