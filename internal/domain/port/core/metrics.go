package core

import "time"

// PaymentMetrics records payment flow outcomes.
// Implementations must be safe for concurrent use.
type PaymentMetrics interface {
	// ObservePaymentStarted counts a start attempt per gateway and outcome
	ObservePaymentStarted(gateway, outcome string)
	// ObserveCallback counts callback deliveries per gateway and outcome
	ObserveCallback(gateway, outcome string)
	// ObserveCredit counts wallet credits per source (gateway name or "admin")
	ObserveCredit(source string, amount float64)
	// ObserveGatewayCall records provider call latency
	ObserveGatewayCall(gateway, operation string, took time.Duration, err error)
}
