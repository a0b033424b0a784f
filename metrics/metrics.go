package metrics

import "time"

// Recorder collects checkout counters and upstream latencies. The noop
// implementation is the default so library users pay nothing for it.
type Recorder interface {
	IncCounter(name string, labels map[string]string)
	ObserveLatency(name string, d time.Duration, labels map[string]string)
}

// Counter names used across the service.
const (
	SessionCreated   = "session_created"
	PaymentStarted   = "payment_started"
	PaymentExpired   = "payment_expired"
	PaymentCancelled = "payment_cancelled"
	AddressFallback  = "address_fallback"
	PriceFetchError  = "price_fetch_error"
)
