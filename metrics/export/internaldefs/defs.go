package internaldefs

import (
	legendsauth "github.com/Legends-MIXOFMASTER/legends-2.0m-sub001"
)

// CounterDef defines a public type used by legendsauth APIs.
//
// CounterDef instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type CounterDef struct {
	ID   legendsauth.MetricID
	Name string
	Help string
}

// HistogramDef defines a public type used by legendsauth APIs.
//
// HistogramDef instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type HistogramDef struct {
	ID   legendsauth.MetricID
	Name string
	Help string
}

// CounterDefs is an exported constant or variable used by the authentication provider.
var CounterDefs = []CounterDef{
	{ID: legendsauth.MetricLoginSuccess, Name: "legends_auth_login_success_total", Help: "Successful login attempts."},
	{ID: legendsauth.MetricLoginFailure, Name: "legends_auth_login_failure_total", Help: "Failed login attempts."},
	{ID: legendsauth.MetricLoginRejected, Name: "legends_auth_login_rejected_total", Help: "Submissions rejected before reaching the exchange."},
	{ID: legendsauth.MetricLoginTimeout, Name: "legends_auth_login_timeout_total", Help: "Login attempts that exceeded the exchange deadline."},
	{ID: legendsauth.MetricRegisterSuccess, Name: "legends_auth_register_success_total", Help: "Successful registrations."},
	{ID: legendsauth.MetricRegisterFailure, Name: "legends_auth_register_failure_total", Help: "Failed registrations."},
	{ID: legendsauth.MetricLogout, Name: "legends_auth_logout_total", Help: "Logout operations."},
	{ID: legendsauth.MetricRestoreAuthenticated, Name: "legends_auth_restore_authenticated_total", Help: "Restores that rehydrated an authenticated session."},
	{ID: legendsauth.MetricRestoreAnonymous, Name: "legends_auth_restore_anonymous_total", Help: "Restores that degraded to the anonymous session."},
}

// HistogramDefs is an exported constant or variable used by the authentication provider.
var HistogramDefs = []HistogramDef{
	{ID: legendsauth.MetricExchangeLatency, Name: "legends_auth_exchange_latency_seconds", Help: "Credential exchange latency histogram."},
}

// HistogramBounds is an exported constant or variable used by the authentication provider.
var HistogramBounds = []string{
	"0.005",
	"0.01",
	"0.025",
	"0.05",
	"0.1",
	"0.25",
	"0.5",
	"+Inf",
}

// HistogramBoundSuffix is an exported constant or variable used by the authentication provider.
var HistogramBoundSuffix = []string{
	"0_005",
	"0_01",
	"0_025",
	"0_05",
	"0_1",
	"0_25",
	"0_5",
	"inf",
}

// NormalizeBuckets describes the normalizebuckets operation and its observable behavior.
//
// NormalizeBuckets may return an error when input validation, dependency calls, or security checks fail.
// NormalizeBuckets does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func NormalizeBuckets(raw []uint64) [8]uint64 {
	var out [8]uint64
	for i := 0; i < len(out) && i < len(raw); i++ {
		out[i] = raw[i]
	}
	return out
}

// CumulativeBuckets describes the cumulativebuckets operation and its observable behavior.
//
// CumulativeBuckets may return an error when input validation, dependency calls, or security checks fail.
// CumulativeBuckets does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func CumulativeBuckets(raw [8]uint64) [8]uint64 {
	var out [8]uint64
	var running uint64
	for i := 0; i < len(raw); i++ {
		running += raw[i]
		out[i] = running
	}
	return out
}
