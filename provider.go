package legendsauth

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Legends-MIXOFMASTER/legends-2.0m-sub001/exchange"
	"github.com/Legends-MIXOFMASTER/legends-2.0m-sub001/internal/telemetry"
	"github.com/Legends-MIXOFMASTER/legends-2.0m-sub001/permission"
	"github.com/Legends-MIXOFMASTER/legends-2.0m-sub001/session"
)

// Provider defines a public type used by legendsauth APIs.
//
// Provider instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Provider struct {
	config    Config
	matrix    *permission.Matrix
	store     *session.Store
	exchanger exchange.Exchanger
	telemetry *telemetry.Dispatcher
	metrics   *Metrics

	// mu guards the attempt lifecycle: the in-flight flag and the session
	// epoch. The epoch advances on every logout; an attempt settling under a
	// different epoch than it started with has been superseded and must not
	// touch the session.
	mu       sync.Mutex
	epoch    uint64
	inFlight bool
}

// Close describes the close operation and its observable behavior.
//
// Close may return an error when input validation, dependency calls, or security checks fail.
// Close does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (p *Provider) Close() {
	if p == nil {
		return
	}
	if p.telemetry != nil {
		p.telemetry.Close()
	}
}

// TelemetryDropped describes the telemetrydropped operation and its observable behavior.
//
// TelemetryDropped may return an error when input validation, dependency calls, or security checks fail.
// TelemetryDropped does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (p *Provider) TelemetryDropped() uint64 {
	if p == nil || p.telemetry == nil {
		return 0
	}
	return p.telemetry.Dropped()
}

// MetricsSnapshot describes the metricssnapshot operation and its observable behavior.
//
// MetricsSnapshot may return an error when input validation, dependency calls, or security checks fail.
// MetricsSnapshot does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (p *Provider) MetricsSnapshot() MetricsSnapshot {
	if p == nil || p.metrics == nil {
		return MetricsSnapshot{
			Counters:   map[MetricID]uint64{},
			Histograms: map[MetricID][]uint64{},
		}
	}
	return p.metrics.Snapshot()
}

func (p *Provider) metricInc(id MetricID) {
	if p == nil || p.metrics == nil {
		return
	}
	p.metrics.Inc(id)
}

// Login submits credentials to the exchange and settles the session.
//
// Validation failures and in-flight collisions are rejected before the
// exchange is contacted and leave the session untouched. Otherwise the
// session passes through [session.StatusAuthenticating] and settles either
// authenticated or errored with a failure reason. An attempt that settles
// after a logout is discarded and reported as [ErrSessionSuperseded].
//
// The returned session is the state the attempt settled on.
func (p *Provider) Login(ctx context.Context, identifier, password string) (session.Session, error) {
	if p == nil || p.store == nil || p.exchanger == nil {
		return session.Anonymous(), ErrProviderNotReady
	}

	if verr := p.validateLogin(identifier, password); verr != nil {
		p.metricInc(MetricLoginRejected)
		p.emitTelemetry(ctx, telemetryEventLogin, false, "", "", verr, func() map[string]string {
			return map[string]string{"rejected": "validation"}
		})
		return p.Session(), verr
	}

	epoch, err := p.beginAttempt()
	if err != nil {
		p.metricInc(MetricLoginRejected)
		p.emitTelemetry(ctx, telemetryEventLogin, false, "", "", err, func() map[string]string {
			return map[string]string{"rejected": "in_flight"}
		})
		return p.Session(), err
	}

	attemptID := uuid.NewString()
	p.store.Set(session.Session{Role: permission.RoleGuest, Status: session.StatusAuthenticating})

	exchangeCtx, cancel := context.WithTimeout(ctx, p.config.Exchange.Timeout)
	defer cancel()

	start := time.Now()
	result, exchErr := p.exchanger.Login(exchangeCtx, identifier, password)
	p.metrics.Observe(MetricExchangeLatency, time.Since(start))

	return p.settle(ctx, settlement{
		epoch:     epoch,
		attemptID: attemptID,
		eventType: telemetryEventLogin,
		successID: MetricLoginSuccess,
		failureID: MetricLoginFailure,
		timeoutID: MetricLoginTimeout,
	}, result, exchErr)
}

// Register submits a new account profile to the exchange and, on success,
// settles the session authenticated as the new account.
//
// Register follows the same attempt lifecycle as [Provider.Login]: one
// attempt at a time, logout wins, validation precedes the exchange.
func (p *Provider) Register(ctx context.Context, req RegisterRequest) (session.Session, error) {
	if p == nil || p.store == nil || p.exchanger == nil {
		return session.Anonymous(), ErrProviderNotReady
	}

	if verr := p.validateRegister(req); verr != nil {
		p.metricInc(MetricLoginRejected)
		p.emitTelemetry(ctx, telemetryEventRegister, false, "", "", verr, func() map[string]string {
			return map[string]string{"rejected": "validation"}
		})
		return p.Session(), verr
	}

	epoch, err := p.beginAttempt()
	if err != nil {
		p.metricInc(MetricLoginRejected)
		p.emitTelemetry(ctx, telemetryEventRegister, false, "", "", err, func() map[string]string {
			return map[string]string{"rejected": "in_flight"}
		})
		return p.Session(), err
	}

	attemptID := uuid.NewString()
	p.store.Set(session.Session{Role: permission.RoleGuest, Status: session.StatusAuthenticating})

	exchangeCtx, cancel := context.WithTimeout(ctx, p.config.Exchange.Timeout)
	defer cancel()

	start := time.Now()
	result, exchErr := p.exchanger.Register(exchangeCtx, exchange.Profile{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	p.metrics.Observe(MetricExchangeLatency, time.Since(start))

	return p.settle(ctx, settlement{
		epoch:     epoch,
		attemptID: attemptID,
		eventType: telemetryEventRegister,
		successID: MetricRegisterSuccess,
		failureID: MetricRegisterFailure,
		timeoutID: MetricRegisterFailure,
	}, result, exchErr)
}

// Logout unconditionally returns the session to anonymous.
//
// Logout never fails: the in-memory transition always happens, the persisted
// record is cleared best-effort, and any attempt still in flight is
// superseded.
func (p *Provider) Logout(ctx context.Context) error {
	if p == nil || p.store == nil {
		return nil
	}

	p.mu.Lock()
	p.epoch++
	previous := p.store.Current()
	p.store.Set(session.Anonymous())
	if err := p.store.Clear(ctx); err != nil {
		log.Print("legendsauth: failed to clear persisted session on logout: ", err)
	}
	p.mu.Unlock()

	p.metricInc(MetricLogout)

	var userID, role string
	if previous.Identity != nil {
		userID = previous.Identity.ID
		role = string(previous.Role)
	}
	p.emitTelemetry(ctx, telemetryEventLogout, true, userID, role, nil, nil)

	return nil
}

// Restore rehydrates the session from persistent storage at startup. It
// never fails; any problem degrades to the anonymous session.
func (p *Provider) Restore(ctx context.Context) session.Session {
	if p == nil || p.store == nil {
		return session.Anonymous()
	}

	restored := p.store.Restore(ctx)

	if restored.Authenticated() {
		p.metricInc(MetricRestoreAuthenticated)
		p.emitTelemetry(ctx, telemetryEventRestore, true, restored.Identity.ID, string(restored.Role), nil, nil)
	} else {
		p.metricInc(MetricRestoreAnonymous)
		p.emitTelemetry(ctx, telemetryEventRestore, false, "", "", nil, nil)
	}

	return restored
}

// Session returns a snapshot of the current session.
func (p *Provider) Session() session.Session {
	if p == nil || p.store == nil {
		return session.Anonymous()
	}
	return p.store.Current()
}

// CurrentUser returns the authenticated identity, or nil when the session is
// not authenticated.
func (p *Provider) CurrentUser() *session.Identity {
	current := p.Session()
	if !current.Authenticated() {
		return nil
	}
	return current.Identity
}

// IsAuthenticated reports whether the current session carries a verified
// identity.
func (p *Provider) IsAuthenticated() bool {
	return p.Session().Authenticated()
}

// Can reports whether the current session's role is granted perm. Sessions
// that are not authenticated are checked against the guest row.
func (p *Provider) Can(perm permission.Permission) bool {
	if p == nil || p.matrix == nil {
		return false
	}

	role := permission.RoleGuest
	if current := p.Session(); current.Authenticated() {
		role = current.Role
	}
	return p.matrix.MustCheck(role, perm)
}

// Subscribe registers fn to observe every session transition and returns the
// matching unsubscribe function.
func (p *Provider) Subscribe(fn func(session.Session)) func() {
	if p == nil || p.store == nil {
		return func() {}
	}
	return p.store.Subscribe(fn)
}

// Store exposes the underlying session store for callers that persist or
// observe sessions directly.
func (p *Provider) Store() *session.Store {
	if p == nil {
		return nil
	}
	return p.store
}

// Matrix exposes the frozen permission matrix.
func (p *Provider) Matrix() *permission.Matrix {
	if p == nil {
		return nil
	}
	return p.matrix
}

// beginAttempt claims the single attempt slot and returns the epoch the
// attempt belongs to.
func (p *Provider) beginAttempt() (uint64, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.inFlight {
		return 0, ErrAuthenticationInFlight
	}
	p.inFlight = true
	return p.epoch, nil
}

// settlement carries the per-operation identifiers a settling attempt needs.
type settlement struct {
	epoch     uint64
	attemptID string
	eventType string
	successID MetricID
	failureID MetricID
	timeoutID MetricID
}

// settle resolves an attempt under the lifecycle lock. Holding mu across the
// store transition keeps logout and settlement strictly ordered.
func (p *Provider) settle(ctx context.Context, s settlement, result exchange.Result, exchErr error) (session.Session, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.inFlight = false

	if p.epoch != s.epoch {
		p.emitTelemetry(ctx, s.eventType, false, "", "", ErrSessionSuperseded, func() map[string]string {
			return map[string]string{"attempt_id": s.attemptID}
		})
		return p.store.Current(), ErrSessionSuperseded
	}

	if exchErr != nil {
		reason, mapped := classifyExchangeErr(exchErr)

		next := session.Session{Role: permission.RoleGuest, Status: session.StatusError, Reason: reason}
		p.store.Set(next)

		if reason == session.ReasonTimeout {
			p.metricInc(s.timeoutID)
		} else {
			p.metricInc(s.failureID)
		}
		p.emitTelemetry(ctx, s.eventType, false, "", "", mapped, func() map[string]string {
			return map[string]string{"attempt_id": s.attemptID, "reason": reason.String()}
		})

		return next, mapped
	}

	identity := result.Identity
	next := session.Session{
		Identity: &identity,
		Role:     result.Role,
		Token:    result.Token,
		Status:   session.StatusAuthenticated,
	}
	p.store.Set(next)

	// Persistence is best-effort: a failed write costs the session its
	// restart survival, nothing else.
	if err := p.store.Persist(ctx, next); err != nil {
		log.Print("legendsauth: session persist failed: ", err)
	}

	p.metricInc(s.successID)
	p.emitTelemetry(ctx, s.eventType, true, identity.ID, string(result.Role), nil, func() map[string]string {
		return map[string]string{"attempt_id": s.attemptID}
	})

	return next, nil
}

func classifyExchangeErr(err error) (session.Reason, error) {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return session.ReasonTimeout, ErrExchangeTimeout
	case errors.Is(err, exchange.ErrInvalidCredentials):
		return session.ReasonInvalidCredentials, ErrInvalidCredentials
	default:
		return session.ReasonUnavailable, fmt.Errorf("%w: %v", ErrExchangeUnavailable, err)
	}
}
