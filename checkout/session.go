package checkout

import (
	"context"
	"errors"
	"regexp"
	"sync"
	"time"

	"onlyexchange/catalog"
	"onlyexchange/logger"
	"onlyexchange/metrics"
)

type Step string

const (
	StepSelect Step = "select"
	StepPay    Step = "pay"
	StepDone   Step = "done" // reserved, no transition reaches it
)

// PayWindow is the price lock window in seconds: the locked amount and
// address stay valid for 30 minutes.
const PayWindow = 1800

const statusCycleInterval = 1600 * time.Millisecond

var statusMessages = []string{
	"Scanning blockchain network...",
	"Watching mempool for your transaction...",
	"Waiting for payment broadcast...",
	"Checking recent blocks...",
	"Verifying network confirmations...",
	"Matching incoming transfers...",
	"Still scanning, keep this page open...",
	"No payment detected yet...",
}

const expiredMessage = "Payment window expired. Please start over to generate a new payment."

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

var (
	ErrInvalidEmail    = errors.New("invalid email address")
	ErrChainRequired   = errors.New("select a network first")
	ErrChainNotAllowed = errors.New("network not available for this coin")
	ErrSessionLocked   = errors.New("payment in progress, cancel first")
	ErrSuperseded      = errors.New("session was reset while waiting for an address")
)

// PriceSource is the live USD price lookup, satisfied by pricefeed.Client.
type PriceSource interface {
	Price(Method) (float64, bool)
}

// AddressIssuer hands out receiving addresses, satisfied by address.Client.
// The bool result reports whether a shared demo fallback address was used.
type AddressIssuer interface {
	Next(ctx context.Context, m Method, chain Chain) (string, bool, error)
}

type Deps struct {
	Prices PriceSource
	Issuer AddressIssuer
	Pool   *AmountPool // amount uniquifier for shared fallback addresses, may be nil
	Log    logger.Logger
	Rec    metrics.Recorder
}

// Session is the per-visitor checkout state machine:
// select --StartPayment--> pay --Cancel--> select. Countdown expiry leaves the
// session in pay with dead timers; only Cancel (or a selection change, which
// is rejected while paying) brings it back to select.
type Session struct {
	mu sync.Mutex

	ID      string
	Product *catalog.Product

	Plan        catalog.Plan
	Method      Method
	Chain       Chain // "" = none selected
	Email       string
	EmailLocked bool

	Step             Step
	Address          string
	LockedAmount     string
	PaySecsRemaining int
	StatusMessage    string

	CreatedAt  time.Time
	LastActive time.Time

	prices PriceSource
	issuer AddressIssuer
	pool   *AmountPool
	log    logger.Logger
	rec    metrics.Recorder

	gen       uint64 // bumped by every StartPayment and reset; stale async results are dropped
	stop      chan struct{}
	statusIdx int
	fallback  bool // current address is a shared demo address
	noTimers  bool // tests drive ticks by hand
}

func NewSession(id string, product *catalog.Product, planQuery string, deps Deps) *Session {
	if deps.Log == nil {
		deps.Log = logger.NoopLogger{}
	}
	if deps.Rec == nil {
		deps.Rec = metrics.NoopRecorder{}
	}
	now := time.Now()
	s := &Session{
		ID:               id,
		Product:          product,
		Plan:             catalog.ResolvePlan(product, planQuery),
		Method:           BTC,
		Step:             StepSelect,
		PaySecsRemaining: PayWindow,
		CreatedAt:        now,
		LastActive:       now,
		prices:           deps.Prices,
		issuer:           deps.Issuer,
		pool:             deps.Pool,
		log:              deps.Log,
		rec:              deps.Rec,
	}
	s.rec.IncCounter(metrics.SessionCreated, map[string]string{"method": string(s.Method)})
	return s
}

// SelectPlan replaces the selected plan. Rejected while paying; in select it
// re-applies the reset helper so no stale address or amount survives.
func (s *Session) SelectPlan(planID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Step == StepPay {
		return ErrSessionLocked
	}
	plan := catalog.ResolvePlan(s.Product, planID)
	s.resetLocked()
	s.Plan = plan
	return nil
}

func (s *Session) SelectMethod(m Method) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Step == StepPay {
		return ErrSessionLocked
	}
	s.resetLocked()
	s.Method = m
	s.Chain = ""
	return nil
}

func (s *Session) SelectChain(c Chain) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Step == StepPay {
		return ErrSessionLocked
	}
	if !s.Method.AllowsChain(c) {
		return ErrChainNotAllowed
	}
	s.resetLocked()
	s.Chain = c
	return nil
}

func (s *Session) SetEmail(email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.EmailLocked {
		return ErrSessionLocked
	}
	s.Email = email
	s.LastActive = time.Now()
	return nil
}

// StartPayment guards the select -> pay transition: valid email, chain picked
// when the method needs one, live price known when the method needs one. On
// success the amount is frozen at the price seen now, an address is requested
// and both are set together with the countdown and status cycle started.
func (s *Session) StartPayment(ctx context.Context) error {
	s.mu.Lock()
	if s.Step != StepSelect {
		s.mu.Unlock()
		return ErrSessionLocked
	}
	if !emailRe.MatchString(s.Email) {
		s.mu.Unlock()
		return ErrInvalidEmail
	}
	m := s.Method
	chain := s.Chain
	if m.RequiresChain() && chain == "" {
		s.mu.Unlock()
		return ErrChainRequired
	}
	var usd float64
	if !m.Stable() {
		p, ok := s.prices.Price(m)
		if !ok || p <= 0 {
			s.mu.Unlock()
			return ErrPriceUnavailable
		}
		usd = p
	}
	amount, err := ComputeAmount(s.Plan.PriceUSD, m, usd)
	if err != nil {
		s.mu.Unlock()
		return err
	}
	s.gen++
	gen := s.gen
	s.mu.Unlock()

	// issuer call runs unlocked; it races freely against Cancel/selection
	addr, usedFallback, err := s.issuer.Next(ctx, m, chain)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.gen != gen || s.Step != StepSelect {
		return ErrSuperseded
	}
	if usedFallback && s.pool != nil {
		if nudged, perr := s.pool.Acquire(m, amount); perr == nil {
			amount = nudged
		}
	}
	s.Address = addr
	s.LockedAmount = amount
	s.fallback = usedFallback
	s.EmailLocked = true
	s.Step = StepPay
	s.PaySecsRemaining = PayWindow
	s.statusIdx = 0
	s.StatusMessage = statusMessages[0]
	s.LastActive = time.Now()
	s.rec.IncCounter(metrics.PaymentStarted, map[string]string{"method": string(m)})
	if !s.noTimers {
		s.startTimersLocked()
	}
	return nil
}

// Cancel returns the session to select, clearing address, amount and status
// and restoring the full payment window. Safe to call in any step.
func (s *Session) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Step == StepPay {
		s.rec.IncCounter(metrics.PaymentCancelled, map[string]string{"method": string(s.Method)})
	}
	s.resetLocked()
}

func (s *Session) resetLocked() {
	s.stopTimersLocked()
	if s.fallback && s.pool != nil && s.LockedAmount != "" {
		s.pool.Release(s.Method, s.LockedAmount)
	}
	s.gen++
	s.Step = StepSelect
	s.Address = ""
	s.LockedAmount = ""
	s.StatusMessage = ""
	s.EmailLocked = false
	s.fallback = false
	s.statusIdx = 0
	s.PaySecsRemaining = PayWindow
	s.LastActive = time.Now()
}

// Both pay-session timers live in one goroutine behind one stop channel, so
// they start and stop together and no status message can cycle after expiry.
func (s *Session) startTimersLocked() {
	s.stopTimersLocked()
	stop := make(chan struct{})
	s.stop = stop
	go func() {
		countdown := time.NewTicker(time.Second)
		cycle := time.NewTicker(statusCycleInterval)
		defer countdown.Stop()
		defer cycle.Stop()
		for {
			select {
			case <-stop:
				return
			case <-countdown.C:
				s.tickCountdown()
			case <-cycle.C:
				s.tickStatus()
			}
		}
	}()
}

func (s *Session) stopTimersLocked() {
	if s.stop != nil {
		close(s.stop)
		s.stop = nil
	}
}

func (s *Session) tickCountdown() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Step != StepPay || s.PaySecsRemaining <= 0 {
		return
	}
	s.PaySecsRemaining--
	if s.PaySecsRemaining == 0 {
		// expiry does not leave pay; it kills the timers and waits for Cancel
		s.StatusMessage = expiredMessage
		s.stopTimersLocked()
		s.rec.IncCounter(metrics.PaymentExpired, map[string]string{"method": string(s.Method)})
		s.log.Info("payment window expired", map[string]any{"session": s.ID})
	}
}

func (s *Session) tickStatus() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Step != StepPay || s.PaySecsRemaining <= 0 {
		return
	}
	s.statusIdx = (s.statusIdx + 1) % len(statusMessages)
	s.StatusMessage = statusMessages[s.statusIdx]
}

// Expired reports a dead-timer pay state.
func (s *Session) Expired() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Step == StepPay && s.PaySecsRemaining == 0
}

func (s *Session) IdleSince() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.LastActive
}
