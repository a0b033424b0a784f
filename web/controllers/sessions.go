package controllers

import (
	"sync"
	"time"

	"onlyexchange/checkout"
	"onlyexchange/logger"
	"onlyexchange/metrics"
	"onlyexchange/web/db"
)

const (
	sessionIdleTimeout   = 2 * time.Hour
	sessionSweepInterval = 10 * time.Minute
)

var (
	sessionMap      = make(map[string]*checkout.Session) // session ID -> session
	orderIDMap      = make(map[string]string)            // session ID -> order log ID
	sessionMapMutex = &sync.RWMutex{}

	sessionDeps checkout.Deps
)

// Init wires the price feed, address issuer and ambient deps into every
// session the controllers create.
func Init(deps checkout.Deps) {
	if deps.Log == nil {
		deps.Log = logger.NoopLogger{}
	}
	if deps.Rec == nil {
		deps.Rec = metrics.NoopRecorder{}
	}
	sessionDeps = deps
}

func getSession(id string) (*checkout.Session, bool) {
	sessionMapMutex.RLock()
	defer sessionMapMutex.RUnlock()
	s, ok := sessionMap[id]
	return s, ok
}

func putSession(s *checkout.Session) {
	sessionMapMutex.Lock()
	defer sessionMapMutex.Unlock()
	sessionMap[s.ID] = s
}

// StartSessionSweeper drops sessions nobody touched for a while, cancelling
// them first so pay timers and pooled amounts are released.
func StartSessionSweeper() {
	go func() {
		for {
			time.Sleep(sessionSweepInterval)
			sweepSessions()
		}
	}()
}

func sweepSessions() {
	now := time.Now()

	sessionMapMutex.Lock()
	var stale []*checkout.Session
	for id, s := range sessionMap {
		if now.Sub(s.IdleSince()) > sessionIdleTimeout {
			stale = append(stale, s)
			delete(sessionMap, id)
		}
	}
	sessionMapMutex.Unlock()

	for _, s := range stale {
		closeOrder(s)
		s.Cancel()
	}
}

// closeOrder marks the session's order row expired or cancelled, whichever
// matches how the pay attempt ended.
func closeOrder(s *checkout.Session) {
	sessionMapMutex.Lock()
	orderID, ok := orderIDMap[s.ID]
	if ok {
		delete(orderIDMap, s.ID)
	}
	sessionMapMutex.Unlock()
	if !ok {
		return
	}

	status := db.StatusCancelled
	if s.Expired() {
		status = db.StatusExpired
	}
	db.UpdateOrderStatus(orderID, status)
}
