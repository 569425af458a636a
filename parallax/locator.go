package parallax

import (
	"log"
	"sync"
)

// Locator picks the one Coordinator a scene is expected to have.
//
// With none present it creates one in live mode. With several present the
// caller gets a nil coordinator and ErrAmbiguousCoordinator. Each kind of
// problem is logged only once until Reset is called.
type Locator struct {
	live   bool
	logger *log.Logger

	mu       sync.Mutex
	reported map[error]bool
}

func NewLocator(live bool, logger *log.Logger) *Locator {
	if logger == nil {
		logger = log.Default()
	}
	return &Locator{live: live, logger: logger}
}

func (l *Locator) Live() bool {
	return l != nil && l.live
}

func (l *Locator) Resolve(found []*Coordinator, create func() *Coordinator) (*Coordinator, error) {
	if l == nil {
		return nil, ErrNoCoordinator
	}

	switch {
	case len(found) == 1 && found[0] != nil:
		return found[0], nil
	case len(found) > 1:
		l.report(ErrAmbiguousCoordinator, "parallax: found %d coordinators, expected exactly one; parallax disabled", len(found))
		return nil, ErrAmbiguousCoordinator
	}

	if l.live && create != nil {
		if c := create(); c != nil {
			return c, nil
		}
	}
	l.report(ErrNoCoordinator, "parallax: no coordinator in scene; parallax disabled")
	return nil, ErrNoCoordinator
}

// Reset re-arms the diagnostics.
func (l *Locator) Reset() {
	if l == nil {
		return
	}
	l.mu.Lock()
	l.reported = nil
	l.mu.Unlock()
}

func (l *Locator) report(kind error, format string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.reported[kind] {
		return
	}
	if l.reported == nil {
		l.reported = make(map[error]bool)
	}
	l.reported[kind] = true
	l.logger.Printf(format, args...)
}
