package escrow

import (
	"fmt"
	"os"
	"sync"

	"github.com/akram-max/witness-angel-cryptolib/log"
)

// Registry maps recipe escrow selectors to concrete Escrow
// implementations. Selector resolution happens at recipe-validation time,
// before any encryption work starts, so an unknown selector fails fast
// with ErrEscrowNotAvailable rather than mid-container.
type Registry struct {
	mu      sync.RWMutex
	escrows map[string]Escrow

	debug  bool
	logger log.Logger
}

// NewRegistry returns a Registry pre-populated with a LocalEscrow bound to
// LocalEscrowPlaceholder, the selector every recipe can rely on being
// present.
func NewRegistry() *Registry {
	r := &Registry{escrows: make(map[string]Escrow)}
	r.Register(LocalEscrowPlaceholder, NewLocalEscrow())
	return r
}

// Register associates selector with an Escrow implementation, overwriting
// any prior registration for that selector.
func (r *Registry) Register(selector string, e Escrow) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.escrows[selector] = e
}

// Resolve returns the Escrow registered for selector, or
// ErrEscrowNotAvailable if none is.
func (r *Registry) Resolve(selector string) (Escrow, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.escrows[selector]
	if !ok {
		r.debugLog("resolve failed for selector %q", selector)
		return nil, fmt.Errorf("%w: selector %q", ErrEscrowNotAvailable, selector)
	}
	r.debugLog("resolved selector %q", selector)
	return e, nil
}

// SetDebugLog enables debug logging of escrow resolution. When enabled
// without a prior SetLogger call, a default Stdlog writing to stderr is
// used.
func (r *Registry) SetDebugLog(v bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.debug = v
	if v {
		if r.logger == nil {
			r.logger = log.New(os.Stderr, log.LevelDebug)
		}
		return
	}
	r.logger = nil
}

// SetLogger overrides the default Stdlog used for debug logging with l.
func (r *Registry) SetLogger(l log.Logger) {
	if l == nil {
		return
	}
	r.mu.Lock()
	r.logger = l
	r.mu.Unlock()
}

func (r *Registry) debugLog(f string, a ...interface{}) {
	if r.debug {
		r.logger.Debugf(f, a...)
	}
}
