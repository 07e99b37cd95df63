// Package console is a registry of named maintenance operations that can be
// invoked ad hoc, e.g. `draugr console resetDraugrStorage`.
package console

import (
	"sort"
	"sync"

	draugrerrors "github.com/Mahdiglm/draugr-deploy/errors"
	"github.com/Mahdiglm/draugr-deploy/state"
)

// ResetStorage is the name the storage reset is registered under.
const ResetStorage = "resetDraugrStorage"

// Operation reports whether it succeeded.
type Operation func() bool

var (
	mu         sync.RWMutex
	operations = map[string]Operation{}
)

// Init registers the built-in operations bound to store. Calling it again
// rebinds them.
func Init(store state.Store) {
	Register(ResetStorage, func() bool {
		return state.ResetLocalStorage(store)
	})
}

// Register adds or replaces a named operation.
func Register(name string, op Operation) {
	mu.Lock()
	defer mu.Unlock()
	operations[name] = op
}

// Invoke runs the named operation.
func Invoke(name string) (bool, error) {
	mu.RLock()
	op, ok := operations[name]
	mu.RUnlock()

	if !ok {
		return false, draugrerrors.UnknownOperation(name).WithDetail("available", Names())
	}
	return op(), nil
}

// Names lists the registered operations in sorted order.
func Names() []string {
	mu.RLock()
	defer mu.RUnlock()

	names := make([]string, 0, len(operations))
	for name := range operations {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func reset() {
	mu.Lock()
	defer mu.Unlock()
	operations = map[string]Operation{}
}
