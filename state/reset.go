package state

import (
	draugrerrors "github.com/Mahdiglm/draugr-deploy/errors"
	"github.com/Mahdiglm/draugr-deploy/logging"
)

const (
	KeyToken = "token"
	KeyUser  = "user"
	KeyCart  = "cart"

	// EmptyCart is the serialized cart with no items.
	EmptyCart = `{"items":[]}`
)

var log = logging.NewLogger("state")

// ResetLocalStorage signs the user out and empties the cart: it removes the
// token and user keys, then stores an empty cart. It stops at the first store
// error, logs it and returns false; steps already applied are kept.
func ResetLocalStorage(store Store) bool {
	steps := []struct {
		op  string
		key string
		run func() error
	}{
		{"remove", KeyToken, func() error { return store.RemoveItem(KeyToken) }},
		{"remove", KeyUser, func() error { return store.RemoveItem(KeyUser) }},
		{"set", KeyCart, func() error { return store.SetItem(KeyCart, EmptyCart) }},
	}

	for _, step := range steps {
		if err := step.run(); err != nil {
			err = draugrerrors.StoreAccess(step.op, step.key, err)
			log.WithError(err).WithField("key", step.key).Error("Error resetting localStorage")
			return false
		}
	}

	log.Info("localStorage reset: token and user removed, cart emptied")
	return true
}
