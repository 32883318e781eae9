package expandlist

import (
	"github.com/datatrails/go-datatrails-common/logger"
)

type Options struct {
	log      logger.Logger
	hooks    Hooks
	listener Listener
	saved    []uint32
}

type Option func(*Options)

func WithLogger(log logger.Logger) Option {
	return func(o *Options) {
		o.log = log
	}
}

// WithHooks installs expand and collapse vetoes. When absent, a provider
// that implements Hooks is used.
func WithHooks(hooks Hooks) Option {
	return func(o *Options) {
		o.hooks = hooks
	}
}

func WithListener(listener Listener) Option {
	return func(o *Options) {
		o.listener = listener
	}
}

// WithSavedState restores a previously saved expanded set, as returned by
// SavedState, when the manager is created. Hooks and listeners are not
// called for it.
func WithSavedState(ids []uint32) Option {
	return func(o *Options) {
		o.saved = ids
	}
}
