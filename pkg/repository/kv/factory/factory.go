package factory

import (
	"errors"

	"github.com/mpapenbr/triathlon-pacer/pkg/repository/kv"
)

type StoreType string

var (
	ErrStoreTypeNotSupported = errors.New("store type not supported")
	ErrStoreWrongCreator     = errors.New("store wrong creator")
)

//nolint:lll //readability
type Creator[S kv.Store, ImplOpt any] func([]kv.Option, []ImplOpt) (S, error)

var registry = map[StoreType]any{}

// Register a new implementation generically
//
//nolint:whitespace //editor/linter issue
func Register[S kv.Store, ImplOpt any](
	key StoreType, creator Creator[S, ImplOpt],
) {
	registry[key] = creator
}

// Create a new instance
//
//nolint:whitespace //editor/linter issue
func New[S kv.Store, ImplOpt any](
	key StoreType,
	common []kv.Option,
	specific []ImplOpt,
) (S, error) {
	entry, ok := registry[key]
	if !ok {
		var zero S
		return zero, ErrStoreTypeNotSupported
	}
	creator, ok := entry.(Creator[S, ImplOpt])
	if !ok {
		var zero S
		return zero, ErrStoreWrongCreator
	}
	return creator(common, specific)
}

// Registered reports if an implementation was registered for key
func Registered(key StoreType) bool {
	_, ok := registry[key]
	return ok
}
