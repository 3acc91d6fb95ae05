package util

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/mpapenbr/triathlon-pacer/log"
	"github.com/mpapenbr/triathlon-pacer/pkg/config"
	"github.com/mpapenbr/triathlon-pacer/pkg/db/postgres"
	"github.com/mpapenbr/triathlon-pacer/pkg/paceset"
	"github.com/mpapenbr/triathlon-pacer/pkg/repository/kv"
	"github.com/mpapenbr/triathlon-pacer/pkg/repository/kv/bolt"
	"github.com/mpapenbr/triathlon-pacer/pkg/repository/kv/factory"
	"github.com/mpapenbr/triathlon-pacer/pkg/repository/kv/memory"
	kvnats "github.com/mpapenbr/triathlon-pacer/pkg/repository/kv/nats"
	kvpg "github.com/mpapenbr/triathlon-pacer/pkg/repository/kv/postgres"
	"github.com/mpapenbr/triathlon-pacer/pkg/utils"
)

// OpenStore creates the store selected by config.Store.
// The returned func releases the store and its connections.
//
//nolint:funlen // by design
func OpenStore(ctx context.Context) (kv.Store, func(), error) {
	storeType := factory.StoreType(config.Store)
	if !factory.Registered(storeType) {
		return nil, nil, fmt.Errorf("%w: %s", factory.ErrStoreTypeNotSupported, config.Store)
	}
	if err := WaitForRequiredServices(ctx); err != nil {
		return nil, nil, err
	}
	var store kv.Store
	var err error
	closers := []func(){}
	common := []kv.Option{}
	switch storeType {
	case memory.StoreTypeMemory:
		store, err = factory.New[kv.Store, memory.Option](storeType, common, nil)

	case bolt.StoreTypeBolt:
		store, err = factory.New[kv.Store](storeType, common,
			[]bolt.Option{bolt.WithPath(config.BoltFile)})

	case kvpg.StoreTypePostgres:
		pgTraceOption := postgres.WithTracer(sqlLogger(),
			ParseLogLevel(config.SQLLogLevel, log.DebugLevel))
		if config.EnableTelemetry {
			pgTraceOption = postgres.WithOtlpTracer()
		}
		pool, pErr := postgres.InitWithURL(ctx, config.DB, pgTraceOption)
		if pErr != nil {
			return nil, nil, pErr
		}
		closers = append(closers, pool.Close)
		store, err = factory.New[kv.Store](storeType, common,
			[]kvpg.Option{kvpg.WithPool(pool)})

	case kvnats.StoreTypeNATS:
		if err = ctx.Err(); err != nil {
			return nil, nil, err
		}
		nc, nErr := nats.Connect(config.NATSURL, nats.Name("tpc"))
		if nErr != nil {
			return nil, nil, nErr
		}
		closers = append(closers, nc.Close)
		store, err = factory.New[kv.Store](storeType,
			append(common, kv.WithBucket(config.NATSBucket)),
			[]kvnats.Option{kvnats.WithNATS(nc)})
	}

	cleanup := func() {
		if store != nil {
			if cErr := store.Close(); cErr != nil {
				log.Warn("could not close store", log.ErrorField(cErr))
			}
		}
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	log.Debug("store opened", log.String("store", config.Store))
	return store, cleanup, nil
}

// NewPaceSetService opens the configured store and creates the pace set service
func NewPaceSetService(ctx context.Context) (*paceset.Service, func(), error) {
	store, cleanup, err := OpenStore(ctx)
	if err != nil {
		return nil, nil, err
	}
	return paceset.NewService(store, paceset.WithKey(config.StoreKey)), cleanup, nil
}

// WaitForRequiredServices waits until the remote service of the selected store
// accepts connections.
func WaitForRequiredServices(ctx context.Context) error {
	timeout, err := time.ParseDuration(config.WaitForServices)
	if err != nil {
		log.Warn("Invalid duration value. Setting default 60s", log.ErrorField(err))
		timeout = 60 * time.Second
	}
	var addr string
	switch factory.StoreType(config.Store) {
	case kvpg.StoreTypePostgres:
		addr = utils.ExtractFromDBURL(config.DB)
	case kvnats.StoreTypeNATS:
		addr = utils.ExtractFromNATSURL(config.NATSURL)
	}
	if addr == "" {
		return nil
	}
	if err := utils.WaitForTCP(ctx, addr, timeout); err != nil {
		return fmt.Errorf("required services not ready: %w", err)
	}
	log.Debug("Required services are available")
	return nil
}

func sqlLogger() *log.Logger {
	l, err := NewLogger(os.Stderr, config.SQLLogLevel, log.InfoLevel)
	if err != nil {
		return log.Default()
	}
	return l
}
