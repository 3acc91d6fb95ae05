//nolint:whitespace // can't make both editor and linter happy
package paceset

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/samber/lo"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/trace"

	"github.com/mpapenbr/triathlon-pacer/log"
	"github.com/mpapenbr/triathlon-pacer/pkg/model"
	"github.com/mpapenbr/triathlon-pacer/pkg/repository/kv"
)

// DefaultKey is the logical key holding the whole collection
const DefaultKey = "paceSets"

var (
	ErrStorageFailure = errors.New("storage failure")
	ErrNameConflict   = errors.New("name already in use")
	ErrNotFound       = errors.New("pace set not found")
)

type (
	// ConflictError is returned by Save if a pace set with the same name exists
	// and overwrite was not confirmed.
	ConflictError struct {
		Existing model.PaceSet
	}

	Option func(*Service)

	// Service manages the persisted pace set collection.
	// All operations read the complete collection and write it back as a whole.
	// Save and Delete are serialized within one Service.
	Service struct {
		// guards the read-modify-write of Save and Delete
		writeMu sync.Mutex
		store   kv.Store
		key     string
		log     *log.Logger
		now     func() time.Time
		newID   func() (string, error)
		tracer  trace.Tracer

		savedCounter   metric.Int64Counter
		deletedCounter metric.Int64Counter
	}
)

func (e *ConflictError) Error() string {
	return fmt.Sprintf("pace set %q already exists", e.Existing.Name)
}

func (e *ConflictError) Unwrap() error { return ErrNameConflict }

func WithKey(key string) Option {
	return func(s *Service) {
		if key != "" {
			s.key = key
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

func WithIDGenerator(newID func() (string, error)) Option {
	return func(s *Service) {
		s.newID = newID
	}
}

func WithTracer(tracer trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = tracer
	}
}

func NewService(store kv.Store, opts ...Option) *Service {
	ret := &Service{
		store: store,
		key:   DefaultKey,
		log:   log.Default().Named("paceset"),
		now:   time.Now,
		newID: NewID,
	}
	for _, opt := range opts {
		opt(ret)
	}
	if ret.tracer == nil {
		ret.tracer = otel.Tracer("tpc")
	}
	meter := otel.Meter("paceset")
	var err error
	if ret.savedCounter, err = meter.Int64Counter("paceset.saved",
		metric.WithDescription("number of saved pace sets")); err != nil {
		ret.log.Warn("could not create counter", log.ErrorField(err))
		ret.savedCounter = noop.Int64Counter{}
	}
	if ret.deletedCounter, err = meter.Int64Counter("paceset.deleted",
		metric.WithDescription("number of deleted pace sets")); err != nil {
		ret.log.Warn("could not create counter", log.ErrorField(err))
		ret.deletedCounter = noop.Int64Counter{}
	}
	return ret
}

// List returns all pace sets, newest first
func (s *Service) List(ctx context.Context) ([]model.PaceSet, error) {
	ctx, span := s.tracer.Start(ctx, "paceset.List")
	defer span.End()

	sets, err := s.load(ctx)
	if err != nil {
		recordError(span, err)
		return nil, err
	}
	slices.SortStableFunc(sets, func(a, b model.PaceSet) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	span.SetAttributes(attribute.Int("count", len(sets)))
	return sets, nil
}

func (s *Service) Get(ctx context.Context, id string) (*model.PaceSet, error) {
	sets, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	found, ok := lo.Find(sets, func(p model.PaceSet) bool { return p.ID == id })
	if !ok {
		return nil, ErrNotFound
	}
	return &found, nil
}

// FindByName looks up a pace set by name ignoring case
func (s *Service) FindByName(ctx context.Context, name string) (*model.PaceSet, error) {
	sets, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	found, ok := lo.Find(sets, func(p model.PaceSet) bool { return sameName(p.Name, name) })
	if !ok {
		return nil, ErrNotFound
	}
	return &found, nil
}

// Save stores rec in the collection.
// If a pace set with the same name (ignoring case) exists a *ConflictError is
// returned unless overwrite is true. An overwrite keeps the id of the existing
// pace set and its position in the collection.
func (s *Service) Save(
	ctx context.Context,
	rec *model.PaceSet,
	overwrite bool,
) (*model.PaceSet, error) {
	ctx, span := s.tracer.Start(ctx, "paceset.Save",
		trace.WithAttributes(
			attribute.String("name", rec.Name),
			attribute.Bool("overwrite", overwrite)))
	defer span.End()

	if err := validate(rec); err != nil {
		recordError(span, err)
		return nil, err
	}
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	sets, err := s.load(ctx)
	if err != nil {
		recordError(span, err)
		return nil, err
	}

	toStore := *rec
	toStore.Name = strings.TrimSpace(rec.Name)
	toStore.CreatedAt = s.now()
	idx := slices.IndexFunc(sets, func(p model.PaceSet) bool {
		return sameName(p.Name, rec.Name)
	})
	switch {
	case idx >= 0 && !overwrite:
		err = &ConflictError{Existing: sets[idx]}
		recordError(span, err)
		return nil, err
	case idx >= 0:
		toStore.ID = sets[idx].ID
		sets[idx] = toStore
	default:
		if toStore.ID, err = s.newID(); err != nil {
			recordError(span, err)
			return nil, err
		}
		sets = append(sets, toStore)
	}

	if err := s.write(ctx, sets); err != nil {
		recordError(span, err)
		return nil, err
	}
	s.savedCounter.Add(ctx, 1, metric.WithAttributes(attribute.Bool("overwrite", idx >= 0)))
	s.log.Info("pace set saved",
		log.String("id", toStore.ID),
		log.String("name", toStore.Name),
		log.Bool("replaced", idx >= 0))
	return &toStore, nil
}

// Delete removes the pace set with id. ErrNotFound leaves the collection as is.
func (s *Service) Delete(ctx context.Context, id string) error {
	ctx, span := s.tracer.Start(ctx, "paceset.Delete",
		trace.WithAttributes(attribute.String("id", id)))
	defer span.End()

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	sets, err := s.load(ctx)
	if err != nil {
		recordError(span, err)
		return err
	}
	idx := slices.IndexFunc(sets, func(p model.PaceSet) bool { return p.ID == id })
	if idx < 0 {
		recordError(span, ErrNotFound)
		return ErrNotFound
	}
	removed := sets[idx]
	sets = slices.Delete(sets, idx, idx+1)
	if err := s.write(ctx, sets); err != nil {
		recordError(span, err)
		return err
	}
	s.deletedCounter.Add(ctx, 1)
	s.log.Info("pace set deleted",
		log.String("id", removed.ID),
		log.String("name", removed.Name))
	return nil
}

// load returns the stored collection. A missing key is an empty collection.
func (s *Service) load(ctx context.Context) ([]model.PaceSet, error) {
	data, err := s.store.Get(ctx, s.key)
	if errors.Is(err, kv.ErrKeyNotFound) {
		return []model.PaceSet{}, nil
	}
	if err != nil {
		s.log.Error("could not read pace sets", log.ErrorField(err))
		return nil, fmt.Errorf("%w: read: %w", ErrStorageFailure, err)
	}
	var ret []model.PaceSet
	if err := json.Unmarshal(data, &ret); err != nil {
		s.log.Error("could not decode pace sets", log.ErrorField(err))
		return nil, fmt.Errorf("%w: decode: %w", ErrStorageFailure, err)
	}
	if ret == nil {
		ret = []model.PaceSet{}
	}
	return ret, nil
}

func (s *Service) write(ctx context.Context, sets []model.PaceSet) error {
	data, err := json.Marshal(sets)
	if err != nil {
		return fmt.Errorf("%w: encode: %w", ErrStorageFailure, err)
	}
	if err := s.store.Put(ctx, s.key, data); err != nil {
		s.log.Error("could not write pace sets", log.ErrorField(err))
		return fmt.Errorf("%w: write: %w", ErrStorageFailure, err)
	}
	return nil
}

func recordError(span trace.Span, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}
