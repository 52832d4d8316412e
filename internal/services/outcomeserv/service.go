package outcomeserv

import (
	"context"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/zeebo/errs"

	"github.com/Philanthropists/opresult/internal/logging"
	"github.com/Philanthropists/opresult/internal/store/nosql/dynamodb"
	"github.com/Philanthropists/opresult/pkg/pipe"
	"github.com/Philanthropists/opresult/pkg/result"
	"github.com/Philanthropists/opresult/pkg/result/payload"
)

type Record = dynamodb.Record

type Store interface {
	Put(ctx context.Context, rec Record) error
	Get(ctx context.Context, operation string) (Record, bool, error)
	Scan(ctx context.Context) ([]Record, error)
}

// Outcome pairs an operation with the result it produced.
type Outcome struct {
	Operation string
	Result    result.Result
}

type inMemoryCache interface {
	SetDefault(k string, v any)
	Get(k string) (any, bool)
	Delete(k string)
}

// Service keeps the last outcome of every operation in a Store, with a
// read-through cache in front of it.
type Service struct {
	Store           Store
	Messages        result.Messages
	ExpirationTime  time.Duration
	CleanupInterval time.Duration
	Now             func() time.Time

	once    sync.Once
	cache   inMemoryCache
	results result.Factory
}

func (s *Service) init() {
	s.once.Do(func() {
		const (
			defaultExpirationTime  = 5 * time.Minute
			defaultCleanupInterval = 1 * time.Minute
		)

		expTime := defaultExpirationTime
		if s.ExpirationTime != 0 {
			expTime = s.ExpirationTime
		}

		cleanupInt := defaultCleanupInterval
		if s.CleanupInterval != 0 {
			cleanupInt = s.CleanupInterval
		}

		s.cache = cache.New(expTime, cleanupInt)

		msgs := s.Messages
		if msgs == (result.Messages{}) {
			msgs = result.English
		}
		s.results = result.NewFactory(msgs)

		if s.Now == nil {
			s.Now = time.Now
		}
	})
}

func (s *Service) store() (Store, error) {
	if s.Store == nil {
		return nil, errs.New("there is no Store defined")
	}

	return s.Store, nil
}

// Record stores r as the latest outcome of operation.
func (s *Service) Record(ctx context.Context, operation string, r result.Result) result.Result {
	s.init()
	log := logging.FromContext(ctx)

	logging.LogOutcome(ctx, operation, r)

	store, err := s.store()
	if err != nil {
		log.Error("could not record outcome", logging.Error(err))
		return s.results.StorageError()
	}

	rec := dynamodb.NewRecord(operation, r, s.Now())
	if err := store.Put(ctx, rec); err != nil {
		log.Error("could not record outcome",
			logging.String("operation", operation),
			logging.Error(err),
		)
		s.cache.Delete(operation)
		return s.results.StorageError()
	}

	s.cache.SetDefault(operation, rec)

	return s.results.Success()
}

func (s *Service) Last(ctx context.Context, operation string) payload.Result[Record] {
	s.init()

	if v, found := s.cache.Get(operation); found {
		return payload.Success(v.(Record))
	}

	store, err := s.store()
	if err != nil {
		logging.FromContext(ctx).Error("could not read outcome", logging.Error(err))
		return payload.Lift[Record](s.results.StorageError())
	}

	rec, found, err := store.Get(ctx, operation)
	if err != nil {
		logging.FromContext(ctx).Error("could not read outcome",
			logging.String("operation", operation),
			logging.Error(err),
		)
		return payload.Lift[Record](s.results.StorageError())
	}

	if !found {
		return payload.Lift[Record](s.results.NotFound())
	}

	s.cache.SetDefault(operation, rec)

	return payload.Success(rec)
}

func (s *Service) History(ctx context.Context) payload.Result[[]Record] {
	s.init()

	store, err := s.store()
	if err != nil {
		logging.FromContext(ctx).Error("could not read history", logging.Error(err))
		return payload.Lift[[]Record](s.results.StorageError())
	}

	recs, err := store.Scan(ctx)
	if err != nil {
		r := payload.Lift[[]Record](s.results.FromError(err))
		logging.LogOutcome(ctx, "history", r.Base())
		return r
	}

	logging.FromContext(ctx).Debug("loaded outcome history",
		logging.Int("records", len(recs)),
	)

	return payload.Success(recs)
}

// RecordAll stores every outcome read from in using workers goroutines,
// until in is closed or ctx is done. On success the data is the number of
// outcomes stored; any failed write makes the whole call a StorageError.
func (s *Service) RecordAll(ctx context.Context, workers int, in <-chan Outcome) payload.Result[int] {
	s.init()
	done := ctx.Done()

	record := func(o Outcome) payload.Result[string] {
		r := s.Record(ctx, o.Operation, o.Result)
		if !r.Success {
			return payload.Lift[string](r)
		}

		return payload.Success(o.Operation)
	}

	var failed int
	stored := pipe.OnFailure(done,
		pipe.ConcurrentMap[Outcome, string](done, workers, in, record),
		func(r payload.Result[string]) {
			failed++
			logging.LogOutcome(ctx, "record-all", r.Base())
		},
	)

	var count int
	for range stored {
		count++
	}

	if err := ctx.Err(); err != nil {
		return payload.Lift[int](s.results.FromError(err))
	}

	if failed > 0 {
		logging.FromContext(ctx).Error("could not record every outcome",
			logging.Int("stored", count),
			logging.Int("failed", failed),
		)
		return payload.Lift[int](s.results.StorageError())
	}

	return payload.Success(count)
}
