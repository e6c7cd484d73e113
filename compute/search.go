package compute

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/teranos/phi/am"
	"github.com/teranos/phi/cache"
	"github.com/teranos/phi/errors"
	"github.com/teranos/phi/logger"
	"github.com/teranos/phi/models"
	"github.com/teranos/phi/partition"
	"github.com/teranos/phi/system"
)

// Named is implemented by evaluators whose results should be cached apart
// from other evaluators sharing the same cache.
type Named interface {
	Name() string
}

// Search finds the concept-style BigMip of subsystems. A Search is safe for
// concurrent use; it holds no per-run state.
type Search struct {
	cfg       am.ComputeConfig
	evaluator Evaluator
	generator partition.Generator
	cache     cache.Cache
	loader    *cache.Loader
	logger    *zap.SugaredLogger
	workers   int
}

// Option configures a Search.
type Option func(*Search)

// WithCache memoizes results in c. A nil c disables caching.
func WithCache(c cache.Cache) Option {
	return func(s *Search) {
		s.cache = c
	}
}

// WithLogger sets the logger. The default is the "compute" component logger.
func WithLogger(log *zap.SugaredLogger) Option {
	return func(s *Search) {
		if log != nil {
			s.logger = log
		}
	}
}

// NewSearch validates cfg and builds a Search around evaluator. A nil cfg
// means the defaults.
func NewSearch(cfg *am.Config, evaluator Evaluator, opts ...Option) (*Search, error) {
	if cfg == nil {
		cfg = am.Default()
	}
	if evaluator == nil {
		return nil, errors.NewInvalidRequestError("search needs an evaluator")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid search configuration")
	}
	gen, err := partition.Get(cfg.Compute.PartitionType)
	if err != nil {
		return nil, err
	}

	s := &Search{
		cfg:       cfg.Compute,
		evaluator: evaluator,
		generator: gen,
		logger:    logger.ComponentLogger("compute"),
		workers:   resolveWorkers(cfg.Compute.Workers),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.cache != nil {
		s.loader = cache.NewLoader(s.cache, s.logger.Named("cache"))
	}
	return s, nil
}

// Workers returns the pool size used for parallel evaluation.
func (s *Search) Workers() int { return s.workers }

// BigPhi returns the Φ of sub.
func (s *Search) BigPhi(ctx context.Context, sub *system.Subsystem) (float64, error) {
	mip, err := s.BigMip(ctx, sub)
	if err != nil {
		return 0, err
	}
	return mip.Phi(), nil
}

// BigMip returns the past and future minimum-information cuts of sub.
func (s *Search) BigMip(ctx context.Context, sub *system.Subsystem) (*BigMipConceptStyle, error) {
	if sub == nil {
		return nil, errors.NewInvalidRequestError("nil subsystem")
	}

	ctx = logger.WithRunID(ctx, uuid.NewString())
	log := logger.FromContext(ctx, s.logger)

	if s.loader == nil {
		return s.compute(ctx, log, sub)
	}

	key := s.CacheKey(sub)
	var computed *BigMipConceptStyle
	payload, hit, err := s.loader.Load(ctx, key, func(ctx context.Context) ([]byte, error) {
		result, err := s.compute(ctx, log, sub)
		if err != nil {
			return nil, err
		}
		computed = result
		return models.Encode(result)
	})
	if err != nil {
		return nil, err
	}
	log.Debugw("Search result", logger.FieldCacheKey, key, logger.FieldHit, hit)
	if computed != nil {
		return computed, nil
	}

	var result BigMipConceptStyle
	if err := models.Decode(payload, &result); err != nil {
		return nil, errors.Wrapf(err, "decode cached result %s", key)
	}
	return &result, nil
}

// CacheKey identifies sub under this search's configuration.
func (s *Search) CacheKey(sub *system.Subsystem) string {
	d := models.NewDigester("search").
		WriteDigest(sub.Digest()).
		WriteString(s.cfg.PartitionType).
		WriteString(s.cfg.SystemCuts).
		WriteInts([]int{s.cfg.Precision})
	if named, ok := s.evaluator.(Named); ok {
		d.WriteString(named.Name())
	}
	return models.KeyOf(d.Sum())
}

func (s *Search) compute(ctx context.Context, log *zap.SugaredLogger, sub *system.Subsystem) (*BigMipConceptStyle, error) {
	start := time.Now()
	log.Infow("Starting concept-style search",
		logger.FieldSubsystem, sub.String(),
		logger.FieldNetwork, sub.Network().Key(),
		logger.FieldPartition, s.cfg.PartitionType,
		logger.FieldParallel, s.cfg.ParallelCutEvaluation,
	)

	past, err := s.DirectedMip(ctx, sub, models.Past)
	if err != nil {
		return nil, errors.Wrap(err, "past mip")
	}
	future, err := s.DirectedMip(ctx, sub, models.Future)
	if err != nil {
		return nil, errors.Wrap(err, "future mip")
	}

	result := &BigMipConceptStyle{Subsystem: sub, MipPast: past, MipFuture: future}
	log.Infow("Search complete",
		logger.FieldSubsystem, sub.String(),
		logger.FieldPhi, result.Phi(),
		logger.FieldDurationMS, time.Since(start).Milliseconds(),
	)
	return result, nil
}

// DirectedMip evaluates every concept cut of sub in direction and returns
// the minimum. Parallel and sequential evaluation return the same result.
func (s *Search) DirectedMip(ctx context.Context, sub *system.Subsystem, direction models.Direction) (*BigMip, error) {
	start := time.Now()
	log := logger.FromContext(ctx, s.logger).With(logger.FieldDirection, direction.String())

	if sub.Len() == 0 {
		return NullBigMip(sub), nil
	}

	w := worker{evaluator: s.evaluator, precision: s.cfg.Precision}
	cuts := ConceptCuts(direction, sub.CutIndices(), s.generator)

	var best *BigMip
	candidates := 0
	if s.cfg.ParallelCutEvaluation {
		var tasks [][]byte
		for cut := range cuts {
			data, err := models.Encode(task{Index: len(tasks), Subsystem: sub, Direction: direction, Cut: cut})
			if err != nil {
				return nil, errors.Wrapf(err, "encode candidate %d", len(tasks))
			}
			tasks = append(tasks, data)
		}
		candidates = len(tasks)
		log.Debugw("Evaluating cuts in parallel", logger.FieldCandidates, candidates, logger.FieldWorkers, s.workers)

		results, err := pool{worker: w, size: s.workers}.evaluate(ctx, tasks)
		if err != nil {
			return nil, err
		}
		for _, mip := range results {
			if better(mip, best) {
				best = mip
			}
		}
	} else {
		for cut := range cuts {
			index := candidates
			candidates++
			data, err := models.Encode(task{Index: index, Subsystem: sub, Direction: direction, Cut: cut})
			if err != nil {
				return nil, errors.Wrapf(err, "encode candidate %d", index)
			}
			mip, err := w.evaluate(ctx, index, data)
			if err != nil {
				return nil, err
			}
			if better(mip, best) {
				best = mip
			}
			if best.Phi == 0 {
				// Nothing can beat zero
				break
			}
		}
	}

	if best == nil {
		best = NullBigMip(sub)
	}
	best.Elapsed = time.Since(start)
	log.Debugw("Directed MIP found",
		logger.FieldCandidates, candidates,
		logger.FieldCut, best.Cut.String(),
		logger.FieldPhi, best.Phi,
	)
	return best, nil
}
