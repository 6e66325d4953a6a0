// Package engine is the facade consumers drive: it runs the characteristic
// cycle and tropicalization pipelines with structured logging and memoizes
// derived cycles by a content hash of their inputs. Cached artifacts are
// immutable after publication and safe to share across goroutines.
package engine

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"stratinv/charcycle"
	"stratinv/perverse"
	"stratinv/stratification"
)

// Options configures an Engine. The zero value is usable: silent logging and
// the perverse normalization conventions.
type Options struct {
	Logger     *zap.Logger
	Convention charcycle.Convention
}

// Engine memoizes derived cycles per input fingerprint. Population runs under
// singleflight so concurrent callers with equal inputs share one computation.
type Engine struct {
	log  *zap.Logger
	conv charcycle.Convention

	group singleflight.Group

	mu       sync.RWMutex
	cycles   map[string]charcycle.CharacteristicCycle
	tropical map[string]charcycle.TropicalCycle
}

// New builds an Engine.
func New(opts Options) *Engine {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &Engine{
		log:      log,
		conv:     opts.Convention,
		cycles:   make(map[string]charcycle.CharacteristicCycle),
		tropical: make(map[string]charcycle.TropicalCycle),
	}
}

// CharacteristicCycle computes (or recalls) the characteristic cycle of obj
// over strat.
func (e *Engine) CharacteristicCycle(obj *perverse.GradedObject, strat *stratification.Stratification) (charcycle.CharacteristicCycle, error) {
	fp := fingerprint(obj, strat)
	key := "cc:" + fp
	log := e.log.With(
		zap.String("computation_id", uuid.NewString()),
		zap.String("fingerprint", fp[:12]),
	)

	e.mu.RLock()
	cc, ok := e.cycles[key]
	e.mu.RUnlock()
	if ok {
		log.Debug("characteristic cycle cache hit")
		return cc, nil
	}

	start := time.Now()
	v, err, _ := e.group.Do(key, func() (any, error) {
		cc, err := charcycle.Compute(obj, strat, e.conv)
		if err != nil {
			return nil, err
		}
		e.mu.Lock()
		e.cycles[key] = cc
		e.mu.Unlock()
		return cc, nil
	})
	if err != nil {
		log.Warn("characteristic cycle rejected", zap.Error(err))
		return charcycle.CharacteristicCycle{}, err
	}

	cc = v.(charcycle.CharacteristicCycle)
	log.Info("characteristic cycle computed",
		zap.Int("components", cc.Len()),
		zap.Int("degree", charcycle.Degree(cc)),
		zap.Duration("elapsed", time.Since(start)),
	)
	return cc, nil
}

// Tropical computes (or recalls) the tropicalization of the characteristic
// cycle of obj over strat under the given valuation. The memo key covers the
// valuation's Signature alongside the input fingerprint, so one engine serves
// multiple valuations without crosstalk.
func (e *Engine) Tropical(obj *perverse.GradedObject, strat *stratification.Stratification, val charcycle.ValuationMap) (charcycle.TropicalCycle, error) {
	fp := fingerprint(obj, strat)
	key := "trop:" + val.Signature() + ":" + fp
	log := e.log.With(
		zap.String("computation_id", uuid.NewString()),
		zap.String("fingerprint", fp[:12]),
		zap.String("valuation", val.Signature()),
	)

	e.mu.RLock()
	tc, ok := e.tropical[key]
	e.mu.RUnlock()
	if ok {
		log.Debug("tropical cycle cache hit")
		return tc, nil
	}

	start := time.Now()
	v, err, _ := e.group.Do(key, func() (any, error) {
		cc, err := e.CharacteristicCycle(obj, strat)
		if err != nil {
			return nil, err
		}
		tc, err := charcycle.Tropicalize(cc, strat, val)
		if err != nil {
			return nil, err
		}
		e.mu.Lock()
		e.tropical[key] = tc
		e.mu.Unlock()
		return tc, nil
	})
	if err != nil {
		log.Warn("tropicalization failed", zap.Error(err))
		return charcycle.TropicalCycle{}, err
	}

	tc = v.(charcycle.TropicalCycle)
	log.Info("tropical cycle computed",
		zap.Int("faces", len(tc.Faces())),
		zap.Int("degree", charcycle.TropicalDegree(tc)),
		zap.Duration("elapsed", time.Since(start)),
	)
	return tc, nil
}
