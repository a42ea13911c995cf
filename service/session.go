// Package service holds the editing session: the authoritative in-memory
// configuration and measurement documents plus every committed mutation on
// them. Mutations address nodes by numeric index paths; a stale path is a
// reported no-op, never a panic. After each committed mutation the session
// schedules a best-effort snapshot save off the critical path.
package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/alixdehghani/HyperMetrics/measure"
	"github.com/alixdehghani/HyperMetrics/model"
	"github.com/alixdehghani/HyperMetrics/store"
	"github.com/alixdehghani/HyperMetrics/telemetry"
)

// Session is the editing session over the two documents.
type Session struct {
	logger     zerolog.Logger
	normalizer *measure.Normalizer
	snapshots  store.Store
	telemetry  telemetry.Collector

	mu      sync.Mutex
	config  *model.ENodeBConfig
	measure *model.MeasureType

	saves    sync.WaitGroup
	saveMu   sync.Mutex
	saveGen  map[string]uint64
	saveDone map[string]uint64
}

// Option configures a Session.
type Option func(*Session)

// WithStore attaches a snapshot store; without one the session keeps its
// documents in memory only.
func WithStore(s store.Store) Option {
	return func(session *Session) { session.snapshots = s }
}

// WithTelemetry attaches a telemetry collector.
func WithTelemetry(c telemetry.Collector) Option {
	return func(session *Session) { session.telemetry = c }
}

// New builds an empty session.
func New(logger zerolog.Logger, opts ...Option) *Session {
	session := &Session{
		logger:     logger,
		normalizer: measure.NewNormalizer(logger),
		telemetry:  telemetry.Noop(),
		saveGen:    map[string]uint64{},
		saveDone:   map[string]uint64{},
	}
	for _, opt := range opts {
		opt(session)
	}
	return session
}

// Config returns the configuration document, nil before any load.
func (s *Session) Config() *model.ENodeBConfig {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.config
}

// Measure returns the measurement document, nil before any load.
func (s *Session) Measure() *model.MeasureType {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.measure
}

// SetConfig replaces the configuration document.
func (s *Session) SetConfig(cfg *model.ENodeBConfig) {
	s.mu.Lock()
	s.config = cfg
	s.mu.Unlock()
	s.persistConfig()
}

// SetMeasure replaces the measurement document and normalizes it.
func (s *Session) SetMeasure(m *model.MeasureType) {
	s.mu.Lock()
	s.measure = m
	s.renormalizeLocked()
	s.mu.Unlock()
	s.persistMeasure()
}

// ImportConfig parses a configuration document from JSON. A parse failure
// leaves the current document untouched.
func (s *Session) ImportConfig(data []byte) error {
	var cfg model.ENodeBConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return fmt.Errorf("parse configuration document: %w", err)
	}
	s.SetConfig(&cfg)
	return nil
}

// ImportMeasure parses a measurement document from JSON. A parse failure
// leaves the current document untouched.
func (s *Session) ImportMeasure(data []byte) error {
	var m model.MeasureType
	if err := json.Unmarshal(data, &m); err != nil {
		return fmt.Errorf("parse measurement document: %w", err)
	}
	s.SetMeasure(&m)
	return nil
}

// LoadSnapshots restores both documents from the snapshot store. Missing
// snapshots are skipped silently.
func (s *Session) LoadSnapshots(ctx context.Context) error {
	if s.snapshots == nil {
		return errors.New("no snapshot store configured")
	}
	data, err := s.snapshots.Load(ctx, store.KeyHyperConfig)
	if err != nil {
		return err
	}
	if data != nil {
		if err := s.ImportConfig(data); err != nil {
			return err
		}
	}
	data, err = s.snapshots.Load(ctx, store.KeyHyperMeasure)
	if err != nil {
		return err
	}
	if data != nil {
		if err := s.ImportMeasure(data); err != nil {
			return err
		}
	}
	return nil
}

// Errors runs every measurement validator over the current document.
func (s *Session) Errors() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.normalizer.AllErrors(s.measure)
}

// Flush waits for in-flight snapshot saves.
func (s *Session) Flush() {
	s.saves.Wait()
}

// Close flushes pending saves; the snapshot store stays open for the owner
// to close.
func (s *Session) Close() error {
	s.Flush()
	return nil
}

func (s *Session) renormalizeLocked() {
	if s.measure == nil {
		return
	}
	s.normalizer.Normalize(s.measure)
	s.telemetry.IncNormalization()
}

// persistConfig schedules a background snapshot save of the configuration
// document. The document is marshalled under the session lock so the
// snapshot is a consistent cut; the save itself is best effort, a failure
// is logged and the in-memory document stays authoritative.
func (s *Session) persistConfig() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.persistLocked(store.KeyHyperConfig, s.config)
}

func (s *Session) persistMeasure() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.persistLocked(store.KeyHyperMeasure, s.measure)
}

func (s *Session) persistLocked(key string, doc interface{}) {
	if s.snapshots == nil || doc == nil {
		return
	}
	data, err := json.Marshal(doc)
	if err != nil {
		s.logger.Error().Err(err).Str("snapshot", key).Msg("marshal snapshot")
		return
	}
	// The session lock orders commits, so the generation taken here orders the
	// snapshots: a write whose generation is older than one already applied is
	// dropped, the store never regresses to a prior commit.
	s.saveGen[key]++
	gen := s.saveGen[key]
	s.saves.Add(1)
	go func() {
		defer s.saves.Done()
		s.saveMu.Lock()
		defer s.saveMu.Unlock()
		if gen <= s.saveDone[key] {
			return
		}
		s.saveDone[key] = gen
		if err := s.snapshots.Save(context.Background(), key, data); err != nil {
			s.logger.Warn().Err(err).Str("snapshot", key).Msg("save snapshot")
		}
	}()
}
