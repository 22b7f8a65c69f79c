package ingest

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/Vinodk-17/NewsExplorer/pkg/article"
	"github.com/Vinodk-17/NewsExplorer/pkg/feeds"
)

// State of the pipeline job.
type State string

const (
	StateIdle      State = "idle"
	StateRunning   State = "running"
	StateCompleted State = "completed"
	StateFailed    State = "failed"
)

// ErrRunInProgress is returned when a trigger overlaps a run that is still
// going; runs are single-flight and the overlapping trigger is rejected.
var ErrRunInProgress = errors.New("a pipeline run is already in progress")

// BatchWriter persists a batch. Implementations upsert row by row; a row
// whose identity key already exists is left unchanged.
type BatchWriter interface {
	WriteBatch(batch []article.Article) (int, error)
}

// Pipeline is the unit invoked on a schedule or on demand. Each run owns its
// batch as a local value; nothing is shared between invocations except the
// store.
type Pipeline struct {
	Config   *feeds.Config
	Orch     *Orchestrator
	Store    BatchWriter
	Exporter *Exporter
	Log      *logrus.Logger

	runMu   sync.Mutex
	stateMu sync.Mutex
	state   State
}

// NewPipeline assembles the job.
func NewPipeline(cfg *feeds.Config, orch *Orchestrator, store BatchWriter, exp *Exporter, log *logrus.Logger) *Pipeline {
	return &Pipeline{
		Config:   cfg,
		Orch:     orch,
		Store:    store,
		Exporter: exp,
		Log:      log,
		state:    StateIdle,
	}
}

// State reports the outcome of the most recent invocation, or "running"
// while one is in flight.
func (p *Pipeline) State() State {
	p.stateMu.Lock()
	defer p.stateMu.Unlock()
	return p.state
}

func (p *Pipeline) setState(s State) {
	p.stateMu.Lock()
	p.state = s
	p.stateMu.Unlock()
}

// Run executes one full collection: orchestrate, dedup, export, store.
// Failures are logged and reflected in the job state; they are never
// propagated as panics, and the host process keeps running. An overlapping
// invocation returns ErrRunInProgress without touching the state.
func (p *Pipeline) Run(ctx context.Context) error {
	if !p.runMu.TryLock() {
		return ErrRunInProgress
	}
	defer p.runMu.Unlock()

	p.setState(StateRunning)
	err := p.run(ctx)
	if err != nil {
		p.setState(StateFailed)
		p.Log.WithError(err).Error("pipeline run failed")
		return err
	}
	p.setState(StateCompleted)
	return nil
}

func (p *Pipeline) run(ctx context.Context) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("pipeline panic: %v", r)
		}
	}()

	batch := p.Orch.Collect(ctx, p.Config.Sources(), p.Config.HistoricalRefs())
	batch = Dedup(batch, p.Log)
	p.persist(batch)

	if serr := p.storeBatch(batch); serr != nil {
		return serr
	}
	p.Log.WithField("articles", len(batch)).Info("pipeline run completed")
	return nil
}

// RunFeed executes a single-source run for an ad hoc feed and returns the
// resulting articles. It shares the single-flight guard with Run.
func (p *Pipeline) RunFeed(feedURL, country, agency string) ([]article.Article, error) {
	if !p.runMu.TryLock() {
		return nil, ErrRunInProgress
	}
	defer p.runMu.Unlock()

	if country == "" {
		country = feeds.CountryCustom
	}
	if agency == "" {
		agency = feeds.AgencyCustom
	}

	p.setState(StateRunning)
	batch := Dedup(p.Orch.Fetcher.FetchFeed(country, agency, feedURL), p.Log)
	p.persist(batch)
	if err := p.storeBatch(batch); err != nil {
		p.setState(StateFailed)
		p.Log.WithError(err).Error("single-feed run failed")
		return nil, err
	}
	p.setState(StateCompleted)
	return batch, nil
}

// persist writes the export files. Export failures are logged but do not
// fail the run; the store write still proceeds.
func (p *Pipeline) persist(batch []article.Article) {
	if p.Exporter == nil {
		return
	}
	if err := p.Exporter.WriteCSV(batch); err != nil {
		p.Log.WithError(err).Error("csv export failed")
	}
	if err := p.Exporter.WriteJSON(batch); err != nil {
		p.Log.WithError(err).Error("json export failed")
	}
}

func (p *Pipeline) storeBatch(batch []article.Article) error {
	inserted, err := p.Store.WriteBatch(batch)
	if err != nil {
		return fmt.Errorf("store batch: %w", err)
	}
	p.Log.WithFields(logrus.Fields{"batch": len(batch), "inserted": inserted}).Info("batch stored")
	return nil
}
