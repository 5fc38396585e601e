// Package app assembles the snatchboard components from configuration and
// manages their lifecycle.
package app

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"snatchboard/internal/board"
	"snatchboard/internal/config"
	"snatchboard/internal/ocr"
	"snatchboard/internal/pipeline"
	"snatchboard/internal/snatch"
	"snatchboard/internal/vision"
)

// dictionaryPollInterval is how often the dictionary file is checked for edits.
const dictionaryPollInterval = 2 * time.Second

// App owns the OCR engine, the dictionary index and the frame pipeline.
type App struct {
	Config   config.Config
	Pipeline *pipeline.Pipeline

	logger  *slog.Logger
	engine  *ocr.Engine
	watcher *FileWatcher

	mu    sync.RWMutex
	index *snatch.Index
}

// New loads the dictionary and initialises the OCR engine. A missing
// dictionary is fatal: the returned error wraps snatch.ErrDictionaryUnavailable.
func New(cfg config.Config, logger *slog.Logger) (*App, error) {
	if logger == nil {
		logger = slog.Default()
	}

	idx, err := snatch.LoadIndex(cfg.DictionaryPath)
	if err != nil {
		return nil, err
	}
	logger.Info("dictionary loaded", "path", cfg.DictionaryPath, "words", idx.Words(), "keys", idx.Len())

	engine, err := ocr.NewEngine(ocr.Options{
		Language:            "eng",
		DPI:                 cfg.OCRDPI,
		TileLengthInches:    cfg.TileLengthInches,
		ConfidenceThreshold: cfg.ConfidenceThreshold,
		BinaryThreshold:     ocr.DefaultOptions().BinaryThreshold,
		Logger:              logger,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to start OCR: %w", err)
	}

	params := vision.DefaultParams().
		WithAspectRange(cfg.MinAspectRatio, cfg.MaxAspectRatio).
		WithThreshold(cfg.BinaryThreshold)

	a := &App{
		Config: cfg,
		logger: logger,
		engine: engine,
		index:  idx,
	}
	a.Pipeline = pipeline.New(
		vision.NewDetector(params),
		engine,
		a.detector(idx),
		pipeline.WithAdjacency(board.BoundingBoxAdjacency(cfg.AdjacencySlack)),
		pipeline.WithOrdering(Ordering(cfg)),
		pipeline.WithSkipUnchanged(cfg.FrameHashDistance),
		pipeline.WithLogger(logger),
	)
	return a, nil
}

// Ordering returns the word ordering selected by cfg.
func Ordering(cfg config.Config) board.Ordering {
	if cfg.ReadingOrder {
		return board.ReadingOrder
	}
	return board.VisitOrder
}

// DetectorOptions returns the snatch detector options selected by cfg.
func DetectorOptions(cfg config.Config) []snatch.Option {
	return []snatch.Option{
		snatch.WithDeduplicate(cfg.Dedupe),
	}
}

func (a *App) detector(idx *snatch.Index) *snatch.Detector {
	return snatch.NewDetector(idx, DetectorOptions(a.Config)...)
}

// Index returns the current dictionary index.
func (a *App) Index() *snatch.Index {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.index
}

// WatchDictionary reloads the dictionary whenever its file changes. A
// failed reload keeps the previous index.
func (a *App) WatchDictionary() {
	w := NewFileWatcher(a.Config.DictionaryPath, dictionaryPollInterval)
	if w == nil {
		a.logger.Warn("dictionary watch unavailable", "path", a.Config.DictionaryPath)
		return
	}
	w.OnChange(a.reloadDictionary)
	w.Start()
	a.watcher = w
	a.logger.Debug("watching dictionary", "path", w.Path(), "interval", dictionaryPollInterval)
}

func (a *App) reloadDictionary() {
	idx, err := snatch.LoadIndex(a.Config.DictionaryPath)
	if err != nil {
		a.logger.Error("dictionary reload failed", "err", err)
		return
	}

	a.mu.Lock()
	a.index = idx
	a.mu.Unlock()

	a.Pipeline.SetFinder(a.detector(idx))
	a.logger.Info("dictionary reloaded", "words", idx.Words())
}

// Close releases the OCR engine and stops the dictionary watcher.
func (a *App) Close() error {
	if a.watcher != nil {
		a.watcher.Stop()
	}
	return a.engine.Close()
}
