// Package pipeline turns a camera frame into board words and the snatches
// available from them.
//
// A frame passes through four stages: tile localisation, letter
// recognition, word assembly (adjacency graph plus connected components)
// and the snatch search. Localisation and recognition are supplied as
// interfaces so the pipeline runs against OpenCV/Tesseract in production
// and against fixed data in tests.
package pipeline

import (
	"fmt"
	"image"
	"log/slog"
	"sync"
	"time"

	"snatchboard/internal/board"
	"snatchboard/internal/tile"
	"snatchboard/pkg/geometry"

	"github.com/corona10/goimagehash"
)

// Locator finds candidate tile rectangles in a frame.
type Locator interface {
	Locate(img image.Image) ([]geometry.RotatedRect, error)
}

// Reader recognises the letters inside located rectangles.
type Reader interface {
	Read(img image.Image, rects []geometry.RotatedRect) ([]tile.LetterTile, error)
}

// Finder searches board words for snatches.
type Finder interface {
	Find(words []string) []string
}

// Result is the outcome of processing one frame.
type Result struct {
	Tiles    []tile.LetterTile
	Words    []string
	Snatches []string
	Skipped  bool // frame matched the previous one; fields are carried over
	Reused   bool // tiles matched the previous frame; words and snatches are carried over
	Elapsed  time.Duration
}

// Pipeline processes frames. It is safe for concurrent use; frames are
// processed one at a time.
type Pipeline struct {
	locator  Locator
	reader   Reader
	finder   Finder
	adjacent board.AdjacencyFunc
	order    board.Ordering
	logger   *slog.Logger

	skipDistance int

	mu        sync.Mutex
	lastHash  *goimagehash.ImageHash
	lastTiles uint64
	last      *Result
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithAdjacency sets the tile adjacency predicate.
// Default: board.BoundingBoxStrategy.
func WithAdjacency(fn board.AdjacencyFunc) Option {
	return func(p *Pipeline) { p.adjacent = fn }
}

// WithOrdering sets how component tiles are arranged into words.
// Default: board.ReadingOrder.
func WithOrdering(order board.Ordering) Option {
	return func(p *Pipeline) { p.order = order }
}

// WithSkipUnchanged reuses the previous result when the perceptual hash of
// a frame differs from the last processed frame in fewer than distance
// bits. Zero disables skipping.
func WithSkipUnchanged(distance int) Option {
	return func(p *Pipeline) { p.skipDistance = distance }
}

// WithLogger sets the logger. Default: slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(p *Pipeline) { p.logger = l }
}

// New creates a Pipeline.
func New(locator Locator, reader Reader, finder Finder, opts ...Option) *Pipeline {
	p := &Pipeline{
		locator:  locator,
		reader:   reader,
		finder:   finder,
		adjacent: board.BoundingBoxStrategy,
		order:    board.ReadingOrder,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Process runs every stage on img.
func (p *Pipeline) Process(img image.Image) (*Result, error) {
	if img == nil {
		return nil, fmt.Errorf("nil image")
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	start := time.Now()

	var hash *goimagehash.ImageHash
	if p.skipDistance > 0 {
		h, err := goimagehash.PerceptionHash(img)
		if err != nil {
			p.logger.Warn("frame hash failed", "err", err)
		} else {
			hash = h
			if p.unchanged(h) {
				res := *p.last
				res.Skipped = true
				res.Elapsed = time.Since(start)
				p.logger.Debug("frame unchanged, skipped")
				return &res, nil
			}
		}
	}

	rects, err := p.locator.Locate(img)
	if err != nil {
		return nil, fmt.Errorf("failed to locate tiles: %w", err)
	}

	tiles, err := p.reader.Read(img, rects)
	if err != nil {
		return nil, fmt.Errorf("failed to read tiles: %w", err)
	}

	fp := tile.Fingerprint(tiles)
	res := &Result{Tiles: tiles}
	if p.last != nil && fp == p.lastTiles {
		res.Words = p.last.Words
		res.Snatches = p.last.Snatches
		res.Reused = true
	} else {
		g := board.Build(tiles, p.adjacent)
		res.Words = board.Words(g, p.order)
		res.Snatches = p.finder.Find(res.Words)
	}
	res.Elapsed = time.Since(start)

	p.logger.Info("frame processed",
		"located", len(rects),
		"tiles", len(tiles),
		"words", len(res.Words),
		"snatches", len(res.Snatches),
		"reused", res.Reused,
		"elapsed", res.Elapsed)

	p.lastHash = hash
	p.lastTiles = fp
	p.last = res
	return res, nil
}

// SetFinder swaps the snatch search, for example after the dictionary is
// reloaded. The next frame is always processed.
func (p *Pipeline) SetFinder(f Finder) {
	p.mu.Lock()
	p.finder = f
	p.lastHash = nil
	p.last = nil
	p.mu.Unlock()
}

// Reset forgets the previous frame so the next one is always processed.
func (p *Pipeline) Reset() {
	p.mu.Lock()
	p.lastHash = nil
	p.last = nil
	p.mu.Unlock()
}

func (p *Pipeline) unchanged(h *goimagehash.ImageHash) bool {
	if p.lastHash == nil || p.last == nil {
		return false
	}
	d, err := h.Distance(p.lastHash)
	if err != nil {
		return false
	}
	return d < p.skipDistance
}
