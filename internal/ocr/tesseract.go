// Package ocr reads the letter printed on each located tile.
package ocr

import (
	"errors"
	"fmt"
	"image"
	"log/slog"
	"strings"

	"snatchboard/internal/tile"
	"snatchboard/internal/vision"
	"snatchboard/pkg/geometry"

	"github.com/otiai10/gosseract/v2"
	"gocv.io/x/gocv"
)

// TileChars is the character set a tile can carry.
const TileChars = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// ErrEngineUnavailable indicates Tesseract could not be initialised.
var ErrEngineUnavailable = errors.New("ocr: engine unavailable")

// Options configures an Engine.
type Options struct {
	Language            string
	DPI                 int     // resolution tiles are rescaled to before recognition
	TileLengthInches    float64 // physical tile edge length
	ConfidenceThreshold float64 // percent; a guess must strictly exceed it
	BinaryThreshold     float64 // gray level applied to the tile crop
	Logger              *slog.Logger
}

// DefaultOptions returns options for 18mm tiles read at 300 DPI.
func DefaultOptions() Options {
	return Options{
		Language:            "eng",
		DPI:                 300,
		TileLengthInches:    0.708661,
		ConfidenceThreshold: 50,
		BinaryThreshold:     150,
	}
}

// Engine recognises single tile letters using Tesseract.
// An Engine is not safe for concurrent use.
type Engine struct {
	client *gosseract.Client
	opts   Options
	logger *slog.Logger
}

// NewEngine creates a new OCR engine configured for single upper-case
// characters.
func NewEngine(opts Options) (*Engine, error) {
	if opts.DPI <= 0 || opts.TileLengthInches <= 0 {
		return nil, fmt.Errorf("%w: invalid DPI %d or tile length %v", ErrEngineUnavailable, opts.DPI, opts.TileLengthInches)
	}

	client := gosseract.NewClient()

	if err := client.SetLanguage(opts.Language); err != nil {
		client.Close()
		return nil, fmt.Errorf("%w: failed to set OCR language: %w", ErrEngineUnavailable, err)
	}
	if err := client.SetPageSegMode(gosseract.PSM_SINGLE_CHAR); err != nil {
		client.Close()
		return nil, fmt.Errorf("%w: failed to set PSM: %w", ErrEngineUnavailable, err)
	}
	if err := client.SetWhitelist(TileChars); err != nil {
		client.Close()
		return nil, fmt.Errorf("%w: failed to set whitelist: %w", ErrEngineUnavailable, err)
	}

	// Tile letters are not dictionary words.
	_ = client.SetVariable("load_system_dawg", "false")
	_ = client.SetVariable("load_freq_dawg", "false")
	_ = client.SetVariable("user_defined_dpi", fmt.Sprint(opts.DPI))

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{client: client, opts: opts, logger: logger}, nil
}

// Close releases OCR resources.
func (e *Engine) Close() error {
	if e.client != nil {
		return e.client.Close()
	}
	return nil
}

// Read recognises the letter on each rect of img. Tiles whose letter
// cannot be read confidently are dropped. A vision.MatImage is read in
// place.
func (e *Engine) Read(img image.Image, rects []geometry.RotatedRect) ([]tile.LetterTile, error) {
	if m, ok := img.(vision.MatImage); ok {
		return e.ReadMat(m.Mat, rects)
	}

	mat, err := vision.ImageToMat(img)
	if err != nil {
		return nil, fmt.Errorf("failed to convert image: %w", err)
	}
	defer mat.Close()

	return e.ReadMat(mat, rects)
}

// ReadMat is Read for a BGR frame.
func (e *Engine) ReadMat(frame gocv.Mat, rects []geometry.RotatedRect) ([]tile.LetterTile, error) {
	if frame.Empty() {
		return nil, fmt.Errorf("empty image")
	}

	var tiles []tile.LetterTile
	for _, r := range rects {
		letter, ok, err := e.recognizeTile(frame, r)
		if err != nil {
			return nil, err
		}
		if !ok {
			e.logger.Debug("tile unreadable", "center", r.Center, "angle", r.Angle)
			continue
		}

		t, err := tile.New(letter, r)
		if err != nil {
			e.logger.Debug("tile rejected", "letter", string(letter), "err", err)
			continue
		}
		tiles = append(tiles, t)
	}
	return tiles, nil
}

// recognizeTile tries the tile crop in all four 90° orientations and keeps
// the most confident single-letter reading.
func (e *Engine) recognizeTile(frame gocv.Mat, r geometry.RotatedRect) (rune, bool, error) {
	crop, err := e.preprocess(frame, r)
	if err != nil {
		e.logger.Debug("tile crop failed", "center", r.Center, "err", err)
		return 0, false, nil
	}
	defer crop.Close()

	var guesses []guess
	current := crop.Clone()
	defer func() { current.Close() }()

	for i := 0; i < 4; i++ {
		rotated := gocv.NewMat()
		gocv.Rotate(current, &rotated, gocv.Rotate90Clockwise)
		current.Close()
		current = rotated

		g, err := e.classify(current)
		if err != nil {
			return 0, false, err
		}
		guesses = append(guesses, g)
	}

	best, ok := bestGuess(guesses, e.opts.ConfidenceThreshold)
	return best.letter, ok, nil
}

// classify runs Tesseract on a single preprocessed orientation.
func (e *Engine) classify(img gocv.Mat) (guess, error) {
	buf, err := gocv.IMEncode(gocv.PNGFileExt, img)
	if err != nil {
		return guess{}, fmt.Errorf("failed to encode image: %w", err)
	}
	defer buf.Close()

	if err := e.client.SetImageFromBytes(buf.GetBytes()); err != nil {
		return guess{}, fmt.Errorf("failed to set image: %w", err)
	}

	boxes, err := e.client.GetBoundingBoxes(gosseract.RIL_SYMBOL)
	if err != nil {
		return guess{}, fmt.Errorf("OCR failed: %w", err)
	}

	var found []gosseract.BoundingBox
	for _, b := range boxes {
		if strings.TrimSpace(b.Word) != "" {
			found = append(found, b)
		}
	}
	if len(found) != 1 {
		return guess{}, nil
	}
	return parseGuess(found[0].Word, found[0].Confidence), nil
}
