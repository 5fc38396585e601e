// Command tiletest runs tile detection, recognition and snatch search on a
// still image of the board and prints the results.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"snatchboard/internal/app"
	"snatchboard/internal/config"
	boardimage "snatchboard/internal/image"
)

func main() {
	imagePath := flag.String("image", "", "Path to board image (TIFF, PNG, or JPEG)")
	configPath := flag.String("config", config.DefaultPath(), "Path to preferences JSON")
	dict := flag.String("dict", "", "Path to word list (overrides config)")
	verbose := flag.Bool("v", false, "Verbose logging")
	flag.Parse()

	if *imagePath == "" {
		fmt.Println("Usage: tiletest -image <path> [-dict words.txt] [-config prefs.json] [-v]")
		os.Exit(1)
	}

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	if *dict != "" {
		cfg.DictionaryPath = *dict
	}

	frame, err := boardimage.Load(*imagePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load image: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Loaded %s image: %dx%d pixels\n", frame.Format, frame.Width(), frame.Height())

	a, err := app.New(cfg, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Startup failed: %v\n", err)
		os.Exit(1)
	}
	defer a.Close()

	fmt.Printf("\nParameters:\n")
	fmt.Printf("  Adjacency slack: %.2f\n", cfg.AdjacencySlack)
	fmt.Printf("  Confidence threshold: %.0f\n", cfg.ConfidenceThreshold)
	fmt.Printf("  Aspect ratio: %.2f - %.2f\n", cfg.MinAspectRatio, cfg.MaxAspectRatio)
	fmt.Printf("  Reading order: %v, dedupe: %v\n", cfg.ReadingOrder, cfg.Dedupe)

	res, err := a.Pipeline.Process(frame.Image)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Processing failed: %v\n", err)
		a.Close()
		os.Exit(1)
	}

	fmt.Printf("\nRecognised %d tiles:\n", len(res.Tiles))
	fmt.Printf("%-6s %10s %10s %8s %8s %8s\n", "Letter", "X", "Y", "W", "H", "Angle")
	for _, t := range res.Tiles {
		r := t.Rect
		fmt.Printf("%-6c %10.1f %10.1f %8.1f %8.1f %8.1f\n",
			t.Letter, r.Center.X, r.Center.Y, r.Size.Width, r.Size.Height, r.Angle)
	}

	fmt.Printf("\nWords (%d): %s\n", len(res.Words), strings.Join(res.Words, " "))
	fmt.Printf("Snatches (%d): %s\n", len(res.Snatches), strings.Join(res.Snatches, " "))
	fmt.Printf("\nElapsed: %s\n", res.Elapsed)
}
