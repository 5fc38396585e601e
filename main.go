// Package main runs the live snatchboard camera loop: press Enter to read the
// board in the current frame, Esc to quit.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"snatchboard/internal/app"
	"snatchboard/internal/config"
	"snatchboard/internal/snatch"
	"snatchboard/internal/version"
	"snatchboard/internal/vision"

	"gocv.io/x/gocv"
)

const (
	windowName = "Snatchboard"
	boardName  = "Detected Tiles"
	keyEnter   = 13
	keyEsc     = 27
	keyReset   = 'r'
)

func main() {
	configPath := flag.String("config", config.DefaultPath(), "Path to preferences JSON")
	camera := flag.Int("camera", -1, "Camera device ID (overrides config)")
	dict := flag.String("dict", "", "Path to word list (overrides config)")
	saveConfig := flag.Bool("save-config", false, "Write the effective settings to -config and exit")
	verbose := flag.Bool("v", false, "Verbose logging")
	showVersion := flag.Bool("version", false, "Print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(version.String("snatchboard"))
		return
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Error("failed to load config", "path", *configPath, "err", err)
		os.Exit(1)
	}
	if *camera >= 0 {
		cfg.CameraID = *camera
	}
	if *dict != "" {
		cfg.DictionaryPath = *dict
	}

	if *saveConfig {
		if err := cfg.Save(*configPath); err != nil {
			logger.Error("failed to save config", "path", *configPath, "err", err)
			os.Exit(1)
		}
		logger.Info("config saved", "path", *configPath)
		return
	}

	a, err := app.New(cfg, logger)
	if err != nil {
		if errors.Is(err, snatch.ErrDictionaryUnavailable) {
			logger.Error("cannot run without a dictionary", "path", cfg.DictionaryPath, "err", err)
		} else {
			logger.Error("startup failed", "err", err)
		}
		os.Exit(1)
	}
	defer a.Close()
	a.WatchDictionary()
	logger.Info("ready", "camera", cfg.CameraID, "dictionary_words", a.Index().Words())

	if err := run(a, logger); err != nil {
		logger.Error("camera loop stopped", "err", err)
		a.Close()
		os.Exit(1)
	}
}

func run(a *app.App, logger *slog.Logger) error {
	cam, err := gocv.OpenVideoCapture(a.Config.CameraID)
	if err != nil {
		return fmt.Errorf("cannot open camera %d: %w", a.Config.CameraID, err)
	}
	defer cam.Close()

	logger.Info("camera opened",
		"id", a.Config.CameraID,
		"width", cam.Get(gocv.VideoCaptureFrameWidth),
		"height", cam.Get(gocv.VideoCaptureFrameHeight))

	window := gocv.NewWindow(windowName)
	defer window.Close()

	board := gocv.NewWindow(boardName)
	defer board.Close()

	frame := gocv.NewMat()
	defer frame.Close()

	printActions()
	for {
		if ok := cam.Read(&frame); !ok || frame.Empty() {
			return fmt.Errorf("video camera is disconnected")
		}

		window.IMShow(frame)
		switch window.WaitKey(10) {
		case keyEnter:
			processFrame(a, frame, board, logger)
			printActions()
		case keyReset:
			a.Pipeline.Reset()
			fmt.Println("Previous frame forgotten.")
		case keyEsc:
			logger.Info("esc pressed, stopping")
			return nil
		}
	}
}

func processFrame(a *app.App, frame gocv.Mat, board *gocv.Window, logger *slog.Logger) {
	res, err := a.Pipeline.Process(vision.MatImage{Mat: frame})
	if err != nil {
		logger.Error("frame processing failed", "err", err)
		return
	}

	annotated := frame.Clone()
	defer annotated.Close()
	vision.Annotate(&annotated, res.Tiles)
	board.IMShow(annotated)

	if res.Skipped || res.Reused {
		fmt.Println("Board unchanged.")
	}
	fmt.Printf("Words (%d): %s\n", len(res.Words), strings.Join(res.Words, " "))
	if len(res.Snatches) == 0 {
		fmt.Println("No snatches.")
	} else {
		fmt.Printf("Snatches (%d): %s\n", len(res.Snatches), strings.Join(res.Snatches, " "))
	}
	fmt.Println("Frame processed.")
}

func printActions() {
	fmt.Println()
	fmt.Println("===== Available Actions =====")
	fmt.Println("Press Enter: Read the board in the current frame.")
	fmt.Println("Press r: Forget the previous frame.")
	fmt.Println("Press Esc: Exit the application.")
	fmt.Println("=============================")
}
