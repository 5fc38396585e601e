// Command snatchquery lists the snatches available from the board words
// given as arguments, without any camera or OCR.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"snatchboard/internal/config"
	"snatchboard/internal/snatch"
)

func main() {
	configPath := flag.String("config", config.DefaultPath(), "Path to preferences JSON")
	dict := flag.String("dict", "", "Path to word list (overrides config)")
	dedupe := flag.Bool("dedupe", false, "Report each snatch once")
	flag.Parse()

	words := flag.Args()
	if len(words) == 0 {
		fmt.Println("Usage: snatchquery [-dict words.txt] [-dedupe] WORD WORD...")
		os.Exit(1)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	if *dict != "" {
		cfg.DictionaryPath = *dict
	}
	if *dedupe {
		cfg.Dedupe = true
	}

	idx, err := snatch.LoadIndex(cfg.DictionaryPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load dictionary: %v\n", err)
		os.Exit(1)
	}

	for i, w := range words {
		words[i] = strings.ToUpper(w)
	}

	found := snatch.NewDetector(idx, snatch.WithDeduplicate(cfg.Dedupe)).Find(words)

	for _, w := range found {
		fmt.Println(w)
	}
	fmt.Fprintf(os.Stderr, "%d snatches from %d words (%d in dictionary)\n", len(found), len(words), idx.Words())
}
