package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/kpauljoseph/neurocards/internal/parser"
	"github.com/kpauljoseph/neurocards/internal/pdf"
	"github.com/kpauljoseph/neurocards/internal/source"
	"github.com/kpauljoseph/neurocards/pkg/logger"
)

// inspect prints, line by line, what the parser makes of an input.
func main() {
	inputPath := flag.String("file", "", "text or PDF file, directory, or - for stdin")
	debug := flag.Bool("debug", false, "enable trace logging")
	flag.Parse()

	if *inputPath == "" {
		fmt.Println("Please provide an input using -file flag")
		os.Exit(1)
	}

	log := logger.New(logger.WithPrefix("[inspect] "), logger.WithOutput(os.Stderr))
	if *debug {
		log.SetLevel(logger.LevelTrace)
		log.SetVerbose(true)
	}

	loader := source.NewLoader(pdf.NewProcessor(log), os.Stdin, log)
	text, err := loader.Load(context.Background(), *inputPath)
	if err != nil {
		fmt.Printf("Error loading input: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Analyzing input: %s\n\n", *inputPath)

	for i, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		delim := parser.Detect(line)
		card, ok := parser.ParseLine(line)
		switch {
		case delim == parser.DelimiterNone:
			fmt.Printf("%4d  skip  no delimiter      %q\n", i+1, line)
		case !ok:
			fmt.Printf("%4d  skip  malformed (%s)  %q\n", i+1, delim, line)
		default:
			fmt.Printf("%4d  card  [%s]  %q -> %q\n", i+1, delim, card.Front, card.Back)
		}
	}

	_, stats := parser.ParseWithStats(text)
	fmt.Printf("\nLines: %d  Blank: %d  Cards: %d  No delimiter: %d  Malformed: %d\n",
		stats.Lines, stats.Blank, stats.Cards, stats.NoDelimiter, stats.Malformed)
}
