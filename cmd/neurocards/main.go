package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/kpauljoseph/neurocards/internal/anki"
	"github.com/kpauljoseph/neurocards/internal/config"
	"github.com/kpauljoseph/neurocards/internal/export"
	"github.com/kpauljoseph/neurocards/internal/pdf"
	"github.com/kpauljoseph/neurocards/internal/session"
	"github.com/kpauljoseph/neurocards/internal/source"
	"github.com/kpauljoseph/neurocards/internal/ui"
	"github.com/kpauljoseph/neurocards/internal/watch"
	"github.com/kpauljoseph/neurocards/pkg/logger"
	"github.com/kpauljoseph/neurocards/pkg/version"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file (.yaml or .toml)")
	inputPath := flag.String("input", "", "text, markdown, TSV or PDF file, a directory of them, or - for stdin (overrides config)")
	exportDir := flag.String("export-dir", "", "directory to write the export file to (overrides config)")
	exportOnly := flag.Bool("export", false, "parse the input, write the export file and exit without the UI")
	pushAnki := flag.Bool("anki", false, "enable pushing the deck to Anki through AnkiConnect")
	deckName := flag.String("deck", "", "Anki deck name (overrides config)")
	watchInput := flag.Bool("watch", false, "reload the input file when it changes")
	verbose := flag.Bool("verbose", false, "enable verbose logging")
	debug := flag.Bool("debug", false, "enable debug mode with trace logging")
	showVersion := flag.Bool("version", false, "print version information and exit")
	flag.Parse()

	if *showVersion {
		fmt.Print(version.GetDetailedVersionInfo())
		return
	}

	log := logger.New(logger.WithPrefix("[neurocards] "))

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal("Error loading config: %v", err)
	}

	level := resolveLevel(cfg.LogLevel, *verbose, *debug)
	log.SetLevel(level)
	log.SetVerbose(level > logger.LevelInfo)
	log.Debug("Verbose logging enabled")

	if *inputPath != "" {
		cfg.InputPath = *inputPath
	}
	if *exportDir != "" {
		cfg.ExportDir = *exportDir
	}
	if *deckName != "" {
		cfg.Anki.DeckName = *deckName
	} else if cfg.Anki.DeckName == config.DefaultAnkiDeckName && isFilePath(cfg.InputPath) {
		cfg.Anki.DeckName = anki.GetDeckNameFromPath(config.DefaultAnkiDeckName, filepath.Base(cfg.InputPath))
	}
	if *pushAnki {
		cfg.Anki.Enabled = true
	}
	if *watchInput {
		cfg.WatchInput = true
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if *exportOnly {
		if err := runHeadless(ctx, cfg, log); err != nil {
			log.Fatal("%v", err)
		}
		return
	}

	fileLog, logPath, closeLog, err := setupLogging(cfg.LogDir, level)
	if err != nil {
		log.Warn("failed to set up log file, UI logging disabled: %v", err)
		fileLog, closeLog = logger.Discard(), func() {}
	}
	defer closeLog()

	if err := runUI(ctx, cfg, fileLog); err != nil {
		log.Fatal("UI error: %v", err)
	}
	if logPath != "" {
		log.Info("Logs written to %s", logPath)
	}
}

func runHeadless(ctx context.Context, cfg *config.Config, log *logger.Logger) error {
	if cfg.InputPath == "" {
		return fmt.Errorf("no input given: use -input or set input_path in the config")
	}

	loader := source.NewLoader(pdf.NewProcessor(log), os.Stdin, log)
	loader.Exclude(exportPath(cfg))
	text, err := loader.Load(ctx, cfg.InputPath)
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", cfg.InputPath, err)
	}

	sess := session.New(log)
	sess.SetInput(text)
	_, stats := sess.Preview()
	log.Info("Parsed %d lines: %d cards, %d dropped", stats.Lines, stats.Cards, stats.Dropped())

	if err := sess.Generate(); err != nil {
		return fmt.Errorf("%s: %w", cfg.InputPath, err)
	}

	path, err := export.WriteFile(cfg.ExportDir, cfg.ExportFileName, sess.Deck().Cards)
	if err != nil {
		return err
	}
	log.Info("Exported %d cards to %s", sess.Len(), path)

	if !cfg.Anki.Enabled {
		return nil
	}

	svc := anki.NewService(log, anki.WithURL(cfg.Anki.URL))
	report, err := svc.SyncDeck(ctx, cfg.Anki.DeckName, sess.Deck().Cards)
	if report != nil {
		report.Print(log)
	}
	return err
}

func runUI(ctx context.Context, cfg *config.Config, log *logger.Logger) error {
	loader := source.NewLoader(pdf.NewProcessor(log), os.Stdin, log)
	loader.Exclude(exportPath(cfg))
	sess := session.New(log)

	if cfg.InputPath != "" {
		text, err := loader.Load(ctx, cfg.InputPath)
		if err != nil {
			return fmt.Errorf("failed to load %s: %w", cfg.InputPath, err)
		}
		sess.SetInput(text)
		if err := sess.Generate(); err != nil {
			log.Info("No cards in %s yet, starting in the editor", cfg.InputPath)
		}
	}

	opts := ui.Options{
		Session:        sess,
		Loader:         loader,
		Logger:         log,
		InputPath:      cfg.InputPath,
		ExportDir:      cfg.ExportDir,
		ExportFileName: cfg.ExportFileName,
		AnkiDeckName:   cfg.Anki.DeckName,
		Thresholds:     cfg.Thresholds(),
		CellWidth:      cfg.Gesture.CellWidth,
	}
	if cfg.InputPath == source.StdinPath {
		opts.InputPath = ""
	}

	if cfg.Anki.Enabled {
		opts.Anki = anki.NewService(log, anki.WithURL(cfg.Anki.URL))
	}

	if cfg.WatchInput && isFilePath(cfg.InputPath) {
		w, err := watch.New(cfg.InputPath, log)
		if err != nil {
			return fmt.Errorf("failed to watch %s: %w", cfg.InputPath, err)
		}
		defer w.Close()
		w.Ignore(exportPath(cfg))
		opts.Watcher = w
		log.Info("Watching %s for changes", cfg.InputPath)
	}

	return ui.Run(ctx, opts)
}

// exportPath is where exports land; it is never read back as input.
func exportPath(cfg *config.Config) string {
	return filepath.Join(cfg.ExportDir, cfg.ExportFileName)
}

func resolveLevel(configured string, verbose, debug bool) logger.LogLevel {
	level := logger.ParseLevel(configured)
	if debug {
		return logger.LevelTrace
	}
	if verbose && level < logger.LevelDebug {
		return logger.LevelDebug
	}
	return level
}

func isFilePath(path string) bool {
	return path != "" && path != source.StdinPath
}
