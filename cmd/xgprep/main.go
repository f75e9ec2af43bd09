// Command xgprep turns a raw play-by-play dump into the ShotOnGoal dataset.
//
//	xgprep -i data/pbp_raw.json -e add_prev_play_name -s -o data/shots.csv
//
// Without -s it prints the first rows and a per-column summary.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/rs/zerolog"

	"github.com/maxviazov/hockey-xg-preprocessor/internal/config"
	"github.com/maxviazov/hockey-xg-preprocessor/internal/enrichment"
	"github.com/maxviazov/hockey-xg-preprocessor/internal/logger"
	"github.com/maxviazov/hockey-xg-preprocessor/internal/rawdata"
	"github.com/maxviazov/hockey-xg-preprocessor/internal/service"
	"github.com/maxviazov/hockey-xg-preprocessor/internal/sink"
	"github.com/maxviazov/hockey-xg-preprocessor/internal/table"
)

const headRows = 5

// multiFlag collects a repeatable string flag.
type multiFlag []string

func (m *multiFlag) String() string     { return strings.Join(*m, ",") }
func (m *multiFlag) Set(v string) error { *m = append(*m, v); return nil }

type options struct {
	configPath  string
	input       string
	output      string
	enrichments multiFlag
	save        bool
}

func main() {
	var opts options
	flag.StringVar(&opts.configPath, "config", "", "path to the YAML config (defaults apply when empty)")
	flag.StringVar(&opts.input, "i", "", "input file path (overrides pipeline.input)")
	flag.StringVar(&opts.output, "o", "", "output file path (overrides pipeline.output)")
	flag.Var(&opts.enrichments, "e", "enrichment name, repeatable")
	flag.BoolVar(&opts.save, "s", false, "save the dataset as CSV instead of printing it")
	flag.Parse()

	cfg, err := loadConfig(opts.configPath)
	if err != nil {
		log.Fatalf("❌ Config loading failed: %v", err)
	}
	appLogger, err := logger.New(&cfg.Logger)
	if err != nil {
		log.Fatalf("❌ Logger initialization failed: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, opts, appLogger, os.Stdout); err != nil {
		appLogger.Error().Err(err).Msg("preprocessing failed")
		stop()
		os.Exit(1)
	}
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Default()
	}
	return config.Load(path)
}

func run(ctx context.Context, cfg *config.Config, opts options, logger zerolog.Logger, stdout io.Writer) error {
	start := time.Now()
	l := logger.With().Str("module", "cli").Logger()

	input := firstNonEmpty(opts.input, cfg.Pipeline.Input)
	output := firstNonEmpty(opts.output, cfg.Pipeline.Output)
	if opts.save && output == "" {
		return errors.New("-s needs an output path (-o or pipeline.output)")
	}

	names := usableEnrichments(append(append([]string{}, cfg.Pipeline.Enrichments...), opts.enrichments...), l)

	games, err := rawdata.ReadGamesFile(input)
	if err != nil {
		return err
	}
	l.Info().Str("input", input).Int("games", len(games)).Msg("raw games loaded")

	store, err := sink.Open(ctx, cfg, &logger)
	if err != nil {
		return err
	}
	defer store.Close()

	svc := service.NewShotService(store.Shots, store.Tx, cfg.Pipeline.Strict, logger)
	res, err := svc.Preprocess(ctx, service.PreprocessRequest{
		Games:       games,
		Enrichments: names,
		Persist:     store.Enabled(),
	})
	if err != nil {
		return err
	}
	for _, s := range res.Skipped {
		l.Warn().Str("game", s.Key).Str("reason", s.Reason).Msg("game skipped")
	}

	if opts.save {
		if err := saveCSV(output, res.Table, cfg.Pipeline.SeparatorRune()); err != nil {
			return err
		}
		fmt.Fprintf(stdout, "Data saved to %s\n", output)
	} else if err := printReport(stdout, res.Table); err != nil {
		return err
	}

	l.Info().
		Int("rows", res.Table.Len()).
		Int("persisted", res.Persisted).
		Dur("elapsed", time.Since(start)).
		Msg("preprocessing finished")
	return nil
}

// usableEnrichments drops unknown names so one typo does not abort the run.
func usableEnrichments(names []string, l zerolog.Logger) []string {
	reg := enrichment.DefaultRegistry()
	out := make([]string, 0, len(names))
	for _, n := range names {
		if _, err := reg.Lookup(n); err != nil {
			l.Warn().Err(err).Strs("known", reg.Names()).Msg("enrichment skipped")
			continue
		}
		out = append(out, n)
	}
	return out
}

func saveCSV(path string, t *table.Table, sep rune) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close output: %w", cerr)
		}
	}()
	return t.WriteCSV(f, sep)
}

func printReport(w io.Writer, t *table.Table) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(table.Columns(), "\t"))
	for _, rec := range t.Head(headRows).Records() {
		fmt.Fprintln(tw, strings.Join(rec, "\t"))
	}
	fmt.Fprintf(tw, "[%d rows x %d columns]\n\n", t.Len(), len(table.Columns()))
	fmt.Fprintln(tw, "name\tnon-null\tunique\tdtype")
	for _, s := range t.Summary() {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%s\n", s.Name, s.NonNull, s.Unique, s.DType)
	}
	return tw.Flush()
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
