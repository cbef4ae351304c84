package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	tui "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/term"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/keilerkonzept/condemned-dash/internal/config"
	"github.com/keilerkonzept/condemned-dash/internal/dataset"
	"github.com/keilerkonzept/condemned-dash/internal/geo"
)

var errNoRecords = errors.New("no records: pass --records or pipe a CSV on stdin")

// inputs is everything read from disk before the dashboard starts.
type inputs struct {
	store      *dataset.Store
	stats      dataset.LoadStats
	resolver   *geo.Resolver
	presidents dataset.Presidents
	// counts is nil unless a precomputed table was given
	counts *geo.CountTable
}

type dataLoadedMsg struct {
	data *inputs
	took time.Duration
}

type errMsg struct{ err error }

// loadCmd reads the inputs off the UI goroutine.
func loadCmd(cfg config.DataConfig, logger *zap.Logger) tui.Cmd {
	return func() tui.Msg {
		start := time.Now()
		data, err := loadInputs(cfg, logger)
		if err != nil {
			return errMsg{err}
		}
		return dataLoadedMsg{data: data, took: time.Since(start)}
	}
}

// loadInputs reads the records and the optional county, president and count
// tables concurrently.
// Each goroutine fills its own field of data.
func loadInputs(cfg config.DataConfig, logger *zap.Logger) (*inputs, error) {
	data := &inputs{resolver: geo.NewResolver()}
	var eg errgroup.Group

	eg.Go(func() error {
		r, closeFn, err := openRecords(cfg.Records)
		if err != nil {
			return err
		}
		defer closeFn()
		if data.store, data.stats, err = dataset.Load(r); err != nil {
			return fmt.Errorf("load records: %w", err)
		}
		logger.Info("records loaded",
			zap.String("path", cfg.Records),
			zap.Int("rows", data.stats.Rows),
			zap.Int("skipped", data.stats.Skipped),
			zap.Int("badYears", data.stats.BadYears),
			zap.Int("badDates", data.stats.BadDates))
		return nil
	})

	if cfg.Counties != "" {
		eg.Go(func() error {
			resolver, err := geo.LoadResolverFile(cfg.Counties)
			if err != nil {
				return fmt.Errorf("load counties: %w", err)
			}
			data.resolver = resolver
			logger.Info("counties loaded", zap.Int("counties", resolver.Counties()))
			return nil
		})
	}

	if cfg.Presidents != "" {
		eg.Go(func() error {
			presidents, err := dataset.LoadPresidentsFile(cfg.Presidents)
			if err != nil {
				return fmt.Errorf("load presidents: %w", err)
			}
			data.presidents = presidents
			return nil
		})
	}

	if cfg.Counts != "" {
		eg.Go(func() error {
			counts, err := geo.LoadCountTableFile(cfg.Counts)
			if err != nil {
				return fmt.Errorf("load counts: %w", err)
			}
			data.counts = &counts
			logger.Info("counts loaded", zap.Int("states", len(counts.States())))
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return data, nil
}

func openRecords(path string) (io.Reader, func(), error) {
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, nil, fmt.Errorf("open records: %w", err)
		}
		return f, func() { _ = f.Close() }, nil
	}
	if term.IsTerminal(os.Stdin.Fd()) {
		return nil, nil, errNoRecords
	}
	return os.Stdin, func() {}, nil
}
