package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/lmittmann/tint"

	"ising/internal/harness"
	"ising/internal/ising"
)

type report struct {
	*harness.Result
	Histogram *harness.Histogram `json:"histogram,omitempty"`
}

func main() {
	cfg := NewConfig()
	cfg.Bind(flag.CommandLine)
	flag.Parse()

	level := slog.LevelInfo
	if cfg.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:      level,
		TimeFormat: "15:04:05",
	}))
	slog.SetDefault(logger)
	cfg.Run.Logger = logger

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, cfg, os.Stdout); err != nil {
		slog.Error("measurement failed", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *Config, out io.Writer) error {
	start := time.Now()
	var results []*harness.Result
	if len(cfg.Temps) > 0 {
		slog.Info("scanning", "points", len(cfg.Temps), "workers", cfg.Workers, "run", harness.RunID(cfg.Run))
		res, err := harness.Scan(ctx, cfg.Run, cfg.Temps, cfg.Workers)
		if err != nil {
			return err
		}
		results = res
	} else {
		slog.Info("measuring", "run", harness.RunID(cfg.Run))
		res, err := harness.Run(ctx, cfg.Run)
		if err != nil {
			return err
		}
		results = []*harness.Result{res}
	}
	slog.Info("done", "elapsed", time.Since(start).Round(time.Millisecond))

	reports := make([]report, len(results))
	for i, res := range results {
		reports[i].Result = res
		if cfg.Bins > 0 {
			h, err := res.Histogram(cfg.Bins)
			if err != nil {
				return err
			}
			reports[i].Histogram = &h
		}
	}

	if cfg.JSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if len(reports) == 1 {
			return enc.Encode(reports[0])
		}
		return enc.Encode(reports)
	}

	if len(reports) > 1 {
		printScan(out, reports, cfg)
	} else {
		printSingle(out, reports[0], cfg)
	}
	return nil
}

func printSingle(out io.Writer, r report, cfg *Config) {
	fmt.Fprintln(out, r.ID)
	printSummary(out, "M", r.Magnetization, cfg.Run.StdDev)
	printSummary(out, "|M|", r.AbsMagnetization, cfg.Run.StdDev)
	printSummary(out, "R", r.LocalCorrelation, cfg.Run.StdDev)
	printSummary(out, "E/N", r.Energy, cfg.Run.StdDev)

	if cfg.Series {
		fmt.Fprintln(out, "\nsweep\tM\t|M|\tR\tE/N")
		s := r.Series
		for i := range s.Magnetization {
			fmt.Fprintf(out, "%d\t%s\t%s\t%s\t%s\n", i+1,
				ising.FormatReadout(s.Magnetization[i]),
				ising.FormatReadout(s.AbsMagnetization[i]),
				ising.FormatReadout(s.LocalCorrelation[i]),
				ising.FormatReadout(s.Energy[i]))
		}
	}
	if cfg.Plot {
		caption := "mean |M| and R per sweep"
		if cfg.Run.Protocol == harness.TemperatureStep {
			caption += fmt.Sprintf(" (T switches after sweep %d)", cfg.Run.Steps)
		}
		fmt.Fprintln(out)
		fmt.Fprintln(out, asciigraph.PlotMany(
			[][]float64{r.Series.AbsMagnetization, r.Series.LocalCorrelation},
			asciigraph.Height(12),
			asciigraph.Width(72),
			asciigraph.Precision(2),
			asciigraph.SeriesColors(asciigraph.Blue, asciigraph.Red),
			asciigraph.Caption(caption),
		))
	}
	if r.Histogram != nil {
		printHistogram(out, *r.Histogram)
	}
}

func printSummary(out io.Writer, label string, s harness.Summary, withStdDev bool) {
	if !withStdDev {
		fmt.Fprintf(out, "%-4s %s\n", label, ising.FormatReadout(s.Mean))
		return
	}
	fmt.Fprintf(out, "%-4s %s ± %.3f\n", label, ising.FormatReadout(s.Mean), s.StdDev)
}

func printScan(out io.Writer, reports []report, cfg *Config) {
	fmt.Fprintln(out, "T\tM\t|M|\tR\tE/N\tid")
	abs := make([]float64, len(reports))
	energy := make([]float64, len(reports))
	for i, r := range reports {
		fmt.Fprintf(out, "%.3f\t%s\t%s\t%s\t%s\t%s\n", r.Temperature,
			ising.FormatReadout(r.Magnetization.Mean),
			ising.FormatReadout(r.AbsMagnetization.Mean),
			ising.FormatReadout(r.LocalCorrelation.Mean),
			ising.FormatReadout(r.Energy.Mean),
			r.ID)
		abs[i] = r.AbsMagnetization.Mean
		energy[i] = r.Energy.Mean
	}
	if cfg.Plot {
		fmt.Fprintln(out)
		fmt.Fprintln(out, asciigraph.PlotMany(
			[][]float64{abs, energy},
			asciigraph.Height(12),
			asciigraph.Precision(2),
			asciigraph.SeriesColors(asciigraph.Blue, asciigraph.Red),
			asciigraph.Caption("mean |M| and E/N by scan point"),
		))
	}
	for _, r := range reports {
		if r.Histogram != nil {
			fmt.Fprintf(out, "\n%s\n", r.ID)
			printHistogram(out, *r.Histogram)
		}
	}
}

func printHistogram(out io.Writer, h harness.Histogram) {
	total := h.Total()
	if total == 0 {
		return
	}
	fmt.Fprintln(out, "\nmagnetization histogram")
	for i, c := range h.Counts {
		bar := strings.Repeat("#", int(60*c/total+0.5))
		fmt.Fprintf(out, "[%+.2f,%+.2f) %6.0f %s\n", h.Dividers[i], min(h.Dividers[i+1], 1), c, bar)
	}
}
