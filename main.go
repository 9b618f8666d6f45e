package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"argdl/internal/args"
	"argdl/internal/downloader"
	"argdl/internal/logging"
	"argdl/internal/ui"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const programName = "argdl"

var errAborted = errors.New("download aborted")

func main() {
	os.Exit(run(os.Args, os.Stdin, os.Stdout, os.Stderr))
}

func run(argv []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := args.NewFlagSet(programName)
	recognizer := args.NewRecognizer(args.Vocabulary(fs), args.OrderDeclared)

	var tokens []string
	if len(argv) > 1 {
		tokens = args.FromArgv(len(argv)-1, argv[1:])
	}
	opts, err := args.Resolve(fs, recognizer.Parse(tokens))
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n\n", err)
		ui.PrintHelp(stderr, fs)
		return 1
	}
	if opts.Help {
		ui.PrintHelp(stdout, fs)
		return 0
	}

	// console logs are held back until the progress UI has released the terminal
	log, closeLog := logging.New(logging.Config{File: opts.LogFile, Verbose: opts.Verbose, Stderr: stderr, Hold: true})
	defer closeLog()

	var checksum *downloader.ChecksumInfo
	if opts.Checksum != "" {
		checksum, err = downloader.NewChecksumInfo(opts.Checksum, opts.Algorithm)
		if err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	client := &http.Client{}

	total, acceptRange, err := downloader.Probe(ctx, client, opts.URL)
	if err != nil {
		log.Warn("could not probe file size", zap.String("url", opts.URL), zap.Error(err))
		total = -1
	}
	log.Debug("probed", zap.Int64("size", total), zap.Bool("accept_ranges", acceptRange))

	p := tea.NewProgram(
		ui.InitialModel(filepath.Base(opts.Output), total, acceptRange),
		tea.WithInput(stdin),
		tea.WithOutput(stdout),
	)

	if err := transfer(ctx, p, client, opts, checksum, log); err != nil {
		log.Debug("download failed", zap.Error(err))
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// transfer runs the download, and telemetry when requested, alongside the
// progress UI. It returns once the UI has exited and the workers stopped.
func transfer(ctx context.Context, p *tea.Program, client *http.Client, opts *args.Options, checksum *downloader.ChecksumInfo, log *zap.Logger) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)
	stats := &downloader.Stats{}

	telemetryCtx, stopTelemetry := context.WithCancel(gctx)
	defer stopTelemetry()
	if opts.Telemetry != "" {
		g.Go(func() error {
			if err := downloader.StartTelemetry(telemetryCtx, stats, opts.Telemetry, time.Second); err != nil {
				log.Warn("telemetry disabled", zap.Error(err))
			}
			return nil
		})
	}

	g.Go(func() error {
		defer stopTelemetry()

		req := downloader.Request{URL: opts.URL, Output: opts.Output}
		written, err := downloader.Download(gctx, client, req, stats, downloader.Callbacks{
			OnProgress: func(n int64) { p.Send(ui.ProgressMsg{Bytes: n}) },
		}, log)
		if err == nil && checksum != nil {
			if err = downloader.VerifyFile(written, checksum); err != nil {
				if rmErr := os.Remove(written); rmErr != nil {
					log.Warn("could not remove unverified file", zap.String("output", written), zap.Error(rmErr))
				}
			}
		}
		if err != nil {
			p.Send(ui.ErrorMsg{Err: err})
			return err
		}

		var algo string
		if checksum != nil {
			algo = checksum.AlgoName
		}
		log.Info("download complete", zap.String("output", written), zap.Int64("bytes", stats.BytesWritten.Load()))
		p.Send(ui.DoneMsg{Checksum: algo})
		return nil
	})

	final, runErr := p.Run()
	// the UI may exit first when the user quits
	cancel()
	waitErr := g.Wait()

	if runErr != nil {
		return fmt.Errorf("progress UI failed - %w", runErr)
	}
	if m, ok := final.(ui.Model); ok {
		if m.Err() != nil {
			return m.Err()
		}
		if m.Aborted() {
			return errAborted
		}
	}
	if errors.Is(waitErr, context.Canceled) {
		return errAborted
	}
	return waitErr
}
