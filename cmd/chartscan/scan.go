package main

import (
	"bytes"
	"context"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/charlievieth/fastwalk"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/chartkit/chartscan/pkg/chartscan/logging"
	"github.com/chartkit/chartscan/pkg/chartscan/output"
	"github.com/chartkit/chartscan/pkg/chartscan/scanner"
	"github.com/chartkit/chartscan/pkg/chartscan/storage"
	"github.com/chartkit/chartscan/pkg/chartscan/types"
)

// runScan is the root command: classify the storage medium, start the
// scan and drain the result handle until completion.
func runScan(cmd *cobra.Command, args []string) error {
	root := "."
	if len(args) > 0 {
		root = args[0]
	}

	if err := initLogging(); err != nil {
		printError("%v", err)
		return err
	}
	defer func() { _ = logging.Close() }()

	class := resolveStorage(root)

	// Ctrl-C cancels the scan; the handle still completes its
	// protocol so the drain loop below exits cleanly.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var expected int64
	if viper.GetBool("estimate") {
		expected = estimateTargets(root)
	}

	start := time.Now()
	s := scanner.New(scanner.Options{
		Root:    root,
		Storage: class,
		Workers: viper.GetInt("workers"),
	})
	handle, err := s.Start(ctx)
	if err != nil {
		printError("starting scan: %v", err)
		return err
	}

	result := &output.Result{
		Root:    root,
		Storage: class.String(),
	}

	drain := func() {
		for {
			rec, ok := handle.Pop()
			if !ok {
				break
			}
			result.Records = append(result.Records, output.NewRecord(&rec))
		}
		if expected > 0 && !getQuiet() {
			n := len(result.Records)
			fmt.Fprintf(os.Stderr, "\rdiscovered %d/%d (%.0f%%)", n, expected,
				float64(n)/float64(expected)*100)
		}
	}

	// Consumer protocol: wake, drain to empty, check the completion
	// flag, and make one final drain after the flag is observed.
	for {
		<-handle.Wake()
		drain()
		if handle.Done() {
			drain()
			break
		}
	}
	if expected > 0 && !getQuiet() {
		fmt.Fprintln(os.Stderr)
	}

	result.Duration = time.Since(start)
	result.DirsListed = handle.Stats().DirsListed
	result.Skipped = handle.Errs()
	result.Cancelled = ctx.Err() != nil

	return render(result)
}

// render formats the result with the configured formatter and prints it.
func render(result *output.Result) error {
	formatter, err := output.Get(viper.GetString("output"))
	if err != nil {
		printError("%v", err)
		return err
	}
	var buf bytes.Buffer
	if err := formatter.Format(&buf, result); err != nil {
		printError("formatting output: %v", err)
		return err
	}
	fmt.Print(buf.String())
	return nil
}

// resolveStorage honors the --storage override, otherwise probes the
// mount table.
func resolveStorage(root string) types.StorageClass {
	switch viper.GetString("storage") {
	case "ssd":
		return types.SolidState
	case "hdd":
		return types.Rotational
	default:
		return storage.Classify(root)
	}
}

// estimateTargets quickly counts matching files so the drain loop can
// report percentage progress. Best effort: walk errors just lower the
// count.
func estimateTargets(root string) int64 {
	conf := fastwalk.Config{Follow: false}
	var count atomic.Int64
	_ = fastwalk.Walk(&conf, root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !d.IsDir() && d.Type().IsRegular() && types.MatchesTarget(path) {
			count.Add(1)
		}
		return nil
	})
	return count.Load()
}

// initLogging wires the logging config from viper.
func initLogging() error {
	cfg := logging.Config{
		Level:      viper.GetString("logging.level"),
		Path:       viper.GetString("logging.path"),
		Components: viper.GetStringMapString("logging.components"),
	}
	if viper.GetBool("verbose") {
		cfg.Level = "debug"
		cfg.ConsoleLevel = "debug"
	}
	return logging.Init(cfg)
}
