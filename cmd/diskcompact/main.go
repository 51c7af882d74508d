package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dargueta/diskcompact/compact"
	"github.com/dargueta/diskcompact/diskmap"
	"github.com/dargueta/diskcompact/layout"
	"github.com/dargueta/diskcompact/report"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

const (
	exitUsage        = 1
	exitIOFailed     = 2
	exitVerifyFailed = 3
)

func main() {
	app := newApp(os.Stdout, os.Stderr)

	err := app.Run(os.Args)
	if err == nil {
		return
	}

	var exitErr cli.ExitCoder
	if errors.As(err, &exitErr) {
		fmt.Fprintln(os.Stderr, exitErr.Error())
		os.Exit(exitErr.ExitCode())
	}
	logrus.Fatalf("fatal error: %s", err.Error())
}

func newApp(stdout, stderr io.Writer) *cli.App {
	return &cli.App{
		Name:      "diskcompact",
		Usage:     "Compact a dense disk map two ways and print the checksums",
		ArgsUsage: "FILE",
		Writer:    stdout,
		ErrWriter: stderr,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "log debugging information to stderr",
			},
			&cli.StringFlag{
				Name:      "runs-csv",
				Usage:     "write every emitted run of both simulations to `PATH` as CSV",
				TakesFile: true,
			},
			&cli.BoolFlag{
				Name:  "layout",
				Usage: "draw the compacted disks on stderr",
			},
			&cli.BoolFlag{
				Name:  "verify",
				Usage: "rebuild both compacted disks block by block and check the checksums",
			},
		},
		Action: compactDiskMap,
		// main() decides how to exit so newApp can be run from tests.
		ExitErrHandler: func(*cli.Context, error) {},
	}
}

func newLogger(out io.Writer, verbose bool) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(out)
	logger.SetLevel(logrus.WarnLevel)
	if verbose {
		logger.SetLevel(logrus.DebugLevel)
	}
	return logger
}

func compactDiskMap(context *cli.Context) error {
	if context.NArg() != 1 {
		return cli.Exit(fmt.Sprintf("Usage: %s <file_path>", context.App.Name), exitUsage)
	}
	logger := newLogger(context.App.ErrWriter, context.Bool("verbose"))

	path := context.Args().First()
	dm, err := diskmap.ReadFile(path)
	if err != nil {
		return cli.Exit(fmt.Sprintf("failed to load disk map `%s`: %s", path, err), exitIOFailed)
	}
	logger.WithFields(logrus.Fields{
		"path":            path,
		"digits":          dm.Len(),
		"files":           dm.FileCount(),
		"occupied_blocks": dm.OccupiedBlocks(),
		"total_blocks":    dm.TotalBlocks(),
	}).Debug("parsed disk map")

	start := time.Now()
	fragmented := compact.Fragmenting(dm)
	elapsed := time.Since(start)
	logger.WithFields(logrus.Fields{
		"elapsed": elapsed,
		"runs":    len(fragmented.Runs),
	}).Debug("fragmenting simulation finished")
	if err = report.WriteFragmenting(context.App.Writer, fragmented.Checksum, elapsed); err != nil {
		return err
	}

	start = time.Now()
	moved := compact.WholeFile(dm)
	elapsed = time.Since(start)
	logger.WithFields(logrus.Fields{
		"elapsed":        elapsed,
		"runs":           len(moved.Runs),
		"skipped_blocks": moved.SkippedBlocks,
	}).Debug("whole-file simulation finished")
	if err = report.WriteWholeFile(context.App.Writer, moved.Checksum, elapsed); err != nil {
		return err
	}

	results := []namedResult{
		{"fragmenting", fragmented},
		{"whole-file", moved},
	}

	if csvPath := context.String("runs-csv"); csvPath != "" {
		if err = writeRunsCSV(csvPath, results); err != nil {
			return cli.Exit(fmt.Sprintf("failed to write runs to `%s`: %s", csvPath, err), exitIOFailed)
		}
		logger.WithField("path", csvPath).Debug("wrote runs CSV")
	}

	if context.Bool("layout") {
		for _, named := range results {
			disk, err := layout.FromResult(dm.TotalBlocks(), named.result)
			if err != nil {
				return cli.Exit(fmt.Sprintf("%s: %s", named.strategy, err), exitVerifyFailed)
			}
			fmt.Fprintf(context.App.ErrWriter, "%s: %s\n", named.strategy, disk.Render())
		}
	}

	if context.Bool("verify") {
		for _, named := range results {
			if err = layout.Verify(dm.TotalBlocks(), named.result); err != nil {
				return cli.Exit(
					fmt.Sprintf("%s simulation failed verification: %s", named.strategy, err),
					exitVerifyFailed)
			}
			logger.WithField("strategy", named.strategy).Debug("verified")
		}
	}
	return nil
}

type namedResult struct {
	strategy string
	result   compact.Result
}

func writeRunsCSV(path string, results []namedResult) error {
	var records []report.RunRecord
	for _, named := range results {
		records = append(records, report.RunRecords(named.strategy, named.result)...)
	}

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return report.WriteRunsCSV(file, records)
}
