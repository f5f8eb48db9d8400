// Command filterbench times the filtervec kernels against each other on
// generated input and reports the CPU features the dispatcher probed.
package main

import (
	"os"

	"github.com/alecthomas/kingpin/v2"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

func main() {
	app := kingpin.New("filterbench", "Benchmark the filtervec range selection kernels.")
	logLevel := app.Flag("log.level", "Only log messages with the given severity or above (debug, info, warn, error).").Default("info").String()

	logger := log.NewNopLogger()
	app.PreAction(func(*kingpin.ParseContext) error {
		logger = newLogger(*logLevel)
		return nil
	})
	getLogger := func() log.Logger { return logger }

	addInfoCommand(app)
	addRunCommand(app, getLogger)

	kingpin.MustParse(app.Parse(os.Args[1:]))
}

func newLogger(lvl string) log.Logger {
	logger := log.NewLogfmtLogger(log.NewSyncWriter(os.Stderr))
	logger = level.NewFilter(logger, level.Allow(level.ParseDefault(lvl, level.InfoValue())))
	return log.With(logger, "ts", log.DefaultTimestampUTC, "caller", log.DefaultCaller)
}

