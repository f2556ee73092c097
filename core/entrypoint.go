package core

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path"

	"github.com/encodeous/dvsim/state"
	"github.com/encodeous/tint"
	slogmulti "github.com/samber/slog-multi"
)

// NewLogger builds the process logger: a colourised stderr handler, plus a plain text file
// handler when logPath is set. The returned closer releases the log file.
func NewLogger(stderr io.Writer, logLevel slog.Level, logPath string) (*slog.Logger, func() error, error) {
	handlers := make([]slog.Handler, 0)
	handlers = append(handlers,
		tint.NewHandler(stderr, &tint.Options{
			Level:        logLevel,
			AddSource:    false,
			CustomPrefix: state.LogPrefix,
			ReplaceAttr: func(groups []string, attr slog.Attr) slog.Attr {
				if attr.Key == "time" {
					return slog.Attr{}
				}
				return attr
			},
		}))

	closer := func() error { return nil }
	if logPath != "" {
		err := os.MkdirAll(path.Dir(logPath), 0700)
		if err != nil {
			return nil, nil, err
		}
		f, err := os.OpenFile(logPath, os.O_WRONLY|os.O_APPEND|os.O_CREATE, 0600)
		if err != nil {
			return nil, nil, err
		}
		handlers = append(handlers, slog.NewTextHandler(f, &slog.HandlerOptions{Level: logLevel}))
		closer = f.Close
	}

	logger := slog.New(
		slogmulti.Fanout(handlers...))
	return logger, closer, nil
}

// Start runs a scenario to completion, writing tables to out.
func Start(ctx context.Context, sc *state.Scenario, out io.Writer, logger *slog.Logger, maxRounds int) (Result, error) {
	logger.Info("init simulator", "routers", len(sc.Nodes), "links", len(sc.Links), "updates", len(sc.Updates))
	s, err := NewSimulator(sc, Options{
		Out:       out,
		Log:       logger,
		MaxRounds: maxRounds,
	})
	if err != nil {
		return Result{}, err
	}
	res, err := s.Run(ctx)
	if err != nil {
		logger.Error("simulation stopped", "error", err, "t", s.Round())
		return res, err
	}
	logger.Info("simulation complete", "t", res.FinalRound, "advertisements", res.Advertisements, "topology_changed", res.TopologyChanged)
	return res, nil
}
