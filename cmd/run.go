package cmd

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/encodeous/dvsim/core"
	"github.com/encodeous/dvsim/state"
	"github.com/spf13/cobra"
)

var (
	showStats bool
	debugAddr string
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the simulation",
	Long: `Reads the node list, the initial links and the topology edits, then prints the distance
tables of every round and the routing tables to stdout. Logs go to stderr.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}
		logger, closeLog, err := core.NewLogger(cmd.ErrOrStderr(), level, logPath)
		if err != nil {
			return err
		}
		defer closeLog()

		sc, err := loadScenario(cmd)
		if err != nil {
			return err
		}

		if debugAddr != "" {
			go func() {
				logger.Warn("debug server stopped", "error", http.ListenAndServe(debugAddr, nil))
			}()
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		res, err := core.Start(ctx, sc, cmd.OutOrStdout(), logger, state.MaxRounds)
		if err != nil {
			return err
		}
		if showStats {
			fmt.Fprintf(cmd.ErrOrStderr(), "rounds: initial=%d post-change=%d, final t=%d, advertisements=%d, cells changed=%d, bounded=%v\n",
				res.Rounds[core.PhaseInitial], res.Rounds[core.PhasePostChange], res.FinalRound,
				res.Advertisements, res.CellsChanged, res.Bounded)
		}
		return nil
	},
	GroupID: "sim",
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().IntVar(&state.MaxRounds, "max-rounds", state.MaxRounds, "stop a convergence phase after this many rounds, 0 for no limit")
	runCmd.Flags().BoolVar(&showStats, "stats", false, "print a run summary to stderr")
	runCmd.Flags().StringVar(&debugAddr, "debug-addr", "", "serve expvar metrics on this address, e.g. 127.0.0.1:6060")
}
