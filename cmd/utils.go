package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/encodeous/dvsim/state"
	"github.com/spf13/cobra"
)

// loadScenario reads the scenario named by the persistent flags: a YAML file with --config,
// otherwise the line protocol from --input or stdin. The result is validated.
func loadScenario(cmd *cobra.Command) (*state.Scenario, error) {
	var sc *state.Scenario
	if configPath != "" {
		file, err := os.ReadFile(configPath)
		if err != nil {
			return nil, err
		}
		sc, err = state.UnmarshalScenario(file)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", configPath, err)
		}
	} else {
		var in io.Reader = cmd.InOrStdin()
		if inputPath != "" {
			f, err := os.Open(inputPath)
			if err != nil {
				return nil, err
			}
			defer f.Close()
			in = f
		}
		var err error
		sc, err = state.ParseScenario(in)
		if err != nil {
			return nil, err
		}
	}
	if err := state.ScenarioValidator(sc); err != nil {
		return nil, err
	}
	return sc, nil
}
