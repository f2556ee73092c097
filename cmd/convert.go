package cmd

import (
	"fmt"

	"github.com/encodeous/dvsim/state"
	"github.com/spf13/cobra"
)

var convertTo string

var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Converts a scenario between the line protocol and YAML",
	RunE: func(cmd *cobra.Command, args []string) error {
		sc, err := loadScenario(cmd)
		if err != nil {
			return err
		}
		switch convertTo {
		case "yaml":
			out, err := state.MarshalScenario(sc)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		case "lines":
			return state.WriteScenario(cmd.OutOrStdout(), sc)
		}
		return fmt.Errorf("unknown format %q, expected yaml or lines", convertTo)
	},
	GroupID: "cfg",
}

func init() {
	rootCmd.AddCommand(convertCmd)
	convertCmd.Flags().StringVarP(&convertTo, "to", "t", "yaml", "output format: yaml or lines")
}
