package cmd

import (
	"fmt"
	"os"

	"github.com/jsphweid/solfege/chart"
	"github.com/jsphweid/solfege/file"
	"github.com/jsphweid/solfege/lexer"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var chartOutput string

func init() {
	chartCmd.Flags().StringVarP(&chartOutput, "output", "o", "chart.png", "where to write the PNG")
	rootCmd.AddCommand(chartCmd)
}

var chartCmd = &cobra.Command{
	Use:   "chart [file]",
	Short: "Draws a bar chart of note counts",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		text, _, err := file.Load(pathArg(args))
		if err != nil {
			return err
		}

		f, err := os.Create(chartOutput)
		if err != nil {
			return errors.Wrapf(err, "could not create %v", chartOutput)
		}
		defer f.Close()

		if err := chart.Render(lexer.Analyze(text), f); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %v\n", chartOutput)
		return nil
	},
}
