package cmd

import (
	"encoding/json"

	"github.com/jsphweid/solfege/file"
	"github.com/jsphweid/solfege/lexer"
	"github.com/jsphweid/solfege/model"
	"github.com/jsphweid/solfege/report"
	"github.com/spf13/cobra"
)

var analyzeJSON bool

func init() {
	analyzeCmd.Flags().BoolVar(&analyzeJSON, "json", false, "print the analysis as JSON")
	rootCmd.AddCommand(analyzeCmd)
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze [file]",
	Short: "Prints the note report of a score",
	Long:  `Prints the note report of a score. Without a file the bundled example is used.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		text, source, err := file.Load(pathArg(args))
		if err != nil {
			return err
		}
		res := lexer.Analyze(text)
		if analyzeJSON {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(model.NewAnalyzeResponse(res, source))
		}
		return report.Write(cmd.OutOrStdout(), res, source)
	},
}
