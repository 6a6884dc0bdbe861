package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "solfege",
	Short: "Reads and plays solfège scores",
	Long: `Reads plain-text scores written with DO RE MI FA SOL LA SI (with # for
sharps and ' for each octave up), reports how often each note appears and
plays the score one note at a time.`,
}

func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}

func pathArg(args []string) string {
	if len(args) == 1 {
		return args[0]
	}
	return ""
}
