package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "sonodex",
	Short: "Sonolus chart converter",
	Long:  `Converts Sonolus level-data charts into editor scores.`,
}

func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}
