package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/karitora/sonodex/midi"
	"github.com/karitora/sonodex/sonolus"
)

func init() {
	rootCmd.AddCommand(exportCmd)
}

var exportCmd = &cobra.Command{
	Use:   "export <chart.json> <out.mid>",
	Short: "Exports a chart as MIDI",
	Long:  `Converts a chart and writes its notes as a Standard MIDI File for auditioning.`,
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		export(args[0], args[1])
	},
}

func export(chartPath, outPath string) {
	score, err := sonolus.LoadFile(chartPath)
	if err != nil {
		panic("Could not convert chart: " + err.Error())
	}
	if err := midi.WriteFile(score, outPath); err != nil {
		panic("Could not write midi file: " + err.Error())
	}
	fmt.Printf("Wrote %v\n", outPath)
}
