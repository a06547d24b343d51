package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/karitora/sonodex/cache"
	"github.com/karitora/sonodex/model"
)

func init() {
	rootCmd.AddCommand(inspectCmd)
}

var inspectCmd = &cobra.Command{
	Use:   "inspect <score.dat>",
	Short: "Inspects a cached score",
	Long:  `Inspects a cached score`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) != 1 {
			panic("Need 1 arg...")
		}
		inspect(args[0])
	},
}

func inspect(path string) {
	score, err := cache.LoadScore(path)
	if err != nil {
		panic("Could not load score: " + err.Error())
	}
	sum := model.Summarize(score)

	fmt.Printf("music offset: %vms\n", score.Metadata.MusicOffsetMs)
	fmt.Printf("notes: %v\n", sum.Notes)
	fmt.Printf("hold notes: %v\n", sum.HoldNotes)
	fmt.Printf("tempo changes: %v\n", sum.TempoChanges)
	fmt.Printf("hi-speed changes: %v\n", sum.HiSpeedChanges)
	fmt.Printf("layers: %v\n", sum.Layers)
	fmt.Printf("last tick: %v\n", sum.LastTick)

	for _, tempo := range score.TempoChanges {
		fmt.Printf("tempo: tick %v -> %v bpm\n", tempo.Tick, tempo.BPM)
	}
}
