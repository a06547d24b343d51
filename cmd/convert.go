package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/karitora/sonodex/cache"
	"github.com/karitora/sonodex/file"
	"github.com/karitora/sonodex/model"
	"github.com/karitora/sonodex/sonolus"
)

func init() {
	rootCmd.AddCommand(convertCmd)
}

var convertCmd = &cobra.Command{
	Use:   "convert <dir> [maxNum]",
	Short: "Converts charts into the score cache",
	Long:  `Converts every level-data .json below a directory into the score cache.`,
	Args:  cobra.RangeArgs(1, 2),
	Run: func(cmd *cobra.Command, args []string) {
		var maxNum int
		if len(args) == 2 {
			arg1, err := strconv.Atoi(args[1])
			if err != nil {
				panic(err)
			}
			maxNum = arg1
		}

		Convert(args[0], maxNum)
	},
}

// Convert scans root for charts, converts each one and fills the cache.
// Charts that fail to convert are skipped with a diagnostic.
func Convert(root string, maxNum int) {
	cache.RecreateOutputDir()
	paths := cache.GatherAllChartPaths(root, maxNum)
	chartNumMap := file.CreateChartNumMap(paths)

	overview := make(cache.Overview)
	for num, path := range chartNumMap {
		fmt.Printf("Converting %v\n", path)
		score, err := sonolus.LoadFile(path)
		if err != nil {
			fmt.Printf("Skipping %v because: %v\n", path, err)
			continue
		}
		if err := cache.SaveScore(num, score); err != nil {
			fmt.Printf("Skipping %v because: %v\n", path, err)
			continue
		}
		overview[num] = model.Summarize(score)
	}

	if err := cache.SaveOverview(overview); err != nil {
		panic("Could not save overview: " + err.Error())
	}
	fmt.Printf("Converted %v of %v charts\n", len(overview), len(paths))
}
