package file

import (
	"github.com/karitora/sonodex/model"
)

func CreateChartNumMap(paths []string) model.ChartNumToPath {
	res := make(model.ChartNumToPath)
	for i, v := range paths {
		res[uint32(i)] = v
	}
	return res
}
