// Package cache persists converted scores as gob binaries under the
// output directory, alongside an overview of the whole converted set.
package cache

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/karitora/sonodex/constants"
	"github.com/karitora/sonodex/model"
)

type Overview = map[uint32]model.ScoreSummary

func RecreateOutputDir() {
	dir := constants.GetOutDir()
	os.RemoveAll(dir)
	os.MkdirAll(dir, 0777)
}

func GatherAllChartPaths(root string, maxNum int) []string {
	var res []string
	walk := func(s string, d fs.DirEntry, err error) error {
		if err != nil {
			panic("Error walking: " + err.Error())
		}
		if !d.IsDir() && strings.HasSuffix(s, ".json") {
			if maxNum == 0 || len(res) < maxNum {
				res = append(res, s)
			}
		}
		return nil
	}
	filepath.WalkDir(root, walk)
	return res
}

func ScorePath(num uint32) string {
	return filepath.Join(constants.GetOutDir(), fmt.Sprintf("%05d.score.dat", num))
}

func OverviewPath() string {
	return filepath.Join(constants.GetOutDir(), constants.OverviewFile)
}

func WriteBinary(filename string, data any) error {
	buf := new(bytes.Buffer)
	if err := gob.NewEncoder(buf).Encode(data); err != nil {
		return err
	}
	return os.WriteFile(filename, buf.Bytes(), 0666)
}

func SaveScore(num uint32, s *model.Score) error {
	return WriteBinary(ScorePath(num), s)
}

func LoadScore(path string) (*model.Score, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var s model.Score
	if err := gob.NewDecoder(f).Decode(&s); err != nil {
		return nil, err
	}
	return &s, nil
}

func SaveOverview(o Overview) error {
	return WriteBinary(OverviewPath(), o)
}

func LoadOverview() (Overview, error) {
	f, err := os.Open(OverviewPath())
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var o Overview
	if err := gob.NewDecoder(f).Decode(&o); err != nil {
		return nil, err
	}
	return o, nil
}
