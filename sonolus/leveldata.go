// Package sonolus converts Sonolus level-data documents into editor scores.
package sonolus

import (
	"encoding/json"
	"errors"
	"os"

	pkgerrors "github.com/pkg/errors"

	"github.com/karitora/sonodex/model"
)

var (
	// ErrStructural covers document-level shape failures: missing
	// bgmOffset, entities not an array, missing required data fields.
	ErrStructural = errors.New("structural assertion failed")

	// ErrInvalidEase is returned for an ease value outside {-1, 0, +1}
	ErrInvalidEase = errors.New("invalid ease value")

	// ErrDegenerateSegment is returned when an attached tick lies on a
	// curve segment with zero tick span
	ErrDegenerateSegment = errors.New("degenerate curve segment")

	// ErrMalformedSlide covers slide-stream violations: an end or tick
	// with no open slide, an unresolvable head reference, or an
	// undetermined ease that survives reconciliation
	ErrMalformedSlide = errors.New("malformed slide")
)

type LevelData struct {
	BgmOffset *float64 `json:"bgmOffset"`
	Entities  []Entity `json:"entities"`
}

type Entity struct {
	Name      string     `json:"name"`
	Archetype string     `json:"archetype"`
	Data      []DataItem `json:"data"`
}

// DataItem carries either a literal value or a symbolic ref to another
// entity's name, never both.
type DataItem struct {
	Name  string   `json:"name"`
	Value *float64 `json:"value,omitempty"`
	Ref   *string  `json:"ref,omitempty"`
}

// Parse decodes a level-data document and converts it into a Score.
func Parse(data []byte) (*model.Score, error) {
	var doc LevelData
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, pkgerrors.Wrap(ErrStructural, err.Error())
	}
	return Convert(&doc)
}

// LoadFile reads and converts a level-data .json file.
func LoadFile(path string) (*model.Score, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}
