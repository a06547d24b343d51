package constants

import "os"

func GetOutDir() string {
	path := os.Getenv("SONODEX_OUT")
	if path != "" {
		return path
	}
	return "./out"
}

// Tick scale shared with the editor. One beat is 480 ticks.
const TicksPerBeat = 480

const (
	MinNoteWidth = 1
	MaxNoteWidth = 12
	MinLane      = 0
	MaxLane      = 11
	NumLanes     = 12
)

// BPM assumed when a chart declares no tempo at all
const DefaultBPM = 120

const OverviewFile = "overview.dat"
