package cli

import (
	"encoding/json"
	"fmt"
	"os"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		errData := map[string]any{
			"error": map[string]string{
				"message": err.Error(),
			},
		}
		data, _ := json.Marshal(errData)
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case HealthResult:
		o.printHealthResult(v)
	case RankingsResult:
		o.printRankingsResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// HealthResult response type (matches API)
type HealthResult struct {
	Status string `json:"status"`
	Rooms  int    `json:"rooms"`
}

// RankingEntry response type
type RankingEntry struct {
	Rank     int    `json:"rank"`
	Nickname string `json:"nickname"`
	Score    int    `json:"score"`
}

// RankingsResult response type
type RankingsResult struct {
	GameType string         `json:"gameType"`
	Entries  []RankingEntry `json:"entries"`
}

func (o *Output) printHealthResult(h HealthResult) {
	fmt.Printf("Status: %s\n", h.Status)
	fmt.Printf("Rooms: %d\n", h.Rooms)
}

func (o *Output) printRankingsResult(r RankingsResult) {
	fmt.Printf("Rankings: %s\n", r.GameType)
	if len(r.Entries) == 0 {
		fmt.Println("  (no scores recorded)")
		return
	}
	for _, e := range r.Entries {
		fmt.Printf("  %2d. %s - %d\n", e.Rank, e.Nickname, e.Score)
	}
}
