package scrape

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/pterm/pterm"
)

// ProgressEmitter reports scrape progress to the terminal or to a machine reader
type ProgressEmitter interface {
	// EmitStage announces a source starting
	EmitStage(stage string, message string)

	// EmitProgress reports how many postings a source saved
	EmitProgress(count int, metadata map[string]interface{})

	// EmitComplete reports the run totals
	EmitComplete(summary map[string]interface{})

	// EmitError reports a source that failed; the run goes on
	EmitError(stage string, err error)

	EmitInfo(message string)
}

// ProgressEvent is one line of JSON progress output
type ProgressEvent struct {
	Type      string                 `json:"type"` // stage, progress, complete, error, info
	Timestamp time.Time              `json:"timestamp"`
	Data      map[string]interface{} `json:"data"`
}

// CLIEmitter prints progress with pterm
type CLIEmitter struct {
	verbosity int
}

// NewCLIEmitter creates a terminal emitter
func NewCLIEmitter(verbosity int) *CLIEmitter {
	return &CLIEmitter{verbosity: verbosity}
}

func (e *CLIEmitter) EmitStage(stage string, message string) {
	pterm.Printf("⨳ %s: %s\n", pterm.LightCyan(stage), message)
}

func (e *CLIEmitter) EmitProgress(count int, metadata map[string]interface{}) {
	source, _ := metadata["source"].(string)
	if source == "" {
		source = "source"
	}
	line := fmt.Sprintf("%s: saved %s postings", source, pterm.Green(fmt.Sprintf("%d", count)))
	if invalid, ok := metadata["invalid"].(int); ok && invalid > 0 {
		line += fmt.Sprintf(", %s invalid", pterm.Yellow(fmt.Sprintf("%d", invalid)))
	}
	if failed, ok := metadata["failed"].(int); ok && failed > 0 {
		line += fmt.Sprintf(", %s failed", pterm.Red(fmt.Sprintf("%d", failed)))
	}
	pterm.Println("  " + line)
}

func (e *CLIEmitter) EmitComplete(summary map[string]interface{}) {
	pterm.Success.Printf("Scrape complete: %v postings saved\n", summary["saved"])
	if e.verbosity >= 1 {
		keys := make([]string, 0, len(summary))
		for k := range summary {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			pterm.Printf("  %s: %v\n", k, summary[k])
		}
	}
}

func (e *CLIEmitter) EmitError(stage string, err error) {
	pterm.Error.Printf("%s failed: %v\n", stage, err)
}

func (e *CLIEmitter) EmitInfo(message string) {
	if e.verbosity >= 1 {
		pterm.Info.Println(message)
	}
}

// JSONEmitter writes one ProgressEvent per line
type JSONEmitter struct {
	encoder *json.Encoder
	now     func() time.Time
}

// NewJSONEmitter creates an emitter writing to w
func NewJSONEmitter(w io.Writer) *JSONEmitter {
	return &JSONEmitter{encoder: json.NewEncoder(w), now: time.Now}
}

func (e *JSONEmitter) emit(kind string, data map[string]interface{}) {
	_ = e.encoder.Encode(ProgressEvent{Type: kind, Timestamp: e.now().UTC(), Data: data})
}

func (e *JSONEmitter) EmitStage(stage string, message string) {
	e.emit("stage", map[string]interface{}{"stage": stage, "message": message})
}

func (e *JSONEmitter) EmitProgress(count int, metadata map[string]interface{}) {
	data := map[string]interface{}{"count": count}
	for k, v := range metadata {
		data[k] = v
	}
	e.emit("progress", data)
}

func (e *JSONEmitter) EmitComplete(summary map[string]interface{}) {
	e.emit("complete", summary)
}

func (e *JSONEmitter) EmitError(stage string, err error) {
	e.emit("error", map[string]interface{}{"stage": stage, "error": err.Error()})
}

func (e *JSONEmitter) EmitInfo(message string) {
	e.emit("info", map[string]interface{}{"message": message})
}

// nopEmitter discards progress
type nopEmitter struct{}

func (nopEmitter) EmitStage(string, string)                 {}
func (nopEmitter) EmitProgress(int, map[string]interface{}) {}
func (nopEmitter) EmitComplete(map[string]interface{})      {}
func (nopEmitter) EmitError(string, error)                  {}
func (nopEmitter) EmitInfo(string)                          {}
