package adapter

import (
	"encoding/json"
	"fmt"
	"os"

	m "github.com/pegstep/pegstep/internal/model"
)

// TraceStore persists and retrieves recorded traces. A trace is
// immutable once recorded, so an exported file replays exactly like the
// session it came from.
type TraceStore interface {
	Save(path m.Path, trace *m.Trace) error
	Load(path m.Path) (*m.Trace, error)
}

type traceStore struct{}

// NewTraceStore constructs a TraceStore backed by JSON files.
func NewTraceStore() TraceStore {
	return &traceStore{}
}

func (ts *traceStore) Save(path m.Path, trace *m.Trace) error {
	if trace == nil {
		return fmt.Errorf("no trace to save")
	}

	data, err := json.MarshalIndent(trace, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding trace: %w", err)
	}

	if err := os.WriteFile(string(path), data, 0o644); err != nil {
		return fmt.Errorf("writing trace: %w", err)
	}

	return nil
}

func (ts *traceStore) Load(path m.Path) (*m.Trace, error) {
	data, err := os.ReadFile(string(path))
	if err != nil {
		return nil, fmt.Errorf("reading trace: %w", err)
	}

	var trace m.Trace
	if err := json.Unmarshal(data, &trace); err != nil {
		return nil, fmt.Errorf("decoding trace: %w", err)
	}

	// Replay relies on the trailing finished event to know where the
	// trace ends; an edited or truncated file must not get that far.
	if _, ok := trace.Final(); !ok {
		return nil, fmt.Errorf("invalid trace: no trailing finished event")
	}

	return &trace, nil
}
