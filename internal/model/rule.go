package model

// Path represents a file system path.
type Path string

// RuleInfo describes one grammar rule for presentation purposes.
// Silent rules match normally but are invisible to the recorder, so
// breakpoints on them never fire.
type RuleInfo struct {
	Name   RuleName `json:"name"`
	Silent bool     `json:"silent"`
}
