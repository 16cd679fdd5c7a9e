// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// DefaultModel is the captioning model used when OPENAI_MODEL is unset.
const DefaultModel = "gpt-5"

// CaptionConfig holds settings for the image captioning backend.
type CaptionConfig struct {
	// Enabled controls whether embedded images are described at all.
	// Cleared by --skip-images, or at startup when no credential is present.
	Enabled bool `json:"enabled" yaml:"enabled"`

	// APIKey is the captioning API credential, read from OPENAI_API_KEY.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// Model is the vision model identifier, read from OPENAI_MODEL.
	Model string `json:"model" yaml:"model"`
}

// Config holds the settings for one conversion run. It is assembled once
// from CLI flags and environment at startup and never mutated afterwards.
type Config struct {
	// Root is the absolute path of the directory tree to search.
	Root string `json:"root" yaml:"root"`

	// Extensions lists the file suffixes to convert, each with a leading dot.
	Extensions []string `json:"extensions" yaml:"extensions"`

	// Caption configures the image description backend.
	Caption CaptionConfig `json:"caption" yaml:"caption"`

	// LogFile is the append-mode log file path.
	LogFile string `json:"log_file" yaml:"log_file"`

	// ReportPath is where the YAML run report is written. Empty selects
	// conversion-report.yaml inside Root.
	ReportPath string `json:"report_path,omitempty" yaml:"report_path,omitempty"`

	// HistoryDB is the SQLite run ledger path. Empty selects
	// ~/.officemd/history.db.
	HistoryDB string `json:"history_db,omitempty" yaml:"history_db,omitempty"`

	// NoHistory disables the run ledger entirely.
	NoHistory bool `json:"no_history,omitempty" yaml:"no_history,omitempty"`
}
