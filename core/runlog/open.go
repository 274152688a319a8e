package runlog

import "fmt"

// Options selects and configures a Store backend.
type Options struct {
	// Backend is "jsonl", "sqlite" or "none".
	Backend string `json:"backend"`
	// Path is the file location of the store.
	Path string `json:"path"`
	// MaxSizeMB enables rotation of the jsonl backend when positive.
	MaxSizeMB int `json:"max_size_mb"`
	// MaxBackups limits the number of rotated files to keep.
	MaxBackups int `json:"max_backups"`
	// MaxAgeDays removes rotated files older than this number of days.
	MaxAgeDays int `json:"max_age_days"`
}

// SetDefaults applies the jsonl backend writing to runs.jsonl.
func (o *Options) SetDefaults() {
	if o.Backend == "" {
		o.Backend = "jsonl"
	}
	if o.Path == "" && o.Backend != "none" {
		if o.Backend == "sqlite" {
			o.Path = "runs.db"
		} else {
			o.Path = "runs.jsonl"
		}
	}
}

// Validate checks mandatory fields.
func (o Options) Validate() error {
	switch o.Backend {
	case "jsonl", "sqlite":
	case "none":
		return nil
	default:
		return fmt.Errorf("unknown run log backend %q", o.Backend)
	}
	if o.Path == "" {
		return fmt.Errorf("run log path is required")
	}
	if o.MaxSizeMB < 0 || o.MaxBackups < 0 || o.MaxAgeDays < 0 {
		return fmt.Errorf("run log rotation settings must not be negative")
	}
	return nil
}

// Open creates the Store described by o after applying defaults.
func Open(o Options) (Store, error) {
	o.SetDefaults()
	if err := o.Validate(); err != nil {
		return nil, err
	}
	switch o.Backend {
	case "sqlite":
		return NewSQLiteStore(o.Path)
	case "none":
		return NopStore{}, nil
	}
	if o.MaxSizeMB > 0 {
		return NewRotatingJSONLStore(o.Path, o.MaxSizeMB, o.MaxBackups, o.MaxAgeDays)
	}
	return NewJSONLStore(o.Path)
}
