package telemetry

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"github.com/pthm-cable/podium/config"
	"github.com/pthm-cable/podium/ranking"
)

// OutputManager writes session and claim CSV logs to a directory.
// A nil *OutputManager discards everything, so callers need not check.
type OutputManager struct {
	dir         string
	sessionFile *os.File
	claimFile   *os.File

	// Track if headers have been written
	sessionHeaderWritten bool
	claimHeaderWritten   bool
}

// NewOutputManager creates a new output manager and initializes the output directory.
// Returns nil if dir is empty (output disabled).
func NewOutputManager(dir string) (*OutputManager, error) {
	if dir == "" {
		return nil, nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	om := &OutputManager{dir: dir}

	f, err := os.Create(filepath.Join(dir, "sessions.csv"))
	if err != nil {
		return nil, fmt.Errorf("creating sessions.csv: %w", err)
	}
	om.sessionFile = f

	f, err = os.Create(filepath.Join(dir, "claims.csv"))
	if err != nil {
		om.sessionFile.Close()
		return nil, fmt.Errorf("creating claims.csv: %w", err)
	}
	om.claimFile = f

	return om, nil
}

// WriteConfig saves the effective configuration as YAML.
func (om *OutputManager) WriteConfig(cfg *config.Config) error {
	if om == nil {
		return nil
	}
	return cfg.WriteYAML(filepath.Join(om.dir, "config.yaml"))
}

// WriteSession appends a session record to sessions.csv.
func (om *OutputManager) WriteSession(rec SessionRecord) error {
	if om == nil {
		return nil
	}
	if err := writeRecords(om.sessionFile, []SessionRecord{rec}, &om.sessionHeaderWritten); err != nil {
		return fmt.Errorf("writing session: %w", err)
	}
	return nil
}

// WriteClaim appends a claim to claims.csv.
func (om *OutputManager) WriteClaim(c ranking.Claim) error {
	if om == nil {
		return nil
	}
	if err := writeRecords(om.claimFile, []ranking.Claim{c}, &om.claimHeaderWritten); err != nil {
		return fmt.Errorf("writing claim: %w", err)
	}
	return nil
}

// WriteRoster saves the final standings as roster.csv, loadable with -roster.
func (om *OutputManager) WriteRoster(entries []ranking.Entry) error {
	if om == nil {
		return nil
	}
	return om.writeFile("roster.csv", func(w io.Writer) error {
		return ranking.WriteRoster(w, entries)
	})
}

// WriteHistory saves the claim history, newest first, as history.csv.
func (om *OutputManager) WriteHistory(claims []ranking.Claim) error {
	if om == nil {
		return nil
	}
	return om.writeFile("history.csv", func(w io.Writer) error {
		return ranking.WriteHistory(w, claims)
	})
}

// writeFile creates name in the output directory and fills it with write.
// A failed close is reported when write itself succeeded.
func (om *OutputManager) writeFile(name string, write func(io.Writer) error) (err error) {
	f, err := os.Create(filepath.Join(om.dir, name))
	if err != nil {
		return fmt.Errorf("creating %s: %w", name, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing %s: %w", name, cerr)
		}
	}()
	return write(f)
}

// writeRecords marshals records, including the header on the first write only.
func writeRecords[T any](f *os.File, records []T, headerWritten *bool) error {
	if !*headerWritten {
		if err := gocsv.Marshal(records, f); err != nil {
			return err
		}
		*headerWritten = true
		return nil
	}
	return gocsv.MarshalWithoutHeaders(records, f)
}

// Dir returns the output directory path.
func (om *OutputManager) Dir() string {
	if om == nil {
		return ""
	}
	return om.dir
}

// Close flushes and closes all output files.
func (om *OutputManager) Close() error {
	if om == nil {
		return nil
	}

	var firstErr error
	for _, f := range []*os.File{om.sessionFile, om.claimFile} {
		if f == nil {
			continue
		}
		if err := f.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
