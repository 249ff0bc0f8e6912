package project

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/piwi3910/BoxPack/internal/model"
)

// SessionFile is a saved packing job: the input and, once packed, its result.
type SessionFile struct {
	Version   string             `json:"version"`
	SavedAt   string             `json:"saved_at"`
	Name      string             `json:"name"`
	Container model.Dimensions   `json:"container"`
	Settings  model.PackSettings `json:"settings"`
	Items     []model.Item       `json:"items"`
	Result    *model.PackResult  `json:"result,omitempty"`
}

// NewSessionFile bundles a packing job for saving.
func NewSessionFile(name string, items []model.Item, result model.PackResult) SessionFile {
	return SessionFile{
		Version:   BackupVersion,
		Name:      name,
		Container: result.Container,
		Settings:  result.Settings,
		Items:     items,
		Result:    &result,
	}
}

// SaveResult writes a session file as JSON, stamping the save time.
func SaveResult(path string, sf SessionFile) error {
	if sf.Version == "" {
		sf.Version = BackupVersion
	}
	sf.SavedAt = time.Now().UTC().Format(time.RFC3339)
	if err := writeJSON(path, sf); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

// LoadResult reads a session file written by SaveResult.
func LoadResult(path string) (SessionFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return SessionFile{}, fmt.Errorf("failed to read session file: %w", err)
	}
	var sf SessionFile
	if err := json.Unmarshal(data, &sf); err != nil {
		return SessionFile{}, fmt.Errorf("failed to parse session file: %w", err)
	}
	if sf.Version == "" {
		return SessionFile{}, fmt.Errorf("invalid session file: missing version field")
	}
	return sf, nil
}
