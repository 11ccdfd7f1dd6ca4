package sim

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// Extension is the file extension of stored ground truth.
const Extension = ".moments"

// Path returns path of the ground truth file named name in dir.
func Path(dir, name string) string {
	return filepath.Join(dir, name+Extension)
}

// Save writes moments to path as JSON and verifies they read back unchanged.
// It returns error if the file can not be written or the verification fails.
func Save(path string, moments []RobotMoment) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	if err := json.NewEncoder(f).Encode(moments); err != nil {
		f.Close()
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}

	if err := f.Close(); err != nil {
		return err
	}

	saved, err := Load(path)
	if err != nil {
		return err
	}

	if !slices.Equal(moments, saved) {
		return fmt.Errorf("unable to verify %s was written correctly", path)
	}

	return nil
}

// Load reads moments stored in path.
func Load(path string) ([]RobotMoment, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var moments []RobotMoment
	if err := json.NewDecoder(f).Decode(&moments); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}

	return moments, nil
}

// LoadDir reads all ground truth files in dir.
// It returns the moments keyed by file name without the extension.
func LoadDir(dir string) (map[string][]RobotMoment, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	out := make(map[string][]RobotMoment)
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), Extension) {
			continue
		}

		moments, err := Load(filepath.Join(dir, e.Name()))
		if err != nil {
			return nil, err
		}
		out[strings.TrimSuffix(e.Name(), Extension)] = moments
	}

	return out, nil
}
