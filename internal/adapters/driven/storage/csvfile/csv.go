package csvfile

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
)

// readRows reads a CSV file and returns its data rows, skipping the
// header. (nil, false, nil) means the file does not exist.
func readRows(path string) ([][]string, bool, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		return nil, false, fmt.Errorf("read %s: %w", path, err)
	}
	if len(rows) == 0 {
		return nil, true, nil
	}
	return rows[1:], true, nil
}

// writeRows writes header plus rows to path atomically: the data
// lands in a temp file first and is renamed over the target.
func writeRows(path string, header []string, rows [][]string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return err
	}

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			f.Close()
			os.Remove(tmp)
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, path)
}
