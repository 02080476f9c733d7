package output

import (
	"fmt"
	"os"
	"path/filepath"
)

// ReportFileName is the name of the plain-text report written into the output directory.
const ReportFileName = "output.txt"

// WriteReportFile writes the pure form of rep to dir/output.txt and returns the file path.
// dir must already exist.
func WriteReportFile(dir string, rep Report, f *TextFormatter) (string, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return "", fmt.Errorf("output directory: %w", err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("output directory %s: not a directory", dir)
	}

	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("output directory %s: %w", dir, err)
	}
	path := filepath.Join(abs, ReportFileName)

	if err := os.WriteFile(path, f.Format(nil, rep), 0o644); err != nil {
		return "", fmt.Errorf("write report: %w", err)
	}
	return path, nil
}
