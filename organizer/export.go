package organizer

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/organai/organai/organizer/models"
)

var exportHeader = []string{"source_path", "suggested_path", "confidence", "accepted"}

// WriteCSV streams one row per outcome to w, headed by a fixed column row.
func WriteCSV(w io.Writer, outcomes []models.FileOutcome) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(exportHeader); err != nil {
		return fmt.Errorf("failed to write export header: %w", err)
	}
	for _, outcome := range outcomes {
		row := []string{
			outcome.Record.Path,
			outcome.Suggestion.Path,
			string(outcome.Suggestion.Confidence),
			strconv.FormatBool(outcome.Accepted),
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write export row: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// ExportCSV writes the outcomes to a file at path, creating or truncating it.
func ExportCSV(path string, outcomes []models.FileOutcome) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create export file: %w", err)
	}
	defer file.Close()

	return WriteCSV(file, outcomes)
}
