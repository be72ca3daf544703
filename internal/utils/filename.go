package utils

import (
	"fmt"
	"time"

	"github.com/briefmate/briefmate/internal/constants"
)

// ExportFilename returns the download name for an export generated at now,
// e.g. "briefmate-export-2026-10-17.csv".
func ExportFilename(now time.Time, ext string) string {
	return fmt.Sprintf("%s-%s.%s", constants.ExportFilePrefix, now.Format("2006-01-02"), ext)
}

// AttachmentHeader builds a Content-Disposition value for filename.
func AttachmentHeader(filename string) string {
	return fmt.Sprintf("attachment; filename=%q", filename)
}
