package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/forcearc/forcearc/internal/core/ports/driving"
)

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Bold(true)
	failureStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
)

func statusLabel(ok bool) string {
	if ok {
		return successStyle.Render("[SUCCESS]")
	}
	return failureStyle.Render("[FAILED]")
}

func renderDownloadReport(r *driving.DownloadReport) string {
	line := fmt.Sprintf(
		"%s Download finished. Processed %d/%d (%s): %d skipped, %d downloaded, %d copied, %d errors.",
		statusLabel(r.Success()),
		r.Processed, r.Total,
		humanize.IBytes(uint64(r.Size)),
		r.Skipped, r.Downloaded, r.Copied, r.Errors,
	)
	if r.FailedObjects > 0 {
		line += fmt.Sprintf(" %d object types failed on metadata fetch.", r.FailedObjects)
	}
	return line
}

func renderValidationReport(r *driving.ValidationReport) string {
	line := fmt.Sprintf(
		"%s Validation finished. Processed %d/%d, %d invalid.",
		statusLabel(r.Success()),
		r.Processed, r.Total, r.Invalid,
	)
	if r.Removed > 0 {
		line += fmt.Sprintf(" Removed %d invalid files.", r.Removed)
	}
	if r.FailedObjects > 0 {
		line += fmt.Sprintf(" %d object types failed on metadata fetch.", r.FailedObjects)
	}
	return line
}
