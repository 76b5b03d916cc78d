package report

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/ideamans/go-l10n"
)

// MarkdownFormatter renders a Summary as a Markdown document.
type MarkdownFormatter struct {
	// MaxFiles limits the file list; 0 lists every file.
	MaxFiles int
}

// NewMarkdownFormatter creates a new MarkdownFormatter.
func NewMarkdownFormatter() *MarkdownFormatter {
	return &MarkdownFormatter{MaxFiles: 200}
}

// Format implements Formatter.
func (f *MarkdownFormatter) Format(s *Summary) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", l10n.T("Export Report"))
	fmt.Fprintf(&b, "%s: %s\n\n", l10n.T("Generated"), s.GeneratedAt.Format(time.RFC3339))

	fmt.Fprintf(&b, "## %s\n\n", l10n.T("Video"))
	writeTable(&b, [][2]string{
		{l10n.T("File"), s.Video.Path},
		{l10n.T("Duration"), formatDuration(s.Video.DurationMs)},
		{l10n.T("Backend"), orDash(s.Video.Backend)},
	})

	fmt.Fprintf(&b, "## %s\n\n", l10n.T("Settings"))
	writeTable(&b, [][2]string{
		{l10n.T("Mode"), s.Settings.Mode},
		{l10n.T("Parameter"), s.Settings.Parameter},
		{l10n.T("Format"), s.Settings.Format},
		{l10n.T("Quality"), fmt.Sprintf("%d", s.Settings.Quality)},
		{l10n.T("Naming"), s.Settings.Naming},
		{l10n.T("Output"), filepath.Join(s.Settings.ExportDir, s.Settings.Project)},
		{l10n.T("Seed"), fmt.Sprintf("%d", s.Settings.Seed)},
	})

	fmt.Fprintf(&b, "## %s\n\n", l10n.T("Result"))
	rows := [][2]string{
		{l10n.T("Job"), s.Outcome.JobID},
		{l10n.T("State"), s.Outcome.State},
		{l10n.T("Planned"), fmt.Sprintf("%d", s.Outcome.Planned)},
		{l10n.T("Succeeded"), fmt.Sprintf("%d", s.Outcome.Succeeded)},
		{l10n.T("Failed"), fmt.Sprintf("%d", s.Outcome.Failed)},
		{l10n.T("Elapsed"), s.Outcome.Elapsed.Round(time.Millisecond).String()},
	}
	if s.Outcome.Error != "" {
		rows = append(rows, [2]string{l10n.T("Error"), s.Outcome.Error})
	}
	writeTable(&b, rows)

	if len(s.Files) > 0 {
		fmt.Fprintf(&b, "## %s\n\n", l10n.T("Files"))
		files := s.Files
		if f.MaxFiles > 0 && len(files) > f.MaxFiles {
			files = files[:f.MaxFiles]
		}
		for _, p := range files {
			fmt.Fprintf(&b, "- `%s`\n", p)
		}
		if rest := len(s.Files) - len(files); rest > 0 {
			fmt.Fprintf(&b, "- %s\n", l10n.F("... and %d more", rest))
		}
		b.WriteString("\n")
	}

	if len(s.Failures) > 0 {
		fmt.Fprintf(&b, "## %s\n\n", l10n.T("Failures"))
		fmt.Fprintf(&b, "| %s | %s | %s |\n", l10n.T("Timestamp"), l10n.T("Kind"), l10n.T("Message"))
		b.WriteString("|---|---|---|\n")
		for _, fl := range s.Failures {
			fmt.Fprintf(&b, "| %s | %s | %s |\n", formatDuration(fl.TimestampMs), fl.Kind, escapeCell(fl.Message))
		}
		b.WriteString("\n")
	}

	return b.String()
}

func writeTable(b *strings.Builder, rows [][2]string) {
	fmt.Fprintf(b, "| %s | %s |\n", l10n.T("Item"), l10n.T("Value"))
	b.WriteString("|---|---|\n")
	for _, r := range rows {
		fmt.Fprintf(b, "| %s | %s |\n", r[0], escapeCell(r[1]))
	}
	b.WriteString("\n")
}

// formatDuration renders milliseconds as H:MM:SS.mmm.
func formatDuration(ms int64) string {
	return fmt.Sprintf("%d:%02d:%02d.%03d", ms/3600000, ms/60000%60, ms/1000%60, ms%1000)
}

func escapeCell(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	return strings.ReplaceAll(s, "\n", " ")
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
