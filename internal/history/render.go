package history

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/fakeyudi/tempo/internal/timer"
)

// Renderer serializes history entries.
type Renderer interface {
	Render(entries []Entry) ([]byte, error)
}

// RendererFor returns the renderer for format: "table", "json" or "markdown".
func RendererFor(format string) (Renderer, error) {
	switch format {
	case "", "table":
		return &TableRenderer{}, nil
	case "json":
		return &JSONRenderer{}, nil
	case "markdown", "md":
		return &MarkdownRenderer{}, nil
	}
	return nil, fmt.Errorf("unknown format %q (want table, json or markdown)", format)
}

// JSONRenderer renders entries as indented JSON.
type JSONRenderer struct{}

func (r *JSONRenderer) Render(entries []Entry) ([]byte, error) {
	if entries == nil {
		entries = []Entry{}
	}
	return json.MarshalIndent(entries, "", "  ")
}

// MarkdownRenderer renders entries as a Markdown table.
type MarkdownRenderer struct{}

func (r *MarkdownRenderer) Render(entries []Entry) ([]byte, error) {
	var sb strings.Builder
	sb.WriteString("# tempo history\n\n")
	if len(entries) == 0 {
		sb.WriteString("_No sessions recorded._\n")
		return []byte(sb.String()), nil
	}
	sb.WriteString("| Stopped | Kind | Label | Duration | Laps | Completed |\n")
	sb.WriteString("|---------|------|-------|----------|------|-----------|\n")
	for _, e := range entries {
		fmt.Fprintf(&sb, "| %s | %s | %s | %s | %d | %s |\n",
			e.StoppedAt.Local().Format("2006-01-02 15:04:05"),
			e.Kind,
			e.Label,
			FormatDuration(e.Duration),
			e.Laps,
			yesNo(e.Completed),
		)
	}
	return []byte(sb.String()), nil
}

// TableRenderer renders aligned plain-text columns.
type TableRenderer struct{}

func (r *TableRenderer) Render(entries []Entry) ([]byte, error) {
	var sb strings.Builder
	if len(entries) == 0 {
		sb.WriteString("no sessions recorded\n")
		return []byte(sb.String()), nil
	}
	w := tabwriter.NewWriter(&sb, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STOPPED\tKIND\tLABEL\tDURATION\tLAPS\tDONE")
	for _, e := range entries {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%s\n",
			e.StoppedAt.Local().Format("Jan 02 15:04"),
			e.Kind,
			e.Label,
			FormatDuration(e.Duration),
			e.Laps,
			yesNo(e.Completed),
		)
	}
	if err := w.Flush(); err != nil {
		return nil, err
	}
	return []byte(sb.String()), nil
}

// FormatDuration renders d as MM:SS, or H:MM:SS past an hour.
func FormatDuration(d time.Duration) string {
	return timer.FormatSeconds(int64(d / time.Second))
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
