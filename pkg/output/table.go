package output

import (
	"fmt"
	"strings"

	"github.com/arthur-debert/dotman/pkg/config"
	"github.com/arthur-debert/dotman/pkg/tasks"
	"github.com/pterm/pterm"
)

// StatusTable renders one row per outcome.
func StatusTable(report *tasks.Report) (string, error) {
	data := pterm.TableData{{"TASK", "KIND", "STATUS", "DETAIL"}}
	for _, o := range report.Outcomes {
		data = append(data, []string{o.Name, o.Kind, statusLabel(o.Status), o.Error})
	}
	return pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
}

// ProfilesTable renders the manifest's profiles in order.
func ProfilesTable(m *config.Manifest) (string, error) {
	data := pterm.TableData{{"PROFILE", "ALIASES", "GROUPS", "ROOT GROUPS"}}
	for _, p := range m.Profiles {
		data = append(data, []string{
			p.Name,
			strings.Join(p.Aliases, ", "),
			strings.Join(p.Groups, ", "),
			strings.Join(p.RootGroups, ", "),
		})
	}
	return pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
}

// Summary is a one-line count of outcomes, e.g. "2 performed, 5 skipped".
func Summary(report *tasks.Report) string {
	var parts []string
	for _, s := range []tasks.Status{tasks.StatusPerformed, tasks.StatusPending, tasks.StatusSkipped, tasks.StatusFailed} {
		if n := report.Count(s); n > 0 {
			parts = append(parts, fmt.Sprintf("%d %s", n, s))
		}
	}
	if len(parts) == 0 {
		return "nothing to do"
	}
	return strings.Join(parts, ", ")
}

func statusLabel(s tasks.Status) string {
	switch s {
	case tasks.StatusPerformed, tasks.StatusPending:
		return GlyphPerformed + " " + string(s)
	case tasks.StatusFailed:
		return GlyphFailed + " " + string(s)
	default:
		return GlyphSkipped + " " + string(s)
	}
}
