package tui

import (
	"fmt"
	"math"
	"strings"

	"diskscope/internal/ruleset"
	"diskscope/internal/scannode"
)

// View implements tea.Model.
func (m *Model) View() string {
	if m.root == nil {
		return "Loading..."
	}
	if m.focus == paneInsights {
		return m.viewInsights()
	}
	return m.viewTree()
}

func (m *Model) viewTree() string {
	var b strings.Builder
	headerLines := 0
	writeLine := func(line string) {
		b.WriteString(line)
		b.WriteString("\n")
		headerLines++
	}

	writeLine(titleStyle.Render("diskscope - disk usage browser"))

	scanInfo := fmt.Sprintf("Root: %s | Apparent: %s | Disk: %s | Files: %s | Dirs: %s",
		m.root.Path,
		FormatSize(m.root.SizeBytes),
		FormatSize(m.root.DiskUsage),
		FormatCount(m.stats.Files()),
		FormatCount(m.stats.Directories()),
	)
	writeLine(statsStyle.Render(scanInfo))

	pathLabel := fmt.Sprintf("Path: %s", truncateMiddle(m.current.Path, max(10, m.width-6)))
	writeLine(breadcrumbStyle.Render(pathLabel))

	status := fmt.Sprintf("Items: %s", FormatCount(int64(len(m.entries))))
	if m.filter != "" {
		status += fmt.Sprintf(" | Filter: %q", m.filter)
	}
	if len(m.entries) > 0 && m.cursor < len(m.entries) {
		sel := m.entries[m.cursor]
		status += fmt.Sprintf(" | Sel: %s (%s/%s)", sel.Name, FormatSize(sel.SizeBytes), FormatSize(sel.DiskUsage))
	}
	writeLine(statusStyle.Render(status))

	if m.filterActive {
		writeLine(filterStyle.Render(fmt.Sprintf("Filter: %s_", m.filter)))
	} else if m.filter != "" {
		writeLine(filterStyle.Render(fmt.Sprintf("Filter: %s", m.filter)))
	}

	apparentLabel := headerLabel("APPARENT", m.sort == SortByApparent)
	diskLabel := headerLabel("DISK", m.sort == SortByDisk)
	itemsLabel := "ITEMS"
	nameLabel := headerLabel("NAME", m.sort == SortByName)

	footerLines := 2
	visibleRows := m.height - headerLines - footerLines
	if visibleRows < 5 {
		visibleRows = 5
	}

	startIdx := 0
	if m.cursor >= visibleRows {
		startIdx = m.cursor - visibleRows + 1
	}
	endIdx := min(len(m.entries), startIdx+visibleRows)

	widths := calcColumnWidths(m.entries, startIdx, endIdx, apparentLabel, diskLabel, itemsLabel)
	nameWidth := calcNameWidth(m.width, widths)
	gap := strings.Repeat(" ", colGap)
	nameGap := strings.Repeat(" ", nameGapWidth)

	nameLabel = truncateRight(nameLabel, nameWidth)
	namePad := max(0, nameWidth-len(nameLabel))
	header := fmt.Sprintf("%*s%s%*s%s%*s%s%s%s%*s",
		widths.apparent, apparentLabel, gap,
		widths.disk, diskLabel, gap,
		widths.items, itemsLabel, nameGap,
		nameLabel, strings.Repeat(" ", namePad),
	)
	writeLine(headerStyle.Render(header))

	for i := startIdx; i < endIdx; i++ {
		b.WriteString(m.formatEntry(m.entries[i], i == m.cursor, widths, nameWidth))
		b.WriteString("\n")
	}
	for i := min(len(m.entries)-startIdx, visibleRows); i < visibleRows; i++ {
		b.WriteString("\n")
	}

	b.WriteString("\n")
	help := m.helpLine()
	if len(m.entries) > 0 {
		help = fmt.Sprintf("%s [%d/%d]", help, m.cursor+1, len(m.entries))
	}
	b.WriteString(helpStyle.Render(help))

	return b.String()
}

func (m *Model) viewInsights() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("diskscope - insights"))
	b.WriteString("\n")

	catLabel := "ALL"
	if m.categoryIdx >= 0 {
		catLabel = ruleset.Category(m.categoryIdx).String()
	}
	b.WriteString(statsStyle.Render(fmt.Sprintf("Category: %s (←/→ to switch)", catLabel)))
	b.WriteString("\n")

	if m.bundle != nil {
		var parts []string
		for _, c := range []ruleset.Category{ruleset.Temp, ruleset.Cache, ruleset.BuildArtifact} {
			if stats, ok := m.bundle.ByCategory[c]; ok {
				parts = append(parts, fmt.Sprintf("%s: %s in %s items", c.String(), FormatSize(stats.DiskUsage), FormatCount(int64(stats.Count))))
			}
		}
		b.WriteString(statsStyle.Render(strings.Join(parts, " | ")))
		b.WriteString("\n\n")
	}

	entries := m.filteredInsights()
	visibleRows := max(5, m.height-8)
	startIdx := 0
	if m.insightCursor >= visibleRows {
		startIdx = m.insightCursor - visibleRows + 1
	}
	endIdx := min(len(entries), startIdx+visibleRows)

	for i := startIdx; i < endIdx; i++ {
		ins := entries[i]
		style := categoryStyle[int(ins.Category)]
		line := fmt.Sprintf("%10s  %10s  %-12s %s",
			FormatSize(ins.DiskUsage), FormatSize(ins.SizeBytes), ins.Category.String(), ins.Path)
		line = style.Render(line)
		if i == m.insightCursor {
			line = selectedStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render(fmt.Sprintf("↑/↓ move | ←/→ category | tab: tree | q: quit [%d/%d]", m.insightCursor+1, len(entries))))
	return b.String()
}

type columnWidths struct {
	apparent int
	disk     int
	items    int
}

const (
	colGap        = 2
	nameGapWidth  = 2
	minNameWidth  = 10
	barBlockWidth = 10
)

func calcColumnWidths(entries []*scannode.ScanNode, startIdx, endIdx int, apparentLabel, diskLabel, itemsLabel string) columnWidths {
	w := columnWidths{apparent: len(apparentLabel), disk: len(diskLabel), items: len(itemsLabel)}
	for i := startIdx; i < endIdx; i++ {
		e := entries[i]
		if l := len(FormatSize(e.SizeBytes)); l > w.apparent {
			w.apparent = l
		}
		if l := len(FormatSize(e.DiskUsage)); l > w.disk {
			w.disk = l
		}
		if l := len(FormatCount(int64(len(e.Children)))); l > w.items {
			w.items = l
		}
	}
	return w
}

func calcNameWidth(totalWidth int, w columnWidths) int {
	used := w.apparent + w.disk + w.items + (colGap * 3) + nameGapWidth
	nameWidth := totalWidth - used
	if nameWidth < minNameWidth {
		nameWidth = minNameWidth
	}
	return nameWidth
}

func truncateRight(s string, maxLen int) string {
	if maxLen <= 0 || len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}

func truncateMiddle(s string, maxLen int) string {
	if maxLen <= 0 || len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	head := (maxLen - 3) / 2
	tail := maxLen - 3 - head
	return s[:head] + "..." + s[len(s)-tail:]
}

func (m *Model) formatEntry(n *scannode.ScanNode, selected bool, widths columnWidths, nameWidth int) string {
	apparent := FormatSize(n.SizeBytes)
	disk := FormatSize(n.DiskUsage)
	items := "-"
	if n.IsDir() {
		items = FormatCount(int64(len(n.Children)))
	}

	rawName := n.Name
	if n.IsDir() {
		rawName += "/"
	}
	rawName = truncateRight(rawName, nameWidth)

	var styledName string
	if n.IsDir() {
		styledName = dirStyle.Render(rawName)
	} else {
		styledName = fileStyle.Render(rawName)
	}
	paddedName := styledName + strings.Repeat(" ", max(0, nameWidth-len(rawName)))

	parentTotal := int64(0)
	if m.current != nil {
		if m.sort == SortByApparent {
			parentTotal = m.current.SizeBytes
		} else {
			parentTotal = m.current.DiskUsage
		}
	}
	entryVal := n.DiskUsage
	if m.sort == SortByApparent {
		entryVal = n.SizeBytes
	}
	bar := formatBar(entryVal, parentTotal)

	gap := strings.Repeat(" ", colGap)
	nameGap := strings.Repeat(" ", nameGapWidth)
	line := fmt.Sprintf("%*s%s%*s%s%*s%s%s%s%s",
		widths.apparent, apparent, gap,
		widths.disk, disk, gap,
		widths.items, items, nameGap,
		paddedName, gap+bar,
	)

	if selected {
		return selectedStyle.Render(line)
	}
	return line
}

func formatBar(entryVal, parentTotal int64) string {
	if parentTotal <= 0 || entryVal <= 0 {
		return barEmptyStyle.Render(strings.Repeat("░", barBlockWidth)) + fmt.Sprintf("  %3d%%", 0)
	}
	pct := float64(entryVal) / float64(parentTotal) * 100
	if pct > 100 {
		pct = 100
	}
	filled := int(math.Round(pct / 100 * float64(barBlockWidth)))
	if filled < 1 {
		filled = 1
	}
	if filled > barBlockWidth {
		filled = barBlockWidth
	}
	filledStr := barFilledStyle.Render(strings.Repeat("█", filled))
	emptyStr := barEmptyStyle.Render(strings.Repeat("░", barBlockWidth-filled))
	return filledStr + emptyStr + fmt.Sprintf("  %3d%%", int(math.Round(pct)))
}

func headerLabel(label string, active bool) string {
	if active {
		return label + "v"
	}
	return label
}
