// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of TurboBarCam

package render

import (
	"fmt"
	"strings"
)

const (
	markdownHeader    = `| Action | <div style="width:400px">Description</div> | <div style="width:400px">Keybind</div> | Parameters |`
	markdownSeparator = "|---|---|---|---|"
	lineBreak         = "<br>"
	notAvailable      = "N/A"
)

// Markdown renders doc as a Markdown document with one table per mode.
func Markdown(doc Document) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("# %s\n\n", doc.Title))
	if doc.Intro != "" {
		sb.WriteString(fmt.Sprintf("%s\n\n", doc.Intro))
	}

	for _, section := range doc.Sections {
		sb.WriteString(fmt.Sprintf("## %s\n\n", section.Mode))
		sb.WriteString(markdownHeader + "\n")
		sb.WriteString(markdownSeparator + "\n")

		for _, row := range section.Rows {
			sb.WriteString(fmt.Sprintf("| **%s**%s`%s` | %s | %s | %s |\n",
				cell(row.Label),
				lineBreak,
				cell(row.ID),
				joinCells(row.Description),
				keybindCell(row.Keybinds),
				joinCells(row.Parameters),
			))
		}
		sb.WriteString("\n")
	}

	return strings.TrimRight(sb.String(), "\n") + "\n"
}

func keybindCell(binds []Bind) string {
	if len(binds) == 0 {
		return notAvailable
	}
	parts := make([]string, len(binds))
	for i, b := range binds {
		parts[i] = "`" + cell(b.Text()) + "`"
	}
	return strings.Join(parts, lineBreak)
}

func joinCells(lines []string) string {
	parts := make([]string, len(lines))
	for i, l := range lines {
		parts[i] = cell(l)
	}
	return strings.Join(parts, lineBreak)
}

// cell escapes the table delimiter.
func cell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
