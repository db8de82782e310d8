package main

import "github.com/charmbracelet/lipgloss"

var palette = struct {
	text      lipgloss.AdaptiveColor
	textMuted lipgloss.AdaptiveColor
	border    lipgloss.AdaptiveColor
	selection lipgloss.AdaptiveColor
	accent    lipgloss.AdaptiveColor
	warning   lipgloss.AdaptiveColor
	danger    lipgloss.AdaptiveColor
}{
	text:      lipgloss.AdaptiveColor{Light: "#1a1a1a", Dark: "#e6e6e6"},
	textMuted: lipgloss.AdaptiveColor{Light: "#6b6b6b", Dark: "#8a8a8a"},
	border:    lipgloss.AdaptiveColor{Light: "#d0d0d0", Dark: "#3a3a3a"},
	selection: lipgloss.AdaptiveColor{Light: "#dcd7ff", Dark: "#3b3268"},
	accent:    lipgloss.AdaptiveColor{Light: "#5a4fcf", Dark: "#9d8cff"},
	warning:   lipgloss.AdaptiveColor{Light: "#b45309", Dark: "#fbbf24"},
	danger:    lipgloss.AdaptiveColor{Light: "#b91c1c", Dark: "#f87171"},
}

type styles struct {
	app, topBar, topCounts         lipgloss.Style
	body                           lipgloss.Style
	panel, panelFocused            lipgloss.Style
	columnTitle                    lipgloss.Style
	tableHeader                    lipgloss.Style
	tableCell, tableSelected       lipgloss.Style
	statusBar, statusSeg           lipgloss.Style
	statusHint                     lipgloss.Style
	searchBar                      lipgloss.Style
	chipActive, chipInactive       lipgloss.Style
	errorBanner                    lipgloss.Style
	toast                          lipgloss.Style
	cmdOverlay, cmdPrompt, cmdHint lipgloss.Style
}

func newStyles() styles {
	base := lipgloss.NewStyle()
	panelBorder := lipgloss.NormalBorder()
	focusedBorder := lipgloss.DoubleBorder()

	return styles{
		app:          base,
		topBar:       base.Copy().Bold(true).Padding(0, 1),
		topCounts:    base.Copy().Foreground(palette.textMuted).Padding(0, 1),
		body:         base,
		panel:        base.Copy().BorderStyle(panelBorder).BorderForeground(palette.border),
		panelFocused: base.Copy().BorderStyle(focusedBorder).BorderForeground(palette.accent),
		columnTitle:  base.Copy().Bold(true).Padding(0, 1),
		tableHeader: base.Copy().
			Bold(true).
			Foreground(palette.textMuted).
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(palette.border).
			BorderBottom(true).
			Padding(0, 1),
		tableCell: base.Copy().Padding(0, 1),
		tableSelected: base.Copy().
			Foreground(palette.text).
			Background(palette.selection).
			Padding(0, 1),
		statusBar:    base.Copy().Padding(0, 1),
		statusSeg:    base.Copy().Padding(0, 1).MarginRight(1).Foreground(palette.textMuted),
		statusHint:   base.Copy().Foreground(palette.textMuted),
		searchBar:    base.Copy().Padding(0, 1),
		chipActive:   base.Copy().Bold(true).Foreground(palette.accent).Padding(0, 1),
		chipInactive: base.Copy().Foreground(palette.textMuted).Padding(0, 1),
		errorBanner:  base.Copy().Bold(true).Foreground(palette.danger).Padding(1, 2),
		toast:        base.Copy().Foreground(palette.warning).Padding(0, 1),
		cmdOverlay:   base.Copy().Border(lipgloss.RoundedBorder()).BorderForeground(palette.accent).Padding(1, 2),
		cmdPrompt:    base.Copy().Bold(true),
		cmdHint:      base.Copy().Faint(true),
	}
}
