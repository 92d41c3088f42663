package ui

import lipgloss "charm.land/lipgloss/v2"

type Theme struct {
	Header       lipgloss.Style
	Status       lipgloss.Style
	PanelTitle   lipgloss.Style
	PanelBorder  lipgloss.Style
	PanelBody    lipgloss.Style
	Overlay      lipgloss.Style
	OverlayTitle lipgloss.Style
	Accent       lipgloss.Style
	Correct      lipgloss.Style
	Wrong        lipgloss.Style
	Timer        lipgloss.Style
	TimerLow     lipgloss.Style
	Selected     lipgloss.Style
	Muted        lipgloss.Style
}

func DefaultTheme() Theme {
	return ThemeForVariant("modern_arcade")
}

func ThemeForVariant(variant string) Theme {
	switch variant {
	case "cozy_clean":
		return cozyCleanTheme()
	case "retro_terminal":
		return retroTerminalTheme()
	default:
		return modernArcadeTheme()
	}
}

func modernArcadeTheme() Theme {
	mint := lipgloss.Color("#6BF0A1")
	coral := lipgloss.Color("#FF7A8A")
	gold := lipgloss.Color("#FFD166")
	ink := lipgloss.Color("#101724")
	slate := lipgloss.Color("#1E2A45")
	powder := lipgloss.Color("#ECF3FF")
	cyan := lipgloss.Color("#62E6FF")
	border := lipgloss.Color("#50648F")

	return Theme{
		Header: lipgloss.NewStyle().
			Background(ink).
			Foreground(powder).
			Padding(0, 1),
		Status: lipgloss.NewStyle().
			Background(slate).
			Foreground(powder).
			Padding(0, 1),
		PanelTitle: lipgloss.NewStyle().
			Foreground(cyan).
			Bold(true),
		PanelBorder: lipgloss.NewStyle().
			Foreground(border),
		PanelBody: lipgloss.NewStyle().
			Foreground(powder),
		Overlay: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(cyan).
			Background(ink).
			Foreground(powder).
			Padding(1, 2),
		OverlayTitle: lipgloss.NewStyle().
			Foreground(cyan).
			Bold(true),
		Accent: lipgloss.NewStyle().
			Foreground(cyan).
			Bold(true),
		Correct: lipgloss.NewStyle().
			Foreground(mint).
			Bold(true),
		Wrong: lipgloss.NewStyle().
			Foreground(coral).
			Bold(true),
		Timer: lipgloss.NewStyle().
			Foreground(mint),
		TimerLow: lipgloss.NewStyle().
			Foreground(coral).
			Bold(true),
		Selected: lipgloss.NewStyle().
			Foreground(ink).
			Background(gold).
			Bold(true),
		Muted: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#97A5C4")),
	}
}

func cozyCleanTheme() Theme {
	honey := lipgloss.Color("#F0BA78")
	sage := lipgloss.Color("#84C7A6")
	rose := lipgloss.Color("#D37E88")
	night := lipgloss.Color("#202634")
	slate := lipgloss.Color("#333C4E")
	paper := lipgloss.Color("#F5F7FB")
	sky := lipgloss.Color("#88B8F8")

	return Theme{
		Header:       lipgloss.NewStyle().Background(night).Foreground(paper).Padding(0, 1),
		Status:       lipgloss.NewStyle().Background(slate).Foreground(paper).Padding(0, 1),
		PanelTitle:   lipgloss.NewStyle().Foreground(honey).Bold(true),
		PanelBorder:  lipgloss.NewStyle().Foreground(slate),
		PanelBody:    lipgloss.NewStyle().Foreground(paper),
		Overlay: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(honey).
			Background(night).
			Foreground(paper).
			Padding(1, 2),
		OverlayTitle: lipgloss.NewStyle().Foreground(honey).Bold(true),
		Accent:       lipgloss.NewStyle().Foreground(sky).Bold(true),
		Correct:      lipgloss.NewStyle().Foreground(sage).Bold(true),
		Wrong:        lipgloss.NewStyle().Foreground(rose).Bold(true),
		Timer:        lipgloss.NewStyle().Foreground(sage),
		TimerLow:     lipgloss.NewStyle().Foreground(rose).Bold(true),
		Selected:     lipgloss.NewStyle().Foreground(night).Background(honey).Bold(true),
		Muted:        lipgloss.NewStyle().Foreground(lipgloss.Color("#A6AFC5")),
	}
}

func retroTerminalTheme() Theme {
	lime := lipgloss.Color("#9DF6A4")
	amber := lipgloss.Color("#E6D57C")
	red := lipgloss.Color("#FF6D6D")
	deep := lipgloss.Color("#08160B")
	forest := lipgloss.Color("#14321C")
	glow := lipgloss.Color("#C7F8C6")

	return Theme{
		Header:      lipgloss.NewStyle().Background(deep).Foreground(glow).Padding(0, 1),
		Status:      lipgloss.NewStyle().Background(forest).Foreground(glow).Padding(0, 1),
		PanelTitle:  lipgloss.NewStyle().Foreground(amber).Bold(true),
		PanelBorder: lipgloss.NewStyle().Foreground(forest),
		PanelBody:   lipgloss.NewStyle().Foreground(glow),
		Overlay: lipgloss.NewStyle().
			BorderStyle(lipgloss.DoubleBorder()).
			BorderForeground(amber).
			Background(deep).
			Foreground(glow).
			Padding(1, 2),
		OverlayTitle: lipgloss.NewStyle().Foreground(amber).Bold(true),
		Accent:       lipgloss.NewStyle().Foreground(lime).Bold(true),
		Correct:      lipgloss.NewStyle().Foreground(lime).Bold(true),
		Wrong:        lipgloss.NewStyle().Foreground(red).Bold(true),
		Timer:        lipgloss.NewStyle().Foreground(lime),
		TimerLow:     lipgloss.NewStyle().Foreground(red).Bold(true),
		Selected:     lipgloss.NewStyle().Foreground(deep).Background(lime).Bold(true),
		Muted:        lipgloss.NewStyle().Foreground(lipgloss.Color("#75A37C")),
	}
}
