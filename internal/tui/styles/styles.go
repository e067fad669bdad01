package styles

import "github.com/charmbracelet/lipgloss"

// Color palette
var (
	Teal      = lipgloss.Color("#2DD4BF")
	DimGray   = lipgloss.Color("#6B7280")
	LightGray = lipgloss.Color("#9CA3AF")
	White     = lipgloss.Color("#F9FAFB")
	Green     = lipgloss.Color("#10B981")
	Red       = lipgloss.Color("#EF4444")
	Amber     = lipgloss.Color("#F59E0B")
	Blue      = lipgloss.Color("#3B82F6")
)

// Text styles
var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(White).
			Bold(true)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(LightGray)

	DimStyle = lipgloss.NewStyle().
			Foreground(DimGray)

	AccentStyle = lipgloss.NewStyle().
			Foreground(Teal)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(Red)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(Green)

	WarnStyle = lipgloss.NewStyle().
			Foreground(Amber)

	SelectedStyle = lipgloss.NewStyle().
			Foreground(White).
			Background(lipgloss.Color("#374151"))

	MatchStyle = lipgloss.NewStyle().
			Foreground(Teal).
			Underline(true)

	FilterPromptStyle = lipgloss.NewStyle().
				Foreground(Teal)

	FilterStyle = lipgloss.NewStyle().
			Foreground(White)
)

// Raw candidate status characters (unstyled)
const (
	AcceptedChar = "✓"
	RejectedChar = "○"
	NoFixChar    = "∅"
)

// Candidate status indicator styles
var (
	AcceptedStyle = lipgloss.NewStyle().Foreground(Green)
	RejectedStyle = lipgloss.NewStyle().Foreground(DimGray)
	NoFixStyle    = lipgloss.NewStyle().Foreground(Red)
)

// Pre-rendered status indicators
var (
	AcceptedMark = AcceptedStyle.Render(AcceptedChar)
	RejectedMark = RejectedStyle.Render(RejectedChar)
	NoFixMark    = NoFixStyle.Render(NoFixChar)
)
