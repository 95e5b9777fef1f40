package designgen

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
)

// Terminal styles for consistent output formatting.
// Lipgloss automatically degrades colors based on terminal capabilities.
var (
	// StyleCyan is used for section headers.
	StyleCyan = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))
	// StyleYellow is used for warning sections.
	StyleYellow = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("3"))
	// StyleGreen is used for success messages.
	StyleGreen = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("2"))
	// StyleGray is used for hints and secondary values.
	StyleGray = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// RenderStyle applies a lipgloss style to text when colors are enabled.
// When useColors is false, the text is returned unmodified.
func RenderStyle(style lipgloss.Style, text string, useColors bool) string {
	if !useColors {
		return text
	}
	return style.Render(text)
}

// ShouldUseColors determines if colors should be enabled.
func ShouldUseColors(force bool) bool {
	if force {
		return true
	}
	if os.Getenv("FORCE_COLOR") != "" {
		return true
	}
	if os.Getenv("GITHUB_ACTIONS") == "true" {
		return true
	}
	if fileInfo, _ := os.Stdout.Stat(); fileInfo != nil && (fileInfo.Mode()&os.ModeCharDevice) != 0 {
		return true
	}
	return false
}

// Reporter formats analysis results for the terminal.
type Reporter struct {
	w         io.Writer
	useColors bool
}

// NewReporter creates a reporter writing to w.
func NewReporter(w io.Writer, useColors bool) *Reporter {
	return &Reporter{w: w, useColors: useColors}
}

// PrintSummary outputs high-level analysis statistics.
func (r *Reporter) PrintSummary(result *AnalysisResult) {
	fmt.Fprintln(r.w, RenderStyle(StyleCyan, "Analysis Summary", r.useColors))
	fmt.Fprintln(r.w, "------------------")
	fmt.Fprintf(r.w, "Document:          %s\n", result.DocumentName)
	fmt.Fprintf(r.w, "Nodes analyzed:    %d\n", result.NodeCount)
	fmt.Fprintf(r.w, "Color tokens:      %d\n", len(result.Tokens.Colors))
	fmt.Fprintf(r.w, "Typography tokens: %d\n", len(result.Tokens.Typography))
	fmt.Fprintf(r.w, "Spacing tokens:    %d\n", len(result.Tokens.Spacing))
	if result.BaseDevice != nil {
		fmt.Fprintf(r.w, "Base device:       %s (%sx%s)\n",
			result.BaseDevice.Name,
			fmtNum(result.BaseDevice.Width), fmtNum(result.BaseDevice.Height))
	}
}

// PrintTokens outputs the ranked token lists.
func (r *Reporter) PrintTokens(tokens *ThemeTokens) {
	fmt.Fprintln(r.w, "")
	fmt.Fprintln(r.w, RenderStyle(StyleCyan, "Color Tokens", r.useColors))
	fmt.Fprintln(r.w, "--------------")
	for _, c := range tokens.Colors {
		fmt.Fprintf(r.w, "%-12s %s %s\n", c.Name, c.Value,
			RenderStyle(StyleGray, fmt.Sprintf("(%s, %d uses)", c.UsageCategory, c.Count), r.useColors))
	}

	if len(tokens.Typography) > 0 {
		fmt.Fprintln(r.w, "")
		fmt.Fprintln(r.w, RenderStyle(StyleCyan, "Typography Tokens", r.useColors))
		fmt.Fprintln(r.w, "-------------------")
		for _, t := range tokens.Typography {
			fmt.Fprintf(r.w, "%-12s %s %s/%d %s\n", t.Name, t.FontFamily, fmtNum(t.FontSize), t.FontWeight,
				RenderStyle(StyleGray, fmt.Sprintf("(%s, %d uses)", t.UsageCategory, t.Count), r.useColors))
		}
	}

	if len(tokens.Spacing) > 0 {
		fmt.Fprintln(r.w, "")
		fmt.Fprintln(r.w, RenderStyle(StyleCyan, "Spacing Tokens", r.useColors))
		fmt.Fprintln(r.w, "----------------")
		for _, s := range tokens.Spacing {
			fmt.Fprintf(r.w, "%-12s %s %s\n", s.Name, fmtNum(s.Value),
				RenderStyle(StyleGray, fmt.Sprintf("(%s, %d uses)", s.UsageCategory, s.Count), r.useColors))
		}
	}
}

// PrintPatterns outputs the pattern distribution.
func (r *Reporter) PrintPatterns(result *AnalysisResult) {
	if len(result.Patterns) == 0 {
		return
	}
	fmt.Fprintln(r.w, "")
	fmt.Fprintln(r.w, RenderStyle(StyleCyan, "Detected Patterns", r.useColors))
	fmt.Fprintln(r.w, "-------------------")
	for _, p := range result.Patterns {
		fmt.Fprintf(r.w, "%-12s %d\n", p.Type, p.Count)
	}
}

// PrintWarnings outputs accumulated warnings.
func (r *Reporter) PrintWarnings(warnings []string) {
	if len(warnings) == 0 {
		return
	}
	fmt.Fprintln(r.w, "")
	fmt.Fprintln(r.w, RenderStyle(StyleYellow, "Warnings", r.useColors))
	fmt.Fprintln(r.w, "----------")
	for _, warning := range warnings {
		fmt.Fprintf(r.w, "• %s\n", warning)
	}
}
