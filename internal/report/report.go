// internal/report/report.go
package report

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/rovshanmuradov/pumpfun-marketcap/internal/dex/pumpfun"
)

// Color palette
var (
	Cyan   = lipgloss.Color("#00E5FF")
	Green  = lipgloss.Color("#2AFFAA")
	Yellow = lipgloss.Color("#FFB500")
	Muted  = lipgloss.Color("#6C7280")
	Text   = lipgloss.Color("#ECEFF4")
)

// Styles for the boxed report
type Styles struct {
	Container lipgloss.Style
	Title     lipgloss.Style
	Label     lipgloss.Style
	Value     lipgloss.Style
	Active    lipgloss.Style
	Complete  lipgloss.Style
}

// NewStyles returns the default report styles.
func NewStyles() Styles {
	return Styles{
		Container: lipgloss.NewStyle().
			Foreground(Text).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Cyan).
			Padding(0, 2),

		Title: lipgloss.NewStyle().
			Foreground(Cyan).
			Bold(true),

		Label: lipgloss.NewStyle().
			Foreground(Muted),

		Value: lipgloss.NewStyle().
			Foreground(Text).
			Bold(true),

		Active: lipgloss.NewStyle().
			Foreground(Green),

		Complete: lipgloss.NewStyle().
			Foreground(Yellow),
	}
}

// Options управляют выводом отчета
type Options struct {
	// Styled включает рамку и цвета; иначе выводятся только строки результата.
	Styled bool
}

var printer = message.NewPrinter(language.English)

// Lines returns the three result lines: price in SOL, price in USD and
// market cap in USD with thousands separators.
func Lines(result pumpfun.MarketCapResult) []string {
	return []string{
		fmt.Sprintf("Token price (SOL): %.9f SOL", result.TokenPriceSol),
		fmt.Sprintf("Token price (USD): $%.9f", result.TokenPriceUSD),
		printer.Sprintf("Market cap (USD):     $%.2f", result.MarketCapUSD),
	}
}

// Render formats a market cap report for the terminal.
func Render(rep *pumpfun.MarketCapReport, opts Options) string {
	if rep == nil {
		return ""
	}
	if !opts.Styled {
		return strings.Join(Lines(rep.Result), "\n") + "\n"
	}

	st := NewStyles()
	status := st.Active.Render("active")
	if rep.Curve.Complete {
		status = st.Complete.Render("complete")
	}

	row := func(label, value string) string {
		return st.Label.Render(label) + " " + st.Value.Render(value)
	}

	rows := []string{
		st.Title.Render("Pump.fun market cap"),
		"",
		row("Mint:         ", rep.Curve.Mint.String()),
		row("Bonding curve:", rep.Curve.BondingCurve.String()),
		row("Curve status: ", status),
		row("SOL/USD:      ", printer.Sprintf("$%.2f", rep.SolUSD)),
		"",
	}
	rows = append(rows, Lines(rep.Result)...)

	return st.Container.Render(lipgloss.JoinVertical(lipgloss.Left, rows...)) + "\n"
}
