// Package render turns rebalance suggestions into styled terminal output.
// How plans are displayed is a caller concern; this is one ready-made view.
package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/quantfold/rebalance/internal/domain"
)

var (
	subtle  = lipgloss.AdaptiveColor{Light: "#D9DCCF", Dark: "#383838"}
	special = lipgloss.AdaptiveColor{Light: "#43BF6D", Dark: "#73F59F"}

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205")).
			MarginBottom(1)

	sectionStyle = lipgloss.NewStyle().
			Foreground(special).
			Bold(true)

	lineStyle = lipgloss.NewStyle().
			PaddingLeft(2)

	emptyStyle = lipgloss.NewStyle().
			PaddingLeft(2).
			Foreground(subtle)
)

// Suggestion renders a rebalance suggestion as a terminal block. The prices
// map supplies the per-security prices the plan was computed against; entries
// without a price render without the value column.
func Suggestion(s domain.RebalanceSuggestion, prices map[string]decimal.Decimal) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("REBALANCE PLAN"))
	b.WriteString("\n")

	b.WriteString(sectionStyle.Render("SELL"))
	b.WriteString("\n")
	writeSide(&b, s.SellIDs(), s.ToSell, prices)

	b.WriteString(sectionStyle.Render("BUY"))
	b.WriteString("\n")
	writeSide(&b, s.BuyIDs(), s.ToBuy, prices)

	b.WriteString(sectionStyle.Render("SURPLUS"))
	b.WriteString("\n")
	b.WriteString(lineStyle.Render(s.Surplus.String()))
	b.WriteString("\n")

	return b.String()
}

func writeSide(b *strings.Builder, ids []string, units map[string]int64, prices map[string]decimal.Decimal) {
	if len(ids) == 0 {
		b.WriteString(emptyStyle.Render("nothing"))
		b.WriteString("\n")
		return
	}

	for _, id := range ids {
		n := units[id]
		line := fmt.Sprintf("%s %d", id, n)
		if price, ok := prices[id]; ok {
			value := decimal.NewFromInt(n).Mul(price)
			line = fmt.Sprintf("%s %d x %s = %s", id, n, price.String(), value.String())
		}
		b.WriteString(lineStyle.Render(line))
		b.WriteString("\n")
	}
}
