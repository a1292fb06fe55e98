package templates

import (
	"bytes"
	"html/template"

	"github.com/DecorForge/proposalcraft-go/internal/domain/entities/proposal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var pricingTemplates = template.Must(template.New("pricingRenderer").Parse(
	`{{define "pricingRow"}}<tr><td class="item-name">{{.Name}}</td><td class="item-description">{{.Description}}</td><td class="item-price">{{.Price}}</td></tr>{{end}}` +
		`{{define "pricingTotal"}}<tr class="pricing-total"><td colspan="2">Total</td><td class="item-price">{{.}}</td></tr>{{end}}`,
))

type pricingRowData struct {
	Name        string
	Description string
	Price       string
}

// renderPricingTable renders a PricingTable element with per-row prices and
// the total formatted in the configured currency.
func renderPricingTable(el *proposal.Element, currencyCode string) string {
	content, ok := el.Content.(*proposal.PricingTableContent)
	if !ok {
		return ""
	}

	format := priceFormatter(currencyCode)

	var buf bytes.Buffer
	buf.WriteString(`<table class="element-content pricing-table"><thead><tr><th>Item</th><th>Description</th><th>Price</th></tr></thead><tbody>`)
	for _, item := range content.Items {
		_ = pricingTemplates.ExecuteTemplate(&buf, "pricingRow", pricingRowData{
			Name:        item.Name,
			Description: item.Description,
			Price:       format(item.Price),
		})
	}
	_ = pricingTemplates.ExecuteTemplate(&buf, "pricingTotal", format(content.Total))
	buf.WriteString(`</tbody></table>`)
	return buf.String()
}

// priceFormatter returns a formatter for the given ISO 4217 code, falling
// back to USD when the code does not parse.
func priceFormatter(code string) func(float64) string {
	unit, err := currency.ParseISO(code)
	if err != nil {
		unit = currency.USD
	}
	printer := message.NewPrinter(language.English)
	return func(price float64) string {
		return printer.Sprint(currency.Symbol(unit.Amount(price)))
	}
}
