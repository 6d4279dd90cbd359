package ticket

import (
	"fmt"
	"strings"
)

// Formatter renders a closed ticket. The line slice arrives already sorted
// for display. The output is a compatibility contract: byte-for-byte stable.
type Formatter interface {
	Render(t *Ticket, lines []*Line, totals Totals) string
}

const ruler = "--------------------"

func writeHeader(b *strings.Builder, t *Ticket) {
	fmt.Fprintf(b, "Ticket ID: %s\n", t.id)
	fmt.Fprintf(b, "Cashier ID: %s\n", t.cashierID)
	fmt.Fprintf(b, "Client ID: %s\n", t.clientID)
	b.WriteString(ruler)
	b.WriteByte('\n')
}

type standardFormatter struct{}

func (standardFormatter) Render(t *Ticket, lines []*Line, totals Totals) string {
	var b strings.Builder
	writeHeader(&b, t)
	for i, l := range lines {
		fmt.Fprintf(&b, "  {class: %s, id:%s, name:'%s', price:%s}, Quantity: %d",
			l.Product.Kind(), l.Product.ID(), l.Product.Name(), l.Product.Price().StringFixed(1), l.Qty)
		if i < len(totals.PerLine) && !totals.PerLine[i].IsZero() {
			fmt.Fprintf(&b, " **discount-%s", totals.PerLine[i].StringFixed(2))
		}
		for _, text := range l.Texts {
			fmt.Fprintf(&b, " --p %s", text)
		}
		b.WriteByte('\n')
	}
	b.WriteString(ruler)
	b.WriteByte('\n')
	fmt.Fprintf(&b, "Total price: %s\n", totals.Gross.StringFixed(2))
	fmt.Fprintf(&b, "Total discount: %s\n", totals.Discount.StringFixed(2))
	fmt.Fprintf(&b, "Final Price: %s\n", totals.Final.StringFixed(2))
	return b.String()
}

// companyFormatter hides service prices and reports the service discount rate
// next to the goods/company totals.
type companyFormatter struct{}

func (companyFormatter) Render(t *Ticket, lines []*Line, totals Totals) string {
	var b strings.Builder
	writeHeader(&b, t)
	for _, l := range lines {
		if l.Product.IsService() {
			fmt.Fprintf(&b, "  {class: %s, id:%s, name:'%s', Price: HIDDEN}, Quantity: %d",
				l.Product.Kind(), l.Product.ID(), l.Product.Name(), l.Qty)
		} else {
			fmt.Fprintf(&b, "  {class: %s, id:%s, name:'%s', price:%s}, Quantity: %d",
				l.Product.Kind(), l.Product.ID(), l.Product.Name(), l.Product.Price().StringFixed(1), l.Qty)
		}
		for _, text := range l.Texts {
			fmt.Fprintf(&b, " --p %s", text)
		}
		b.WriteByte('\n')
	}
	b.WriteString(ruler)
	b.WriteByte('\n')
	fmt.Fprintf(&b, "Service discount rate: %s%%\n", totals.ServiceRate.Mul(hundred).StringFixed(0))
	fmt.Fprintf(&b, "Goods total: %s\n", totals.GoodsTotal.StringFixed(2))
	fmt.Fprintf(&b, "Company total: %s\n", totals.Gross.StringFixed(2))
	fmt.Fprintf(&b, "Total discount: %s\n", totals.Discount.StringFixed(2))
	fmt.Fprintf(&b, "Final Price: %s\n", totals.Final.StringFixed(2))
	return b.String()
}
