package documents

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"innkeeper/internal/pkg/config"
	"innkeeper/internal/pkg/errs"
	"innkeeper/internal/usecase/shared"
)

const invoiceTemplate = `<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>Invoice {{.Reference}}</title></head>
<body style="font-family: sans-serif; max-width: 640px; margin: 0 auto;">
  <h1>{{.HotelName}}</h1>
  {{if .HotelAddress}}<p>{{.HotelAddress}}</p>{{end}}
  <hr>
  <h2>Invoice for reservation {{.Reference}}</h2>
  <table style="width: 100%; border-collapse: collapse;">
    <tr><td>Guest</td><td>{{.GuestName}}</td></tr>
    <tr><td>Arrival</td><td>{{.Arrival}}</td></tr>
    <tr><td>Departure</td><td>{{.Departure}}</td></tr>
    <tr><td>Nights</td><td>{{.Nights}}</td></tr>
  </table>
  <h3>Total: {{.Total}}</h3>
  {{if .HotelEmail}}<p>Questions? Contact us at {{.HotelEmail}}{{if .HotelPhone}} or {{.HotelPhone}}{{end}}.</p>{{end}}
</body>
</html>`

type invoiceData struct {
	HotelName    string
	HotelAddress string
	HotelEmail   string
	HotelPhone   string
	Reference    string
	GuestName    string
	Arrival      string
	Departure    string
	Nights       int
	Total        string
}

// InvoiceRenderer turns a confirmed reservation into the HTML invoice that
// rides along with the confirmation mail.
type InvoiceRenderer struct {
	hotel config.HotelConfig
	tmpl  *template.Template
}

func NewInvoiceRenderer(hotel config.HotelConfig) (*InvoiceRenderer, error) {
	tmpl, err := template.New("invoice").Parse(invoiceTemplate)
	if err != nil {
		return nil, errs.Wrap(err, "failed to parse invoice template")
	}
	return &InvoiceRenderer{hotel: hotel, tmpl: tmpl}, nil
}

func (r *InvoiceRenderer) Render(res *shared.ReservationSnapshot) (string, error) {
	nights := int(res.Departure.Sub(res.Arrival).Hours() / 24)
	data := invoiceData{
		HotelName:    r.hotel.Name,
		HotelAddress: r.hotel.Address,
		HotelEmail:   r.hotel.Email,
		HotelPhone:   r.hotel.Phone,
		Reference:    res.Reference,
		GuestName:    res.GuestName,
		Arrival:      res.Arrival.Format("2006-01-02"),
		Departure:    res.Departure.Format("2006-01-02"),
		Nights:       nights,
		Total:        FormatMoney(res.TotalCents, r.hotel.Currency),
	}

	var buf bytes.Buffer
	if err := r.tmpl.Execute(&buf, data); err != nil {
		return "", errs.Wrap(err, "failed to render invoice")
	}
	return buf.String(), nil
}

// FormatMoney renders integer cents as "12.50 USD". Money never leaves the
// system as floating point.
func FormatMoney(cents int64, currency string) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	out := fmt.Sprintf("%s%d.%02d", sign, cents/100, cents%100)
	if c := strings.TrimSpace(currency); c != "" {
		out += " " + c
	}
	return out
}
