package notify

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/shanehull/iposcraper/internal/types"
)

const subjectDateLayout = "02-Jan-2006"

// RenderedMessage is a ready-to-send email.
type RenderedMessage struct {
	Subject string
	Text    string
	HTML    string
}

type reportData struct {
	Subject    string
	Listings   []types.Listing
	Disclaimer template.HTML
}

// ReportRenderer renders the daily report as a self-contained HTML document
// with a plain text alternative.
type ReportRenderer struct {
	report *template.Template
	empty  *template.Template
}

func NewReportRenderer() *ReportRenderer {
	return &ReportRenderer{
		report: template.Must(template.New("report").Parse(reportHTMLTemplate)),
		empty:  template.Must(template.New("empty").Parse(emptyReportTemplate)),
	}
}

// Subject returns the report subject for the given day.
func Subject(now time.Time) string {
	return fmt.Sprintf("Daily IPO Report - Open Issues (%s)", now.Format(subjectDateLayout))
}

// Render builds the report for listings in the order given.
func (r *ReportRenderer) Render(listings []types.Listing, now time.Time) (*RenderedMessage, error) {
	data := reportData{
		Subject:    Subject(now),
		Listings:   listings,
		Disclaimer: template.HTML(disclaimerHTML),
	}

	tmpl := r.report
	if len(listings) == 0 {
		tmpl = r.empty
	}

	var htmlBuf bytes.Buffer
	if err := tmpl.Execute(&htmlBuf, data); err != nil {
		return nil, fmt.Errorf("failed to render HTML template: %w", err)
	}

	return &RenderedMessage{
		Subject: data.Subject,
		Text:    renderPlainText(listings),
		HTML:    htmlBuf.String(),
	}, nil
}

// renderPlainText produces a readable plain text version for email clients that don't support HTML.
func renderPlainText(listings []types.Listing) string {
	var sb strings.Builder

	if len(listings) == 0 {
		sb.WriteString("No IPOs are currently open.\n\n")
		sb.WriteString(disclaimerText)
		return sb.String()
	}

	sb.WriteString("Currently Open IPOs\n")
	sb.WriteString(strings.Repeat("=", 50) + "\n\n")

	for _, l := range listings {
		if l.Highlighted {
			sb.WriteString("★ ")
		}
		sb.WriteString(l.Name + "\n")
		fmt.Fprintf(&sb, "  GMP: %s | Fire: %s | Sub: %s\n", l.GMP, l.FireRating, l.Subscription)
		fmt.Fprintf(&sb, "  Price: ₹%s | Lot: %s | Min Investment: %s | Size: %s\n", l.PriceText, l.LotText, l.MinInvestment, l.IssueSize)
		fmt.Fprintf(&sb, "  Open: %s | Close: %s | Listing: %s\n\n", l.Open, l.Close, l.ListingAt)
	}

	sb.WriteString("★ marks issues with GMP ≥ 20 %, Fire Rating ≥ 4 and Subscription ≥ 5×.\n\n")
	sb.WriteString(disclaimerText)
	return sb.String()
}

const disclaimerText = "Disclaimer: This information is provided for educational purposes only. " +
	"It is sourced from public data on Investorgain. " +
	"Please verify independently before making any investment decisions.\n"
