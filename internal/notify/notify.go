/*
Package notify renders the open IPO report and delivers it via console output and email.
*/
package notify

import (
	"fmt"
	"io"
	"strings"

	"github.com/shanehull/iposcraper/internal/types"
)

// ReportListings prints a console summary of the listings to w.
func ReportListings(w io.Writer, listings []types.Listing) {
	if len(listings) == 0 {
		fmt.Fprintln(w, "\n-------------------------------------------")
		fmt.Fprintln(w, "No IPOs are currently open.")
		fmt.Fprintln(w, "-------------------------------------------")
		return
	}

	fmt.Fprintln(w, "\n===========================================")
	fmt.Fprintf(w, "✅ %d OPEN IPO(S)\n", len(listings))
	fmt.Fprintln(w, "===========================================")

	for i, l := range listings {
		marker := ""
		if l.Highlighted {
			marker = " ✨"
		}

		fmt.Fprintf(w, "\n--- #%d%s ---\n", i+1, marker)
		fmt.Fprintf(w, "Name:    %s\n", l.Name)
		fmt.Fprintf(w, "GMP:     %s (%.2f%%)\n", l.GMP, l.GMPPercent)
		fmt.Fprintf(w, "Fire:    %d\n", l.FireCount)
		fmt.Fprintf(w, "Sub:     %s\n", l.Subscription)
		fmt.Fprintf(w, "Min Inv: %s\n", l.MinInvestment)
		fmt.Fprintf(w, "Window:  %s -> %s\n", l.Open, l.Close)
	}

	fmt.Fprintln(w, "\n"+strings.Repeat("=", 43))
}
