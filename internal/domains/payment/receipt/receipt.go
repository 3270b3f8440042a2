// Package receipt renders a booking receipt as a PDF.
package receipt

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/phpdave11/gofpdf"

	"trekking/internal/domains/booking/dates"
	"trekking/internal/domains/booking/model"
	"trekking/shared/money"
)

const placeholder = "-"

var unsafeFilename = regexp.MustCompile(`[^A-Za-z0-9_-]+`)

type Receipt struct {
	Filename string
	Content  []byte
}

// Render lays out the booking, its trip dates and the deposit split on one A4 page.
func Render(booking model.Booking, quote model.PriceQuote, issuedAt time.Time) (Receipt, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetTitle("Booking receipt "+booking.Ref, false)
	pdf.SetAuthor("Trek bookings", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "BOOKING RECEIPT")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 7, "Reference : "+booking.Ref)
	pdf.Ln(7)
	pdf.Cell(0, 7, "Issued    : "+issuedAt.Format("2006-01-02 15:04"))
	pdf.Ln(7)
	pdf.Cell(0, 7, "Status    : "+strings.ToUpper(string(booking.Status)))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, "Lead traveller:")
	pdf.Ln(7)

	pdf.SetFont("Helvetica", "", 12)
	name := strings.TrimSpace(strings.Join([]string{booking.Lead.Title, booking.Lead.FirstName, booking.Lead.LastName}, " "))
	pdf.Cell(0, 7, tr(fmt.Sprintf("Name  : %s", safe(name))))
	pdf.Ln(7)
	pdf.Cell(0, 7, tr(fmt.Sprintf("Email : %s", safe(booking.Lead.Email))))
	pdf.Ln(7)
	pdf.Cell(0, 7, tr(fmt.Sprintf("Phone : %s", safe(booking.Lead.Phone))))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, "Trip:")
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "", 11)
	pdf.MultiCell(0, 6, tr(safe(booking.TrekName)+" ("+safe(booking.TrekSlug)+")"), "", "", false)
	pdf.Cell(0, 6, fmt.Sprintf("Dates      : %s to %s", safe(dates.FormatDate(booking.Dates.Start)), safe(dates.FormatDate(booking.Dates.End))))
	pdf.Ln(6)

	if days, ok := dates.InclusiveDayCount(booking.Dates.Start, booking.Dates.End); ok {
		pdf.Cell(0, 6, fmt.Sprintf("Duration   : %d days", days))
		pdf.Ln(6)
	}

	pdf.Cell(0, 6, fmt.Sprintf("Travellers : %d", booking.PartySize))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "Total            : "+money.Format(quote.TotalPrice, booking.Currency))
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 7, fmt.Sprintf("Deposit (%d%%)    : %s", int(quote.DepositRate*100), money.Format(quote.InitialPayment, booking.Currency)))
	pdf.Ln(7)
	pdf.Cell(0, 7, "Due before start : "+money.Format(quote.DueAmount, booking.Currency))
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "I", 10)
	pdf.MultiCell(0, 6, "The remaining balance is payable before the trek departs. Keep this receipt for your records.", "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return Receipt{}, fmt.Errorf("failed to render receipt: %w", err)
	}

	return Receipt{
		Filename: fmt.Sprintf("RECEIPT_%s.pdf", unsafeFilename.ReplaceAllString(booking.Ref, "_")),
		Content:  buf.Bytes(),
	}, nil
}

func safe(value string) string {
	if strings.TrimSpace(value) == "" {
		return placeholder
	}

	return value
}
