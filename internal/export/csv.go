// Package export writes lead lists and outreach messages to CSV, XLSX
// and plain-text files.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/jfb-hart/lead-command/internal/model"
)

// csvHeader is the fixed 9-column lead export header.
var csvHeader = []string{
	"Lead Number",
	"Company Name",
	"Website",
	"Email",
	"Phone",
	"Business Type",
	"JFB Fit Rating",
	"Priority Tier",
	"City Searched",
}

// WriteLeadsCSV writes the lead list in the fixed 9-column format.
// The rating is rendered "N of 5" so spreadsheet apps don't parse it as
// a date.
func WriteLeadsCSV(w io.Writer, leads []model.Lead, city string) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(csvHeader); err != nil {
		return eris.Wrap(err, "export: write CSV header")
	}

	for i, lead := range leads {
		if err := cw.Write(leadRow(i+1, lead, city)); err != nil {
			return eris.Wrap(err, "export: write CSV row")
		}
	}

	cw.Flush()
	return eris.Wrap(cw.Error(), "export: flush CSV")
}

func leadRow(number int, lead model.Lead, city string) []string {
	return []string{
		strconv.Itoa(number),
		lead.Name,
		lead.Website,
		orNotFound(lead.Email),
		orNotFound(lead.Phone),
		lead.BusinessType,
		fmt.Sprintf("%d of 5", lead.FitRating),
		string(lead.PriorityTier),
		city,
	}
}

func orNotFound(s string) string {
	if s == "" {
		return "Not found"
	}
	return s
}

// ReadLeadsCSV parses a lead CSV produced by WriteLeadsCSV back into
// leads. "Not found" placeholders map back to empty fields.
func ReadLeadsCSV(r io.Reader) ([]model.Lead, string, error) {
	cr := csv.NewReader(r)

	header, err := cr.Read()
	if err != nil {
		return nil, "", eris.Wrap(err, "export: read CSV header")
	}
	if len(header) != len(csvHeader) {
		return nil, "", eris.Errorf("export: expected %d columns, got %d", len(csvHeader), len(header))
	}

	var (
		leads []model.Lead
		city  string
	)
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, "", eris.Wrap(err, "export: read CSV row")
		}

		rating := 0
		if n, err := strconv.Atoi(strings.TrimSuffix(row[6], " of 5")); err == nil {
			rating = n
		}

		lead := model.Lead{
			Name:         row[1],
			Website:      row[2],
			Email:        notFoundToEmpty(row[3]),
			Phone:        notFoundToEmpty(row[4]),
			BusinessType: row[5],
			FitRating:    rating,
			PriorityTier: model.PriorityTier(row[7]),
			City:         row[8],
		}
		city = row[8]
		leads = append(leads, lead)
	}

	return leads, city, nil
}

func notFoundToEmpty(s string) string {
	if s == "Not found" {
		return ""
	}
	return s
}

// CSVFileName builds a filesystem-safe export name for a city.
func CSVFileName(city string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(city) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		} else {
			b.WriteRune('-')
		}
	}
	return "jfb-leads-" + b.String() + ".csv"
}
