package export

import (
	"fmt"
	"strconv"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/jfb-hart/lead-command/internal/model"
)

// WriteLeadsXLSX writes the lead list to an XLSX workbook with the same
// columns as the CSV export.
func WriteLeadsXLSX(path string, leads []model.Lead, city string) error {
	f := xlsx.NewFile()
	sheet, err := f.AddSheet("Leads")
	if err != nil {
		return eris.Wrap(err, "export: add sheet")
	}

	header := sheet.AddRow()
	for _, col := range csvHeader {
		header.AddCell().Value = col
	}

	for i, lead := range leads {
		row := sheet.AddRow()
		row.AddCell().Value = strconv.Itoa(i + 1)
		row.AddCell().Value = lead.Name
		row.AddCell().Value = lead.Website
		row.AddCell().Value = orNotFound(lead.Email)
		row.AddCell().Value = orNotFound(lead.Phone)
		row.AddCell().Value = lead.BusinessType
		row.AddCell().Value = fmt.Sprintf("%d of 5", lead.FitRating)
		row.AddCell().Value = string(lead.PriorityTier)
		row.AddCell().Value = city
	}

	if err := f.Save(path); err != nil {
		return eris.Wrapf(err, "export: save %s", path)
	}
	return nil
}
