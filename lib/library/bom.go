package library

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/xuri/excelize/v2"
)

var bomHeader = []string{
	"LCSC Part", "MFR.Part", "Package", "Manufacturer", "Description", "Datasheet",
}

func bomRow(record *Record) []string {
	return []string{
		record.LCSC,
		record.MFRPart,
		record.Package,
		record.Manufacturer,
		record.Description,
		record.Datasheet,
	}
}

/*
	WriteBOMCSV dumps the given records as a comma-separated parts
	list.
*/
func WriteBOMCSV(dst string, records []*Record) error {
	fp, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer fp.Close()

	writer := csv.NewWriter(fp)
	writer.Write(bomHeader)
	for _, record := range records {
		writer.Write(bomRow(record))
	}

	writer.Flush()
	return writer.Error()
}

const bomSheet = "Components"

/*
	WriteBOMXLSX dumps the given records as an excel parts list, one
	sheet, header row first.
*/
func WriteBOMXLSX(dst string, records []*Record) error {
	f := excelize.NewFile()
	f.NewSheet(bomSheet)
	f.DeleteSheet("Sheet1")

	header := make([]interface{}, len(bomHeader))
	for i, h := range bomHeader {
		header[i] = h
	}
	if err := f.SetSheetRow(bomSheet, "A1", &header); err != nil {
		return err
	}

	for i, record := range records {
		row := []interface{}{}
		for _, cell := range bomRow(record) {
			row = append(row, cell)
		}

		if err := f.SetSheetRow(bomSheet, "A"+strconv.Itoa(i+2), &row); err != nil {
			return err
		}
	}

	if err := f.SaveAs(dst); err != nil {
		return fmt.Errorf("saving %s: %w", dst, err)
	}

	return nil
}
