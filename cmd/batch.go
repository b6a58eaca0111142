/*
Copyright © 2025 Nils Kiefer <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/xuri/excelize/v2"

	"github.com/nilskiefer/kicad-jlcimport/lib/easyeda"
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <file.xlsx>",
	Short: "Import every part listed in a spreadsheet.",
	Long: `Import parts in bulk from an excel sheet, for example a JLCPCB BOM.

		The first column of the first sheet must hold LCSC part numbers;
		rows that don't, like header rows, are skipped. A part that fails
		to import does not stop the rest.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		src := args[0]
		if !strings.HasSuffix(strings.ToLower(src), ".xls") &&
			!strings.HasSuffix(strings.ToLower(src), ".xlsx") {

			fmt.Println("batch file must be an excel spreadsheet")
			return
		}

		f, err := excelize.OpenFile(src)
		if err != nil {
			fmt.Printf("failed to open excel file: %s\n", src)
			return
		}
		defer f.Close()

		rows, err := f.Rows(f.GetSheetList()[0])
		if err != nil {
			fmt.Printf("failed to read sheet: %s\n", err)
			return
		}

		ids := make(chan string, 100)
		go func() {
			defer close(ids)
			for rows.Next() {
				row, err := rows.Columns()
				if err != nil || len(row) < 1 {
					continue
				}

				id, err := easyeda.NormalizeLCSC(row[0])
				if err != nil {
					// header row or free-text cell
					continue
				}

				ids <- id
			}
		}()

		lib, err := openLibrary()
		if err != nil {
			fmt.Printf("failed to open component cache: %s\n", err)
			return
		}
		defer lib.Close()

		client := newClient()
		exporter := newExporter()

		total, failed := 0, 0
		for id := range ids {
			total++
			if err := importPart(cmd.Context(), client, lib, exporter, id); err != nil {
				fmt.Printf("failed to import %s: %s\n", id, err)
				failed++
			}
		}

		fmt.Printf("imported %d of %d parts\n", total-failed, total)
	},
}

func init() {
	rootCmd.AddCommand(batchCmd)

	// Here you will define your flags and configuration settings.

	// Cobra supports local flags which will only run when this command
	// is called directly, e.g.:
	// batchCmd.Flags().BoolP("toggle", "t", false, "Help message for toggle")
}
