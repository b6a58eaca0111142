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
	"os"
	"strings"

	"github.com/mholt/archiver"
	"github.com/spf13/cobra"

	"github.com/nilskiefer/kicad-jlcimport/lib/library"
)

var (
	bomFile string
	zipFile string
)

// exportCmd represents the export command
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the imported parts list or the library files.",
	Long: `Export what has been imported so far.

	Example:
		- jlcimport export --bom parts.xlsx : parts list as a spreadsheet
		- jlcimport export --bom parts.csv  : parts list as CSV
		- jlcimport export --zip lib.zip    : archive of the KiCad library`,
	Run: func(cmd *cobra.Command, args []string) {
		if bomFile == "" && zipFile == "" {
			fmt.Println("nothing to do; pass --bom or --zip")
			return
		}

		if bomFile != "" {
			lib, err := openLibrary()
			if err != nil {
				fmt.Printf("failed to open component cache: %s\n", err)
				return
			}
			defer lib.Close()

			records := []*library.Record{}
			err = lib.Each(func(record *library.Record) error {
				records = append(records, record)
				return nil
			})
			if err != nil {
				fmt.Printf("failed to read component cache: %s\n", err)
				return
			}

			if strings.HasSuffix(strings.ToLower(bomFile), ".csv") {
				err = library.WriteBOMCSV(bomFile, records)
			} else {
				err = library.WriteBOMXLSX(bomFile, records)
			}
			if err != nil {
				fmt.Printf("failed to write parts list: %s\n", err)
				return
			}

			fmt.Printf("wrote %d parts to %s\n", len(records), bomFile)
		}

		if zipFile != "" {
			exporter := newExporter()

			sources := []string{}
			for _, path := range []string{
				exporter.PrettyDir(),
				exporter.ShapesDir(),
				exporter.SymbolLibrary(),
			} {
				if _, err := os.Stat(path); err == nil {
					sources = append(sources, path)
				}
			}

			if len(sources) == 0 {
				fmt.Println("no library files to archive; import something first")
				return
			}

			if err := archiver.Archive(sources, zipFile); err != nil {
				fmt.Printf("failed to write archive: %s\n", err)
				return
			}

			fmt.Printf("wrote %s\n", zipFile)
		}
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringVar(&bomFile, "bom", "", "parts list to write (.xlsx or .csv)")
	exportCmd.Flags().StringVar(&zipFile, "zip", "", "archive of the library files to write")
}
