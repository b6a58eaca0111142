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
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/nilskiefer/kicad-jlcimport/lib/easyeda"
	"github.com/nilskiefer/kicad-jlcimport/lib/kicad"
	"github.com/nilskiefer/kicad-jlcimport/lib/library"
)

var (
	refresh       bool
	noModel       bool
	symbolOnly    bool
	footprintOnly bool
	register      bool
)

// importCmd represents the import command
var importCmd = &cobra.Command{
	Use:   "import <LCSC id> [<LCSC id>...]",
	Short: "Import LCSC parts into the KiCad library.",
	Long: `Import one or more parts by LCSC part number.

		Each part's EasyEDA document is fetched (or taken from the local
		cache), converted, and written into the configured KiCad library:
		the footprint into <lib>.pretty, the 3D model into <lib>.3dshapes,
		and the symbol into <lib>.kicad_sym.`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		lib, err := openLibrary()
		if err != nil {
			fmt.Printf("failed to open component cache: %s\n", err)
			return
		}
		defer lib.Close()

		client := newClient()
		exporter := newExporter()

		failed := 0
		for _, arg := range args {
			if err := importPart(cmd.Context(), client, lib, exporter, arg); err != nil {
				fmt.Printf("failed to import %s: %s\n", arg, err)
				failed++
			}
		}

		if register {
			if err := exporter.RegisterTables(viper.GetString("library.path")); err != nil {
				fmt.Printf("failed to register library tables: %s\n", err)
			}
		}

		if failed > 0 {
			fmt.Printf("%d of %d imports failed\n", failed, len(args))
		}
	},
}

/*
	importPart runs the whole pipeline for one part: fetch through the
	cache, parse both documents, pull the 3D mesh, and write the KiCad
	files. Shared with the search and batch commands.
*/
func importPart(ctx context.Context, client *easyeda.Client, lib *library.Library, exporter *kicad.Exporter, id string) error {
	id, err := easyeda.NormalizeLCSC(id)
	if err != nil {
		return err
	}

	record, err := lib.Get(id)
	if err != nil || refresh {
		result, err := client.Component(ctx, id)
		if err != nil {
			return err
		}

		record = &library.Record{
			LCSC:         id,
			Title:        result.Title,
			MFRPart:      result.MFRPart(),
			Package:      result.PackageDetail.Title,
			Manufacturer: result.DataStr.Head.CPara["BOM_Manufacturer"],
			Description:  result.Description,
			Datasheet:    result.SZLCSC.URL,
			Fetched:      time.Now(),
			Component:    *result,
		}

		if err := lib.Put(record); err != nil {
			return fmt.Errorf("caching %s: %w", id, err)
		}
	}

	result := &record.Component
	footprint := result.Footprint()
	symbol := result.Symbol()

	footprint.Name = kicad.SanitizeName(footprint.Name)
	symbol.Name = kicad.SanitizeName(symbol.Name)
	symbol.FootprintName = viper.GetString("library.name") + ":" + footprint.Name

	if footprint.Model != nil && !noModel {
		obj, err := lib.Model(footprint.Model.UUID)
		if err != nil || refresh {
			text, err := client.Model(ctx, footprint.Model.UUID)
			if err != nil {
				fmt.Printf("no 3D model for %s: %s\n", id, err)
			} else {
				obj = []byte(text)
				lib.PutModel(footprint.Model.UUID, obj)
			}
		}

		footprint.Model.RawOBJ = string(obj)
	}

	if !symbolOnly {
		if _, err := exporter.ExportFootprint(footprint); err != nil {
			return err
		}
	}
	if !footprintOnly {
		if _, err := exporter.ExportSymbol(symbol); err != nil {
			return err
		}
	}

	fmt.Printf("imported %s: %s (%s)\n", id, record.Title, record.Package)
	return nil
}

func init() {
	rootCmd.AddCommand(importCmd)

	importCmd.Flags().BoolVar(&refresh, "refresh", false, "fetch again even when the part is cached")
	importCmd.Flags().BoolVar(&noModel, "no-model", false, "skip the 3D model")
	importCmd.Flags().BoolVar(&symbolOnly, "symbol-only", false, "write only the symbol")
	importCmd.Flags().BoolVar(&footprintOnly, "footprint-only", false, "write only the footprint")
	importCmd.Flags().BoolVar(&register, "register", false, "register the library in the output directory's lib tables")
}
