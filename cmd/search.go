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

	"github.com/c-bata/go-prompt"
	"github.com/spf13/cobra"

	"github.com/nilskiefer/kicad-jlcimport/lib/library"
)

var (
	cached bool
	pick   bool
)

// searchCmd represents the search command
var searchCmd = &cobra.Command{
	Use:   "search <keyword>...",
	Short: "Search for parts and optionally import one.",
	Long: `Search the JLCPCB assembly catalog by keyword, or with --cached the
parts already in the local cache. With --pick, choose one of the
results interactively and import it right away.`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		keyword := strings.Join(args, " ")

		// one handle for both the cached search and the pick import;
		// the cache DB does not allow a second open
		var lib *library.Library
		if cached || pick {
			var err error
			lib, err = openLibrary()
			if err != nil {
				fmt.Printf("failed to open component cache: %s\n", err)
				return
			}
			defer lib.Close()
		}

		suggestions := []prompt.Suggest{}
		if cached {
			records, err := lib.Search(keyword, 25)
			if err != nil {
				fmt.Printf("search failed: %s\n", err)
				return
			}

			for _, record := range records {
				fmt.Printf("%-10s %-24s %-16s %s\n", record.LCSC, record.MFRPart, record.Package, record.Description)
				suggestions = append(suggestions, prompt.Suggest{
					Text:        record.LCSC,
					Description: record.MFRPart + " " + record.Package,
				})
			}
		} else {
			client := newClient()
			results, err := client.SearchParts(cmd.Context(), keyword)
			if err != nil {
				fmt.Printf("search failed: %s\n", err)
				return
			}

			for _, result := range results {
				tag := ""
				if result.LibraryType == "base" {
					tag = " [basic]"
				}
				fmt.Printf("%-10s %-24s %-16s %s%s\n", result.LCSC, result.MFRPart, result.Package, result.Description, tag)
				suggestions = append(suggestions, prompt.Suggest{
					Text:        result.LCSC,
					Description: result.MFRPart + " " + result.Package,
				})
			}
		}

		if len(suggestions) == 0 {
			fmt.Println("no matches")
			return
		}

		if !pick {
			return
		}

		fmt.Println("Part to import (empty to skip):")
		id := prompt.Input("> ", func(d prompt.Document) []prompt.Suggest {
			return prompt.FilterHasPrefix(suggestions, d.GetWordBeforeCursor(), true)
		})
		if strings.TrimSpace(id) == "" {
			return
		}

		if err := importPart(cmd.Context(), newClient(), lib, newExporter(), id); err != nil {
			fmt.Printf("failed to import %s: %s\n", id, err)
		}
	},
}

func init() {
	rootCmd.AddCommand(searchCmd)

	searchCmd.Flags().BoolVar(&cached, "cached", false, "search the local cache instead of the catalog")
	searchCmd.Flags().BoolVar(&pick, "pick", false, "pick one result interactively and import it")

	// Here you will define your flags and configuration settings.

	// Cobra supports Persistent Flags which will work for this command
	// and all subcommands, e.g.:
	// searchCmd.PersistentFlags().String("foo", "", "A help for foo")
}
