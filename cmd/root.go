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
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/nilskiefer/kicad-jlcimport/internal/logger"
	"github.com/nilskiefer/kicad-jlcimport/lib/easyeda"
	"github.com/nilskiefer/kicad-jlcimport/lib/kicad"
	"github.com/nilskiefer/kicad-jlcimport/lib/library"
)

var (
	cfgFile string
	verbose bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "jlcimport",
	Short: "Import LCSC/JLCPCB parts into KiCad libraries.",
	Long: `jlcimport converts EasyEDA component documents into KiCad symbol and
footprint libraries, 3D models included.

	Example:
		- jlcimport import C25725          : import one part
		- jlcimport search "0402 10k"      : search the catalog and pick a part
		- jlcimport batch parts.xlsx       : import every part listed in a sheet
		- jlcimport export --bom bom.xlsx  : dump the imported parts list`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/jlcimport/jlcimport.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log every skipped record and request")
	rootCmd.PersistentFlags().String("output", "", "directory to write the KiCad library into")
	rootCmd.PersistentFlags().String("lib", "", "name of the KiCad library to write")
	rootCmd.PersistentFlags().String("kicad", "", "target KiCad version, 8 or 9")

	viper.BindPFlag("library.path", rootCmd.PersistentFlags().Lookup("output"))
	viper.BindPFlag("library.name", rootCmd.PersistentFlags().Lookup("lib"))
	viper.BindPFlag("kicad.version", rootCmd.PersistentFlags().Lookup("kicad"))
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if verbose {
		logger.SetLevel(logger.DEBUG)
	}

	viper.SetDefault("library.path", ".")
	viper.SetDefault("library.name", "JLCImport")
	viper.SetDefault("kicad.version", "")
	viper.SetDefault("api.base", "https://easyeda.com")
	viper.SetDefault("api.models", "https://modules.easyeda.com")
	viper.SetDefault("api.timeout", "30s")

	cache, err := os.UserCacheDir()
	if err != nil {
		cache = "."
	}
	viper.SetDefault("cache.path", filepath.Join(cache, "jlcimport"))

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		viper.SetConfigName("jlcimport")
		viper.AddConfigPath(filepath.Join(home, ".config", "jlcimport"))
		viper.AddConfigPath(".")
	}

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		logger.Debug("using config file %s", viper.ConfigFileUsed())
	}
}

func newClient() *easyeda.Client {
	timeout, err := time.ParseDuration(viper.GetString("api.timeout"))
	if err != nil || timeout <= 0 {
		timeout = 30 * time.Second
	}

	return easyeda.NewClient(viper.GetString("api.base"), viper.GetString("api.models"), timeout)
}

func openLibrary() (*library.Library, error) {
	return library.NewLibrary(viper.GetString("cache.path"))
}

func targetVersion() kicad.FormatVersion {
	version := viper.GetString("kicad.version")
	if version == "" {
		version = kicad.DetectInstalledVersion()
	}

	return kicad.FromKicadVersion(version)
}

func newExporter() *kicad.Exporter {
	return kicad.NewExporter(
		viper.GetString("library.path"),
		viper.GetString("library.name"),
		targetVersion(),
	)
}
