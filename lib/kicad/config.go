package kicad

import (
	vlib "github.com/mcuadros/go-version"

	"github.com/nilskiefer/kicad-jlcimport/internal/logger"
)

const generatorName = "kicad-jlcimport"

/*
	FormatVersion selects which generation of the KiCad file formats the
	writers emit. The generations share almost all structure; what
	differs is tabulated here so a new generation is one more row.
*/
type FormatVersion int

const (
	V8 FormatVersion = iota
	V9
)

type formatConfig struct {
	FootprintStamp   int
	SymbolStamp      int
	GeneratorVersion string // empty when the format predates generator_version
	EmbeddedFonts    bool
}

var formats = map[FormatVersion]formatConfig{
	V8: {FootprintStamp: 20240108, SymbolStamp: 20231120},
	V9: {FootprintStamp: 20241229, SymbolStamp: 20241209, GeneratorVersion: "9.0", EmbeddedFonts: true},
}

func (v FormatVersion) config() formatConfig {
	if cfg, ok := formats[v]; ok {
		return cfg
	}

	return formats[V9]
}

func (v FormatVersion) String() string {
	if v == V8 {
		return "8"
	}

	return "9"
}

/*
	FromKicadVersion maps a user-supplied KiCad version string to the
	format generation, defaulting to the current one.
*/
func FromKicadVersion(version string) FormatVersion {
	if version == "" {
		return V9
	}

	if vlib.CompareSimple(vlib.Normalize(version), "9") >= 0 {
		return V9
	}

	if vlib.CompareSimple(vlib.Normalize(version), "8") < 0 {
		logger.Warn("KiCad %s predates the supported formats, writing the KiCad 8 format", version)
	}

	return V8
}
