package kicad

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	vlib "github.com/mcuadros/go-version"

	"github.com/nilskiefer/kicad-jlcimport/internal/logger"
	"github.com/nilskiefer/kicad-jlcimport/lib/easyeda"
	"github.com/nilskiefer/kicad-jlcimport/lib/kicad/sexpr"
)

/*
	Exporter maintains one KiCad library on disk: a <name>.pretty folder
	of footprints, a <name>.3dshapes folder of VRML meshes, and a
	<name>.kicad_sym symbol library that grows one symbol per import.
*/
type Exporter struct {
	root    string
	name    string
	version FormatVersion
}

func NewExporter(root, name string, version FormatVersion) *Exporter {
	return &Exporter{
		root:    root,
		name:    name,
		version: version,
	}
}

func (e *Exporter) PrettyDir() string {
	return filepath.Join(e.root, e.name+".pretty")
}

func (e *Exporter) ShapesDir() string {
	return filepath.Join(e.root, e.name+".3dshapes")
}

func (e *Exporter) SymbolLibrary() string {
	return filepath.Join(e.root, e.name+".kicad_sym")
}

var unsafeNameChars = regexp.MustCompile(`[ /\\:"'<>*?|]+`)

/*
	SanitizeName makes a component name safe to use as a file name and
	a library identifier.
*/
func SanitizeName(name string) string {
	name = unsafeNameChars.ReplaceAllString(strings.TrimSpace(name), "_")
	name = strings.Trim(name, "_")
	if name == "" {
		name = "unnamed"
	}

	return name
}

func exists(path string) bool {
	if _, err := os.Stat(path); err == nil {
		return true
	} else if os.IsNotExist(err) {
		return false
	}

	return true
}

/*
	ExportFootprint writes <name>.kicad_mod into the .pretty folder,
	converting and writing the 3D mesh alongside it when one is loaded.
	Returns the footprint file path.
*/
func (e *Exporter) ExportFootprint(fp *easyeda.Footprint) (string, error) {
	if err := os.MkdirAll(e.PrettyDir(), 0755); err != nil {
		return "", fmt.Errorf("creating %s: %w", e.PrettyDir(), err)
	}

	name := SanitizeName(fp.Name)

	modelPath := ""
	if fp.Model != nil && fp.Model.RawOBJ != "" {
		vrml, err := OBJToVRML(fp.Model.RawOBJ)
		if err != nil {
			logger.Warn("skipping 3D model for %s: %v", fp.Name, err)
		} else {
			if err := os.MkdirAll(e.ShapesDir(), 0755); err != nil {
				return "", fmt.Errorf("creating %s: %w", e.ShapesDir(), err)
			}

			wrl := filepath.Join(e.ShapesDir(), name+".wrl")
			if err := os.WriteFile(wrl, []byte(vrml), 0644); err != nil {
				return "", fmt.Errorf("writing %s: %w", wrl, err)
			}

			modelPath = "${KIPRJMOD}/" + e.name + ".3dshapes/" + name + ".wrl"
			logger.Info("wrote %s", wrl)
		}
	}

	path := filepath.Join(e.PrettyDir(), name+".kicad_mod")
	text := WriteFootprint(fp, modelPath, e.version)
	if err := os.WriteFile(path, []byte(text), 0644); err != nil {
		return "", fmt.Errorf("writing %s: %w", path, err)
	}

	logger.Info("wrote %s", path)
	return path, nil
}

/*
	ExportSymbol adds the symbol to <name>.kicad_sym, creating the
	library on first use. An existing symbol with the same name is
	replaced, so re-importing a part updates it in place.
*/
func (e *Exporter) ExportSymbol(sym *easyeda.Symbol) (string, error) {
	if err := os.MkdirAll(e.root, 0755); err != nil {
		return "", fmt.Errorf("creating %s: %w", e.root, err)
	}

	path := e.SymbolLibrary()
	fragment := WriteSymbol(sym)

	if !exists(path) {
		text := WriteSymbolLibrary([]string{fragment}, e.version)
		if err := os.WriteFile(path, []byte(text), 0644); err != nil {
			return "", fmt.Errorf("writing %s: %w", path, err)
		}

		logger.Info("wrote %s", path)
		return path, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}

	text := removeSymbolBlock(string(raw), sym.Name)

	closer := strings.LastIndex(text, ")")
	if closer < 0 {
		return "", fmt.Errorf("%s is not a symbol library", path)
	}

	text = text[:closer] + fragment + text[closer:]
	if err := os.WriteFile(path, []byte(text), 0644); err != nil {
		return "", fmt.Errorf("writing %s: %w", path, err)
	}

	logger.Info("wrote %s", path)
	return path, nil
}

/*
	Cut the top-level block for one symbol out of library text. The
	marker includes the closing quote, so a symbol never matches the
	unit sub-symbols derived from its name.
*/
func removeSymbolBlock(text, name string) string {
	marker := `(symbol "` + name + `"`

	start := strings.Index(text, marker)
	if start < 0 {
		return text
	}

	// take the indentation before the marker along with the block
	lineStart := strings.LastIndexByte(text[:start], '\n') + 1

	depth := 0
	inString := false
	end := start
	for i := start; i < len(text); i++ {
		c := text[i]
		switch {
		case inString:
			if c == '\\' {
				i++
			} else if c == '"' {
				inString = false
			}
		case c == '"':
			inString = true
		case c == '(':
			depth++
		case c == ')':
			depth--
			if depth == 0 {
				end = i + 1
				if end < len(text) && text[end] == '\n' {
					end++
				}
				return text[:lineStart] + text[end:]
			}
		}
	}

	// unbalanced text, leave it alone
	return text
}

var libTables = []struct {
	file string
	head string
	leaf string
}{
	{"sym-lib-table", "sym_lib_table", ".kicad_sym"},
	{"fp-lib-table", "fp_lib_table", ".pretty"},
}

/*
	RegisterTables adds the exported library to the sym-lib-table and
	fp-lib-table in a project directory, so KiCad picks the parts up
	without manual configuration. Tables that already carry the entry
	are left untouched.
*/
func (e *Exporter) RegisterTables(dir string) error {
	for _, table := range libTables {
		path := filepath.Join(dir, table.file)
		entry := fmt.Sprintf("  (lib (name %s)(type %s)(uri %s)(options %s)(descr %s))\n",
			quote(e.name), quote("KiCad"),
			quote("${KIPRJMOD}/"+e.name+table.leaf),
			quote(""), quote("LCSC parts imported by jlcimport"))

		if !exists(path) {
			text := fmt.Sprintf("(%s\n  (version 7)\n%s)\n", table.head, entry)
			if err := os.WriteFile(path, []byte(text), 0644); err != nil {
				return fmt.Errorf("writing %s: %w", path, err)
			}

			logger.Info("created %s", path)
			continue
		}

		raw, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}

		root, err := sexpr.ParseOne(string(raw))
		if err != nil {
			return fmt.Errorf("parsing %s: %w", path, err)
		}
		if root.Head() != table.head {
			return fmt.Errorf("%s is not a %s document", path, table.head)
		}

		registered := false
		for _, lib := range root.FindAll("lib") {
			if name := lib.Find("name"); name != nil && name.Arg(0) == e.name {
				registered = true
				break
			}
		}
		if registered {
			continue
		}

		text := string(raw)
		closer := strings.LastIndex(text, ")")
		if closer < 0 {
			return fmt.Errorf("%s has no closing paren", path)
		}

		text = text[:closer] + entry + text[closer:]
		if err := os.WriteFile(path, []byte(text), 0644); err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}

		logger.Info("registered %s in %s", e.name, path)
	}

	return nil
}

var versionDirRe = regexp.MustCompile(`^\d+(\.\d+)*$`)

/*
	DetectInstalledVersion looks for the newest KiCad settings folder
	under the user configuration directory. KiCad keeps one folder per
	major release, named for the version. Returns "" when none exists.
*/
func DetectInstalledVersion() string {
	confDir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}

	entries, err := os.ReadDir(filepath.Join(confDir, "kicad"))
	if err != nil {
		return ""
	}

	latest := ""
	for _, e := range entries {
		if !e.IsDir() || !versionDirRe.MatchString(e.Name()) {
			continue
		}

		if latest == "" || vlib.CompareSimple(latest, e.Name()) == -1 {
			latest = e.Name()
		}
	}

	return latest
}
