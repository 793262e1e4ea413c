package library

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"gopkg.in/yaml.v3"

	"github.com/kishan-gau/recruitiq-sub007/pkg/formula/ast"
	"github.com/kishan-gau/recruitiq-sub007/pkg/formula/codec"
	"github.com/kishan-gau/recruitiq-sub007/pkg/formula/engine"
)

// DefaultMaxFileSize is the largest catalog file accepted.
const DefaultMaxFileSize = 1 << 20

var (
	formulaNamePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)
	yamlLinePattern    = regexp.MustCompile(`line (\d+)`)
)

// LoaderConfig contains configuration for the Loader.
type LoaderConfig struct {
	// MaxFileSize is the largest catalog file accepted, in bytes.
	MaxFileSize int64

	// Extensions are the catalog file extensions considered in directories.
	Extensions []string

	// SkipHidden skips files and directories starting with a dot.
	SkipHidden bool
}

// DefaultLoaderConfig returns the default loader configuration.
func DefaultLoaderConfig() *LoaderConfig {
	return &LoaderConfig{
		MaxFileSize: DefaultMaxFileSize,
		Extensions:  []string{".yaml", ".yml"},
		SkipHidden:  true,
	}
}

// Loader reads catalogs and compiles their formulas with an engine.
type Loader struct {
	config *LoaderConfig
	engine *engine.Engine
}

// NewLoader creates a loader. A nil config selects DefaultLoaderConfig.
func NewLoader(eng *engine.Engine, config *LoaderConfig) *Loader {
	if config == nil {
		config = DefaultLoaderConfig()
	}
	return &Loader{config: config, engine: eng}
}

// Load reads a catalog file or every catalog under a directory. Problems
// with individual files are collected in an *ErrorList while the remaining
// files are still loaded, so a non-nil Library may accompany an error.
// Formulas that fail to parse or validate are not errors; they are reported
// through Formula.Valid.
func (l *Loader) Load(path string) (*Library, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, statError(path, err)
	}

	if !info.IsDir() {
		cat, err := l.readCatalog(path)
		if err != nil {
			return nil, err
		}
		return l.build([]*Catalog{cat})
	}

	files, err := l.collectFiles(path)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, &LoadError{FilePath: path, Message: "no catalog files found in directory"}
	}

	errList := &ErrorList{}
	var catalogs []*Catalog
	for _, file := range files {
		cat, err := l.readCatalog(file)
		if err != nil {
			errList.Add(err)
			continue
		}
		catalogs = append(catalogs, cat)
	}

	if len(catalogs) == 0 {
		return nil, errList.ToError()
	}

	lib, err := l.build(catalogs)
	errList.Add(err)
	return lib, errList.ToError()
}

// Files lists the catalog files Load would read for path, in load order.
func (l *Loader) Files(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, statError(path, err)
	}
	if !info.IsDir() {
		return []string{path}, nil
	}
	return l.collectFiles(path)
}

// LoadBytes decodes a single catalog held in memory. source names the
// catalog in errors.
func (l *Loader) LoadBytes(data []byte, source string) (*Library, error) {
	cat, err := l.decode(data, source)
	if err != nil {
		return nil, err
	}
	return l.build([]*Catalog{cat})
}

// readCatalog checks and decodes one catalog file.
func (l *Loader) readCatalog(path string) (*Catalog, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, statError(path, err)
	}

	if !info.Mode().IsRegular() {
		return nil, &LoadError{FilePath: path, Message: "not a regular file"}
	}

	if info.Size() > l.config.MaxFileSize {
		return nil, &LoadError{
			FilePath: path,
			Message:  fmt.Sprintf("file size %d bytes exceeds maximum %d bytes", info.Size(), l.config.MaxFileSize),
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{FilePath: path, Message: "failed to read file", Cause: err}
	}

	return l.decode(data, path)
}

// decode parses catalog YAML and checks its structure.
func (l *Loader) decode(data []byte, source string) (*Catalog, error) {
	if !utf8.Valid(data) {
		return nil, &LoadError{FilePath: source, Message: "file contains invalid UTF-8 encoding"}
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var cat Catalog
	if err := dec.Decode(&cat); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, &ParseError{FilePath: source, Message: "catalog is empty"}
		}
		return nil, &ParseError{
			FilePath: source,
			Line:     yamlLine(err),
			Message:  "YAML parsing failed",
			Cause:    err,
		}
	}
	cat.SourceFile = source

	if err := checkCatalog(&cat); err != nil {
		return nil, err
	}
	return &cat, nil
}

// checkCatalog reports structural problems in a decoded catalog.
func checkCatalog(cat *Catalog) error {
	errList := &ErrorList{}
	fail := func(formula, field, format string, args ...any) {
		errList.Add(&CatalogError{
			FilePath: cat.SourceFile,
			Formula:  formula,
			Field:    field,
			Message:  fmt.Sprintf(format, args...),
		})
	}

	if strings.TrimSpace(cat.Name) == "" {
		fail("", "name", "catalog name is required")
	}
	if len(cat.Formulas) == 0 {
		fail("", "formulas", "catalog defines no formulas")
	}

	seen := make(map[string]bool, len(cat.Formulas))
	for i, f := range cat.Formulas {
		field := fmt.Sprintf("formulas[%d]", i)

		switch {
		case f.Name == "":
			fail("", field+".name", "formula name is required")
		case !formulaNamePattern.MatchString(f.Name):
			fail(f.Name, field+".name", "formula name must be an identifier")
		case seen[f.Name]:
			fail(f.Name, field+".name", "duplicate formula name")
		}
		seen[f.Name] = true

		if strings.TrimSpace(f.Expression) == "" {
			fail(f.Name, field+".expression", "expression is required")
		}

		for j, tc := range f.Tests {
			tfield := fmt.Sprintf("%s.tests[%d]", field, j)
			if tc.Expect == nil && tc.ExpectError == "" {
				fail(f.Name, tfield, "test needs expect or expect_error")
			}
			if tc.Expect != nil && tc.ExpectError != "" {
				fail(f.Name, tfield, "test cannot set both expect and expect_error")
			}
		}
	}

	return errList.ToError()
}

// build compiles every formula of the catalogs. Formula names must be
// unique across catalogs; later duplicates are dropped with an error.
func (l *Loader) build(catalogs []*Catalog) (*Library, error) {
	lib := &Library{Catalogs: catalogs}
	errList := &ErrorList{}
	owners := make(map[string]string)

	for _, cat := range catalogs {
		for i := range cat.Formulas {
			spec := &cat.Formulas[i]
			if owner, ok := owners[spec.Name]; ok {
				errList.Add(&CatalogError{
					FilePath: cat.SourceFile,
					Formula:  spec.Name,
					Message:  fmt.Sprintf("duplicate formula name (also defined in %q)", owner),
				})
				continue
			}
			owners[spec.Name] = cat.SourceFile
			lib.Formulas = append(lib.Formulas, l.compile(cat, spec))
		}
	}

	return lib, errList.ToError()
}

// compile parses and validates one formula.
func (l *Loader) compile(cat *Catalog, spec *FormulaSpec) *Formula {
	f := &Formula{
		Name:        spec.Name,
		Description: spec.Description,
		Expression:  spec.Expression,
		Tests:       spec.Tests,
		Catalog:     cat.Name,
		Version:     cat.Version,
		SourceFile:  cat.SourceFile,
	}

	tree, err := l.engine.Parse(spec.Expression)
	if err != nil {
		f.ParseErr = err
		return f
	}
	f.Tree = tree
	f.Variables = ast.Variables(tree)

	res, err := l.engine.Validate(tree, nil)
	if err != nil {
		f.ParseErr = err
		return f
	}
	f.Validation = res

	if res.Valid {
		if f.JSON, err = codec.ToJSON(tree); err != nil {
			f.ParseErr = err
		}
	}
	return f
}

// collectFiles returns the catalog files under dir in lexical order.
func (l *Loader) collectFiles(dir string) ([]string, error) {
	var files []string

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if l.config.SkipHidden && strings.HasPrefix(d.Name(), ".") && path != dir {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if d.IsDir() || !l.hasValidExtension(path) {
			return nil
		}

		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, &LoadError{FilePath: dir, Message: "failed to walk directory", Cause: err}
	}

	return files, nil
}

// hasValidExtension checks if the file has a catalog file extension.
func (l *Loader) hasValidExtension(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, validExt := range l.config.Extensions {
		if ext == strings.ToLower(validExt) {
			return true
		}
	}
	return false
}

func statError(path string, err error) error {
	switch {
	case os.IsNotExist(err):
		return &LoadError{FilePath: path, Message: "file not found", Cause: err}
	case os.IsPermission(err):
		return &LoadError{FilePath: path, Message: "permission denied", Cause: err}
	default:
		return &LoadError{FilePath: path, Message: "failed to access file", Cause: err}
	}
}

// yamlLine extracts the line number yaml.v3 embeds in its messages.
func yamlLine(err error) int {
	m := yamlLinePattern.FindStringSubmatch(err.Error())
	if m == nil {
		return 0
	}
	n, _ := strconv.Atoi(m[1])
	return n
}

// Load reads catalogs from path with a default loader.
func Load(eng *engine.Engine, path string) (*Library, error) {
	return NewLoader(eng, nil).Load(path)
}

// LoadBytes decodes a catalog from memory with a default loader.
func LoadBytes(eng *engine.Engine, data []byte, source string) (*Library, error) {
	return NewLoader(eng, nil).LoadBytes(data, source)
}
