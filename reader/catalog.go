package reader

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/vegasq/csvsql/query"
)

// Table file extensions, without the leading dot
const (
	extCSV       = "csv"
	extTSV       = "tsv"
	extCSVGzip   = "csv.gz"
	extCSVZstd   = "csv.zst"
	extCSVLZ4    = "csv.lz4"
	extCSVBrotli = "csv.br"
	extParquet   = "parquet"
)

// extensions lists the files tried, in order, for a table named without one
var extensions = []string{extCSV, extTSV, extCSVGzip, extCSVZstd, extCSVLZ4, extCSVBrotli, extParquet}

// maxPartitionFiles limits how many files a directory table may hold
const maxPartitionFiles = 1000

// Catalog resolves table names to files in a directory.
//
// A table t is read from the first of t.csv, t.tsv, t.csv.gz, t.csv.zst,
// t.csv.lz4, t.csv.br or t.parquet that exists; failing those, a directory t/
// is read as the concatenation of its *.csv files. A statement that names an
// extension (FROM t.tsv) only matches that file.
//
// Catalog is read-only and safe for concurrent use.
type Catalog struct {
	Dir      string
	Encoding string       // character encoding of text files; "" means UTF-8
	Logger   *slog.Logger // nil disables logging
}

// NewCatalog creates a catalog over dir
func NewCatalog(dir string) *Catalog {
	return &Catalog{Dir: dir}
}

// Location is a resolved table file
type Location struct {
	Path      string
	Extension string // one of the supported extensions; "" for a directory
	Dir       bool
}

// Resolve finds the file backing ref. The error wraps query.ErrTableNotFound
// when no candidate exists.
func (c *Catalog) Resolve(ref query.TableRef) (Location, error) {
	if ref.Extension != "" {
		path := c.path(ref.Name + "." + ref.Extension)
		if isFile(path) {
			return Location{Path: path, Extension: ref.Extension}, nil
		}
		return Location{}, fmt.Errorf("%w: %s", query.ErrTableNotFound, path)
	}

	for _, ext := range extensions {
		path := c.path(ref.Name + "." + ext)
		if isFile(path) {
			return Location{Path: path, Extension: ext}, nil
		}
	}

	dir := c.path(ref.Name)
	if info, err := os.Stat(dir); err == nil && info.IsDir() {
		return Location{Path: dir, Dir: true}, nil
	}

	return Location{}, fmt.Errorf("%w: %s", query.ErrTableNotFound, c.path(ref.Name+"."+extCSV))
}

// Load implements query.Source
func (c *Catalog) Load(ref query.TableRef) (*query.Table, error) {
	loc, err := c.Resolve(ref)
	if err != nil {
		return nil, err
	}

	c.logger().Debug("loading table", "table", ref.Name, "path", loc.Path)

	if loc.Dir {
		return c.readPartitions(ref.Name, loc.Path)
	}
	return c.readFile(ref.Name, loc)
}

// Tables lists the table names available in the catalog directory
func (c *Catalog) Tables() ([]string, error) {
	entries, err := os.ReadDir(c.Dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", c.Dir, err)
	}

	seen := make(map[string]bool)
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() {
			seen[name] = true
			continue
		}
		lower := strings.ToLower(name)
		for _, ext := range extensions {
			if strings.HasSuffix(lower, "."+ext) {
				seen[name[:len(name)-len(ext)-1]] = true
				break
			}
		}
	}

	tables := make([]string, 0, len(seen))
	for name := range seen {
		tables = append(tables, name)
	}
	sort.Strings(tables)
	return tables, nil
}

func (c *Catalog) readFile(name string, loc Location) (*query.Table, error) {
	if loc.Extension == extParquet {
		r, err := NewParquetReader(loc.Path)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", loc.Path, err)
		}
		defer func() { _ = r.Close() }()
		return r.ReadAll(name)
	}

	f, err := os.Open(loc.Path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", query.ErrTableNotFound, loc.Path)
		}
		return nil, fmt.Errorf("failed to open %s: %w", loc.Path, err)
	}
	defer func() { _ = f.Close() }()

	r, err := decompress(loc.Extension, f)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", loc.Path, err)
	}
	defer func() { _ = r.Close() }()

	delim := ','
	if loc.Extension == extTSV {
		delim = '\t'
	}

	table, err := ReadCSV(r, CSVOptions{
		Name:      name,
		Delimiter: delim,
		Encoding:  c.Encoding,
		Logger:    c.logger(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", loc.Path, err)
	}
	return table, nil
}

// readPartitions concatenates the *.csv files of a directory. Every file
// must have the same header.
func (c *Catalog) readPartitions(name, dir string) (*query.Table, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "*."+extCSV))
	if err != nil {
		return nil, fmt.Errorf("invalid glob pattern: %w", err)
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("%w: no .%s files in %s", query.ErrTableNotFound, extCSV, dir)
	}
	if len(matches) > maxPartitionFiles {
		return nil, fmt.Errorf("directory %s holds too many files (%d), maximum is %d", dir, len(matches), maxPartitionFiles)
	}

	var table *query.Table
	for _, path := range matches {
		part, err := c.readFile(name, Location{Path: path, Extension: extCSV})
		if err != nil {
			return nil, err
		}
		if table == nil {
			table = part
			continue
		}
		if !sameColumns(table.Columns, part.Columns) {
			return nil, fmt.Errorf("header of %s (%s) does not match %s (%s)",
				path, strings.Join(part.Columns, ","), matches[0], strings.Join(table.Columns, ","))
		}
		table.Rows = append(table.Rows, part.Rows...)
	}

	return table, nil
}

func (c *Catalog) path(file string) string {
	return filepath.Join(c.Dir, file)
}

func (c *Catalog) logger() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return slog.New(slog.DiscardHandler)
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func sameColumns(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
