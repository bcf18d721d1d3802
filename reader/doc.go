// Package reader loads tables for the query package from files on disk.
//
// A Catalog maps table names to files in one directory and implements
// query.Source. Supported files are:
//
//   - CSV (.csv) and tab-separated (.tsv) text with a header record
//   - compressed CSV: .csv.gz, .csv.zst, .csv.lz4 and .csv.br
//   - Apache Parquet (.parquet)
//   - a directory of .csv files with identical headers, read as one table
//
// # Basic Usage
//
//	catalog := reader.NewCatalog("sample_data")
//	table, err := catalog.Load(query.TableRef{Name: "people"})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(table.Columns, len(table.Rows))
//
// # Type Inference
//
// Text files have no schema. Each cell is trimmed and typed on its own with
// query.InferValue, so a column may hold Integer cells on some rows and Text
// on others. Parquet values keep their physical types.
//
// # Character Encodings
//
// Text files are read as UTF-8 with an optional byte order mark. Set
// Catalog.Encoding to read legacy files, for example "latin1" or
// "windows-1252"; any WHATWG encoding label is accepted.
//
// # Schema Introspection
//
//	infos, err := catalog.Describe(query.TableRef{Name: "people"})
//	for _, info := range infos {
//	    fmt.Printf("%s: %s (%d nulls)\n", info.Name, info.Type, info.Nulls)
//	}
//
// Every Load re-reads the file; nothing is cached between calls.
package reader
