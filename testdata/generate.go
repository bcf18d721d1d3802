// Command generate writes the binary sample tables into sample_data/.
//
//	go run ./testdata/generate.go
package main

import (
	"encoding/csv"
	"log"
	"os"
	"path/filepath"
	"strconv"

	"github.com/klauspost/compress/gzip"
	"github.com/segmentio/parquet-go"
)

type Event struct {
	ID       int64   `parquet:"id"`
	User     string  `parquet:"user"`
	Kind     string  `parquet:"kind"`
	Duration float64 `parquet:"duration"`
	Success  bool    `parquet:"success"`
}

var events = []Event{
	{ID: 1, User: "Ann", Kind: "login", Duration: 0.4, Success: true},
	{ID: 2, User: "Bob", Kind: "login", Duration: 2.1, Success: false},
	{ID: 3, User: "Ann", Kind: "upload", Duration: 12.75, Success: true},
	{ID: 4, User: "Cid", Kind: "search", Duration: 0.9, Success: true},
	{ID: 5, User: "Eve", Kind: "upload", Duration: 30, Success: false},
}

func main() {
	dir := "sample_data"
	if len(os.Args) > 1 {
		dir = os.Args[1]
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		log.Fatal(err)
	}

	if err := writeParquet(filepath.Join(dir, "events.parquet")); err != nil {
		log.Fatal(err)
	}
	if err := writeGzipCSV(filepath.Join(dir, "events_log.csv.gz")); err != nil {
		log.Fatal(err)
	}

	log.Printf("Generated events.parquet and events_log.csv.gz with %d events in %s", len(events), dir)
}

func writeParquet(path string) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := parquet.NewGenericWriter[Event](file)
	if _, err := writer.Write(events); err != nil {
		return err
	}
	return writer.Close()
}

func writeGzipCSV(path string) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	gz := gzip.NewWriter(file)
	w := csv.NewWriter(gz)
	_ = w.Write([]string{"id", "user", "kind", "duration", "success"})
	for _, e := range events {
		_ = w.Write([]string{
			strconv.FormatInt(e.ID, 10),
			e.User,
			e.Kind,
			strconv.FormatFloat(e.Duration, 'f', -1, 64),
			strconv.FormatBool(e.Success),
		})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}
	return gz.Close()
}
