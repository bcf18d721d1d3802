package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/vegasq/csvsql/internal/config"
	"github.com/vegasq/csvsql/internal/logger"
	"github.com/vegasq/csvsql/output"
	"github.com/vegasq/csvsql/query"
	"github.com/vegasq/csvsql/reader"
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Run SQL SELECT statements over CSV files in a directory.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s -d sample_data\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -d sample_data -q \"SELECT name FROM people WHERE age > 30;\"\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -d sample_data -f csv -q \"SELECT * FROM people.csv\"\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -d sample_data -schema people\n", os.Args[0])
	}

	cfg, err := config.Load(flag.CommandLine, os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n\n", err)
		flag.Usage()
		os.Exit(2)
	}

	os.Exit(run(cfg, os.Stdin, os.Stdout, os.Stderr))
}

// run executes one invocation and returns the process exit code
func run(cfg config.Config, stdin io.Reader, stdout, stderr io.Writer) int {
	level, _ := logger.ParseLevel(cfg.LogLevel)
	log, closeLog, err := logger.New(stderr, level, cfg.LogFile)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	defer func() { _ = closeLog() }()

	sess, err := newSession(cfg, log, stdout, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	switch {
	case cfg.Schema != "":
		if err := sess.describe(cfg.Schema); err != nil {
			sess.reportError(err)
			return 1
		}
		return 0
	case cfg.Query != "":
		if err := sess.execute(cfg.Query); err != nil {
			sess.reportError(err)
			return 1
		}
		return 0
	default:
		return runREPL(sess, stdin)
	}
}

// session wires the parser, executor, data source and formatter together
type session struct {
	catalog   *reader.Catalog
	executor  *query.Executor
	formatter output.Formatter
	log       *slog.Logger
	out       io.Writer
	errOut    io.Writer
}

func newSession(cfg config.Config, log *slog.Logger, stdout, stderr io.Writer) (*session, error) {
	collator, err := query.CollatorFor(cfg.Collation)
	if err != nil {
		return nil, err
	}

	formatter, err := output.New(cfg.Format, stdout)
	if err != nil {
		return nil, err
	}
	if tf, ok := formatter.(*output.TableFormatter); ok {
		tf.SetMaxWidth(cfg.MaxWidth)
	}

	catalog := &reader.Catalog{
		Dir:      cfg.DataDir,
		Encoding: cfg.Encoding,
		Logger:   log.With("component", "reader"),
	}

	return &session{
		catalog: catalog,
		executor: &query.Executor{
			Source:   catalog,
			Collator: collator,
			Logger:   log.With("component", "executor"),
		},
		formatter: formatter,
		log:       log,
		out:       stdout,
		errOut:    stderr,
	}, nil
}

// execute parses, runs and prints one statement
func (s *session) execute(statement string) error {
	q, err := query.Parse(statement)
	if err != nil {
		return err
	}

	rs, err := s.executor.Execute(q)
	if err != nil {
		return err
	}

	return s.formatter.Format(rs)
}

// describe prints the columns of a table
func (s *session) describe(table string) error {
	name, ext, err := query.SplitTableName(table)
	if err != nil {
		return err
	}

	infos, err := s.catalog.Describe(query.TableRef{Name: name, Extension: ext})
	if err != nil {
		return &query.ExecutionError{Msg: err.Error(), Err: err}
	}

	header := []string{"name", "type", "nulls"}
	rs := &query.RowSet{Columns: header}
	for _, info := range infos {
		rs.Rows = append(rs.Rows, query.NewRow(header, []query.Value{
			query.Text(info.Name),
			query.Text(info.Type),
			query.Integer(int64(info.Nulls)),
		}))
	}
	return s.formatter.Format(rs)
}

// reportError prints err under its user-facing category
func (s *session) reportError(err error) {
	var pe *query.ParseError
	var ee *query.ExecutionError
	switch {
	case errors.As(err, &pe):
		fmt.Fprintf(s.errOut, "SQL parse error: %v\n", pe)
	case errors.As(err, &ee):
		fmt.Fprintf(s.errOut, "Execution error: %v\n", ee)
	default:
		fmt.Fprintf(s.errOut, "Error: %v\n", err)
	}
}
