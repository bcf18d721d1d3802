package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime/debug"
	"strings"

	"github.com/chzyer/readline"
	"golang.org/x/term"
)

const (
	prompt      = "csvsql> "
	replBanner  = "Simple SQL engine over CSV files. Type 'exit' or 'quit' to stop, 'help' for commands."
	replSupport = "Supported SQL: SELECT <cols|*|COUNT(*)|COUNT(col)> FROM <table[.csv]> [WHERE col op value];"
)

var replHelp = []string{
	"  SELECT ... FROM <table> [WHERE col op value];   run a query",
	"  tables                                          list tables in the data directory",
	"  describe <table>                                show columns and inferred types",
	"  help                                            show this help",
	"  exit, quit                                      leave",
}

// runREPL reads statements until EOF or exit. Readline is used when stdin
// is a terminal; piped input is read line by line without prompts.
func runREPL(sess *session, stdin io.Reader) int {
	if f, ok := stdin.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		rl, err := newReadline(sess)
		if err == nil {
			defer func() { _ = rl.Close() }()
			fmt.Fprintln(sess.out, replBanner)
			fmt.Fprintln(sess.out, replSupport)
			return readlineLoop(sess, rl)
		}
		sess.log.Warn("advanced line editing unavailable", "error", err)
	}
	return scannerLoop(sess, stdin)
}

func readlineLoop(sess *session, rl *readline.Instance) int {
	for {
		line, err := rl.Readline()
		if err != nil {
			if errors.Is(err, readline.ErrInterrupt) {
				continue
			}
			fmt.Fprintln(sess.out, "bye")
			return 0
		}
		if sess.eval(line) {
			return 0
		}
	}
}

func scannerLoop(sess *session, stdin io.Reader) int {
	scanner := bufio.NewScanner(stdin)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		if sess.eval(scanner.Text()) {
			return 0
		}
	}
	if err := scanner.Err(); err != nil {
		fmt.Fprintf(sess.errOut, "Error: %v\n", err)
		return 1
	}
	return 0
}

// eval handles one input line and reports whether the loop should stop.
// A panic is reported as an unexpected error and the loop continues.
func (s *session) eval(line string) (quit bool) {
	input := strings.TrimSpace(line)
	if input == "" {
		return false
	}

	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(s.errOut, "Unexpected error: %v\n%s", r, debug.Stack())
			quit = false
		}
	}()

	command := strings.ToLower(strings.TrimSuffix(input, ";"))
	fields := strings.Fields(command)
	switch {
	case command == "exit" || command == "quit":
		fmt.Fprintln(s.out, "bye")
		return true
	case command == "help":
		fmt.Fprintln(s.out, replSupport)
		for _, l := range replHelp {
			fmt.Fprintln(s.out, l)
		}
		return false
	case command == "tables":
		s.listTables()
		return false
	case len(fields) == 2 && fields[0] == "describe":
		table := strings.TrimSuffix(strings.Fields(input)[1], ";")
		if err := s.describe(table); err != nil {
			s.reportError(err)
		}
		return false
	}

	if err := s.execute(input); err != nil {
		s.reportError(err)
	}
	return false
}

func (s *session) listTables() {
	tables, err := s.catalog.Tables()
	if err != nil {
		fmt.Fprintf(s.errOut, "Error: %v\n", err)
		return
	}
	if len(tables) == 0 {
		fmt.Fprintln(s.out, "(no tables)")
		return
	}
	for _, t := range tables {
		fmt.Fprintln(s.out, t)
	}
}

func newReadline(sess *session) (*readline.Instance, error) {
	tableNames := func(string) []string {
		tables, _ := sess.catalog.Tables()
		return tables
	}

	completer := readline.NewPrefixCompleter(
		readline.PcItem("SELECT"),
		readline.PcItem("FROM", readline.PcItemDynamic(tableNames)),
		readline.PcItem("WHERE"),
		readline.PcItem("COUNT(*)"),
		readline.PcItem("tables"),
		readline.PcItem("describe", readline.PcItemDynamic(tableNames)),
		readline.PcItem("help"),
		readline.PcItem("exit"),
		readline.PcItem("quit"),
	)

	return readline.NewEx(&readline.Config{
		Prompt:            prompt,
		HistoryFile:       historyFilePath(),
		AutoComplete:      completer,
		InterruptPrompt:   "^C",
		EOFPrompt:         "exit",
		HistorySearchFold: true,
		Stdout:            sess.out,
		Stderr:            sess.errOut,
	})
}

func historyFilePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".csvsql_history")
}
