package query

import (
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// Executor runs parsed queries against a Source.
//
// An Executor holds no per-query state; one value may serve concurrent
// Execute calls as long as its Source allows concurrent loads.
type Executor struct {
	Source   Source
	Collator Collator     // text ordering for WHERE; nil means BinaryCollator
	Logger   *slog.Logger // nil disables logging
}

// NewExecutor creates an executor with byte-wise text ordering
func NewExecutor(src Source) *Executor {
	return &Executor{Source: src, Collator: BinaryCollator{}}
}

// Execute runs q against src with default settings
func Execute(q *Query, src Source) (*RowSet, error) {
	return NewExecutor(src).Execute(q)
}

// Execute loads the table, applies the WHERE filter, then either computes the
// COUNT aggregate or projects the select list.
//
// The returned error is always an *ExecutionError and no partial result is
// returned with it.
func (e *Executor) Execute(q *Query) (*RowSet, error) {
	if q == nil {
		return nil, execErrorf(ErrInvalidSyntax, "no query to execute")
	}
	if err := validateSelectList(q.Select); err != nil {
		return nil, err
	}

	log := e.logger().With("query_id", uuid.NewString(), "table", q.TableRef().String())
	start := time.Now()

	table, err := e.load(q.TableRef())
	if err != nil {
		log.Debug("load failed", "error", err)
		return nil, err
	}

	rows, err := ApplyFilter(table, q.Where, e.Collator)
	if err != nil {
		log.Debug("filter failed", "error", err)
		return nil, err
	}

	var result *RowSet
	if hasAggregate(q.Select) {
		result, err = evaluateCount(rows, table.Columns, q.Select[0])
	} else {
		result, err = project(rows, table, q.Select)
	}
	if err != nil {
		log.Debug("select failed", "error", err)
		return nil, err
	}

	log.Debug("query executed",
		"rows_loaded", len(table.Rows),
		"rows_matched", len(rows),
		"rows_returned", result.Len(),
		"elapsed", time.Since(start))

	return result, nil
}

// load resolves the table through the source, converting source failures
// into execution errors.
func (e *Executor) load(ref TableRef) (*Table, error) {
	if e.Source == nil {
		return nil, execErrorf(ErrTableNotFound, "%v: %s (no data source configured)", ErrTableNotFound, ref)
	}

	table, err := e.Source.Load(ref)
	if err != nil {
		if errors.Is(err, ErrTableNotFound) {
			return nil, &ExecutionError{Msg: err.Error(), Err: err}
		}
		return nil, &ExecutionError{Msg: err.Error(), Err: errors.Join(ErrLoadFailed, err)}
	}
	if table.Name == "" {
		named := *table
		named.Name = ref.Name
		table = &named
	}
	return table, nil
}

func (e *Executor) logger() *slog.Logger {
	if e.Logger != nil {
		return e.Logger
	}
	return discardLogger
}

var discardLogger = slog.New(slog.DiscardHandler)
