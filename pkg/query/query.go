// Package query defines the typed representation of a parsed query
// (Column, Sampling, Query) and the parser that turns a query string into
// a validated instance of it.
package query

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/approxql/aqe/pkg/aggregator"
)

// ParseError is the single error kind surfaced for a malformed or
// semantically invalid query.
type ParseError struct {
	msg string
}

func (e *ParseError) Error() string { return e.msg }

func newParseError(format string, args ...any) *ParseError {
	return &ParseError{msg: fmt.Sprintf(format, args...)}
}

// Column is a single projected column: either a raw passthrough field
// (Kind == aggregator.None) or an aggregated scalar.
type Column struct {
	Source string
	Alias  string
	Kind   aggregator.Kind
}

// IsStar reports whether this column is the raw "*" projection.
func (c Column) IsStar() bool { return c.Kind == aggregator.None && c.Source == "*" }

// RenderedKey is the canonical rendered header for this column: the alias
// if non-empty, else FUNC(UPPER(source)) for aggregates or source for raw
// columns.
func (c Column) RenderedKey() string {
	if c.Alias != "" {
		return c.Alias
	}
	if c.Kind == aggregator.None {
		return c.Source
	}
	return fmt.Sprintf("%s(%s)", c.Kind.String(), strings.ToUpper(c.Source))
}

// String renders the column back to its canonical query-string form
// (e.g. "SUM(value) AS total"), the inverse of what Parser.Parse accepts
// for a single column.
func (c Column) String() string {
	var base string
	switch {
	case c.IsStar():
		base = "*"
	case c.Kind == aggregator.None:
		base = c.Source
	default:
		base = fmt.Sprintf("%s(%s)", c.Kind.String(), c.Source)
	}
	if c.Alias != "" {
		return base + " AS " + c.Alias
	}
	return base
}

// SamplingMethod identifies the sampling strategy a query requests.
type SamplingMethod int

const (
	SamplingNone SamplingMethod = iota
	SamplingRandom
	SamplingSystematic
	SamplingReservoir
	SamplingStratified
)

// Sampling is the tagged sampling-clause payload attached to a Query.
type Sampling struct {
	Method                SamplingMethod
	Rate                  float64 // Random, Stratified: fraction in (0,1]
	Step                  int     // Systematic: admit every Step-th row
	ReservoirSize         int     // Reservoir: fixed sample size
	StratificationColumn  string  // Stratified: column to partition by
}

func (s Sampling) validate() error {
	switch s.Method {
	case SamplingRandom:
		if s.Rate <= 0 || s.Rate > 1 {
			return newParseError("sampling rate must be in (0,1], got %v", s.Rate)
		}
	case SamplingStratified:
		if s.Rate <= 0 || s.Rate > 1 {
			return newParseError("sampling rate must be in (0,1], got %v", s.Rate)
		}
		if s.StratificationColumn == "" {
			return newParseError("stratified sampling requires a column")
		}
	case SamplingSystematic:
		if s.Step < 1 {
			return newParseError("systematic sampling step must be >= 1, got %d", s.Step)
		}
	case SamplingReservoir:
		if s.ReservoirSize <= 0 {
			return newParseError("reservoir sample size must be > 0, got %d", s.ReservoirSize)
		}
	}
	return nil
}

// String renders the sampling clause back to its canonical SAMPLE
// payload, omitting the leading SAMPLE keyword itself. It returns "" for
// SamplingNone.
func (s Sampling) String() string {
	switch s.Method {
	case SamplingRandom:
		return formatPercent(s.Rate) + "%"
	case SamplingSystematic:
		return fmt.Sprintf("SYSTEMATIC %d", s.Step)
	case SamplingReservoir:
		return fmt.Sprintf("RESERVOIR %d", s.ReservoirSize)
	case SamplingStratified:
		return fmt.Sprintf("STRATIFIED BY %s %s%%", s.StratificationColumn, formatPercent(s.Rate))
	default:
		return ""
	}
}

func formatPercent(rate float64) string {
	return strconv.FormatFloat(rate*100, 'f', -1, 64)
}

// Query is the fully parsed, validated representation of a query string.
type Query struct {
	Columns        []Column
	TableName      string
	GroupByColumns []string
	Sampling       Sampling
}

// Validate enforces the structural invariants every successfully parsed
// query must satisfy.
func (q *Query) Validate() error {
	if strings.TrimSpace(q.TableName) == "" {
		return newParseError("table name cannot be empty")
	}

	hasAggregate := false
	hasRaw := false
	for _, c := range q.Columns {
		if c.Kind != aggregator.None {
			hasAggregate = true
		} else if !c.IsStar() {
			hasRaw = true
		}
	}
	if hasAggregate && hasRaw && len(q.GroupByColumns) == 0 {
		return newParseError("queries with both aggregated and non-aggregated columns require a GROUP BY clause")
	}

	return q.Sampling.validate()
}

// String renders q back to its canonical query-string form. Re-parsing
// the result reproduces an equivalent Query, though not necessarily the
// exact formatting, keyword casing, or whitespace of whatever string q
// was originally parsed from.
func (q *Query) String() string {
	var sb strings.Builder
	sb.WriteString("SELECT ")
	for i, c := range q.Columns {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(c.String())
	}
	sb.WriteString(" FROM ")
	sb.WriteString(q.TableName)
	if len(q.GroupByColumns) > 0 {
		sb.WriteString(" GROUP BY ")
		sb.WriteString(strings.Join(q.GroupByColumns, ", "))
	}
	if rendered := q.Sampling.String(); rendered != "" {
		sb.WriteString(" SAMPLE ")
		sb.WriteString(rendered)
	}
	return sb.String()
}
