// Package executor orchestrates the full query pipeline: sampling the
// input rows, dispatching them into per-group aggregator bundles,
// rescaling extensive aggregates, and materializing a Result.
package executor

import (
	"sort"
	"strconv"
	"strings"

	"github.com/approxql/aqe/internal/config"
	"github.com/approxql/aqe/pkg/aggregator"
	"github.com/approxql/aqe/pkg/dataset"
	"github.com/approxql/aqe/pkg/estimator"
	"github.com/approxql/aqe/pkg/query"
	"github.com/approxql/aqe/pkg/sampler"
)

// ciConfidenceLevel is the confidence level used for the per-row interval
// estimates attached to approximate COUNT/SUM columns.
const ciConfidenceLevel = 0.95

const defaultGroupKey = "default"

// Result is the materialized output of a query execution.
type Result struct {
	ColumnNames []string
	Rows        [][]string
	Approximate bool

	// RowsScanned is the number of input rows fed to the pipeline.
	RowsScanned int
	// RowsSampled is the number of rows a sampler retained. It equals
	// RowsScanned when the query has no SAMPLE clause.
	RowsSampled int
	// SampleRate is the sampler's observed rate, or 1 for an exact scan.
	SampleRate float64

	// ConfidenceIntervals holds one entry per result row, keyed by the
	// rendered key of each COUNT/SUM column in that row, for approximate
	// queries only. It is nil when the query had no SAMPLE clause.
	ConfidenceIntervals []map[string]estimator.CIResult
}

// Executor runs one query against one in-memory row set at a time. It
// carries no state across calls to Execute beyond its sampling defaults.
type Executor struct {
	stratumSize int
}

// New constructs an Executor using the library's default per-stratum
// reservoir size.
func New() *Executor {
	return &Executor{stratumSize: sampler.DefaultStratumReservoirSize}
}

// NewWithConfig constructs an Executor whose STRATIFIED sampling uses
// cfg's per-stratum reservoir size.
func NewWithConfig(cfg config.SamplingConfig) *Executor {
	return &Executor{stratumSize: cfg.DefaultStratumSize}
}

// Execute runs q against rows, producing a materialized Result. If q
// requests sampling, the result is flagged approximate and its COUNT/SUM
// aggregates are rescaled by 1/samplingRate.
func (e *Executor) Execute(q *query.Query, rows []dataset.Row) (*Result, error) {
	s := e.buildSampler(q.Sampling)

	var processed []dataset.Row
	scalingFactor := 1.0
	sampleRate := 1.0
	approximate := s != nil

	if s != nil {
		for _, row := range rows {
			s.Add(row)
		}
		processed = s.Sample()
		if rate := s.Rate(); rate > 0 {
			scalingFactor = 1.0 / rate
			sampleRate = rate
		}
	} else {
		processed = rows
	}

	groups := make(map[string]*aggregator.Bundle)
	order := make([]string, 0)

	specs := aggregateSpecs(q.Columns)

	for _, row := range processed {
		key, groupValues := renderGroupKey(q.GroupByColumns, row)
		bundle, ok := groups[key]
		if !ok {
			bundle = aggregator.NewBundle(specs)
			bundle.GroupValues = groupValues
			groups[key] = bundle
			order = append(order, key)
		}
		dispatchRow(bundle, q.Columns, row)
	}

	// A query with aggregates but no GROUP BY still reports one row
	// (e.g. COUNT(*) over zero matching rows is 0, not absent).
	if len(groups) == 0 && len(q.GroupByColumns) == 0 && len(specs) > 0 {
		bundle := aggregator.NewBundle(specs)
		groups[defaultGroupKey] = bundle
		order = append(order, defaultGroupKey)
	}

	sort.Strings(order)

	columnNames := make([]string, len(q.Columns))
	for i, c := range q.Columns {
		columnNames[i] = c.RenderedKey()
	}

	result := &Result{
		ColumnNames: columnNames,
		Approximate: approximate,
		RowsScanned: len(rows),
		RowsSampled: len(processed),
		SampleRate:  sampleRate,
	}

	for _, key := range order {
		bundle := groups[key]
		groupByMap := make(map[string]string, len(q.GroupByColumns))
		for i, col := range q.GroupByColumns {
			if i < len(bundle.GroupValues) {
				groupByMap[col] = bundle.GroupValues[i]
			}
		}

		row := make([]string, len(q.Columns))
		var ciRow map[string]estimator.CIResult
		if approximate {
			ciRow = make(map[string]estimator.CIResult)
		}
		for i, c := range q.Columns {
			if c.Kind == aggregator.None {
				row[i] = groupByMap[c.Source]
				continue
			}
			value := bundle.Result(c.RenderedKey())
			if approximate {
				switch c.Kind {
				case aggregator.Sum:
					if variance, n, ok := bundle.Variance(c.RenderedKey()); ok {
						ciRow[c.RenderedKey()] = estimator.SumCI(value, variance, n, sampleRate, ciConfidenceLevel)
					}
				case aggregator.Count:
					ciRow[c.RenderedKey()] = estimator.CountCI(int64(value), sampleRate, ciConfidenceLevel)
				}
				if c.Kind == aggregator.Count || c.Kind == aggregator.Sum {
					value *= scalingFactor
				}
			}
			row[i] = strconv.FormatFloat(value, 'f', -1, 64)
		}
		result.Rows = append(result.Rows, row)
		if approximate {
			result.ConfidenceIntervals = append(result.ConfidenceIntervals, ciRow)
		}
	}

	return result, nil
}

func (e *Executor) buildSampler(s query.Sampling) sampler.Sampler {
	switch s.Method {
	case query.SamplingRandom:
		return sampler.NewRandomSampler(s.Rate, nil)
	case query.SamplingSystematic:
		step := s.Step
		if step < 1 {
			step = 1
		}
		return sampler.NewSystematicSampler(step)
	case query.SamplingReservoir:
		return sampler.NewReservoirSampler(s.ReservoirSize, nil)
	case query.SamplingStratified:
		return sampler.NewStratifiedSampler(s.Rate, s.StratificationColumn, e.stratumSize, nil)
	default:
		return nil
	}
}

// aggregateSpecs extracts the aggregator.Spec list for a query's
// aggregate columns, keyed by rendered column key so two different
// aggregates over the same source column never collide.
func aggregateSpecs(columns []query.Column) []aggregator.Spec {
	var specs []aggregator.Spec
	for _, c := range columns {
		if c.Kind != aggregator.None {
			specs = append(specs, aggregator.Spec{Key: c.RenderedKey(), Kind: c.Kind})
		}
	}
	return specs
}

// renderGroupKey builds the pipe-joined group key for row, substituting
// NULL for any group-by column missing from the row.
func renderGroupKey(groupByColumns []string, row dataset.Row) (string, []string) {
	if len(groupByColumns) == 0 {
		return defaultGroupKey, nil
	}
	var sb strings.Builder
	values := make([]string, 0, len(groupByColumns))
	for _, col := range groupByColumns {
		v, ok := row[col]
		if !ok {
			v = "NULL"
		}
		sb.WriteString(v)
		sb.WriteByte('|')
		values = append(values, v)
	}
	return sb.String(), values
}

func dispatchRow(bundle *aggregator.Bundle, columns []query.Column, row dataset.Row) {
	for _, c := range columns {
		if c.Kind == aggregator.None {
			continue
		}
		if c.Kind == aggregator.Count {
			bundle.AddValue(c.RenderedKey(), 1.0)
			continue
		}
		raw, ok := row[c.Source]
		if !ok {
			continue
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			continue
		}
		bundle.AddValue(c.RenderedKey(), v)
	}
}
