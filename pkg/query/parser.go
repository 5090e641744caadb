package query

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/approxql/aqe/pkg/aggregator"
)

var aggColumnRegex = regexp.MustCompile(`(?i)^(COUNT|SUM|AVG|MIN|MAX)\s*\(([^)]+)\)(?:\s+AS\s+(\w+))?$`)

// sampleRegex mirrors the four accepted SAMPLE clause shapes:
// RESERVOIR n, SYSTEMATIC n, STRATIFIED BY col pct%, and a bare pct%.
var sampleRegex = regexp.MustCompile(`(?i)(?:(RESERVOIR)\s+(\d+)|(SYSTEMATIC)\s+(\d+)|(STRATIFIED)\s+BY\s+(\w+)\s+(\d+(?:\.\d+)?)%|(\d+(?:\.\d+)?)%)`)

// Parser turns a query string into a validated Query.
type Parser struct{}

// NewParser constructs a Parser. It holds no state and is safe for reuse
// across goroutines.
func NewParser() *Parser { return &Parser{} }

// Parse parses queryStr, returning a *ParseError on any syntactic or
// semantic failure.
func (p *Parser) Parse(queryStr string) (*Query, error) {
	upper := strings.ToUpper(queryStr)

	selectPos, err := findKeyword(upper, "SELECT")
	if err != nil {
		return nil, err
	}
	fromPos, err := findKeyword(upper, "FROM")
	if err != nil {
		return nil, err
	}
	if fromPos < selectPos+6 {
		return nil, newParseError("FROM clause must follow SELECT clause")
	}

	q := &Query{}

	selectClause := queryStr[selectPos+6 : fromPos]
	if err := parseColumns(q, selectClause); err != nil {
		return nil, err
	}

	rest := queryStr[fromPos+4:]
	if err := parseFromAndOtherClauses(q, rest); err != nil {
		return nil, err
	}

	if err := q.Validate(); err != nil {
		return nil, err
	}
	return q, nil
}

func findKeyword(upperQuery, keyword string) (int, error) {
	pos := strings.Index(upperQuery, keyword)
	if pos < 0 {
		return 0, newParseError("missing %s clause", keyword)
	}
	return pos, nil
}

func parseColumns(q *Query, columnsStr string) error {
	for _, part := range strings.Split(columnsStr, ",") {
		colStr := strings.TrimSpace(part)
		if colStr == "" {
			continue
		}

		if m := aggColumnRegex.FindStringSubmatch(colStr); m != nil {
			funcName := strings.ToUpper(m[1])
			innerCol := strings.TrimSpace(m[2])
			alias := m[3]

			kind := kindFromFuncName(funcName)
			q.Columns = append(q.Columns, Column{
				Source: innerCol,
				Alias:  alias,
				Kind:   kind,
			})
			continue
		}

		q.Columns = append(q.Columns, Column{Source: colStr})
	}
	return nil
}

func kindFromFuncName(name string) aggregator.Kind {
	switch name {
	case "COUNT":
		return aggregator.Count
	case "SUM":
		return aggregator.Sum
	case "AVG":
		return aggregator.Avg
	case "MIN":
		return aggregator.Min
	case "MAX":
		return aggregator.Max
	default:
		return aggregator.None
	}
}

func parseFromAndOtherClauses(q *Query, restStr string) error {
	upperRest := strings.ToUpper(restStr)
	groupByPos := strings.Index(upperRest, "GROUP BY")
	samplePos := strings.Index(upperRest, "SAMPLE")

	tableEnd := len(restStr)
	if groupByPos >= 0 {
		tableEnd = groupByPos
	}
	if samplePos >= 0 && samplePos < tableEnd {
		tableEnd = samplePos
	}
	q.TableName = strings.TrimSpace(restStr[:tableEnd])

	if groupByPos >= 0 {
		clauseEnd := len(restStr)
		if samplePos > groupByPos {
			clauseEnd = samplePos
		}
		parseGroupBy(q, restStr[groupByPos+8:clauseEnd])
	}

	if samplePos >= 0 {
		if err := parseSampling(q, restStr[samplePos+6:]); err != nil {
			return err
		}
	}
	return nil
}

func parseGroupBy(q *Query, groupByStr string) {
	for _, col := range strings.Split(groupByStr, ",") {
		trimmed := strings.TrimSpace(col)
		if trimmed != "" {
			q.GroupByColumns = append(q.GroupByColumns, trimmed)
		}
	}
}

func parseSampling(q *Query, sampleStr string) error {
	m := sampleRegex.FindStringSubmatch(sampleStr)
	if m == nil {
		return newParseError("invalid SAMPLE clause format")
	}

	switch {
	case m[1] != "":
		size, err := strconv.Atoi(m[2])
		if err != nil {
			return newParseError("invalid reservoir size: %v", err)
		}
		q.Sampling.Method = SamplingReservoir
		q.Sampling.ReservoirSize = size
	case m[3] != "":
		step, err := strconv.Atoi(m[4])
		if err != nil {
			return newParseError("invalid systematic step: %v", err)
		}
		q.Sampling.Method = SamplingSystematic
		q.Sampling.Step = step
	case m[5] != "":
		rate, err := strconv.ParseFloat(m[7], 64)
		if err != nil {
			return newParseError("invalid stratified rate: %v", err)
		}
		q.Sampling.Method = SamplingStratified
		q.Sampling.StratificationColumn = m[6]
		q.Sampling.Rate = rate / 100.0
	case m[8] != "":
		rate, err := strconv.ParseFloat(m[8], 64)
		if err != nil {
			return newParseError("invalid sampling rate: %v", err)
		}
		q.Sampling.Method = SamplingRandom
		q.Sampling.Rate = rate / 100.0
	}
	return nil
}
