package query

import (
	"reflect"
	"testing"

	"github.com/approxql/aqe/pkg/aggregator"
)

func TestParseSimpleStarQuery(t *testing.T) {
	p := NewParser()
	q, err := p.Parse("SELECT * FROM orders")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q.TableName != "orders" {
		t.Fatalf("expected table 'orders', got %q", q.TableName)
	}
	if len(q.Columns) != 1 || !q.Columns[0].IsStar() {
		t.Fatalf("expected single star column, got %+v", q.Columns)
	}
}

func TestParseAggregateWithGroupBy(t *testing.T) {
	p := NewParser()
	q, err := p.Parse("SELECT category, SUM(value) FROM orders GROUP BY category")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(q.Columns) != 2 {
		t.Fatalf("expected 2 columns, got %d", len(q.Columns))
	}
	if q.Columns[0].Source != "category" || q.Columns[0].Kind != aggregator.None {
		t.Fatalf("expected raw category column, got %+v", q.Columns[0])
	}
	if q.Columns[1].Kind != aggregator.Sum || q.Columns[1].Source != "value" {
		t.Fatalf("expected SUM(value), got %+v", q.Columns[1])
	}
	if q.Columns[1].RenderedKey() != "SUM(VALUE)" {
		t.Fatalf("expected default alias SUM(VALUE), got %q", q.Columns[1].RenderedKey())
	}
	if len(q.GroupByColumns) != 1 || q.GroupByColumns[0] != "category" {
		t.Fatalf("expected group by [category], got %v", q.GroupByColumns)
	}
}

func TestParseAggregateWithExplicitAlias(t *testing.T) {
	p := NewParser()
	q, err := p.Parse("SELECT category, SUM(value) AS total FROM orders GROUP BY category")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q.Columns[1].Alias != "total" || q.Columns[1].RenderedKey() != "total" {
		t.Fatalf("expected alias 'total', got %+v", q.Columns[1])
	}
}

func TestParseDistinctAggregatesOnSameColumn(t *testing.T) {
	p := NewParser()
	q, err := p.Parse("SELECT category, MIN(value), MAX(value) FROM orders GROUP BY category")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q.Columns[1].RenderedKey() == q.Columns[2].RenderedKey() {
		t.Fatalf("expected MIN(value) and MAX(value) to render distinct keys, got %q twice",
			q.Columns[1].RenderedKey())
	}
}

func TestParseRandomSamplingPercent(t *testing.T) {
	p := NewParser()
	q, err := p.Parse("SELECT COUNT(*) FROM orders SAMPLE 10%")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q.Sampling.Method != SamplingRandom {
		t.Fatalf("expected random sampling, got %v", q.Sampling.Method)
	}
	if q.Sampling.Rate != 0.1 {
		t.Fatalf("expected rate 0.1, got %v", q.Sampling.Rate)
	}
}

func TestParseReservoirSampling(t *testing.T) {
	p := NewParser()
	q, err := p.Parse("SELECT COUNT(*) FROM orders SAMPLE RESERVOIR 500")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q.Sampling.Method != SamplingReservoir || q.Sampling.ReservoirSize != 500 {
		t.Fatalf("expected reservoir sampling of size 500, got %+v", q.Sampling)
	}
}

func TestParseSystematicSampling(t *testing.T) {
	p := NewParser()
	q, err := p.Parse("SELECT COUNT(*) FROM orders SAMPLE SYSTEMATIC 7")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q.Sampling.Method != SamplingSystematic || q.Sampling.Step != 7 {
		t.Fatalf("expected systematic sampling of step 7, got %+v", q.Sampling)
	}
}

func TestParseStratifiedSampling(t *testing.T) {
	p := NewParser()
	q, err := p.Parse("SELECT category, AVG(value) FROM orders GROUP BY category SAMPLE STRATIFIED BY category 25%")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q.Sampling.Method != SamplingStratified {
		t.Fatalf("expected stratified sampling, got %v", q.Sampling.Method)
	}
	if q.Sampling.StratificationColumn != "category" {
		t.Fatalf("expected stratification column 'category', got %q", q.Sampling.StratificationColumn)
	}
	if q.Sampling.Rate != 0.25 {
		t.Fatalf("expected rate 0.25, got %v", q.Sampling.Rate)
	}
}

func TestParseMissingFromIsParseError(t *testing.T) {
	p := NewParser()
	_, err := p.Parse("SELECT * orders")
	if err == nil {
		t.Fatal("expected error for missing FROM clause")
	}
	if _, ok := err.(*ParseError); !ok {
		t.Fatalf("expected *ParseError, got %T", err)
	}
}

func TestParseMissingSelectIsParseError(t *testing.T) {
	p := NewParser()
	_, err := p.Parse("* FROM orders")
	if err == nil {
		t.Fatal("expected error for missing SELECT clause")
	}
}

func TestParseInvalidSampleClauseIsParseError(t *testing.T) {
	p := NewParser()
	_, err := p.Parse("SELECT * FROM orders SAMPLE banana")
	if err == nil {
		t.Fatal("expected error for malformed SAMPLE clause")
	}
}

func TestParseMixedColumnsWithoutGroupByFails(t *testing.T) {
	p := NewParser()
	_, err := p.Parse("SELECT category, SUM(value) FROM orders")
	if err == nil {
		t.Fatal("expected error for mixed raw/aggregate columns without GROUP BY")
	}
}

func TestParseCaseInsensitiveKeywords(t *testing.T) {
	p := NewParser()
	q, err := p.Parse("select count(*) from orders")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q.Columns[0].Kind != aggregator.Count {
		t.Fatalf("expected COUNT, got %+v", q.Columns[0])
	}
}

func TestQueryStringRoundTrips(t *testing.T) {
	p := NewParser()
	queries := []string{
		"SELECT * FROM orders",
		"SELECT category, SUM(value) AS total FROM orders GROUP BY category",
		"SELECT COUNT(*) FROM orders SAMPLE 15.5%",
		"SELECT COUNT(*) FROM orders SAMPLE RESERVOIR 500",
		"SELECT COUNT(*) FROM orders SAMPLE SYSTEMATIC 7",
		"SELECT category, AVG(value) FROM orders GROUP BY category SAMPLE STRATIFIED BY category 25%",
	}
	for _, original := range queries {
		q, err := p.Parse(original)
		if err != nil {
			t.Fatalf("unexpected error parsing %q: %v", original, err)
		}

		rendered := q.String()
		reparsed, err := p.Parse(rendered)
		if err != nil {
			t.Fatalf("rendered form %q of %q failed to reparse: %v", rendered, original, err)
		}

		if !reflect.DeepEqual(q, reparsed) {
			t.Fatalf("round trip mismatch for %q:\nrendered: %q\noriginal: %+v\nreparsed: %+v",
				original, rendered, q, reparsed)
		}
	}
}

func TestColumnStringRendersAggregateWithAlias(t *testing.T) {
	c := Column{Source: "value", Alias: "total", Kind: aggregator.Sum}
	if got := c.String(); got != "SUM(value) AS total" {
		t.Fatalf("expected 'SUM(value) AS total', got %q", got)
	}
}

func TestColumnStringRendersRawColumn(t *testing.T) {
	c := Column{Source: "category"}
	if got := c.String(); got != "category" {
		t.Fatalf("expected 'category', got %q", got)
	}
}

func TestSamplingStringIsEmptyForSamplingNone(t *testing.T) {
	var s Sampling
	if got := s.String(); got != "" {
		t.Fatalf("expected empty string for SamplingNone, got %q", got)
	}
}

func TestParseWhitespaceTolerance(t *testing.T) {
	p := NewParser()
	q, err := p.Parse("SELECT   category ,  SUM( value )   FROM   orders   GROUP BY   category")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q.TableName != "orders" {
		t.Fatalf("expected table 'orders', got %q", q.TableName)
	}
	if q.Columns[1].Source != "value" {
		t.Fatalf("expected inner column 'value', got %q", q.Columns[1].Source)
	}
}
