// Command aqebench is the demo driver: it loads a CSV dataset, runs a
// fixed list of queries against it, and prints each result preceded by
// its description.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/approxql/aqe/pkg/dataset"
	"github.com/approxql/aqe/pkg/executor"
	"github.com/approxql/aqe/pkg/query"
)

type demoQuery struct {
	description string
	sql         string
}

var demoQueries = []demoQuery{
	{"exact row count", "SELECT COUNT(*) FROM data"},
	{"exact sum of value", "SELECT SUM(value) FROM data"},
	{"exact min and max of value", "SELECT MIN(value), MAX(value) FROM data"},
	{"average value per category", "SELECT category, AVG(value) FROM data GROUP BY category"},
	{"approximate row count from a 15.5% sample", "SELECT COUNT(*) FROM data SAMPLE 15.5%"},
	{"approximate sum from a reservoir of 100 rows", "SELECT SUM(value) FROM data SAMPLE RESERVOIR 100"},
}

func main() {
	path := "data/large_data.csv"
	if len(os.Args) > 1 {
		path = os.Args[1]
	}

	rows, err := dataset.LoadCSVFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "aqebench: failed to load %s: %v\n", path, err)
		os.Exit(1)
	}
	fmt.Printf("loaded %s rows from %s\n\n", humanize.Comma(int64(len(rows))), path)

	p := query.NewParser()
	exec := executor.New()

	for _, dq := range demoQueries {
		fmt.Println(dq.description)
		fmt.Println(dq.sql)

		q, err := p.Parse(dq.sql)
		if err != nil {
			fmt.Printf("  parse error: %v\n\n", err)
			continue
		}

		start := time.Now()
		result, err := exec.Execute(q, rows)
		elapsed := time.Since(start)
		if err != nil {
			fmt.Printf("  execution error: %v\n\n", err)
			continue
		}

		printResult(result)
		fmt.Printf("  (%s rows scanned in %s, approximate=%v)\n\n",
			humanize.Comma(int64(len(rows))), elapsed, result.Approximate)
	}
}

func printResult(result *executor.Result) {
	widths := make([]int, len(result.ColumnNames))
	for i, name := range result.ColumnNames {
		widths[i] = len(name)
	}
	for _, row := range result.Rows {
		for i, cell := range row {
			if len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	for i, name := range result.ColumnNames {
		fmt.Printf("  %-*s", widths[i]+2, name)
	}
	fmt.Println()
	for _, row := range result.Rows {
		for i, cell := range row {
			fmt.Printf("  %-*s", widths[i]+2, cell)
		}
		fmt.Println()
	}
}
