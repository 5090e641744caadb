// Command aqeseed writes a synthetic CSV dataset that cmd/aqebench and
// the HTTP server can load, mirroring the shape of the demo table in the
// executor's scenario tests: a category column and a numeric value
// column with a heavy-tailed distribution.
package main

import (
	"bufio"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"
)

func main() {
	path := "data/large_data.csv"
	if len(os.Args) > 1 {
		path = os.Args[1]
	}

	n := 200000
	if len(os.Args) > 2 {
		parsed, err := strconv.Atoi(os.Args[2])
		if err != nil {
			fmt.Fprintf(os.Stderr, "aqeseed: invalid row count %q\n", os.Args[2])
			os.Exit(1)
		}
		n = parsed
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "aqeseed: failed to create output directory: %v\n", err)
		os.Exit(1)
	}

	f, err := os.Create(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "aqeseed: failed to create %s: %v\n", path, err)
		os.Exit(1)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	defer w.Flush()

	rng := rand.New(rand.NewSource(42))
	categories := []string{"A", "B", "C", "D", "E"}

	fmt.Fprintln(w, "category,value")
	for i := 0; i < n; i++ {
		category := categories[rng.Intn(len(categories))]
		value := 10 + rng.ExpFloat64()*50
		fmt.Fprintf(w, "%s,%.2f\n", category, value)
		if i%50000 == 0 && i > 0 {
			fmt.Printf("wrote %d rows\n", i)
		}
	}

	fmt.Printf("wrote %d rows to %s\n", n, path)
}

