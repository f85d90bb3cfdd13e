// Command generate-golden writes the reference values the pkg/seq tests
// compare the integer generators against. Values are computed with
// math/big, independently of the cursors under test, and stop at the last
// one that fits in a uint64.
//
//	go run ./cmd/generate-golden            # rewrite pkg/seq/testdata
//	go run ./cmd/generate-golden -check     # fail if the file is stale
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"math"
	"math/big"
	"os"
	"path/filepath"
)

const goldenFile = "generators_golden.json"

// reference yields the successive values of one generator.
type reference struct {
	first *big.Int
	next  func(k int64, prev *big.Int) *big.Int
}

var references = map[string]reference{
	"factorial": {big.NewInt(1), func(k int64, prev *big.Int) *big.Int {
		return new(big.Int).Mul(prev, big.NewInt(k))
	}},
	"power3": {big.NewInt(1), func(_ int64, prev *big.Int) *big.Int {
		return new(big.Int).Mul(prev, big.NewInt(3))
	}},
	"counter7": {big.NewInt(7), func(_ int64, prev *big.Int) *big.Int {
		return new(big.Int).Add(prev, big.NewInt(1))
	}},
}

// counterLen bounds the otherwise unbounded counter sequence.
const counterLen = 32

func generate() map[string][]string {
	limit := new(big.Int).SetUint64(math.MaxUint64)
	out := make(map[string][]string, len(references))
	for name, ref := range references {
		var values []string
		for k, v := int64(1), ref.first; v.Cmp(limit) <= 0 && len(values) < 1<<10; k++ {
			values = append(values, v.String())
			if name == "counter7" && len(values) == counterLen {
				break
			}
			v = ref.next(k, v)
		}
		out[name] = values
	}
	return out
}

func run(dir string, check bool) error {
	encoded, err := json.MarshalIndent(generate(), "", "  ")
	if err != nil {
		return err
	}
	encoded = append(encoded, '\n')
	path := filepath.Join(dir, goldenFile)

	if check {
		current, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		if !bytes.Equal(current, encoded) {
			return fmt.Errorf("%s is out of date, rerun without -check", path)
		}
		fmt.Printf("%s is up to date\n", path)
		return nil
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	if err := os.WriteFile(path, encoded, 0o644); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", path)
	return nil
}

func main() {
	dir := flag.String("out", "pkg/seq/testdata", "directory of the golden file")
	check := flag.Bool("check", false, "compare with the existing file instead of writing it")
	flag.Parse()

	if err := run(*dir, *check); err != nil {
		fmt.Fprintf(os.Stderr, "generate-golden: %v\n", err)
		os.Exit(1)
	}
}
