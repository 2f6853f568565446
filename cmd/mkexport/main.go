// mkexport writes a small synthetic capture export directory covering every
// supported source, for demos and manual testing.
// Usage: go run ./cmd/mkexport --out testdata/export
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/Iron-max114/ai-laegens-bord/internal/fixture"
)

func main() {
	out := flag.String("out", "testdata/export", "output directory")
	flag.Parse()

	if err := fixture.Write(*out); err != nil {
		fmt.Fprintf(os.Stderr, "write fixture: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Synthetic capture export written to %s\n", *out)
}
