// Command wordjson converts a document into structured JSON.
//
//	wordjson <input> [output]
//
// The output path defaults to output.json.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/dgallion1/wordjson/internal/convert"
)

const defaultOutput = "output.json"

func main() {
	log := slog.New(slog.NewTextHandler(os.Stderr, nil))

	if len(os.Args) < 2 || len(os.Args) > 3 {
		fmt.Fprintf(os.Stderr, "usage: %s <input> [output]\n", os.Args[0])
		os.Exit(1)
	}
	input := os.Args[1]
	output := defaultOutput
	if len(os.Args) == 3 {
		output = os.Args[2]
	}

	conv := convert.NewConverter(log, nil)
	if _, err := conv.ConvertToFile(input, output); err != nil {
		log.Error("conversion failed", "input", input, "error", err)
		os.Exit(1)
	}
}
