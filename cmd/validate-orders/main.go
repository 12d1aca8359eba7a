package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/Gunvolt24/order_intake/pkg/validate"
)

// CLI-валидатор заявок: валидные заявки пишутся в stdout, отчёт — в stderr.
func main() {
	inputPath := flag.String("in", "", "path to input (.json or .jsonl). If empty, reads JSONL from stdin.")
	formatStr := flag.String("format", "auto", "input format: auto|json|jsonl")
	flag.Parse()

	ctx := context.Background()
	orderValidator := validate.NewOrderValidator()
	format := validate.InputFormat(*formatStr)

	onInvalid := func(le validate.LineError) {
		fmt.Fprintf(os.Stderr, "line %d: %v\n", le.Line, le.Err)
	}

	var (
		summary string
		err     error
	)
	if *inputPath == "" {
		if format == validate.FormatAuto {
			format = validate.FormatJSONL
		}
		summary, err = validate.ValidateReader(ctx, orderValidator, os.Stdin, format, os.Stdout, onInvalid)
	} else {
		summary, err = validate.ValidateFile(ctx, orderValidator, *inputPath, format, os.Stdout, onInvalid)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "validation: %v (%s)\n", err, summary)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stderr, "validation ok (%s)\n", summary)
}
