package validate

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/Gunvolt24/order_intake/internal/ports"
)

// JSONLResult — статистика валидации потока JSONL.
type JSONLResult struct {
	ValidLinesCount   int
	InvalidLinesCount int
}

// LineError — невалидная строка потока.
type LineError struct {
	Line int
	Err  error
}

// ValidateJSONLStream — читает JSONL, валидирует каждую строку и пишет валидные заявки
// в ow компактным JSON. Пустые строки пропускаются; onInvalid (если задан) получает
// номер и причину для каждой невалидной строки.
func ValidateJSONLStream(
	ctx context.Context,
	validator ports.OrderValidator,
	ir io.Reader,
	ow io.Writer,
	onInvalid func(LineError),
) (JSONLResult, error) {
	var res JSONLResult

	scanner := bufio.NewScanner(ir)
	// запас на большие строки
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 10*1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		if err := ctx.Err(); err != nil {
			return res, err
		}
		line := scanner.Bytes()
		if len(bytes.TrimSpace(line)) == 0 {
			continue
		}

		req, err := ValidateRequestFromJSON(ctx, validator, line)
		if err != nil {
			res.InvalidLinesCount++
			if onInvalid != nil {
				onInvalid(LineError{Line: lineNo, Err: err})
			}
			continue
		}

		canonical, _ := json.Marshal(req)
		if _, err := ow.Write(append(canonical, '\n')); err != nil {
			return res, fmt.Errorf("write valid line: %w", err)
		}
		res.ValidLinesCount++
	}
	if err := scanner.Err(); err != nil {
		return res, fmt.Errorf("scan: %w", err)
	}
	return res, nil
}
