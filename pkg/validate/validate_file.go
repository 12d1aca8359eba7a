package validate

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/Gunvolt24/order_intake/internal/ports"
)

// InputFormat допустимые значения.
type InputFormat string

const (
	FormatAuto  InputFormat = "auto"
	FormatJSON  InputFormat = "json"
	FormatJSONL InputFormat = "jsonl"
)

// ResolveFormat — auto определяется по расширению (.jsonl -> jsonl, иначе json).
func ResolveFormat(format InputFormat, filePath string) InputFormat {
	if format != FormatAuto {
		return format
	}
	if strings.EqualFold(filepath.Ext(filePath), ".jsonl") {
		return FormatJSONL
	}
	return FormatJSON
}

// ValidateReader — валидирует поток как JSON или JSONL и пишет валидные заявки в ow.
// Возвращает сводку "N valid / M invalid".
func ValidateReader(
	ctx context.Context,
	validator ports.OrderValidator,
	ir io.Reader,
	format InputFormat,
	ow io.Writer,
	onInvalid func(LineError),
) (string, error) {
	switch format {
	case FormatJSON:
		raw, err := io.ReadAll(ir)
		if err != nil {
			return "", fmt.Errorf("read input: %w", err)
		}
		req, err := ValidateRequestFromJSON(ctx, validator, raw)
		if err != nil {
			return "0 valid / 1 invalid", err
		}
		canonical, _ := json.Marshal(req)
		if _, err := ow.Write(append(canonical, '\n')); err != nil {
			return "", fmt.Errorf("write json: %w", err)
		}
		return "1 valid / 0 invalid", nil

	case FormatJSONL:
		res, err := ValidateJSONLStream(ctx, validator, ir, ow, onInvalid)
		summary := fmt.Sprintf("%d valid / %d invalid", res.ValidLinesCount, res.InvalidLinesCount)
		return summary, err

	default:
		return "", fmt.Errorf("unsupported format: %s", format)
	}
}

// ValidateFile — то же для файла; формат auto определяется по расширению.
func ValidateFile(
	ctx context.Context,
	validator ports.OrderValidator,
	filePath string,
	format InputFormat,
	ow io.Writer,
	onInvalid func(LineError),
) (string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return "", fmt.Errorf("open file: %w", err)
	}
	defer file.Close()

	return ValidateReader(ctx, validator, file, ResolveFormat(format, filePath), ow, onInvalid)
}
