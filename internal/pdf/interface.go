package pdf

import (
	"context"
)

type TextExtractor interface {
	ExtractText(ctx context.Context, pdfPath string) (string, error)
}
