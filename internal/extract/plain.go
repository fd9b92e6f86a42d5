package extract

import (
	"context"
	"strings"
)

func extractPlain(_ context.Context, data []byte) (string, error) {
	return strings.ToValidUTF8(string(data), "\uFFFD"), nil
}
