package metric

import (
	"context"
	"time"

	"go.uber.org/zap"
)

func Fixture(val string) zap.Field {
	return zap.String("fixture", val)
}

func Size(val int) zap.Field {
	return zap.Int("size", val)
}

func TotalDur(val time.Duration) zap.Field {
	return zap.Int64("totalMs", val.Milliseconds())
}

func Digest(val string) zap.Field {
	return zap.String("blake3", val)
}

func Path(val string) zap.Field {
	return zap.String("path", val)
}

// RequestLog writes one line per finished run
func (m *metric) RequestLog(ctx context.Context, msg string, fields ...zap.Field) {
	m.runLog.InfoCtx(ctx, msg, fields...)
}
