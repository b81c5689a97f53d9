package storage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	logctx "github.com/pribylovaa/notification-extension/internal/pkg/log"
)

// ErrInvalidRetention — неположительные keep или interval.
var ErrInvalidRetention = errors.New("invalid retention settings")

// RunRetention периодически удаляет события старше keep.
//
// Особенности:
//   - первый проход — сразу при старте;
//   - ошибка прохода логируется, цикл продолжается;
//   - останавливается по ctx.
func RunRetention(ctx context.Context, st EventStorage, keep, interval time.Duration) error {
	const op = "storage/retention/RunRetention"

	if keep <= 0 || interval <= 0 {
		return fmt.Errorf("%s: %w", op, ErrInvalidRetention)
	}

	lg := logctx.From(ctx)
	lg.Info("retention_start",
		slog.String("op", op),
		slog.Duration("keep", keep),
		slog.Duration("interval", interval),
	)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	sweep := func() {
		n, err := st.DeleteEventsBefore(ctx, time.Now().UTC().Add(-keep))
		if err != nil {
			if ctx.Err() == nil {
				lg.Warn("retention_tick_error", slog.String("op", op), slog.String("err", err.Error()))
			}
			return
		}
		if n > 0 {
			lg.Info("retention_deleted", slog.String("op", op), slog.Int64("events", n))
		}
	}

	sweep()
	for {
		select {
		case <-ctx.Done():
			lg.Info("retention_stop", slog.String("op", op))
			return nil
		case <-ticker.C:
			sweep()
		}
	}
}
