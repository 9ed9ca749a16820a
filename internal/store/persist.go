package store

import (
	"context"
	"encoding/json"
	"log/slog"
)

// getJSON reads and decodes the payload at key into dest. Absence, storage
// failure, and corrupt payloads all report false; failures are logged here
// because callers degrade instead of propagating.
func getJSON(ctx context.Context, a Adapter, logger *slog.Logger, key string, dest any) bool {
	raw, ok, err := a.Get(ctx, key)
	if err != nil {
		logger.Warn("state read failed, treating as empty", "key", key, "error", err)
		return false
	}
	if !ok {
		return false
	}
	if err := json.Unmarshal([]byte(raw), dest); err != nil {
		logger.Warn("state payload is corrupt, treating as empty", "key", key, "error", err)
		return false
	}
	return true
}

// setJSON encodes v and writes it at key, best effort. A failed write is
// logged and swallowed; the previously persisted value stays current.
func setJSON(ctx context.Context, a Adapter, logger *slog.Logger, key string, v any) {
	raw, err := json.Marshal(v)
	if err != nil {
		logger.Warn("state encode failed, skipping write", "key", key, "error", err)
		return
	}
	if err := a.Set(ctx, key, string(raw)); err != nil {
		logger.Warn("state write failed", "key", key, "error", err)
	}
}
