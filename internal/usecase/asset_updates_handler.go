package usecase

import (
	"context"
	"encoding/json"
	"strings"

	"RiskDash/internal/domain/models"
	domrepo "RiskDash/internal/domain/repository"
	pkgkafka "RiskDash/pkg/kafka"
	applogger "RiskDash/pkg/logger"
)

// AssetUpdatesHandler consumes backend update events and drops the cached
// snapshots they make stale.
type AssetUpdatesHandler struct {
	topic     string
	snapshots domrepo.SnapshotStore
	l         *applogger.Logger
}

var _ pkgkafka.MessageHandler = (*AssetUpdatesHandler)(nil)

func NewAssetUpdatesHandler(topic string, snapshots domrepo.SnapshotStore, l *applogger.Logger) *AssetUpdatesHandler {
	if l == nil {
		l = applogger.NewNop()
	}
	return &AssetUpdatesHandler{topic: topic, snapshots: snapshots, l: l}
}

func (h *AssetUpdatesHandler) Topic() string { return h.topic }

// Handle skips malformed events instead of retrying them.
func (h *AssetUpdatesHandler) Handle(ctx context.Context, b []byte) error {
	var ev models.AssetUpdateEvent
	if err := json.Unmarshal(b, &ev); err != nil {
		h.l.Warn("asset update ignored", applogger.Error(&models.DataShapeError{Field: "event", Err: err}))
		return nil
	}
	symbol := strings.TrimSpace(ev.Symbol)
	if err := h.snapshots.Invalidate(ctx, symbol); err != nil {
		return err
	}
	h.l.Debug("snapshots invalidated", applogger.String("symbol", symbol), applogger.String("kind", ev.Kind))
	return nil
}
