package repository

import (
	"context"
	"time"

	"RiskDash/internal/domain/models"
	domrepo "RiskDash/internal/domain/repository"
)

// KeyedPublisher is the subset of the Kafka producer used for events.
type KeyedPublisher interface {
	Publish(ctx context.Context, topic string, key []byte, value interface{}) error
}

// AnalysisEvent is the message published for every completed analysis.
type AnalysisEvent struct {
	models.AnalysisRun
	Summary      string               `json:"summary,omitempty"`
	SectorCycle  string               `json:"sector_cycle,omitempty"`
	MacroCycle   string               `json:"macro_cycle,omitempty"`
	ModelDetails []models.ModelDetail `json:"model_details,omitempty"`
	PublishedAt  time.Time            `json:"published_at"`
}

// KafkaAnalysisPublisher publishes analysis runs keyed by symbol so events
// for one symbol stay ordered.
type KafkaAnalysisPublisher struct {
	p     KeyedPublisher
	topic string
	now   func() time.Time
}

var _ domrepo.AnalysisSink = (*KafkaAnalysisPublisher)(nil)

func NewKafkaAnalysisPublisher(p KeyedPublisher, topic string) *KafkaAnalysisPublisher {
	return &KafkaAnalysisPublisher{p: p, topic: topic, now: time.Now}
}

func (k *KafkaAnalysisPublisher) Name() string { return "kafka" }

func (k *KafkaAnalysisPublisher) Record(ctx context.Context, run models.AnalysisRun, r models.AnalysisResult) error {
	ev := AnalysisEvent{
		AnalysisRun:  run,
		Summary:      r.Summary,
		SectorCycle:  r.SectorCycle,
		MacroCycle:   r.MacroCycle,
		ModelDetails: r.ModelDetails,
		PublishedAt:  k.now().UTC(),
	}
	return k.p.Publish(ctx, k.topic, []byte(run.Symbol), ev)
}
