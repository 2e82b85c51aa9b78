package usecase

import (
	"context"
	"encoding/json"

	"StarSpin/internal/domain/models"
	domrepo "StarSpin/internal/domain/repository"
	"StarSpin/internal/service/lightcurve"
	pkgkafka "StarSpin/pkg/kafka"
	"StarSpin/pkg/util"
)

// KafkaTargetsHandler consumes target announcements from Kafka and runs the
// full analysis for each. It lets a worker fleet pick up files as a survey
// campaign publishes them, instead of walking a static list.
type KafkaTargetsHandler struct {
	topic     string
	analyzer  TargetAnalyzer
	processor ResultHandler
	metrics   domrepo.Metrics
	format    string
}

func NewKafkaTargetsHandler(
	topic string,
	analyzer TargetAnalyzer,
	processor ResultHandler,
	metrics domrepo.Metrics,
	format string,
) *KafkaTargetsHandler {
	return &KafkaTargetsHandler{
		topic:     topic,
		analyzer:  analyzer,
		processor: processor,
		metrics:   metrics,
		format:    format,
	}
}

func (h *KafkaTargetsHandler) Topic() string { return h.topic }

// incoming message schema: {target, path, format}; target and format are
// optional and derived from the path when absent.
func (h *KafkaTargetsHandler) Handle(ctx context.Context, b []byte) error {
	var m struct {
		Target string `json:"target"`
		Path   string `json:"path"`
		Format string `json:"format"`
	}
	if err := json.Unmarshal(b, &m); err != nil {
		h.metrics.RecordError("consumer_unmarshal")
		return err
	}
	if m.Path == "" {
		h.metrics.RecordError("consumer_empty_path")
		return nil // nothing to retry
	}
	if m.Target == "" {
		m.Target = util.TargetID(m.Path)
	}
	if m.Format == "" {
		m.Format = lightcurve.DetectFormat(m.Path)
	}
	if m.Format == "" {
		m.Format = h.format
	}

	res, err := h.analyzer.Analyze(ctx, models.Target{
		ID:     m.Target,
		Path:   m.Path,
		Format: m.Format,
	})
	if err != nil {
		h.metrics.RecordError("consumer_analyze")
		return err
	}
	if err := h.processor.Process(ctx, res); err != nil {
		h.metrics.RecordError("consumer_store")
		return err
	}
	return nil
}

var _ pkgkafka.MessageHandler = (*KafkaTargetsHandler)(nil)
