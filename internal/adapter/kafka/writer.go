package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/couchcryptid/climate-risk-service/internal/config"
	"github.com/couchcryptid/climate-risk-service/internal/domain"
)

// Writer publishes completed risk analyses to a Kafka topic so downstream
// consumers (alerting, dashboards) see every assessment the service serves.
type Writer struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// NewWriter creates a Kafka producer for the configured sink topic.
func NewWriter(cfg *config.Config, logger *slog.Logger) *Writer {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaSinkTopic,
		Balancer:     &kafkago.LeastBytes{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &Writer{writer: w, logger: logger}
}

// Publish serializes and writes one analysis to the sink topic.
func (w *Writer) Publish(ctx context.Context, analysis domain.RiskAnalysis) error {
	msg, err := serializeToMessage(analysis)
	if err != nil {
		return err
	}
	return w.writer.WriteMessages(ctx, msg)
}

func (w *Writer) Close() error {
	return w.writer.Close()
}

// serializeToMessage marshals a RiskAnalysis into a Kafka message. The key is
// the rounded coordinate so analyses for one location land on one partition
// in order.
func serializeToMessage(analysis domain.RiskAnalysis) (kafkago.Message, error) {
	data, err := json.Marshal(analysis)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize risk analysis: %w", err)
	}
	return kafkago.Message{
		Key:   []byte(fmt.Sprintf("%.4f,%.4f", analysis.Geo.Lat, analysis.Geo.Lon)),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "risk_level", Value: []byte(analysis.OverallLevel)},
			{Key: "assessed_at", Value: []byte(analysis.AssessedAt.Format(time.RFC3339))},
		},
	}, nil
}
