//go:build integration

package integration_test

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/climate-risk-service/internal/adapter/kafka"
	"github.com/couchcryptid/climate-risk-service/internal/assess"
	"github.com/couchcryptid/climate-risk-service/internal/config"
	"github.com/couchcryptid/climate-risk-service/internal/domain"
	"github.com/couchcryptid/climate-risk-service/internal/observability"
)

const testSinkTopic = "test-risk-analyses"

// publishedMessage holds a deserialized message read from the sink topic.
type publishedMessage struct {
	Analysis domain.RiskAnalysis
	Key      string
	Headers  map[string]string
}

// readPublished reads a single message from the sink consumer and deserializes it.
func readPublished(ctx context.Context, t *testing.T, consumer *kafkago.Reader) publishedMessage {
	t.Helper()
	readCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	msg, err := consumer.ReadMessage(readCtx)
	require.NoError(t, err, "read from sink topic")

	headers := make(map[string]string, len(msg.Headers))
	for _, h := range msg.Headers {
		headers[h.Key] = string(h.Value)
	}
	var analysis domain.RiskAnalysis
	require.NoError(t, json.Unmarshal(msg.Value, &analysis), "unmarshal sink message")

	return publishedMessage{
		Analysis: analysis,
		Key:      string(msg.Key),
		Headers:  headers,
	}
}

func sinkConsumer(t *testing.T, broker string) *kafkago.Reader {
	t.Helper()
	consumer := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers: []string{broker},
		Topic:   testSinkTopic,
		GroupID: fmt.Sprintf("test-consumer-%d", time.Now().UnixNano()),
	})
	t.Cleanup(func() { _ = consumer.Close() })
	return consumer
}

// TestWriterPublish verifies the adapter layer: kafka.Writer round-trips an
// analysis through a real broker with key and headers intact.
func TestWriterPublish(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
	defer cancel()

	broker := startKafka(ctx, t)
	createTopic(t, broker, testSinkTopic)

	cfg := &config.Config{
		KafkaBrokers:   []string{broker},
		KafkaSinkTopic: testSinkTopic,
	}

	writer := kafka.NewWriter(cfg, discardLogger())
	t.Cleanup(func() { _ = writer.Close() })

	analysis := domain.Analyze(
		domain.Geo{Lat: 37.5664, Lon: 126.9779},
		domain.Measurement{
			Precipitation: domain.Float(90),
			Elevation:     domain.Float(3),
			Humidity:      domain.Float(80),
		},
	)
	require.NoError(t, writer.Publish(ctx, analysis))

	got := readPublished(ctx, t, sinkConsumer(t, broker))

	assert.Equal(t, "37.5664,126.9779", got.Key)
	assert.Equal(t, string(analysis.OverallLevel), got.Headers["risk_level"])
	assert.Equal(t, analysis.AssessedAt.Format(time.RFC3339), got.Headers["assessed_at"])
	assert.Equal(t, analysis.OverallScore, got.Analysis.OverallScore)
	assert.Equal(t, analysis.Hazards.Flood.Score, got.Analysis.Hazards.Flood.Score)
}

// TestAssessorPublishes verifies the full path: an assessment triggers a
// best-effort publish that lands on the sink topic.
func TestAssessorPublishes(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
	defer cancel()

	broker := startKafka(ctx, t)
	createTopic(t, broker, testSinkTopic)

	cfg := &config.Config{
		KafkaBrokers:   []string{broker},
		KafkaSinkTopic: testSinkTopic,
	}

	writer := kafka.NewWriter(cfg, discardLogger())
	t.Cleanup(func() { _ = writer.Close() })

	// No live sources wired; the engine answers from defaults.
	assessor := assess.New(nil, nil, nil, writer, discardLogger(), observability.NewMetricsForTesting())

	analysis, err := assessor.Assess(ctx, 35.1796, 129.0756)
	require.NoError(t, err)

	got := readPublished(ctx, t, sinkConsumer(t, broker))

	assert.Equal(t, "35.1796,129.0756", got.Key)
	assert.Equal(t, analysis.OverallScore, got.Analysis.OverallScore)
	assert.Equal(t, string(analysis.OverallLevel), got.Headers["risk_level"])
}
