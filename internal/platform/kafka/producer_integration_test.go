//go:build integration

package kafka_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"github.com/twmb/franz-go/pkg/kgo"

	"looview/internal/audit"
	"looview/internal/platform/kafka"
	"looview/pkg/testutil/containers"
)

type ProducerSuite struct {
	suite.Suite
	broker *containers.RedpandaContainer
}

func TestProducerSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(ProducerSuite))
}

func (s *ProducerSuite) SetupSuite() {
	s.broker = containers.GetManager().GetRedpanda(s.T())
}

func (s *ProducerSuite) TestPublishesToiletCreated() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	const topic = "looview.toilets.test"
	p, err := kafka.NewProducer(s.broker.Brokers, topic, nil)
	s.Require().NoError(err)
	defer p.Close()

	s.Require().NoError(p.EnsureTopic(ctx, 1, 1))
	s.Require().NoError(p.EnsureTopic(ctx, 1, 1), "existing topic is not an error")

	payload, _ := json.Marshal(map[string]string{"name": "Central Park Loo"})
	s.Require().NoError(p.Append(ctx, audit.Event{
		ID:       "evt-1",
		Type:     audit.EventToiletCreated,
		ToiletID: "toilet-1",
		Payload:  payload,
	}))

	consumer, err := kgo.NewClient(
		kgo.SeedBrokers(s.broker.Brokers...),
		kgo.ConsumeTopics(topic),
		kgo.ConsumeResetOffset(kgo.NewOffset().AtStart()),
	)
	s.Require().NoError(err)
	defer consumer.Close()

	fetches := consumer.PollFetches(ctx)
	s.Require().Empty(fetches.Errors())
	records := fetches.Records()
	s.Require().NotEmpty(records)

	var got audit.Event
	s.Require().NoError(json.Unmarshal(records[0].Value, &got))
	s.Equal("toilet-1", string(records[0].Key))
	s.Equal(audit.EventToiletCreated, got.Type)
	s.JSONEq(string(payload), string(got.Payload))
}
