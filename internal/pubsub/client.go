package pubsub

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/pubsub"
	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"
)

const publishTimeout = 10 * time.Second

// New connects to Google Cloud Pub/Sub. Events are published to "<topicPrefix><event type>".
func New(ctx context.Context, projectID, topicPrefix string) (PubSubClient, error) {
	pubSubC, err := pubsub.NewClient(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to create pubsub client: %w", err)
	}
	teardown := func() {
		if err := pubSubC.Close(); err != nil {
			log.Error("Failed to close pubsub client", "error", err)
		}
	}
	log.Info("Pub/Sub publisher initialized", "project", projectID, "prefix", topicPrefix)
	return &client{
		client:      pubSubC,
		topicPrefix: topicPrefix,
		teardown:    teardown,
	}, nil
}

// SendMessage hands the event to the publisher and returns without waiting for the
// server acknowledgement, which is logged when it arrives.
func (c *client) SendMessage(topic EventType, data any) error {
	msgpackData, err := msgpack.Marshal(Event{Type: topic, OccurredAt: time.Now().UTC(), Payload: data})
	if err != nil {
		log.Error("MessagePack marshal error", "error", err)
		return err
	}
	message := &pubsub.Message{
		Data:       msgpackData,
		Attributes: map[string]string{"type": string(topic)},
	}
	name := c.topicPrefix + string(topic)
	result := c.client.Topic(name).Publish(context.Background(), message)
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
		defer cancel()
		serverID, err := result.Get(ctx)
		if err != nil {
			log.Error("Failed to publish message", "error", err, "topic", name)
			return
		}
		log.Debug("SendMessage", "serverID", serverID, "topic", name)
	}()
	return nil
}

func (c *client) ProcessMessage(data []byte, returnValue any) error {
	// Unmarshal the MessagePack data into the provided pointer struct
	err := msgpack.Unmarshal(data, returnValue)
	if err != nil {
		log.Error("MessagePack unmarshal error", "error", err)
		return err
	}
	return nil
}

func (c *client) Close() {
	c.teardown()
}
