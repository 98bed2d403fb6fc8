package mqtt

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePublisher struct {
	topic    string
	qos      byte
	retained bool
	payload  interface{}
	err      error
}

func (f *fakePublisher) Publish(topic string, qos byte, retained bool, payload interface{}) error {
	f.topic, f.qos, f.retained, f.payload = topic, qos, retained, payload
	return f.err
}

func TestFaultEvent_MarshalJSON(t *testing.T) {
	event := FaultEvent{
		Kind:      "deadbeef",
		Code:      2,
		Message:   "bad magic",
		Pattern:   "0001",
		Timestamp: "2023-01-01T12:00:00Z",
	}

	data, err := json.Marshal(event)
	require.NoError(t, err)

	expected := `{"kind":"deadbeef","code":2,"message":"bad magic","pattern":"0001","timestamp":"2023-01-01T12:00:00Z"}`
	assert.JSONEq(t, expected, string(data))
}

func TestPublishFaultEvent(t *testing.T) {
	pub := &fakePublisher{}
	event := NewFaultEvent("unknown", 3, "lost", "00010101")

	require.NoError(t, PublishFaultEvent(pub, "faultblink/fault", event))
	assert.Equal(t, "faultblink/fault", pub.topic)
	assert.True(t, pub.retained)

	var decoded FaultEvent
	require.NoError(t, json.Unmarshal(pub.payload.([]byte), &decoded))
	assert.Equal(t, event, decoded)

	pub.err = errors.New("offline")
	assert.Error(t, PublishFaultEvent(pub, "faultblink/fault", event))
}

func TestNewClient_InvalidURL(t *testing.T) {
	_, err := NewClient(Config{ServerURL: "invalid-url"})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "MQTT server URL must use mqtt:// scheme")
}

func TestNewClient_WrongScheme(t *testing.T) {
	_, err := NewClient(Config{ServerURL: "http://localhost:1883"})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "MQTT server URL must use mqtt:// scheme")
}

func TestPublish_NotConnected(t *testing.T) {
	c := &Client{}
	err := c.Publish("topic", 0, false, "payload")
	assert.Error(t, err)
	assert.False(t, c.IsConnected())
	c.Disconnect(0)
}

func TestWaitForConnection_NotConnected(t *testing.T) {
	c := &Client{}
	start := time.Now()
	assert.False(t, c.WaitForConnection(context.Background(), 150*time.Millisecond))
	assert.GreaterOrEqual(t, time.Since(start), 150*time.Millisecond)
}
