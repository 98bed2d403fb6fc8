package diag

import (
	"strings"

	"github.com/larsks/faultblink/internal/mqtt"
)

// DefaultTopic receives diagnostic lines when no topic is configured.
const DefaultTopic = "faultblink/diagnostics"

type mqttWriter struct {
	pub   mqtt.Publisher
	topic string
}

// MQTT returns a sink publishing each line as one message on topic.
func MQTT(pub mqtt.Publisher, topic string) Sink {
	if topic == "" {
		topic = DefaultTopic
	}
	return Sink{
		Name:   "mqtt:" + topic,
		Writer: &mqttWriter{pub: pub, topic: topic},
	}
}

func (m *mqttWriter) Write(p []byte) (int, error) {
	for _, line := range strings.Split(strings.TrimRight(string(p), "\n"), "\n") {
		if err := m.pub.Publish(m.topic, 0, false, line); err != nil {
			return 0, err
		}
	}
	return len(p), nil
}
