package mqtt

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/url"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
)

// Client wraps a paho client that connects in the background.
type Client struct {
	client mqtt.Client
}

// Config holds MQTT client configuration
type Config struct {
	ServerURL         string
	ClientID          string
	MaxRetries        int           // Maximum number of connection retries (0 = infinite)
	InitialRetryDelay time.Duration // Initial delay between retries
	MaxRetryDelay     time.Duration // Maximum delay between retries
}

// FaultEvent is published once when a fault is reported.
type FaultEvent struct {
	Kind      string `json:"kind"`
	Code      int    `json:"code"`
	Message   string `json:"message"`
	Pattern   string `json:"pattern"`
	Timestamp string `json:"timestamp"`
}

// ValidateServerURL checks that url is an mqtt:// URL.
func ValidateServerURL(serverURL string) error {
	parsedURL, err := url.Parse(serverURL)
	if err != nil {
		return fmt.Errorf("invalid MQTT server URL: %w", err)
	}

	if parsedURL.Scheme != "mqtt" {
		return fmt.Errorf("MQTT server URL must use mqtt:// scheme")
	}
	return nil
}

// NewClient creates a new MQTT client with the given configuration.
// The client connects asynchronously and retries if the initial connection fails.
func NewClient(config Config) (*Client, error) {
	if err := ValidateServerURL(config.ServerURL); err != nil {
		return nil, err
	}

	initialDelay := config.InitialRetryDelay
	if initialDelay == 0 {
		initialDelay = time.Second
	}
	maxDelay := config.MaxRetryDelay
	if maxDelay == 0 {
		maxDelay = 30 * time.Second
	}

	opts := mqtt.NewClientOptions()
	opts.AddBroker(config.ServerURL)
	opts.SetClientID(config.ClientID)
	opts.SetCleanSession(true)
	opts.SetAutoReconnect(true)
	opts.SetMaxReconnectInterval(maxDelay)
	opts.SetConnectionLostHandler(func(client mqtt.Client, err error) {
		log.Printf("MQTT connection lost: %v", err)
	})
	opts.SetOnConnectHandler(func(client mqtt.Client) {
		log.Printf("connected to MQTT broker at %s", config.ServerURL)
	})

	client := mqtt.NewClient(opts)

	go func() {
		delay := initialDelay
		attempt := 0
		for {
			if token := client.Connect(); token.Wait() && token.Error() != nil {
				attempt++
				if config.MaxRetries > 0 && attempt >= config.MaxRetries {
					log.Printf("failed to connect to MQTT broker after %d attempts, giving up: %v", attempt, token.Error())
					return
				}

				log.Printf("failed to connect to MQTT broker (attempt %d): %v. Retrying in %v...", attempt, token.Error(), delay)
				time.Sleep(delay)

				delay = delay * 2
				if delay > maxDelay {
					delay = maxDelay
				}
				continue
			}
			return
		}
	}()

	return &Client{client: client}, nil
}

// Publish publishes a message to the specified topic
func (c *Client) Publish(topic string, qos byte, retained bool, payload interface{}) error {
	if c.client == nil || !c.client.IsConnected() {
		return fmt.Errorf("MQTT client is not connected")
	}

	if token := c.client.Publish(topic, qos, retained, payload); token.Wait() && token.Error() != nil {
		return fmt.Errorf("failed to publish MQTT message: %w", token.Error())
	}

	return nil
}

// NewFaultEvent stamps an event with the current time.
func NewFaultEvent(kind string, code int, message, pattern string) FaultEvent {
	return FaultEvent{
		Kind:      kind,
		Code:      code,
		Message:   message,
		Pattern:   pattern,
		Timestamp: time.Now().Format(time.RFC3339),
	}
}

// PublishFaultEvent publishes event as retained JSON on topic, so late
// subscribers still see the device's terminal state.
func PublishFaultEvent(p Publisher, topic string, event FaultEvent) error {
	eventJSON, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event to JSON: %w", err)
	}
	return p.Publish(topic, 1, true, eventJSON)
}

// Publisher is the part of Client used by the fault and diagnostic publishers.
type Publisher interface {
	Publish(topic string, qos byte, retained bool, payload interface{}) error
}

// IsConnected returns true if the client is connected to the MQTT broker
func (c *Client) IsConnected() bool {
	return c.client != nil && c.client.IsConnected()
}

// Disconnect disconnects from the MQTT broker
func (c *Client) Disconnect(quiesce uint) {
	if c.client != nil && c.client.IsConnected() {
		c.client.Disconnect(quiesce)
		log.Printf("disconnected from MQTT broker")
	}
}

// WaitForConnection polls until the client is connected, ctx is done, or
// timeout elapses. It reports whether the client is connected.
func (c *Client) WaitForConnection(ctx context.Context, timeout time.Duration) bool {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for !c.IsConnected() {
		select {
		case <-ctx.Done():
			return false
		case <-ticker.C:
		}
	}
	return true
}
