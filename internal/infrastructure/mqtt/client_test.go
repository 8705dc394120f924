package mqtt

import (
	"context"
	"errors"
	"testing"

	"github.com/staykit/staykit-core/internal/infrastructure/config"
)

// testConfig returns a valid MQTT configuration for testing.
func testConfig() config.MQTTConfig {
	return config.MQTTConfig{
		Enabled: true,
		Broker: config.MQTTBrokerConfig{
			Host:     "127.0.0.1",
			Port:     1883,
			ClientID: "staykit-test",
			TLS:      false,
		},
		QoS: 1,
		Reconnect: config.MQTTReconnectConfig{
			InitialDelay: 1,
			MaxDelay:     5,
		},
	}
}

func TestCloseNil(t *testing.T) {
	client := &Client{}
	if err := client.Close(); err != nil {
		t.Errorf("Close() on zero client error = %v, want nil", err)
	}
}

func TestIsConnectedInitialState(t *testing.T) {
	client := &Client{cfg: testConfig()}
	if client.IsConnected() {
		t.Error("IsConnected() = true before Connect(), want false")
	}
}

func TestHealthCheckCancelled(t *testing.T) {
	client := &Client{cfg: testConfig()}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := client.HealthCheck(ctx); err == nil {
		t.Error("HealthCheck() expected error for cancelled context")
	}
}

func TestHealthCheckDisconnected(t *testing.T) {
	client := &Client{cfg: testConfig()}

	err := client.HealthCheck(context.Background())
	if !errors.Is(err, ErrNotConnected) {
		t.Errorf("HealthCheck() error = %v, want ErrNotConnected", err)
	}
}

func TestPublishValidation(t *testing.T) {
	client := &Client{cfg: testConfig()}

	t.Run("empty topic", func(t *testing.T) {
		err := client.Publish("", []byte("{}"), 1, false)
		if !errors.Is(err, ErrInvalidTopic) {
			t.Errorf("Publish() error = %v, want ErrInvalidTopic", err)
		}
	})

	t.Run("invalid qos", func(t *testing.T) {
		err := client.Publish("staykit/events/quote/cfg-1", []byte("{}"), 3, false)
		if !errors.Is(err, ErrInvalidQoS) {
			t.Errorf("Publish() error = %v, want ErrInvalidQoS", err)
		}
	})

	t.Run("oversized payload", func(t *testing.T) {
		payload := make([]byte, maxPayloadSize+1)
		err := client.Publish("staykit/events/quote/cfg-1", payload, 1, false)
		if !errors.Is(err, ErrPublishFailed) {
			t.Errorf("Publish() error = %v, want ErrPublishFailed", err)
		}
	})

	t.Run("disconnected", func(t *testing.T) {
		err := client.Publish("staykit/events/quote/cfg-1", []byte("{}"), 1, false)
		if !errors.Is(err, ErrNotConnected) {
			t.Errorf("Publish() error = %v, want ErrNotConnected", err)
		}
	})
}

func TestPublishJSONMarshalError(t *testing.T) {
	client := &Client{cfg: testConfig()}

	// Channels cannot be marshalled to JSON.
	err := client.PublishJSON("staykit/events/quote/cfg-1", make(chan int))
	if !errors.Is(err, ErrPublishFailed) {
		t.Errorf("PublishJSON() error = %v, want ErrPublishFailed", err)
	}
}

func TestTopicBuilders(t *testing.T) {
	topics := Topics{}

	tests := []struct {
		name string
		got  string
		want string
	}{
		{"configuration created", topics.ConfigurationEvent("created", "cfg-123"), "staykit/events/configuration/created/cfg-123"},
		{"configuration updated", topics.ConfigurationEvent("updated", "cfg-123"), "staykit/events/configuration/updated/cfg-123"},
		{"configuration deleted", topics.ConfigurationEvent("deleted", "cfg-123"), "staykit/events/configuration/deleted/cfg-123"},
		{"quote", topics.QuoteEvent("cfg-123"), "staykit/events/quote/cfg-123"},
		{"system status", topics.SystemStatus(), "staykit/system/status"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %q, want %q", tt.got, tt.want)
			}
		})
	}
}
