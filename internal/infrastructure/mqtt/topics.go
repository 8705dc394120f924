package mqtt

import "fmt"

// Topic prefixes for the StayKit integration bus.
//
// Scheme: staykit/{category}/{entity}/{id_or_event}
// Downstream services (lock provisioning, kiosk enrolment, CRM sync)
// subscribe with wildcards, e.g. staykit/events/configuration/#.
const (
	// TopicPrefix is the base for all StayKit topics.
	TopicPrefix = "staykit"

	// TopicPrefixEvents is the base for lifecycle event topics.
	TopicPrefixEvents = "staykit/events"

	// TopicPrefixSystem is the base for system topics.
	TopicPrefixSystem = "staykit/system"
)

// Topics provides builders for StayKit MQTT topics.
// Using these helpers ensures consistent topic naming across the codebase.
//
//	topics := mqtt.Topics{}
//	topic := topics.ConfigurationEvent("created", "cfg-123")
//	// Returns: "staykit/events/configuration/created/cfg-123"
type Topics struct{}

// ConfigurationEvent returns the topic for a configuration lifecycle event.
//
// Example: staykit/events/configuration/updated/cfg-123
func (Topics) ConfigurationEvent(event, configurationID string) string {
	return fmt.Sprintf("%s/configuration/%s/%s", TopicPrefixEvents, event, configurationID)
}

// QuoteEvent returns the topic for a quote generation event.
//
// Example: staykit/events/quote/cfg-123
func (Topics) QuoteEvent(configurationID string) string {
	return fmt.Sprintf("%s/quote/%s", TopicPrefixEvents, configurationID)
}

// SystemStatus returns the topic for StayKit's online/offline status.
//
// Example: staykit/system/status
func (Topics) SystemStatus() string {
	return TopicPrefixSystem + "/status"
}
