package api

import (
	"github.com/staykit/staykit-core/internal/infrastructure/mqtt"
	"github.com/staykit/staykit-core/internal/selection"
)

var mqttTopics = mqtt.Topics{}

// eventDispatcher fans selection lifecycle events out to WebSocket clients,
// the MQTT integration bus, and quote analytics.
//
// All fan-out is best-effort: a dropped event never fails the operation that
// produced it. The authoritative record is the database row the selection
// service already wrote.
type eventDispatcher struct {
	server *Server
}

var _ selection.Events = (*eventDispatcher)(nil)

// configurationEventPayload is the wire shape shared by WebSocket broadcasts
// and MQTT event topics for configuration lifecycle events.
type configurationEventPayload struct {
	ID           string `json:"id"`
	Name         string `json:"name,omitempty"`
	PropertyType string `json:"property_type,omitempty"`
	Rooms        int    `json:"rooms,omitempty"`
}

// quoteEventPayload summarises a generated quote. The full quote is only
// returned on the HTTP response; event consumers get the headline figures.
type quoteEventPayload struct {
	ConfigurationID string  `json:"configuration_id"`
	Subtotal        float64 `json:"subtotal"`
	DiscountRate    float64 `json:"discount_rate"`
	Total           float64 `json:"total"`
	PerRoom         float64 `json:"per_room"`
	Warnings        int     `json:"warnings"`
}

func (d *eventDispatcher) ConfigurationCreated(cfg *selection.Configuration) {
	d.dispatchConfiguration("created", ChannelConfigurationCreated, cfg)
}

func (d *eventDispatcher) ConfigurationUpdated(cfg *selection.Configuration) {
	d.dispatchConfiguration("updated", ChannelConfigurationUpdated, cfg)
}

func (d *eventDispatcher) ConfigurationDeleted(id string) {
	s := d.server
	payload := configurationEventPayload{ID: id}

	if s.hub != nil {
		s.hub.Broadcast(ChannelConfigurationDeleted, payload)
	}
	d.publish(mqttTopics.ConfigurationEvent("deleted", id), payload)
}

func (d *eventDispatcher) QuoteGenerated(cfg *selection.Configuration, quote *selection.Quote) {
	s := d.server
	payload := quoteEventPayload{
		ConfigurationID: cfg.ID,
		Subtotal:        quote.Pricing.Subtotal,
		DiscountRate:    quote.Pricing.DiscountRate,
		Total:           quote.Pricing.Total,
		PerRoom:         quote.Pricing.PerRoom,
		Warnings:        len(quote.Warnings),
	}

	if s.hub != nil {
		s.hub.Broadcast(ChannelQuoteGenerated, payload)
	}
	d.publish(mqttTopics.QuoteEvent(cfg.ID), payload)

	if s.analytics != nil {
		s.analytics.WriteQuoteMetric(
			cfg.ID,
			string(cfg.PropertyType),
			cfg.Rooms,
			quote.Pricing.Subtotal,
			quote.Pricing.DiscountRate,
			quote.Pricing.Total,
			quote.Pricing.PerRoom,
			len(quote.Warnings),
		)
	}
}

func (d *eventDispatcher) dispatchConfiguration(event, channel string, cfg *selection.Configuration) {
	s := d.server
	payload := configurationEventPayload{
		ID:           cfg.ID,
		Name:         cfg.Name,
		PropertyType: string(cfg.PropertyType),
		Rooms:        cfg.Rooms,
	}

	if s.hub != nil {
		s.hub.Broadcast(channel, payload)
	}
	d.publish(mqttTopics.ConfigurationEvent(event, cfg.ID), payload)
}

// publish sends an event to the MQTT bus when a client is configured.
func (d *eventDispatcher) publish(topic string, payload any) {
	s := d.server
	if s.mqtt == nil {
		return
	}
	if err := s.mqtt.PublishJSON(topic, payload); err != nil {
		s.logger.Warn("event publish failed", "topic", topic, "error", err)
	}
}
