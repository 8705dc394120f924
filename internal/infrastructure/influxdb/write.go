package influxdb

import (
	"time"

	"github.com/influxdata/influxdb-client-go/v2/api/write"
)

// WriteQuoteMetric records a generated quote for operator dashboards.
//
// The write is non-blocking; data is batched and sent asynchronously.
// Tags carry the low-cardinality dimensions (property type, discount
// tier), fields carry the monetary values.
//
// Parameters:
//   - configurationID: The configuration the quote was generated for
//   - propertyType: Property classification (hotel, hostel, ...)
//   - rooms: Room count at quote time
//   - subtotal, discountRate, total, perRoom: The price breakdown
//   - warnings: Number of compatibility warnings on the selection
func (c *Client) WriteQuoteMetric(configurationID, propertyType string, rooms int, subtotal, discountRate, total, perRoom float64, warnings int) {
	if !c.IsConnected() {
		return
	}

	point := write.NewPoint(
		"quotes",
		map[string]string{
			"configuration_id": configurationID,
			"property_type":    propertyType,
		},
		map[string]interface{}{
			"rooms":         rooms,
			"subtotal":      subtotal,
			"discount_rate": discountRate,
			"total":         total,
			"per_room":      perRoom,
			"warnings":      warnings,
		},
		time.Now(),
	)

	c.writeAPI.WritePoint(point)
}

// WriteTemplateMatch records a template match request and its outcome.
//
// matchedID is empty when no template covered the property profile; the
// miss is still recorded so the catalogue team can spot coverage gaps.
func (c *Client) WriteTemplateMatch(propertyType string, rooms int, matchedID string) {
	if !c.IsConnected() {
		return
	}

	matched := matchedID != ""
	tags := map[string]string{
		"property_type": propertyType,
	}
	if matched {
		tags["template_id"] = matchedID
	}

	point := write.NewPoint(
		"template_matches",
		tags,
		map[string]interface{}{
			"rooms":   rooms,
			"matched": matched,
		},
		time.Now(),
	)

	c.writeAPI.WritePoint(point)
}

// WritePoint writes a custom point with full control over tags and fields.
//
// Use this for measurements that don't fit the helper methods.
func (c *Client) WritePoint(measurement string, tags map[string]string, fields map[string]interface{}) {
	if !c.IsConnected() {
		return
	}

	point := write.NewPoint(measurement, tags, fields, time.Now())
	c.writeAPI.WritePoint(point)
}

// WritePointWithTime writes a custom point with a specific timestamp.
//
// Use this when the timestamp is not "now" (e.g., backfilled data).
func (c *Client) WritePointWithTime(measurement string, tags map[string]string, fields map[string]interface{}, timestamp time.Time) {
	if !c.IsConnected() {
		return
	}

	point := write.NewPoint(measurement, tags, fields, timestamp)
	c.writeAPI.WritePoint(point)
}
