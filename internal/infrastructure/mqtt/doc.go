// Package mqtt provides StayKit's outbound integration bus.
//
// StayKit publishes configuration lifecycle events (created, updated,
// deleted) and quote summaries so downstream vendor-integration services
// can react: lock provisioning queues, kiosk enrolment, CRM sync. The
// service never subscribes; all inbound flows live outside staykit-core.
//
// # Topic Scheme
//
//	staykit/events/configuration/{event}/{id}   lifecycle events
//	staykit/events/quote/{id}                   quote generated
//	staykit/system/status                       online/offline (retained + LWT)
//
// # Connection Management
//
// The client auto-reconnects with exponential backoff and carries a Last
// Will and Testament so the broker announces an unexpected disconnect on
// staykit/system/status. Publishing while disconnected returns
// ErrNotConnected rather than queueing; lifecycle events are best-effort
// and the authoritative state always lives in SQLite.
package mqtt
