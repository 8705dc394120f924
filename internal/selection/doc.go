// Package selection owns property configurations: the operator's chosen
// property profile plus the product items currently selected for it.
//
// # Responsibilities
//
//   - Persist configurations in SQLite (items and priorities stored as
//     JSON columns, IDs assigned as UUIDs)
//   - Validate every mutation against the product catalogue
//   - Assemble quotes by running the engine packages over the stored
//     selection: pricing breakdown, compatibility warnings, and the
//     top-ranked recommendations
//
// Quotes are never stored. They are recomputed from the configuration row
// and the static catalogue/template registries on every request, so a
// catalogue price change is reflected in the next quote without any
// migration of stored state.
//
// Lifecycle notifications (created, updated, deleted, quoted) are emitted
// through the Events interface so the API layer can fan them out to
// websocket clients and the integration bus.
package selection
