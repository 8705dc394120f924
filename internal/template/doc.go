// Package template provides the configuration template registry and the
// template matcher for StayKit Core.
//
// A template is a pre-built product bundle designed by catalogue authors
// for a property-type/room-count/budget combination. The matcher selects
// the single best template for a property profile and is used to seed an
// operator's initial product selection.
//
// # Key Types
//
//   - Template: A named bundle with matching criteria and product entries
//   - Entry: One product line (id, quantity, essential/recommended/optional)
//   - Registry: Immutable, declaration-ordered template collection
//
// # Usage
//
//	reg, err := template.Load(cfg.Registry.TemplatesPath, cat)
//	if err != nil {
//	    return err
//	}
//
//	budget := 25000.0
//	match := template.Match(reg.Templates(), template.PropertyHotel, 80, &budget)
//	if match == nil {
//	    // no template fits this profile, a valid outcome rather than an error
//	}
//
// # Thread Safety
//
// Registry is immutable after construction; Match is a pure function.
// Both are safe for concurrent use without locking.
package template
