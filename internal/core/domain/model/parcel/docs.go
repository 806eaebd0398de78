// Package parcel provides domain entities and business logic for the parcel
// delivery lifecycle. It implements the Parcel aggregate root together with
// the status-transition engine that governs it.
//
// The package includes:
//   - Parcel: The aggregate root owning lifecycle state, delivery agent
//     assignments, derived timestamps, and the status log
//   - Status: The closed lifecycle enumeration with its fixed transition graph
//   - LogEntry: An immutable entry in the append-only status log (audit trail)
//   - ShippingClass: Static shipping attributes used to derive the promised
//     delivery window
//
// Key business rules:
//   - Status changes are valid only along the edges of the transition graph;
//     the graph fails closed and terminal statuses have no outgoing edges
//   - A blocked parcel may only exit to Approved or Cancelled, regardless of
//     what the graph would otherwise allow
//   - Every status change appends exactly one status-log entry; prior entries
//     are never edited, reordered, or removed
//   - Delivered and Cancelled timestamps are mutually exclusive
//   - Delivery agents may only be attached during assignable statuses and the
//     assignment list never contains duplicates
//   - Parcels may only be deleted once Cancelled
//
// The package follows Domain-Driven Design principles, providing rich domain
// behavior, encapsulation, and validation to ensure business rules are enforced.
package parcel
