// Package services provides domain services that orchestrate business operations
// across multiple domain entities in the parcel tracking system. It implements
// business rules that don't naturally belong to a single aggregate root.
//
// The package includes:
//   - TransitionPolicy: A domain service gating parcel operations by actor role
//     and ownership before the lifecycle engine runs
//
// Domain services coordinate between aggregates, implementing business logic that
// spans multiple bounded contexts following Domain-Driven Design principles.
package services
