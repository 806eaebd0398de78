// Package account contains the account aggregate: the authenticated actors of
// the parcel tracking system. An account carries a closed role enumeration
// (super admin, admin, sender, receiver, delivery agent), an activity state,
// and a verification flag.
//
// Accounts are referenced by the parcel aggregate (sender, recipient, assigned
// delivery agents) and by every status-log entry. The transition authorization
// policy and the courier assignment rule consult account state to decide
// eligibility.
package account
