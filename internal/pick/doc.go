// Package pick manages the selection set of a list or plane.
//
// Picking shares navigate's eligibility gating and adds two rules taken from
// each item's metadata:
//
//   - Kind filter: Next, Previous and All only land on checkbox and radio
//     items. Plain items are picked directly through Exact or Range.
//   - Exclusivity: radio items with a Group hold at most one pick per group.
//     Picking a member replaces the group's previous member.
//
// The kind filter and the ability gate are independent predicates; with
// DisabledElementsAreEligibleLocations set, a disabled checkbox is reachable
// by Next while an enabled plain item still is not.
package pick
