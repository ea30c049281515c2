// Package navigate moves a single focus location through a list or a plane
// of items, skipping ineligible ones.
//
// Every operation reports the ability of the item it landed on as an
// [eligibility.Outcome], or [eligibility.OutcomeNone] when nothing eligible
// was found. Finding nothing is an expected result, never an error, and the
// focus stays where it was.
//
// Eligibility combines the item's ability with the caller's predicate
// according to [Policy.DisabledElementsAreEligibleLocations]:
//
//	nav, err := navigate.NewList(snap, navigate.WithLoops(true))
//	if err != nil {
//	    return err
//	}
//	nav.Next(nav.Location(), eligibility.Where(func(i int) bool {
//	    return visible[i]
//	}))
//
// After the item source rebuilds its snapshot, Sync reconciles focus by item
// identity.
package navigate
