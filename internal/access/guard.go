package access

import "mealmaster.app/planner/internal/exceptions"

// Owned is any stored resource that records who may mutate it.
type Owned interface {
	OwnerId() string
}

// AssertOwner fails with a generic Forbidden unless the requester is the
// recorded owner. A resource with no owner can not be mutated by anyone.
func AssertOwner(ownerId string, requesterId string) error {
	if ownerId == "" || ownerId != requesterId {
		return exceptions.Forbidden()
	}
	return nil
}

func AssertOwnerOf(resource Owned, requesterId string) error {
	return AssertOwner(resource.OwnerId(), requesterId)
}
