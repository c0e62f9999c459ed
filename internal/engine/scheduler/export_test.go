package scheduler

import "go.trai.ch/kiln/internal/core/domain"

// BlockedResources exposes the skip propagation for testing.
func BlockedResources(
	states map[domain.ResourceID]domain.ResourceState,
	requirements func(domain.ResourceID) []domain.ResourceID,
) map[domain.ResourceID]domain.ResourceID {
	return blockedResources(states, requirements)
}
