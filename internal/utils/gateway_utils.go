package utils

import (
	"sort"

	"github.com/zxkane/aws-skills/internal/models"
)

// SortGatewaysByUpdated sorts gateways by last update time in descending order (newest first)
func SortGatewaysByUpdated(gateways []models.Gateway) {
	sort.Slice(gateways, func(i, j int) bool {
		timeI := gateways[i].GetUpdated()
		timeJ := gateways[j].GetUpdated()

		// Gateways with no timestamp go to the end
		if timeI.IsZero() && timeJ.IsZero() {
			return false
		}
		if timeI.IsZero() {
			return false
		}
		if timeJ.IsZero() {
			return true
		}

		return timeI.After(timeJ)
	})
}

// SortGatewaysByName sorts gateways by name in ascending order
func SortGatewaysByName(gateways []models.Gateway) {
	sort.Slice(gateways, func(i, j int) bool {
		return gateways[i].Name < gateways[j].Name
	})
}
