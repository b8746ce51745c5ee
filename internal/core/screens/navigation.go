package screens

import "resqall/internal/core/domain"

// NavItem is one sidebar link
type NavItem struct {
	Path  string `json:"path"`
	Label string `json:"label"`
	Icon  string `json:"icon"`
}

// Navigation lists the sidebar links shown to an identity
func Navigation(identity domain.Identity) []NavItem {
	items := []NavItem{
		{Path: PathDashboard, Label: "Mission Dashboard", Icon: "home"},
	}

	switch identity.Role {
	case domain.RoleVolunteer:
		if identity.VolunteerStatus == domain.VolunteerStatusApproved {
			items = append(items, NavItem{Path: "/tasks", Label: "Deployment Board", Icon: "clipboard"})
		}
	case domain.RoleAdmin:
		items = append(items,
			NavItem{Path: "/admin/volunteers", Label: "Ranger Personnel", Icon: "users"},
			NavItem{Path: "/admin/reports", Label: "Master Log", Icon: "file-text"},
		)
	}

	return append(items, NavItem{Path: "/profile", Label: "Ranger Profile", Icon: "user"})
}
