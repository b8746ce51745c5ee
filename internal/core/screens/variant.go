package screens

import "resqall/internal/core/domain"

// Variant selects which dashboard body is mounted
type Variant int

const (
	VariantUser Variant = iota
	VariantAdmin
	VariantVolunteerPending
	VariantVolunteerRejected
	VariantVolunteerActive
)

var variantNames = map[Variant]string{
	VariantUser:              "user",
	VariantAdmin:             "admin",
	VariantVolunteerPending:  "volunteer-pending",
	VariantVolunteerRejected: "volunteer-rejected",
	VariantVolunteerActive:   "volunteer-active",
}

func (v Variant) String() string {
	if name, ok := variantNames[v]; ok {
		return name
	}
	return "unknown"
}

// MarshalText renders the variant by name in JSON payloads
func (v Variant) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}

// SelectVariant maps (role, volunteer status) to a dashboard variant.
// Every role outside admin and volunteer gets the user variant; every
// volunteer status outside pending and rejected gets the active variant.
func SelectVariant(role domain.Role, status domain.VolunteerStatus) Variant {
	switch role {
	case domain.RoleAdmin:
		return VariantAdmin
	case domain.RoleVolunteer:
		return selectVolunteerVariant(status)
	case domain.RoleUser:
		return VariantUser
	default:
		return VariantUser
	}
}

func selectVolunteerVariant(status domain.VolunteerStatus) Variant {
	switch status {
	case domain.VolunteerStatusPending:
		return VariantVolunteerPending
	case domain.VolunteerStatusRejected:
		return VariantVolunteerRejected
	case domain.VolunteerStatusApproved, domain.VolunteerStatusNone:
		return VariantVolunteerActive
	default:
		return VariantVolunteerActive
	}
}

// VariantFor is SelectVariant applied to an identity
func VariantFor(identity domain.Identity) Variant {
	return SelectVariant(identity.Role, identity.VolunteerStatus)
}
