package repositories

import (
	"context"

	"resqall/internal/core/domain"
)

// staticIdentityDirectory implements IdentityDirectory over a fixed list
type staticIdentityDirectory struct {
	identities []domain.Identity
	byEmail    map[string]int
}

// NewStaticIdentityDirectory creates a directory over the given identities.
// Emails are matched exactly; the first occurrence of an email wins.
func NewStaticIdentityDirectory(identities []domain.Identity) IdentityDirectory {
	d := &staticIdentityDirectory{
		identities: make([]domain.Identity, len(identities)),
		byEmail:    make(map[string]int, len(identities)),
	}
	for i, identity := range identities {
		d.identities[i] = identity.Clone()
		if _, exists := d.byEmail[identity.Email]; !exists {
			d.byEmail[identity.Email] = i
		}
	}
	return d
}

// FindByEmail gets an identity by exact email
func (d *staticIdentityDirectory) FindByEmail(_ context.Context, email string) (*domain.Identity, error) {
	i, ok := d.byEmail[email]
	if !ok {
		return nil, domain.ErrNotFound
	}
	identity := d.identities[i].Clone()
	return &identity, nil
}

// List returns every identity in declaration order
func (d *staticIdentityDirectory) List(_ context.Context) ([]domain.Identity, error) {
	out := make([]domain.Identity, 0, len(d.identities))
	for _, identity := range d.identities {
		out = append(out, identity.Clone())
	}
	return out, nil
}

// CountVolunteers counts volunteer identities with the given status
func (d *staticIdentityDirectory) CountVolunteers(_ context.Context, status domain.VolunteerStatus) (int64, error) {
	var count int64
	for _, identity := range d.identities {
		if identity.Role == domain.RoleVolunteer && identity.VolunteerStatus == status {
			count++
		}
	}
	return count, nil
}
