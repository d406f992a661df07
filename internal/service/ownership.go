package service

import (
	"strings"

	"project_space/internal/models"

	"github.com/google/uuid"
)

// canonicalID is the single textual form used to compare user ids,
// whether they come from a stored owner reference or a token claim.
func canonicalID(id string) string {
	id = strings.TrimSpace(id)
	if u, err := uuid.Parse(id); err == nil {
		return u.String()
	}
	return id
}

func isOwner(p models.Project, caller models.Identity) bool {
	return canonicalID(p.Owner.ID.String()) == canonicalID(caller.ID)
}
