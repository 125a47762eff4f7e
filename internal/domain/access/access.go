// Package access decides, per record and per viewer, what is visible and
// which fields must be redacted. All functions are pure given a directory
// lookup; no state is held here.
package access

import (
	"fmt"
	"sort"

	"github.com/Teenu24/employee-recognition-api/internal/domain/model"
)

// Directory is the minimal lookup the engine needs for team checks.
type Directory interface {
	User(id string) (model.User, bool)
}

// Visible reports whether viewer may see rec at all.
//
// PUBLIC is visible to any authenticated viewer. PRIVATE only to sender
// and recipient. ANONYMOUS to the recipient, to admins, and to managers
// sharing the recipient's team.
func Visible(dir Directory, rec model.Recognition, viewer model.User) bool {
	switch rec.Visibility {
	case model.VisibilityPublic:
		return true
	case model.VisibilityPrivate:
		return viewer.ID == rec.SenderID || viewer.ID == rec.RecipientID
	case model.VisibilityAnonymous:
		if viewer.ID == rec.RecipientID {
			return true
		}
		if viewer.Role == model.RoleAdmin {
			return true
		}
		if viewer.Role == model.RoleManager {
			recipient, ok := dir.User(rec.RecipientID)
			return ok && recipient.TeamID != "" && recipient.TeamID == viewer.TeamID
		}
	}
	return false
}

// SenderRevealed reports whether viewer may learn the sender identity of
// a record it is already permitted to see. For PUBLIC and PRIVATE the
// sender is always revealed; for ANONYMOUS only to the recipient, admins,
// and managers sharing the recipient's team.
func SenderRevealed(dir Directory, rec model.Recognition, viewer model.User) bool {
	if rec.Visibility != model.VisibilityAnonymous {
		return true
	}
	if viewer.ID == rec.RecipientID {
		return true
	}
	if viewer.Role == model.RoleAdmin {
		return true
	}
	if viewer.Role == model.RoleManager {
		recipient, ok := dir.User(rec.RecipientID)
		return ok && recipient.TeamID != "" && recipient.TeamID == viewer.TeamID
	}
	return false
}

// Filter narrows a listing. Zero-valued fields are ignored.
type Filter struct {
	TeamID      string
	Visibility  model.Visibility
	RecipientID string
	SenderID    string
}

// List produces the subsequence of recs the viewer may see, narrowed by
// filter, ordered by creation time descending. Equal timestamps keep the
// input (insertion) order. The sender filter is dropped for EMPLOYEE
// viewers rather than rejected.
func List(dir Directory, recs []model.Recognition, viewer model.User, filter Filter) []model.Recognition {
	out := make([]model.Recognition, 0, len(recs))
	for _, rec := range recs {
		if !Visible(dir, rec, viewer) {
			continue
		}
		if filter.TeamID != "" {
			recipient, ok := dir.User(rec.RecipientID)
			if !ok || recipient.TeamID != filter.TeamID {
				continue
			}
		}
		if filter.Visibility != "" && rec.Visibility != filter.Visibility {
			continue
		}
		if filter.RecipientID != "" && rec.RecipientID != filter.RecipientID {
			continue
		}
		if filter.SenderID != "" && viewer.Role != model.RoleEmployee && rec.SenderID != filter.SenderID {
			continue
		}
		out = append(out, rec)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

// CanViewTeamAnalytics gates analytics reads. Admins may view any team,
// managers only their own, employees none. The returned errors are
// authorization failures, never not-found, so a denied caller cannot
// probe for team existence.
func CanViewTeamAnalytics(viewer model.User, teamID string) error {
	switch viewer.Role {
	case model.RoleAdmin:
		return nil
	case model.RoleManager:
		if viewer.TeamID != teamID {
			return fmt.Errorf("%w: managers can only view their own team analytics", ErrUnauthorized)
		}
		return nil
	default:
		return fmt.Errorf("%w: analytics require manager or admin role", ErrUnauthorized)
	}
}

// RequireAdmin gates organization-wide reads.
func RequireAdmin(viewer model.User) error {
	if viewer.Role != model.RoleAdmin {
		return fmt.Errorf("%w: admin role required", ErrUnauthorized)
	}
	return nil
}
