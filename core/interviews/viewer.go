package interviews

import (
	"sort"

	"github.com/braydenwhite-blip/YPP-Portal-sub006/core/user"
)

// Viewer is the authenticated identity the command center is computed for.
// The caller's auth layer is trusted to have verified UserID already.
type Viewer struct {
	UserID      string   `json:"user_id"`
	ChapterID   string   `json:"chapter_id"`
	Roles       []string `json:"roles"`
	CanTeamView bool     `json:"can_team_view"`
}

// NewViewer validates roles against the portal's closed role set (unknown
// role strings are dropped) and derives the team-view capability: only
// admins and chapter leads may see the whole chapter's tasks.
func NewViewer(userID, chapterID string, roles []string) Viewer {
	known := append([]string(nil), user.AllRoles...)
	sort.Strings(known)

	kept := make([]string, 0, len(roles))
	for _, role := range roles {
		if idx := sort.SearchStrings(known, role); idx < len(known) && known[idx] == role {
			kept = append(kept, role)
		}
	}

	usr := user.User{Roles: kept}
	return Viewer{
		UserID:      userID,
		ChapterID:   chapterID,
		Roles:       kept,
		CanTeamView: usr.IsAdmin() || usr.IsChapterLead(),
	}
}
