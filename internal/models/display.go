package models

// Masked display labels
const (
	AnonymousLabel = "anonymous"
	GuestLabel     = "anonymous (guest)"
)

// DisplayName resolves the actor name shown in posts, comments and
// notifications. On an anonymous board the real identity never leaves the
// server; a guest actor is labelled as such regardless of board.
func DisplayName(boardCategory, actorRole, actorNickname string) string {
	if boardCategory == BoardCategoryAnonymous {
		return AnonymousLabel
	}
	if actorRole == RoleGuest {
		return GuestLabel
	}
	return actorNickname
}
