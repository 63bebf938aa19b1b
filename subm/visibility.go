package subm

// CommentVisibleTo decides whether a single review comment may be shown to
// a viewer with the given role. Central roles and admins see the full
// history; state approvers see the state-level conversation; nodal
// officers see only nodal-authored comments.
func CommentVisibleTo(c ReviewComment, viewer Role) bool {
	switch viewer {
	case RoleAdmin, RoleMospiReviewer, RoleMospiApprover:
		return true
	case RoleStateApprover:
		return c.AuthorRole == RoleStateApprover || c.AuthorRole == RoleNodalOfficer
	case RoleNodalOfficer:
		return c.AuthorRole == RoleNodalOfficer
	}
	return false
}

// VisibleComments filters the ordered comment history for a viewer,
// preserving insertion order. Never re-sorts; the history is already
// chronological.
func VisibleComments(comments []ReviewComment, viewer Role) []ReviewComment {
	out := make([]ReviewComment, 0, len(comments))
	for _, c := range comments {
		if CommentVisibleTo(c, viewer) {
			out = append(out, c)
		}
	}
	return out
}
