package domain

// Role is the closed set of caller roles. It is derived once from the account
// flags at the authentication boundary; everything downstream dispatches on
// the role, never on the raw flags.
type Role string

const (
	RoleAdmin     Role = "admin"
	RoleCritic    Role = "critic"
	RoleRegular   Role = "regular"
	RoleAnonymous Role = "anonymous"
)

// RoleFromFlags maps the two account flags to a Role. A superuser is an admin
// regardless of the staff flag; staff without superuser is a critic.
func RoleFromFlags(isStaff, isSuperuser bool) Role {
	switch {
	case isSuperuser:
		return RoleAdmin
	case isStaff:
		return RoleCritic
	default:
		return RoleRegular
	}
}

// Identity is the resolved caller attached to a request after authentication.
// Anonymous callers carry the zero UserID and RoleAnonymous.
type Identity struct {
	UserID   int64
	Username string
	Role     Role
}

// Authenticated reports whether the identity belongs to a logged-in account.
func (i Identity) Authenticated() bool {
	return i.Role != RoleAnonymous && i.Role != ""
}

// CanManageCatalog reports whether the role may create, update, or delete
// movies. Reads are open to everyone and are not gated here.
func (r Role) CanManageCatalog() bool {
	return r == RoleAdmin
}

// CanAuthorReviews reports whether the role may create or edit reviews.
// Admins deliberately cannot: reviewing is the critics' privilege alone.
func (r Role) CanAuthorReviews() bool {
	return r == RoleCritic
}

// CanListReviews reports whether the role may read the review listing.
func (r Role) CanListReviews() bool {
	return r == RoleAdmin || r == RoleCritic
}

// SeesAllReviews reports whether the review listing is unscoped for the role.
// Critics only ever see their own reviews.
func (r Role) SeesAllReviews() bool {
	return r == RoleAdmin
}
