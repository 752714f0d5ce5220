package entity

type Role string

const (
	RoleUser   Role = "USER"
	RoleSeller Role = "SELLER"
)

func (r Role) Valid() bool {
	return r == RoleUser || r == RoleSeller
}

type Identity struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Role      Role   `json:"role"`
}

func (i Identity) DisplayName() string {
	switch {
	case i.FirstName != "" && i.LastName != "":
		return i.FirstName + " " + i.LastName
	case i.FirstName != "":
		return i.FirstName
	default:
		return i.Email
	}
}

// Session mirrors who the API believes is signed in. IsAuthenticated is
// true exactly when User is non-nil; use the constructors to keep it so.
type Session struct {
	User            *Identity `json:"user"`
	IsAuthenticated bool      `json:"isAuthenticated"`
}

func AnonymousSession() Session {
	return Session{}
}

func AuthenticatedSession(identity Identity) Session {
	return Session{
		User:            &identity,
		IsAuthenticated: true,
	}
}

// Role returns the session role, or "" when unauthenticated.
func (s Session) Role() Role {
	if s.User == nil {
		return ""
	}
	return s.User.Role
}

func (s Session) Clone() Session {
	if s.User == nil {
		return AnonymousSession()
	}
	return AuthenticatedSession(*s.User)
}
