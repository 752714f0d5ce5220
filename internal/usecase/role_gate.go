package usecase

import "marketplace/internal/domain/entity"

// Area is a group of views sharing one access rule.
type Area string

const (
	AreaLanding  Area = "landing"
	AreaLogin    Area = "login"
	AreaRegister Area = "register"
	AreaSeller   Area = "seller"
	AreaBuyer    Area = "buyer"
)

type Action string

const (
	ActionWait     Action = "wait"
	ActionRender   Action = "render"
	ActionRedirect Action = "redirect"
)

type Decision struct {
	Action Action
	Target Area
}

func render() Decision {
	return Decision{Action: ActionRender}
}

func redirect(to Area) Decision {
	return Decision{Action: ActionRedirect, Target: to}
}

func (d Decision) Allowed() bool {
	return d.Action == ActionRender
}

// HomeArea is where an authenticated role lands.
func HomeArea(role entity.Role) Area {
	if role == entity.RoleSeller {
		return AreaSeller
	}
	return AreaBuyer
}

// Decide evaluates the gate for area. Nothing renders until the identity
// probe has resolved the gate out of GateUnknown.
func Decide(state SessionState, area Area) Decision {
	if state.Gate == GateUnknown {
		return Decision{Action: ActionWait}
	}

	authed := state.Gate == GateAuthorized && state.Session.IsAuthenticated
	role := state.Session.Role()

	switch area {
	case AreaSeller, AreaBuyer:
		if !authed {
			return redirect(AreaLogin)
		}
		if home := HomeArea(role); home != area {
			return redirect(home)
		}
		return render()
	default:
		if authed {
			return redirect(HomeArea(role))
		}
		return render()
	}
}

// Gate reads the live session from a SessionStore.
type Gate struct {
	sessions *SessionStore
}

// NewGate creates a gate over sessions.
func NewGate(sessions *SessionStore) *Gate {
	return &Gate{sessions: sessions}
}

// Resolve decides area against the current session.
func (g *Gate) Resolve(area Area) Decision {
	return Decide(g.sessions.Snapshot(), area)
}
