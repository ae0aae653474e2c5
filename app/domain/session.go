package domain

// SessionPhase is the engine's state machine position.
type SessionPhase string

const (
	PhaseAnonymous        SessionPhase = "anonymous"
	PhaseAuthenticating   SessionPhase = "authenticating"
	PhaseProfileResolving SessionPhase = "profile_resolving"
	PhaseReady            SessionPhase = "ready"
	PhaseFailed           SessionPhase = "failed"
)

// Session is the process-wide, in-memory view of the current identity and
// profile. It is created at start, mutated by every engine operation, and
// reset to the anonymous zero state on logout or fatal auth failure.
//
// Version increases on every write; mutating operations capture it before
// their first remote call and discard late-arriving results if it moved.
type Session struct {
	Phase     SessionPhase `json:"phase"`
	Identity  *Identity    `json:"identity"`
	Profile   *Profile     `json:"profile"`
	IsLoading bool         `json:"is_loading"`
	Error     ErrorKind    `json:"error,omitempty"`
	Version   uint64       `json:"version"`
}

// AnonymousSession is the zero session state.
func AnonymousSession() Session {
	return Session{Phase: PhaseAnonymous}
}

// IsAuthenticated reports whether an identity is attached.
func (s Session) IsAuthenticated() bool {
	return s.Identity != nil
}

// IsReady reports whether the session reached the terminal success state.
func (s Session) IsReady() bool {
	return s.Phase == PhaseReady && s.Identity != nil && s.Profile != nil
}

// SameIdentity reports whether the session still belongs to the given
// identity. Used as the stale-response guard before applying results of
// remote calls that raced a logout.
func (s Session) SameIdentity(identity *Identity) bool {
	if s.Identity == nil || identity == nil {
		return false
	}
	return s.Identity.ID == identity.ID
}
