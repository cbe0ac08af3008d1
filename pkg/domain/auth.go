package domain

// AuthState is the identity attached to a session.
// The zero value is unauthenticated.
type AuthState struct {
	Authenticated bool   `json:"authenticated"`
	UserName      string `json:"user_name,omitempty"`
}

// Anonymous returns the unauthenticated state.
func Anonymous() AuthState {
	return AuthState{}
}

// SignedIn returns an authenticated state for the given display name.
func SignedIn(userName string) AuthState {
	return AuthState{Authenticated: true, UserName: userName}
}
