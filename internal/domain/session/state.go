package session

import "pet-walks-client/internal/ports/auth"

// Status del ciclo de vida de la sesión.
type Status string

const (
	StatusChecking         Status = "checking"
	StatusAuthenticated    Status = "authenticated"
	StatusNotAuthenticated Status = "not_authenticated"
)

// State es el valor en memoria de la sesión.
// Invariante: Status == StatusAuthenticated <=> Token != "" && User != nil.
type State struct {
	Status Status
	Token  string
	User   *auth.User
}

// Authenticated es un atajo para las pantallas.
func (s State) Authenticated() bool { return s.Status == StatusAuthenticated }

// ActionKind etiqueta las transiciones posibles.
type ActionKind int

const (
	// ActionRestore: credenciales guardadas verificadas al arrancar.
	ActionRestore ActionKind = iota + 1
	// ActionSignIn: login fresco o authenticate().
	ActionSignIn
	// ActionSignOut: logout, verificación fallida o sin credenciales.
	ActionSignOut
)

type Action struct {
	Kind  ActionKind
	Token string
	User  auth.User
}

func SignIn(token string, user auth.User) Action {
	return Action{Kind: ActionSignIn, Token: token, User: user}
}

func Restore(token string, user auth.User) Action {
	return Action{Kind: ActionRestore, Token: token, User: user}
}

func SignOut() Action { return Action{Kind: ActionSignOut} }

// Initial es el estado al construir el manager.
func Initial() State { return State{Status: StatusChecking} }

// Reduce es la función de transición. Pura: no toca storage ni red.
// Restore o SignIn sin token quedan como not_authenticated para no romper el invariante.
func Reduce(s State, a Action) State {
	switch a.Kind {
	case ActionRestore, ActionSignIn:
		if a.Token == "" {
			return State{Status: StatusNotAuthenticated}
		}
		u := a.User
		return State{Status: StatusAuthenticated, Token: a.Token, User: &u}
	case ActionSignOut:
		return State{Status: StatusNotAuthenticated}
	default:
		return s
	}
}
