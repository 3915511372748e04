package frontend

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/flowbaker/alloybridge/pkg/clients/bridge"
	"github.com/flowbaker/alloybridge/pkg/domain"

	"github.com/rs/zerolog/log"
)

type State string

const (
	StateNoEmail            State = "no-email"
	StateEmailEntered       State = "email-entered"
	StateCheckingCredential State = "checking-credential"
	StateNeedsAuth          State = "needs-auth"
	StateRedirected         State = "redirected"
	StateHasCredential      State = "has-credential"
	StateLoadingList        State = "loading-list"
	StateListShown          State = "list-shown"
	StateError              State = "error"
)

type Resource string

const (
	ResourceTasks  Resource = "tasks"
	ResourceBoards Resource = "boards"
)

// Connector returns the RunAlloy connector that backs the resource.
func (r Resource) Connector() (domain.ConnectorID, error) {
	switch r {
	case ResourceTasks:
		return domain.ConnectorZohoCRM, nil
	case ResourceBoards:
		return domain.ConnectorMonday, nil
	default:
		return "", fmt.Errorf("unknown resource %q", r)
	}
}

// Backend is the slice of the bridge HTTP API the flow drives.
type Backend interface {
	CheckStatus(ctx context.Context, email string, connector domain.ConnectorID) (*bridge.CredentialStatusResponse, error)
	CreateLink(ctx context.Context, email string, connector domain.ConnectorID) (*bridge.CreateLinkResponse, error)
	ListTasks(ctx context.Context, email string) ([]domain.Task, error)
	ListBoards(ctx context.Context, email string) ([]domain.Board, error)
}

var _ Backend = (*bridge.Client)(nil)

var validTransitions = map[State][]State{
	StateNoEmail:            {StateEmailEntered},
	StateEmailEntered:       {StateCheckingCredential},
	StateCheckingCredential: {StateNeedsAuth, StateHasCredential, StateError},
	StateNeedsAuth:          {StateRedirected, StateError},
	StateHasCredential:      {StateLoadingList},
	StateLoadingList:        {StateListShown, StateError},
	StateRedirected:         {},
	StateListShown:          {},
	StateError:              {},
}

func isValidTransition(from, to State) bool {
	return slices.Contains(validTransitions[from], to)
}

// Flow walks one user from email entry to either a vendor link or a rendered
// list. It makes at most two sequential requests and never retries; any
// failure parks it in StateError.
type Flow struct {
	backend   Backend
	resource  Resource
	connector domain.ConnectorID
	onChange  func(from, to State)

	state   State
	history []State
	email   string
	linkURL string
	tasks   []domain.Task
	boards  []domain.Board
	err     error
}

type FlowDependencies struct {
	Backend  Backend
	Resource Resource
	// OnChange is called after every transition
	OnChange func(from, to State)
}

func NewFlow(deps FlowDependencies) (*Flow, error) {
	resource := deps.Resource
	if resource == "" {
		resource = ResourceTasks
	}

	connector, err := resource.Connector()
	if err != nil {
		return nil, err
	}

	return &Flow{
		backend:   deps.Backend,
		resource:  resource,
		connector: connector,
		onChange:  deps.OnChange,
		state:     StateNoEmail,
		history:   []State{StateNoEmail},
	}, nil
}

func (f *Flow) State() State { return f.state }

func (f *Flow) History() []State { return slices.Clone(f.history) }

func (f *Flow) Email() string { return f.email }

// LinkURL is set once the flow reaches StateRedirected.
func (f *Flow) LinkURL() string { return f.linkURL }

func (f *Flow) Tasks() []domain.Task { return f.tasks }

func (f *Flow) Boards() []domain.Board { return f.boards }

func (f *Flow) Err() error { return f.err }

func (f *Flow) Resource() Resource { return f.resource }

// EnterEmail records the email. A blank email leaves the flow where it is.
func (f *Flow) EnterEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return fmt.Errorf("email is required")
	}

	if err := f.transition(StateEmailEntered); err != nil {
		return err
	}

	f.email = email

	return nil
}

// Run performs the credential check and then either fetches a link or the list.
func (f *Flow) Run(ctx context.Context) error {
	if err := f.transition(StateCheckingCredential); err != nil {
		return err
	}

	status, err := f.backend.CheckStatus(ctx, f.email, f.connector)
	if err != nil {
		return f.fail(err)
	}

	if !status.HasCredential {
		return f.authorize(ctx)
	}

	if err := f.transition(StateHasCredential); err != nil {
		return err
	}

	return f.loadList(ctx)
}

func (f *Flow) authorize(ctx context.Context) error {
	if err := f.transition(StateNeedsAuth); err != nil {
		return err
	}

	link, err := f.backend.CreateLink(ctx, f.email, f.connector)
	if err != nil {
		return f.fail(err)
	}

	f.linkURL = link.LinkURL

	return f.transition(StateRedirected)
}

func (f *Flow) loadList(ctx context.Context) error {
	if err := f.transition(StateLoadingList); err != nil {
		return err
	}

	switch f.resource {
	case ResourceBoards:
		boards, err := f.backend.ListBoards(ctx, f.email)
		if err != nil {
			return f.fail(err)
		}
		f.boards = boards
	default:
		tasks, err := f.backend.ListTasks(ctx, f.email)
		if err != nil {
			return f.fail(err)
		}
		f.tasks = tasks
	}

	return f.transition(StateListShown)
}

func (f *Flow) fail(err error) error {
	f.err = err

	log.Debug().Err(err).Str("state", string(f.state)).Msg("Flow failed")

	if transitionErr := f.transition(StateError); transitionErr != nil {
		return transitionErr
	}

	return err
}

func (f *Flow) transition(to State) error {
	from := f.state

	if !isValidTransition(from, to) {
		return fmt.Errorf("invalid state transition from %s to %s", from, to)
	}

	f.state = to
	f.history = append(f.history, to)

	if f.onChange != nil {
		f.onChange(from, to)
	}

	return nil
}
