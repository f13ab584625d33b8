// Package session holds the live viewer sessions: one form controller
// plus one notification router per viewer, keyed by session id.
package session

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"scout-exchange/internal/domain"
	"scout-exchange/internal/gateway"
	"scout-exchange/internal/service/form"
	"scout-exchange/internal/service/router"
)

// Session is one viewer's slice of the exchange. All operations are
// serialized by the session mutex, the single-actor model the form and
// router are designed for.
type Session struct {
	ID string

	mu     sync.Mutex
	gw     gateway.Gateway
	form   *form.Controller
	router *router.Router

	// viewer is the read-only internal controller hydrated when a
	// notification is opened in the form; nil until then.
	viewer *form.Controller
}

// View is the JSON projection of a session returned by the HTTP surface.
type View struct {
	ID                      string                    `json:"id"`
	Role                    domain.Role               `json:"role"`
	Draft                   domain.ServiceRequest     `json:"draft"`
	EditableFields          map[domain.Field]bool     `json:"editableFields"`
	RequiredFieldsSatisfied bool                      `json:"requiredFieldsSatisfied"`
	NotificationState       router.State              `json:"notificationState"`
	Notification            *domain.NotificationEvent `json:"notification,omitempty"`
	HasViewer               bool                      `json:"hasViewer"`
}

// ViewerView is the projection of the hydrated read-only viewer form.
type ViewerView struct {
	Role   domain.Role           `json:"role"`
	Record domain.ServiceRequest `json:"record"`
}

func (s *Session) snapshotLocked() View {
	return View{
		ID:                      s.ID,
		Role:                    s.form.Role(),
		Draft:                   s.form.Draft(),
		EditableFields:          s.form.EditableFields(),
		RequiredFieldsSatisfied: s.form.RequiredFieldsSatisfied(),
		NotificationState:       s.router.State(),
		Notification:            s.router.Current(),
		HasViewer:               s.viewer != nil,
	}
}

func (s *Session) Snapshot() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// SetRole reinitializes the form for the new role and rebinds the router
// to the complementary channel. The hydrated viewer, if any, is dropped.
func (s *Session) SetRole(role domain.Role) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.form.SetRole(role)
	s.viewer = nil
	return s.router.Bind(role)
}

func (s *Session) UpdateField(field domain.Field, value string) View {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.form.UpdateField(field, value)
	return s.snapshotLocked()
}

func (s *Session) ToggleDeliverable(value domain.Deliverable, selected bool) View {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.form.ToggleDeliverable(value, selected)
	return s.snapshotLocked()
}

func (s *Session) LoadRecord(record domain.ServiceRequest) View {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.form.LoadRecord(record)
	return s.snapshotLocked()
}

func (s *Session) Submit(ctx context.Context) (domain.Envelope, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.form.Submit(ctx)
}

func (s *Session) Reset() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.form.Reset()
	return s.snapshotLocked()
}

// ViewDetails moves the announced notification to the detailed view.
func (s *Session) ViewDetails() *domain.NotificationEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.router.ViewDetails()
}

func (s *Session) DismissNotification() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.router.Dismiss()
}

// OpenNotification hands the current notification off through the
// router's callback, which hydrates a read-only viewer form role-forced
// to internal. Returns the opened payload, or nil when no notification
// is current.
func (s *Session) OpenNotification() *domain.ServiceRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.router.OpenInForm()
}

// hydrateViewer is the router's handoff callback. It runs synchronously
// inside OpenNotification, so the session lock is already held.
func (s *Session) hydrateViewer(record domain.ServiceRequest) {
	viewer := form.NewController(domain.RoleInternal, s.gw)
	viewer.LoadRecord(record)
	s.viewer = viewer
}

// Viewer returns the hydrated read-only form, or nil before any handoff.
func (s *Session) Viewer() *ViewerView {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.viewer == nil {
		return nil
	}
	return &ViewerView{
		Role:   s.viewer.Role(),
		Record: s.viewer.Draft(),
	}
}

// NotificationState returns the router state without the full snapshot.
func (s *Session) NotificationState() router.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.router.State()
}

func (s *Session) close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.router.Close()
}

// Manager owns the session registry. Sessions live only in process
// memory; disposing one releases its subscription.
type Manager struct {
	gw gateway.Gateway

	mu       sync.RWMutex
	sessions map[string]*Session
}

func NewManager(gw gateway.Gateway) *Manager {
	return &Manager{
		gw:       gw,
		sessions: make(map[string]*Session),
	}
}

func (m *Manager) Create(role domain.Role) (*Session, error) {
	r, err := router.NewRouter(role, m.gw)
	if err != nil {
		return nil, err
	}

	s := &Session{
		ID:     uuid.NewString(),
		gw:     m.gw,
		form:   form.NewController(role, m.gw),
		router: r,
	}
	r.OnOpenInForm(s.hydrateViewer)

	m.mu.Lock()
	m.sessions[s.ID] = s
	m.mu.Unlock()
	return s, nil
}

func (m *Manager) Get(id string) (*Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	return s, ok
}

// Destroy disposes a session and its subscription. Idempotent.
func (m *Manager) Destroy(id string) {
	m.mu.Lock()
	s, ok := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()

	if ok {
		s.close()
	}
}

func (m *Manager) Close() {
	m.mu.Lock()
	sessions := m.sessions
	m.sessions = make(map[string]*Session)
	m.mu.Unlock()

	for _, s := range sessions {
		s.close()
	}
}
