// Package view holds the UI state renderers driven by the upload controller.
package view

import (
	"sync"

	"github.com/google/uuid"
	"github.com/pdf2json/client/internal/models"
)

// maxToasts bounds the notifications kept in a snapshot.
const maxToasts = 5

// Snapshot is everything a page needs to render the converter UI.
type Snapshot struct {
	Version        uint64           `json:"version" msgpack:"version"`
	File           *models.FileInfo `json:"file,omitempty" msgpack:"file,omitempty"`
	UploadArmed    bool             `json:"uploadArmed" msgpack:"uploadArmed"`
	UploadEnabled  bool             `json:"uploadEnabled" msgpack:"uploadEnabled"`
	Loading        bool             `json:"loading" msgpack:"loading"`
	ResultVisible  bool             `json:"resultVisible" msgpack:"resultVisible"`
	Result         string           `json:"result" msgpack:"result"`
	ErrorVisible   bool             `json:"errorVisible" msgpack:"errorVisible"`
	ErrorMessage   string           `json:"errorMessage" msgpack:"errorMessage"`
	ErrorDetails   string           `json:"errorDetails,omitempty" msgpack:"errorDetails,omitempty"`
	APIStatus      models.APIStatus `json:"apiStatus" msgpack:"apiStatus"`
	APIStatusLabel string           `json:"apiStatusLabel" msgpack:"apiStatusLabel"`
	Toasts         []models.Toast   `json:"toasts" msgpack:"toasts"`
}

// State is a thread-safe view that keeps the latest snapshot and fans every
// change out to subscribers.
type State struct {
	mu   sync.RWMutex
	snap Snapshot
	subs map[chan Snapshot]struct{}
}

// NewState creates a view with the upload trigger hidden and the API status
// still being checked.
func NewState() *State {
	return &State{
		snap: Snapshot{
			UploadEnabled:  true,
			APIStatus:      models.APIStatusChecking,
			APIStatusLabel: models.APIStatusChecking.Label(),
			Toasts:         []models.Toast{},
		},
		subs: make(map[chan Snapshot]struct{}),
	}
}

// Snapshot returns a copy of the current state.
func (s *State) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap.clone()
}

// Subscribe returns a channel that always holds the most recent snapshot not
// yet received. Call the returned func to unsubscribe.
func (s *State) Subscribe() (<-chan Snapshot, func()) {
	ch := make(chan Snapshot, 1)
	s.mu.Lock()
	s.subs[ch] = struct{}{}
	ch <- s.snap.clone()
	s.mu.Unlock()

	return ch, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if _, ok := s.subs[ch]; ok {
			delete(s.subs, ch)
			close(ch)
		}
	}
}

func (s *State) update(fn func(*Snapshot)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	fn(&s.snap)
	s.snap.Version++
	snap := s.snap.clone()
	for ch := range s.subs {
		select {
		case ch <- snap:
		default:
			// Replace the stale snapshot the subscriber has not read yet.
			select {
			case <-ch:
			default:
			}
			ch <- snap
		}
	}
}

func (s Snapshot) clone() Snapshot {
	if s.File != nil {
		f := *s.File
		s.File = &f
	}
	s.Toasts = append([]models.Toast{}, s.Toasts...)
	return s
}

// ShowFileInfo displays the selected file's name and size.
func (s *State) ShowFileInfo(info models.FileInfo) {
	s.update(func(snap *Snapshot) { snap.File = &info })
}

// ArmUpload shows the upload trigger.
func (s *State) ArmUpload() {
	s.update(func(snap *Snapshot) { snap.UploadArmed = true })
}

// SetUploadEnabled enables or disables the upload trigger.
func (s *State) SetUploadEnabled(enabled bool) {
	s.update(func(snap *Snapshot) { snap.UploadEnabled = enabled })
}

// SetLoading shows or hides the loading indicator.
func (s *State) SetLoading(loading bool) {
	s.update(func(snap *Snapshot) { snap.Loading = loading })
}

// ShowResult displays the rendered JSON.
func (s *State) ShowResult(text string) {
	s.update(func(snap *Snapshot) {
		snap.Result = text
		snap.ResultVisible = true
	})
}

// ShowError displays an error message and hides any result.
func (s *State) ShowError(message string) {
	s.update(func(snap *Snapshot) {
		snap.ErrorMessage = message
		snap.ErrorVisible = true
		snap.ResultVisible = false
	})
}

// ShowErrorDetails appends a details block under the error.
func (s *State) ShowErrorDetails(details string) {
	s.update(func(snap *Snapshot) { snap.ErrorDetails = details })
}

// ClearResultAndError hides result and error panels and drops error details.
func (s *State) ClearResultAndError() {
	s.update(func(snap *Snapshot) {
		snap.ResultVisible = false
		snap.ErrorVisible = false
		snap.ErrorDetails = ""
	})
}

// Toast queues a transient notification.
func (s *State) Toast(message string, kind models.ToastKind) {
	s.update(func(snap *Snapshot) {
		snap.Toasts = append(snap.Toasts, models.Toast{
			ID:      uuid.New().String(),
			Message: message,
			Kind:    kind,
		})
		if len(snap.Toasts) > maxToasts {
			snap.Toasts = snap.Toasts[len(snap.Toasts)-maxToasts:]
		}
	})
}

// SetAPIStatus updates the health indicator.
func (s *State) SetAPIStatus(status models.APIStatus) {
	s.update(func(snap *Snapshot) {
		snap.APIStatus = status
		snap.APIStatusLabel = status.Label()
	})
}
