// FILE: internal/authflow/flow.go
//
// Multi-step registration flow: email → email code → phone → phone code →
// complete. The flow object is server-side state so a reload or a "back"
// never lets the client skip a verification step.
package authflow

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

type Step string

const (
	StepEmail     Step = "email"
	StepEmailCode Step = "email_code"
	StepPhone     Step = "phone"
	StepPhoneCode Step = "phone_code"
	StepComplete  Step = "complete"
)

var (
	ErrFlowNotFound      = errors.New("registration flow not found or expired")
	ErrNoSession         = errors.New("no backend session attached to flow")
	ErrInvalidTransition = errors.New("invalid registration step transition")
)

// Flow is one in-progress registration. SessionID is the backend's OTP
// session; no step beyond the email form is reachable without it.
type Flow struct {
	ID             string `json:"id"`
	SessionID      string `json:"session_id"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
	Step           Step   `json:"step"`
	EmailCodeSent  bool   `json:"email_code_sent"`
	PhoneCodeSent  bool   `json:"phone_code_sent"`
	EmailCodeEntry string `json:"-"`
	PhoneCodeEntry string `json:"-"`
}

// EmailStarted records a backend OTP session and moves to the email code.
func (f *Flow) EmailStarted(sessionID, email string) error {
	if f.Step != StepEmail {
		return ErrInvalidTransition
	}
	if sessionID == "" {
		return ErrNoSession
	}
	f.SessionID = sessionID
	f.Email = email
	f.EmailCodeSent = true
	f.Step = StepEmailCode
	return nil
}

func (f *Flow) EmailVerified() error {
	if f.Step != StepEmailCode {
		return ErrInvalidTransition
	}
	if f.SessionID == "" {
		return ErrNoSession
	}
	f.Step = StepPhone
	return nil
}

func (f *Flow) PhoneStarted(phone string) error {
	if f.Step != StepPhone {
		return ErrInvalidTransition
	}
	if f.SessionID == "" {
		return ErrNoSession
	}
	f.Phone = phone
	f.PhoneCodeSent = true
	f.Step = StepPhoneCode
	return nil
}

func (f *Flow) PhoneVerified() error {
	if f.Step != StepPhoneCode {
		return ErrInvalidTransition
	}
	if f.SessionID == "" {
		return ErrNoSession
	}
	f.Step = StepComplete
	return nil
}

// Back steps the flow one screen backwards. Leaving a code screen forgets
// only that screen's entered code; everything already verified stays.
func (f *Flow) Back() error {
	switch f.Step {
	case StepComplete:
		f.Step = StepPhoneCode
	case StepPhoneCode:
		f.PhoneCodeEntry = ""
		f.Step = StepPhone
	case StepPhone:
		f.Step = StepEmailCode
	case StepEmailCode:
		f.EmailCodeEntry = ""
		f.Step = StepEmail
	default:
		return ErrInvalidTransition
	}
	return nil
}

// Store keeps live flows in memory; an abandoned registration expires on
// its own.
type Store struct {
	flows *cache.Cache
}

func NewStore() *Store {
	return &Store{flows: cache.New(30*time.Minute, 10*time.Minute)}
}

func (s *Store) Create() *Flow {
	f := &Flow{ID: uuid.NewString(), Step: StepEmail}
	s.flows.Set(f.ID, f, cache.DefaultExpiration)
	return f
}

func (s *Store) Get(id string) (*Flow, error) {
	v, ok := s.flows.Get(id)
	if !ok {
		return nil, ErrFlowNotFound
	}
	return v.(*Flow), nil
}

func (s *Store) Save(f *Flow) {
	s.flows.Set(f.ID, f, cache.DefaultExpiration)
}

func (s *Store) Delete(id string) {
	s.flows.Delete(id)
}
