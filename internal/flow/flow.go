// Package flow drives the portal sign-in wizard: login, or register by
// verifying a phone and completing a profile. It holds no transport of its
// own; a Backend performs each step.
package flow

import (
	"context"
	"errors"
	"sync"

	"madrese/auth-service/internal/dto"
	"madrese/auth-service/internal/model/user"
	"madrese/auth-service/internal/validate"
)

type State int

const (
	StateLogin State = iota
	StateRegister
	StateVerify
	StateComplete
	StateAuthenticated
)

func (s State) String() string {
	switch s {
	case StateLogin:
		return "login"
	case StateRegister:
		return "register"
	case StateVerify:
		return "verify"
	case StateComplete:
		return "complete"
	case StateAuthenticated:
		return "authenticated"
	default:
		return "unknown"
	}
}

var (
	ErrInvalidTransition = errors.New("flow: action not allowed in current state")
	ErrRequestPending    = errors.New("flow: another request is in flight")
)

// Backend performs the network side of each step.
type Backend interface {
	Login(ctx context.Context, nationalID, password string) (*dto.AuthResponse, error)
	SendVerification(ctx context.Context, phone string) error
	VerifyPhone(ctx context.Context, phone, code string) error
	CompleteProfile(ctx context.Context, profile user.Profile) (*dto.AuthResponse, error)
}

// Snapshot is a consistent view of the controller.
type Snapshot struct {
	State  State
	Phone  string
	Err    error
	Result *dto.AuthResponse
}

// Controller allows one in-flight request at a time and never changes state
// when a step fails.
type Controller struct {
	backend Backend

	mu      sync.Mutex
	state   State
	phone   string
	err     error
	result  *dto.AuthResponse
	pending bool
}

func NewController(backend Backend) *Controller {
	return &Controller{backend: backend, state: StateLogin}
}

func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Snapshot{State: c.state, Phone: c.phone, Err: c.err, Result: c.result}
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Pending reports whether a submission is in flight.
func (c *Controller) Pending() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pending
}

// Err is the error surfaced by the last submission, if any.
func (c *Controller) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.err
}

// begin claims the in-flight slot and clears the previous error.
func (c *Controller) begin(want State) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.pending {
		return ErrRequestPending
	}
	if c.state != want {
		return ErrInvalidTransition
	}
	c.pending = true
	c.err = nil
	return nil
}

// finish releases the slot; on success the controller moves to next.
func (c *Controller) finish(next State, err error, apply func()) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pending = false
	if err != nil {
		c.err = err
		return err
	}
	if apply != nil {
		apply()
	}
	c.state = next
	return nil
}

// switchTo handles the transitions that call no backend.
func (c *Controller) switchTo(from, to State, apply func()) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.pending {
		return ErrRequestPending
	}
	if c.state != from {
		return ErrInvalidTransition
	}
	c.err = nil
	if apply != nil {
		apply()
	}
	c.state = to
	return nil
}

func (c *Controller) SubmitLogin(ctx context.Context, nationalID, password string) error {
	if err := c.begin(StateLogin); err != nil {
		return err
	}
	if err := validate.Login(nationalID, password); err != nil {
		return c.finish(StateLogin, err, nil)
	}

	resp, err := c.backend.Login(ctx, nationalID, password)
	return c.finish(StateAuthenticated, err, func() { c.result = resp })
}

func (c *Controller) SwitchToRegister() error {
	return c.switchTo(StateLogin, StateRegister, nil)
}

func (c *Controller) SwitchToLogin() error {
	return c.switchTo(StateRegister, StateLogin, nil)
}

// SubmitPhone issues a challenge; the phone is carried into Verify.
func (c *Controller) SubmitPhone(ctx context.Context, phone string) error {
	if err := c.begin(StateRegister); err != nil {
		return err
	}
	if err := validate.Phone(phone); err != nil {
		return c.finish(StateRegister, err, nil)
	}

	err := c.backend.SendVerification(ctx, phone)
	return c.finish(StateVerify, err, func() { c.phone = phone })
}

func (c *Controller) SubmitCode(ctx context.Context, code string) error {
	if err := c.begin(StateVerify); err != nil {
		return err
	}
	if err := validate.Code(code); err != nil {
		return c.finish(StateVerify, err, nil)
	}

	c.mu.Lock()
	phone := c.phone
	c.mu.Unlock()

	err := c.backend.VerifyPhone(ctx, phone, code)
	return c.finish(StateComplete, err, nil)
}

// Resend goes back to Register with the phone kept as prefill; the next
// SubmitPhone replaces the live challenge.
func (c *Controller) Resend() error {
	return c.switchTo(StateVerify, StateRegister, nil)
}

// SubmitProfile registers the account for the verified phone. Any phone in
// profile is ignored.
func (c *Controller) SubmitProfile(ctx context.Context, profile user.Profile) error {
	if err := c.begin(StateComplete); err != nil {
		return err
	}

	c.mu.Lock()
	profile.Phone = c.phone
	c.mu.Unlock()

	if err := validate.Profile(profile); err != nil {
		return c.finish(StateComplete, err, nil)
	}

	resp, err := c.backend.CompleteProfile(ctx, profile)
	return c.finish(StateAuthenticated, err, func() { c.result = resp })
}

// Reset returns to Login from any state, e.g. after logout.
func (c *Controller) Reset() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.pending {
		return ErrRequestPending
	}
	c.state = StateLogin
	c.phone = ""
	c.err = nil
	c.result = nil
	return nil
}
