// Package cli is a terminal front end for the sign-in wizard. It runs the
// flow controller against the REST API and shows the role menu afterwards.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"madrese/auth-service/internal/autherr"
	"madrese/auth-service/internal/dto"
	"madrese/auth-service/internal/flow"
	"madrese/auth-service/internal/model/user"
)

// API is what the CLI needs from the auth service.
type API interface {
	flow.Backend
	Menu(ctx context.Context) (*dto.MenuResponse, error)
	Logout(ctx context.Context) error
}

type App struct {
	api  API
	ctrl *flow.Controller
	p    *prompter
	out  io.Writer
}

func NewApp(api API, in io.Reader, out io.Writer) *App {
	return &App{
		api:  api,
		ctrl: flow.NewController(api),
		p:    newPrompter(in, out),
		out:  out,
	}
}

// Run drives the wizard until the user quits or input ends.
func (a *App) Run(ctx context.Context) error {
	for {
		var err error
		switch a.ctrl.State() {
		case flow.StateLogin:
			err = a.loginStep(ctx)
		case flow.StateRegister:
			err = a.registerStep(ctx)
		case flow.StateVerify:
			err = a.verifyStep(ctx)
		case flow.StateComplete:
			err = a.completeStep(ctx)
		case flow.StateAuthenticated:
			err = a.authenticated(ctx)
		}

		switch {
		case errors.Is(err, errQuit), errors.Is(err, io.EOF):
			return nil
		case err != nil:
			return err
		}
	}
}

var errQuit = errors.New("quit")

// report prints a step failure; only input errors stop the loop.
func (a *App) report(err error) error {
	if err == nil {
		return nil
	}
	var authErr *autherr.Error
	if errors.As(err, &authErr) {
		fmt.Fprintf(a.out, "! %s\n", authErr.Message)
		return nil
	}
	if errors.Is(err, flow.ErrInvalidTransition) || errors.Is(err, flow.ErrRequestPending) {
		return err
	}
	fmt.Fprintf(a.out, "! %v\n", err)
	return nil
}

func (a *App) loginStep(ctx context.Context) error {
	choice, err := a.p.text("[1] login  [2] register  [q] quit")
	if err != nil {
		return err
	}

	switch choice {
	case "1":
		nid, err := a.p.text("National ID (10 digits)")
		if err != nil {
			return err
		}
		pw, err := a.p.secret("Password (last 4 digits of national ID)")
		if err != nil {
			return err
		}
		return a.report(a.ctrl.SubmitLogin(ctx, nid, pw))
	case "2":
		return a.ctrl.SwitchToRegister()
	case "q":
		return errQuit
	default:
		fmt.Fprintln(a.out, "! unknown choice")
		return nil
	}
}

func (a *App) registerStep(ctx context.Context) error {
	prefilled := a.ctrl.Snapshot().Phone
	prompt := "Phone number (09xxxxxxxxx), [b] to go back"
	if prefilled != "" {
		prompt = fmt.Sprintf("Phone number [%s], Enter to reuse, [b] to go back", prefilled)
	}

	phone, err := a.p.text(prompt)
	if err != nil {
		return err
	}
	if phone == "" {
		phone = prefilled
	}
	if phone == "" || phone == "b" {
		return a.ctrl.SwitchToLogin()
	}
	if err := a.report(a.ctrl.SubmitPhone(ctx, phone)); err != nil {
		return err
	}
	if a.ctrl.State() == flow.StateVerify {
		fmt.Fprintf(a.out, "A verification code was sent to %s\n", phone)
	}
	return nil
}

func (a *App) verifyStep(ctx context.Context) error {
	code, err := a.p.text("Verification code (6 digits), [r] to resend")
	if err != nil {
		return err
	}
	if code == "r" {
		return a.ctrl.Resend()
	}
	return a.report(a.ctrl.SubmitCode(ctx, code))
}

func (a *App) completeStep(ctx context.Context) error {
	fmt.Fprintf(a.out, "Complete your profile for %s\n", a.ctrl.Snapshot().Phone)

	roles := make([]string, 0, len(user.Roles()))
	for _, r := range user.Roles() {
		roles = append(roles, string(r))
	}

	prompts := []string{
		"National ID (10 digits)",
		"First name",
		"Last name",
		"Email (optional)",
		"Role (" + strings.Join(roles, ", ") + ")",
		"School ID",
	}
	answers := make([]string, len(prompts))
	for i, prompt := range prompts {
		v, err := a.p.text(prompt)
		if err != nil {
			return err
		}
		answers[i] = v
	}

	return a.report(a.ctrl.SubmitProfile(ctx, user.Profile{
		NationalID: answers[0],
		FirstName:  answers[1],
		LastName:   answers[2],
		Email:      answers[3],
		Role:       answers[4],
		SchoolID:   answers[5],
	}))
}

func (a *App) authenticated(ctx context.Context) error {
	if res := a.ctrl.Snapshot().Result; res != nil {
		fmt.Fprintf(a.out, "Welcome %s %s, opening %s\n", res.User.FirstName, res.User.LastName, res.RedirectURL)
	}

	if m, err := a.api.Menu(ctx); err != nil {
		if err := a.report(err); err != nil {
			return err
		}
	} else {
		for i, e := range m.Entries {
			fmt.Fprintf(a.out, "%2d. %s  %s\n", i+1, e.Label, e.Destination)
		}
	}

	answer, err := a.p.text("Log out? [y/N]")
	if err != nil {
		return err
	}
	if !strings.EqualFold(answer, "y") {
		return errQuit
	}

	if err := a.api.Logout(ctx); err != nil {
		return a.report(err)
	}
	fmt.Fprintln(a.out, "Logged out")
	return a.ctrl.Reset()
}
