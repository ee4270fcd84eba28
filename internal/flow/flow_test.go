package flow

import (
	"context"
	"testing"
	"time"

	"madrese/auth-service/internal/autherr"
	"madrese/auth-service/internal/dto"
	"madrese/auth-service/internal/model/user"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBackend struct {
	loginErr    error
	sendErr     error
	verifyErr   error
	completeErr error

	calls    []string
	phones   []string
	profiles []user.Profile
	block    chan struct{}
}

func (f *fakeBackend) wait() {
	if f.block != nil {
		<-f.block
	}
}

func (f *fakeBackend) Login(_ context.Context, nationalID, _ string) (*dto.AuthResponse, error) {
	f.wait()
	f.calls = append(f.calls, "login")
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	return &dto.AuthResponse{User: dto.User{NationalID: nationalID}, RedirectURL: "/dashboard/teacher"}, nil
}

func (f *fakeBackend) SendVerification(_ context.Context, phone string) error {
	f.calls = append(f.calls, "send")
	f.phones = append(f.phones, phone)
	return f.sendErr
}

func (f *fakeBackend) VerifyPhone(_ context.Context, phone, _ string) error {
	f.calls = append(f.calls, "verify")
	f.phones = append(f.phones, phone)
	return f.verifyErr
}

func (f *fakeBackend) CompleteProfile(_ context.Context, p user.Profile) (*dto.AuthResponse, error) {
	f.calls = append(f.calls, "complete")
	f.profiles = append(f.profiles, p)
	if f.completeErr != nil {
		return nil, f.completeErr
	}
	return &dto.AuthResponse{RedirectURL: "/dashboard/" + p.Role}, nil
}

func validProfile() user.Profile {
	return user.Profile{
		NationalID: "1234567890",
		FirstName:  "سارا",
		LastName:   "احمدی",
		Role:       "teacher",
		SchoolID:   "school-1",
	}
}

// toComplete walks a fresh controller to the Complete step.
func toComplete(t *testing.T, c *Controller) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, c.SwitchToRegister())
	require.NoError(t, c.SubmitPhone(ctx, "09123456789"))
	require.NoError(t, c.SubmitCode(ctx, "123456"))
	require.Equal(t, StateComplete, c.State())
}

func TestController_RegistrationPath(t *testing.T) {
	backend := &fakeBackend{}
	c := NewController(backend)
	assert.Equal(t, StateLogin, c.State())

	toComplete(t, c)
	assert.Equal(t, "09123456789", c.Snapshot().Phone)

	profile := validProfile()
	profile.Phone = "09350000000"
	require.NoError(t, c.SubmitProfile(context.Background(), profile))

	snap := c.Snapshot()
	assert.Equal(t, StateAuthenticated, snap.State)
	require.NotNil(t, snap.Result)
	assert.Equal(t, "/dashboard/teacher", snap.Result.RedirectURL)
	assert.Equal(t, []string{"send", "verify", "complete"}, backend.calls)
	assert.Equal(t, "09123456789", backend.profiles[0].Phone, "the verified phone is bound")
}

func TestController_Login(t *testing.T) {
	tests := []struct {
		name      string
		nid, pw   string
		loginErr  error
		wantErr   error
		wantState State
		wantCalls int
	}{
		{"success", "1234567890", "7890", nil, nil, StateAuthenticated, 1},
		{"wrong password", "1234567890", "1234", autherr.ErrInvalidCredentials, autherr.ErrInvalidCredentials, StateLogin, 1},
		{"short national id", "12345", "7890", nil, autherr.ErrInvalidNationalIDFormat, StateLogin, 0},
		{"letters in password", "1234567890", "78a0", nil, autherr.ErrInvalidPasswordFormat, StateLogin, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			backend := &fakeBackend{loginErr: tt.loginErr}
			c := NewController(backend)

			err := c.SubmitLogin(context.Background(), tt.nid, tt.pw)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.ErrorIs(t, c.Err(), tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.wantState, c.State())
			assert.Len(t, backend.calls, tt.wantCalls)
		})
	}
}

func TestController_FailureKeepsStep(t *testing.T) {
	ctx := context.Background()

	t.Run("phone", func(t *testing.T) {
		backend := &fakeBackend{sendErr: autherr.ErrTransportFailure}
		c := NewController(backend)
		require.NoError(t, c.SwitchToRegister())

		assert.ErrorIs(t, c.SubmitPhone(ctx, "0912345"), autherr.ErrInvalidPhoneFormat)
		assert.Empty(t, backend.calls)

		assert.ErrorIs(t, c.SubmitPhone(ctx, "09123456789"), autherr.ErrTransportFailure)
		assert.Equal(t, StateRegister, c.State())
		assert.Empty(t, c.Snapshot().Phone)
	})

	t.Run("code", func(t *testing.T) {
		backend := &fakeBackend{}
		c := NewController(backend)
		require.NoError(t, c.SwitchToRegister())
		require.NoError(t, c.SubmitPhone(ctx, "09123456789"))

		assert.ErrorIs(t, c.SubmitCode(ctx, "12345"), autherr.ErrInvalidCodeFormat)

		for _, err := range []error{autherr.ErrInvalidCode, autherr.ErrExpired, autherr.ErrNoChallenge} {
			backend.verifyErr = err
			assert.ErrorIs(t, c.SubmitCode(ctx, "000000"), err)
			assert.Equal(t, StateVerify, c.State())
		}

		backend.verifyErr = nil
		require.NoError(t, c.SubmitCode(ctx, "123456"))
		assert.NoError(t, c.Err(), "a new submission clears the old error")
		assert.Equal(t, StateComplete, c.State())
	})

	t.Run("profile", func(t *testing.T) {
		backend := &fakeBackend{completeErr: autherr.ErrDuplicateIdentity}
		c := NewController(backend)
		toComplete(t, c)

		bad := validProfile()
		bad.Role = "janitor"
		err := c.SubmitProfile(ctx, bad)
		assert.ErrorIs(t, err, autherr.ErrInvalidProfile)

		assert.ErrorIs(t, c.SubmitProfile(ctx, validProfile()), autherr.ErrDuplicateIdentity)
		assert.Equal(t, StateComplete, c.State())
		assert.Equal(t, "09123456789", c.Snapshot().Phone)
	})
}

func TestController_Resend(t *testing.T) {
	ctx := context.Background()
	backend := &fakeBackend{}
	c := NewController(backend)
	require.NoError(t, c.SwitchToRegister())
	require.NoError(t, c.SubmitPhone(ctx, "09123456789"))

	require.NoError(t, c.Resend())
	assert.Equal(t, StateRegister, c.State())
	assert.Equal(t, "09123456789", c.Snapshot().Phone)

	require.NoError(t, c.SubmitPhone(ctx, "09123456789"))
	assert.Equal(t, []string{"send", "send"}, backend.calls)
	assert.Equal(t, StateVerify, c.State())
}

func TestController_InvalidTransitions(t *testing.T) {
	ctx := context.Background()
	c := NewController(&fakeBackend{})

	assert.ErrorIs(t, c.SubmitPhone(ctx, "09123456789"), ErrInvalidTransition)
	assert.ErrorIs(t, c.SubmitCode(ctx, "123456"), ErrInvalidTransition)
	assert.ErrorIs(t, c.SubmitProfile(ctx, validProfile()), ErrInvalidTransition)
	assert.ErrorIs(t, c.SwitchToLogin(), ErrInvalidTransition)
	assert.ErrorIs(t, c.Resend(), ErrInvalidTransition)

	require.NoError(t, c.SwitchToRegister())
	assert.ErrorIs(t, c.SubmitLogin(ctx, "1234567890", "7890"), ErrInvalidTransition)
	require.NoError(t, c.SwitchToLogin())

	require.NoError(t, c.SubmitLogin(ctx, "1234567890", "7890"))
	assert.ErrorIs(t, c.SwitchToRegister(), ErrInvalidTransition, "authenticated is terminal")

	require.NoError(t, c.Reset())
	snap := c.Snapshot()
	assert.Equal(t, StateLogin, snap.State)
	assert.Nil(t, snap.Result)
}

func TestController_OneRequestInFlight(t *testing.T) {
	backend := &fakeBackend{block: make(chan struct{})}
	c := NewController(backend)

	done := make(chan error)
	go func() { done <- c.SubmitLogin(context.Background(), "1234567890", "7890") }()

	require.Eventually(t, c.Pending, time.Second, time.Millisecond)
	assert.ErrorIs(t, c.SwitchToRegister(), ErrRequestPending)
	assert.ErrorIs(t, c.SubmitLogin(context.Background(), "1234567890", "7890"), ErrRequestPending)
	assert.ErrorIs(t, c.Reset(), ErrRequestPending)

	close(backend.block)
	require.NoError(t, <-done)
	assert.Equal(t, StateAuthenticated, c.State())
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "verify", StateVerify.String())
	assert.Equal(t, "unknown", State(42).String())
}
