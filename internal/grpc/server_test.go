package grpc

import (
	"context"
	"io"
	"log/slog"
	"net"
	"testing"
	"time"

	"madrese/auth-service/internal/identity"
	"madrese/auth-service/internal/model/user"
	"madrese/auth-service/internal/pkg"
	"madrese/auth-service/internal/session"
	"madrese/auth-service/internal/testutils"
	authsdk "madrese/auth-service/packages/auth-sdk"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
)

type fixture struct {
	client   *Client
	sessions *session.Manager
	sess     *session.Session
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := testutils.SetupTestDB(t)
	redisClient, _ := testutils.SetupTestRedis(t)
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	tokens, err := pkg.NewTokenIssuer(pkg.JWTConfig{Secret: "grpc-test", ExpireTime: time.Hour})
	require.NoError(t, err)
	sessions := session.NewManager(session.NewRepository(redisClient, time.Hour), identity.NewRepository(db), tokens, log)

	testutils.CreateTestUser(db, testutils.WithNationalID("1234567890"), testutils.WithRole(user.RoleCounselor))
	sess, _, err := sessions.Login(context.Background(), "1234567890", "7890")
	require.NoError(t, err)

	lis := bufconn.Listen(1 << 20)
	srv := NewServerWithListener(lis, NewSessionService(sessions), log)
	go func() { _ = srv.Start() }()
	t.Cleanup(srv.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	return &fixture{client: NewClient(conn), sessions: sessions, sess: sess}
}

func TestResolveSession(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	accessToken, err := f.sessions.IssueAccessToken(f.sess)
	require.NoError(t, err)

	tests := []struct {
		name string
		ctx  context.Context
		req  *ResolveSessionRequest
	}{
		{"token in request", ctx, &ResolveSessionRequest{SessionToken: f.sess.Token}},
		{"session header", metadata.AppendToOutgoingContext(ctx, authsdk.SessionTokenHeader, f.sess.Token), &ResolveSessionRequest{}},
		{"bearer access token", metadata.AppendToOutgoingContext(ctx, "authorization", "Bearer "+accessToken), &ResolveSessionRequest{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := f.client.ResolveSession(tt.ctx, tt.req)
			require.NoError(t, err)
			assert.Equal(t, "1234567890", resp.User.NationalID)
			assert.Equal(t, "counselor", resp.User.Role)
			assert.Equal(t, "/dashboard/counselor", resp.Dashboard)
		})
	}
}

func TestResolveSession_Errors(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.client.ResolveSession(ctx, &ResolveSessionRequest{})
	assert.Equal(t, codes.InvalidArgument, status.Code(err))

	_, err = f.client.ResolveSession(ctx, &ResolveSessionRequest{SessionToken: "unknown"})
	assert.Equal(t, codes.Unauthenticated, status.Code(err))

	require.NoError(t, f.sessions.Logout(ctx, f.sess.Token))
	_, err = f.client.ResolveSession(ctx, &ResolveSessionRequest{SessionToken: f.sess.Token})
	assert.Equal(t, codes.Unauthenticated, status.Code(err))
}

func TestGetMenu(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	for _, role := range append(user.Roles(), user.Role("janitor"), user.Role("")) {
		t.Run(string(role), func(t *testing.T) {
			resp, err := f.client.GetMenu(ctx, &GetMenuRequest{Role: string(role)})
			require.NoError(t, err)
			assert.NotEmpty(t, resp.Entries)
			assert.Equal(t, string(role), resp.Role)
		})
	}

	resp, err := f.client.GetMenu(ctx, &GetMenuRequest{Role: "liaison_office"})
	require.NoError(t, err)
	assert.Equal(t, "/dashboard/liaison-office", resp.Dashboard)
}

func TestJSONCodec(t *testing.T) {
	c := jsonCodec{}
	assert.Equal(t, "json", c.Name())

	raw, err := c.Marshal(&ResolveSessionRequest{SessionToken: "abc"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"sessionToken":"abc"}`, string(raw))

	var out GetMenuRequest
	require.NoError(t, c.Unmarshal([]byte(`{"role":"parent"}`), &out))
	assert.Equal(t, "parent", out.Role)
}
