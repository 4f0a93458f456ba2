package auth

import (
	"database/sql"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/navidh0/librarian/internal/config"
	"github.com/navidh0/librarian/internal/entities"
)

func setupSessionManager(t *testing.T) (*SessionManager, func()) {
	dbPath := "./test_sessions_" + t.Name() + ".db"

	sqlDB, err := sql.Open("sqlite3", dbPath)
	require.NoError(t, err)

	sm, err := NewSessionManager(sqlDB, config.Auth{
		SessionLifetime: time.Hour,
	})
	require.NoError(t, err)

	cleanup := func() {
		sqlDB.Close()
		os.Remove(dbPath)
	}
	return sm, cleanup
}

// sessionRequest returns a request whose context carries a loaded session.
func sessionRequest(t *testing.T, sm *SessionManager) *http.Request {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	ctx, err := sm.Load(req.Context(), "")
	require.NoError(t, err)
	return req.WithContext(ctx)
}

func TestSessionManager_CreatesSessionsTable(t *testing.T) {
	sm, cleanup := setupSessionManager(t)
	defer cleanup()

	assert.NotNil(t, sm.Store)
}

func TestSessionManager_SessionRoundtrip(t *testing.T) {
	sm, cleanup := setupSessionManager(t)
	defer cleanup()

	req := sessionRequest(t, sm)
	user := &entities.User{ID: 7, Username: "reader", Role: entities.UserRoleMember}

	require.NoError(t, sm.CreateSession(req, user))

	assert.Equal(t, uint(7), sm.GetUserID(req))
	assert.Equal(t, "reader", sm.GetUsername(req))
	assert.Equal(t, entities.UserRoleMember, sm.GetUserRole(req))
	assert.True(t, sm.IsAuthenticated(req))
}

func TestSessionManager_DestroySession(t *testing.T) {
	sm, cleanup := setupSessionManager(t)
	defer cleanup()

	req := sessionRequest(t, sm)
	user := &entities.User{ID: 7, Username: "reader", Role: entities.UserRoleMember}
	require.NoError(t, sm.CreateSession(req, user))

	require.NoError(t, sm.DestroySession(req))

	assert.False(t, sm.IsAuthenticated(req))
	assert.Equal(t, uint(0), sm.GetUserID(req))
}

func TestSessionManager_AnonymousRequest(t *testing.T) {
	sm, cleanup := setupSessionManager(t)
	defer cleanup()

	req := sessionRequest(t, sm)

	assert.False(t, sm.IsAuthenticated(req))
	assert.Equal(t, entities.UserRole(""), sm.GetUserRole(req))
}
