package server

import (
	"testing"

	"quill/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestProfileFollow_CreatesSubscription(t *testing.T) {
	app, m := setupTestApp(t)

	author := &models.User{ID: 3, Username: "leo"}
	m.users.On("GetByUsername", mock.Anything, "leo").Return(author, nil)
	m.follows.On("Follow", mock.Anything, uint(7), uint(3)).Return(nil)

	resp, err := app.Test(authedRequest(t, "GET", "/profile/leo/follow", 7, nil))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, 302, resp.StatusCode)
	assert.Equal(t, "/follow/", resp.Header.Get("Location"))
	m.follows.AssertExpectations(t)
}

func TestProfileFollow_SelfFollowIsNoOp(t *testing.T) {
	app, m := setupTestApp(t)

	author := &models.User{ID: 7, Username: "leo"}
	m.users.On("GetByUsername", mock.Anything, "leo").Return(author, nil)

	resp, err := app.Test(authedRequest(t, "GET", "/profile/leo/follow", 7, nil))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, 302, resp.StatusCode)
	assert.Equal(t, "/follow/", resp.Header.Get("Location"))
	m.follows.AssertNotCalled(t, "Follow", mock.Anything, mock.Anything, mock.Anything)
}

func TestProfileFollow_UnknownAuthorIsNotFound(t *testing.T) {
	app, m := setupTestApp(t)

	m.users.On("GetByUsername", mock.Anything, "ghost").Return(nil, nil)

	resp, err := app.Test(authedRequest(t, "GET", "/profile/ghost/follow", 7, nil))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, 404, resp.StatusCode)
	m.follows.AssertNotCalled(t, "Follow", mock.Anything, mock.Anything, mock.Anything)
}

func TestProfileUnfollow_RemovesSubscription(t *testing.T) {
	app, m := setupTestApp(t)

	author := &models.User{ID: 3, Username: "leo"}
	m.users.On("GetByUsername", mock.Anything, "leo").Return(author, nil)
	m.follows.On("Unfollow", mock.Anything, uint(7), uint(3)).Return(nil)

	resp, err := app.Test(authedRequest(t, "GET", "/profile/leo/unfollow", 7, nil))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, 302, resp.StatusCode)
	assert.Equal(t, "/follow/", resp.Header.Get("Location"))
	m.follows.AssertExpectations(t)
}

func TestProfileFollow_RequiresLogin(t *testing.T) {
	app, m := setupTestApp(t)

	resp, err := app.Test(authedRequest(t, "GET", "/profile/leo/follow", 0, nil))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, 302, resp.StatusCode)
	assert.Equal(t, "/auth/login/?next=/profile/leo/follow", resp.Header.Get("Location"))
	m.follows.AssertNotCalled(t, "Follow", mock.Anything, mock.Anything, mock.Anything)
}
