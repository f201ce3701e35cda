package handler

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"devlink/backend/internal/hub"
	"devlink/backend/internal/models"
	"devlink/backend/internal/service"
	"devlink/backend/internal/testutil"
	"devlink/backend/pkg/jwt"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func init() {
	gin.SetMode(gin.TestMode)
}

type testAPI struct {
	t      *testing.T
	router *gin.Engine
	repos  testutil.Repositories
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()

	log := testutil.Logger()
	repos := testutil.NewRepositories(testutil.GetEmptyTestDB(t))
	h := hub.NewHub(log)

	router := NewRouter(Dependencies{
		JWTSecret: testSecret,
		Users:     repos.Users,
		Follows: service.NewFollowOrchestrator(repos.Users, repos.Graph, repos.Ledger, repos.Tx,
			service.WithPublisher(h), service.WithLogger(log)),
		Notifications: service.NewNotificationService(repos.Ledger),
		Gate:          service.NewFeedGate(repos.Users, repos.Graph),
		Hub:           h,
		Log:           log,
	})

	return &testAPI{t: t, router: router, repos: repos}
}

func (a *testAPI) user(nickname string, private bool) (models.User, string) {
	a.t.Helper()
	u := testutil.CreateUser(a.t, a.repos.Users, nickname, private)
	token, err := jwt.GenerateToken(testSecret, u.ID)
	require.NoError(a.t, err)
	return u, token
}

func (a *testAPI) do(method, path, token string, body any) *httptest.ResponseRecorder {
	a.t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(a.t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func TestPing(t *testing.T) {
	api := newTestAPI(t)

	w := api.do(http.MethodGet, "/ping", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"pong"}`, w.Body.String())
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestFollowFlow_PublicAccount(t *testing.T) {
	api := newTestAPI(t)
	alice, aliceToken := api.user("alice", false)
	bob, bobToken := api.user("bob", false)

	w := api.do(http.MethodPost, fmt.Sprintf("/api/v1/users/%d/follow", bob.ID), aliceToken, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.JSONEq(t, `{"state":"ACTIVE","changed":true}`, w.Body.String())

	w = api.do(http.MethodPost, fmt.Sprintf("/api/v1/users/%d/follow", bob.ID), aliceToken, nil)
	assert.JSONEq(t, `{"state":"ACTIVE","changed":false}`, w.Body.String())

	w = api.do(http.MethodGet, "/api/v1/notifications/unread-count", bobToken, nil)
	assert.JSONEq(t, `{"count":1}`, w.Body.String())

	w = api.do(http.MethodGet, "/api/v1/notifications", bobToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	page := decode[PaginatedNotificationResponse](t, w)
	require.Len(t, page.Data, 1)
	assert.Equal(t, models.NotificationFollow, page.Data[0].Type)
	assert.Equal(t, alice.ID, page.Data[0].SenderID)
	assert.False(t, page.Data[0].Actionable)
	assert.Equal(t, int64(1), page.Meta.TotalItems)

	w = api.do(http.MethodPost, fmt.Sprintf("/api/v1/notifications/%d/read", page.Data[0].ID), bobToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, decode[NotificationResponse](t, w).IsRead)

	w = api.do(http.MethodGet, "/api/v1/notifications/unread-count", bobToken, nil)
	assert.JSONEq(t, `{"count":0}`, w.Body.String())

	w = api.do(http.MethodGet, "/api/v1/notifications?is_read=false", bobToken, nil)
	assert.Empty(t, decode[PaginatedNotificationResponse](t, w).Data)

	w = api.do(http.MethodGet, fmt.Sprintf("/api/v1/users/%d", bob.ID), aliceToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	profile := decode[PublicUserResponse](t, w)
	assert.Equal(t, models.StateActive, profile.Relationship)
	assert.Equal(t, models.StateNone, profile.FollowsYou)
	require.NotNil(t, profile.FollowersCount)
	assert.Equal(t, int64(1), *profile.FollowersCount)

	w = api.do(http.MethodDelete, fmt.Sprintf("/api/v1/users/%d/follow", bob.ID), aliceToken, nil)
	assert.JSONEq(t, `{"changed":true}`, w.Body.String())

	w = api.do(http.MethodDelete, fmt.Sprintf("/api/v1/users/%d/follow", bob.ID), aliceToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"changed":false}`, w.Body.String())
}

func TestFollowFlow_PrivateAccount(t *testing.T) {
	api := newTestAPI(t)
	alice, aliceToken := api.user("alice", false)
	bob, bobToken := api.user("bob", true)

	w := api.do(http.MethodGet, fmt.Sprintf("/api/v1/users/%d/followers", bob.ID), aliceToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = api.do(http.MethodPost, fmt.Sprintf("/api/v1/users/%d/follow", bob.ID), aliceToken, nil)
	assert.JSONEq(t, `{"state":"PENDING","changed":true}`, w.Body.String())

	typ := models.NotificationFollowRequestReceived
	w = api.do(http.MethodGet, "/api/v1/notifications?type="+string(typ), bobToken, nil)
	page := decode[PaginatedNotificationResponse](t, w)
	require.Len(t, page.Data, 1)
	request := page.Data[0]
	assert.True(t, request.Actionable)
	require.NotNil(t, request.Status)
	assert.Equal(t, models.FollowPending, *request.Status)

	w = api.do(http.MethodGet, "/api/v1/notifications?type=follow_request_sent", aliceToken, nil)
	assert.Len(t, decode[PaginatedNotificationResponse](t, w).Data, 1)

	respondPath := fmt.Sprintf("/api/v1/notifications/%d/respond", request.ID)

	// Only the recipient can answer.
	w = api.do(http.MethodPost, respondPath, aliceToken, RespondInput{Action: "accept"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = api.do(http.MethodPost, respondPath, bobToken, RespondInput{Action: "maybe"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = api.do(http.MethodPost, respondPath, bobToken, RespondInput{Action: "accept"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.JSONEq(t, `{"state":"ACTIVE","changed":true}`, w.Body.String())

	w = api.do(http.MethodPost, respondPath, bobToken, RespondInput{Action: "reject"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "already handled")

	w = api.do(http.MethodGet, "/api/v1/notifications?type=follow_accepted", aliceToken, nil)
	accepted := decode[PaginatedNotificationResponse](t, w)
	require.Len(t, accepted.Data, 1)
	assert.Equal(t, bob.ID, accepted.Data[0].SenderID)

	w = api.do(http.MethodGet, fmt.Sprintf("/api/v1/users/%d/followers", bob.ID), aliceToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	followers := decode[PaginatedUserResponse](t, w)
	require.Len(t, followers.Data, 1)
	assert.Equal(t, alice.ID, followers.Data[0].ID)

	// Anonymous viewers still cannot see the list.
	w = api.do(http.MethodGet, fmt.Sprintf("/api/v1/users/%d/followers", bob.ID), "", nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestFollowFlow_Reject(t *testing.T) {
	api := newTestAPI(t)
	_, aliceToken := api.user("alice", false)
	bob, bobToken := api.user("bob", true)

	followPath := fmt.Sprintf("/api/v1/users/%d/follow", bob.ID)
	api.do(http.MethodPost, followPath, aliceToken, nil)

	w := api.do(http.MethodGet, "/api/v1/notifications?type=follow_request_received", bobToken, nil)
	request := decode[PaginatedNotificationResponse](t, w).Data[0]

	w = api.do(http.MethodPost, fmt.Sprintf("/api/v1/notifications/%d/respond", request.ID), bobToken, RespondInput{Action: "reject"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"state":"REJECTED","changed":true}`, w.Body.String())

	w = api.do(http.MethodPost, followPath, aliceToken, nil)
	assert.JSONEq(t, `{"state":"REJECTED","changed":false}`, w.Body.String())

	w = api.do(http.MethodGet, "/api/v1/notifications?type=follow_accepted", aliceToken, nil)
	assert.Empty(t, decode[PaginatedNotificationResponse](t, w).Data)
}

func TestFollowFlow_CancelledRequest(t *testing.T) {
	api := newTestAPI(t)
	_, aliceToken := api.user("alice", false)
	bob, bobToken := api.user("bob", true)

	followPath := fmt.Sprintf("/api/v1/users/%d/follow", bob.ID)
	requests := func() []NotificationResponse {
		w := api.do(http.MethodGet, "/api/v1/notifications?type=follow_request_received", bobToken, nil)
		require.Equal(t, http.StatusOK, w.Code)
		return decode[PaginatedNotificationResponse](t, w).Data
	}

	api.do(http.MethodPost, followPath, aliceToken, nil)
	w := api.do(http.MethodDelete, followPath, aliceToken, nil)
	assert.JSONEq(t, `{"changed":true}`, w.Body.String())

	withdrawn := requests()
	require.Len(t, withdrawn, 1)
	assert.False(t, withdrawn[0].Actionable)
	assert.Equal(t, models.FollowCancelled, *withdrawn[0].Status)

	w = api.do(http.MethodPost, followPath, aliceToken, nil)
	assert.JSONEq(t, `{"state":"PENDING","changed":true}`, w.Body.String())

	current := requests()
	require.Len(t, current, 2)
	require.True(t, current[0].Actionable)
	assert.False(t, current[1].Actionable)

	w = api.do(http.MethodPost, fmt.Sprintf("/api/v1/notifications/%d/respond", current[0].ID), bobToken, RespondInput{Action: "accept"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	for _, n := range requests() {
		assert.False(t, n.Actionable, "notification %d", n.ID)
	}
}

func TestFollow_Errors(t *testing.T) {
	api := newTestAPI(t)
	alice, aliceToken := api.user("alice", false)

	tests := []struct {
		name   string
		method string
		path   string
		token  string
		want   int
	}{
		{name: "self follow", method: http.MethodPost, path: fmt.Sprintf("/api/v1/users/%d/follow", alice.ID), token: aliceToken, want: http.StatusBadRequest},
		{name: "unknown user", method: http.MethodPost, path: "/api/v1/users/999/follow", token: aliceToken, want: http.StatusNotFound},
		{name: "bad id", method: http.MethodPost, path: "/api/v1/users/abc/follow", token: aliceToken, want: http.StatusBadRequest},
		{name: "no token", method: http.MethodPost, path: "/api/v1/users/999/follow", want: http.StatusUnauthorized},
		{name: "self unfollow", method: http.MethodDelete, path: fmt.Sprintf("/api/v1/users/%d/follow", alice.ID), token: aliceToken, want: http.StatusBadRequest},
		{name: "unknown profile", method: http.MethodGet, path: "/api/v1/users/999", token: aliceToken, want: http.StatusNotFound},
		{name: "bad notification filter", method: http.MethodGet, path: "/api/v1/notifications?type=poke", token: aliceToken, want: http.StatusBadRequest},
		{name: "bad is_read", method: http.MethodGet, path: "/api/v1/notifications?is_read=maybe", token: aliceToken, want: http.StatusBadRequest},
		{name: "limit too large", method: http.MethodGet, path: "/api/v1/notifications?limit=1000", token: aliceToken, want: http.StatusBadRequest},
		{name: "page too large", method: http.MethodGet, path: "/api/v1/notifications?page=10001", token: aliceToken, want: http.StatusBadRequest},
		{name: "page overflows offset", method: http.MethodGet, path: fmt.Sprintf("/api/v1/users/%d/followers?page=9223372036854775807&limit=100", alice.ID), token: aliceToken, want: http.StatusBadRequest},
		{name: "missing notification", method: http.MethodPost, path: "/api/v1/notifications/999/read", token: aliceToken, want: http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := api.do(tt.method, tt.path, tt.token, nil)
			assert.Equal(t, tt.want, w.Code, w.Body.String())
			assert.NotEmpty(t, decode[ErrorResponse](t, w).Error)
		})
	}
}

func TestMarkManyRead(t *testing.T) {
	api := newTestAPI(t)
	alice, aliceToken := api.user("alice", false)

	for i := 0; i < 5; i++ {
		_, token := api.user(fmt.Sprintf("fan%d", i), false)
		w := api.do(http.MethodPost, fmt.Sprintf("/api/v1/users/%d/follow", alice.ID), token, nil)
		require.Equal(t, http.StatusOK, w.Code)
	}

	w := api.do(http.MethodPost, "/api/v1/notifications/read", aliceToken, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.JSONEq(t, `{"updated":5}`, w.Body.String())

	w = api.do(http.MethodPost, "/api/v1/notifications/read", aliceToken, MarkManyReadInput{})
	assert.JSONEq(t, `{"updated":0}`, w.Body.String())

	w = api.do(http.MethodGet, "/api/v1/notifications?page=2&limit=2", aliceToken, nil)
	page := decode[PaginatedNotificationResponse](t, w)
	assert.Len(t, page.Data, 2)
	assert.Equal(t, PaginationMeta{TotalItems: 5, TotalPages: 3, CurrentPage: 2, PageSize: 2}, page.Meta)
}

func TestUpdateMe(t *testing.T) {
	api := newTestAPI(t)
	alice, aliceToken := api.user("alice", false)
	_, bobToken := api.user("bob", false)

	private, hide := true, false
	w := api.do(http.MethodPatch, "/api/v1/users/me", aliceToken, UpdateProfileInput{IsPrivate: &private, ShowFollowerCount: &hide})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	me := decode[PrivateUserResponse](t, w)
	assert.True(t, me.IsPrivate)
	assert.False(t, me.ShowFollowerCount)

	w = api.do(http.MethodGet, fmt.Sprintf("/api/v1/users/%d", alice.ID), bobToken, nil)
	profile := decode[PublicUserResponse](t, w)
	assert.True(t, profile.IsPrivate)
	assert.False(t, profile.CanView)
	assert.Nil(t, profile.FollowersCount)

	w = api.do(http.MethodPost, fmt.Sprintf("/api/v1/users/%d/follow", alice.ID), bobToken, nil)
	assert.JSONEq(t, `{"state":"PENDING","changed":true}`, w.Body.String())

	long := strings.Repeat("x", 51)
	w = api.do(http.MethodPatch, "/api/v1/users/me", aliceToken, UpdateProfileInput{DisplayName: &long})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = api.do(http.MethodGet, "/api/v1/users/me", aliceToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "alice", decode[PrivateUserResponse](t, w).Nickname)
}

func TestNotificationStream(t *testing.T) {
	api := newTestAPI(t)
	server := httptest.NewServer(api.router)
	defer server.Close()

	alice, aliceToken := api.user("alice", false)
	_, bobToken := api.user("bob", false)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, server.URL+"/api/v1/notifications/stream?access_token="+aliceToken, nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	// The stream is subscribed once headers are flushed.
	w := api.do(http.MethodPost, fmt.Sprintf("/api/v1/users/%d/follow", alice.ID), bobToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	scanner := bufio.NewScanner(resp.Body)
	var event, data string
	for scanner.Scan() {
		line := scanner.Text()
		if v, ok := strings.CutPrefix(line, "event:"); ok {
			event = v
		}
		if v, ok := strings.CutPrefix(line, "data:"); ok {
			data = v
			break
		}
	}
	require.NoError(t, scanner.Err())
	assert.Equal(t, "notification", event)

	var payload struct {
		Type    string              `json:"type"`
		Payload models.Notification `json:"payload"`
	}
	require.NoError(t, json.Unmarshal([]byte(data), &payload))
	assert.Equal(t, "notification", payload.Type)
	assert.Equal(t, models.NotificationFollow, payload.Payload.Type)
	assert.Equal(t, alice.ID, payload.Payload.RecipientID)
}
