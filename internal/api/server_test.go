package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"image"
	"image/png"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/Aka-Ayaan/courtify/config"
	"github.com/Aka-Ayaan/courtify/infra/database"
	"github.com/Aka-Ayaan/courtify/internal/dto"
	"github.com/Aka-Ayaan/courtify/pkg/storage"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const frontendURL = "http://localhost:5173"

type captureMailer struct {
	mu     sync.Mutex
	tokens map[string]string
}

func (m *captureMailer) SendVerifyEmail(_ context.Context, to string, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tokens[to] = token
	return nil
}

func (m *captureMailer) token(to string) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.tokens[to]
}

func newTestApp(t *testing.T) (*fiber.App, *captureMailer) {
	t.Helper()

	assets := t.TempDir()
	cfg := config.Config{
		DBDriver:       "sqlite",
		DatabaseDSN:    "file:" + uuid.NewString() + "?mode=memory&cache=shared",
		FrontendURL:    frontendURL,
		BaseURL:        "http://localhost:5000",
		AccessSecret:   "test-secret",
		AccessTTLHours: 1,
		AssetsDir:      assets,
	}

	db, err := database.Open(cfg)
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	mailer := &captureMailer{tokens: map[string]string{}}
	app := NewApp(cfg, Deps{
		DB:       db,
		Mailer:   mailer,
		Uploader: storage.NewLocalUploader(assets, assetsPrefix),
	})
	return app, mailer
}

type response struct {
	Status   int
	Body     []byte
	Location string
}

func (r response) decode(t *testing.T, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(r.Body, v), string(r.Body))
}

func do(t *testing.T, app *fiber.App, req *http.Request) response {
	t.Helper()
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return response{Status: resp.StatusCode, Body: body, Location: resp.Header.Get("Location")}
}

func jsonRequest(method, target, token string, body any) *http.Request {
	b, _ := json.Marshal(body)
	req := httptest.NewRequest(method, target, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req
}

func getRequest(target, token string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req
}

func validatePath(email, password, userType string) string {
	q := url.Values{}
	q.Set("email", email)
	q.Set("password", password)
	q.Set("userType", userType)
	return "/auth/validate?" + q.Encode()
}

// registerAndLogin signs up, verifies and logs in, returning the bearer token.
func registerAndLogin(t *testing.T, app *fiber.App, mailer *captureMailer, email, userType string) dto.Identity {
	t.Helper()

	res := do(t, app, jsonRequest(http.MethodPost, "/auth/signup", "", dto.SignupRequest{
		Email: email, Password: "secret1", Name: "Test", UserType: userType,
	}))
	require.Equal(t, fiber.StatusCreated, res.Status, string(res.Body))

	res = do(t, app, getRequest("/auth/verify?token="+mailer.token(email), ""))
	require.Equal(t, fiber.StatusFound, res.Status)

	res = do(t, app, getRequest(validatePath(email, "secret1", userType), ""))
	require.Equal(t, fiber.StatusOK, res.Status, string(res.Body))

	var identity dto.Identity
	res.decode(t, &identity)
	return identity
}

func TestSignupVerifyLoginScenario(t *testing.T) {
	app, mailer := newTestApp(t)

	res := do(t, app, jsonRequest(http.MethodPost, "/auth/signup", "", map[string]string{
		"email":    "a@b.com",
		"password": "secret1",
		"name":     "A",
		"phone":    "+92 300 1234567",
		"userType": "player",
	}))
	require.Equal(t, fiber.StatusCreated, res.Status)
	assert.JSONEq(t, `{"message":"Account created. Check your email to verify."}`, string(res.Body))

	res = do(t, app, getRequest(validatePath("a@b.com", "secret1", "player"), ""))
	assert.Equal(t, fiber.StatusForbidden, res.Status)
	assert.JSONEq(t, `{"error":"Please verify your email first"}`, string(res.Body))

	token := mailer.token("a@b.com")
	require.NotEmpty(t, token)

	res = do(t, app, getRequest("/auth/verify?token="+token, ""))
	assert.Equal(t, fiber.StatusFound, res.Status)
	assert.Equal(t, frontendURL+"/?verified=1&type=player", res.Location)

	res = do(t, app, getRequest("/auth/verify?token="+token, ""))
	assert.Equal(t, fiber.StatusBadRequest, res.Status)
	assert.Equal(t, "Invalid or expired token", string(res.Body))

	res = do(t, app, getRequest(validatePath("a@b.com", "secret1", "player"), ""))
	require.Equal(t, fiber.StatusOK, res.Status)

	var identity dto.Identity
	res.decode(t, &identity)
	assert.True(t, identity.Authenticated)
	assert.Equal(t, "a@b.com", identity.Email)
	assert.Equal(t, "player", identity.UserType)
	assert.NotEmpty(t, identity.Token)
	assert.NotNil(t, identity.ExpiresAt)

	res = do(t, app, getRequest("/auth/me", identity.Token))
	require.Equal(t, fiber.StatusOK, res.Status)
	var me dto.Identity
	res.decode(t, &me)
	assert.Equal(t, identity.UserID, me.UserID)
	assert.Empty(t, me.Token)
}

func TestSignupErrors(t *testing.T) {
	app, _ := newTestApp(t)

	body := dto.SignupRequest{Email: "a@b.com", Password: "secret1", UserType: "player"}
	require.Equal(t, fiber.StatusCreated, do(t, app, jsonRequest(http.MethodPost, "/auth/signup", "", body)).Status)

	res := do(t, app, jsonRequest(http.MethodPost, "/auth/signup", "", body))
	assert.Equal(t, fiber.StatusConflict, res.Status)
	assert.JSONEq(t, `{"error":"Email already registered"}`, string(res.Body))

	body.UserType = "arena_owners"
	assert.Equal(t, fiber.StatusCreated, do(t, app, jsonRequest(http.MethodPost, "/auth/signup", "", body)).Status)

	res = do(t, app, jsonRequest(http.MethodPost, "/auth/signup", "", dto.SignupRequest{Email: "a@b.com"}))
	assert.Equal(t, fiber.StatusBadRequest, res.Status)
	assert.JSONEq(t, `{"error":"Email and password required"}`, string(res.Body))

	res = do(t, app, jsonRequest(http.MethodPost, "/auth/signup", "", dto.SignupRequest{Email: "nope", Password: "x"}))
	assert.Equal(t, fiber.StatusBadRequest, res.Status)
	assert.JSONEq(t, `{"error":"Invalid email format"}`, string(res.Body))
}

func TestValidateErrors(t *testing.T) {
	app, mailer := newTestApp(t)
	registerAndLogin(t, app, mailer, "a@b.com", "player")

	cases := []struct {
		path   string
		status int
	}{
		{validatePath("a@b.com", "wrong", "player"), fiber.StatusUnauthorized},
		{validatePath("ghost@b.com", "secret1", "player"), fiber.StatusUnauthorized},
		{validatePath("a@b.com", "secret1", "admin"), fiber.StatusBadRequest},
		{"/auth/validate", fiber.StatusBadRequest},
	}
	for _, tc := range cases {
		res := do(t, app, getRequest(tc.path, ""))
		assert.Equal(t, tc.status, res.Status, tc.path)
	}

	res := do(t, app, getRequest(validatePath("ghost@b.com", "secret1", "player"), ""))
	assert.JSONEq(t, `{"error":"Invalid email or password"}`, string(res.Body))
}

func TestVerifyWithoutToken(t *testing.T) {
	app, _ := newTestApp(t)

	res := do(t, app, getRequest("/auth/verify", ""))
	assert.Equal(t, fiber.StatusBadRequest, res.Status)
	assert.Equal(t, "Invalid verification link", string(res.Body))
}

func TestResendEndpoint(t *testing.T) {
	app, mailer := newTestApp(t)

	require.Equal(t, fiber.StatusCreated, do(t, app, jsonRequest(http.MethodPost, "/auth/signup", "",
		dto.SignupRequest{Email: "a@b.com", Password: "secret1", UserType: "owner"})).Status)
	first := mailer.token("a@b.com")

	res := do(t, app, jsonRequest(http.MethodPost, "/auth/resend", "", dto.ResendRequest{Email: "a@b.com", UserType: "owner"}))
	require.Equal(t, fiber.StatusAccepted, res.Status)
	second := mailer.token("a@b.com")
	assert.NotEqual(t, first, second)

	res = do(t, app, getRequest("/auth/verify?token="+second, ""))
	assert.Equal(t, frontendURL+"/?verified=1&type=owner", res.Location)

	res = do(t, app, jsonRequest(http.MethodPost, "/auth/resend", "", dto.ResendRequest{Email: "a@b.com", UserType: "owner"}))
	assert.Equal(t, fiber.StatusConflict, res.Status)

	res = do(t, app, jsonRequest(http.MethodPost, "/auth/resend", "", dto.ResendRequest{Email: "x@b.com", UserType: "owner"}))
	assert.Equal(t, fiber.StatusNotFound, res.Status)
}

func TestArenaNotFound(t *testing.T) {
	app, _ := newTestApp(t)

	for _, path := range []string{"/arena/999", "/arena/abc", "/arena/999/slots"} {
		res := do(t, app, getRequest(path, ""))
		assert.Equal(t, fiber.StatusNotFound, res.Status, path)
		assert.JSONEq(t, `{"error":"Arena not found"}`, string(res.Body), path)
	}
}

func TestOwnerRoutesRequireOwnerToken(t *testing.T) {
	app, mailer := newTestApp(t)
	player := registerAndLogin(t, app, mailer, "p@b.com", "player")

	body := dto.CreateArenaRequest{Name: "Arena", City: "Lahore"}

	res := do(t, app, jsonRequest(http.MethodPost, "/arenas", "", body))
	assert.Equal(t, fiber.StatusUnauthorized, res.Status)

	res = do(t, app, jsonRequest(http.MethodPost, "/arenas", "garbage", body))
	assert.Equal(t, fiber.StatusUnauthorized, res.Status)

	res = do(t, app, jsonRequest(http.MethodPost, "/arenas", player.Token, body))
	assert.Equal(t, fiber.StatusForbidden, res.Status)

	res = do(t, app, getRequest("/owner/arenas", player.Token))
	assert.Equal(t, fiber.StatusForbidden, res.Status)
}

func multipartImage(t *testing.T, target, token, filename string, data []byte) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, target, &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	return req
}

func TestOwnerManagesArena(t *testing.T) {
	app, mailer := newTestApp(t)
	owner := registerAndLogin(t, app, mailer, "o@b.com", "arena_owners")
	assert.Equal(t, "owner", owner.UserType)

	res := do(t, app, jsonRequest(http.MethodPost, "/arenas", owner.Token, dto.CreateArenaRequest{
		Name:         "Goal Zone",
		City:         "Karachi",
		Address:      "DHA Phase 6",
		PricePerHour: 4000,
		Timing:       "10:00 PM - 1:00 AM",
		Amenities:    []string{"Floodlights"},
	}))
	require.Equal(t, fiber.StatusCreated, res.Status, string(res.Body))
	var created dto.ArenaDetail
	res.decode(t, &created)

	arenaPath := fmt.Sprintf("/arena/%d", created.ID)

	for _, court := range []dto.AddCourtRequest{
		{CourtType: "Futsal", Name: "Pitch 1"},
		{CourtType: "Cricket", Name: "Net A"},
		{CourtType: "Futsal", Name: "Pitch 2"},
	} {
		res = do(t, app, jsonRequest(http.MethodPost, arenaPath+"/courts", owner.Token, court))
		require.Equal(t, fiber.StatusCreated, res.Status, string(res.Body))
	}

	var pngBuf bytes.Buffer
	require.NoError(t, png.Encode(&pngBuf, image.NewRGBA(image.Rect(0, 0, 8, 8))))

	res = do(t, app, multipartImage(t, arenaPath+"/images", owner.Token, "front.png", pngBuf.Bytes()))
	require.Equal(t, fiber.StatusCreated, res.Status, string(res.Body))
	var uploaded dto.ArenaImageResponse
	res.decode(t, &uploaded)
	assert.True(t, strings.HasPrefix(uploaded.ImagePath, fmt.Sprintf("/assets/arenas/%d/", created.ID)))

	res = do(t, app, multipartImage(t, arenaPath+"/images", owner.Token, "notes.txt", []byte("hi")))
	assert.Equal(t, fiber.StatusBadRequest, res.Status)

	res = do(t, app, getRequest(uploaded.ImagePath, ""))
	assert.Equal(t, fiber.StatusOK, res.Status)

	res = do(t, app, getRequest(arenaPath, ""))
	require.Equal(t, fiber.StatusOK, res.Status)
	var detail dto.ArenaDetail
	res.decode(t, &detail)
	assert.Equal(t, []string{"Floodlights"}, detail.Amenities)
	assert.Equal(t, []string{}, detail.Rules)
	assert.Equal(t, []string{uploaded.ImagePath}, detail.Images)
	assert.Equal(t, map[string][]string{
		"Futsal":  {"Pitch 1", "Pitch 2"},
		"Cricket": {"Net A"},
	}, detail.Courts)

	res = do(t, app, getRequest("/arenas", ""))
	require.Equal(t, fiber.StatusOK, res.Status)
	var list []dto.ArenaSummary
	res.decode(t, &list)
	require.Len(t, list, 1)
	require.NotNil(t, list[0].Image)
	assert.Equal(t, uploaded.ImagePath, *list[0].Image)
	assert.Equal(t, "Karachi", list[0].Location)

	res = do(t, app, getRequest(fmt.Sprintf("/owner/arenas?ownerId=%d", owner.UserID), owner.Token))
	require.Equal(t, fiber.StatusOK, res.Status)
	res = do(t, app, getRequest(fmt.Sprintf("/owner/arenas?ownerId=%d", owner.UserID+1), owner.Token))
	assert.Equal(t, fiber.StatusForbidden, res.Status)

	res = do(t, app, getRequest(arenaPath+"/slots", ""))
	require.Equal(t, fiber.StatusOK, res.Status)
	var slots dto.TimeSlotsResponse
	res.decode(t, &slots)
	assert.Equal(t, []string{"10:00 PM - 11:00 PM", "11:00 PM - 12:00 AM", "12:00 AM - 1:00 AM"}, slots.Slots)

	res = do(t, app, getRequest("/court-types", ""))
	require.Equal(t, fiber.StatusOK, res.Status)
	var types []dto.CourtTypeResponse
	res.decode(t, &types)
	assert.Len(t, types, 2)

	// another owner cannot touch this arena
	other := registerAndLogin(t, app, mailer, "o2@b.com", "owner")
	res = do(t, app, jsonRequest(http.MethodPost, arenaPath+"/courts", other.Token, dto.AddCourtRequest{CourtType: "Futsal", Name: "X"}))
	assert.Equal(t, fiber.StatusForbidden, res.Status)
}

func TestHealth(t *testing.T) {
	app, _ := newTestApp(t)

	res := do(t, app, getRequest("/", ""))
	assert.Equal(t, fiber.StatusOK, res.Status)
	assert.JSONEq(t, `{"status":"ok"}`, string(res.Body))
}
