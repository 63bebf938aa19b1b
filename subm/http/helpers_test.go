package http_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/niri-portal/backend/audit"
	"github.com/niri-portal/backend/notif"
	submhttp "github.com/niri-portal/backend/subm/http"
	"github.com/niri-portal/backend/subm/submrepo"
	"github.com/niri-portal/backend/subm/submsrvc"
	"github.com/niri-portal/backend/user"
	userhttp "github.com/niri-portal/backend/user/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testJwtKey = []byte("test-signing-key")

type jsonEnvelope struct {
	Status  string          `json:"status"`
	Data    json.RawMessage `json:"data"`
	ErrCode string          `json:"code"`
	ErrMsg  string          `json:"message"`
}

func newTestRouter(t *testing.T) *chi.Mux {
	t.Helper()

	auditStore := audit.NewInMemStore()
	submStore := submrepo.NewInMemRepo(auditStore)
	userSrvc := user.NewUserSrvc(user.NewInMemRepo())
	submSrvc := submsrvc.NewSubmSrvc(submStore, auditStore, notif.NewChanEmitter(100))

	router := chi.NewRouter()
	userhttp.NewUserHttpHandler(userSrvc, testJwtKey).RegisterRoutes(router)
	submhttp.NewSubmHttpHandler(submSrvc, userSrvc).RegisterRoutes(router, testJwtKey)
	return router
}

func doJsonReq(t *testing.T, router *chi.Mux, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) jsonEnvelope {
	t.Helper()
	var envelope jsonEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope), "body: %s", rec.Body.String())
	return envelope
}

func decodeSuccessData(t *testing.T, rec *httptest.ResponseRecorder, out any) {
	t.Helper()
	require.Equal(t, http.StatusOK, rec.Code, "body: %s", rec.Body.String())
	envelope := decodeEnvelope(t, rec)
	require.Equal(t, "success", envelope.Status)
	require.NoError(t, json.Unmarshal(envelope.Data, out))
}

func assertErrorResponse(t *testing.T, rec *httptest.ResponseRecorder, wantStatus int, wantCode string) {
	t.Helper()
	assert.Equal(t, wantStatus, rec.Code, "body: %s", rec.Body.String())
	envelope := decodeEnvelope(t, rec)
	assert.Equal(t, "error", envelope.Status)
	assert.Equal(t, wantCode, envelope.ErrCode)
	assert.NotEmpty(t, envelope.ErrMsg)
}

// registerAndLogin creates a portal account and returns a bearer token for it.
func registerAndLogin(t *testing.T, router *chi.Mux, username, role, stateUt string) string {
	t.Helper()

	rec := doJsonReq(t, router, http.MethodPost, "/users", "", map[string]string{
		"username": username,
		"email":    fmt.Sprintf("%s@example.gov.in", username),
		"password": "a strong enough password",
		"role":     role,
		"state_ut": stateUt,
	})
	require.Equal(t, http.StatusOK, rec.Code, "register %s: %s", username, rec.Body.String())

	rec = doJsonReq(t, router, http.MethodPost, "/auth/login", "", map[string]string{
		"username": username,
		"password": "a strong enough password",
	})
	var login struct {
		Token string `json:"token"`
	}
	decodeSuccessData(t, rec, &login)
	require.NotEmpty(t, login.Token)
	return login.Token
}

func createSubmission(t *testing.T, router *chi.Mux, token string) submhttp.DetailedSubmView {
	t.Helper()

	rec := doJsonReq(t, router, http.MethodPost, "/submissions", token, map[string]any{
		"form_data": map[string]any{
			"water_supply": map[string]any{"households_covered": 1532},
		},
	})
	var view submhttp.DetailedSubmView
	decodeSuccessData(t, rec, &view)
	return view
}

func postAction(t *testing.T, router *chi.Mux, token, submUuid, action, comment string) *httptest.ResponseRecorder {
	t.Helper()
	path := fmt.Sprintf("/submissions/%s/actions/%s", submUuid, action)
	var body any
	if comment != "" {
		body = map[string]string{"comment": comment}
	}
	return doJsonReq(t, router, http.MethodPost, path, token, body)
}
