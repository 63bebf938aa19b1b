package http_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateSubmissionOverHttp(t *testing.T) {
	router := newTestRouter(t)
	nodalToken := registerAndLogin(t, router, "nodal-mh", "NODAL_OFFICER", "MH")

	view := createSubmission(t, router, nodalToken)

	assert.Equal(t, "DRAFT", view.Status)
	assert.Equal(t, "MH", view.StateUt)
	assert.Equal(t, 10, view.Progress)
	assert.Equal(t, "Draft", view.StatusInfo.Label)
	assert.Contains(t, view.AvailableActions, "submit_to_state")
	assert.NotNil(t, view.FormData["water_supply"])
}

func TestCreateSubmissionRequiresAuth(t *testing.T) {
	router := newTestRouter(t)

	rec := doJsonReq(t, router, http.MethodPost, "/submissions", "", map[string]any{
		"form_data": map[string]any{},
	})
	assertErrorResponse(t, rec, http.StatusUnauthorized, "unauthorized_access")
}

func TestCreateSubmissionWrongRole(t *testing.T) {
	router := newTestRouter(t)
	approverToken := registerAndLogin(t, router, "approver-mh", "STATE_APPROVER", "MH")

	rec := doJsonReq(t, router, http.MethodPost, "/submissions", approverToken, map[string]any{
		"form_data": map[string]any{},
	})
	assertErrorResponse(t, rec, http.StatusForbidden, "unauthorized_actor")
}

func TestWorkflowOverHttp(t *testing.T) {
	router := newTestRouter(t)
	nodalToken := registerAndLogin(t, router, "nodal-ka", "NODAL_OFFICER", "KA")
	approverToken := registerAndLogin(t, router, "approver-ka", "STATE_APPROVER", "KA")

	created := createSubmission(t, router, nodalToken)

	rec := postAction(t, router, nodalToken, created.UUID, "submit_to_state", "")
	var afterSubmit struct {
		Submission struct {
			Status  string `json:"status"`
			Version int    `json:"version"`
		} `json:"submission"`
		AuditEntry struct {
			Action  string            `json:"action"`
			Details map[string]string `json:"details"`
		} `json:"audit_entry"`
	}
	decodeSuccessData(t, rec, &afterSubmit)
	assert.Equal(t, "SUBMITTED_TO_STATE", afterSubmit.Submission.Status)
	assert.Equal(t, 2, afterSubmit.Submission.Version)
	assert.Equal(t, "submit_to_state", afterSubmit.AuditEntry.Action)
	assert.Equal(t, "DRAFT", afterSubmit.AuditEntry.Details["prev_status"])
	assert.Equal(t, "SUBMITTED_TO_STATE", afterSubmit.AuditEntry.Details["next_status"])

	// rejecting without a comment fails and changes nothing
	rec = postAction(t, router, approverToken, created.UUID, "state_reject", "")
	assertErrorResponse(t, rec, http.StatusBadRequest, "missing_required_comment")

	rec = postAction(t, router, approverToken, created.UUID, "state_reject", "Missing Annex 3")
	var afterReject struct {
		Submission struct {
			Status         string `json:"status"`
			RejectionCount int    `json:"rejection_count"`
		} `json:"submission"`
	}
	decodeSuccessData(t, rec, &afterReject)
	assert.Equal(t, "REJECTED", afterReject.Submission.Status)
	assert.Equal(t, 1, afterReject.Submission.RejectionCount)

	// a repeat rejection without a resubmission in between is final
	rec = postAction(t, router, approverToken, created.UUID, "state_reject", "still missing annex 3")
	var afterSecondReject struct {
		Submission struct {
			Status         string `json:"status"`
			RejectionCount int    `json:"rejection_count"`
		} `json:"submission"`
	}
	decodeSuccessData(t, rec, &afterSecondReject)
	assert.Equal(t, "REJECTED_FINAL", afterSecondReject.Submission.Status)
	assert.Equal(t, 2, afterSecondReject.Submission.RejectionCount)

	// nothing moves out of a terminal status
	rec = postAction(t, router, approverToken, created.UUID, "state_reject", "once more")
	assertErrorResponse(t, rec, http.StatusConflict, "invalid_transition")

	// the nodal officer never holds the approve action
	rec = postAction(t, router, nodalToken, created.UUID, "approve", "")
	assertErrorResponse(t, rec, http.StatusForbidden, "unauthorized_actor")
}

func TestWorkflowActionOnUnknownSubmission(t *testing.T) {
	router := newTestRouter(t)
	nodalToken := registerAndLogin(t, router, "nodal-tn", "NODAL_OFFICER", "TN")

	rec := postAction(t, router, nodalToken, "0b43b1f8-9a71-4a9e-b3f0-60dc6cf9b9e5", "submit_to_state", "")
	assertErrorResponse(t, rec, http.StatusNotFound, "submission_not_found")

	rec = postAction(t, router, nodalToken, "not-a-uuid", "submit_to_state", "")
	assertErrorResponse(t, rec, http.StatusNotFound, "submission_not_found")
}

func TestUnknownActionOverHttp(t *testing.T) {
	router := newTestRouter(t)
	nodalToken := registerAndLogin(t, router, "nodal-up", "NODAL_OFFICER", "UP")
	created := createSubmission(t, router, nodalToken)

	rec := postAction(t, router, nodalToken, created.UUID, "escalate", "")
	assertErrorResponse(t, rec, http.StatusBadRequest, "unknown_action")
}

func TestJurisdictionMismatchOverHttp(t *testing.T) {
	router := newTestRouter(t)
	nodalToken := registerAndLogin(t, router, "nodal-mh2", "NODAL_OFFICER", "MH")
	otherApproverToken := registerAndLogin(t, router, "approver-ka2", "STATE_APPROVER", "KA")

	created := createSubmission(t, router, nodalToken)
	rec := postAction(t, router, nodalToken, created.UUID, "submit_to_state", "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = postAction(t, router, otherApproverToken, created.UUID, "approve", "")
	assertErrorResponse(t, rec, http.StatusForbidden, "jurisdiction_mismatch")
}

func TestSubmissionListVisibilityOverHttp(t *testing.T) {
	router := newTestRouter(t)
	nodalMh := registerAndLogin(t, router, "nodal-mh3", "NODAL_OFFICER", "MH")
	nodalKa := registerAndLogin(t, router, "nodal-ka3", "NODAL_OFFICER", "KA")
	approverMh := registerAndLogin(t, router, "approver-mh3", "STATE_APPROVER", "MH")
	reviewer := registerAndLogin(t, router, "reviewer3", "MOSPI_REVIEWER", "")

	createSubmission(t, router, nodalMh)
	createSubmission(t, router, nodalMh)
	createSubmission(t, router, nodalKa)

	list := func(token string) []struct {
		StateUt string `json:"state_ut"`
	} {
		rec := doJsonReq(t, router, http.MethodGet, "/submissions", token, nil)
		var views []struct {
			StateUt string `json:"state_ut"`
		}
		decodeSuccessData(t, rec, &views)
		return views
	}

	assert.Len(t, list(reviewer), 3)
	assert.Len(t, list(nodalMh), 2)
	assert.Len(t, list(nodalKa), 1)

	mhView := list(approverMh)
	assert.Len(t, mhView, 2)
	for _, v := range mhView {
		assert.Equal(t, "MH", v.StateUt)
	}
}

func TestCommentVisibilityOverHttp(t *testing.T) {
	router := newTestRouter(t)
	nodalToken := registerAndLogin(t, router, "nodal-rj", "NODAL_OFFICER", "RJ")
	approverToken := registerAndLogin(t, router, "approver-rj", "STATE_APPROVER", "RJ")

	created := createSubmission(t, router, nodalToken)
	rec := postAction(t, router, nodalToken, created.UUID, "submit_to_state", "")
	require.Equal(t, http.StatusOK, rec.Code)
	rec = postAction(t, router, approverToken, created.UUID, "state_reject", "please revise table 2")
	require.Equal(t, http.StatusOK, rec.Code)

	get := func(token string) []struct {
		AuthorRole string `json:"author_role"`
		Text       string `json:"text"`
	} {
		rec := doJsonReq(t, router, http.MethodGet, "/submissions/"+created.UUID, token, nil)
		var view struct {
			Comments []struct {
				AuthorRole string `json:"author_role"`
				Text       string `json:"text"`
			} `json:"comments"`
		}
		decodeSuccessData(t, rec, &view)
		return view.Comments
	}

	approverComments := get(approverToken)
	require.Len(t, approverComments, 1)
	assert.Equal(t, "please revise table 2", approverComments[0].Text)

	// the rejection comment was authored by the state approver, so the
	// nodal officer's comment feed stays empty
	assert.Empty(t, get(nodalToken))
}

func TestDetailReadScopingOverHttp(t *testing.T) {
	router := newTestRouter(t)
	nodalOwner := registerAndLogin(t, router, "nodal-mh5", "NODAL_OFFICER", "MH")
	nodalOther := registerAndLogin(t, router, "nodal-mh6", "NODAL_OFFICER", "MH")
	approverKa := registerAndLogin(t, router, "approver-ka5", "STATE_APPROVER", "KA")
	reviewer := registerAndLogin(t, router, "reviewer5", "MOSPI_REVIEWER", "")

	created := createSubmission(t, router, nodalOwner)
	detailPath := "/submissions/" + created.UUID
	auditPath := detailPath + "/audit"

	// another nodal officer probing the uuid learns nothing
	rec := doJsonReq(t, router, http.MethodGet, detailPath, nodalOther, nil)
	assertErrorResponse(t, rec, http.StatusNotFound, "submission_not_found")
	rec = doJsonReq(t, router, http.MethodGet, auditPath, nodalOther, nil)
	assertErrorResponse(t, rec, http.StatusNotFound, "submission_not_found")

	// a state approver from another jurisdiction is rejected outright
	rec = doJsonReq(t, router, http.MethodGet, detailPath, approverKa, nil)
	assertErrorResponse(t, rec, http.StatusForbidden, "jurisdiction_mismatch")
	rec = doJsonReq(t, router, http.MethodGet, auditPath, approverKa, nil)
	assertErrorResponse(t, rec, http.StatusForbidden, "jurisdiction_mismatch")

	// central roles read everything
	rec = doJsonReq(t, router, http.MethodGet, detailPath, reviewer, nil)
	var view struct {
		StateUt string `json:"state_ut"`
	}
	decodeSuccessData(t, rec, &view)
	assert.Equal(t, "MH", view.StateUt)
}

func TestActorAuditIsAdminOnly(t *testing.T) {
	router := newTestRouter(t)
	nodalToken := registerAndLogin(t, router, "nodal-hr", "NODAL_OFFICER", "HR")
	adminToken := registerAndLogin(t, router, "admin-hr", "ADMIN", "")

	created := createSubmission(t, router, nodalToken)
	path := "/audit?actor=" + created.OwnerUUID

	rec := doJsonReq(t, router, http.MethodGet, path, nodalToken, nil)
	assertErrorResponse(t, rec, http.StatusForbidden, "unauthorized_actor")

	rec = doJsonReq(t, router, http.MethodGet, path, adminToken, nil)
	var entries []struct {
		Action string `json:"action"`
	}
	decodeSuccessData(t, rec, &entries)
	require.Len(t, entries, 1)
	assert.Equal(t, "create_submission", entries[0].Action)
}

func TestAuditTrailOverHttp(t *testing.T) {
	router := newTestRouter(t)
	nodalToken := registerAndLogin(t, router, "nodal-gj", "NODAL_OFFICER", "GJ")

	created := createSubmission(t, router, nodalToken)
	rec := postAction(t, router, nodalToken, created.UUID, "submit_to_state", "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJsonReq(t, router, http.MethodGet, fmt.Sprintf("/submissions/%s/audit", created.UUID), nodalToken, nil)
	var entries []struct {
		Action    string `json:"action"`
		ActorRole string `json:"actor_role"`
	}
	decodeSuccessData(t, rec, &entries)
	require.Len(t, entries, 2)
	assert.Equal(t, "create_submission", entries[0].Action)
	assert.Equal(t, "submit_to_state", entries[1].Action)
	assert.Equal(t, "NODAL_OFFICER", entries[1].ActorRole)
}

func TestDashboardOverHttp(t *testing.T) {
	router := newTestRouter(t)
	nodalMh := registerAndLogin(t, router, "nodal-mh4", "NODAL_OFFICER", "MH")
	nodalKa := registerAndLogin(t, router, "nodal-ka4", "NODAL_OFFICER", "KA")
	admin := registerAndLogin(t, router, "admin4", "ADMIN", "")

	createSubmission(t, router, nodalMh)
	created := createSubmission(t, router, nodalKa)
	rec := postAction(t, router, nodalKa, created.UUID, "submit_to_state", "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJsonReq(t, router, http.MethodGet, "/dashboard", admin, nil)
	var dashboard struct {
		Rows []struct {
			StateUt  string         `json:"state_ut"`
			ByStatus map[string]int `json:"by_status"`
			Total    int            `json:"total"`
			Pending  int            `json:"pending"`
		} `json:"rows"`
	}
	decodeSuccessData(t, rec, &dashboard)

	require.Len(t, dashboard.Rows, 2)
	assert.Equal(t, "KA", dashboard.Rows[0].StateUt, "rows sorted by state code")
	assert.Equal(t, "MH", dashboard.Rows[1].StateUt)
	assert.Equal(t, 1, dashboard.Rows[0].ByStatus["SUBMITTED_TO_STATE"])
	assert.Equal(t, 1, dashboard.Rows[1].ByStatus["DRAFT"])
	assert.Equal(t, 1, dashboard.Rows[0].Total)
	assert.Equal(t, 1, dashboard.Rows[0].Pending)
}
