package http

import (
	"fmt"
	"net/http"

	"github.com/niri-portal/backend/httpjson"
	"github.com/niri-portal/backend/logger"
	"github.com/niri-portal/backend/subm"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

type DashboardRow struct {
	StateUt  string         `json:"state_ut"`
	ByStatus map[string]int `json:"by_status"`
	Total    int            `json:"total"`
	Approved int            `json:"approved"`
	Pending  int            `json:"pending"`
}

type DashboardView struct {
	Rows []DashboardRow `json:"rows"`
}

// GetDashboard returns per-jurisdiction status counts. The result is
// cached for a second and concurrent misses collapse into one
// computation, so dashboard polling never stampedes the store.
func (h *SubmHttpHandler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	actorUuid, actorRole, actorStateUt, err := actorFromRequest(r)
	if err != nil {
		httpjson.HandleError(logger.FromContext(r.Context()), w, err)
		return
	}

	cacheKey := fmt.Sprintf("dashboard:%s:%s:%s", actorRole, actorStateUt, actorUuid)
	if cached, ok := h.dashCache.Get(cacheKey); ok {
		httpjson.WriteSuccessJson(w, cached.(DashboardView))
		return
	}

	result, err, _ := h.sfGroup.Do(cacheKey, func() (any, error) {
		subms, err := h.submSrvc.ListSubmsFor(r.Context(), actorUuid, actorRole, actorStateUt)
		if err != nil {
			return nil, err
		}
		view := buildDashboard(subms)
		h.dashCache.SetDefault(cacheKey, view)
		return view, nil
	})
	if err != nil {
		httpjson.HandleError(logger.FromContext(r.Context()), w, err)
		return
	}

	httpjson.WriteSuccessJson(w, result.(DashboardView))
}

func buildDashboard(subms []subm.Submission) DashboardView {
	byState := make(map[string]*DashboardRow)
	for _, s := range subms {
		row, ok := byState[s.StateUt]
		if !ok {
			row = &DashboardRow{
				StateUt:  s.StateUt,
				ByStatus: make(map[string]int),
			}
			byState[s.StateUt] = row
		}

		row.ByStatus[string(s.Status)]++
		row.Total++
		switch {
		case s.Status == subm.StatusApproved || s.Status == subm.StatusMospiApproved:
			row.Approved++
		case !s.Status.IsTerminal():
			row.Pending++
		}
	}

	states := maps.Keys(byState)
	slices.Sort(states)

	rows := make([]DashboardRow, 0, len(states))
	for _, st := range states {
		rows = append(rows, *byState[st])
	}
	return DashboardView{Rows: rows}
}
