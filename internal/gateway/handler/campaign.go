package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"mandy/internal/gateway/service/campaign"
)

// CampaignHandler serves launch and campaign lifecycle endpoints.
type CampaignHandler struct {
	svc *campaign.Service
}

func NewCampaignHandler(svc *campaign.Service) *CampaignHandler {
	return &CampaignHandler{svc: svc}
}

type launchRequest struct {
	Product struct {
		Name string `json:"name"`
		Vibe string `json:"vibe"`
	} `json:"product"`
	Assets []struct {
		ID   json.Number `json:"id"`
		Name string      `json:"name"`
		Data string      `json:"data"`
	} `json:"assets"`
	Platforms []string `json:"platforms"`
}

// HandleLaunch accepts the accumulated wizard state and starts the
// campaign. POST /api/launch.
func (h *CampaignHandler) HandleLaunch(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	var in launchRequest
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json body")
		return
	}
	req := campaign.LaunchRequest{
		ProductName: in.Product.Name,
		ProductVibe: in.Product.Vibe,
		Platforms:   in.Platforms,
	}
	for _, a := range in.Assets {
		req.Assets = append(req.Assets, campaign.LaunchAsset{ID: a.ID.String(), Name: a.Name, Data: a.Data})
	}
	id, err := h.svc.Launch(r.Context(), req)
	if err != nil {
		if errors.Is(err, campaign.ErrNoPlatforms) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "launch failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "campaign_id": id})
}

// HandleCampaign serves GET /api/campaign/{id} and
// POST /api/campaign/{id}/pause.
func (h *CampaignHandler) HandleCampaign(w http.ResponseWriter, r *http.Request) {
	rest := strings.Trim(strings.TrimPrefix(r.URL.Path, "/api/campaign/"), "/")
	if rest == "" {
		writeError(w, http.StatusBadRequest, "campaign id is required")
		return
	}
	if strings.HasSuffix(rest, "/pause") {
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		h.pause(w, strings.TrimSuffix(rest, "/pause"))
		return
	}
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	c, err := h.svc.Get(rest)
	if err != nil {
		writeError(w, http.StatusNotFound, "Not found")
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (h *CampaignHandler) pause(w http.ResponseWriter, id string) {
	if _, err := h.svc.Pause(id); err != nil {
		writeError(w, http.StatusNotFound, "Not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}
