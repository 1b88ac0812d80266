package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"mandy/internal/gateway/catalog"
	"mandy/internal/gateway/platform"
	credentialsvc "mandy/internal/gateway/service/credential"
)

// CredentialHandler serves the settings panel endpoints.
type CredentialHandler struct {
	svc *credentialsvc.Service
}

func NewCredentialHandler(svc *credentialsvc.Service) *CredentialHandler {
	return &CredentialHandler{svc: svc}
}

// HandleCredentials serves GET and POST /api/credentials.
func (h *CredentialHandler) HandleCredentials(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, map[string]any{"credentials": h.svc.Saved()})
	case http.MethodPost:
		var in struct {
			Credentials map[string]string `json:"credentials"`
		}
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			writeError(w, http.StatusBadRequest, "invalid json body")
			return
		}
		if err := h.svc.Save(in.Credentials); err != nil {
			writeError(w, http.StatusInternalServerError, "failed to save credentials")
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"success": true})
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

// HandleTestConnection serves POST /api/test-connection. The response
// distinguishes a platform rejecting the credentials from the platform
// being unreachable.
func (h *CredentialHandler) HandleTestConnection(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	var in struct {
		Platform    string            `json:"platform"`
		Credentials map[string]string `json:"credentials"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json body")
		return
	}
	err := h.svc.TestConnection(r.Context(), in.Platform, in.Credentials)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, map[string]any{"success": true})
	case errors.Is(err, platform.ErrComingSoon):
		writeJSON(w, http.StatusOK, map[string]any{"success": false, "error": "Coming soon - awaiting API approval", "coming_soon": true})
	case errors.Is(err, platform.ErrUnknownPlatform):
		writeJSON(w, http.StatusOK, map[string]any{"success": false, "error": "Unknown platform"})
	case errors.Is(err, platform.ErrAuthRejected):
		writeJSON(w, http.StatusOK, map[string]any{"success": false, "error": err.Error()})
	default:
		// Transport failure, not a rejection.
		writeJSON(w, http.StatusOK, map[string]any{"success": false, "error": "connection test failed", "transport": true})
	}
}

// HandlePlatforms serves GET /api/platforms: the settings panel's view
// of the catalog plus live connectivity.
func (h *CredentialHandler) HandlePlatforms(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	type fieldView struct {
		Key         string `json:"key"`
		Label       string `json:"label"`
		Placeholder string `json:"placeholder"`
		Secret      bool   `json:"secret"`
	}
	type platformView struct {
		ID        string      `json:"id"`
		Name      string      `json:"name"`
		Icon      string      `json:"icon"`
		Status    string      `json:"status"`
		Connected bool        `json:"connected"`
		Fields    []fieldView `json:"fields"`
		HelpURL   string      `json:"help_url,omitempty"`
		HelpText  string      `json:"help_text,omitempty"`
	}
	out := make([]platformView, 0, 10)
	for _, spec := range catalog.CredentialSpecs() {
		p, ok := catalog.PlatformByID(spec.PlatformID)
		if !ok {
			continue
		}
		view := platformView{
			ID:       p.ID,
			Name:     p.Name,
			Icon:     p.Icon,
			Status:   string(spec.Status),
			HelpURL:  spec.HelpURL,
			HelpText: spec.HelpText,
		}
		if spec.Status != catalog.StatusComingSoon {
			view.Connected = h.svc.IsConnected(p.ID)
		}
		for _, f := range spec.Fields {
			view.Fields = append(view.Fields, fieldView{Key: f.Key, Label: f.Label, Placeholder: f.Placeholder, Secret: f.Secret})
		}
		out = append(out, view)
	}
	writeJSON(w, http.StatusOK, map[string]any{"platforms": out})
}
