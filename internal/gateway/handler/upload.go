package handler

import (
	"io"
	"net/http"
	"strings"

	"mandy/internal/gateway/conversation"
	"mandy/internal/gateway/service/session"
)

// uploadMaxMemory bounds the multipart parse buffer; larger files spill
// to disk.
const uploadMaxMemory = 32 << 20

// UploadHandler receives asset batches for a session.
// POST /api/session/assets?session_id=... with multipart field "files".
type UploadHandler struct {
	sessions *session.Service
}

func NewUploadHandler(sessions *session.Service) *UploadHandler {
	return &UploadHandler{sessions: sessions}
}

func (h *UploadHandler) HandleUpload(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	sessionID := strings.TrimSpace(r.URL.Query().Get("session_id"))
	if sessionID == "" {
		writeError(w, http.StatusBadRequest, "session_id is required")
		return
	}
	if err := r.ParseMultipartForm(uploadMaxMemory); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart body")
		return
	}
	var files []conversation.IncomingFile
	for _, fh := range r.MultipartForm.File["files"] {
		f, err := fh.Open()
		if err != nil {
			continue
		}
		data, err := io.ReadAll(f)
		_ = f.Close()
		if err != nil {
			continue
		}
		files = append(files, conversation.IncomingFile{
			Name:        fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			Data:        data,
		})
	}
	h.sessions.AcceptFiles(sessionID, files)
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "accepted": len(files)})
}
