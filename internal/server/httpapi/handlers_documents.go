package httpapi

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/avelinsk/teamspace/internal/server/services"
)

type createDocumentRequest struct {
	Name    string `json:"name"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

func (s *Server) handleCreateDocument(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserIDFromContext(r.Context())
	orgID, _, ok := OrgFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusForbidden, "FORBIDDEN", "not a member of this organization")
		return
	}

	vars := mux.Vars(r)
	workspaceID, err := strconv.ParseInt(vars["workspaceId"], 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid workspace id")
		return
	}

	var parentID *int64
	if raw, found := vars["parentId"]; found {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid parent id")
			return
		}
		parentID = &id
	}

	var req createDocumentRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid request body")
		return
	}

	doc, err := s.documents.Create(r.Context(), services.CreateDocumentInput{
		OrgID:       orgID,
		UserID:      userID,
		WorkspaceID: workspaceID,
		ParentID:    parentID,
		Name:        req.Name,
		Title:       req.Title,
		Content:     req.Content,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"id":    doc.ID,
		"name":  doc.Name,
		"title": doc.Title,
	})
}

func (s *Server) handleDeleteDocument(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserIDFromContext(r.Context())
	orgID, role, ok := OrgFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusForbidden, "FORBIDDEN", "not a member of this organization")
		return
	}

	vars := mux.Vars(r)
	workspaceID, err := strconv.ParseInt(vars["workspaceId"], 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid workspace id")
		return
	}
	docID, err := strconv.ParseInt(vars["docId"], 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid document id")
		return
	}

	if err := s.documents.Delete(r.Context(), orgID, userID, role, workspaceID, docID); err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
