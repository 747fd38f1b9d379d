package httpapi

import (
	"net/http"

	"github.com/avelinsk/teamspace/internal/server/models"
)

type createOrgRequest struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

func (s *Server) handleCreateOrg(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "missing bearer token")
		return
	}

	var req createOrgRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid request body")
		return
	}

	org, err := s.orgs.Create(r.Context(), userID, req.Name, req.Slug)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"id":   org.ID,
		"name": org.Name,
		"slug": org.Slug,
	})
}

type createWorkspaceRequest struct {
	Name string `json:"name"`
}

func (s *Server) handleCreateWorkspace(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserIDFromContext(r.Context())
	orgID, role, ok := OrgFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusForbidden, "FORBIDDEN", "not a member of this organization")
		return
	}

	var req createWorkspaceRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid request body")
		return
	}

	ws, err := s.workspaces.Create(r.Context(), orgID, userID, role, req.Name)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"id":   ws.ID,
		"name": ws.Name,
	})
}

type memberResponse struct {
	UserID int64       `json:"userId"`
	Name   string      `json:"name"`
	Email  string      `json:"email"`
	Role   models.Role `json:"role"`
}

func (s *Server) handleListMembers(w http.ResponseWriter, r *http.Request) {
	orgID, _, ok := OrgFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusForbidden, "FORBIDDEN", "not a member of this organization")
		return
	}

	members, err := s.memberships.List(r.Context(), orgID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	out := make([]memberResponse, 0, len(members))
	for _, m := range members {
		out = append(out, memberResponse{UserID: m.UserID, Name: m.Name, Email: m.Email, Role: m.Role})
	}
	writeJSON(w, http.StatusOK, map[string]any{"members": out})
}

type inviteMemberRequest struct {
	UserID int64       `json:"userId"`
	Role   models.Role `json:"role"`
}

func (s *Server) handleInviteMember(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserIDFromContext(r.Context())
	orgID, role, ok := OrgFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusForbidden, "FORBIDDEN", "not a member of this organization")
		return
	}

	var req inviteMemberRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid request body")
		return
	}

	m, err := s.memberships.Invite(r.Context(), orgID, userID, role, req.UserID, req.Role)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"userId": m.UserID,
		"role":   m.Role,
	})
}

type updateMemberRoleRequest struct {
	UserID int64       `json:"userId"`
	Role   models.Role `json:"role"`
}

func (s *Server) handleUpdateMemberRole(w http.ResponseWriter, r *http.Request) {
	orgID, role, ok := OrgFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusForbidden, "FORBIDDEN", "not a member of this organization")
		return
	}

	var req updateMemberRoleRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid request body")
		return
	}

	if err := s.memberships.UpdateRole(r.Context(), orgID, role, req.UserID, req.Role); err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

type removeMemberRequest struct {
	UserID int64 `json:"userId"`
}

func (s *Server) handleRemoveMember(w http.ResponseWriter, r *http.Request) {
	orgID, role, ok := OrgFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusForbidden, "FORBIDDEN", "not a member of this organization")
		return
	}

	var req removeMemberRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid request body")
		return
	}

	if err := s.memberships.Remove(r.Context(), orgID, role, req.UserID); err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "removed"})
}
