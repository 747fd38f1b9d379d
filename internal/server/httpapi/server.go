// Package httpapi exposes the service layer over HTTP: a gorilla/mux router,
// JSON handlers, and the auth, org-role, logging, and rate-limit middleware.
package httpapi

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/avelinsk/teamspace/internal/logging"
	"github.com/avelinsk/teamspace/internal/server/config"
	"github.com/avelinsk/teamspace/internal/server/models"
	"github.com/avelinsk/teamspace/internal/server/services"
)

// UserService is the authentication surface the handlers depend on.
type UserService interface {
	SignUp(ctx context.Context, name, email, password string) (*models.User, error)
	Login(ctx context.Context, email, password string) (*models.User, *services.TokenPair, error)
	Rotate(ctx context.Context, presentedSecret string) (*services.TokenPair, error)
	Logout(ctx context.Context, presentedSecret string) error
	VerifyAccess(tokenString string) (int64, error)
}

// OrgService creates organizations.
type OrgService interface {
	Create(ctx context.Context, userID int64, name, slug string) (*models.Organization, error)
}

// WorkspaceService creates workspaces.
type WorkspaceService interface {
	Create(ctx context.Context, orgID, userID int64, role models.Role, name string) (*models.Workspace, error)
}

// MembershipService manages org memberships.
type MembershipService interface {
	Role(ctx context.Context, orgID, userID int64) (models.Role, error)
	List(ctx context.Context, orgID int64) ([]models.Member, error)
	Invite(ctx context.Context, orgID, actorID int64, actorRole models.Role, memberUserID int64, role models.Role) (*models.Membership, error)
	UpdateRole(ctx context.Context, orgID int64, actorRole models.Role, memberUserID int64, newRole models.Role) error
	Remove(ctx context.Context, orgID int64, actorRole models.Role, memberUserID int64) error
}

// DocumentService creates and deletes documents.
type DocumentService interface {
	Create(ctx context.Context, in services.CreateDocumentInput) (*models.Document, error)
	Delete(ctx context.Context, orgID, userID int64, role models.Role, workspaceID, docID int64) error
}

// Server wires services into HTTP handlers.
type Server struct {
	cfg         *config.Config
	logger      logging.Logger
	users       UserService
	orgs        OrgService
	workspaces  WorkspaceService
	memberships MembershipService
	documents   DocumentService
	rateLimiter *rateLimiter
}

// NewServer constructs the HTTP layer.
func NewServer(cfg *config.Config, logger logging.Logger,
	users UserService, orgs OrgService, workspaces WorkspaceService,
	memberships MembershipService, documents DocumentService) *Server {

	return &Server{
		cfg:         cfg,
		logger:      logger.With("module", "http"),
		users:       users,
		orgs:        orgs,
		workspaces:  workspaces,
		memberships: memberships,
		documents:   documents,
		rateLimiter: newRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst),
	}
}

// Router builds the route table.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.Use(s.Logging)

	r.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)

	api := r.PathPrefix("/api/v1").Subrouter()

	authR := api.PathPrefix("/auth").Subrouter()
	authR.Use(s.RateLimit)
	authR.HandleFunc("/signup", s.handleSignUp).Methods(http.MethodPost)
	authR.HandleFunc("/login", s.handleLogin).Methods(http.MethodPost)
	authR.HandleFunc("/refresh", s.handleRefresh).Methods(http.MethodPost)
	authR.HandleFunc("/logout", s.handleLogout).Methods(http.MethodPost)

	protected := api.NewRoute().Subrouter()
	protected.Use(s.Authenticate)
	protected.HandleFunc("/orgs", s.handleCreateOrg).Methods(http.MethodPost)

	org := protected.PathPrefix("/orgs/{orgId:[0-9]+}").Subrouter()
	org.Use(s.RequireOrgRole)
	org.HandleFunc("/workspaces", s.handleCreateWorkspace).Methods(http.MethodPost)
	org.HandleFunc("/members", s.handleListMembers).Methods(http.MethodGet)
	org.HandleFunc("/members/invite", s.handleInviteMember).Methods(http.MethodPost)
	org.HandleFunc("/members/role", s.handleUpdateMemberRole).Methods(http.MethodPatch)
	org.HandleFunc("/members", s.handleRemoveMember).Methods(http.MethodDelete)
	org.HandleFunc("/documents/{workspaceId:[0-9]+}", s.handleCreateDocument).Methods(http.MethodPost)
	org.HandleFunc("/documents/{workspaceId:[0-9]+}/parent/{parentId:[0-9]+}", s.handleCreateDocument).Methods(http.MethodPost)
	org.HandleFunc("/documents/{workspaceId:[0-9]+}/{docId:[0-9]+}", s.handleDeleteDocument).Methods(http.MethodDelete)

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
