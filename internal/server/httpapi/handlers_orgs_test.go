package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/avelinsk/teamspace/internal/common"
	"github.com/avelinsk/teamspace/internal/server/models"
	"github.com/avelinsk/teamspace/internal/server/services"
)

// fakeGateway satisfies UserService for middleware tests.
type fakeGateway struct {
	verifyID  int64
	verifyErr error
}

func (f *fakeGateway) SignUp(ctx context.Context, name, email, password string) (*models.User, error) {
	return nil, common.ErrorInternal
}
func (f *fakeGateway) Login(ctx context.Context, email, password string) (*models.User, *services.TokenPair, error) {
	return nil, nil, common.ErrorUnauthorized
}
func (f *fakeGateway) Rotate(ctx context.Context, secret string) (*services.TokenPair, error) {
	return nil, common.ErrorUnauthorized
}
func (f *fakeGateway) Logout(ctx context.Context, secret string) error { return nil }
func (f *fakeGateway) VerifyAccess(token string) (int64, error) {
	if f.verifyErr != nil {
		return 0, f.verifyErr
	}
	return f.verifyID, nil
}

type fakeOrgSvc struct {
	out *models.Organization
	err error
}

func (f *fakeOrgSvc) Create(ctx context.Context, userID int64, name, slug string) (*models.Organization, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.out, nil
}

type fakeWorkspaceSvc struct {
	out *models.Workspace
	err error

	gotRole models.Role
}

func (f *fakeWorkspaceSvc) Create(ctx context.Context, orgID, userID int64, role models.Role, name string) (*models.Workspace, error) {
	f.gotRole = role
	if f.err != nil {
		return nil, f.err
	}
	return f.out, nil
}

type fakeMembershipSvc struct {
	role    models.Role
	roleErr error

	members []models.Member
	listErr error

	inviteOut *models.Membership
	inviteErr error
	updateErr error
	removeErr error
}

func (f *fakeMembershipSvc) Role(ctx context.Context, orgID, userID int64) (models.Role, error) {
	if f.roleErr != nil {
		return "", f.roleErr
	}
	return f.role, nil
}
func (f *fakeMembershipSvc) List(ctx context.Context, orgID int64) ([]models.Member, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.members, nil
}
func (f *fakeMembershipSvc) Invite(ctx context.Context, orgID, actorID int64, actorRole models.Role, memberUserID int64, role models.Role) (*models.Membership, error) {
	if f.inviteErr != nil {
		return nil, f.inviteErr
	}
	return f.inviteOut, nil
}
func (f *fakeMembershipSvc) UpdateRole(ctx context.Context, orgID int64, actorRole models.Role, memberUserID int64, newRole models.Role) error {
	return f.updateErr
}
func (f *fakeMembershipSvc) Remove(ctx context.Context, orgID int64, actorRole models.Role, memberUserID int64) error {
	return f.removeErr
}

type fakeDocumentSvc struct {
	out *models.Document
	err error

	deleteErr error
}

func (f *fakeDocumentSvc) Create(ctx context.Context, in services.CreateDocumentInput) (*models.Document, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.out, nil
}
func (f *fakeDocumentSvc) Delete(ctx context.Context, orgID, userID int64, role models.Role, workspaceID, docID int64) error {
	return f.deleteErr
}

type testDeps struct {
	gw *fakeGateway
	o  *fakeOrgSvc
	w  *fakeWorkspaceSvc
	m  *fakeMembershipSvc
	d  *fakeDocumentSvc
}

func newTestServer(t *testing.T, deps testDeps) *httptest.Server {
	t.Helper()
	if deps.gw == nil {
		deps.gw = &fakeGateway{verifyID: 7}
	}
	if deps.o == nil {
		deps.o = &fakeOrgSvc{}
	}
	if deps.w == nil {
		deps.w = &fakeWorkspaceSvc{}
	}
	if deps.m == nil {
		deps.m = &fakeMembershipSvc{role: models.RoleAdmin}
	}
	if deps.d == nil {
		deps.d = &fakeDocumentSvc{}
	}
	srv := NewServer(testConfig(), testLogger(), deps.gw, deps.o, deps.w, deps.m, deps.d)
	ts := httptest.NewServer(srv.Router())
	t.Cleanup(ts.Close)
	return ts
}

func doJSON(t *testing.T, method, url, token string, body any) *http.Response {
	t.Helper()
	var rd *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		rd = bytes.NewReader(b)
	} else {
		rd = bytes.NewReader(nil)
	}
	req, err := http.NewRequest(method, url, rd)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do: %v", err)
	}
	return resp
}

func TestAuthenticate_MissingAndInvalidToken(t *testing.T) {
	ts := newTestServer(t, testDeps{gw: &fakeGateway{verifyErr: common.ErrInvalidToken}})

	resp := doJSON(t, http.MethodPost, ts.URL+"/api/v1/orgs", "", map[string]string{"name": "Acme", "slug": "acme"})
	resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("missing token: want 401, got %d", resp.StatusCode)
	}

	resp = doJSON(t, http.MethodPost, ts.URL+"/api/v1/orgs", "garbage", map[string]string{"name": "Acme", "slug": "acme"})
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("invalid token: want 401, got %d", resp.StatusCode)
	}
}

func TestCreateOrg(t *testing.T) {
	ts := newTestServer(t, testDeps{
		o: &fakeOrgSvc{out: &models.Organization{ID: 1, Name: "Acme", Slug: "acme"}},
	})

	resp := doJSON(t, http.MethodPost, ts.URL+"/api/v1/orgs", "tok", map[string]string{"name": "Acme", "slug": "acme"})
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("want 201, got %d", resp.StatusCode)
	}
}

func TestCreateOrg_DuplicateSlug(t *testing.T) {
	ts := newTestServer(t, testDeps{o: &fakeOrgSvc{err: common.ErrorAlreadyExists}})

	resp := doJSON(t, http.MethodPost, ts.URL+"/api/v1/orgs", "tok", map[string]string{"name": "Acme", "slug": "acme"})
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("want 409, got %d", resp.StatusCode)
	}
}

func TestOrgMiddleware_NonMemberForbidden(t *testing.T) {
	ts := newTestServer(t, testDeps{m: &fakeMembershipSvc{roleErr: common.ErrorNotFound}})

	resp := doJSON(t, http.MethodGet, ts.URL+"/api/v1/orgs/1/members", "tok", nil)
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("want 403, got %d", resp.StatusCode)
	}
}

func TestOrgMiddleware_PassesRoleToHandler(t *testing.T) {
	ws := &fakeWorkspaceSvc{out: &models.Workspace{ID: 1, Name: "Docs"}}
	ts := newTestServer(t, testDeps{m: &fakeMembershipSvc{role: models.RoleLead}, w: ws})

	resp := doJSON(t, http.MethodPost, ts.URL+"/api/v1/orgs/1/workspaces", "tok", map[string]string{"name": "Docs"})
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("want 201, got %d", resp.StatusCode)
	}
	if ws.gotRole != models.RoleLead {
		t.Fatalf("handler saw role %q, want lead", ws.gotRole)
	}
}

func TestListMembers(t *testing.T) {
	ts := newTestServer(t, testDeps{m: &fakeMembershipSvc{
		role: models.RoleMember,
		members: []models.Member{
			{UserID: 1, Name: "Alice", Email: "a@b.co", Role: models.RoleAdmin},
			{UserID: 2, Name: "Bob", Email: "b@b.co", Role: models.RoleMember},
		},
	}})

	resp := doJSON(t, http.MethodGet, ts.URL+"/api/v1/orgs/1/members", "tok", nil)
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("want 200, got %d", resp.StatusCode)
	}

	var body struct {
		Members []memberResponse `json:"members"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(body.Members) != 2 || body.Members[0].Role != models.RoleAdmin {
		t.Fatalf("unexpected members: %+v", body.Members)
	}
}

func TestUpdateMemberRole_LastAdmin(t *testing.T) {
	ts := newTestServer(t, testDeps{m: &fakeMembershipSvc{role: models.RoleAdmin, updateErr: common.ErrLastAdmin}})

	resp := doJSON(t, http.MethodPatch, ts.URL+"/api/v1/orgs/1/members/role", "tok",
		map[string]any{"userId": 2, "role": "member"})
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("want 400, got %d", resp.StatusCode)
	}
}

func TestRemoveMember_Forbidden(t *testing.T) {
	ts := newTestServer(t, testDeps{m: &fakeMembershipSvc{role: models.RoleMember, removeErr: common.ErrorForbidden}})

	resp := doJSON(t, http.MethodDelete, ts.URL+"/api/v1/orgs/1/members", "tok", map[string]any{"userId": 2})
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("want 403, got %d", resp.StatusCode)
	}
}

func TestCreateDocument_WithParentRoute(t *testing.T) {
	ts := newTestServer(t, testDeps{d: &fakeDocumentSvc{out: &models.Document{ID: 9, Name: "n", Title: "t"}}})

	resp := doJSON(t, http.MethodPost, ts.URL+"/api/v1/orgs/1/documents/5/parent/3", "tok",
		map[string]string{"title": "t", "content": "c"})
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("want 201, got %d", resp.StatusCode)
	}
}

func TestDeleteDocument_HasChildren(t *testing.T) {
	ts := newTestServer(t, testDeps{d: &fakeDocumentSvc{deleteErr: common.ErrDocumentHasChildren}})

	resp := doJSON(t, http.MethodDelete, ts.URL+"/api/v1/orgs/1/documents/5/9", "tok", nil)
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("want 400, got %d", resp.StatusCode)
	}
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t, testDeps{})

	resp, err := http.Get(ts.URL + "/health")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("want 200, got %d", resp.StatusCode)
	}
}

func TestRateLimit_Auth(t *testing.T) {
	cfg := testConfig()
	cfg.RateLimitRPS = 1
	cfg.RateLimitBurst = 1

	srv := NewServer(cfg, testLogger(), &fakeGateway{}, nil, nil, nil, nil)
	ts := httptest.NewServer(srv.Router())
	t.Cleanup(ts.Close)

	// first request consumes the burst, second is throttled
	resp := doJSON(t, http.MethodPost, ts.URL+"/api/v1/auth/login", "", map[string]string{"email": "a@b.co", "password": "x"})
	resp.Body.Close()

	resp = doJSON(t, http.MethodPost, ts.URL+"/api/v1/auth/login", "", map[string]string{"email": "a@b.co", "password": "x"})
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusTooManyRequests {
		t.Fatalf("want 429, got %d", resp.StatusCode)
	}
}
