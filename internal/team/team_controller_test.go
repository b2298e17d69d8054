package team

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/allanbakerhussmann-crypto/pickleball-app/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeTeamRepo struct {
	teams   map[uint]*Team
	members []TeamMember
}

func newFakeTeamRepo() *fakeTeamRepo {
	return &fakeTeamRepo{teams: make(map[uint]*Team)}
}

func (f *fakeTeamRepo) CreateTeam(t *Team) error {
	t.ID = uint(len(f.teams) + 1)
	f.teams[t.ID] = t
	return nil
}

func (f *fakeTeamRepo) GetTeamByID(id uint) (*Team, error) {
	t, ok := f.teams[id]
	if !ok {
		return nil, nil
	}
	cp := *t
	return &cp, nil
}

func (f *fakeTeamRepo) GetTeams(page, pageSize int) ([]Team, int64, error) {
	return nil, 0, nil
}

func (f *fakeTeamRepo) AddMember(m *TeamMember) error {
	f.members = append(f.members, *m)
	return nil
}

func (f *fakeTeamRepo) GetTeamMember(teamID, userID uint) (*TeamMember, error) {
	for i := range f.members {
		if f.members[i].TeamID == teamID && f.members[i].UserID == userID {
			cp := f.members[i]
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeTeamRepo) GetTeamMembers(teamID uint) ([]TeamMember, error) {
	var out []TeamMember
	for _, m := range f.members {
		if m.TeamID == teamID && m.IsActive {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeTeamRepo) IsUserInAnyTeam(userID uint, teamIDs []uint) (bool, error) {
	for _, teamID := range teamIDs {
		m, _ := f.GetTeamMember(teamID, userID)
		if m != nil && m.IsActive {
			return true, nil
		}
	}
	return false, nil
}

func newTestRouter(repo TeamRepository, asUserID uint) *gin.Engine {
	gin.SetMode(gin.TestMode)
	controller := NewTeamController(repo)

	r := gin.New()
	r.Use(func(c *gin.Context) { c.Set(middleware.AuthUserIDKey, asUserID) })
	r.POST("/teams/:id/members", controller.AddMember)
	return r
}

func postJSON(t *testing.T, r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAddMember(t *testing.T) {
	repo := newFakeTeamRepo()
	repo.teams[1] = &Team{Model: gorm.Model{ID: 1}, Name: "Dink Responsibly", CreatedByID: 7}

	w := postJSON(t, newTestRouter(repo, 7), "/teams/1/members", `{"user_id": 42}`)
	require.Equal(t, http.StatusCreated, w.Code)

	member, err := repo.GetTeamMember(1, 42)
	require.NoError(t, err)
	require.NotNil(t, member)
	assert.Equal(t, "player", member.Role)
	assert.True(t, member.IsActive)
}

func TestAddMemberRejectsDuplicate(t *testing.T) {
	repo := newFakeTeamRepo()
	repo.teams[1] = &Team{Model: gorm.Model{ID: 1}, Name: "Dink Responsibly", CreatedByID: 7}

	router := newTestRouter(repo, 7)
	w := postJSON(t, router, "/teams/1/members", `{"user_id": 42}`)
	require.Equal(t, http.StatusCreated, w.Code)

	w = postJSON(t, router, "/teams/1/members", `{"user_id": 42}`)
	require.Equal(t, http.StatusConflict, w.Code)
	assert.Len(t, repo.members, 1)
}

func TestAddMemberRequiresCreator(t *testing.T) {
	repo := newFakeTeamRepo()
	repo.teams[1] = &Team{Model: gorm.Model{ID: 1}, Name: "Dink Responsibly", CreatedByID: 7}

	w := postJSON(t, newTestRouter(repo, 8), "/teams/1/members", `{"user_id": 42}`)
	require.Equal(t, http.StatusForbidden, w.Code)
	assert.Empty(t, repo.members)
}

func TestAddMemberUnknownTeam(t *testing.T) {
	repo := newFakeTeamRepo()

	w := postJSON(t, newTestRouter(repo, 7), "/teams/404/members", `{"user_id": 42}`)
	require.Equal(t, http.StatusNotFound, w.Code)
}
