package match

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/allanbakerhussmann-crypto/pickleball-app/internal/middleware"
	"github.com/allanbakerhussmann-crypto/pickleball-app/internal/team"
	"github.com/allanbakerhussmann-crypto/pickleball-app/pkg/apperrors"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// fakeMatchRepo implements MatchRepository in memory. ApplyTransition keeps
// the guarded-write contract of the gorm repository: the stored status must
// still equal fromStatus or the write is a lost race and returns ErrConflict.
// The beforeApply hook lets a test commit a "concurrent" transition between
// the controller's snapshot read and its write.
type fakeMatchRepo struct {
	matches     map[uint]*Match
	beforeApply func()
}

func newFakeMatchRepo() *fakeMatchRepo {
	return &fakeMatchRepo{matches: make(map[uint]*Match)}
}

func (f *fakeMatchRepo) CreateMatch(m *Match) error {
	m.ID = uint(len(f.matches) + 1)
	f.matches[m.ID] = m
	return nil
}

func (f *fakeMatchRepo) GetMatchByID(id uint) (*Match, error) {
	m, ok := f.matches[id]
	if !ok {
		return nil, nil
	}
	cp := *m
	return &cp, nil
}

func (f *fakeMatchRepo) GetMatches(filters map[string]interface{}, page, pageSize int) ([]Match, int64, error) {
	return nil, 0, nil
}

func (f *fakeMatchRepo) GetWaitingMatches(tournamentID uint) ([]Match, error) {
	return nil, nil
}

func (f *fakeMatchRepo) ApplyTransition(m *Match, fromStatus MatchStatus) error {
	if f.beforeApply != nil {
		f.beforeApply()
	}
	stored, ok := f.matches[m.ID]
	if !ok || stored.Status != fromStatus {
		return fmt.Errorf("%w: match %d was updated concurrently (expected status %q)",
			apperrors.ErrConflict, m.ID, fromStatus)
	}
	cp := *m
	f.matches[m.ID] = &cp
	return nil
}

// fakeTeamRepo answers participation checks from a flat set of user IDs.
type fakeTeamRepo struct {
	participants map[uint]bool
}

func (f *fakeTeamRepo) CreateTeam(t *team.Team) error                      { return nil }
func (f *fakeTeamRepo) GetTeamByID(id uint) (*team.Team, error)            { return nil, nil }
func (f *fakeTeamRepo) GetTeams(page, pageSize int) ([]team.Team, int64, error) {
	return nil, 0, nil
}
func (f *fakeTeamRepo) AddMember(m *team.TeamMember) error { return nil }
func (f *fakeTeamRepo) GetTeamMember(teamID, userID uint) (*team.TeamMember, error) {
	return nil, nil
}
func (f *fakeTeamRepo) GetTeamMembers(teamID uint) ([]team.TeamMember, error) { return nil, nil }
func (f *fakeTeamRepo) IsUserInAnyTeam(userID uint, teamIDs []uint) (bool, error) {
	return f.participants[userID], nil
}

type fakeRoleReader map[uint][]string

func (f fakeRoleReader) GetUserRoles(userID uint) ([]string, error) { return f[userID], nil }

func newTestRouter(repo MatchRepository, asUserID uint) *gin.Engine {
	gin.SetMode(gin.TestMode)
	controller := NewMatchController(repo,
		&fakeTeamRepo{participants: map[uint]bool{1: true, 2: true}},
		fakeRoleReader{99: {"organizer"}})

	r := gin.New()
	r.Use(func(c *gin.Context) { c.Set(middleware.AuthUserIDKey, asUserID) })
	r.POST("/matches/:id/start", controller.StartMatch)
	r.POST("/matches/:id/score", controller.SubmitScore)
	r.POST("/matches/:id/confirm", controller.ConfirmScore)
	r.POST("/matches/:id/dispute", controller.DisputeScore)
	return r
}

func seedPendingConfirmation(repo *fakeMatchRepo) *Match {
	score1, score2 := 11, 9
	submitter := uint(1)
	m := &Match{
		Model:         gorm.Model{ID: 1},
		TournamentID:  1,
		DivisionID:    1,
		RoundNumber:   1,
		Team1ID:       10,
		Team2ID:       20,
		Status:        StatusMatchPendingConfirmation,
		Score1:        &score1,
		Score2:        &score2,
		SubmittedByID: &submitter,
	}
	repo.matches[m.ID] = m
	return m
}

func doPost(t *testing.T, r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(http.MethodPost, path, nil)
	} else {
		req = httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestConfirmScoreEndpoint(t *testing.T) {
	repo := newFakeMatchRepo()
	seedPendingConfirmation(repo)

	w := doPost(t, newTestRouter(repo, 2), "/matches/1/confirm", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, StatusMatchCompleted, repo.matches[1].Status)
}

func TestConfirmScoreLosesRaceAgainstDispute(t *testing.T) {
	repo := newFakeMatchRepo()
	seedPendingConfirmation(repo)

	// The counterpart's dispute commits between this confirm's snapshot read
	// and its guarded write, so the confirm must not also apply.
	repo.beforeApply = func() {
		reason := "score was reversed"
		repo.matches[1].Status = StatusMatchDisputed
		repo.matches[1].DisputeReason = &reason
	}

	w := doPost(t, newTestRouter(repo, 2), "/matches/1/confirm", "")
	require.Equal(t, http.StatusConflict, w.Code)

	assert.Equal(t, StatusMatchDisputed, repo.matches[1].Status)
	require.NotNil(t, repo.matches[1].DisputeReason)
	assert.Equal(t, "score was reversed", *repo.matches[1].DisputeReason)
	assert.Nil(t, repo.matches[1].CompletedAt)
}

func TestSubmitScoreLosesRaceAgainstSubmit(t *testing.T) {
	repo := newFakeMatchRepo()
	repo.matches[1] = &Match{
		Model:        gorm.Model{ID: 1},
		TournamentID: 1,
		DivisionID:   1,
		RoundNumber:  1,
		Team1ID:      10,
		Team2ID:      20,
		Status:       StatusMatchInProgress,
	}

	repo.beforeApply = func() {
		score1, score2 := 9, 11
		submitter := uint(2)
		repo.matches[1].Status = StatusMatchPendingConfirmation
		repo.matches[1].Score1 = &score1
		repo.matches[1].Score2 = &score2
		repo.matches[1].SubmittedByID = &submitter
	}

	w := doPost(t, newTestRouter(repo, 1), "/matches/1/score", `{"score1": 11, "score2": 9}`)
	require.Equal(t, http.StatusConflict, w.Code)

	// The first submission stands untouched.
	assert.Equal(t, 9, *repo.matches[1].Score1)
	assert.Equal(t, uint(2), *repo.matches[1].SubmittedByID)
}

func TestDisputeScoreWithoutBody(t *testing.T) {
	repo := newFakeMatchRepo()
	seedPendingConfirmation(repo)

	w := doPost(t, newTestRouter(repo, 2), "/matches/1/dispute", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, StatusMatchDisputed, repo.matches[1].Status)
}

func TestStartMatchEndpointRejectsStranger(t *testing.T) {
	repo := newFakeMatchRepo()
	repo.matches[1] = &Match{
		Model:        gorm.Model{ID: 1},
		TournamentID: 1,
		DivisionID:   1,
		RoundNumber:  1,
		Team1ID:      10,
		Team2ID:      20,
		Status:       StatusMatchPending,
	}

	w := doPost(t, newTestRouter(repo, 50), "/matches/1/start", "")
	require.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, StatusMatchPending, repo.matches[1].Status)
}
