package coordinator

import (
	"fmt"
	"sort"
	"testing"
	"time"

	"github.com/allanbakerhussmann-crypto/pickleball-app/internal/court"
	"github.com/allanbakerhussmann-crypto/pickleball-app/internal/match"
	"github.com/allanbakerhussmann-crypto/pickleball-app/pkg/apperrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// fakeRepo implements Repository in memory with the same guarded-write
// contract as the gorm-backed repository: each write re-checks its predicate
// against the stored state and returns ErrConflict when it no longer holds.
// The before* hooks let a test interleave a "concurrent" writer between the
// coordinator's snapshot read and its guarded write.
type fakeRepo struct {
	matches map[uint]*match.Match
	courts  map[uint]*court.Court

	beforeBind    func()
	beforeStart   func()
	beforeRelease func()
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		matches: make(map[uint]*match.Match),
		courts:  make(map[uint]*court.Court),
	}
}

func (f *fakeRepo) GetMatchByID(id uint) (*match.Match, error) {
	m, ok := f.matches[id]
	if !ok {
		return nil, nil
	}
	cp := *m
	return &cp, nil
}

func (f *fakeRepo) GetCourtByID(id uint) (*court.Court, error) {
	ct, ok := f.courts[id]
	if !ok {
		return nil, nil
	}
	cp := *ct
	return &cp, nil
}

func (f *fakeRepo) GetWaitingMatches(tournamentID uint) ([]match.Match, error) {
	var out []match.Match
	for _, m := range f.matches {
		if m.TournamentID == tournamentID && m.Status == match.StatusMatchPending && m.CourtID == nil {
			out = append(out, *m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeRepo) GetCourtsByTournament(tournamentID uint) ([]court.Court, error) {
	var out []court.Court
	for _, ct := range f.courts {
		if ct.TournamentID == tournamentID {
			out = append(out, *ct)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeRepo) BindMatchToCourt(matchID, courtID uint) error {
	if f.beforeBind != nil {
		f.beforeBind()
	}
	ct, m := f.courts[courtID], f.matches[matchID]
	if ct == nil || m == nil {
		return fmt.Errorf("%w: stale binding target", apperrors.ErrConflict)
	}
	if ct.Status != court.StatusCourtAvailable || ct.CurrentMatchID != nil {
		return fmt.Errorf("%w: court %d already claimed", apperrors.ErrConflict, courtID)
	}
	if m.Status != match.StatusMatchPending || m.CourtID != nil {
		return fmt.Errorf("%w: match %d already bound", apperrors.ErrConflict, matchID)
	}
	ct.Status = court.StatusCourtAssigned
	ct.CurrentMatchID = &matchID
	m.CourtID = &courtID
	return nil
}

func (f *fakeRepo) StartOnCourt(courtID, matchID uint, startedAt time.Time) error {
	if f.beforeStart != nil {
		f.beforeStart()
	}
	ct, m := f.courts[courtID], f.matches[matchID]
	if ct == nil || m == nil || ct.Status != court.StatusCourtAssigned ||
		ct.CurrentMatchID == nil || *ct.CurrentMatchID != matchID ||
		m.Status != match.StatusMatchPending {
		return fmt.Errorf("%w: start raced with another writer", apperrors.ErrConflict)
	}
	ct.Status = court.StatusCourtInUse
	m.Status = match.StatusMatchInProgress
	m.StartedAt = &startedAt
	return nil
}

func (f *fakeRepo) ReleaseCourt(courtID, matchID uint) error {
	if f.beforeRelease != nil {
		f.beforeRelease()
	}
	ct, m := f.courts[courtID], f.matches[matchID]
	if ct == nil || m == nil || !ct.IsOccupied() ||
		ct.CurrentMatchID == nil || *ct.CurrentMatchID != matchID ||
		m.Status != match.StatusMatchCompleted {
		return fmt.Errorf("%w: release raced with another writer", apperrors.ErrConflict)
	}
	ct.Status = court.StatusCourtAvailable
	ct.CurrentMatchID = nil
	m.CourtID = nil
	return nil
}

func (f *fakeRepo) addMatch(id uint, status match.MatchStatus) *match.Match {
	m := &match.Match{
		Model:        gorm.Model{ID: id},
		TournamentID: 1,
		DivisionID:   1,
		RoundNumber:  1,
		Team1ID:      10,
		Team2ID:      20,
		Status:       status,
	}
	f.matches[id] = m
	return m
}

func (f *fakeRepo) addCourt(id uint, status court.CourtStatus) *court.Court {
	ct := &court.Court{
		Model:        gorm.Model{ID: id},
		TournamentID: 1,
		Name:         fmt.Sprintf("Court %d", id),
		Status:       status,
	}
	f.courts[id] = ct
	return ct
}

var organizer = match.Actor{ID: 99, IsOrganizer: true}

func TestAssignMatchToCourt(t *testing.T) {
	repo := newFakeRepo()
	repo.addMatch(1, match.StatusMatchPending)
	repo.addCourt(5, court.StatusCourtAvailable)
	co := NewCoordinator(repo)

	m, ct, err := co.AssignMatchToCourt(1, 5)
	require.NoError(t, err)

	assert.Equal(t, court.StatusCourtAssigned, ct.Status)
	require.NotNil(t, ct.CurrentMatchID)
	assert.Equal(t, uint(1), *ct.CurrentMatchID)
	require.NotNil(t, m.CourtID)
	assert.Equal(t, uint(5), *m.CourtID)
	assert.Equal(t, match.StatusMatchPending, m.Status, "assignment alone does not start the match")
}

func TestAssignRejectsOccupiedCourt(t *testing.T) {
	repo := newFakeRepo()
	repo.addMatch(1, match.StatusMatchPending)
	repo.addMatch(2, match.StatusMatchPending)
	repo.addCourt(5, court.StatusCourtAvailable)
	co := NewCoordinator(repo)

	_, _, err := co.AssignMatchToCourt(1, 5)
	require.NoError(t, err)

	// Second assignment to the same court must fail and leave the first
	// binding intact.
	_, _, err = co.AssignMatchToCourt(2, 5)
	require.ErrorIs(t, err, apperrors.ErrUnavailable)

	assert.Equal(t, uint(1), *repo.courts[5].CurrentMatchID)
	assert.Nil(t, repo.matches[2].CourtID)
}

func TestAssignRejectsOutOfServiceCourt(t *testing.T) {
	repo := newFakeRepo()
	repo.addMatch(1, match.StatusMatchPending)
	repo.addCourt(5, court.StatusCourtOutOfService)
	co := NewCoordinator(repo)

	_, _, err := co.AssignMatchToCourt(1, 5)
	require.ErrorIs(t, err, apperrors.ErrUnavailable)
}

func TestAssignRejectsNonWaitingMatch(t *testing.T) {
	repo := newFakeRepo()
	repo.addCourt(5, court.StatusCourtAvailable)
	co := NewCoordinator(repo)

	for id, status := range map[uint]match.MatchStatus{
		2: match.StatusMatchInProgress,
		3: match.StatusMatchPendingConfirmation,
		4: match.StatusMatchCompleted,
		5: match.StatusMatchDisputed,
	} {
		repo.addMatch(id, status)
		_, _, err := co.AssignMatchToCourt(id, 5)
		require.ErrorIs(t, err, apperrors.ErrInvalidTransition, "status %s", status)
	}

	// An already-assigned pending match is not waiting either.
	courtID := uint(9)
	m := repo.addMatch(6, match.StatusMatchPending)
	m.CourtID = &courtID
	_, _, err := co.AssignMatchToCourt(6, 5)
	require.ErrorIs(t, err, apperrors.ErrInvalidTransition)
}

func TestAssignUnknownIDs(t *testing.T) {
	repo := newFakeRepo()
	repo.addMatch(1, match.StatusMatchPending)
	co := NewCoordinator(repo)

	_, _, err := co.AssignMatchToCourt(1, 404)
	require.ErrorIs(t, err, apperrors.ErrNotFound)

	_, _, err = co.AssignMatchToCourt(404, 1)
	require.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestAssignLostRaceSurfacesConflict(t *testing.T) {
	repo := newFakeRepo()
	repo.addMatch(1, match.StatusMatchPending)
	repo.addMatch(2, match.StatusMatchPending)
	repo.addCourt(5, court.StatusCourtAvailable)
	co := NewCoordinator(repo)

	// A concurrent organizer claims the court after our snapshot read but
	// before our guarded write.
	repo.beforeBind = func() {
		if repo.courts[5].CurrentMatchID == nil {
			other := uint(2)
			repo.courts[5].Status = court.StatusCourtAssigned
			repo.courts[5].CurrentMatchID = &other
			repo.matches[2].CourtID = ptr(uint(5))
		}
	}

	_, _, err := co.AssignMatchToCourt(1, 5)
	require.ErrorIs(t, err, apperrors.ErrConflict)

	// The loser's match is untouched; the winner keeps the court.
	assert.Nil(t, repo.matches[1].CourtID)
	assert.Equal(t, uint(2), *repo.courts[5].CurrentMatchID)
}

func TestStartMatchOnCourt(t *testing.T) {
	repo := newFakeRepo()
	repo.addMatch(1, match.StatusMatchPending)
	repo.addCourt(5, court.StatusCourtAvailable)
	co := NewCoordinator(repo)

	_, _, err := co.AssignMatchToCourt(1, 5)
	require.NoError(t, err)

	m, ct, err := co.StartMatchOnCourt(5, organizer)
	require.NoError(t, err)

	assert.Equal(t, match.StatusMatchInProgress, m.Status)
	require.NotNil(t, m.StartedAt)
	assert.Equal(t, court.StatusCourtInUse, ct.Status)
	assert.Equal(t, uint(1), *ct.CurrentMatchID)
}

func TestStartMatchOnCourtRejections(t *testing.T) {
	t.Run("court without assignment", func(t *testing.T) {
		repo := newFakeRepo()
		repo.addCourt(5, court.StatusCourtAvailable)
		co := NewCoordinator(repo)

		_, _, err := co.StartMatchOnCourt(5, organizer)
		require.ErrorIs(t, err, apperrors.ErrInvalidTransition)
	})

	t.Run("unauthorized actor leaves both sides untouched", func(t *testing.T) {
		repo := newFakeRepo()
		repo.addMatch(1, match.StatusMatchPending)
		repo.addCourt(5, court.StatusCourtAvailable)
		co := NewCoordinator(repo)

		_, _, err := co.AssignMatchToCourt(1, 5)
		require.NoError(t, err)

		_, _, err = co.StartMatchOnCourt(5, match.Actor{ID: 50})
		require.ErrorIs(t, err, apperrors.ErrUnauthorized)

		assert.Equal(t, match.StatusMatchPending, repo.matches[1].Status)
		assert.Equal(t, court.StatusCourtAssigned, repo.courts[5].Status)
	})

	t.Run("lost race surfaces conflict", func(t *testing.T) {
		repo := newFakeRepo()
		repo.addMatch(1, match.StatusMatchPending)
		repo.addCourt(5, court.StatusCourtAvailable)
		co := NewCoordinator(repo)

		_, _, err := co.AssignMatchToCourt(1, 5)
		require.NoError(t, err)

		repo.beforeStart = func() {
			// Another request started the match already.
			now := time.Now()
			repo.matches[1].Status = match.StatusMatchInProgress
			repo.matches[1].StartedAt = &now
			repo.courts[5].Status = court.StatusCourtInUse
		}

		_, _, err = co.StartMatchOnCourt(5, organizer)
		require.ErrorIs(t, err, apperrors.ErrConflict)
	})
}

func TestFinishMatchOnCourt(t *testing.T) {
	repo := newFakeRepo()
	repo.addMatch(1, match.StatusMatchPending)
	repo.addCourt(5, court.StatusCourtAvailable)
	co := NewCoordinator(repo)

	_, _, err := co.AssignMatchToCourt(1, 5)
	require.NoError(t, err)
	_, _, err = co.StartMatchOnCourt(5, organizer)
	require.NoError(t, err)

	// The court cannot be freed while the result is not final.
	_, _, err = co.FinishMatchOnCourt(5)
	require.ErrorIs(t, err, apperrors.ErrUnavailable)
	assert.Equal(t, court.StatusCourtInUse, repo.courts[5].Status)

	// Still not final while awaiting confirmation.
	require.NoError(t, match.SubmitScore(repo.matches[1], match.Actor{ID: 1, IsParticipant: true}, 11, 9))
	_, _, err = co.FinishMatchOnCourt(5)
	require.ErrorIs(t, err, apperrors.ErrUnavailable)

	// Nor while disputed.
	require.NoError(t, match.DisputeScore(repo.matches[1], match.Actor{ID: 2, IsParticipant: true}, "wrong side"))
	_, _, err = co.FinishMatchOnCourt(5)
	require.ErrorIs(t, err, apperrors.ErrUnavailable)
	assert.Equal(t, court.StatusCourtInUse, repo.courts[5].Status, "a contested court must not be reassigned")

	// Once the organizer resolves the dispute the court frees up.
	require.NoError(t, match.ResolveDispute(repo.matches[1], organizer, 9, 11))
	m, ct, err := co.FinishMatchOnCourt(5)
	require.NoError(t, err)

	assert.Equal(t, court.StatusCourtAvailable, ct.Status)
	assert.Nil(t, ct.CurrentMatchID)
	assert.Nil(t, m.CourtID)
	assert.Equal(t, match.StatusMatchCompleted, m.Status)
}

func TestFinishRequiresOccupiedCourt(t *testing.T) {
	repo := newFakeRepo()
	repo.addCourt(5, court.StatusCourtAvailable)
	repo.addCourt(6, court.StatusCourtOutOfService)
	co := NewCoordinator(repo)

	_, _, err := co.FinishMatchOnCourt(5)
	require.ErrorIs(t, err, apperrors.ErrInvalidTransition)

	_, _, err = co.FinishMatchOnCourt(6)
	require.ErrorIs(t, err, apperrors.ErrInvalidTransition)
}

func TestFinishFreesAssignedCourtWhoseMatchCompleted(t *testing.T) {
	repo := newFakeRepo()
	repo.addMatch(1, match.StatusMatchPending)
	repo.addCourt(5, court.StatusCourtAvailable)
	co := NewCoordinator(repo)

	_, _, err := co.AssignMatchToCourt(1, 5)
	require.NoError(t, err)

	// The match runs to completion through the lifecycle endpoints without
	// ever being started on the court, so the court is still ASSIGNED.
	p1 := match.Actor{ID: 1, IsParticipant: true}
	p2 := match.Actor{ID: 2, IsParticipant: true}
	require.NoError(t, match.SubmitScore(repo.matches[1], p1, 11, 9))
	require.NoError(t, match.ConfirmScore(repo.matches[1], p2))
	require.Equal(t, court.StatusCourtAssigned, repo.courts[5].Status)

	// The court must still be releasable, not stranded.
	m, ct, err := co.FinishMatchOnCourt(5)
	require.NoError(t, err)
	assert.Equal(t, court.StatusCourtAvailable, ct.Status)
	assert.Nil(t, ct.CurrentMatchID)
	assert.Nil(t, m.CourtID)

	// And immediately reusable for the next waiting match.
	repo.addMatch(2, match.StatusMatchPending)
	_, _, err = co.AssignMatchToCourt(2, 5)
	require.NoError(t, err)
	assert.Equal(t, uint(2), *repo.courts[5].CurrentMatchID)
}

func TestCourtReusableAfterFullCycle(t *testing.T) {
	repo := newFakeRepo()
	repo.addMatch(1, match.StatusMatchPending)
	repo.addMatch(2, match.StatusMatchPending)
	repo.addCourt(5, court.StatusCourtAvailable)
	co := NewCoordinator(repo)

	p1 := match.Actor{ID: 1, IsParticipant: true}
	p2 := match.Actor{ID: 2, IsParticipant: true}

	_, _, err := co.AssignMatchToCourt(1, 5)
	require.NoError(t, err)
	_, _, err = co.StartMatchOnCourt(5, p1)
	require.NoError(t, err)
	require.NoError(t, match.SubmitScore(repo.matches[1], p1, 11, 9))
	require.NoError(t, match.ConfirmScore(repo.matches[1], p2))
	_, _, err = co.FinishMatchOnCourt(5)
	require.NoError(t, err)

	// The freed court can host the next waiting match.
	m, ct, err := co.AssignMatchToCourt(2, 5)
	require.NoError(t, err)
	assert.Equal(t, uint(2), *ct.CurrentMatchID)
	assert.Equal(t, uint(5), *m.CourtID)
}

func TestWaitingQueue(t *testing.T) {
	repo := newFakeRepo()
	repo.addMatch(1, match.StatusMatchPending)
	repo.addMatch(2, match.StatusMatchPending)
	repo.addMatch(3, match.StatusMatchInProgress)
	repo.addCourt(5, court.StatusCourtAvailable)
	co := NewCoordinator(repo)

	_, _, err := co.AssignMatchToCourt(2, 5)
	require.NoError(t, err)

	queue, err := co.WaitingQueue(1)
	require.NoError(t, err)
	require.Len(t, queue, 1, "assigned and running matches leave the queue")
	assert.Equal(t, uint(1), queue[0].ID)
}

func TestCourtBoard(t *testing.T) {
	repo := newFakeRepo()
	repo.addMatch(1, match.StatusMatchPending)
	repo.addCourt(5, court.StatusCourtAvailable)
	repo.addCourt(6, court.StatusCourtAvailable)
	repo.addCourt(7, court.StatusCourtOutOfService)
	co := NewCoordinator(repo)

	_, _, err := co.AssignMatchToCourt(1, 5)
	require.NoError(t, err)

	board, err := co.CourtBoard(1)
	require.NoError(t, err)
	require.Len(t, board, 3)

	assert.Equal(t, uint(5), board[0].Court.ID)
	require.NotNil(t, board[0].Match)
	require.NotNil(t, board[0].Occupancy)
	assert.Equal(t, OccupancyAssigned, *board[0].Occupancy)

	assert.Nil(t, board[1].Match)
	assert.Nil(t, board[2].Match)
}

func ptr[T any](v T) *T { return &v }
