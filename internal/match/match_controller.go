package match

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/allanbakerhussmann-crypto/pickleball-app/internal/middleware"
	"github.com/allanbakerhussmann-crypto/pickleball-app/internal/team"
	"github.com/allanbakerhussmann-crypto/pickleball-app/pkg/responses"
	"github.com/gin-gonic/gin"
)

// RoleReader resolves a user's roles; the controller uses it to grant the
// organizer capability.
type RoleReader interface {
	GetUserRoles(userID uint) ([]string, error)
}

// MatchController handles match lifecycle HTTP requests.
type MatchController struct {
	repo     MatchRepository
	teamRepo team.TeamRepository
	roles    RoleReader
}

func NewMatchController(repo MatchRepository, teamRepo team.TeamRepository, roles RoleReader) *MatchController {
	return &MatchController{repo: repo, teamRepo: teamRepo, roles: roles}
}

// resolveActor builds the capability view of the caller for one match.
func (mc *MatchController) resolveActor(userID uint, m *Match) (Actor, error) {
	actor := Actor{ID: userID}

	isParticipant, err := mc.teamRepo.IsUserInAnyTeam(userID, m.TeamIDs())
	if err != nil {
		return actor, err
	}
	actor.IsParticipant = isParticipant

	userRoles, err := mc.roles.GetUserRoles(userID)
	if err != nil {
		return actor, err
	}
	for _, role := range userRoles {
		if strings.EqualFold(role, "organizer") || strings.EqualFold(role, "admin") {
			actor.IsOrganizer = true
			break
		}
	}
	return actor, nil
}

// loadMatchAndActor is the shared front half of every lifecycle endpoint.
func (mc *MatchController) loadMatchAndActor(c *gin.Context) (*Match, Actor, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		responses.BadRequest(c, "invalid match ID")
		return nil, Actor{}, false
	}

	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, err.Error())
		return nil, Actor{}, false
	}

	m, err := mc.repo.GetMatchByID(uint(id))
	if err != nil {
		responses.InternalServerError(c, "failed to fetch match")
		return nil, Actor{}, false
	}
	if m == nil {
		responses.NotFound(c, "Match")
		return nil, Actor{}, false
	}

	actor, err := mc.resolveActor(userID, m)
	if err != nil {
		responses.InternalServerError(c, "failed to resolve actor capabilities")
		return nil, Actor{}, false
	}

	return m, actor, true
}

// applyAndRespond persists a validated transition and writes the response,
// translating a lost optimistic race into a retryable conflict.
func (mc *MatchController) applyAndRespond(c *gin.Context, m *Match, fromStatus MatchStatus, message string) {
	if err := mc.repo.ApplyTransition(m, fromStatus); err != nil {
		responses.SendDomainError(c, err)
		return
	}
	responses.SendSuccess(c, http.StatusOK, message, m)
}

// --- Requests ---

type CreateMatchRequest struct {
	TournamentID uint `json:"tournament_id" binding:"required"`
	DivisionID   uint `json:"division_id" binding:"required"`
	RoundNumber  int  `json:"round_number" binding:"required,min=1"`
	Team1ID      uint `json:"team1_id" binding:"required"`
	Team2ID      uint `json:"team2_id" binding:"required"`
}

type SubmitScoreRequest struct {
	Score1 *int `json:"score1" binding:"required"`
	Score2 *int `json:"score2" binding:"required"`
}

type DisputeScoreRequest struct {
	Reason string `json:"reason" binding:"max=1000"`
}

// --- Handlers ---

// CreateMatch godoc
// @Summary Create a match in a tournament division
// @Tags matches
// @Accept json
// @Produce json
// @Param match body CreateMatchRequest true "Match details"
// @Success 201 {object} responses.SuccessResponse{data=Match}
// @Failure 400 {object} responses.ErrorResponse
// @Router /matches [post]
// @Security Bearer
func (mc *MatchController) CreateMatch(c *gin.Context) {
	var req CreateMatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.BadRequest(c, err.Error())
		return
	}
	if req.Team1ID == req.Team2ID {
		responses.BadRequest(c, "a match needs two different teams")
		return
	}

	m := &Match{
		TournamentID: req.TournamentID,
		DivisionID:   req.DivisionID,
		RoundNumber:  req.RoundNumber,
		Team1ID:      req.Team1ID,
		Team2ID:      req.Team2ID,
		Status:       StatusMatchPending,
	}
	if err := mc.repo.CreateMatch(m); err != nil {
		responses.InternalServerError(c, "failed to create match")
		return
	}

	responses.SendSuccess(c, http.StatusCreated, "Match created", m)
}

// GetMatchByID godoc
// @Summary Get a match
// @Tags matches
// @Produce json
// @Param id path int true "Match ID"
// @Success 200 {object} responses.SuccessResponse{data=Match}
// @Failure 404 {object} responses.ErrorResponse
// @Router /matches/{id} [get]
// @Security Bearer
func (mc *MatchController) GetMatchByID(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		responses.BadRequest(c, "invalid match ID")
		return
	}

	m, err := mc.repo.GetMatchByID(uint(id))
	if err != nil {
		responses.InternalServerError(c, "failed to fetch match")
		return
	}
	if m == nil {
		responses.NotFound(c, "Match")
		return
	}

	responses.SendSuccess(c, http.StatusOK, "", m)
}

// GetMatches godoc
// @Summary List matches, filterable by tournament, division and status
// @Tags matches
// @Produce json
// @Param tournament_id query int false "Tournament ID"
// @Param division_id query int false "Division ID"
// @Param status query string false "Lifecycle status"
// @Param page query int false "Page number"
// @Param page_size query int false "Page size"
// @Success 200 {object} responses.PaginatedResponse
// @Router /matches [get]
// @Security Bearer
func (mc *MatchController) GetMatches(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	if page < 1 {
		page = 1
	}

	filters := map[string]interface{}{}
	if v := c.Query("tournament_id"); v != "" {
		filters["tournament_id = ?"] = v
	}
	if v := c.Query("division_id"); v != "" {
		filters["division_id = ?"] = v
	}
	if v := c.Query("status"); v != "" {
		filters["status = ?"] = v
	}

	matches, total, err := mc.repo.GetMatches(filters, page, pageSize)
	if err != nil {
		responses.InternalServerError(c, "failed to fetch matches")
		return
	}

	responses.SendPaginated(c, http.StatusOK, "", matches, total, page, pageSize)
}

// StartMatch godoc
// @Summary Start a pending match
// @Tags matches
// @Produce json
// @Param id path int true "Match ID"
// @Success 200 {object} responses.SuccessResponse{data=Match}
// @Failure 403 {object} responses.ErrorResponse
// @Failure 409 {object} responses.ErrorResponse
// @Router /matches/{id}/start [post]
// @Security Bearer
func (mc *MatchController) StartMatch(c *gin.Context) {
	m, actor, ok := mc.loadMatchAndActor(c)
	if !ok {
		return
	}

	fromStatus := m.Status
	if err := Start(m, actor); err != nil {
		responses.SendDomainError(c, err)
		return
	}
	mc.applyAndRespond(c, m, fromStatus, "Match started")
}

// SubmitScore godoc
// @Summary Submit a score for confirmation by the counterpart
// @Tags matches
// @Accept json
// @Produce json
// @Param id path int true "Match ID"
// @Param score body SubmitScoreRequest true "Final scores"
// @Success 200 {object} responses.SuccessResponse{data=Match}
// @Failure 400 {object} responses.ErrorResponse
// @Failure 409 {object} responses.ErrorResponse
// @Router /matches/{id}/score [post]
// @Security Bearer
func (mc *MatchController) SubmitScore(c *gin.Context) {
	var req SubmitScoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.BadRequest(c, err.Error())
		return
	}

	m, actor, ok := mc.loadMatchAndActor(c)
	if !ok {
		return
	}

	fromStatus := m.Status
	if err := SubmitScore(m, actor, *req.Score1, *req.Score2); err != nil {
		responses.SendDomainError(c, err)
		return
	}
	mc.applyAndRespond(c, m, fromStatus, "Score submitted, awaiting confirmation")
}

// ConfirmScore godoc
// @Summary Confirm the submitted score and complete the match
// @Tags matches
// @Produce json
// @Param id path int true "Match ID"
// @Success 200 {object} responses.SuccessResponse{data=Match}
// @Failure 403 {object} responses.ErrorResponse
// @Failure 409 {object} responses.ErrorResponse
// @Router /matches/{id}/confirm [post]
// @Security Bearer
func (mc *MatchController) ConfirmScore(c *gin.Context) {
	m, actor, ok := mc.loadMatchAndActor(c)
	if !ok {
		return
	}

	fromStatus := m.Status
	if err := ConfirmScore(m, actor); err != nil {
		responses.SendDomainError(c, err)
		return
	}
	mc.applyAndRespond(c, m, fromStatus, "Score confirmed, match completed")
}

// DisputeScore godoc
// @Summary Dispute the submitted score
// @Tags matches
// @Accept json
// @Produce json
// @Param id path int true "Match ID"
// @Param dispute body DisputeScoreRequest false "Dispute reason"
// @Success 200 {object} responses.SuccessResponse{data=Match}
// @Failure 403 {object} responses.ErrorResponse
// @Failure 409 {object} responses.ErrorResponse
// @Router /matches/{id}/dispute [post]
// @Security Bearer
func (mc *MatchController) DisputeScore(c *gin.Context) {
	// The reason is optional, so a body-less dispute is fine.
	var req DisputeScoreRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		responses.BadRequest(c, err.Error())
		return
	}

	m, actor, ok := mc.loadMatchAndActor(c)
	if !ok {
		return
	}

	fromStatus := m.Status
	if err := DisputeScore(m, actor, req.Reason); err != nil {
		responses.SendDomainError(c, err)
		return
	}
	mc.applyAndRespond(c, m, fromStatus, "Score disputed, awaiting organizer resolution")
}

// ResolveDispute godoc
// @Summary Resolve a disputed match with an organizer-supplied score
// @Tags matches
// @Accept json
// @Produce json
// @Param id path int true "Match ID"
// @Param score body SubmitScoreRequest true "Resolved scores"
// @Success 200 {object} responses.SuccessResponse{data=Match}
// @Failure 403 {object} responses.ErrorResponse
// @Failure 409 {object} responses.ErrorResponse
// @Router /matches/{id}/resolve [post]
// @Security Bearer
func (mc *MatchController) ResolveDispute(c *gin.Context) {
	var req SubmitScoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.BadRequest(c, err.Error())
		return
	}

	m, actor, ok := mc.loadMatchAndActor(c)
	if !ok {
		return
	}

	fromStatus := m.Status
	if err := ResolveDispute(m, actor, *req.Score1, *req.Score2); err != nil {
		responses.SendDomainError(c, err)
		return
	}
	mc.applyAndRespond(c, m, fromStatus, "Dispute resolved, match completed")
}
