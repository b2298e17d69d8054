package tournament

import (
	"net/http"
	"strconv"
	"time"

	"github.com/allanbakerhussmann-crypto/pickleball-app/internal/middleware"
	"github.com/allanbakerhussmann-crypto/pickleball-app/pkg/responses"
	"github.com/gin-gonic/gin"
)

// TournamentController handles tournament administration requests.
type TournamentController struct {
	repo TournamentRepository
}

func NewTournamentController(repo TournamentRepository) *TournamentController {
	return &TournamentController{repo: repo}
}

type CreateTournamentRequest struct {
	Name        string    `json:"name" binding:"required,min=3,max=200"`
	Description string    `json:"description" binding:"max=2000"`
	StartDate   time.Time `json:"start_date" binding:"required"`
	EndDate     time.Time `json:"end_date" binding:"required"`
}

type UpdateTournamentRequest struct {
	Name        string `json:"name" binding:"omitempty,min=3,max=200"`
	Description string `json:"description" binding:"omitempty,max=2000"`
	Status      string `json:"status" binding:"omitempty,oneof=registration_open in_progress completed"`
}

type CreateDivisionRequest struct {
	Name     string `json:"name" binding:"required,min=2,max=100"`
	PlayType string `json:"play_type" binding:"omitempty,oneof=singles doubles mixed"`
	MaxTeams int    `json:"max_teams,omitempty"`
}

// CreateTournament godoc
// @Summary Create a tournament
// @Tags tournaments
// @Accept json
// @Produce json
// @Param tournament body CreateTournamentRequest true "Tournament details"
// @Success 201 {object} responses.SuccessResponse
// @Failure 400 {object} responses.ErrorResponse
// @Router /tournaments [post]
// @Security Bearer
func (tc *TournamentController) CreateTournament(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, err.Error())
		return
	}

	var req CreateTournamentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.BadRequest(c, err.Error())
		return
	}
	if !req.EndDate.After(req.StartDate) {
		responses.BadRequest(c, "end_date must be after start_date")
		return
	}

	t := &Tournament{
		Name:            req.Name,
		Description:     req.Description,
		CreatedByUserID: userID,
		StartDate:       req.StartDate,
		EndDate:         req.EndDate,
		Status:          StatusRegistrationOpen,
	}
	if err := tc.repo.CreateTournament(t); err != nil {
		responses.InternalServerError(c, "failed to create tournament")
		return
	}

	responses.SendSuccess(c, http.StatusCreated, "Tournament created", t)
}

// GetTournamentByID godoc
// @Summary Get a tournament with its divisions
// @Tags tournaments
// @Produce json
// @Param id path int true "Tournament ID"
// @Success 200 {object} responses.SuccessResponse
// @Failure 404 {object} responses.ErrorResponse
// @Router /tournaments/{id} [get]
// @Security Bearer
func (tc *TournamentController) GetTournamentByID(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		responses.BadRequest(c, "invalid tournament ID")
		return
	}

	t, err := tc.repo.GetTournamentByID(uint(id))
	if err != nil {
		responses.InternalServerError(c, "failed to fetch tournament")
		return
	}
	if t == nil {
		responses.NotFound(c, "Tournament")
		return
	}

	responses.SendSuccess(c, http.StatusOK, "", t)
}

// GetTournaments godoc
// @Summary List tournaments
// @Tags tournaments
// @Produce json
// @Param page query int false "Page number"
// @Param page_size query int false "Page size"
// @Success 200 {object} responses.PaginatedResponse
// @Router /tournaments [get]
// @Security Bearer
func (tc *TournamentController) GetTournaments(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	if page < 1 {
		page = 1
	}

	tournaments, total, err := tc.repo.GetTournaments(page, pageSize)
	if err != nil {
		responses.InternalServerError(c, "failed to fetch tournaments")
		return
	}

	responses.SendPaginated(c, http.StatusOK, "", tournaments, total, page, pageSize)
}

// UpdateTournament godoc
// @Summary Update a tournament's name, description or status
// @Tags tournaments
// @Accept json
// @Produce json
// @Param id path int true "Tournament ID"
// @Param tournament body UpdateTournamentRequest true "Fields to update"
// @Success 200 {object} responses.SuccessResponse
// @Failure 404 {object} responses.ErrorResponse
// @Router /tournaments/{id} [put]
// @Security Bearer
func (tc *TournamentController) UpdateTournament(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		responses.BadRequest(c, "invalid tournament ID")
		return
	}

	t, err := tc.repo.GetTournamentByID(uint(id))
	if err != nil {
		responses.InternalServerError(c, "failed to fetch tournament")
		return
	}
	if t == nil {
		responses.NotFound(c, "Tournament")
		return
	}

	var req UpdateTournamentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.BadRequest(c, err.Error())
		return
	}

	if req.Name != "" {
		t.Name = req.Name
	}
	if req.Description != "" {
		t.Description = req.Description
	}
	if req.Status != "" {
		t.Status = TournamentStatus(req.Status)
	}

	if err := tc.repo.UpdateTournament(t); err != nil {
		responses.InternalServerError(c, "failed to update tournament")
		return
	}

	responses.SendSuccess(c, http.StatusOK, "Tournament updated", t)
}

// DeleteTournament godoc
// @Summary Delete a tournament
// @Tags tournaments
// @Produce json
// @Param id path int true "Tournament ID"
// @Success 200 {object} responses.SuccessResponse
// @Failure 404 {object} responses.ErrorResponse
// @Router /tournaments/{id} [delete]
// @Security Bearer
func (tc *TournamentController) DeleteTournament(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		responses.BadRequest(c, "invalid tournament ID")
		return
	}

	t, err := tc.repo.GetTournamentByID(uint(id))
	if err != nil {
		responses.InternalServerError(c, "failed to fetch tournament")
		return
	}
	if t == nil {
		responses.NotFound(c, "Tournament")
		return
	}

	if err := tc.repo.DeleteTournament(t.ID); err != nil {
		responses.InternalServerError(c, "failed to delete tournament")
		return
	}

	responses.SendSuccess(c, http.StatusOK, "Tournament deleted", nil)
}

// GetDivisions godoc
// @Summary List a tournament's divisions
// @Tags tournaments
// @Produce json
// @Param id path int true "Tournament ID"
// @Success 200 {object} responses.SuccessResponse
// @Router /tournaments/{id}/divisions [get]
// @Security Bearer
func (tc *TournamentController) GetDivisions(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		responses.BadRequest(c, "invalid tournament ID")
		return
	}

	divisions, err := tc.repo.GetDivisionsByTournament(uint(id))
	if err != nil {
		responses.InternalServerError(c, "failed to fetch divisions")
		return
	}

	responses.SendSuccess(c, http.StatusOK, "", divisions)
}

// CreateDivision godoc
// @Summary Add a division to a tournament
// @Tags tournaments
// @Accept json
// @Produce json
// @Param id path int true "Tournament ID"
// @Param division body CreateDivisionRequest true "Division details"
// @Success 201 {object} responses.SuccessResponse
// @Failure 404 {object} responses.ErrorResponse
// @Router /tournaments/{id}/divisions [post]
// @Security Bearer
func (tc *TournamentController) CreateDivision(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		responses.BadRequest(c, "invalid tournament ID")
		return
	}

	t, err := tc.repo.GetTournamentByID(uint(id))
	if err != nil {
		responses.InternalServerError(c, "failed to fetch tournament")
		return
	}
	if t == nil {
		responses.NotFound(c, "Tournament")
		return
	}

	var req CreateDivisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.BadRequest(c, err.Error())
		return
	}

	d := &Division{
		TournamentID: t.ID,
		Name:         req.Name,
		PlayType:     req.PlayType,
		MaxTeams:     req.MaxTeams,
	}
	if d.PlayType == "" {
		d.PlayType = "doubles"
	}
	if err := tc.repo.CreateDivision(d); err != nil {
		responses.InternalServerError(c, "failed to create division")
		return
	}

	responses.SendSuccess(c, http.StatusCreated, "Division created", d)
}
