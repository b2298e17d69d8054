package court

import (
	"net/http"
	"strconv"

	"github.com/allanbakerhussmann-crypto/pickleball-app/pkg/responses"
	"github.com/gin-gonic/gin"
)

// CourtController handles court administration requests.
type CourtController struct {
	repo CourtRepository
}

func NewCourtController(repo CourtRepository) *CourtController {
	return &CourtController{repo: repo}
}

type CreateCourtRequest struct {
	TournamentID uint   `json:"tournament_id" binding:"required"`
	Name         string `json:"name" binding:"required,min=1,max=100"`
}

type RenameCourtRequest struct {
	Name string `json:"name" binding:"required,min=1,max=100"`
}

func (cc *CourtController) parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		responses.BadRequest(c, "invalid court ID")
		return 0, false
	}
	return uint(id), true
}

// CreateCourt godoc
// @Summary Create a court for a tournament
// @Tags courts
// @Accept json
// @Produce json
// @Param court body CreateCourtRequest true "Court details"
// @Success 201 {object} responses.SuccessResponse{data=Court}
// @Failure 400 {object} responses.ErrorResponse
// @Router /courts [post]
// @Security Bearer
func (cc *CourtController) CreateCourt(c *gin.Context) {
	var req CreateCourtRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.BadRequest(c, err.Error())
		return
	}

	court := &Court{
		TournamentID: req.TournamentID,
		Name:         req.Name,
		Status:       StatusCourtAvailable,
	}
	if err := cc.repo.CreateCourt(court); err != nil {
		responses.InternalServerError(c, "failed to create court")
		return
	}

	responses.SendSuccess(c, http.StatusCreated, "Court created", court)
}

// RenameCourt godoc
// @Summary Rename a court
// @Tags courts
// @Accept json
// @Produce json
// @Param id path int true "Court ID"
// @Param court body RenameCourtRequest true "New name"
// @Success 200 {object} responses.SuccessResponse
// @Failure 404 {object} responses.ErrorResponse
// @Router /courts/{id} [put]
// @Security Bearer
func (cc *CourtController) RenameCourt(c *gin.Context) {
	id, ok := cc.parseID(c)
	if !ok {
		return
	}

	var req RenameCourtRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.BadRequest(c, err.Error())
		return
	}

	if err := cc.repo.UpdateCourtName(id, req.Name); err != nil {
		responses.SendDomainError(c, err)
		return
	}

	responses.SendSuccess(c, http.StatusOK, "Court renamed", nil)
}

// MarkOutOfService godoc
// @Summary Take an unoccupied court out of rotation
// @Tags courts
// @Produce json
// @Param id path int true "Court ID"
// @Success 200 {object} responses.SuccessResponse
// @Failure 422 {object} responses.ErrorResponse
// @Router /courts/{id}/out-of-service [post]
// @Security Bearer
func (cc *CourtController) MarkOutOfService(c *gin.Context) {
	id, ok := cc.parseID(c)
	if !ok {
		return
	}

	if err := cc.repo.MarkOutOfService(id); err != nil {
		responses.SendDomainError(c, err)
		return
	}

	responses.SendSuccess(c, http.StatusOK, "Court marked out of service", nil)
}

// ReturnToService godoc
// @Summary Return an out-of-service court to rotation
// @Tags courts
// @Produce json
// @Param id path int true "Court ID"
// @Success 200 {object} responses.SuccessResponse
// @Failure 409 {object} responses.ErrorResponse
// @Router /courts/{id}/return-to-service [post]
// @Security Bearer
func (cc *CourtController) ReturnToService(c *gin.Context) {
	id, ok := cc.parseID(c)
	if !ok {
		return
	}

	if err := cc.repo.ReturnToService(id); err != nil {
		responses.SendDomainError(c, err)
		return
	}

	responses.SendSuccess(c, http.StatusOK, "Court returned to service", nil)
}
