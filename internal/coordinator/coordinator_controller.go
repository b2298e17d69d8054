package coordinator

import (
	"net/http"
	"strconv"

	"github.com/allanbakerhussmann-crypto/pickleball-app/internal/match"
	"github.com/allanbakerhussmann-crypto/pickleball-app/internal/middleware"
	"github.com/allanbakerhussmann-crypto/pickleball-app/pkg/responses"
	"github.com/gin-gonic/gin"
)

// CoordinatorController exposes court allocation over HTTP. All mutating
// routes sit behind the organizer middleware, so the actor resolved here
// always carries the organizer capability.
type CoordinatorController struct {
	coordinator *Coordinator
}

func NewCoordinatorController(coordinator *Coordinator) *CoordinatorController {
	return &CoordinatorController{coordinator: coordinator}
}

type AssignMatchRequest struct {
	MatchID uint `json:"match_id" binding:"required"`
}

func parseIDParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		responses.BadRequest(c, "invalid "+name)
		return 0, false
	}
	return uint(id), true
}

// AssignMatchToCourt godoc
// @Summary Assign a waiting match to an available court
// @Tags allocation
// @Accept json
// @Produce json
// @Param id path int true "Court ID"
// @Param assignment body AssignMatchRequest true "Match to assign"
// @Success 200 {object} responses.SuccessResponse{data=CourtView}
// @Failure 409 {object} responses.ErrorResponse
// @Failure 422 {object} responses.ErrorResponse
// @Router /courts/{id}/assign [post]
// @Security Bearer
func (cc *CoordinatorController) AssignMatchToCourt(c *gin.Context) {
	courtID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req AssignMatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.BadRequest(c, err.Error())
		return
	}

	m, ct, err := cc.coordinator.AssignMatchToCourt(req.MatchID, courtID)
	if err != nil {
		responses.SendDomainError(c, err)
		return
	}

	occ := OccupancyOf(m)
	responses.SendSuccess(c, http.StatusOK, "Match assigned to court",
		CourtView{Court: *ct, Match: m, Occupancy: &occ})
}

// StartMatchOnCourt godoc
// @Summary Start the match assigned to a court
// @Tags allocation
// @Produce json
// @Param id path int true "Court ID"
// @Success 200 {object} responses.SuccessResponse{data=CourtView}
// @Failure 409 {object} responses.ErrorResponse
// @Router /courts/{id}/start [post]
// @Security Bearer
func (cc *CoordinatorController) StartMatchOnCourt(c *gin.Context) {
	courtID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, err.Error())
		return
	}
	actor := match.Actor{ID: userID, IsOrganizer: true}

	m, ct, err := cc.coordinator.StartMatchOnCourt(courtID, actor)
	if err != nil {
		responses.SendDomainError(c, err)
		return
	}

	occ := OccupancyOf(m)
	responses.SendSuccess(c, http.StatusOK, "Match started on court",
		CourtView{Court: *ct, Match: m, Occupancy: &occ})
}

// FinishMatchOnCourt godoc
// @Summary Free a court whose match has completed
// @Tags allocation
// @Produce json
// @Param id path int true "Court ID"
// @Success 200 {object} responses.SuccessResponse{data=CourtView}
// @Failure 409 {object} responses.ErrorResponse
// @Failure 422 {object} responses.ErrorResponse
// @Router /courts/{id}/finish [post]
// @Security Bearer
func (cc *CoordinatorController) FinishMatchOnCourt(c *gin.Context) {
	courtID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	m, ct, err := cc.coordinator.FinishMatchOnCourt(courtID)
	if err != nil {
		responses.SendDomainError(c, err)
		return
	}

	occ := OccupancyOf(m)
	responses.SendSuccess(c, http.StatusOK, "Court freed",
		CourtView{Court: *ct, Match: m, Occupancy: &occ})
}

// WaitingQueue godoc
// @Summary List matches waiting for a court
// @Tags allocation
// @Produce json
// @Param id path int true "Tournament ID"
// @Success 200 {object} responses.SuccessResponse
// @Router /tournaments/{id}/queue [get]
// @Security Bearer
func (cc *CoordinatorController) WaitingQueue(c *gin.Context) {
	tournamentID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	matches, err := cc.coordinator.WaitingQueue(tournamentID)
	if err != nil {
		responses.InternalServerError(c, "failed to fetch waiting queue")
		return
	}

	responses.SendSuccess(c, http.StatusOK, "", matches)
}

// CourtBoard godoc
// @Summary List a tournament's courts with their occupancy
// @Tags allocation
// @Produce json
// @Param id path int true "Tournament ID"
// @Success 200 {object} responses.SuccessResponse{data=[]CourtView}
// @Router /tournaments/{id}/courts [get]
// @Security Bearer
func (cc *CoordinatorController) CourtBoard(c *gin.Context) {
	tournamentID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	board, err := cc.coordinator.CourtBoard(tournamentID)
	if err != nil {
		responses.InternalServerError(c, "failed to fetch court board")
		return
	}

	responses.SendSuccess(c, http.StatusOK, "", board)
}
