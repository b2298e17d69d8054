package team

import (
	"net/http"
	"strconv"
	"time"

	"github.com/allanbakerhussmann-crypto/pickleball-app/internal/middleware"
	"github.com/allanbakerhussmann-crypto/pickleball-app/pkg/responses"
	"github.com/gin-gonic/gin"
)

// TeamController handles team-related HTTP requests.
type TeamController struct {
	repo TeamRepository
}

func NewTeamController(repo TeamRepository) *TeamController {
	return &TeamController{repo: repo}
}

type CreateTeamRequest struct {
	Name      string `json:"name" binding:"required,min=2,max=100"`
	MemberIDs []uint `json:"member_ids" binding:"required,min=1,max=4"`
}

type AddMemberRequest struct {
	UserID uint   `json:"user_id" binding:"required"`
	Role   string `json:"role" binding:"omitempty,oneof=player captain"`
}

// CreateTeam godoc
// @Summary Create a team with its initial members
// @Tags teams
// @Accept json
// @Produce json
// @Param team body CreateTeamRequest true "Team details"
// @Success 201 {object} responses.SuccessResponse
// @Failure 400 {object} responses.ErrorResponse
// @Router /teams [post]
// @Security Bearer
func (tc *TeamController) CreateTeam(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, err.Error())
		return
	}

	var req CreateTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.BadRequest(c, err.Error())
		return
	}

	t := &Team{Name: req.Name, CreatedByID: userID}
	if err := tc.repo.CreateTeam(t); err != nil {
		responses.InternalServerError(c, "failed to create team")
		return
	}

	for _, memberID := range req.MemberIDs {
		member := &TeamMember{
			TeamID:   t.ID,
			UserID:   memberID,
			JoinedAt: time.Now(),
			IsActive: true,
		}
		if err := tc.repo.AddMember(member); err != nil {
			responses.InternalServerError(c, "failed to add team member")
			return
		}
	}

	responses.SendSuccess(c, http.StatusCreated, "Team created", t)
}

// AddMember godoc
// @Summary Add a member to a team
// @Tags teams
// @Accept json
// @Produce json
// @Param id path int true "Team ID"
// @Param member body AddMemberRequest true "Member to add"
// @Success 201 {object} responses.SuccessResponse
// @Failure 403 {object} responses.ErrorResponse
// @Failure 409 {object} responses.ErrorResponse
// @Router /teams/{id}/members [post]
// @Security Bearer
func (tc *TeamController) AddMember(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		responses.BadRequest(c, "invalid team ID")
		return
	}

	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, err.Error())
		return
	}

	t, err := tc.repo.GetTeamByID(uint(id))
	if err != nil {
		responses.InternalServerError(c, "failed to fetch team")
		return
	}
	if t == nil {
		responses.NotFound(c, "Team")
		return
	}
	if t.CreatedByID != userID {
		responses.Forbidden(c, "only the team creator can add members")
		return
	}

	var req AddMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.BadRequest(c, err.Error())
		return
	}

	existing, err := tc.repo.GetTeamMember(t.ID, req.UserID)
	if err != nil {
		responses.InternalServerError(c, "failed to check membership")
		return
	}
	if existing != nil {
		responses.Conflict(c, "user is already on this team")
		return
	}

	member := &TeamMember{
		TeamID:   t.ID,
		UserID:   req.UserID,
		Role:     req.Role,
		JoinedAt: time.Now(),
		IsActive: true,
	}
	if member.Role == "" {
		member.Role = "player"
	}
	if err := tc.repo.AddMember(member); err != nil {
		responses.InternalServerError(c, "failed to add team member")
		return
	}

	responses.SendSuccess(c, http.StatusCreated, "Member added", member)
}

// GetTeamByID godoc
// @Summary Get a team and its roster
// @Tags teams
// @Produce json
// @Param id path int true "Team ID"
// @Success 200 {object} responses.SuccessResponse
// @Failure 404 {object} responses.ErrorResponse
// @Router /teams/{id} [get]
// @Security Bearer
func (tc *TeamController) GetTeamByID(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		responses.BadRequest(c, "invalid team ID")
		return
	}

	t, err := tc.repo.GetTeamByID(uint(id))
	if err != nil {
		responses.InternalServerError(c, "failed to fetch team")
		return
	}
	if t == nil {
		responses.NotFound(c, "Team")
		return
	}

	members, err := tc.repo.GetTeamMembers(t.ID)
	if err != nil {
		responses.InternalServerError(c, "failed to fetch roster")
		return
	}

	responses.SendSuccess(c, http.StatusOK, "", gin.H{"team": t, "members": members})
}

// GetTeams godoc
// @Summary List teams
// @Tags teams
// @Produce json
// @Param page query int false "Page number"
// @Param page_size query int false "Page size"
// @Success 200 {object} responses.PaginatedResponse
// @Router /teams [get]
// @Security Bearer
func (tc *TeamController) GetTeams(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	if page < 1 {
		page = 1
	}

	teams, total, err := tc.repo.GetTeams(page, pageSize)
	if err != nil {
		responses.InternalServerError(c, "failed to fetch teams")
		return
	}

	responses.SendPaginated(c, http.StatusOK, "", teams, total, page, pageSize)
}
