package responses

import (
	"math"
	"net/http"

	"github.com/gin-gonic/gin"
)

// SuccessResponse represents a standard success JSON response.
type SuccessResponse struct {
	Status  string      `json:"status"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

// ErrorResponse represents a standard error JSON response.
type ErrorResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}

// PaginatedResponse represents a success response for lists with pagination details.
type PaginatedResponse struct {
	Status     string      `json:"status"`
	Message    string      `json:"message"`
	Data       interface{} `json:"data"`
	Pagination Pagination  `json:"pagination"`
}

// Pagination holds pagination information.
type Pagination struct {
	TotalItems  int64 `json:"total_items"`
	TotalPages  int   `json:"total_pages"`
	CurrentPage int   `json:"current_page"`
	PageSize    int   `json:"page_size"`
	HasNextPage bool  `json:"has_next_page"`
	HasPrevPage bool  `json:"has_prev_page"`
}

// SendSuccess sends a standardized success response.
func SendSuccess(c *gin.Context, statusCode int, message string, data interface{}) {
	if message == "" {
		message = "Operation completed successfully"
	}
	c.JSON(statusCode, SuccessResponse{
		Status:  "success",
		Message: message,
		Data:    data,
	})
}

// SendError sends a standardized error response.
func SendError(c *gin.Context, statusCode int, message string) {
	statusText := "error"
	if statusCode >= http.StatusInternalServerError {
		statusText = "fail"
	}
	c.AbortWithStatusJSON(statusCode, ErrorResponse{
		Status:  statusText,
		Message: message,
		Code:    statusCode,
	})
}

// SendPaginated sends a standardized success response for paginated data.
func SendPaginated(c *gin.Context, statusCode int, message string, data interface{}, totalItems int64, currentPage int, pageSize int) {
	if message == "" {
		message = "Data retrieved successfully"
	}
	if pageSize <= 0 {
		pageSize = 10
	}
	totalPages := int(math.Ceil(float64(totalItems) / float64(pageSize)))
	if totalPages == 0 && totalItems > 0 {
		totalPages = 1
	}

	c.JSON(statusCode, PaginatedResponse{
		Status:  "success",
		Message: message,
		Data:    data,
		Pagination: Pagination{
			TotalItems:  totalItems,
			TotalPages:  totalPages,
			CurrentPage: currentPage,
			PageSize:    pageSize,
			HasNextPage: currentPage < totalPages,
			HasPrevPage: currentPage > 1,
		},
	})
}

// NotFound sends a 404 Not Found error response.
func NotFound(c *gin.Context, resourceName string) {
	SendError(c, http.StatusNotFound, resourceName+" not found")
}

// Unauthorized sends a 401 Unauthorized error response.
func Unauthorized(c *gin.Context, message string) {
	if message == "" {
		message = "Unauthorized access"
	}
	SendError(c, http.StatusUnauthorized, message)
}

// Forbidden sends a 403 Forbidden error response.
func Forbidden(c *gin.Context, message string) {
	if message == "" {
		message = "Access to this resource is forbidden"
	}
	SendError(c, http.StatusForbidden, message)
}

// BadRequest sends a 400 Bad Request error response.
func BadRequest(c *gin.Context, message string) {
	if message == "" {
		message = "Invalid request payload or parameters"
	}
	SendError(c, http.StatusBadRequest, message)
}

// Conflict sends a 409 Conflict error response.
func Conflict(c *gin.Context, message string) {
	if message == "" {
		message = "The request conflicts with the current state of the resource"
	}
	SendError(c, http.StatusConflict, message)
}

// UnprocessableEntity sends a 422 error response.
func UnprocessableEntity(c *gin.Context, message string) {
	if message == "" {
		message = "The request cannot be processed against the current resource state"
	}
	SendError(c, http.StatusUnprocessableEntity, message)
}

// InternalServerError sends a 500 Internal Server Error response.
func InternalServerError(c *gin.Context, message string) {
	if message == "" {
		message = "An unexpected error occurred on the server"
	}
	SendError(c, http.StatusInternalServerError, message)
}
