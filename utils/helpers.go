package utils

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Standard API response
type APIResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func SuccessResponse(c *gin.Context, statusCode int, message string, data interface{}) {
	c.JSON(statusCode, APIResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

func ErrorResponse(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, APIResponse{
		Success: false,
		Message: message,
	})
}

func BadRequest(c *gin.Context, message string) {
	ErrorResponse(c, http.StatusBadRequest, message)
}

func Unauthorized(c *gin.Context, message string) {
	ErrorResponse(c, http.StatusUnauthorized, message)
}

func NotFound(c *gin.Context, message string) {
	ErrorResponse(c, http.StatusNotFound, message)
}

func Conflict(c *gin.Context, message string) {
	ErrorResponse(c, http.StatusConflict, message)
}

func InternalError(c *gin.Context, message string) {
	ErrorResponse(c, http.StatusInternalServerError, message)
}

func ServiceUnavailable(c *gin.Context, message string) {
	ErrorResponse(c, http.StatusServiceUnavailable, message)
}

// Parse UUID from string
func ParseUUID(s string) (uuid.UUID, error) {
	return uuid.Parse(s)
}

// Get current staff ID from context (set by auth middleware)
func GetCurrentStaffID(c *gin.Context) uuid.UUID {
	staffID, exists := c.Get("staff_id")
	if !exists {
		return uuid.Nil
	}
	return staffID.(uuid.UUID)
}

// Calendar months are passed around as "YYYY-MM" strings everywhere.
const monthLayout = "2006-01"

func ValidMonth(s string) bool {
	_, err := time.Parse(monthLayout, s)
	return err == nil
}

func CurrentMonth() string {
	return time.Now().Format(monthLayout)
}

// MonthSpan returns the inclusive number of months from start to end,
// e.g. MonthSpan("2024-01", "2024-10") = 10. Returns 0 on parse failure.
func MonthSpan(start, end string) int {
	s, err := time.Parse(monthLayout, start)
	if err != nil {
		return 0
	}
	e, err := time.Parse(monthLayout, end)
	if err != nil {
		return 0
	}
	return (e.Year()-s.Year())*12 + int(e.Month()) - int(s.Month()) + 1
}

// AddMonths shifts a YYYY-MM month by n months.
func AddMonths(month string, n int) string {
	t, err := time.Parse(monthLayout, month)
	if err != nil {
		return month
	}
	return t.AddDate(0, n, 0).Format(monthLayout)
}

// Pagination helpers
type PaginationQuery struct {
	Page  int `form:"page,default=1"`
	Limit int `form:"limit,default=20"`
}

func (p *PaginationQuery) Offset() int {
	return (p.Page - 1) * p.Limit
}
