package handlers

import (
	"net/http"

	"kasmoni-backend/services"
	"kasmoni-backend/utils"

	"github.com/gin-gonic/gin"
)

// POST /api/reminders/:month — trigger payment reminders for a month
func SendReminders(c *gin.Context) {
	month := c.Param("month")
	if !utils.ValidMonth(month) {
		utils.BadRequest(c, "Month must be YYYY-MM")
		return
	}

	go services.SendMonthlyReminders(month)

	utils.SuccessResponse(c, http.StatusAccepted, "Reminders scheduled", gin.H{"month": month})
}
