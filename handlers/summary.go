package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"kasmoni-backend/database"
	"kasmoni-backend/models"
	"kasmoni-backend/utils"

	"github.com/gin-gonic/gin"
)

const summaryCacheTTL = 5 * time.Minute

// GET /api/summary/:month
func GetMonthSummary(c *gin.Context) {
	month := c.Param("month")
	if !utils.ValidMonth(month) {
		utils.BadRequest(c, "Month must be YYYY-MM")
		return
	}

	// Serve from cache when available
	if database.Redis != nil {
		cached, err := database.Redis.Get(context.Background(), summaryCacheKey(month)).Result()
		if err == nil {
			var summary models.MonthSummary
			if json.Unmarshal([]byte(cached), &summary) == nil {
				utils.SuccessResponse(c, http.StatusOK, "", summary)
				return
			}
		}
	}

	summary, err := reporter.MonthSummary(c.Request.Context(), month)
	if err != nil {
		engineError(c, err)
		return
	}

	if database.Redis != nil {
		if payload, err := json.Marshal(summary); err == nil {
			database.Redis.Set(context.Background(), summaryCacheKey(month), payload, summaryCacheTTL)
		}
	}

	utils.SuccessResponse(c, http.StatusOK, "", summary)
}
