package handlers

import (
	"net/http"

	"kasmoni-backend/database"
	"kasmoni-backend/models"
	"kasmoni-backend/utils"

	"github.com/gin-gonic/gin"
)

// GET /api/banks
func GetBanks(c *gin.Context) {
	var banks []models.Bank
	database.DB.Order("name").Find(&banks)
	utils.SuccessResponse(c, http.StatusOK, "", banks)
}

// POST /api/banks
func CreateBank(c *gin.Context) {
	var req models.CreateBankRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	bank := models.Bank{Name: req.Name, ShortCode: req.ShortCode}
	if err := database.DB.Create(&bank).Error; err != nil {
		utils.BadRequest(c, "Bank already exists")
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, "Bank created", bank)
}
