package handlers

import (
	"fmt"
	"net/http"

	"kasmoni-backend/database"
	"kasmoni-backend/models"
	"kasmoni-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// POST /api/members
func CreateMember(c *gin.Context) {
	staffID := utils.GetCurrentStaffID(c)

	var req models.CreateMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	member := models.Member{
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		Email:         req.Email,
		Phone:         req.Phone,
		AccountNumber: req.AccountNumber,
	}

	if req.BankID != "" {
		bankID, err := uuid.Parse(req.BankID)
		if err != nil {
			utils.BadRequest(c, "Invalid bank ID")
			return
		}
		var bank models.Bank
		if err := database.DB.First(&bank, bankID).Error; err != nil {
			utils.BadRequest(c, "Unknown bank")
			return
		}
		member.BankID = &bankID
	}

	if err := database.DB.Create(&member).Error; err != nil {
		utils.InternalError(c, "Failed to create member")
		return
	}

	database.DB.Create(&models.Activity{
		StaffID:     staffID,
		Type:        "member_added",
		ReferenceID: member.ID,
		Description: fmt.Sprintf("Member %s registered", member.FullName()),
	})

	utils.SuccessResponse(c, http.StatusCreated, "Member created", member)
}

// GET /api/members
func GetMembers(c *gin.Context) {
	var pagination utils.PaginationQuery
	c.ShouldBindQuery(&pagination)

	query := database.DB.Preload("Bank").Order("last_name, first_name")
	if q := c.Query("q"); q != "" {
		like := "%" + q + "%"
		query = query.Where("first_name ILIKE ? OR last_name ILIKE ? OR email ILIKE ?", like, like, like)
	}

	var members []models.Member
	query.Offset(pagination.Offset()).Limit(pagination.Limit).Find(&members)

	utils.SuccessResponse(c, http.StatusOK, "", members)
}

// GET /api/members/:id
func GetMember(c *gin.Context) {
	memberID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid member ID")
		return
	}

	var member models.Member
	if err := database.DB.Preload("Bank").First(&member, memberID).Error; err != nil {
		utils.NotFound(c, "Member not found")
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", member)
}

// PUT /api/members/:id
func UpdateMember(c *gin.Context) {
	memberID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid member ID")
		return
	}

	var member models.Member
	if err := database.DB.First(&member, memberID).Error; err != nil {
		utils.NotFound(c, "Member not found")
		return
	}

	var req models.UpdateMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	updates := map[string]interface{}{}
	if req.FirstName != "" {
		updates["first_name"] = req.FirstName
	}
	if req.LastName != "" {
		updates["last_name"] = req.LastName
	}
	if req.Phone != "" {
		updates["phone"] = req.Phone
	}
	if req.AccountNumber != "" {
		updates["account_number"] = req.AccountNumber
	}
	if req.BankID != "" {
		bankID, err := uuid.Parse(req.BankID)
		if err != nil {
			utils.BadRequest(c, "Invalid bank ID")
			return
		}
		updates["bank_id"] = bankID
	}

	database.DB.Model(&member).Updates(updates)
	database.DB.Preload("Bank").First(&member, memberID)

	utils.SuccessResponse(c, http.StatusOK, "Member updated", member)
}
