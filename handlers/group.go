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

// POST /api/groups
func CreateGroup(c *gin.Context) {
	staffID := utils.GetCurrentStaffID(c)

	var req models.CreateGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	if req.EndMonth == "" && req.Duration > 0 {
		req.EndMonth = utils.AddMonths(req.StartMonth, req.Duration-1)
	}

	duration, ok := groupDuration(c, req.StartMonth, req.EndMonth)
	if !ok {
		return
	}
	if req.MonthlyAmount.IsNegative() {
		utils.BadRequest(c, "Monthly amount must not be negative")
		return
	}

	group := models.Group{
		Name:          req.Name,
		MonthlyAmount: req.MonthlyAmount,
		Duration:      duration,
		StartMonth:    req.StartMonth,
		EndMonth:      req.EndMonth,
	}

	if err := database.DB.Create(&group).Error; err != nil {
		utils.InternalError(c, "Failed to create group")
		return
	}

	database.DB.Create(&models.Activity{
		GroupID:     group.ID,
		StaffID:     staffID,
		Type:        "group_created",
		ReferenceID: group.ID,
		Description: fmt.Sprintf("Group \"%s\" created (%s/month × %d)", group.Name, group.MonthlyAmount, group.Duration),
	})

	utils.SuccessResponse(c, http.StatusCreated, "Group created", group)
}

// GET /api/groups
func GetGroups(c *gin.Context) {
	var groups []models.Group
	database.DB.Order("start_month DESC, name").Find(&groups)
	utils.SuccessResponse(c, http.StatusOK, "", groups)
}

// GET /api/groups/:id
func GetGroup(c *gin.Context) {
	groupID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid group ID")
		return
	}

	var group models.Group
	if err := database.DB.Preload("Slots").Preload("Slots.Member").First(&group, groupID).Error; err != nil {
		utils.NotFound(c, "Group not found")
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", group)
}

// PUT /api/groups/:id
//
// Edits only affect future payout saves: every PayoutRecord keeps the
// monthly amount and duration snapshotted when it was created.
func UpdateGroup(c *gin.Context) {
	groupID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid group ID")
		return
	}

	var group models.Group
	if err := database.DB.First(&group, groupID).Error; err != nil {
		utils.NotFound(c, "Group not found")
		return
	}

	var req models.UpdateGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	updates := map[string]interface{}{}
	if req.Name != "" {
		updates["name"] = req.Name
	}
	if req.MonthlyAmount != nil {
		if req.MonthlyAmount.IsNegative() {
			utils.BadRequest(c, "Monthly amount must not be negative")
			return
		}
		updates["monthly_amount"] = *req.MonthlyAmount
	}

	start, end := group.StartMonth, group.EndMonth
	if req.StartMonth != "" {
		start = req.StartMonth
	}
	if req.EndMonth != "" {
		end = req.EndMonth
	}
	if start != group.StartMonth || end != group.EndMonth {
		duration, ok := groupDuration(c, start, end)
		if !ok {
			return
		}
		updates["start_month"] = start
		updates["end_month"] = end
		updates["duration"] = duration
	}

	database.DB.Model(&group).Updates(updates)
	database.DB.First(&group, groupID)

	utils.SuccessResponse(c, http.StatusOK, "Group updated", group)
}

// POST /api/groups/:id/slots
func AssignSlot(c *gin.Context) {
	staffID := utils.GetCurrentStaffID(c)
	groupID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid group ID")
		return
	}

	var group models.Group
	if err := database.DB.First(&group, groupID).Error; err != nil {
		utils.NotFound(c, "Group not found")
		return
	}

	var req models.AssignSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	memberID, err := uuid.Parse(req.MemberID)
	if err != nil {
		utils.BadRequest(c, "Invalid member ID")
		return
	}
	var member models.Member
	if err := database.DB.First(&member, memberID).Error; err != nil {
		utils.BadRequest(c, "Unknown member")
		return
	}

	if !utils.ValidMonth(req.PayoutMonth) {
		utils.BadRequest(c, "Payout month must be YYYY-MM")
		return
	}
	if utils.MonthSpan(group.StartMonth, req.PayoutMonth) < 1 || utils.MonthSpan(req.PayoutMonth, group.EndMonth) < 1 {
		utils.BadRequest(c, fmt.Sprintf("Payout month must fall within %s and %s", group.StartMonth, group.EndMonth))
		return
	}

	// One slot per (group, member)
	var existing models.Slot
	if err := database.DB.Where("group_id = ? AND member_id = ?", groupID, memberID).First(&existing).Error; err == nil {
		utils.BadRequest(c, "Member already has a slot in this group")
		return
	}

	slot := models.Slot{
		GroupID:     groupID,
		MemberID:    memberID,
		PayoutMonth: req.PayoutMonth,
	}
	if err := database.DB.Create(&slot).Error; err != nil {
		utils.InternalError(c, "Failed to assign slot")
		return
	}

	database.DB.Create(&models.Activity{
		GroupID:     groupID,
		StaffID:     staffID,
		Type:        "slot_assigned",
		ReferenceID: slot.ID,
		Description: fmt.Sprintf("%s assigned payout month %s in %s", member.FullName(), slot.PayoutMonth, group.Name),
	})

	invalidateSummary(slot.PayoutMonth)
	utils.SuccessResponse(c, http.StatusCreated, "Slot assigned", slot)
}

// GET /api/groups/:id/slots
func GetGroupSlots(c *gin.Context) {
	groupID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid group ID")
		return
	}

	var slots []models.Slot
	database.DB.Where("group_id = ?", groupID).
		Preload("Member").
		Order("payout_month").
		Find(&slots)

	utils.SuccessResponse(c, http.StatusOK, "", slots)
}

// DELETE /api/groups/:id/slots/:slotId
//
// A slot with a payout record can no longer be removed: the record is the
// durable settlement history and is never deleted.
func RemoveSlot(c *gin.Context) {
	staffID := utils.GetCurrentStaffID(c)
	groupID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid group ID")
		return
	}
	slotID, err := uuid.Parse(c.Param("slotId"))
	if err != nil {
		utils.BadRequest(c, "Invalid slot ID")
		return
	}

	var slot models.Slot
	if err := database.DB.Where("id = ? AND group_id = ?", slotID, groupID).First(&slot).Error; err != nil {
		utils.NotFound(c, "Slot not found")
		return
	}

	var count int64
	database.DB.Model(&models.PayoutRecord{}).Where("slot_id = ?", slotID).Count(&count)
	if count > 0 {
		utils.Conflict(c, "Slot has a payout record and cannot be removed")
		return
	}

	database.DB.Delete(&slot)

	database.DB.Create(&models.Activity{
		GroupID:     groupID,
		StaffID:     staffID,
		Type:        "slot_removed",
		ReferenceID: slotID,
		Description: fmt.Sprintf("Slot for month %s removed", slot.PayoutMonth),
	})

	invalidateSummary(slot.PayoutMonth)
	utils.SuccessResponse(c, http.StatusOK, "Slot removed", nil)
}

// GET /api/groups/:id/payment-status?month=YYYY-MM
func GroupPaymentStatus(c *gin.Context) {
	groupID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid group ID")
		return
	}

	month := c.DefaultQuery("month", utils.CurrentMonth())
	if !utils.ValidMonth(month) {
		utils.BadRequest(c, "Month must be YYYY-MM")
		return
	}

	statuses, err := reporter.GroupPaymentStatus(c.Request.Context(), groupID, month)
	if err != nil {
		engineError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", statuses)
}

// groupDuration validates a group's month range and returns its duration.
// Writes the error response itself when the range is invalid.
func groupDuration(c *gin.Context, start, end string) (int, bool) {
	if !utils.ValidMonth(start) || !utils.ValidMonth(end) {
		utils.BadRequest(c, "Start and end month must be YYYY-MM")
		return 0, false
	}
	duration := utils.MonthSpan(start, end)
	if duration < 1 {
		utils.BadRequest(c, "End month must not precede start month")
		return 0, false
	}
	return duration, true
}
