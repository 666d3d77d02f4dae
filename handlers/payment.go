package handlers

import (
	"fmt"
	"net/http"
	"time"

	"kasmoni-backend/database"
	"kasmoni-backend/models"
	"kasmoni-backend/services"
	"kasmoni-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// POST /api/payments
func CreatePayment(c *gin.Context) {
	staffID := utils.GetCurrentStaffID(c)

	var req models.CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	memberID, err := uuid.Parse(req.MemberID)
	if err != nil {
		utils.BadRequest(c, "Invalid member ID")
		return
	}
	groupID, err := uuid.Parse(req.GroupID)
	if err != nil {
		utils.BadRequest(c, "Invalid group ID")
		return
	}
	if !utils.ValidMonth(req.PaymentMonth) {
		utils.BadRequest(c, "Payment month must be YYYY-MM")
		return
	}
	if req.Amount.IsNegative() {
		utils.BadRequest(c, "Amount must not be negative")
		return
	}

	var member models.Member
	if err := database.DB.First(&member, memberID).Error; err != nil {
		utils.BadRequest(c, "Unknown member")
		return
	}
	var group models.Group
	if err := database.DB.First(&group, groupID).Error; err != nil {
		utils.BadRequest(c, "Unknown group")
		return
	}

	payment := models.Payment{
		MemberID:     memberID,
		GroupID:      groupID,
		PaymentMonth: req.PaymentMonth,
		Amount:       req.Amount,
		Status:       req.Status,
		PaymentDate:  time.Now(),
	}
	if payment.Status == "" {
		payment.Status = models.PaymentNotPaid
	}

	if req.SlotID != "" {
		slotID, err := uuid.Parse(req.SlotID)
		if err != nil {
			utils.BadRequest(c, "Invalid slot ID")
			return
		}
		var slot models.Slot
		if err := database.DB.Where("id = ? AND group_id = ? AND member_id = ?", slotID, groupID, memberID).First(&slot).Error; err != nil {
			utils.BadRequest(c, "Slot does not belong to this member and group")
			return
		}
		payment.SlotID = &slotID
	}

	if req.PaymentDate != "" {
		parsed, err := time.Parse("2006-01-02", req.PaymentDate)
		if err == nil {
			payment.PaymentDate = parsed
		}
	}

	if err := database.DB.Create(&payment).Error; err != nil {
		utils.InternalError(c, "Failed to record payment")
		return
	}

	database.DB.Create(&models.Activity{
		GroupID:     groupID,
		StaffID:     staffID,
		Type:        "payment_recorded",
		ReferenceID: payment.ID,
		Description: fmt.Sprintf("Payment of %s recorded for %s (%s, %s)", payment.Amount, member.FullName(), group.Name, payment.PaymentMonth),
	})

	if payment.Collected() {
		go services.GetNotificationService().NotifyPaymentReceived(member, payment, group)
	}

	invalidateSummary(payment.PaymentMonth)
	utils.SuccessResponse(c, http.StatusCreated, "Payment recorded", payment)
}

// GET /api/payments?member_id=&group_id=&month=&status=
func GetPayments(c *gin.Context) {
	var pagination utils.PaginationQuery
	c.ShouldBindQuery(&pagination)

	query := database.DB.Preload("Member").Order("payment_month DESC, payment_date DESC")

	if v := c.Query("member_id"); v != "" {
		memberID, err := uuid.Parse(v)
		if err != nil {
			utils.BadRequest(c, "Invalid member ID")
			return
		}
		query = query.Where("member_id = ?", memberID)
	}
	if v := c.Query("group_id"); v != "" {
		groupID, err := uuid.Parse(v)
		if err != nil {
			utils.BadRequest(c, "Invalid group ID")
			return
		}
		query = query.Where("group_id = ?", groupID)
	}
	if v := c.Query("month"); v != "" {
		if !utils.ValidMonth(v) {
			utils.BadRequest(c, "Month must be YYYY-MM")
			return
		}
		query = query.Where("payment_month = ?", v)
	}
	if v := c.Query("status"); v != "" {
		query = query.Where("status = ?", v)
	}

	var payments []models.Payment
	query.Offset(pagination.Offset()).Limit(pagination.Limit).Find(&payments)

	utils.SuccessResponse(c, http.StatusOK, "", payments)
}

// PUT /api/payments/:id/status
func UpdatePaymentStatus(c *gin.Context) {
	staffID := utils.GetCurrentStaffID(c)
	paymentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid payment ID")
		return
	}

	var payment models.Payment
	if err := database.DB.First(&payment, paymentID).Error; err != nil {
		utils.NotFound(c, "Payment not found")
		return
	}

	var req models.UpdatePaymentStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	previous := payment.Status
	database.DB.Model(&payment).Update("status", req.Status)
	payment.Status = req.Status

	database.DB.Create(&models.Activity{
		GroupID:     payment.GroupID,
		StaffID:     staffID,
		Type:        "payment_status_changed",
		ReferenceID: payment.ID,
		Description: fmt.Sprintf("Payment for %s changed from %s to %s", payment.PaymentMonth, previous, req.Status),
	})

	if payment.Collected() && previous != payment.Status {
		var member models.Member
		var group models.Group
		if database.DB.First(&member, payment.MemberID).Error == nil &&
			database.DB.First(&group, payment.GroupID).Error == nil {
			go services.GetNotificationService().NotifyPaymentReceived(member, payment, group)
		}
	}

	invalidateSummary(payment.PaymentMonth)
	utils.SuccessResponse(c, http.StatusOK, "Payment status updated", payment)
}
