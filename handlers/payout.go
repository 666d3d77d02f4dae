package handlers

import (
	"fmt"
	"net/http"

	"kasmoni-backend/database"
	"kasmoni-backend/engine"
	"kasmoni-backend/models"
	"kasmoni-backend/services"
	"kasmoni-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PayoutDetailResponse is the slot detail view: the persisted record, or an
// unsaved draft with default toggles when none exists yet.
type PayoutDetailResponse struct {
	Record     models.PayoutRecord `json:"record"`
	Saved      bool                `json:"saved"`
	SettledSum decimal.Decimal     `json:"settled_sum"`
	MemberName string              `json:"member_name"`
	GroupName  string              `json:"group_name"`
}

// GET /api/payouts?month=YYYY-MM
func ListPayouts(c *gin.Context) {
	month := c.DefaultQuery("month", utils.CurrentMonth())
	if !utils.ValidMonth(month) {
		utils.BadRequest(c, "Month must be YYYY-MM")
		return
	}

	descriptors, err := slotResolver.SlotsForMonth(c.Request.Context(), month)
	if err != nil {
		engineError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", descriptors)
}

// GET /api/payouts/slots/:slotId
func GetPayoutDetail(c *gin.Context) {
	slotID, err := uuid.Parse(c.Param("slotId"))
	if err != nil {
		utils.BadRequest(c, "Invalid slot ID")
		return
	}

	slot, group, member, ok := loadSlotContext(c, slotID)
	if !ok {
		return
	}

	settled, err := paymentStore.SettledSum(c.Request.Context(), slot.MemberID, slot.PayoutMonth)
	if err != nil {
		utils.ServiceUnavailable(c, "Store unavailable, please retry")
		return
	}

	rec, err := reconciler.Load(c.Request.Context(), slotID)
	if err != nil {
		engineError(c, err)
		return
	}

	resp := PayoutDetailResponse{
		SettledSum: settled,
		MemberName: member.FullName(),
		GroupName:  group.Name,
	}

	if rec != nil {
		resp.Record = *rec
		resp.Saved = true
	} else {
		// Absent record: present defaults, computed live, durable only once
		// staff explicitly save.
		draft := models.PayoutRecord{
			SlotID:                  slot.ID,
			GroupID:                 slot.GroupID,
			MemberID:                slot.MemberID,
			MonthlyAmount:           group.MonthlyAmount,
			Duration:                group.Duration,
			SettledDeductionEnabled: true,
			AdditionalCost:          decimal.Zero,
			PayoutMonth:             slot.PayoutMonth,
			PaymentMethod:           models.MethodBankTransfer,
		}
		draft.CalculatedTotalAmount = engine.ComputeTotal(
			engine.BaseParams{MonthlyAmount: group.MonthlyAmount, Duration: group.Duration, SettledSum: settled},
			engine.DefaultToggles(),
		)
		resp.Record = draft
	}

	utils.SuccessResponse(c, http.StatusOK, "", resp)
}

// PUT /api/payouts/slots/:slotId
func SavePayout(c *gin.Context) {
	staffID := utils.GetCurrentStaffID(c)
	slotID, err := uuid.Parse(c.Param("slotId"))
	if err != nil {
		utils.BadRequest(c, "Invalid slot ID")
		return
	}

	slot, group, member, ok := loadSlotContext(c, slotID)
	if !ok {
		return
	}

	var req models.SavePayoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	draft := &models.PayoutRecord{
		SlotID:                  slot.ID,
		GroupID:                 slot.GroupID,
		MemberID:                slot.MemberID,
		MonthlyAmount:           group.MonthlyAmount,
		Duration:                group.Duration,
		LastSlotWaived:          req.LastSlotWaived,
		AdminFeeWaived:          req.AdminFeeWaived,
		SettledDeductionEnabled: req.SettledDeductionEnabled,
		AdditionalCost:          req.AdditionalCost,
		PayoutMonth:             slot.PayoutMonth,
		PaymentMethod:           req.PaymentMethod,
		Notes:                   req.Notes,
	}
	if draft.PaymentMethod == "" {
		draft.PaymentMethod = models.MethodBankTransfer
	}
	if req.SenderBankID != "" {
		bankID, err := uuid.Parse(req.SenderBankID)
		if err != nil {
			utils.BadRequest(c, "Invalid sender bank ID")
			return
		}
		draft.SenderBankID = &bankID
	}
	if req.ReceiverBankID != "" {
		bankID, err := uuid.Parse(req.ReceiverBankID)
		if err != nil {
			utils.BadRequest(c, "Invalid receiver bank ID")
			return
		}
		draft.ReceiverBankID = &bankID
	}

	saved, err := reconciler.Save(c.Request.Context(), draft)
	if err != nil {
		engineError(c, err)
		return
	}

	database.DB.Create(&models.Activity{
		GroupID:     slot.GroupID,
		StaffID:     staffID,
		Type:        "payout_saved",
		ReferenceID: saved.ID,
		Description: fmt.Sprintf("Payout for %s (%s, %s) saved at %s", member.FullName(), group.Name, slot.PayoutMonth, saved.CalculatedTotalAmount),
	})

	invalidateSummary(slot.PayoutMonth)
	utils.SuccessResponse(c, http.StatusOK, "Payout saved", saved)
}

// PATCH /api/payouts/slots/:slotId/toggles
//
// Called on every toggle flip while a detail view is open. The persist is
// debounced through the recompute outbox so rapid changes collapse into the
// newest state; the response carries a synchronously computed preview.
func UpdatePayoutToggles(c *gin.Context) {
	slotID, err := uuid.Parse(c.Param("slotId"))
	if err != nil {
		utils.BadRequest(c, "Invalid slot ID")
		return
	}

	var req models.UpdateTogglesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}
	if req.AdditionalCost.IsNegative() {
		utils.BadRequest(c, "Additional cost must not be negative")
		return
	}

	rec, err := reconciler.Load(c.Request.Context(), slotID)
	if err != nil {
		engineError(c, err)
		return
	}
	if rec == nil {
		utils.Conflict(c, "Payout record must be saved first")
		return
	}

	toggles := engine.Toggles{
		LastSlotWaived:          req.LastSlotWaived,
		AdminFeeWaived:          req.AdminFeeWaived,
		SettledDeductionEnabled: req.SettledDeductionEnabled,
		AdditionalCost:          req.AdditionalCost,
	}

	settled := decimal.Zero
	if toggles.SettledDeductionEnabled {
		settled, err = paymentStore.SettledSum(c.Request.Context(), rec.MemberID, rec.PayoutMonth)
		if err != nil {
			utils.ServiceUnavailable(c, "Store unavailable, please retry")
			return
		}
	}
	preview := engine.ComputeTotal(
		engine.BaseParams{MonthlyAmount: rec.MonthlyAmount, Duration: rec.Duration, SettledSum: settled},
		toggles,
	)

	recomputeOutbox.Submit(slotID, toggles)

	utils.SuccessResponse(c, http.StatusAccepted, "Recompute scheduled", gin.H{
		"slot_id":       slotID,
		"preview_total": preview,
	})
}

// PUT /api/payouts/slots/:slotId/paid
func SetPayoutPaid(c *gin.Context) {
	staffID := utils.GetCurrentStaffID(c)
	slotID, err := uuid.Parse(c.Param("slotId"))
	if err != nil {
		utils.BadRequest(c, "Invalid slot ID")
		return
	}

	var req models.SetPaidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	rec, err := reconciler.SetPaid(c.Request.Context(), slotID, *req.Paid)
	if err != nil {
		engineError(c, err)
		return
	}

	activityType := "payout_unpaid"
	if rec.Paid {
		activityType = "payout_paid"
	}
	database.DB.Create(&models.Activity{
		GroupID:     rec.GroupID,
		StaffID:     staffID,
		Type:        activityType,
		ReferenceID: rec.ID,
		Description: fmt.Sprintf("Payout %s marked %s (%s)", rec.PayoutMonth, activityType, rec.CalculatedTotalAmount),
	})

	if rec.Paid {
		var member models.Member
		var group models.Group
		if database.DB.First(&member, rec.MemberID).Error == nil &&
			database.DB.First(&group, rec.GroupID).Error == nil {
			go services.GetNotificationService().NotifyPayoutPaid(member, group, rec.CalculatedTotalAmount)
		}
	}

	invalidateSummary(rec.PayoutMonth)
	utils.SuccessResponse(c, http.StatusOK, "Payout status updated", rec)
}

// loadSlotContext fetches a slot with its group and member, writing the
// error response on failure.
func loadSlotContext(c *gin.Context, slotID uuid.UUID) (models.Slot, models.Group, models.Member, bool) {
	var slot models.Slot
	if err := database.DB.First(&slot, slotID).Error; err != nil {
		utils.NotFound(c, "Slot not found")
		return slot, models.Group{}, models.Member{}, false
	}
	var group models.Group
	if err := database.DB.First(&group, slot.GroupID).Error; err != nil {
		utils.InternalError(c, "Group not found for slot")
		return slot, group, models.Member{}, false
	}
	var member models.Member
	if err := database.DB.First(&member, slot.MemberID).Error; err != nil {
		utils.InternalError(c, "Member not found for slot")
		return slot, group, member, false
	}
	return slot, group, member, true
}
