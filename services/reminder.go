package services

import (
	"log"

	"kasmoni-backend/database"
	"kasmoni-backend/models"
)

// SendMonthlyReminders notifies every member of an active group whose
// contribution for the month has not been collected yet. YYYY-MM strings
// compare lexically, so the active-group window is a plain range check.
func SendMonthlyReminders(month string) int {
	var groups []models.Group
	database.DB.Where("start_month <= ? AND end_month >= ?", month, month).Find(&groups)

	sent := 0
	for _, group := range groups {
		var slots []models.Slot
		database.DB.Where("group_id = ?", group.ID).Preload("Member").Find(&slots)

		for _, slot := range slots {
			var count int64
			database.DB.Model(&models.Payment{}).
				Where("member_id = ? AND group_id = ? AND payment_month = ? AND status IN ?",
					slot.MemberID, group.ID, month,
					[]string{models.PaymentReceived, models.PaymentSettled}).
				Count(&count)
			if count > 0 {
				continue
			}

			GetNotificationService().NotifyPaymentReminder(slot.Member, group, month)
			sent++
		}
	}

	log.Printf("✅ Sent %d payment reminders for %s across %d groups", sent, month, len(groups))
	return sent
}
