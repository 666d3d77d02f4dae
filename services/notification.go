package services

import (
	"context"
	"fmt"
	"log"

	"kasmoni-backend/config"
	"kasmoni-backend/models"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/shopspring/decimal"
	"google.golang.org/api/option"
)

type NotificationService struct {
	messaging *messaging.Client
}

var notifService *NotificationService

func GetNotificationService() *NotificationService {
	if notifService == nil {
		notifService = &NotificationService{}
	}
	return notifService
}

// InitNotifications sets up the FCM client. Push notifications are optional:
// a missing credentials file just disables them.
func InitNotifications(ctx context.Context) {
	ns := GetNotificationService()

	app, err := firebase.NewApp(ctx, nil, option.WithCredentialsFile(config.AppConfig.FirebaseCredPath))
	if err != nil {
		log.Println("⚠️  Firebase not available, running without push notifications:", err)
		return
	}
	client, err := app.Messaging(ctx)
	if err != nil {
		log.Println("⚠️  FCM client unavailable, running without push notifications:", err)
		return
	}
	ns.messaging = client
	log.Println("✅ Firebase messaging initialised")
}

// ============================================================
// PUSH NOTIFICATIONS via Firebase Admin SDK
// ============================================================

func (ns *NotificationService) sendPush(fcmToken string, title string, body string, data map[string]string) {
	if ns.messaging == nil || fcmToken == "" {
		return
	}

	_, err := ns.messaging.Send(context.Background(), &messaging.Message{
		Token: fcmToken,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: data,
	})
	if err != nil {
		log.Printf("❌ FCM send error: %v", err)
		return
	}
	log.Printf("✅ Push notification sent: %s", title)
}

// ============================================================
// EMAIL NOTIFICATIONS via SendGrid
// ============================================================

func (ns *NotificationService) sendEmail(toEmail string, toName string, subject string, htmlBody string) {
	if config.AppConfig.SendGridAPIKey == "" {
		log.Printf("⚠️  SendGrid API key not set, skipping email to %s", toEmail)
		return
	}

	from := sgmail.NewEmail(config.AppConfig.AppName, config.AppConfig.SendGridFrom)
	to := sgmail.NewEmail(toName, toEmail)
	message := sgmail.NewSingleEmail(from, subject, to, "", htmlBody)

	client := sendgrid.NewSendClient(config.AppConfig.SendGridAPIKey)
	resp, err := client.Send(message)
	if err != nil {
		log.Printf("❌ Email send error: %v", err)
		return
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		log.Printf("✅ Email sent to %s", toEmail)
	} else {
		log.Printf("⚠️  SendGrid returned status: %d", resp.StatusCode)
	}
}

// ============================================================
// NOTIFICATION EVENTS
// ============================================================

// NotifyPaymentReceived confirms a collected contribution to the member.
func (ns *NotificationService) NotifyPaymentReceived(member models.Member, payment models.Payment, group models.Group) {
	title := "Contribution received"
	body := fmt.Sprintf("Your payment of SRD %s for %s (%s) was received", payment.Amount.StringFixed(2), group.Name, payment.PaymentMonth)

	ns.sendPush(member.FCMToken, title, body, map[string]string{
		"type":       "payment_received",
		"payment_id": payment.ID.String(),
		"group_id":   payment.GroupID.String(),
	})

	htmlBody := buildPaymentEmailHTML(member.FullName(), group.Name, payment.PaymentMonth, payment.Amount)
	ns.sendEmail(member.Email, member.FullName(), fmt.Sprintf("Payment received for %s", group.Name), htmlBody)
}

// NotifyPayoutPaid tells a member their payout has been transferred.
func (ns *NotificationService) NotifyPayoutPaid(member models.Member, group models.Group, amount decimal.Decimal) {
	title := "Your payout is on its way"
	body := fmt.Sprintf("SRD %s from %s has been paid out to you", amount.StringFixed(2), group.Name)

	ns.sendPush(member.FCMToken, title, body, map[string]string{
		"type":     "payout_paid",
		"group_id": group.ID.String(),
	})

	htmlBody := buildPayoutEmailHTML(member.FullName(), group.Name, amount)
	ns.sendEmail(member.Email, member.FullName(), fmt.Sprintf("Your %s payout", group.Name), htmlBody)
}

// NotifyPaymentReminder nudges a member whose contribution for the month is
// still open.
func (ns *NotificationService) NotifyPaymentReminder(member models.Member, group models.Group, month string) {
	title := fmt.Sprintf("Contribution due for %s", group.Name)
	body := fmt.Sprintf("Your %s contribution of SRD %s for %s is still open", month, group.MonthlyAmount.StringFixed(2), group.Name)

	ns.sendPush(member.FCMToken, title, body, map[string]string{
		"type":     "payment_reminder",
		"group_id": group.ID.String(),
	})

	htmlBody := buildReminderEmailHTML(member.FullName(), group.Name, month, group.MonthlyAmount)
	ns.sendEmail(member.Email, member.FullName(), title, htmlBody)
}

// ============================================================
// EMAIL TEMPLATES
// ============================================================

func buildPaymentEmailHTML(memberName, groupName, month string, amount decimal.Decimal) string {
	return fmt.Sprintf(`
<!DOCTYPE html>
<html>
<body style="font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px; background-color: #f5f5f5;">
	<div style="background: white; border-radius: 12px; padding: 32px; box-shadow: 0 2px 8px rgba(0,0,0,0.1);">
		<h2 style="color: #1DB954; margin-top: 0;">✅ Payment Received</h2>
		<p>Hi <strong>%s</strong>,</p>
		<p>We received your contribution of <strong>SRD %s</strong> for <strong>%s</strong> (%s).</p>
		<p>Thank you for keeping your kasmoni on schedule!</p>
		<p style="color: #999; font-size: 12px; margin-top: 24px;">— %s</p>
	</div>
</body>
</html>`, memberName, amount.StringFixed(2), groupName, month, config.AppConfig.AppName)
}

func buildPayoutEmailHTML(memberName, groupName string, amount decimal.Decimal) string {
	return fmt.Sprintf(`
<!DOCTYPE html>
<html>
<body style="font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px; background-color: #f5f5f5;">
	<div style="background: white; border-radius: 12px; padding: 32px; box-shadow: 0 2px 8px rgba(0,0,0,0.1);">
		<h2 style="color: #1DB954; margin-top: 0;">🎉 It's your month!</h2>
		<p>Hi <strong>%s</strong>,</p>
		<p>Your payout of <strong>SRD %s</strong> from <strong>%s</strong> has been paid out.</p>
		<p>Check your account; it may take a business day to arrive.</p>
		<p style="color: #999; font-size: 12px; margin-top: 24px;">— %s</p>
	</div>
</body>
</html>`, memberName, amount.StringFixed(2), groupName, config.AppConfig.AppName)
}

func buildReminderEmailHTML(memberName, groupName, month string, amount decimal.Decimal) string {
	return fmt.Sprintf(`
<!DOCTYPE html>
<html>
<body style="font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px; background-color: #f5f5f5;">
	<div style="background: white; border-radius: 12px; padding: 32px; box-shadow: 0 2px 8px rgba(0,0,0,0.1);">
		<h2 style="color: #e5a53e; margin-top: 0;">⏰ Contribution Reminder</h2>
		<p>Hi <strong>%s</strong>,</p>
		<p>Your contribution of <strong>SRD %s</strong> for <strong>%s</strong> (%s) is still open.</p>
		<p>Please make your payment so the group's payout can go ahead on time.</p>
		<p style="color: #999; font-size: 12px; margin-top: 24px;">— %s</p>
	</div>
</body>
</html>`, memberName, amount.StringFixed(2), groupName, month, config.AppConfig.AppName)
}
