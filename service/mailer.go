package application

import (
	"fmt"
	"os"
	"strconv"

	"github.com/google/uuid"
	"gopkg.in/gomail.v2"

	"padel_service/domain"
)

var (
	smtpServer     = os.Getenv("SMTP_SERVER")
	smtpServerPort = smtpPort()
	smtpEmail      = os.Getenv("SMTP_AUTH_MAIL")
	smtpPassword   = os.Getenv("SMTP_AUTH_PASSWORD")
)

func smtpPort() int {
	port, err := strconv.Atoi(os.Getenv("SMTP_PORT"))
	if err != nil {
		return 587
	}
	return port
}

// Notifier is the outbound mail boundary. Booking confirmations are
// best-effort: a failed send never undoes a committed booking.
type Notifier interface {
	SendVerificationMail(token uuid.UUID, email string) error
	SendBookingConfirmation(email string, booking *domain.Booking, facilityName string) error
}

type GomailNotifier struct{}

func NewGomailNotifier() *GomailNotifier {
	return &GomailNotifier{}
}

func (n *GomailNotifier) SendVerificationMail(token uuid.UUID, email string) error {
	message := gomail.NewMessage()
	message.SetHeader("From", smtpEmail)
	message.SetHeader("To", email)
	message.SetHeader("Subject", "Verify your padel account")

	bodyString := fmt.Sprintf("Your validation token for your padel account is:\n%s", token)
	message.SetBody("text", bodyString)

	client := gomail.NewDialer(smtpServer, smtpServerPort, smtpEmail, smtpPassword)
	return client.DialAndSend(message)
}

func (n *GomailNotifier) SendBookingConfirmation(email string, booking *domain.Booking, facilityName string) error {
	message := gomail.NewMessage()
	message.SetHeader("From", smtpEmail)
	message.SetHeader("To", email)
	message.SetHeader("Subject", "Booking confirmed")

	bodyString := fmt.Sprintf(
		"Your court is booked.\n\nVenue: %s\nDate: %s\nTime: %02d:00 - %s\nTotal: $%.2f\n",
		facilityName,
		booking.Date.Format("02 Jan 2006"),
		booking.StartTime,
		formatEndTime(booking.StartTime, booking.Duration),
		domain.DisplayPrice(booking.TotalPrice),
	)
	message.SetBody("text", bodyString)

	client := gomail.NewDialer(smtpServer, smtpServerPort, smtpEmail, smtpPassword)
	return client.DialAndSend(message)
}

func formatEndTime(startTime int, durationMinutes int) string {
	totalMinutes := startTime*60 + durationMinutes
	return fmt.Sprintf("%02d:%02d", totalMinutes/60, totalMinutes%60)
}
