package email

import (
	"bytes"
	"fmt"
	"html/template"
	"path/filepath"
	"time"

	"github.com/resendlabs/resend-go"
	"go.uber.org/zap"
)

// OrderEmailData carries the fields the order notification templates render,
// including the derived dashboard and demo URLs.
type OrderEmailData struct {
	RestaurantName    string
	DishName          string
	InternalReference string
	City              string
	Country           string
	DashboardURL      string
	DemoURL           string
	Year              int
}

type EmailService struct {
	client       *resend.Client
	from         string
	fromName     string
	templatesDir string
	logger       *zap.Logger
}

func NewEmailService(apiKey, fromAddress, fromName string, logger *zap.Logger) *EmailService {
	return &EmailService{
		client:       resend.NewClient(apiKey),
		from:         fromAddress,
		fromName:     fromName,
		templatesDir: "pkg/email/templates",
		logger:       logger.Named("email"),
	}
}

func (s *EmailService) SendWelcomeEmail(to, fullName string) error {
	html, err := s.parseTemplate("welcome.html", map[string]interface{}{
		"FullName": fullName,
		"Year":     time.Now().Year(),
	})
	if err != nil {
		return err
	}

	return s.send(to, "Welcome to Menublend!", html)
}

func (s *EmailService) SendPasswordResetEmail(to, resetLink string) error {
	html, err := s.parseTemplate("reset_password.html", map[string]interface{}{
		"ResetLink": resetLink,
		"Year":      time.Now().Year(),
	})
	if err != nil {
		return err
	}

	return s.send(to, "Reset Your Password - Menublend", html)
}

func (s *EmailService) SendNewOrderEmail(to string, data OrderEmailData) error {
	data.Year = time.Now().Year()
	html, err := s.parseTemplate("new_order.html", data)
	if err != nil {
		return err
	}

	subject := fmt.Sprintf("New Menublend demo dish order – %s", data.RestaurantName)
	return s.send(to, subject, html)
}

func (s *EmailService) SendOrderReadyEmail(to string, data OrderEmailData) error {
	data.Year = time.Now().Year()
	html, err := s.parseTemplate("order_ready.html", data)
	if err != nil {
		return err
	}

	return s.send(to, "Your Menublend demo dish is ready for review", html)
}

func (s *EmailService) SendOrderDeliveredEmail(to string, data OrderEmailData) error {
	data.Year = time.Now().Year()
	html, err := s.parseTemplate("order_delivered.html", data)
	if err != nil {
		return err
	}

	return s.send(to, "Your Menublend 3D/AR demo is live!", html)
}

func (s *EmailService) send(to, subject, html string) error {
	params := &resend.SendEmailRequest{
		From:    s.fromName + " <" + s.from + ">",
		To:      []string{to},
		Subject: subject,
		Html:    html,
	}

	resp, err := s.client.Emails.Send(params)
	if err != nil {
		s.logger.Warn("failed to send email",
			zap.String("to", to),
			zap.String("subject", subject),
			zap.Error(err),
		)
		return err
	}

	s.logger.Info("email sent",
		zap.String("to", to),
		zap.String("subject", subject),
		zap.String("id", resp.Id),
	)
	return nil
}

func (s *EmailService) parseTemplate(templateName string, data interface{}) (string, error) {
	templatePath := filepath.Join(s.templatesDir, templateName)

	tmpl, err := template.ParseFiles(templatePath)
	if err != nil {
		return "", err
	}

	var body bytes.Buffer
	if err := tmpl.Execute(&body, data); err != nil {
		return "", err
	}

	return body.String(), nil
}
