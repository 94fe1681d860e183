package service

import (
	"context"
	"fmt"
	"log"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"
	"github.com/google/uuid"

	"weddinghub/internal/config"
)

// SendResult reports the outcome of one email send attempt. Send never
// returns an error to the caller; delivery failures are data, recorded
// in the email log, so a campaign keeps going past a bad address.
type SendResult struct {
	Success   bool
	MessageID string
	Error     string
}

// EmailService sends wedding emails via Amazon SES
type EmailService struct {
	client    *sesv2.Client
	fromEmail string
	fromName  string
	enabled   bool
	debug     bool

	templates *emailTemplates
}

// NewEmailService creates a new email service. With no from address
// configured, sends are skipped but still reported as successful, so
// the rest of the application behaves normally in development.
func NewEmailService(cfg *config.Config) (*EmailService, error) {
	templates := newEmailTemplates(cfg)

	if cfg.SESFromEmail == "" {
		log.Println("Email service disabled: SES_FROM_EMAIL not configured")
		return &EmailService{
			enabled:   false,
			debug:     cfg.EmailDebug,
			templates: templates,
		}, nil
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(context.TODO(),
		awsconfig.WithRegion(cfg.AWSRegion),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	log.Printf("Email service enabled: from=%s, region=%s", cfg.SESFromEmail, cfg.AWSRegion)

	return &EmailService{
		client:    sesv2.NewFromConfig(awsCfg),
		fromEmail: cfg.SESFromEmail,
		fromName:  cfg.SESFromName,
		enabled:   true,
		debug:     cfg.EmailDebug,
		templates: templates,
	}, nil
}

// IsEnabled returns whether outbound email is configured
func (s *EmailService) IsEnabled() bool {
	return s.enabled
}

// SendSaveTheDate sends the save-the-date announcement with the guest's
// invitation code
func (s *EmailService) SendSaveTheDate(ctx context.Context, toEmail, firstName, invitationCode string) SendResult {
	subject, html, text := s.templates.saveTheDate(firstName, invitationCode)
	return s.send(ctx, toEmail, subject, html, text)
}

// EmailPreview is a rendered email shown in the back office before a
// campaign goes out
type EmailPreview struct {
	Subject string `json:"subject"`
	HTML    string `json:"html"`
	Text    string `json:"text"`
}

// PreviewSaveTheDate renders the save-the-date email with sample values
// without sending anything
func (s *EmailService) PreviewSaveTheDate(firstName, invitationCode string) EmailPreview {
	subject, html, text := s.templates.saveTheDate(firstName, invitationCode)
	return EmailPreview{Subject: subject, HTML: html, Text: text}
}

// SendSaveTheDateConfirmation confirms a save-the-date signup
func (s *EmailService) SendSaveTheDateConfirmation(ctx context.Context, toEmail, firstName string) SendResult {
	subject, html, text := s.templates.saveTheDateConfirmation(firstName)
	return s.send(ctx, toEmail, subject, html, text)
}

// SendRSVPConfirmation confirms a submitted RSVP, with copy that depends
// on whether the guest is attending
func (s *EmailService) SendRSVPConfirmation(ctx context.Context, toEmail, firstName string, attending bool, plusOneCount int) SendResult {
	subject, html, text := s.templates.rsvpConfirmation(firstName, attending, plusOneCount)
	return s.send(ctx, toEmail, subject, html, text)
}

// SendSecurityAlert notifies the operator that an identifier was locked out
func (s *EmailService) SendSecurityAlert(ctx context.Context, toEmail, lockedIdentifier, clientIP string) SendResult {
	subject, html, text := s.templates.securityAlert(lockedIdentifier, clientIP)
	return s.send(ctx, toEmail, subject, html, text)
}

// SendTest sends a test email for verifying SES configuration
func (s *EmailService) SendTest(ctx context.Context, toEmail string) SendResult {
	subject, html, text := s.templates.test()
	return s.send(ctx, toEmail, subject, html, text)
}

func (s *EmailService) send(ctx context.Context, toEmail, subject, htmlBody, textBody string) SendResult {
	if !s.enabled {
		log.Printf("Skipping email send (service disabled): to=%s, subject=%s", toEmail, subject)
		if s.debug {
			log.Printf("[DEBUG] Text body:\n%s", textBody)
		}
		return SendResult{Success: true, MessageID: "debug-" + uuid.New().String()}
	}

	fromAddress := s.fromEmail
	if s.fromName != "" {
		fromAddress = fmt.Sprintf("%s <%s>", s.fromName, s.fromEmail)
	}

	input := &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(fromAddress),
		Destination: &types.Destination{
			ToAddresses: []string{toEmail},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{
					Data:    aws.String(subject),
					Charset: aws.String("UTF-8"),
				},
				Body: &types.Body{
					Html: &types.Content{
						Data:    aws.String(htmlBody),
						Charset: aws.String("UTF-8"),
					},
					Text: &types.Content{
						Data:    aws.String(textBody),
						Charset: aws.String("UTF-8"),
					},
				},
			},
		},
	}

	result, err := s.client.SendEmail(ctx, input)
	if err != nil {
		log.Printf("Email send failed: to=%s, subject=%s, error=%v", toEmail, subject, err)
		return SendResult{Success: false, Error: err.Error()}
	}

	messageID := ""
	if result.MessageId != nil {
		messageID = *result.MessageId
	}

	log.Printf("Email sent successfully: to=%s, subject=%s", toEmail, subject)
	return SendResult{Success: true, MessageID: messageID}
}
