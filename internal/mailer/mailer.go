// Package mailer delivers password reset tokens to account holders.
package mailer

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"

	"family-connect-go/internal/config"
	"family-connect-go/pkg/logger"
)

//go:generate mockgen -source=mailer.go -destination=mock_mailer_test.go -package=mailer

type ResetMailer interface {
	SendResetToken(ctx context.Context, email, familyName, token string) error
}

// EmailSender is the subset of the SES client used here.
type EmailSender interface {
	SendEmail(ctx context.Context, params *sesv2.SendEmailInput, optFns ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error)
}

type SESMailer struct {
	client      EmailSender
	fromEmail   string
	fromName    string
	appName     string
	sendTimeout time.Duration
	enabled     bool
	log         logger.Logger
}

// NewSES returns a disabled mailer when no sender address is configured; it only logs.
func NewSES(ctx context.Context, cfg config.MailConfig, log logger.Logger) (*SESMailer, error) {
	if cfg.FromEmail == "" {
		log.Warn("mailer: SES_FROM_EMAIL not configured, reset emails disabled")
		return &SESMailer{appName: cfg.AppName, log: log}, nil
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.AWSRegion))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	log.Info("mailer: SES enabled", "from", cfg.FromEmail, "region", cfg.AWSRegion)
	return NewWithClient(sesv2.NewFromConfig(awsCfg), cfg, log), nil
}

func NewWithClient(client EmailSender, cfg config.MailConfig, log logger.Logger) *SESMailer {
	return &SESMailer{
		client:      client,
		fromEmail:   cfg.FromEmail,
		fromName:    cfg.FromName,
		appName:     cfg.AppName,
		sendTimeout: cfg.SendTimeout,
		enabled:     true,
		log:         log,
	}
}

func (m *SESMailer) Enabled() bool {
	return m.enabled
}

func (m *SESMailer) SendResetToken(ctx context.Context, email, familyName, token string) error {
	if !m.enabled {
		m.log.Info("mailer: skipping reset email (disabled)", "to", email)
		return nil
	}

	if m.sendTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, m.sendTimeout)
		defer cancel()
	}

	subject := fmt.Sprintf("Your %s password reset code", m.appName)
	text := fmt.Sprintf(`Hi %s,

We received a request to reset the password on your %s account.

Your reset code is: %s

The code expires in 15 minutes. If you did not ask for a reset you can ignore this email.
`, familyName, m.appName, token)

	from := m.fromEmail
	if m.fromName != "" {
		from = fmt.Sprintf("%s <%s>", m.fromName, m.fromEmail)
	}

	_, err := m.client.SendEmail(ctx, &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(from),
		Destination: &types.Destination{
			ToAddresses: []string{email},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{
					Data:    aws.String(subject),
					Charset: aws.String("UTF-8"),
				},
				Body: &types.Body{
					Text: &types.Content{
						Data:    aws.String(text),
						Charset: aws.String("UTF-8"),
					},
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("send reset email: %w", err)
	}

	m.log.Info("mailer: reset email sent", "to", email)
	return nil
}

type DeliveryRecorder interface {
	ResetEmail(outcome string)
}

type instrumented struct {
	next     ResetMailer
	recorder DeliveryRecorder
}

// WithRecorder counts deliveries by outcome.
func WithRecorder(next ResetMailer, recorder DeliveryRecorder) ResetMailer {
	if recorder == nil {
		return next
	}
	return &instrumented{next: next, recorder: recorder}
}

func (m *instrumented) SendResetToken(ctx context.Context, email, familyName, token string) error {
	if err := m.next.SendResetToken(ctx, email, familyName, token); err != nil {
		m.recorder.ResetEmail("failed")
		return err
	}
	m.recorder.ResetEmail("sent")
	return nil
}
