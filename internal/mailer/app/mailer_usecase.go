package app

import (
	"context"
	"encoding/json"
	"fmt"
	"net/smtp"
	"strings"

	"event_management_service/internal/mailer/domain"
	"event_management_service/pkg/config"
	"event_management_service/pkg/logger"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// MailSender delivers a single mail task
type MailSender interface {
	Send(task domain.MailTask) error
}

// MessageSource subset of kafka.Reader used by the worker loop
type MessageSource interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
}

// MailerUseCase consume mail tasks and deliver them over SMTP
type MailerUseCase struct {
	source MessageSource
	sender MailSender
}

// NewMailerUseCase create a MailerUseCase
func NewMailerUseCase(source MessageSource, sender MailSender) *MailerUseCase {
	return &MailerUseCase{
		source: source,
		sender: sender,
	}
}

// Run fetch-deliver-commit loop, exits when ctx is cancelled.
// A failed delivery stops the loop before anything past it is
// committed. Group commits are offset watermarks, committing a later
// message would mark the lost one consumed, so the worker restarts
// from the last committed offset and the broker redelivers the task.
func (m *MailerUseCase) Run(ctx context.Context) error {
	for {
		msg, err := m.source.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return err
		}

		// probe messages from the writer connect check
		if string(msg.Value) == "ping" {
			m.source.CommitMessages(ctx, msg)
			continue
		}

		var task domain.MailTask
		if err := json.Unmarshal(msg.Value, &task); err != nil {
			logger.Log.Error("mail task unmarshal failed", zap.Error(err))
			m.source.CommitMessages(ctx, msg)
			continue
		}

		if err := m.sender.Send(task); err != nil {
			logger.Log.Error("mail delivery failed",
				zap.String("subject", task.Subject),
				zap.Error(err),
			)
			return err
		}

		logger.Log.Info("mail sent", zap.String("subject", task.Subject))
		if err := m.source.CommitMessages(ctx, msg); err != nil {
			logger.Log.Error("mail task commit failed", zap.Error(err))
		}
	}
}

// SMTPSender MailSender over net/smtp
type SMTPSender struct {
	cfg config.SMTPConfig
}

// NewSMTPSender create an SMTPSender
func NewSMTPSender(cfg config.SMTPConfig) *SMTPSender {
	return &SMTPSender{cfg: cfg}
}

// Send deliver one mail task
func (s *SMTPSender) Send(task domain.MailTask) error {
	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)

	msg := strings.Join([]string{
		"From: " + s.cfg.From,
		"To: " + strings.Join(task.To, ", "),
		"Subject: " + task.Subject,
		"",
		task.Body,
	}, "\r\n")

	var auth smtp.Auth
	if s.cfg.User != "" {
		auth = smtp.PlainAuth("", s.cfg.User, s.cfg.Password, s.cfg.Host)
	}

	return smtp.SendMail(addr, auth, s.cfg.From, task.To, []byte(msg))
}
