package service

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/Behyna/sms-services/smsscheduler/internal/config"
	"github.com/Behyna/sms-services/smsscheduler/internal/constants"
	"github.com/Behyna/sms-services/smsscheduler/pkg/smsprovider"
	"go.uber.org/zap"
)

type SenderService interface {
	Send(ctx context.Context, cmd SendMessageCommand) (Receipt, error)
	SendBulk(ctx context.Context, cmd SendBulkCommand) ([]Result, error)
}

type sender struct {
	provider            ProviderService
	messagingServiceSID string
	progress            io.Writer
	logger              *zap.Logger
}

func NewSenderService(provider ProviderService, cfg *config.Config, progress io.Writer, logger *zap.Logger) SenderService {
	if progress == nil {
		progress = io.Discard
	}

	return &sender{
		provider:            provider,
		messagingServiceSID: cfg.MessagingServiceSID,
		progress:            progress,
		logger:              logger,
	}
}

func (s *sender) Send(ctx context.Context, cmd SendMessageCommand) (Receipt, error) {
	if !ValidatePhone(cmd.To) {
		return Receipt{}, invalidPhoneError(cmd.To)
	}

	loc, err := loadLocation(cmd.Timezone)
	if err != nil {
		return Receipt{}, err
	}

	return s.schedule(ctx, cmd.To, cmd.Body, cmd.SendAt, loc)
}

// SendBulk schedules the message for every recipient in order. Invalid numbers
// and provider rejections become failed results; only an unknown timezone
// aborts the batch, before any request is made.
func (s *sender) SendBulk(ctx context.Context, cmd SendBulkCommand) ([]Result, error) {
	loc, err := loadLocation(cmd.Timezone)
	if err != nil {
		s.logger.Error("Bulk send aborted", zap.Error(err), zap.String("timezone", cmd.Timezone))
		return nil, err
	}

	s.logger.Info("Bulk send started",
		zap.Int("recipients", len(cmd.Recipients)),
		zap.String("timezone", loc.String()))

	results := make([]Result, 0, len(cmd.Recipients))
	for _, phone := range cmd.Recipients {
		receipt, err := s.schedule(ctx, phone, cmd.Body, cmd.SendAt, loc)
		if err != nil {
			if !IsRecipientError(err) {
				return nil, err
			}

			results = append(results, Result{Phone: phone, Success: false, Error: err.Error()})
			fmt.Fprintf(s.progress, "✗ Failed for %s: %v\n", phone, err)
			continue
		}

		results = append(results, Result{Phone: phone, Success: true, SID: receipt.SID, Status: receipt.Status})
		fmt.Fprintf(s.progress, "✓ Scheduled for %s\n", phone)
	}

	summary := Summarize(results)
	s.logger.Info("Bulk send finished",
		zap.Int("total", summary.Total),
		zap.Int("scheduled", summary.Scheduled),
		zap.Int("failed", summary.Failed))

	return results, nil
}

func (s *sender) schedule(ctx context.Context, to, body string, sendAt time.Time, loc *time.Location) (Receipt, error) {
	if !ValidatePhone(to) {
		s.logger.Debug("Rejected recipient before sending", zap.String("to", to))
		return Receipt{}, invalidPhoneError(to)
	}

	msg := smsprovider.ScheduledMessage{
		Body:                body,
		MessagingServiceSID: s.messagingServiceSID,
		To:                  to,
		SendAt:              FormatSendAt(inLocation(sendAt, loc)),
		ScheduleType:        smsprovider.ScheduleTypeFixed,
	}

	response, err := s.provider.Schedule(ctx, msg)
	if err != nil {
		return Receipt{}, err
	}

	return Receipt{SID: response.SID, Status: response.Status}, nil
}

func invalidPhoneError(phone string) error {
	return NewServiceError(constants.ErrCodeInvalidPhoneNumber,
		fmt.Errorf("%w: %s. expected E.164 format", ErrInvalidPhoneNumber, phone))
}
