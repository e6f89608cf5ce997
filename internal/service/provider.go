package service

import (
	"context"
	"fmt"

	"github.com/Behyna/sms-services/smsscheduler/internal/constants"
	"github.com/Behyna/sms-services/smsscheduler/pkg/smsprovider"
	"go.uber.org/zap"
)

type ProviderService interface {
	Schedule(ctx context.Context, msg smsprovider.ScheduledMessage) (smsprovider.Response, error)
}

type Provider struct {
	provider smsprovider.Provider
	logger   *zap.Logger
}

func NewProviderService(provider smsprovider.Provider, logger *zap.Logger) ProviderService {
	return &Provider{provider: provider, logger: logger}
}

// Schedule makes exactly one provider call. Every provider failure comes back
// as a SEND_FAILED service error carrying the provider's message text only.
func (p *Provider) Schedule(ctx context.Context, msg smsprovider.ScheduledMessage) (smsprovider.Response, error) {
	p.logger.Debug("Scheduling SMS",
		zap.String("to", msg.To),
		zap.String("sendAt", msg.SendAt),
		zap.String("scheduleType", msg.ScheduleType))

	response, err := p.provider.Schedule(ctx, msg)
	if err == nil {
		p.logger.Info("SMS scheduled successfully",
			zap.String("sid", response.SID),
			zap.String("status", response.Status),
			zap.String("to", msg.To))
		return response, nil
	}

	p.logger.Warn("SMS schedule request failed",
		zap.Error(err),
		zap.String("code", smsprovider.ErrorCode(err)),
		zap.String("to", msg.To))

	return smsprovider.Response{}, NewServiceError(constants.ErrCodeSendFailed,
		fmt.Errorf("%w: %s", ErrSendFailed, smsprovider.ErrorMessage(err)))
}
