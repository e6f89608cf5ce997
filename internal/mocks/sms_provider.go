package mocks

import (
	"context"

	"github.com/Behyna/sms-services/smsscheduler/pkg/smsprovider"
	"github.com/stretchr/testify/mock"
)

type SMSProvider struct {
	mock.Mock
}

func (p *SMSProvider) Schedule(ctx context.Context, msg smsprovider.ScheduledMessage) (smsprovider.Response, error) {
	args := p.Called(ctx, msg)
	return args.Get(0).(smsprovider.Response), args.Error(1)
}
