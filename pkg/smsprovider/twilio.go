package smsprovider

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/twilio/twilio-go"
	"github.com/twilio/twilio-go/client"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
)

var _ Provider = (*TwilioProvider)(nil)

// MessageCreator is the part of the Twilio v2010 API the provider needs.
type MessageCreator interface {
	CreateMessage(params *twilioApi.CreateMessageParams) (*twilioApi.ApiV2010Message, error)
}

type TwilioProvider struct {
	api MessageCreator
}

func NewTwilioProvider(cfg Config) (Provider, error) {
	if cfg.AccountSID == "" || cfg.AuthToken == "" {
		return nil, ErrMissingCredentials
	}

	restClient := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: cfg.AccountSID,
		Password: cfg.AuthToken,
	})

	return &TwilioProvider{api: restClient.Api}, nil
}

func NewTwilioProviderWithAPI(api MessageCreator) Provider {
	return &TwilioProvider{api: api}
}

// Schedule submits msg to Twilio. The generated v2010 client takes no context,
// so ctx is not propagated to the HTTP request.
func (t *TwilioProvider) Schedule(ctx context.Context, msg ScheduledMessage) (Response, error) {
	sendAt, err := time.Parse(time.RFC3339, msg.SendAt)
	if err != nil {
		return Response{}, fmt.Errorf("%w: %q", ErrInvalidSendAt, msg.SendAt)
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetBody(msg.Body)
	params.SetMessagingServiceSid(msg.MessagingServiceSID)
	params.SetTo(msg.To)
	params.SetSendAt(sendAt.UTC())
	params.SetScheduleType(msg.ScheduleType)

	resp, err := t.api.CreateMessage(params)
	if err != nil {
		var restErr *client.TwilioRestError
		if errors.As(err, &restErr) {
			return Response{}, &RejectedError{
				Status:   restErr.Status,
				Code:     restErr.Code,
				Message:  restErr.Message,
				MoreInfo: restErr.MoreInfo,
			}
		}

		return Response{}, fmt.Errorf("failed to make request: %w", err)
	}

	var res Response
	if resp == nil {
		return res, nil
	}

	if resp.Sid != nil {
		res.SID = *resp.Sid
	}
	if resp.Status != nil {
		res.Status = *resp.Status
	}

	return res, nil
}
