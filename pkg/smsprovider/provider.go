package smsprovider

import "context"

const ScheduleTypeFixed = "fixed"

type Provider interface {
	Schedule(ctx context.Context, msg ScheduledMessage) (res Response, err error)
}

type Config struct {
	AccountSID string `mapstructure:"account_sid"`
	AuthToken  string `mapstructure:"auth_token"`
}

// ScheduledMessage is one "create message" request with a fixed send instant.
// SendAt is an ISO-8601 UTC timestamp with second precision and a Z suffix.
type ScheduledMessage struct {
	Body                string
	MessagingServiceSID string
	To                  string
	SendAt              string
	ScheduleType        string
}

type Response struct {
	SID    string `json:"sid"`
	Status string `json:"status"`
}
