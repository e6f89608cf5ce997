package mocks

import (
	"github.com/stretchr/testify/mock"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
)

type MessageCreator struct {
	mock.Mock
}

func (_m *MessageCreator) CreateMessage(params *twilioApi.CreateMessageParams) (*twilioApi.ApiV2010Message, error) {
	ret := _m.Called(params)
	return ret.Get(0).(*twilioApi.ApiV2010Message), ret.Error(1)
}
