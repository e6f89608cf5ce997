package service_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/Behyna/sms-services/smsscheduler/internal/config"
	"github.com/Behyna/sms-services/smsscheduler/internal/constants"
	"github.com/Behyna/sms-services/smsscheduler/internal/mocks"
	"github.com/Behyna/sms-services/smsscheduler/internal/service"
	"github.com/Behyna/sms-services/smsscheduler/pkg/smsprovider"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var testConfig = &config.Config{
	AccountSID:          "test_sid",
	AuthToken:           "test_token",
	MessagingServiceSID: "test_msg_sid",
}

func newSender(provider smsprovider.Provider, progress io.Writer) service.SenderService {
	logger := zap.NewNop()
	return service.NewSenderService(service.NewProviderService(provider, logger), testConfig, progress, logger)
}

func scheduledTo(to string) interface{} {
	return mock.MatchedBy(func(msg smsprovider.ScheduledMessage) bool {
		return msg.To == to
	})
}

func TestSender_Send(t *testing.T) {
	sendAt := time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)

	t.Run("schedules a valid message", func(t *testing.T) {
		mockProvider := &mocks.SMSProvider{}
		svc := newSender(mockProvider, nil)

		expected := smsprovider.ScheduledMessage{
			Body:                "Test message",
			MessagingServiceSID: "test_msg_sid",
			To:                  "+11234567890",
			SendAt:              "2026-02-01T15:00:00Z",
			ScheduleType:        smsprovider.ScheduleTypeFixed,
		}
		mockProvider.On("Schedule", context.Background(), expected).
			Return(smsprovider.Response{SID: "SM123456", Status: "scheduled"}, nil)

		receipt, err := svc.Send(context.Background(), service.SendMessageCommand{
			To:       "+11234567890",
			Body:     "Test message",
			SendAt:   sendAt,
			Timezone: "America/New_York",
		})

		require.NoError(t, err)
		assert.Equal(t, service.Receipt{SID: "SM123456", Status: "scheduled"}, receipt)
		mockProvider.AssertExpectations(t)
		mockProvider.AssertNumberOfCalls(t, "Schedule", 1)
	})

	t.Run("uses the given timezone", func(t *testing.T) {
		mockProvider := &mocks.SMSProvider{}
		svc := newSender(mockProvider, nil)

		mockProvider.On("Schedule", context.Background(), mock.MatchedBy(func(msg smsprovider.ScheduledMessage) bool {
			return msg.SendAt == "2026-02-01T18:00:00Z"
		})).Return(smsprovider.Response{SID: "SM123456", Status: "scheduled"}, nil)

		receipt, err := svc.Send(context.Background(), service.SendMessageCommand{
			To:       "+11234567890",
			Body:     "Test message",
			SendAt:   sendAt,
			Timezone: "America/Los_Angeles",
		})

		require.NoError(t, err)
		assert.Equal(t, "SM123456", receipt.SID)
		mockProvider.AssertExpectations(t)
	})

	t.Run("defaults to eastern time", func(t *testing.T) {
		mockProvider := &mocks.SMSProvider{}
		svc := newSender(mockProvider, nil)

		mockProvider.On("Schedule", context.Background(), mock.MatchedBy(func(msg smsprovider.ScheduledMessage) bool {
			return msg.SendAt == "2026-02-01T15:00:00Z"
		})).Return(smsprovider.Response{SID: "SM1", Status: "scheduled"}, nil)

		_, err := svc.Send(context.Background(), service.SendMessageCommand{
			To:     "+11234567890",
			Body:   "Test message",
			SendAt: sendAt,
		})

		require.NoError(t, err)
		mockProvider.AssertExpectations(t)
	})

	t.Run("invalid phone number never reaches the provider", func(t *testing.T) {
		mockProvider := &mocks.SMSProvider{}
		svc := newSender(mockProvider, nil)

		receipt, err := svc.Send(context.Background(), service.SendMessageCommand{
			To:     "1234567890",
			Body:   "Test message",
			SendAt: sendAt,
		})

		require.Error(t, err)
		assert.Empty(t, receipt)
		assert.ErrorIs(t, err, service.ErrInvalidPhoneNumber)
		assert.Contains(t, err.Error(), "invalid phone number format")
		assert.Contains(t, err.Error(), "1234567890")

		var serviceErr service.Error
		require.True(t, errors.As(err, &serviceErr))
		assert.Equal(t, constants.ErrCodeInvalidPhoneNumber, serviceErr.Code)
		mockProvider.AssertNotCalled(t, "Schedule", mock.Anything, mock.Anything)
	})

	t.Run("invalid phone number is reported before an unknown timezone", func(t *testing.T) {
		mockProvider := &mocks.SMSProvider{}
		svc := newSender(mockProvider, nil)

		_, err := svc.Send(context.Background(), service.SendMessageCommand{
			To:       "invalid",
			SendAt:   sendAt,
			Timezone: "Not/AZone",
		})

		assert.ErrorIs(t, err, service.ErrInvalidPhoneNumber)
	})

	t.Run("unknown timezone", func(t *testing.T) {
		mockProvider := &mocks.SMSProvider{}
		svc := newSender(mockProvider, nil)

		_, err := svc.Send(context.Background(), service.SendMessageCommand{
			To:       "+11234567890",
			SendAt:   sendAt,
			Timezone: "Not/AZone",
		})

		assert.ErrorIs(t, err, service.ErrInvalidTimezone)
		assert.False(t, service.IsRecipientError(err))
		mockProvider.AssertNotCalled(t, "Schedule", mock.Anything, mock.Anything)
	})

	t.Run("provider rejection", func(t *testing.T) {
		mockProvider := &mocks.SMSProvider{}
		svc := newSender(mockProvider, nil)

		mockProvider.On("Schedule", context.Background(), mock.AnythingOfType("smsprovider.ScheduledMessage")).
			Return(smsprovider.Response{}, &smsprovider.RejectedError{Status: 400, Message: "Invalid phone number"})

		_, err := svc.Send(context.Background(), service.SendMessageCommand{
			To:     "+11234567890",
			Body:   "Test message",
			SendAt: sendAt,
		})

		require.Error(t, err)
		assert.ErrorIs(t, err, service.ErrSendFailed)
		assert.Contains(t, err.Error(), "failed to send SMS")
		assert.Contains(t, err.Error(), "Invalid phone number")

		var rejected *smsprovider.RejectedError
		assert.False(t, errors.As(err, &rejected))
	})
}

func TestSender_SendBulk(t *testing.T) {
	sendAt := time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)
	scheduled := smsprovider.Response{SID: "SM123456", Status: "scheduled"}

	t.Run("all succeed", func(t *testing.T) {
		mockProvider := &mocks.SMSProvider{}
		progress := &bytes.Buffer{}
		svc := newSender(mockProvider, progress)

		mockProvider.On("Schedule", context.Background(), mock.AnythingOfType("smsprovider.ScheduledMessage")).
			Return(scheduled, nil)

		recipients := []string{"+11234567890", "+10987654321", "+11111111111"}
		results, err := svc.SendBulk(context.Background(), service.SendBulkCommand{
			Recipients: recipients,
			Body:       "Bulk test message",
			SendAt:     sendAt,
		})

		require.NoError(t, err)
		require.Len(t, results, 3)
		for i, result := range results {
			assert.True(t, result.Success)
			assert.Equal(t, recipients[i], result.Phone)
			assert.Equal(t, "SM123456", result.SID)
			assert.Equal(t, "scheduled", result.Status)
			assert.Empty(t, result.Error)
		}
		mockProvider.AssertNumberOfCalls(t, "Schedule", 3)
		assert.Equal(t, 3, strings.Count(progress.String(), "✓ Scheduled for"))
	})

	t.Run("invalid number in the middle", func(t *testing.T) {
		mockProvider := &mocks.SMSProvider{}
		progress := &bytes.Buffer{}
		svc := newSender(mockProvider, progress)

		mockProvider.On("Schedule", context.Background(), mock.AnythingOfType("smsprovider.ScheduledMessage")).
			Return(scheduled, nil)

		results, err := svc.SendBulk(context.Background(), service.SendBulkCommand{
			Recipients: []string{"+11234567890", "invalid_number", "+11111111111"},
			Body:       "Bulk test message",
			SendAt:     sendAt,
		})

		require.NoError(t, err)
		require.Len(t, results, 3)
		assert.True(t, results[0].Success)
		assert.Equal(t, "+11234567890", results[0].Phone)
		assert.False(t, results[1].Success)
		assert.Equal(t, "invalid_number", results[1].Phone)
		assert.Contains(t, results[1].Error, "invalid phone number format")
		assert.Contains(t, results[1].Error, "invalid_number")
		assert.True(t, results[2].Success)
		assert.Equal(t, "+11111111111", results[2].Phone)

		mockProvider.AssertNumberOfCalls(t, "Schedule", 2)
		mockProvider.AssertNotCalled(t, "Schedule", context.Background(), scheduledTo("invalid_number"))
		assert.Contains(t, progress.String(), "✗ Failed for invalid_number")
	})

	t.Run("provider rejects one recipient", func(t *testing.T) {
		mockProvider := &mocks.SMSProvider{}
		progress := &bytes.Buffer{}
		svc := newSender(mockProvider, progress)

		mockProvider.On("Schedule", context.Background(), scheduledTo("+11234567890")).Return(scheduled, nil).Once()
		mockProvider.On("Schedule", context.Background(), scheduledTo("+10987654321")).
			Return(smsprovider.Response{}, &smsprovider.RejectedError{Status: 400, Message: "Invalid number"}).Once()
		mockProvider.On("Schedule", context.Background(), scheduledTo("+11111111111")).Return(scheduled, nil).Once()

		results, err := svc.SendBulk(context.Background(), service.SendBulkCommand{
			Recipients: []string{"+11234567890", "+10987654321", "+11111111111"},
			Body:       "Bulk test message",
			SendAt:     sendAt,
		})

		require.NoError(t, err)
		require.Len(t, results, 3)
		assert.True(t, results[0].Success)
		assert.False(t, results[1].Success)
		assert.Equal(t, "+10987654321", results[1].Phone)
		assert.Equal(t, "failed to send SMS: Invalid number", results[1].Error)
		assert.Empty(t, results[1].SID)
		assert.True(t, results[2].Success)

		mockProvider.AssertExpectations(t)
		mockProvider.AssertNumberOfCalls(t, "Schedule", 3)
		assert.Contains(t, progress.String(), "✗ Failed for +10987654321: failed to send SMS: Invalid number")
	})

	t.Run("provider outage fails every recipient without aborting", func(t *testing.T) {
		mockProvider := &mocks.SMSProvider{}
		svc := newSender(mockProvider, nil)

		mockProvider.On("Schedule", context.Background(), mock.AnythingOfType("smsprovider.ScheduledMessage")).
			Return(smsprovider.Response{}, errors.New("dial tcp: i/o timeout"))

		results, err := svc.SendBulk(context.Background(), service.SendBulkCommand{
			Recipients: []string{"+11234567890", "+10987654321"},
			Body:       "Bulk test message",
			SendAt:     sendAt,
		})

		require.NoError(t, err)
		require.Len(t, results, 2)
		for _, result := range results {
			assert.False(t, result.Success)
			assert.Contains(t, result.Error, "i/o timeout")
		}
		assert.Equal(t, service.Summary{Total: 2, Scheduled: 0, Failed: 2}, service.Summarize(results))
	})

	t.Run("every request carries the same schedule", func(t *testing.T) {
		mockProvider := &mocks.SMSProvider{}
		svc := newSender(mockProvider, nil)

		mockProvider.On("Schedule", context.Background(), mock.MatchedBy(func(msg smsprovider.ScheduledMessage) bool {
			return msg.Body == "Bulk test message" &&
				msg.MessagingServiceSID == "test_msg_sid" &&
				msg.SendAt == "2026-02-01T18:00:00Z" &&
				msg.ScheduleType == smsprovider.ScheduleTypeFixed
		})).Return(scheduled, nil)

		results, err := svc.SendBulk(context.Background(), service.SendBulkCommand{
			Recipients: []string{"+11234567890", "+10987654321"},
			Body:       "Bulk test message",
			SendAt:     sendAt,
			Timezone:   "America/Los_Angeles",
		})

		require.NoError(t, err)
		assert.Len(t, results, 2)
		mockProvider.AssertNumberOfCalls(t, "Schedule", 2)
	})

	t.Run("empty recipients", func(t *testing.T) {
		mockProvider := &mocks.SMSProvider{}
		progress := &bytes.Buffer{}
		svc := newSender(mockProvider, progress)

		results, err := svc.SendBulk(context.Background(), service.SendBulkCommand{
			Recipients: []string{},
			Body:       "Bulk test message",
			SendAt:     sendAt,
		})

		require.NoError(t, err)
		assert.NotNil(t, results)
		assert.Empty(t, results)
		assert.Empty(t, progress.String())
		mockProvider.AssertNotCalled(t, "Schedule", mock.Anything, mock.Anything)
	})

	t.Run("unknown timezone aborts before any request", func(t *testing.T) {
		mockProvider := &mocks.SMSProvider{}
		svc := newSender(mockProvider, nil)

		results, err := svc.SendBulk(context.Background(), service.SendBulkCommand{
			Recipients: []string{"+11234567890"},
			Body:       "Bulk test message",
			SendAt:     sendAt,
			Timezone:   "Not/AZone",
		})

		assert.Nil(t, results)
		assert.ErrorIs(t, err, service.ErrInvalidTimezone)
		mockProvider.AssertNotCalled(t, "Schedule", mock.Anything, mock.Anything)
	})
}
