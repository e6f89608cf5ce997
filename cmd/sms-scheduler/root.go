package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"time"

	"github.com/Behyna/sms-services/smsscheduler/internal/config"
	"github.com/Behyna/sms-services/smsscheduler/internal/constants"
	"github.com/Behyna/sms-services/smsscheduler/internal/recipients"
	"github.com/Behyna/sms-services/smsscheduler/internal/service"
	"github.com/Behyna/sms-services/smsscheduler/pkg/smsprovider"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const (
	sendAtLayout   = "2006-01-02T15:04:05"
	defaultSendAt  = "2026-01-30T10:00:00"
	defaultMessage = "Hello! This is a scheduled message. Text STOP to unsubscribe"
)

type ProviderFactory func(cfg smsprovider.Config) (smsprovider.Provider, error)

type options struct {
	configPath string
	message    string
	sendAt     string
	timezone   string
	logLevel   string
}

func newRootCmd(newProvider ProviderFactory) *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:           "sms-scheduler <phone_numbers_file>",
		Short:         "Schedule an SMS broadcast through Twilio",
		Long:          "Reads one E.164 phone number per line and schedules the same message for each of them at a fixed local time.",
		Args:          cobra.ExactArgs(1),
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args[0], opts, newProvider)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.configPath, "config", config.DefaultPath(), "path to the Twilio credentials file")
	flags.StringVar(&opts.message, "message", defaultMessage, "message body")
	flags.StringVar(&opts.sendAt, "send-at", defaultSendAt, "local send time ("+sendAtLayout+")")
	flags.StringVar(&opts.timezone, "timezone", service.DefaultTimezone, "IANA timezone of --send-at")
	flags.StringVar(&opts.logLevel, "log-level", "warn", "log level written to stderr")

	return cmd
}

func execute(cmd *cobra.Command) int {
	err := cmd.ExecuteContext(context.Background())
	if err == nil {
		return constants.ExitOK
	}

	var serviceErr service.Error
	if errors.As(err, &serviceErr) {
		fmt.Fprintln(cmd.ErrOrStderr(), serviceErr.Error())
		return constants.GetExitCode(serviceErr.Code)
	}

	fmt.Fprintln(cmd.ErrOrStderr(), err)
	return constants.ExitError
}

func run(cmd *cobra.Command, numbersPath string, opts *options, newProvider ProviderFactory) error {
	sendAt, err := time.ParseInLocation(sendAtLayout, opts.sendAt, time.UTC)
	if err != nil {
		return fmt.Errorf("invalid --send-at %q, expected %s: %w", opts.sendAt, sendAtLayout, err)
	}

	numbers, err := loadRecipients(numbersPath)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Loaded %d unique phone numbers.\n", len(numbers))

	bulk := service.SendBulkCommand{
		Recipients: numbers,
		Body:       opts.message,
		SendAt:     sendAt,
		Timezone:   opts.timezone,
	}

	app := fx.New(
		fx.NopLogger,
		fx.Supply(bulk),
		fx.Provide(
			func() (*config.Config, error) { return loadConfig(opts.configPath) },
			func() (*zap.Logger, error) { return newLogger(opts.logLevel) },
			func() io.Writer { return out },
			func(cfg *config.Config) (smsprovider.Provider, error) { return buildProvider(cfg, newProvider) },
			service.NewProviderService,
			service.NewSenderService,
		),
		fx.Invoke(func(sender service.SenderService, logger *zap.Logger, bulk service.SendBulkCommand) error {
			defer func() { _ = logger.Sync() }()

			return broadcast(cmd.Context(), cmd.InOrStdin(), out, sender, bulk)
		}),
	)

	return app.Err()
}

func broadcast(ctx context.Context, in io.Reader, out io.Writer, sender service.SenderService, cmd service.SendBulkCommand) error {
	if err := confirm(in, out); err != nil {
		return err
	}

	fmt.Fprintf(out, "Scheduling message to be sent at %s %s local time.\n",
		cmd.SendAt.Format("2006-01-02 15:04:05"), timezoneName(cmd.Timezone))
	fmt.Fprintf(out, "Sending to %d recipients...\n\n", len(cmd.Recipients))

	results, err := sender.SendBulk(ctx, cmd)
	if err != nil {
		return err
	}

	summary := service.Summarize(results)
	fmt.Fprintf(out, "\nComplete: %d/%d messages scheduled\n", summary.Scheduled, len(cmd.Recipients))

	return nil
}

func confirm(in io.Reader, out io.Writer) error {
	fmt.Fprint(out, "Press Enter to continue..., or Ctrl+C to abort.")

	if _, err := bufio.NewReader(in).ReadString('\n'); err != nil {
		fmt.Fprintln(out)
		return service.NewServiceError(constants.ErrCodeAborted, fmt.Errorf("%s: %w", constants.ErrMsgAborted, err))
	}

	return nil
}

func loadRecipients(path string) ([]string, error) {
	numbers, err := recipients.Load(path)
	if err == nil {
		return numbers, nil
	}

	if errors.Is(err, fs.ErrNotExist) {
		return nil, service.NewServiceError(constants.ErrCodeRecipientsNotFound,
			fmt.Errorf("%s: %s", constants.ErrMsgRecipientsNotFound, path))
	}

	return nil, service.NewServiceError(constants.ErrCodeRecipientsRead,
		fmt.Errorf("%s %s: %w", constants.ErrMsgRecipientsRead, path, err))
}

func loadConfig(path string) (*config.Config, error) {
	cfg, err := config.Load(path)
	if err == nil {
		return cfg, nil
	}

	if errors.Is(err, config.ErrConfigNotFound) {
		return nil, service.NewServiceError(constants.ErrCodeConfigNotFound, err)
	}

	return nil, service.NewServiceError(constants.ErrCodeConfigParse, err)
}

func buildProvider(cfg *config.Config, newProvider ProviderFactory) (smsprovider.Provider, error) {
	provider, err := newProvider(cfg.Provider())
	if err != nil {
		return nil, service.NewServiceError(constants.ErrCodeProviderUnavailable,
			fmt.Errorf("%s: %w", constants.ErrMsgProviderUnavailable, err))
	}

	return provider, nil
}

func newLogger(level string) (*zap.Logger, error) {
	atomicLevel, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid --log-level %q: %w", level, err)
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = atomicLevel

	logger, err := cfg.Build()
	if err != nil {
		return nil, err
	}

	return logger.With(zap.String("batchID", uuid.NewString())), nil
}

func timezoneName(timezone string) string {
	if timezone == "" {
		return service.DefaultTimezone
	}

	return timezone
}
