package cli

import (
	"errors"
	"fmt"
	"io"

	"jobly-relay/config"
	"jobly-relay/internal/domain"
	"jobly-relay/internal/usecase"
	"jobly-relay/pkg/apperror"
	"jobly-relay/pkg/logger"
	"jobly-relay/pkg/telegram"
	"jobly-relay/pkg/validation"

	"github.com/spf13/cobra"
)

const (
	ExitSuccess    = 0
	ExitError      = 1
	ExitValidation = 2
)

// NewRootCmd creates the relayctl root command.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "relayctl",
		Short: "Operator tools for the Jobly form relay",
		Long: `relayctl runs the form relay from a shell, using the same environment
(.env, .env.local) as the API server. Useful to check Telegram credentials
without going through the landing page.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(newSendCmd(), newPreviewCmd())
	return cmd
}

type submissionFlags struct {
	sub     domain.Submission
	verbose bool
}

func (f *submissionFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.sub.Name, "name", "", "Applicant name (required)")
	cmd.Flags().StringVar(&f.sub.TG, "tg", "", "Applicant Telegram handle (required)")
	cmd.Flags().StringVar(&f.sub.Email, "email", "", "Applicant email")
	cmd.Flags().StringVar(&f.sub.Job, "job", "", "Vacancy")
	cmd.Flags().StringVar(&f.sub.City, "city", "", "City")
	cmd.Flags().StringVar(&f.sub.Message, "message", "", "Free text message")
	cmd.Flags().BoolVar(&f.verbose, "verbose", false, "Log at debug level to stderr")
}

func newSendCmd() *cobra.Command {
	var f submissionFlags
	cmd := &cobra.Command{
		Use:   "send",
		Short: "Relay one submission to the configured Telegram chat",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
			return runSend(cmd, cfg, &f)
		},
	}
	f.bind(cmd)
	return cmd
}

func runSend(cmd *cobra.Command, cfg *config.Config, f *submissionFlags) error {
	level := "warn"
	if f.verbose {
		level = "debug"
	}
	logger.InitWithWriter(cmd.ErrOrStderr(), level)

	client := telegram.NewClient(cfg.TelegramAPIURL, cfg.TelegramBotToken, cfg.TelegramTimeout)
	relay := usecase.NewRelayUsecase(cfg, client, validation.New())

	if err := relay.Relay(cmd.Context(), &f.sub); err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), "ok")
	return nil
}

func newPreviewCmd() *cobra.Command {
	var f submissionFlags
	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Print the Telegram message a submission would produce",
		RunE: func(cmd *cobra.Command, args []string) error {
			return writePreview(cmd.OutOrStdout(), &f.sub)
		},
	}
	f.bind(cmd)
	return cmd
}

func writePreview(w io.Writer, sub *domain.Submission) error {
	if err := validation.New().Struct(sub); err != nil {
		return apperror.Validation(domain.MsgRequiredFields, err)
	}
	_, err := io.WriteString(w, usecase.FormatSubmission(sub))
	return err
}

// ExitCode maps a command error to the process exit status.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var appErr *apperror.AppError
	if errors.As(err, &appErr) && appErr.Kind == apperror.KindValidation {
		return ExitValidation
	}
	return ExitError
}

// Describe renders an error for the terminal, including the cause that the
// HTTP API keeps to itself.
func Describe(err error) string {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) && appErr.Err != nil && appErr.Kind == apperror.KindUnexpected {
		return fmt.Sprintf("%s: %v", appErr.Message, appErr.Err)
	}
	return err.Error()
}
