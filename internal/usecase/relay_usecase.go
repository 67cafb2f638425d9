package usecase

import (
	"context"
	"errors"
	"fmt"

	"jobly-relay/config"
	"jobly-relay/internal/domain"
	"jobly-relay/pkg/apperror"
	"jobly-relay/pkg/logger"
	"jobly-relay/pkg/telegram"
	"jobly-relay/pkg/validation"

	"github.com/go-playground/validator/v10"
)

// TelegramSender is the one outbound call the relay makes.
// *telegram.Client satisfies it.
type TelegramSender interface {
	SendMessage(ctx context.Context, msg telegram.SendMessageRequest) (*telegram.APIResponse, error)
}

type relayUsecase struct {
	cfg      *config.Config
	sender   TelegramSender
	validate *validator.Validate
}

// NewRelayUsecase creates the form relay. validate must have the custom tags
// from pkg/validation registered.
func NewRelayUsecase(cfg *config.Config, sender TelegramSender, validate *validator.Validate) domain.RelayUsecase {
	return &relayUsecase{
		cfg:      cfg,
		sender:   sender,
		validate: validate,
	}
}

// Relay validates the submission, checks credentials, then sends exactly one
// message. Nothing is retried.
func (uc *relayUsecase) Relay(ctx context.Context, sub *domain.Submission) error {
	log := logger.Log.With("request_id", requestID(ctx))

	if sub == nil {
		sub = &domain.Submission{}
	}

	// Caller mistakes are reported before operator misconfiguration
	if err := uc.validate.Struct(sub); err != nil {
		log.Warn("submission rejected", "errors", validation.FormatValidationErrors(err))
		return apperror.Validation(domain.MsgRequiredFields, err)
	}

	if !uc.cfg.TelegramConfigured() {
		log.Error("telegram credentials are not configured")
		return apperror.Configuration(domain.MsgNotConfigured)
	}

	msg := telegram.SendMessageRequest{
		ChatID:                uc.cfg.TelegramChatID,
		Text:                  FormatSubmission(sub),
		ParseMode:             telegram.ParseModeHTML,
		DisableWebPagePreview: true,
	}

	// A browser hanging up must not abort a send that already started
	resp, err := uc.sender.SendMessage(context.WithoutCancel(ctx), msg)
	if err != nil {
		log.Error("telegram request failed", "error", err)
		return apperror.Internal(fmt.Errorf("send telegram message: %w", err))
	}
	if resp == nil {
		log.Error("telegram returned no response")
		return apperror.Internal(errors.New("send telegram message: empty response"))
	}

	if !resp.OK {
		description := resp.Description
		if description == "" {
			description = domain.MsgTelegramError
		}
		log.Warn("telegram rejected message", "error_code", resp.ErrorCode, "description", resp.Description)
		return apperror.Upstream(description, nil)
	}

	log.Info("submission relayed")
	return nil
}

func requestID(ctx context.Context) string {
	id, _ := ctx.Value(domain.KeyRequestID).(string)
	return id
}
