// Package handler dispatches Lambda invocations to the address validator.
package handler

import (
	"context"

	"github.com/mbland/eav/address"
	"go.uber.org/zap"
)

type Handler struct {
	api *apiHandler
	cli *cliHandler
	log *zap.Logger
}

// NewHandler creates the Validator shared by every invocation from
// opts.Validator. The caller must call Close when finished.
func NewHandler(opts *Options, logger *zap.Logger) (*Handler, error) {
	return newHandler(opts, logger, address.Open)
}

func newHandler(
	opts *Options, logger *zap.Logger, newValidator validatorFactory,
) (*Handler, error) {
	v, err := newValidator(opts.Validator)
	if err != nil {
		return nil, err
	}

	return &Handler{
		&apiHandler{opts.Validator, v, newValidator, logger},
		&cliHandler{v, logger},
		logger,
	}, nil
}

func (h *Handler) HandleEvent(ctx context.Context, event *Event) (any, error) {
	switch event.Type {
	case ApiRequest:
		return h.api.HandleEvent(ctx, event.ApiRequest), nil
	case CommandLineEvent:
		return h.cli.HandleEvent(ctx, event.CommandLineEvent)
	case UnexpectedEvent:
		h.log.Warn("ignoring unexpected event")
	}
	return nil, nil
}

func (h *Handler) Close() error {
	return h.api.Validator.Close()
}
