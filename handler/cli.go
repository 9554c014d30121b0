package handler

import (
	"context"
	"errors"
	"fmt"

	"github.com/mbland/eav/address"
	"github.com/mbland/eav/events"
	"go.uber.org/zap"
)

type cliHandler struct {
	Validator *address.Validator
	log       *zap.Logger
}

func (h *cliHandler) HandleEvent(
	ctx context.Context, e *events.CommandLineEvent,
) (res any, err error) {
	switch e.EavCommand {
	case events.CommandLineValidateEvent:
		if e.Validate == nil {
			err = errors.New("validate command has no payload")
		} else if res, err = h.HandleValidateEvent(ctx, e.Validate); err != nil {
			res = nil
		}
	default:
		err = fmt.Errorf("unknown eav command: %s", e.EavCommand)
	}
	return
}

// HandleValidateEvent validates each address in the batch, in order. It
// stops early only if ctx is canceled.
func (h *cliHandler) HandleValidateEvent(
	ctx context.Context, e *events.ValidateEvent,
) (*events.ValidateResponse, error) {
	res := &events.ValidateResponse{BatchId: e.BatchId}

	for _, email := range e.Addresses {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("validate batch %s stopped: %w", e.BatchId, err)
		}

		if err := h.Validator.ValidateString(email); err != nil {
			res.Failures = append(res.Failures, events.Failure{
				Address: email,
				Kind:    address.KindOf(err).String(),
				Message: err.Error(),
			})
		} else {
			res.NumValid++
		}
	}

	h.log.Info("validate",
		zap.Stringer("batchId", e.BatchId),
		zap.Int("numValid", res.NumValid),
		zap.Int("numFailed", len(res.Failures)),
	)
	return res, nil
}
