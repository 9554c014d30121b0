package ops

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/smithy-go"
)

// Inspired by:
// https://aws.github.io/aws-sdk-go-v2/docs/handling-errors/#api-error-responses
func AwsError(err error) error {
	var apiErr smithy.APIError

	if errors.As(err, &apiErr) && apiErr.ErrorFault() == smithy.FaultServer {
		return fmt.Errorf("%w: %w", ErrExternal, err)
	}
	return err
}

// LoadDefaultAwsConfig reads the shared AWS configuration and credentials.
// It reads local files and the environment only.
func LoadDefaultAwsConfig(
	ctx context.Context, optFns ...func(*config.LoadOptions) error,
) (cfg aws.Config, err error) {
	if cfg, err = config.LoadDefaultConfig(ctx, optFns...); err != nil {
		err = fmt.Errorf("failed to load AWS config: %w", err)
	}
	return
}
