package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/lambda"
	ltypes "github.com/aws/aws-sdk-go-v2/service/lambda/types"
	"github.com/mbland/eav/ops"
)

// EavFunc invokes the deployed eav Lambda function, marshaling request to
// JSON and unmarshaling the function's result into response.
type EavFunc interface {
	Invoke(ctx context.Context, request, response any) error
}

type EavFactoryFunc func(stackName string) (EavFunc, error)

type EavLambda struct {
	Client LambdaClient
	Arn    string
}

// NewEavLambda looks up the function ARN from the outputs of the named
// CloudFormation stack.
func NewEavLambda(stackName string) (EavFunc, error) {
	cfg, err := loadAwsConfig()
	if err != nil {
		return nil, err
	}
	return newEavLambda(
		context.Background(),
		NewCloudFormationClient(cfg),
		NewLambdaClient(cfg),
		stackName,
	)
}

func newEavLambda(
	ctx context.Context,
	cfc CloudFormationClient,
	client LambdaClient,
	stackName string,
) (*EavLambda, error) {
	arn, err := GetLambdaArn(ctx, cfc, stackName)
	if err != nil {
		return nil, err
	}
	return &EavLambda{client, arn}, nil
}

// https://pkg.go.dev/github.com/aws/aws-sdk-go-v2/service/lambda#Client.Invoke
// https://docs.aws.amazon.com/lambda/latest/dg/invocation-sync.html
func (l *EavLambda) Invoke(
	ctx context.Context, request, response any,
) (err error) {
	var payload []byte
	if payload, err = json.Marshal(request); err != nil {
		return fmt.Errorf("error creating Lambda payload: %w", err)
	}

	input := &lambda.InvokeInput{
		FunctionName: aws.String(l.Arn),
		LogType:      ltypes.LogTypeTail,
		Payload:      payload,
	}
	var output *lambda.InvokeOutput

	if output, err = l.Client.Invoke(ctx, input); err != nil {
		err = fmt.Errorf("error invoking Lambda function: %w", ops.AwsError(err))
	} else if output.StatusCode != http.StatusOK {
		const errFmt = "received non-200 response: %s"
		err = fmt.Errorf(errFmt, http.StatusText(int(output.StatusCode)))
	} else if output.FunctionError != nil {
		const errFmt = "error executing Lambda function: %s: %s"
		funcErr := aws.ToString(output.FunctionError)
		err = fmt.Errorf(errFmt, funcErr, string(output.Payload))
	} else if err = json.Unmarshal(output.Payload, response); err != nil {
		const errFmt = "failed to unmarshal Lambda response payload: %w: %s"
		err = fmt.Errorf(errFmt, err, string(output.Payload))
	}
	return
}
