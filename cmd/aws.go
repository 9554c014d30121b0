package cmd

import (
	"context"
	"fmt"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudformation"
	"github.com/aws/aws-sdk-go-v2/service/lambda"
	"github.com/mbland/eav/ops"
)

// FunctionArnKey is the CloudFormation stack output holding the ARN of the
// eav Lambda function.
const FunctionArnKey = "FunctionArn"

// The AWS configuration is only needed by commands that talk to a deployed
// stack, so it isn't loaded until one of them runs.
var loadAwsConfig = sync.OnceValues(func() (aws.Config, error) {
	return ops.LoadDefaultAwsConfig(context.Background())
})

type LambdaClient interface {
	Invoke(
		context.Context,
		*lambda.InvokeInput,
		...func(*lambda.Options),
	) (*lambda.InvokeOutput, error)
}

func NewLambdaClient(cfg aws.Config) LambdaClient {
	return lambda.NewFromConfig(cfg)
}

type CloudFormationClient interface {
	DescribeStacks(
		context.Context,
		*cloudformation.DescribeStacksInput,
		...func(*cloudformation.Options),
	) (*cloudformation.DescribeStacksOutput, error)
}

func NewCloudFormationClient(cfg aws.Config) CloudFormationClient {
	return cloudformation.NewFromConfig(cfg)
}

func GetLambdaArn(
	ctx context.Context, cfc CloudFormationClient, stackName string,
) (string, error) {
	input := &cloudformation.DescribeStacksInput{
		StackName: aws.String(stackName),
	}
	output, err := cfc.DescribeStacks(ctx, input)

	if err != nil {
		const errFmt = "failed to get Lambda ARN for %s: %w"
		return "", fmt.Errorf(errFmt, stackName, ops.AwsError(err))
	} else if len(output.Stacks) == 0 {
		return "", fmt.Errorf("stack not found: %s", stackName)
	}

	for _, out := range output.Stacks[0].Outputs {
		if aws.ToString(out.OutputKey) == FunctionArnKey {
			return aws.ToString(out.OutputValue), nil
		}
	}
	const errFmt = `stack "%s" doesn't contain output key "%s"`
	return "", fmt.Errorf(errFmt, stackName, FunctionArnKey)
}
