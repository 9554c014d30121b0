//go:build small_tests || all_tests

package cmd

import (
	"context"
	"encoding/json"

	"github.com/aws/aws-sdk-go-v2/service/cloudformation"
	cftypes "github.com/aws/aws-sdk-go-v2/service/cloudformation/types"
	"github.com/aws/aws-sdk-go-v2/service/lambda"
)

type TestLambdaClient struct {
	InvokeInput  *lambda.InvokeInput
	InvokeOutput *lambda.InvokeOutput
	InvokeError  error
}

func NewTestLambdaClient() *TestLambdaClient {
	return &TestLambdaClient{
		InvokeOutput: &lambda.InvokeOutput{StatusCode: 200, Payload: []byte("{}")},
	}
}

func (tlc *TestLambdaClient) Invoke(
	_ context.Context, input *lambda.InvokeInput, _ ...func(*lambda.Options),
) (*lambda.InvokeOutput, error) {
	tlc.InvokeInput = input
	return tlc.InvokeOutput, tlc.InvokeError
}

type TestCloudFormationClient struct {
	DescribeStacksInput  *cloudformation.DescribeStacksInput
	DescribeStacksOutput *cloudformation.DescribeStacksOutput
	DescribeStacksError  error
}

func NewTestCloudFormationClient() *TestCloudFormationClient {
	return &TestCloudFormationClient{
		DescribeStacksOutput: &cloudformation.DescribeStacksOutput{
			Stacks: []cftypes.Stack{TestStack},
		},
	}
}

func (cfc *TestCloudFormationClient) DescribeStacks(
	_ context.Context,
	input *cloudformation.DescribeStacksInput,
	_ ...func(*cloudformation.Options),
) (*cloudformation.DescribeStacksOutput, error) {
	cfc.DescribeStacksInput = input
	return cfc.DescribeStacksOutput, cfc.DescribeStacksError
}

type TestEavFunc struct {
	StackName       string
	InvokeReq       any
	InvokeResJson   []byte
	CreateFuncError error
	InvokeError     error
}

func NewTestEavFunc() *TestEavFunc {
	return &TestEavFunc{InvokeResJson: []byte("{}")}
}

func (l *TestEavFunc) GetFactoryFunc() EavFactoryFunc {
	return func(stackName string) (EavFunc, error) {
		l.StackName = stackName
		if l.CreateFuncError != nil {
			return nil, l.CreateFuncError
		}
		return l, nil
	}
}

func (l *TestEavFunc) Invoke(_ context.Context, req, res any) error {
	l.InvokeReq = req
	if l.InvokeError != nil {
		return l.InvokeError
	}
	return json.Unmarshal(l.InvokeResJson, res)
}
