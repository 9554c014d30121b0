package testutils

import (
	"context"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/smithy-go"
	"gotest.tools/assert"
)

// AwsConfig returns a configuration with hard coded credentials, so client
// construction never depends on the environment running the tests.
//
// Inspired by:
// - https://github.com/aws/aws-sdk-go-v2/blob/main/config/example_test.go
func AwsConfig(t *testing.T) aws.Config {
	t.Helper()

	cfg, err := config.LoadDefaultConfig(
		context.Background(),
		// From: https://pkg.go.dev/github.com/aws/aws-sdk-go-v2/config
		config.WithCredentialsProvider(credentials.StaticCredentialsProvider{
			Value: aws.Credentials{
				AccessKeyID:     "AKID",
				SecretAccessKey: "SECRET",
				SessionToken:    "SESSION",
				Source:          "example hard coded credentials",
			},
		}),
		config.WithRegion("local"),
	)
	assert.NilError(t, err, "error loading local AWS configuration")
	return cfg
}

func AwsServerError(msg string) error {
	return &smithy.GenericAPIError{Message: msg, Fault: smithy.FaultServer}
}

func AssertAwsStringEqual(t *testing.T, expected string, actual *string) {
	t.Helper()
	assert.Equal(t, expected, aws.ToString(actual))
}
