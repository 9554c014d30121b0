package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	awsevents "github.com/aws/aws-lambda-go/events"
	"github.com/mbland/eav/address"
	"go.uber.org/zap"
)

const ValidatePrefix = "/validate/"

// ValidationResult is the JSON body of a successful /validate response.
// Kind and Error are empty when Valid is true.
type ValidationResult struct {
	Address string `json:"address"`
	Valid   bool   `json:"valid"`
	Kind    string `json:"kind,omitempty"`
	Error   string `json:"error,omitempty"`
}

func newValidationResult(email string, err error) *ValidationResult {
	result := &ValidationResult{Address: email, Valid: err == nil}
	if err != nil {
		result.Kind = address.KindOf(err).String()
		result.Error = err.Error()
	}
	return result
}

type errorWithStatus struct {
	HttpStatus int
	Message    string
}

func (err *errorWithStatus) Error() string {
	return err.Message
}

type validatorFactory func(address.Config) (*address.Validator, error)

type apiHandler struct {
	Defaults     address.Config
	Validator    *address.Validator
	NewValidator validatorFactory
	log          *zap.Logger
}

func (h *apiHandler) HandleEvent(
	ctx context.Context, req *awsevents.APIGatewayV2HTTPRequest,
) (res *awsevents.APIGatewayV2HTTPResponse) {
	result, err := h.handleApiRequest(ctx, req)

	if err != nil {
		res = errorResponse(err)
	} else {
		res = jsonResponse(http.StatusOK, result)
	}
	logApiResponse(h.log, req, res, result, err)
	return
}

func (h *apiHandler) handleApiRequest(
	ctx context.Context, req *awsevents.APIGatewayV2HTTPRequest,
) (*ValidationResult, error) {
	if method := req.RequestContext.HTTP.Method; method != http.MethodGet {
		msg := "method not allowed: " + method
		return nil, &errorWithStatus{http.StatusMethodNotAllowed, msg}
	}

	email, err := parseAddressParam(req)
	if err != nil {
		return nil, err
	}

	cfg, assigned, invalid := parseConfig(
		h.Defaults, querySettings, func(name string) string {
			return req.QueryStringParameters[name]
		},
	)
	if len(invalid) != 0 {
		msg := "invalid query parameters: " + strings.Join(invalid, "; ")
		return nil, &errorWithStatus{http.StatusBadRequest, msg}
	} else if err := ctx.Err(); err != nil {
		return nil, err
	}

	v := h.Validator
	if assigned != 0 {
		if v, err = h.NewValidator(cfg); err != nil {
			msg := "failed to configure validator: " + err.Error()
			return nil, &errorWithStatus{http.StatusBadRequest, msg}
		}
		defer v.Close()
	}
	return newValidationResult(email, v.ValidateString(email)), nil
}

func parseAddressParam(req *awsevents.APIGatewayV2HTTPRequest) (string, error) {
	if !strings.HasPrefix(req.RawPath, ValidatePrefix) {
		msg := "unknown endpoint: " + req.RawPath
		return "", &errorWithStatus{http.StatusNotFound, msg}
	}

	if email, ok := req.PathParameters["address"]; ok {
		return email, nil
	}

	email, err := url.PathUnescape(strings.TrimPrefix(req.RawPath, ValidatePrefix))
	if err != nil {
		msg := fmt.Sprintf("invalid address parameter: %s", err)
		return "", &errorWithStatus{http.StatusBadRequest, msg}
	}
	return email, nil
}

func jsonResponse(status int, body any) *awsevents.APIGatewayV2HTTPResponse {
	res := &awsevents.APIGatewayV2HTTPResponse{
		StatusCode: status,
		Headers:    map[string]string{"content-type": "application/json"},
	}

	if payload, err := json.Marshal(body); err != nil {
		res.StatusCode = http.StatusInternalServerError
		res.Headers["content-type"] = "text/plain; charset=utf-8"
		res.Body = fmt.Sprintf("failed to encode response: %s\n", err)
	} else {
		res.Body = string(payload)
	}
	return res
}

func errorResponse(err error) *awsevents.APIGatewayV2HTTPResponse {
	status := http.StatusInternalServerError
	if apiErr, ok := err.(*errorWithStatus); ok {
		status = apiErr.HttpStatus
	}
	return jsonResponse(status, map[string]string{"error": err.Error()})
}

func logApiResponse(
	log *zap.Logger,
	req *awsevents.APIGatewayV2HTTPRequest,
	res *awsevents.APIGatewayV2HTTPResponse,
	result *ValidationResult,
	err error,
) {
	desc := req.RequestContext.HTTP
	kind := ""
	if result != nil {
		kind = result.Kind
	}

	log.Info("api request",
		zap.String("requestId", req.RequestContext.RequestID),
		zap.String("sourceIp", desc.SourceIP),
		zap.String("method", desc.Method),
		zap.String("path", desc.Path),
		zap.Int("status", res.StatusCode),
		zap.String("kind", kind),
		zap.Error(err),
	)
}
