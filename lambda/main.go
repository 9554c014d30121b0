package main

import (
	"os"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/mbland/eav/handler"
	"go.uber.org/zap"
)

func buildHandler(logger *zap.Logger) (*handler.Handler, error) {
	opts, err := handler.GetOptions(os.Getenv)
	if err != nil {
		return nil, err
	}

	logger.Info("validator configuration",
		zap.Stringer("rfc", opts.Validator.RFC),
		zap.Bool("utf8", opts.Validator.UTF8),
		zap.Bool("tldCheck", opts.Validator.TLDCheck),
		zap.Stringer("allowTld", opts.Validator.AllowTLD),
	)
	return handler.NewHandler(opts, logger)
}

func main() {
	// The Lambda runtime already timestamps every line written to CloudWatch.
	logCfg := zap.NewProductionConfig()
	logCfg.EncoderConfig.TimeKey = ""
	logger := zap.Must(logCfg.Build())
	defer logger.Sync()

	h, err := buildHandler(logger)
	if err != nil {
		logger.Fatal("failed to initialize process", zap.Error(err))
	}
	defer h.Close()

	lambda.Start(h.HandleEvent)
}
