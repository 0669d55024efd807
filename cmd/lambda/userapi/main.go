package main

import (
	"os"

	awslambda "github.com/aws/aws-lambda-go/lambda"
	"github.com/sirupsen/logrus"

	"fnbridge/internal/config"
	"fnbridge/internal/userapi"
	"fnbridge/pkg/adapter"
	"fnbridge/pkg/introspect"
)

func main() {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		logrus.Fatalf("Failed to load configuration: %v", err)
	}
	if err := config.ConfigureLogging(logrus.StandardLogger(), cfg); err != nil {
		logrus.Fatalf("Failed to configure logging: %v", err)
	}

	fn, err := userapi.NewFunction(cfg, logrus.StandardLogger(), os.Stdout)
	if err != nil {
		logrus.Fatalf("Failed to initialize function: %v", err)
	}

	if cfg.Introspect.Enabled() {
		if _, err := introspect.Display(os.Stdout, fn.Info(), cfg.Introspect); err != nil {
			logrus.Fatalf("Failed to print function info: %v", err)
		}
		return
	}

	switch mode := config.GetEnv("LAMBDA_HANDLER", "apigateway"); mode {
	case "apigateway":
		awslambda.Start(adapter.APIGatewayProxyHandler(fn))
	case "generic":
		awslambda.Start(adapter.LambdaHandler(fn))
	case "direct":
		awslambda.Start(adapter.DirectHandler(fn))
	default:
		logrus.Fatalf("Unknown LAMBDA_HANDLER %q", mode)
	}
}
