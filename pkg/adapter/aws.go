package adapter

import (
	"context"
	"encoding/json"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambdacontext"

	"fnbridge/pkg/serverless"
)

// AWSName is the platform name of AWS Lambda
const AWSName = "aws"

var awsShape = httpShape{
	methods: []string{"httpMethod", "requestContext.http.method"},
	targets: []string{"path", "rawPath"},
	headers: "headers",
	query:   "queryStringParameters",
	body:    "body",
	base64: func(tree any) bool {
		v, _ := serverless.Lookup(tree, "isBase64Encoded")
		return v == true
	},
}

// AWS describes AWS Lambda with API Gateway (REST or HTTP API) events. Replies use
// {statusCode, headers, body, isBase64Encoded}.
func AWS() Platform {
	return Platform{
		Name:      AWSName,
		Decode:    awsShape.decode,
		Encode:    statusCodeReply,
		RequestID: awsRequestID,
		Enrich:    awsEnrich,
	}
}

// AWSDirect describes direct Lambda invocation. The payload is kept as the raw
// event and the request has no HTTP method or URI.
func AWSDirect() Platform {
	p := AWS()
	p.Decode = rawOnly
	return p
}

func awsRequestID(ctx context.Context, req serverless.Request, native any) string {
	if lc, ok := lambdacontext.FromContext(ctx); ok && lc.AwsRequestID != "" {
		return lc.AwsRequestID
	}
	if id, ok := serverless.LookupString(native, "awsRequestId"); ok {
		return id
	}
	v, _ := req.EventValue("requestContext.requestId")
	id, _ := v.(string)
	return id
}

func awsEnrich(ctx context.Context, fc serverless.Context, native any) serverless.Context {
	if version, ok := serverless.LookupString(native, "functionVersion"); ok {
		fc = fc.WithFunctionVersion(version)
	} else if lambdacontext.FunctionVersion != "" {
		fc = fc.WithFunctionVersion(lambdacontext.FunctionVersion)
	}

	if mb, ok := serverless.Decode[uint32](native, "memoryLimitInMB"); ok {
		fc = fc.WithMemoryLimit(mb)
	} else if lambdacontext.MemoryLimitInMB > 0 {
		fc = fc.WithMemoryLimit(uint32(lambdacontext.MemoryLimitInMB))
	}

	if native == nil {
		if lc, ok := lambdacontext.FromContext(ctx); ok {
			fc = fc.WithPlatformData(map[string]any{
				"awsRequestId":       lc.AwsRequestID,
				"invokedFunctionArn": lc.InvokedFunctionArn,
			})
		}
	}
	return fc
}

// LambdaHandler returns a handler for lambda.Start that accepts any JSON event.
// API Gateway events are decoded as HTTP requests; anything else reaches the
// function as a raw event.
func LambdaHandler(f *Function) func(ctx context.Context, event json.RawMessage) (map[string]any, error) {
	entry := f.EntryPoint(AWS())
	return func(ctx context.Context, event json.RawMessage) (map[string]any, error) {
		return entry(ctx, event, nil), nil
	}
}

// APIGatewayProxyHandler returns a typed API Gateway handler for lambda.Start
func APIGatewayProxyHandler(f *Function) func(ctx context.Context, event events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	p := AWS()
	return func(ctx context.Context, event events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
		resp := f.Serve(ctx, p, event, nil)
		body, isBase64 := encodeBody(resp)
		return events.APIGatewayProxyResponse{
			StatusCode:      resp.Status(),
			Headers:         resp.Headers(),
			Body:            body,
			IsBase64Encoded: isBase64,
		}, nil
	}
}

// DirectHandler returns a handler for lambda.Start that skips HTTP decoding
func DirectHandler(f *Function) func(ctx context.Context, event json.RawMessage) (map[string]any, error) {
	entry := f.EntryPoint(AWSDirect())
	return func(ctx context.Context, event json.RawMessage) (map[string]any, error) {
		return entry(ctx, event, nil), nil
	}
}
