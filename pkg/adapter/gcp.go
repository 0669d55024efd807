package adapter

import (
	"context"

	"fnbridge/pkg/serverless"
)

// GCPName is the platform name of Google Cloud Functions
const GCPName = "gcp"

var gcpShape = httpShape{
	methods: []string{"method"},
	targets: []string{"path", "url"},
	headers: "headers",
	query:   "query",
	body:    "body",
	base64: func(tree any) bool {
		v, _ := serverless.Lookup(tree, "isBase64Encoded")
		return v == true
	},
}

// GCP describes Google Cloud Functions HTTP events. Replies use
// {statusCode, headers, body, isBase64Encoded}.
func GCP() Platform {
	return Platform{
		Name:   GCPName,
		Decode: gcpShape.decode,
		Encode: statusCodeReply,
		RequestID: func(_ context.Context, req serverless.Request, _ any) string {
			return headerValue(req, "Function-Execution-Id")
		},
	}
}
