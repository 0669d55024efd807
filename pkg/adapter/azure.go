package adapter

import (
	"context"

	"fnbridge/pkg/serverless"
)

// AzureName is the platform name of Azure Functions
const AzureName = "azure"

var azureShape = httpShape{
	methods: []string{"method"},
	targets: []string{"url"},
	headers: "headers",
	query:   "query",
	body:    "body",
}

// Azure describes Azure Functions HTTP triggers. Replies use
// {status, headers, body, isRaw}; base64 bodies set isRaw to false and add
// bodyEncoding "base64".
func Azure() Platform {
	return Platform{
		Name:   AzureName,
		Decode: azureShape.decode,
		Encode: func(resp serverless.Response) map[string]any {
			body, isBase64 := encodeBody(resp)
			reply := map[string]any{
				"status":  resp.Status(),
				"headers": resp.Headers(),
				"body":    body,
				"isRaw":   !isBase64,
			}
			if isBase64 {
				reply["bodyEncoding"] = "base64"
			}
			return reply
		},
		RequestID: func(_ context.Context, _ serverless.Request, native any) string {
			id, _ := serverless.LookupString(native, "invocationId")
			return id
		},
	}
}
