package adapter

import (
	"context"

	"fnbridge/pkg/serverless"
)

// VercelName is the platform name of Vercel functions
const VercelName = "vercel"

var vercelShape = httpShape{
	methods: []string{"method"},
	targets: []string{"path", "url"},
	headers: "headers",
	query:   "query",
	body:    "body",
	base64: func(tree any) bool {
		enc, _ := serverless.LookupString(tree, "encoding")
		return enc == "base64"
	},
}

// Vercel describes Vercel function invocations. Replies use
// {statusCode, headers, body} plus encoding "base64" for binary bodies.
func Vercel() Platform {
	return Platform{
		Name:   VercelName,
		Decode: vercelShape.decode,
		Encode: func(resp serverless.Response) map[string]any {
			body, isBase64 := encodeBody(resp)
			reply := map[string]any{
				"statusCode": resp.Status(),
				"headers":    resp.Headers(),
				"body":       body,
			}
			if isBase64 {
				reply["encoding"] = "base64"
			}
			return reply
		},
		RequestID: func(_ context.Context, req serverless.Request, _ any) string {
			return headerValue(req, "x-vercel-id")
		},
	}
}
