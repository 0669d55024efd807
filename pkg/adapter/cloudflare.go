package adapter

import (
	"context"

	"fnbridge/pkg/serverless"
)

// CloudflareName is the platform name of Cloudflare Workers
const CloudflareName = "cloudflare"

var cloudflareShape = httpShape{
	methods: []string{"method"},
	targets: []string{"url"},
	headers: "headers",
	body:    "body",
	base64: func(tree any) bool {
		enc, _ := serverless.LookupString(tree, "bodyEncoding")
		return enc == "base64"
	},
}

// Cloudflare describes Workers-style fetch events. Replies use
// {status, headers, body, bodyEncoding} with bodyEncoding "base64" or "utf-8".
func Cloudflare() Platform {
	return Platform{
		Name:   CloudflareName,
		Decode: cloudflareShape.decode,
		Encode: func(resp serverless.Response) map[string]any {
			body, isBase64 := encodeBody(resp)
			encoding := "utf-8"
			if isBase64 {
				encoding = "base64"
			}
			return map[string]any{
				"status":       resp.Status(),
				"headers":      resp.Headers(),
				"body":         body,
				"bodyEncoding": encoding,
			}
		},
		RequestID: func(_ context.Context, req serverless.Request, _ any) string {
			return headerValue(req, "cf-ray")
		},
	}
}
