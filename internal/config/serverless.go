package config

import "os"

// Platform names reported by DetectPlatform
const (
	PlatformAWS    = "aws"
	PlatformGCP    = "gcp"
	PlatformAzure  = "azure"
	PlatformVercel = "vercel"
	PlatformLocal  = "local"
)

// ServerlessConfig holds serverless-specific configuration
type ServerlessConfig struct {
	Platform     string
	FunctionName string
	Region       string
	Stage        string
}

// IsServerless returns true if running on a cloud platform
func (c ServerlessConfig) IsServerless() bool {
	return c.Platform != PlatformLocal
}

// DeploymentMode returns the current deployment mode
func (c ServerlessConfig) DeploymentMode() string {
	if c.IsServerless() {
		return "serverless"
	}
	return "server"
}

// DetectPlatform identifies the hosting platform from the variables each runtime
// sets. Anything unrecognized is local.
func DetectPlatform() string {
	switch {
	case os.Getenv("AWS_LAMBDA_FUNCTION_NAME") != "":
		return PlatformAWS
	case os.Getenv("FUNCTION_TARGET") != "" || os.Getenv("K_SERVICE") != "":
		return PlatformGCP
	case os.Getenv("FUNCTIONS_WORKER_RUNTIME") != "":
		return PlatformAzure
	case os.Getenv("VERCEL") != "":
		return PlatformVercel
	default:
		return PlatformLocal
	}
}

func functionName(platform string) string {
	switch platform {
	case PlatformAWS:
		return os.Getenv("AWS_LAMBDA_FUNCTION_NAME")
	case PlatformGCP:
		return GetEnv("FUNCTION_TARGET", os.Getenv("K_SERVICE"))
	case PlatformAzure:
		return os.Getenv("WEBSITE_SITE_NAME")
	default:
		return ""
	}
}

func region(platform string) string {
	switch platform {
	case PlatformAWS:
		return os.Getenv("AWS_REGION")
	case PlatformGCP:
		return os.Getenv("FUNCTION_REGION")
	case PlatformAzure:
		return os.Getenv("REGION_NAME")
	case PlatformVercel:
		return os.Getenv("VERCEL_REGION")
	default:
		return ""
	}
}
