package serverless

import (
	"time"

	"github.com/sirupsen/logrus"
)

// Context describes a single invocation: who is running, with what limits, and on
// which platform. It is built by the adapter once per invocation and never changed
// afterwards.
type Context struct {
	requestID       string
	functionName    string
	functionVersion string
	memoryLimit     uint32
	hasMemoryLimit  bool
	remainingTime   time.Duration
	hasRemaining    bool
	deadline        time.Time
	envVars         map[string]string
	platformData    any
	logger          logrus.FieldLogger
}

// NewContext creates an empty context
func NewContext() Context {
	return Context{}
}

// RequestID returns the platform request id
func (c Context) RequestID() string { return c.requestID }

// WithRequestID sets the request id
func (c Context) WithRequestID(id string) Context {
	c.requestID = id
	return c
}

// FunctionName returns the declared function name
func (c Context) FunctionName() string { return c.functionName }

// WithFunctionName sets the function name
func (c Context) WithFunctionName(name string) Context {
	c.functionName = name
	return c
}

// FunctionVersion returns the function version or alias
func (c Context) FunctionVersion() string { return c.functionVersion }

// WithFunctionVersion sets the function version
func (c Context) WithFunctionVersion(version string) Context {
	c.functionVersion = version
	return c
}

// MemoryLimit returns the memory limit in MB, if the platform reported one
func (c Context) MemoryLimit() (uint32, bool) {
	return c.memoryLimit, c.hasMemoryLimit
}

// WithMemoryLimit sets the memory limit in MB
func (c Context) WithMemoryLimit(mb uint32) Context {
	c.memoryLimit = mb
	c.hasMemoryLimit = true
	return c
}

// RemainingTime returns the execution time left when the invocation started
func (c Context) RemainingTime() (time.Duration, bool) {
	return c.remainingTime, c.hasRemaining
}

// WithRemainingTime sets the remaining execution time
func (c Context) WithRemainingTime(d time.Duration) Context {
	c.remainingTime = d
	c.hasRemaining = true
	return c
}

// Deadline returns the execution deadline, if any
func (c Context) Deadline() (time.Time, bool) {
	return c.deadline, !c.deadline.IsZero()
}

// WithDeadline sets the execution deadline
func (c Context) WithDeadline(t time.Time) Context {
	c.deadline = t
	return c
}

// EnvVars returns a copy of the environment variables visible to the function
func (c Context) EnvVars() map[string]string {
	return copyMap(c.envVars)
}

// EnvVar returns an environment variable
func (c Context) EnvVar(name string) (string, bool) {
	v, ok := c.envVars[name]
	return v, ok
}

// WithEnvVar sets an environment variable
func (c Context) WithEnvVar(name, value string) Context {
	c.envVars = withEntry(c.envVars, name, value)
	return c
}

// PlatformData returns the native platform context, or nil
func (c Context) PlatformData() any { return c.platformData }

// WithPlatformData retains the native platform context
func (c Context) WithPlatformData(data any) Context {
	c.platformData = data
	return c
}

// PlatformValue looks up a dotted path such as "aws.region" in the platform data
func (c Context) PlatformValue(path string) (any, bool) {
	return Lookup(c.platformData, path)
}

// PlatformData decodes the value at a dotted path of the platform data into T
func PlatformData[T any](c Context, path string) (T, bool) {
	return Decode[T](c.platformData, path)
}

// Logger returns the logger used by Log. Defaults to the logrus standard logger.
func (c Context) Logger() logrus.FieldLogger {
	if c.logger == nil {
		return logrus.StandardLogger()
	}
	return c.logger
}

// WithLogger sets the logger used by Log
func (c Context) WithLogger(logger logrus.FieldLogger) Context {
	c.logger = logger
	return c
}

// Log writes a message tagged with the invocation's request id and function name.
// Unknown levels log at info; fatal and panic log at error.
func (c Context) Log(level, message string) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	lvl = max(lvl, logrus.ErrorLevel)
	c.Logger().WithFields(logrus.Fields{
		"request_id": c.requestID,
		"function":   c.functionName,
	}).Log(lvl, message)
}
