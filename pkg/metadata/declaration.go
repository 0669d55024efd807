package metadata

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"fnbridge/pkg/serverless"
)

// Declaration is the authored form of a function's metadata. Every list uses
// explicit YAML delimiters, so resource values may contain commas or parentheses.
//
//	name: user_api
//	description: API endpoints for user management
//	routes:
//	  - method: GET
//	    path: /users
//	requirements:
//	  recommend:
//	    - name: memory
//	      value: 256MB
//	  platforms: [aws, cloudflare]
//	  env: [DATABASE_URL]
//	metadata:
//	  version: "1.0"
type Declaration struct {
	Name         string                  `yaml:"name" validate:"required"`
	Description  string                  `yaml:"description,omitempty"`
	Routes       []RouteInfo             `yaml:"routes,omitempty" validate:"dive"`
	Requirements RequirementsDeclaration `yaml:"requirements,omitempty"`
	Metadata     map[string]string       `yaml:"metadata,omitempty"`
}

// RequirementsDeclaration is the authored form of Requirements
type RequirementsDeclaration struct {
	Recommend []Resource `yaml:"recommend,omitempty" validate:"dive"`
	Require   []Resource `yaml:"require,omitempty" validate:"dive"`
	Platforms []string   `yaml:"platforms,omitempty" validate:"dive,required"`
	Env       []string   `yaml:"env,omitempty" validate:"dive,envname"`
}

var envNameRegex = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

var httpMethods = map[string]bool{
	"GET": true, "HEAD": true, "POST": true, "PUT": true, "PATCH": true,
	"DELETE": true, "OPTIONS": true, "CONNECT": true, "TRACE": true,
}

var declarationValidator = newDeclarationValidator()

func newDeclarationValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("envname", func(fl validator.FieldLevel) bool {
		return envNameRegex.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("httpmethod", func(fl validator.FieldLevel) bool {
		return httpMethods[fl.Field().String()]
	})
	return v
}

// ParseDeclaration decodes and validates a YAML declaration. Unknown keys are
// rejected so that typos do not silently drop requirements.
func ParseDeclaration(data []byte) (Declaration, error) {
	var decl Declaration
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&decl); err != nil {
		return Declaration{}, serverless.NewRequirementsError("invalid declaration: %v", err)
	}
	for i := range decl.Routes {
		decl.Routes[i].Method = strings.ToUpper(decl.Routes[i].Method)
	}
	if err := decl.Validate(); err != nil {
		return Declaration{}, err
	}
	return decl, nil
}

// LoadDeclaration reads and parses a YAML declaration file
func LoadDeclaration(path string) (Declaration, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Declaration{}, serverless.NewRequirementsError("failed to read declaration %s: %v", path, err)
	}
	return ParseDeclaration(data)
}

// Validate checks the declaration's structure
func (d Declaration) Validate() error {
	err := declarationValidator.Struct(d)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return serverless.NewRequirementsError("%v", err)
	}
	messages := make([]string, 0, len(validationErrors))
	for _, fe := range validationErrors {
		messages = append(messages, formatFieldError(fe))
	}
	return serverless.NewRequirementsError("%s", strings.Join(messages, "; "))
}

func formatFieldError(fe validator.FieldError) string {
	field := strings.TrimPrefix(fe.Namespace(), "Declaration.")
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "startswith":
		return fmt.Sprintf("%s must start with %q", field, fe.Param())
	case "httpmethod":
		return fmt.Sprintf("%s must be one of: GET HEAD POST PUT PATCH DELETE OPTIONS CONNECT TRACE", field)
	case "envname":
		return fmt.Sprintf("%s is not a valid environment variable name", field)
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}

// ToRequirements converts the declared requirements. Later resources with the same
// name replace earlier ones.
func (d Declaration) ToRequirements() Requirements {
	reqs := NewRequirements()
	for _, res := range d.Requirements.Recommend {
		reqs = reqs.Recommend(res)
	}
	for _, res := range d.Requirements.Require {
		reqs = reqs.Require(res)
	}
	for _, p := range d.Requirements.Platforms {
		reqs = reqs.Platform(p)
	}
	for _, env := range d.Requirements.Env {
		reqs = reqs.EnvVar(env)
	}
	return reqs
}

// FunctionInfo builds the function description the declaration describes
func (d Declaration) FunctionInfo() FunctionInfo {
	info := NewFunctionInfo(d.Name).
		WithDescription(d.Description).
		WithResources(d.ToRequirements())
	for _, r := range d.Routes {
		info = info.AddRoute(r)
	}
	for k, v := range d.Metadata {
		info = info.AddMetadata(k, v)
	}
	return info
}
