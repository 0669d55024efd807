// Package userapi is an example route-based function deployed to every platform.
package userapi

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"fnbridge/pkg/metadata"
	"fnbridge/pkg/serverless"
)

//go:embed function.yaml
var declaration []byte

// defaultPageSize applies when USERS_PAGE_SIZE is unset or invalid
const defaultPageSize = 20

// User is the resource served by the function
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateUserRequest is the body of POST /users
type CreateUserRequest struct {
	Name  string `json:"name" validate:"required,min=1,max=100"`
	Email string `json:"email" validate:"required,email"`
}

// UserList is the body of GET /users
type UserList struct {
	Users []User `json:"users"`
	Total int    `json:"total"`
}

var seedUsers = []User{
	{ID: "6f1c2a52-5a1e-4c55-9d0b-2c8f3f0a1b01", Name: "Ada Lovelace", Email: "ada@example.com", CreatedAt: time.Date(2024, 1, 2, 9, 0, 0, 0, time.UTC)},
	{ID: "0b8d7c1e-7f4a-4e0f-8a55-3b2a9d6c4e02", Name: "Grace Hopper", Email: "grace@example.com", CreatedAt: time.Date(2024, 2, 3, 9, 0, 0, 0, time.UTC)},
	{ID: "9a3e5b7d-1c2f-4d6a-b8e9-4f5a6b7c8d03", Name: "Alan Turing", Email: "alan@example.com", CreatedAt: time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC)},
}

var validate = validator.New()

// Info returns the function's declared metadata
func Info() (metadata.FunctionInfo, error) {
	decl, err := metadata.ParseDeclaration(declaration)
	if err != nil {
		return metadata.FunctionInfo{}, err
	}
	return decl.FunctionInfo(), nil
}

// Router builds the function's routes
func Router() *serverless.Router {
	return serverless.NewRouter().
		HandleFunc(serverless.MethodGet, "/users", listUsers).
		HandleFunc(serverless.MethodPost, "/users", createUser).
		HandleFunc(serverless.MethodGet, "/health", health).
		Build()
}

func listUsers(_ context.Context, req serverless.Request, fc serverless.Context) (serverless.Response, error) {
	limit := pageSize(fc)
	if raw, ok := req.QueryParam("limit"); ok {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return serverless.Response{}, serverless.NewHTTPError("invalid limit parameter: must be a non-negative integer")
		}
		limit = n
	}

	users := seedUsers[:min(limit, len(seedUsers))]
	return serverless.JSON(UserList{Users: users, Total: len(seedUsers)})
}

func createUser(_ context.Context, req serverless.Request, fc serverless.Context) (serverless.Response, error) {
	var body CreateUserRequest
	if err := req.BodyJSON(&body); err != nil {
		return serverless.Response{}, serverless.NewHTTPError("invalid request body: %v", err)
	}
	if err := validate.Struct(body); err != nil {
		return serverless.Response{}, serverless.NewHTTPError("%s", formatValidationErrors(err))
	}

	user := User{
		ID:        uuid.New().String(),
		Name:      body.Name,
		Email:     strings.ToLower(body.Email),
		CreatedAt: time.Now().UTC(),
	}
	fc.Log("info", fmt.Sprintf("Created user %s", user.ID))

	resp, err := serverless.JSON(user)
	if err != nil {
		return serverless.Response{}, err
	}
	return resp.WithStatus(http.StatusCreated).WithHeader(serverless.HeaderLocation, "/users/"+user.ID), nil
}

func health(context.Context, serverless.Request, serverless.Context) (serverless.Response, error) {
	return serverless.Text("ok"), nil
}

func pageSize(fc serverless.Context) int {
	if raw, ok := fc.EnvVar("USERS_PAGE_SIZE"); ok {
		if n, err := strconv.Atoi(raw); err == nil && n >= 0 {
			return n
		}
	}
	return defaultPageSize
}

func formatValidationErrors(err error) string {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err.Error()
	}

	messages := make([]string, 0, len(validationErrors))
	for _, fe := range validationErrors {
		field := strings.ToLower(fe.Field())
		switch fe.Tag() {
		case "required":
			messages = append(messages, fmt.Sprintf("%s is required", field))
		case "email":
			messages = append(messages, fmt.Sprintf("%s must be a valid email address", field))
		case "min":
			messages = append(messages, fmt.Sprintf("%s must be at least %s", field, fe.Param()))
		case "max":
			messages = append(messages, fmt.Sprintf("%s must be at most %s", field, fe.Param()))
		default:
			messages = append(messages, fmt.Sprintf("%s is invalid", field))
		}
	}
	return strings.Join(messages, "; ")
}
