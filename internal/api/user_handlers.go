package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/vaultofgames/vault-server/internal/domain"
	"github.com/vaultofgames/vault-server/internal/service"
)

func (s *Server) registerUserRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID:   "signUp",
		Method:        http.MethodPost,
		Path:          "/v1/users/sign-up",
		Summary:       "Sign up",
		Description:   "Creates a user account",
		Tags:          []string{"Users"},
		DefaultStatus: http.StatusCreated,
	}, s.handleSignUp)

	huma.Register(s.api, huma.Operation{
		OperationID: "signIn",
		Method:      http.MethodPost,
		Path:        "/v1/users/sign-in",
		Summary:     "Sign in",
		Description: "Exchanges credentials for a bearer access token",
		Tags:        []string{"Users"},
	}, s.handleSignIn)

	huma.Register(s.api, huma.Operation{
		OperationID: "getUser",
		Method:      http.MethodGet,
		Path:        "/v1/users/{id}",
		Summary:     "Get user",
		Description: "Returns the caller's own account",
		Tags:        []string{"Users"},
		Security:    bearerSecurity,
		Middlewares: huma.Middlewares{s.requireBearer},
	}, s.handleGetUser)

	huma.Register(s.api, huma.Operation{
		OperationID: "updateUser",
		Method:      http.MethodPatch,
		Path:        "/v1/users/{id}",
		Summary:     "Update user",
		Description: "Changes the caller's username or password",
		Tags:        []string{"Users"},
		Security:    bearerSecurity,
		Middlewares: huma.Middlewares{s.requireBearer},
	}, s.handleUpdateUser)

	huma.Register(s.api, huma.Operation{
		OperationID:   "deleteUser",
		Method:        http.MethodDelete,
		Path:          "/v1/users/{id}",
		Summary:       "Delete user",
		Description:   "Deletes the caller's account and all of its games",
		Tags:          []string{"Users"},
		Security:      bearerSecurity,
		Middlewares:   huma.Middlewares{s.requireBearer},
		DefaultStatus: http.StatusNoContent,
	}, s.handleDeleteUser)
}

// === DTOs ===

// CredentialsRequest is the body of sign-up and sign-in.
// Missing fields are treated as empty and rejected by the service.
type CredentialsRequest struct {
	Username string `json:"username,omitempty" doc:"Username"`
	Password string `json:"password,omitempty" doc:"Password"`
}

// CredentialsInput wraps the credentials request for Huma.
type CredentialsInput struct {
	Body CredentialsRequest
}

// UserResponse contains user data in API responses. The password hash is
// never exposed.
type UserResponse struct {
	ID        string     `json:"id" doc:"User ID"`
	Username  string     `json:"username" doc:"Username"`
	CreatedAt time.Time  `json:"created_at" doc:"Creation time"`
	UpdatedAt *time.Time `json:"updated_at" doc:"Last update time, null if never updated"`
}

// UserOutput wraps the user response for Huma.
type UserOutput struct {
	Body UserResponse
}

// SignInResponse contains the issued access token.
type SignInResponse struct {
	AccessToken string `json:"access_token" doc:"Signed access token"`
	TokenType   string `json:"token_type" doc:"Always Bearer"`
}

// SignInOutput wraps the sign-in response for Huma.
type SignInOutput struct {
	Body SignInResponse
}

// UserIDInput identifies a user by path.
type UserIDInput struct {
	ID string `path:"id" doc:"User ID"`
}

// UpdateUserRequest is the request body for updating a user.
type UpdateUserRequest struct {
	Username *string `json:"username,omitempty" doc:"New username"`
	Password *string `json:"password,omitempty" doc:"New password"`
}

// UpdateUserInput wraps the update user request for Huma.
type UpdateUserInput struct {
	ID   string `path:"id" doc:"User ID"`
	Body UpdateUserRequest
}

func newUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// === Handlers ===

func (s *Server) handleSignUp(ctx context.Context, input *CredentialsInput) (*UserOutput, error) {
	user, err := s.services.Auth.SignUp(ctx, service.SignUpRequest{
		Username: input.Body.Username,
		Password: input.Body.Password,
	})
	if err != nil {
		return nil, s.fail(ctx, "signUp", err)
	}
	return &UserOutput{Body: newUserResponse(user)}, nil
}

func (s *Server) handleSignIn(ctx context.Context, input *CredentialsInput) (*SignInOutput, error) {
	result, err := s.services.Auth.SignIn(ctx, service.SignInRequest{
		Username: input.Body.Username,
		Password: input.Body.Password,
	})
	if err != nil {
		return nil, s.fail(ctx, "signIn", err)
	}
	return &SignInOutput{Body: SignInResponse{
		AccessToken: result.AccessToken,
		TokenType:   result.TokenType,
	}}, nil
}

func (s *Server) handleGetUser(ctx context.Context, input *UserIDInput) (*UserOutput, error) {
	subject, err := subjectFromContext(ctx)
	if err != nil {
		return nil, err
	}

	user, err := s.services.User.GetUser(ctx, subject, input.ID)
	if err != nil {
		return nil, s.fail(ctx, "getUser", err)
	}
	return &UserOutput{Body: newUserResponse(user)}, nil
}

func (s *Server) handleUpdateUser(ctx context.Context, input *UpdateUserInput) (*UserOutput, error) {
	subject, err := subjectFromContext(ctx)
	if err != nil {
		return nil, err
	}

	user, err := s.services.User.UpdateUser(ctx, subject, input.ID, service.UpdateUserRequest{
		Username: input.Body.Username,
		Password: input.Body.Password,
	})
	if err != nil {
		return nil, s.fail(ctx, "updateUser", err)
	}
	return &UserOutput{Body: newUserResponse(user)}, nil
}

func (s *Server) handleDeleteUser(ctx context.Context, input *UserIDInput) (*struct{}, error) {
	subject, err := subjectFromContext(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.services.User.DeleteUser(ctx, subject, input.ID); err != nil {
		return nil, s.fail(ctx, "deleteUser", err)
	}
	return &struct{}{}, nil
}
