package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"taskboard/internal/session"
)

type loginInput struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required"`
}

type registerInput struct {
	FullName string `validate:"required"`
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=6"`
}

// authEnvelope is the shape the auth endpoints answer with.
type authEnvelope struct {
	Content struct {
		User struct {
			ID       string `json:"id"`
			FullName string `json:"fullName"`
			Email    string `json:"email"`
			Role     string `json:"role"`
		} `json:"user"`
		Token string `json:"token"`
	} `json:"content"`
	Message string   `json:"message"`
	Errors  []string `json:"errors"`
}

func (e authEnvelope) user() session.User {
	role := "user"
	if strings.EqualFold(e.Content.User.Role, "admin") {
		role = "admin"
	}
	return session.User{
		ID:    e.Content.User.ID,
		Name:  e.Content.User.FullName,
		Email: e.Content.User.Email,
		Role:  role,
	}
}

// Login authenticates and installs the session: token and user persisted,
// cookie mirror updated by the session store.
func (c *Client) Login(ctx context.Context, email, password string) (session.User, error) {
	in := loginInput{Email: email, Password: password}
	if err := c.validate.Struct(in); err != nil {
		return session.User{}, &APIError{Kind: KindValidation, Message: "enter a valid email and password"}
	}

	body, err := c.do(ctx, http.MethodPost, "/login", map[string]string{
		"email":    email,
		"password": password,
	})
	if err != nil {
		return session.User{}, err
	}
	return c.installSession(body)
}

// Register creates an account and logs the new user in, the API returns
// the same token envelope as login.
func (c *Client) Register(ctx context.Context, fullName, email, password string) (session.User, error) {
	in := registerInput{FullName: fullName, Email: email, Password: password}
	if err := c.validate.Struct(in); err != nil {
		return session.User{}, &APIError{Kind: KindValidation, Message: "name, a valid email and a password of at least 6 characters are required"}
	}

	body, err := c.do(ctx, http.MethodPost, "/register", map[string]string{
		"fullName": fullName,
		"email":    email,
		"password": password,
	})
	if err != nil {
		return session.User{}, err
	}
	return c.installSession(body)
}

// VerifyToken asks the API whether the stored token is still good and
// refreshes the persisted user from the answer. An invalid token goes
// through the usual 401 interceptor.
func (c *Client) VerifyToken(ctx context.Context) (session.User, error) {
	body, err := c.do(ctx, http.MethodGet, "/verify-token", nil)
	if err != nil {
		return session.User{}, err
	}

	var envelope authEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return session.User{}, &APIError{Kind: KindUnknown, Message: fmt.Sprintf("decode verify response: %v", err)}
	}
	user := envelope.user()
	if user.ID == "" {
		return session.User{}, &APIError{Kind: KindUnknown, Message: "verify response carried no user"}
	}
	return user, nil
}

// Logout tells the API to invalidate the token, then clears the local
// session either way. Logout always succeeds from the user's point of view.
func (c *Client) Logout(ctx context.Context) error {
	if _, err := c.do(ctx, http.MethodPost, "/logout", nil); err != nil {
		c.logger.Warn("logout request failed, clearing session anyway", "err", err)
	}
	return c.session.Clear()
}

func (c *Client) installSession(body []byte) (session.User, error) {
	var envelope authEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return session.User{}, &APIError{Kind: KindUnknown, Message: fmt.Sprintf("decode auth response: %v", err)}
	}

	user := envelope.user()
	if user.ID == "" || envelope.Content.Token == "" {
		return session.User{}, &APIError{Kind: KindUnknown, Message: "auth response carried no token"}
	}
	if err := c.session.Login(user, envelope.Content.Token); err != nil {
		return session.User{}, &APIError{Kind: KindUnknown, Message: fmt.Sprintf("persist session: %v", err)}
	}
	return user, nil
}
