package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/artem13815/accounts/api/http/presenter"
	"github.com/artem13815/accounts/pkg/user"
)

const (
	msgLoginOK          = "successfully login"
	msgRegisterOK       = "successfully register user."
	msgUpdatePasswordOK = "successfully update password user."
	msgForgotOK         = "successfully forgot password user."
	msgBadCredentials   = "Incorrect Username or Password."
	msgInvalidJSON      = "invalid JSON payload"
	msgInvalidID        = "invalid user id"
	msgUserNotFound     = "User not found"
	msgInternal         = "internal server error"
)

type UserHandler struct {
	useCase user.UseCase
	tokens  user.TokenGenerator
}

// NewUserHandler wires the account endpoints. tokens may be nil, in which case
// authenticate does not issue a bearer token.
func NewUserHandler(useCase user.UseCase, tokens user.TokenGenerator) *UserHandler {
	return &UserHandler{useCase: useCase, tokens: tokens}
}

type authenticateRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerRequest struct {
	Email        string `json:"email"`
	Password     string `json:"password"`
	FullName     string `json:"fullname"`
	Role         string `json:"role"`
	Organization string `json:"organization"`
}

type updatePasswordRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type forgotPasswordRequest struct {
	Email string `json:"email"`
}

// profileView is the body of the envelope-returning endpoints.
type profileView struct {
	Email        string `json:"email"`
	FullName     string `json:"fullname"`
	Role         string `json:"role"`
	Organization string `json:"organization"`
	Token        string `json:"token,omitempty"`
}

// userView is what GET /users exposes; the password never leaves the service.
type userView struct {
	ID           int64  `json:"id"`
	Email        string `json:"email"`
	FullName     string `json:"fullname"`
	Role         string `json:"role"`
	Organization string `json:"organization"`
	Status       string `json:"status"`
}

func toProfile(u user.User) profileView {
	return profileView{Email: u.Email, FullName: u.FullName, Role: u.Role, Organization: u.Organization}
}

func toView(u user.User) userView {
	return userView{
		ID:           u.ID,
		Email:        u.Email,
		FullName:     u.FullName,
		Role:         u.Role,
		Organization: u.Organization,
		Status:       u.Status,
	}
}

// Authenticate checks credentials.
// @Summary Authenticate
// @Tags    users
// @Accept  json
// @Produce json
// @Param   input body authenticateRequest true "credentials"
// @Success 200 {object} presenter.Envelope
// @Failure 400 {object} presenter.Envelope
// @Router  /users/authenticate [post]
func (h *UserHandler) Authenticate(c *fiber.Ctx) error {
	var req authenticateRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, msgInvalidJSON)
	}

	u, err := h.useCase.Authenticate(c.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, user.ErrInvalidCredentials) {
			return presenter.Error(c, http.StatusBadRequest, msgBadCredentials)
		}
		return h.fail(c, err)
	}

	body := toProfile(u)
	if h.tokens != nil {
		token, err := h.tokens.Generate(c.Context(), u)
		if err != nil {
			return h.fail(c, err)
		}
		body.Token = token
	}
	return presenter.Success(c, msgLoginOK, body)
}

// Register creates an account.
// @Summary Register user
// @Tags    users
// @Accept  json
// @Produce json
// @Param   input body registerRequest true "registration payload"
// @Success 200 {object} presenter.Envelope
// @Failure 400 {object} presenter.Envelope
// @Router  /users/register [post]
func (h *UserHandler) Register(c *fiber.Ctx) error {
	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, msgInvalidJSON)
	}

	u, err := h.useCase.Register(c.Context(), user.User{
		Email:        req.Email,
		FullName:     req.FullName,
		Role:         req.Role,
		Organization: req.Organization,
	}, req.Password)
	if err != nil {
		return h.fail(c, err)
	}
	return presenter.Success(c, msgRegisterOK, toProfile(u))
}

// List returns every account.
// @Summary List users
// @Tags    users
// @Produce json
// @Security BearerAuth
// @Success 200 {array} userView
// @Failure 401 {object} presenter.Envelope
// @Router  /users [get]
func (h *UserHandler) List(c *fiber.Ctx) error {
	users, err := h.useCase.GetAll(c.Context())
	if err != nil {
		return h.fail(c, err)
	}
	out := make([]userView, 0, len(users))
	for _, u := range users {
		out = append(out, toView(u))
	}
	return presenter.JSON(c, http.StatusOK, out)
}

// GetByID returns one account.
// @Summary Get user by ID
// @Tags    users
// @Produce json
// @Param   id path int true "user ID"
// @Security BearerAuth
// @Success 200 {object} userView
// @Failure 400 {object} presenter.Envelope
// @Failure 404 {object} presenter.Envelope
// @Router  /users/{id} [get]
func (h *UserHandler) GetByID(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, msgInvalidID)
	}
	u, err := h.useCase.GetByID(c.Context(), id)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return presenter.Error(c, http.StatusNotFound, msgUserNotFound)
		}
		return h.fail(c, err)
	}
	return presenter.JSON(c, http.StatusOK, toView(u))
}

// UpdatePassword sets a new password on the account with the given email.
// @Summary Update password
// @Tags    users
// @Accept  json
// @Produce json
// @Param   input body updatePasswordRequest true "email and new password"
// @Success 200 {object} presenter.Envelope
// @Failure 400 {object} presenter.Envelope
// @Router  /users/update_password [put]
func (h *UserHandler) UpdatePassword(c *fiber.Ctx) error {
	var req updatePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, msgInvalidJSON)
	}

	if err := h.useCase.Update(c.Context(), user.User{Email: req.Email, Password: req.Password}); err != nil {
		return h.fail(c, err)
	}
	u, err := h.useCase.GetByEmail(c.Context(), req.Email)
	if err != nil {
		return h.fail(c, err)
	}
	return presenter.Success(c, msgUpdatePasswordOK, toProfile(u))
}

// ForgotPassword replaces the password with a random one and mails it.
// @Summary Forgot password
// @Tags    users
// @Accept  json
// @Produce json
// @Param   input body forgotPasswordRequest true "account email"
// @Success 200 {object} presenter.Envelope
// @Failure 400 {object} presenter.Envelope
// @Router  /users/forgot_password [put]
func (h *UserHandler) ForgotPassword(c *fiber.Ctx) error {
	var req forgotPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, msgInvalidJSON)
	}

	u, err := h.useCase.ForgotPassword(c.Context(), req.Email)
	if err != nil {
		return h.fail(c, err)
	}
	return presenter.Success(c, msgForgotOK, toProfile(u))
}

// Delete removes an account; unknown IDs succeed.
// @Summary Delete user
// @Tags    users
// @Param   id path int true "user ID"
// @Security BearerAuth
// @Success 200
// @Failure 400 {object} presenter.Envelope
// @Router  /users/{id} [delete]
func (h *UserHandler) Delete(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, msgInvalidID)
	}
	if err := h.useCase.Delete(c.Context(), id); err != nil {
		return h.fail(c, err)
	}
	return c.Status(http.StatusOK).Send(nil)
}

// fail turns a use-case error into the failure envelope. Business errors keep
// their message; anything else is logged and reported as a server fault.
func (h *UserHandler) fail(c *fiber.Ctx, err error) error {
	var verr user.ErrValidation
	if errors.As(err, &verr) {
		return presenter.Error(c, http.StatusBadRequest, verr.Error())
	}
	var uerr user.ErrUnknownEmail
	if errors.As(err, &uerr) {
		return presenter.Error(c, http.StatusBadRequest, uerr.Error())
	}
	log.Printf("%s %s: %v", c.Method(), c.Path(), err)
	return presenter.Error(c, http.StatusInternalServerError, msgInternal)
}
