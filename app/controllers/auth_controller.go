package controllers

import (
	"net/http"

	"github.com/shashiranjanraj/orderdesk/app/models"
	"github.com/shashiranjanraj/orderdesk/app/services"
	"github.com/shashiranjanraj/orderdesk/pkg/ctx"
	"github.com/shashiranjanraj/orderdesk/pkg/middleware"
)

type AuthController struct {
	auth *services.AuthService
	ids  Identity
}

func NewAuthController(auth *services.AuthService, ids Identity) *AuthController {
	return &AuthController{auth: auth, ids: ids}
}

type userView struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	IsStaff  bool   `json:"is_staff"`
	IsActive bool   `json:"is_active"`
}

func newUserView(u models.User) userView {
	return userView{ID: u.ID, Username: u.Username, Email: u.Email, IsStaff: u.IsStaff, IsActive: u.IsActive}
}

// Home is the unauthenticated landing route.
func Home(c *ctx.Context) {
	c.Message("orderdesk API")
}

// Welcome requires a valid access token for an existing user.
func (a *AuthController) Welcome(c *ctx.Context) {
	if _, ok := currentUser(c, a.ids); !ok {
		return
	}
	c.Message("Auth routes: signup, login, login/refresh")
}

func (a *AuthController) Signup(c *ctx.Context) {
	var in services.SignupInput
	if !c.BindJSON(&in) {
		return
	}

	user, err := a.auth.Register(c.Context(), in)
	if err != nil {
		fail(c, err)
		return
	}
	c.Respond(http.StatusCreated, "User is created successfully", newUserView(user))
}

func (a *AuthController) Login(c *ctx.Context) {
	var in services.LoginInput
	if !c.BindJSON(&in) {
		return
	}

	pair, err := a.auth.Login(c.Context(), in)
	if err != nil {
		fail(c, err)
		return
	}
	c.Respond(http.StatusOK, "User successfully logged in", pair)
}

// Refresh takes the refresh token as the bearer credential.
func (a *AuthController) Refresh(c *ctx.Context) {
	raw, ok := middleware.BearerToken(c.R)
	if !ok {
		c.Unauthorized("Authentication credentials were not provided")
		return
	}

	access, err := a.auth.Refresh(c.Context(), raw)
	if err != nil {
		fail(c, err)
		return
	}
	c.Respond(http.StatusOK, "New access token is created", map[string]string{"access_token": access})
}
