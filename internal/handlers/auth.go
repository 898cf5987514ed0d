package handlers

import (
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"parley/internal/model"
	"parley/internal/session"
)

type UserService interface {
	Register(params *model.RegisterParams) (*model.Account, error)
	Authenticate(email, password string) (*model.Account, error)
	Fetch(id int64) (*model.Account, error)
	Roster(currentID int64) ([]model.RosterEntry, error)
}

type loginPage struct {
	Error string
	Email string
	CSRF  string
}

type signupPage struct {
	Errors map[string]string
	Name   string
	Email  string
	CSRF   string
}

// LoginForm renders the login page. An already authenticated client is
// sent straight to the chat view.
func LoginForm(sessions *session.Manager) echo.HandlerFunc {
	return func(c echo.Context) error {
		if _, err := sessions.Current(c); err == nil {
			return c.Redirect(http.StatusSeeOther, "/chatView")
		}
		return c.Render(http.StatusOK, "login.html", loginPage{CSRF: csrfToken(c)})
	}
}

func SignupForm() echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.Render(http.StatusOK, "signup.html", signupPage{CSRF: csrfToken(c)})
	}
}

// Login authenticates the submitted credentials. Failures re-render the
// form with a single generic error and the email preserved; nothing about
// account existence is disclosed.
func Login(users UserService, sessions *session.Manager) echo.HandlerFunc {
	return func(c echo.Context) error {
		email := c.FormValue("email")
		password := c.FormValue("password")

		account, err := users.Authenticate(email, password)
		if err != nil {
			return c.Render(http.StatusUnauthorized, "login.html", loginPage{
				Error: "The provided credentials do not match our records.",
				Email: email,
				CSRF:  csrfToken(c),
			})
		}

		if err := sessions.Start(c, account.ID); err != nil {
			return err
		}

		return c.Redirect(http.StatusSeeOther, "/chatView")
	}
}

// Signup registers a new account and authenticates it in the same step.
// Field errors re-render the form with inputs preserved; the password is
// never echoed back.
func Signup(users UserService, sessions *session.Manager) echo.HandlerFunc {
	return func(c echo.Context) error {
		params := &model.RegisterParams{}
		if err := c.Bind(params); err != nil {
			return err
		}

		account, err := users.Register(params)
		if err != nil {
			return c.Render(http.StatusUnprocessableEntity, "signup.html", signupPage{
				Errors: registrationErrors(err),
				Name:   params.Name,
				Email:  params.Email,
				CSRF:   csrfToken(c),
			})
		}

		if err := sessions.Start(c, account.ID); err != nil {
			return err
		}

		return c.Redirect(http.StatusSeeOther, "/chatView")
	}
}

// Logout invalidates the whole session; a subsequent request to any
// protected route is rejected.
func Logout(sessions *session.Manager) echo.HandlerFunc {
	return func(c echo.Context) error {
		if err := sessions.End(c); err != nil {
			return err
		}
		return c.Redirect(http.StatusSeeOther, "/login")
	}
}

// registrationErrors flattens service errors into per-field form messages.
func registrationErrors(err error) map[string]string {
	fieldErrors := map[string]string{}

	switch {
	case errors.Is(err, model.ErrorEmailTaken):
		fieldErrors["Email"] = "This email is already registered."
		return fieldErrors
	case errors.Is(err, model.ErrorPasswordMismatch):
		fieldErrors["PasswordConfirmation"] = "The password confirmation does not match."
		return fieldErrors
	}

	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		for _, fieldError := range validationErrors {
			switch fieldError.Tag() {
			case "required":
				fieldErrors[fieldError.Field()] = "This field is required."
			case "email":
				fieldErrors[fieldError.Field()] = "This must be a valid email address."
			case "min":
				fieldErrors[fieldError.Field()] = "This field is too short."
			case "max":
				fieldErrors[fieldError.Field()] = "This field is too long."
			default:
				fieldErrors[fieldError.Field()] = "This field is invalid."
			}
		}
		return fieldErrors
	}

	fieldErrors["Form"] = "Registration failed."
	return fieldErrors
}

func csrfToken(c echo.Context) string {
	if token, ok := c.Get("csrf").(string); ok {
		return token
	}
	return ""
}
