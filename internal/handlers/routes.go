package handlers

import (
	"github.com/labstack/echo/v4"

	"parley/internal/session"
)

// Register wires every route onto the echo instance. The protected group
// carries the session gate and the no-cache headers.
func Register(server *echo.Echo, users UserService, chat ChatService, sessions *session.Manager) {
	server.GET("/", LoginForm(sessions))
	server.GET("/login", LoginForm(sessions))
	server.GET("/signup", SignupForm())
	server.POST("/login", Login(users, sessions))
	server.POST("/signup", Signup(users, sessions))

	protected := server.Group("", sessions.RequireAuth, NoCache)
	protected.POST("/logout", Logout(sessions))
	protected.GET("/chatView", ChatView(users))
	protected.GET("/chat/:otherUserId", Chat(users, chat))
	protected.GET("/messages/:otherUserId", Messages(chat))
	protected.POST("/send-message", SendMessage(users, chat))
}
