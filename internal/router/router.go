package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"hometasks/internal/config"
	"hometasks/internal/handler"
	"hometasks/internal/middleware"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	userHandler *handler.UserHandler,
	memberHandler *handler.MemberHandler,
	itemHandler *handler.ItemHandler,
	eventHandler *handler.EventHandler,
) {
	e.Use(echomw.RequestIDWithConfig(echomw.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(echomw.Logger())
	e.Use(echomw.Recover())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.CORSAllowOrigins,
		AllowMethods: []string{
			http.MethodGet, http.MethodPost, http.MethodPut,
			http.MethodPatch, http.MethodDelete, http.MethodOptions,
		},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept},
	}))

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	requireJSON := middleware.RequireJSON()

	// User routes
	e.POST("/user/add", userHandler.AddUser, requireJSON)
	e.POST("/user/verify", userHandler.VerifyUser, requireJSON)
	e.GET("/user/get", userHandler.ListUsers)
	e.GET("/user/get/:id", userHandler.GetUser)
	e.DELETE("/user/delete/:id", userHandler.DeleteUser)

	// Member routes
	e.POST("/member/add", memberHandler.AddMember, requireJSON)
	e.GET("/member/get/:id", memberHandler.GetMember)
	e.GET("/members/get/:user_id", memberHandler.ListMembers)
	e.DELETE("/member/delete/:id", memberHandler.DeleteMember)
	e.PUT("/member/update/:id", memberHandler.UpdateMember, requireJSON)
	e.PATCH("/member/update/:id", memberHandler.UpdateMember, requireJSON)

	// List item routes
	e.POST("/item/add", itemHandler.AddItem, requireJSON)
	e.GET("/item/get/:member_id", itemHandler.ListItems)
	e.PUT("/item/update/:id", itemHandler.UpdateItem, requireJSON)
	e.PATCH("/item/update/:id", itemHandler.UpdateItem, requireJSON)
	e.DELETE("/item/delete/:id", itemHandler.DeleteItem)

	// Event routes
	e.POST("/event/add", eventHandler.AddEvent, requireJSON)
	e.GET("/event/get/:user_id", eventHandler.ListEvents)
	e.DELETE("/event/delete/:id", eventHandler.DeleteEvent)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
