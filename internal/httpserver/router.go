package httpserver

import (
	"github.com/labstack/echo/v4"

	"github.com/shopworks/supermarket/internal/handlers"
	authmw "github.com/shopworks/supermarket/internal/middleware/auth"
)

type Deps struct {
	Auth     *handlers.AuthHandler
	Products *handlers.ProductHandler
	Cart     *handlers.CartHandler
	Guard    *authmw.Guard
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/", d.Auth.Index)
	e.GET("/register", d.Auth.RegisterForm)
	e.POST("/register", d.Auth.Register)
	e.GET("/login", d.Auth.LoginForm)
	e.POST("/login", d.Auth.Login)
	e.GET("/logout", d.Auth.Logout)

	shop := e.Group("", d.Guard.RequireLogin)
	shop.GET("/shopping", d.Products.Shopping)
	shop.GET("/product/:id", d.Products.Detail)
	shop.POST("/add-to-cart/:id", d.Cart.Add)
	shop.GET("/cart", d.Cart.View)

	// Every catalog mutation sits behind the admin guard, the delete route
	// included.
	admin := e.Group("", d.Guard.RequireLogin, d.Guard.AdminOnly)
	admin.GET("/inventory", d.Products.Inventory)
	admin.GET("/addProduct", d.Products.NewForm)
	admin.POST("/addProduct", d.Products.Create)
	admin.GET("/updateProduct/:id", d.Products.EditForm)
	admin.POST("/updateProduct/:id", d.Products.Update)
	admin.GET("/deleteProduct/:id", d.Products.Delete)
}
