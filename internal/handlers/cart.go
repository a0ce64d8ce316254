package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/spf13/cast"
	"gorm.io/gorm"

	"github.com/shopworks/supermarket/internal/logging"
	"github.com/shopworks/supermarket/internal/models"
	"github.com/shopworks/supermarket/internal/session"
)

type CartHandler struct {
	DB       *gorm.DB
	Sessions *session.Manager
}

// Add merges a product into the session cart. The cart line captures the
// product's name, price and image at add time; quantities for the same
// product accumulate on one line.
func (h *CartHandler) Add(c echo.Context) error {
	l := logging.FromContext(c.Request().Context()).With("handler", "cart.add")

	id := cast.ToUint(c.Param("id"))
	quantity := cast.ToUint(c.FormValue("quantity"))
	if quantity < 1 {
		quantity = 1
	}

	var product models.Product
	err := h.DB.First(&product, id).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return c.String(http.StatusNotFound, "Product not found")
	case err != nil:
		l.Error("add_to_cart_failed", "reason", "fetch product", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Error adding product to cart")
	}

	cart := h.Sessions.Cart(c).Merge(session.CartLine{
		ProductID:   product.ID,
		ProductName: product.Name,
		Price:       product.Price,
		Quantity:    quantity,
		Image:       product.Image,
	})
	if err := h.Sessions.SaveCart(c, cart); err != nil {
		l.Error("add_to_cart_failed", "reason", "save session", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Error adding product to cart")
	}

	return c.Redirect(http.StatusFound, "/cart")
}

// View renders the cart as-is; nothing is recomputed against the catalog.
func (h *CartHandler) View(c echo.Context) error {
	return c.Render(http.StatusOK, "cart", echo.Map{
		"cart": h.Sessions.Cart(c),
	})
}
