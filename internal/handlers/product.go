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
	"github.com/shopworks/supermarket/internal/upload"
)

type ProductHandler struct {
	DB       *gorm.DB
	Images   upload.ImageStore
	Sessions *session.Manager
}

// Inventory is the management listing, reachable by admins only.
func (h *ProductHandler) Inventory(c echo.Context) error {
	l := logging.FromContext(c.Request().Context()).With("handler", "product.inventory")

	var products []models.Product
	if err := h.DB.Order("id ASC").Find(&products).Error; err != nil {
		l.Error("inventory_failed", "reason", "list products", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Error fetching products")
	}

	return c.Render(http.StatusOK, "inventory", echo.Map{"products": products})
}

// Shopping is the shopper listing; ?q= narrows it by product name.
func (h *ProductHandler) Shopping(c echo.Context) error {
	l := logging.FromContext(c.Request().Context()).With("handler", "product.shopping")

	q := c.QueryParam("q")
	tx := h.DB.Order("id ASC")
	if q != "" {
		tx = tx.Where("name LIKE ?", "%"+q+"%")
	}

	var products []models.Product
	if err := tx.Find(&products).Error; err != nil {
		l.Error("shopping_failed", "reason", "list products", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Error fetching products")
	}

	return c.Render(http.StatusOK, "shopping", echo.Map{
		"products": products,
		"q":        q,
		"errors":   h.Sessions.Errors(c),
	})
}

func (h *ProductHandler) Detail(c echo.Context) error {
	l := logging.FromContext(c.Request().Context()).With("handler", "product.detail")

	id := cast.ToUint(c.Param("id"))

	var product models.Product
	err := h.DB.First(&product, id).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return c.String(http.StatusNotFound, "Product not found")
	case err != nil:
		l.Error("detail_failed", "reason", "fetch product", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Error fetching product")
	}

	return c.Render(http.StatusOK, "product", echo.Map{"product": product})
}

func (h *ProductHandler) NewForm(c echo.Context) error {
	return c.Render(http.StatusOK, "addProduct", echo.Map{})
}

func (h *ProductHandler) Create(c echo.Context) error {
	l := logging.FromContext(c.Request().Context()).With("handler", "product.create")

	prod := models.Product{
		Name:     c.FormValue("name"),
		Quantity: cast.ToUint(c.FormValue("quantity")),
		Price:    cast.ToFloat64(c.FormValue("price")),
	}

	if file, err := c.FormFile("image"); err == nil {
		stored, err := h.Images.Save(file)
		if err != nil {
			l.Error("create_failed", "reason", "store image", "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "Error adding product")
		}
		prod.Image = &stored.Filename
	}

	if err := h.DB.Create(&prod).Error; err != nil {
		l.Error("create_failed", "reason", "insert product", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Error adding product")
	}

	l.Info("create_success", "product_id", prod.ID)
	return c.Redirect(http.StatusFound, "/inventory")
}

func (h *ProductHandler) EditForm(c echo.Context) error {
	l := logging.FromContext(c.Request().Context()).With("handler", "product.edit_form")

	id := cast.ToUint(c.Param("id"))

	var product models.Product
	err := h.DB.First(&product, id).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return c.String(http.StatusNotFound, "Product not found")
	case err != nil:
		l.Error("edit_form_failed", "reason", "fetch product", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Error fetching product")
	}

	return c.Render(http.StatusOK, "updateProduct", echo.Map{"product": product})
}

func (h *ProductHandler) Update(c echo.Context) error {
	l := logging.FromContext(c.Request().Context()).With("handler", "product.update")

	id := cast.ToUint(c.Param("id"))

	var prod models.Product
	err := h.DB.First(&prod, id).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return c.String(http.StatusNotFound, "Product not found")
	case err != nil:
		l.Error("update_failed", "reason", "fetch product", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Error updating product")
	}

	prod.Name = c.FormValue("name")
	prod.Quantity = cast.ToUint(c.FormValue("quantity"))
	prod.Price = cast.ToFloat64(c.FormValue("price"))

	// No new upload keeps the existing image reference.
	if file, err := c.FormFile("image"); err == nil {
		stored, err := h.Images.Save(file)
		if err != nil {
			l.Error("update_failed", "reason", "store image", "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "Error updating product")
		}
		prod.Image = &stored.Filename
	}

	if err := h.DB.Save(&prod).Error; err != nil {
		l.Error("update_failed", "reason", "save product", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Error updating product")
	}

	l.Info("update_success", "product_id", prod.ID)
	return c.Redirect(http.StatusFound, "/inventory")
}

// Delete removes the row unconditionally; deleting an id that never
// existed still lands back on the listing.
func (h *ProductHandler) Delete(c echo.Context) error {
	l := logging.FromContext(c.Request().Context()).With("handler", "product.delete")

	id := cast.ToUint(c.Param("id"))

	if err := h.DB.Delete(&models.Product{}, id).Error; err != nil {
		l.Error("delete_failed", "reason", "delete product", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Error deleting product")
	}

	l.Info("delete_success", "product_id", id)
	return c.Redirect(http.StatusFound, "/inventory")
}
