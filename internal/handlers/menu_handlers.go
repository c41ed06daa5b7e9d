package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"tovio-backoffice/internal/common"
	"tovio-backoffice/internal/models"
	"tovio-backoffice/internal/services"

	"github.com/labstack/echo/v4"
)

// MenuHandlers handles HTTP requests for the menu catalog
type MenuHandlers struct {
	menuService services.MenuService
}

// NewMenuHandlers creates a new menu handlers instance
func NewMenuHandlers(menuService services.MenuService) *MenuHandlers {
	return &MenuHandlers{menuService: menuService}
}

// CreateMenuItem handles POST /menu-items
func (h *MenuHandlers) CreateMenuItem(c echo.Context) error {
	ctx := c.Request().Context()

	var req struct {
		Name         string   `json:"name"`
		Price        float64  `json:"price"`
		Category     string   `json:"category"`
		ImageURL     *string  `json:"image_url"`
		IsAvailable  *bool    `json:"is_available"`
		Ingredients  string   `json:"ingredients"`
		Instructions string   `json:"instructions"`
		Presentation string   `json:"presentation"`
		ShelfLife    string   `json:"shelf_life"`
		Packaging    *string  `json:"packaging"`
		IsGlutenFree bool     `json:"is_gluten_free"`
		IsSugarFree  bool     `json:"is_sugar_free"`
	}

	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	if err := common.ValidateRequiredString(req.Name, "name"); err != nil {
		return common.SendValidationError(c, "name", err.Error())
	}
	if err := common.ValidatePositiveFloat(req.Price, "price", 10000000); err != nil {
		return common.SendValidationError(c, "price", err.Error())
	}

	// New items are sellable unless the client says otherwise
	isAvailable := true
	if req.IsAvailable != nil {
		isAvailable = *req.IsAvailable
	}

	item := &models.MenuItem{
		Name:         req.Name,
		Price:        req.Price,
		Category:     req.Category,
		ImageURL:     req.ImageURL,
		IsAvailable:  isAvailable,
		Ingredients:  req.Ingredients,
		Instructions: req.Instructions,
		Presentation: req.Presentation,
		ShelfLife:    req.ShelfLife,
		Packaging:    req.Packaging,
		IsGlutenFree: req.IsGlutenFree,
		IsSugarFree:  req.IsSugarFree,
	}

	if err := h.menuService.Create(ctx, item); err != nil {
		return common.SendServerError(c, err.Error())
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message":   "Menu item created successfully",
		"menu_item": item,
	})
}

// ListMenuItems handles GET /menu-items
func (h *MenuHandlers) ListMenuItems(c echo.Context) error {
	ctx := c.Request().Context()

	items, err := h.menuService.List(ctx)
	if err != nil {
		return common.SendServerError(c, err.Error())
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"menu_items": items,
	})
}

// GetMenuItemByID handles GET /menu-items/:id
func (h *MenuHandlers) GetMenuItemByID(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	item, err := h.menuService.GetByID(ctx, id)
	if err != nil {
		return common.SendNotFoundError(c, "menu item")
	}

	return c.JSON(http.StatusOK, item)
}

// UpdateMenuItem handles PUT /menu-items/:id with partial update semantics
func (h *MenuHandlers) UpdateMenuItem(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	var update models.MenuItemUpdate
	if err := c.Bind(&update); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	if update.Name != nil {
		if err := common.ValidateRequiredString(*update.Name, "name"); err != nil {
			return common.SendValidationError(c, "name", err.Error())
		}
	}
	if update.Price != nil {
		if err := common.ValidatePositiveFloat(*update.Price, "price", 10000000); err != nil {
			return common.SendValidationError(c, "price", err.Error())
		}
	}

	item, err := h.menuService.Update(ctx, id, &update)
	if err != nil {
		return common.SendServerError(c, err.Error())
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":   "Menu item updated successfully",
		"menu_item": item,
	})
}

// DeleteMenuItem handles DELETE /menu-items/:id
func (h *MenuHandlers) DeleteMenuItem(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	if err := h.menuService.Delete(ctx, id); err != nil {
		return common.SendServerError(c, err.Error())
	}

	return c.JSON(http.StatusOK, map[string]string{
		"message": "Menu item deleted successfully",
	})
}

// MenuFeed handles GET /menu-items/feed: a server-sent event stream that
// pushes the full catalog snapshot after every mutation, starting with the
// current state. Closing the connection unsubscribes.
func (h *MenuHandlers) MenuFeed(c echo.Context) error {
	ctx := c.Request().Context()

	w := c.Response()
	w.Header().Set(echo.HeaderContentType, "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	snapshots := make(chan []*models.MenuItem, 4)
	unsubscribe := h.menuService.Subscribe(func(items []*models.MenuItem) {
		select {
		case snapshots <- items:
		default:
			// Drop when the client is not keeping up; the next
			// mutation delivers a fresh full snapshot anyway.
		}
	})
	defer unsubscribe()

	initial, err := h.menuService.List(ctx)
	if err != nil {
		return common.SendServerError(c, err.Error())
	}
	if err := writeSnapshotEvent(c, initial); err != nil {
		return nil
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case items := <-snapshots:
			if err := writeSnapshotEvent(c, items); err != nil {
				return nil
			}
		}
	}
}

func writeSnapshotEvent(c echo.Context, items []*models.MenuItem) error {
	data, err := json.Marshal(items)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(c.Response(), "event: menu\ndata: %s\n\n", data); err != nil {
		return err
	}
	c.Response().Flush()
	return nil
}
