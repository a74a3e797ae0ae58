package controllers

import (
	"net/http"

	"github.com/tiffinworks/pos-backend/api/responses"
	"github.com/tiffinworks/pos-backend/api/validators"
	"github.com/tiffinworks/pos-backend/internal/menu"
	"github.com/tiffinworks/pos-backend/pkg/logger"
)

type categoryRequest struct {
	Name      string `json:"name" validate:"required"`
	SortOrder int    `json:"sort_order" validate:"min=0"`
}

type menuItemRequest struct {
	CategoryID string  `json:"category_id" validate:"required,uuid"`
	Name       string  `json:"name" validate:"required"`
	Price      string  `json:"price" validate:"required"`
	Taxable    *bool   `json:"taxable"`
	Available  *bool   `json:"available"`
	ImageURL   *string `json:"image_url"`
}

type availabilityRequest struct {
	Available *bool `json:"available" validate:"required"`
}

// MenuCategories returns the full menu tree for the item grid.
func MenuCategories(svc menu.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		categories, err := svc.ListCategories(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, menu.CategoriesFromModels(categories))
	}
}

// MenuCategoryCreate adds a category.
func MenuCategoryCreate(svc menu.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body categoryRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		category, err := svc.CreateCategory(r.Context(), menu.CategoryInput{Name: body.Name, SortOrder: body.SortOrder})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, menu.CategoryFromModel(category))
	}
}

// MenuCategoryUpdate renames or reorders a category.
func MenuCategoryUpdate(svc menu.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.PathUUID(r, "categoryId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var body categoryRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		category, err := svc.UpdateCategory(r.Context(), id, menu.CategoryInput{Name: body.Name, SortOrder: body.SortOrder})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, menu.CategoryFromModel(category))
	}
}

// MenuCategoryDelete removes a category and its items.
func MenuCategoryDelete(svc menu.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.PathUUID(r, "categoryId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := svc.DeleteCategory(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

// MenuItems lists items, optionally filtered for the sellable grid.
func MenuItems(svc menu.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		categoryID, err := validators.ParseQueryUUID(r, "category_id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		availableOnly, err := validators.ParseQueryBool(r, "available", false)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		items, err := svc.ListItems(r.Context(), menu.ItemFilter{CategoryID: categoryID, AvailableOnly: availableOnly})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, menu.ItemsFromModels(items))
	}
}

// MenuItemCreate adds a menu item.
func MenuItemCreate(svc menu.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		input, err := decodeItemInput(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		item, err := svc.CreateItem(r.Context(), *input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, menu.ItemFromModel(item))
	}
}

// MenuItemUpdate edits a menu item.
func MenuItemUpdate(svc menu.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.PathUUID(r, "itemId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		input, err := decodeItemInput(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		item, err := svc.UpdateItem(r.Context(), id, *input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, menu.ItemFromModel(item))
	}
}

// MenuItemAvailability flips the 86-board flag.
func MenuItemAvailability(svc menu.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.PathUUID(r, "itemId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var body availabilityRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		item, err := svc.SetItemAvailability(r.Context(), id, *body.Available)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, menu.ItemFromModel(item))
	}
}

// MenuItemDelete removes a menu item.
func MenuItemDelete(svc menu.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.PathUUID(r, "itemId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := svc.DeleteItem(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

func decodeItemInput(r *http.Request) (*menu.ItemInput, error) {
	var body menuItemRequest
	if err := validators.DecodeJSONBody(r, &body); err != nil {
		return nil, err
	}
	categoryID, err := validators.ParseUUIDField(body.CategoryID, "category_id")
	if err != nil {
		return nil, err
	}
	price, err := validators.ParseDecimalField(body.Price, "price")
	if err != nil {
		return nil, err
	}
	return &menu.ItemInput{
		CategoryID: categoryID,
		Name:       body.Name,
		Price:      price,
		Taxable:    body.Taxable,
		Available:  body.Available,
		ImageURL:   body.ImageURL,
	}, nil
}
