package main

import (
	"errors"
	"log"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/hoanglb/billiards-store/internal/catalog"
	"github.com/hoanglb/billiards-store/internal/storage"
)

func listItemsHandler(repo catalog.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
		limit, _ := strconv.Atoi(c.DefaultQuery("limit", "7"))
		if page < 1 {
			page = 1
		}
		if limit <= 0 || limit > 100 {
			limit = 7
		}

		items, total, err := repo.List(c.Request.Context(), catalog.Page{
			Limit:  limit,
			Offset: (page - 1) * limit,
		})
		if err != nil {
			log.Printf("[catalog] list failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
			return
		}
		if items == nil {
			items = []catalog.Item{}
		}

		c.JSON(http.StatusOK, catalog.ListResponse{
			Items:       items,
			CurrentPage: page,
			TotalPages:  (total + limit - 1) / limit,
		})
	}
}

func itemsByCategoryHandler(repo catalog.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := strings.TrimSpace(c.Query("categories"))
		if raw == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Missing category ids"})
			return
		}

		parts := strings.Split(raw, ",")
		ids := make([]int64, 0, len(parts))
		for _, p := range parts {
			id, err := strconv.ParseInt(strings.TrimSpace(p), 10, 64)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid category id"})
				return
			}
			ids = append(ids, id)
		}

		items, err := repo.ByCategories(c.Request.Context(), ids)
		if err != nil {
			log.Printf("[catalog] by categories failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
			return
		}
		if items == nil {
			items = []catalog.Item{}
		}
		c.JSON(http.StatusOK, items)
	}
}

func searchItemsHandler(repo catalog.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		q := strings.TrimSpace(c.Query("q"))
		if q == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Missing search query"})
			return
		}

		items, err := repo.Search(c.Request.Context(), q)
		if err != nil {
			log.Printf("[catalog] search failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
			return
		}
		if items == nil {
			items = []catalog.Item{}
		}
		c.JSON(http.StatusOK, items)
	}
}

// itemFromForm reads the multipart fields shared by create and edit. Price
// arrives as form text and is normalized through decimal so "25.50" and
// "25.5" store the same value.
func itemFromForm(c *gin.Context) (*catalog.Item, error) {
	name := strings.TrimSpace(c.PostForm("name"))
	if name == "" {
		return nil, errors.New("name is required")
	}

	price, err := decimal.NewFromString(strings.TrimSpace(c.PostForm("price")))
	if err != nil || price.IsNegative() {
		return nil, errors.New("price must be a non-negative number")
	}

	categoryID, err := strconv.ParseInt(c.PostForm("category_id"), 10, 64)
	if err != nil {
		return nil, errors.New("category_id must be a number")
	}

	return &catalog.Item{
		Name:        name,
		Description: c.PostForm("description"),
		Price:       price.String(),
		CategoryID:  categoryID,
	}, nil
}

func saveImage(images *storage.Store, file *multipart.FileHeader) (string, error) {
	f, err := file.Open()
	if err != nil {
		return "", err
	}
	defer f.Close()
	return images.Save(f, file.Filename)
}

func createItemHandler(repo catalog.Repository, images *storage.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		it, err := itemFromForm(c)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		if file, err := c.FormFile("image"); err == nil {
			name, err := saveImage(images, file)
			if err != nil {
				log.Printf("[catalog] image save failed: %v", err)
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store image"})
				return
			}
			it.Image = &name
		}

		if err := repo.Create(c.Request.Context(), it); err != nil {
			log.Printf("[catalog] create failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create item"})
			return
		}
		c.JSON(http.StatusCreated, it)
	}
}

func getItemHandler(repo catalog.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid item id"})
			return
		}

		it, err := repo.GetByID(c.Request.Context(), id)
		if err != nil {
			if errors.Is(err, catalog.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Item not found"})
				return
			}
			log.Printf("[catalog] get id=%d failed: %v", id, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
			return
		}
		c.JSON(http.StatusOK, it)
	}
}

func updateItemHandler(repo catalog.Repository, images *storage.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid item id"})
			return
		}

		it, err := itemFromForm(c)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		it.ID = id

		// A new upload replaces the image; otherwise the client echoes the
		// one it already has in currentImage.
		if file, err := c.FormFile("image"); err == nil {
			name, err := saveImage(images, file)
			if err != nil {
				log.Printf("[catalog] image save failed: %v", err)
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store image"})
				return
			}
			it.Image = &name
		} else if current := c.PostForm("currentImage"); current != "" {
			it.Image = &current
		}

		if err := repo.Update(c.Request.Context(), it); err != nil {
			if errors.Is(err, catalog.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Item not found"})
				return
			}
			log.Printf("[catalog] update id=%d failed: %v", id, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update item"})
			return
		}
		c.JSON(http.StatusOK, it)
	}
}

func deleteItemHandler(repo catalog.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid item id"})
			return
		}

		ok, err := repo.Delete(c.Request.Context(), id)
		if err != nil {
			log.Printf("[catalog] delete id=%d failed: %v", id, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete item"})
			return
		}
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "Item not found"})
			return
		}
		c.Status(http.StatusNoContent)
	}
}
