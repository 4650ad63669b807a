package main

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/hoanglb/billiards-store/internal/order"
)

func placeOrderHandler(svc *order.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req order.PlaceOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json body"})
			return
		}

		id, err := svc.Place(c.Request.Context(), req)
		if err != nil {
			if errors.Is(err, order.ErrValidation) {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			// The cause stays in the log; clients only learn that it failed.
			log.Printf("[order] place failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to place order"})
			return
		}

		log.Printf("[order] placed id=%d items=%d", id, len(req.Items))
		c.JSON(http.StatusOK, gin.H{"message": "Order placed successfully"})
	}
}

func listOrdersHandler(repo order.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		rows, err := repo.ListRows(c.Request.Context())
		if err != nil {
			log.Printf("[order] list failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
			return
		}
		if rows == nil {
			rows = []order.Row{}
		}
		c.JSON(http.StatusOK, rows)
	}
}

func deleteOrderHandler(repo order.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order id"})
			return
		}

		ok, err := repo.Delete(c.Request.Context(), id)
		if err != nil {
			log.Printf("[order] delete id=%d failed: %v", id, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete order"})
			return
		}
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Order deleted successfully"})
	}
}

func confirmOrderHandler(repo order.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order id"})
			return
		}

		if err := repo.Confirm(c.Request.Context(), id); err != nil {
			if errors.Is(err, order.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
				return
			}
			log.Printf("[order] confirm id=%d failed: %v", id, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to confirm order"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Order confirmed successfully"})
	}
}
