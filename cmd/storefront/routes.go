package main

import (
	"github.com/gin-gonic/gin"

	"github.com/hoanglb/billiards-store/internal/admin"
	"github.com/hoanglb/billiards-store/internal/catalog"
	"github.com/hoanglb/billiards-store/internal/order"
	"github.com/hoanglb/billiards-store/internal/storage"
)

func registerRoutes(r *gin.Engine, items catalog.Repository, orders *order.Service, orderRepo order.Repository, admins admin.Repository, images *storage.Store) {
	// Item CRUD keeps the storefront's historical root-level paths.
	r.POST("/create", createItemHandler(items, images))
	r.GET("/read/:id", getItemHandler(items))
	r.PUT("/edit/:id", updateItemHandler(items, images))
	r.DELETE("/delete/:id", deleteItemHandler(items))

	// One deployed client still posts orders at the root.
	r.POST("/order", placeOrderHandler(orders))

	api := r.Group("/api")
	api.GET("/items", listItemsHandler(items))
	api.GET("/items/categories", itemsByCategoryHandler(items))
	api.GET("/items/search", searchItemsHandler(items))

	api.POST("/order", placeOrderHandler(orders))
	api.GET("/orders", listOrdersHandler(orderRepo))
	api.DELETE("/orders/:id", deleteOrderHandler(orderRepo))
	api.PUT("/orders/:id/confirm", confirmOrderHandler(orderRepo))

	api.POST("/login", loginHandler(admins))
}
