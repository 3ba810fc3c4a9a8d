package api

import (
	"errors"
	"net/http"
	"path/filepath"
	"strconv"
	"time"

	"exhibition-service/internal/models"
	"exhibition-service/internal/service"
	"exhibition-service/internal/store"
	"exhibition-service/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Handler contains HTTP handlers
type Handler struct {
	catalog     *service.CatalogService
	exhibitions *service.ExhibitionService
	lists       *service.ProductListService
	orders      *service.OrderService
	uploadDir   string
	logger      *zap.Logger
}

// NewHandler creates a new HTTP handler
func NewHandler(
	catalog *service.CatalogService,
	exhibitions *service.ExhibitionService,
	lists *service.ProductListService,
	orders *service.OrderService,
	uploadDir string,
) *Handler {
	return &Handler{
		catalog:     catalog,
		exhibitions: exhibitions,
		lists:       lists,
		orders:      orders,
		uploadDir:   uploadDir,
		logger:      util.GetLogger(),
	}
}

// SetupRoutes sets up HTTP routes
func (h *Handler) SetupRoutes(router *gin.Engine) {
	router.Use(gin.Recovery())
	router.Use(prometheusMiddleware())
	router.Use(gin.Logger())

	router.GET("/health", h.healthCheck)
	router.GET("/ready", h.readinessCheck)

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	router.GET("/products", h.listProducts)
	router.POST("/products", h.createProduct)
	router.GET("/products/:id", h.getProduct)
	router.PUT("/products/:id", h.updateProduct)
	router.DELETE("/products/:id", h.deleteProduct)

	router.GET("/exhibitions", h.listExhibitions)
	router.POST("/exhibitions", h.createExhibition)
	router.GET("/exhibitions/approve", h.listPendingApprovals)
	router.POST("/exhibitions/approve", h.decideApproval)
	router.GET("/exhibitions/:id/products", h.listExhibitionProducts)
	router.POST("/exhibitions/:id/products", h.addExhibitionProducts)

	router.GET("/product-lists", h.listProductLists)
	router.POST("/product-lists", h.createProductList)
	router.GET("/product-lists/:id", h.getProductList)
	router.PUT("/product-lists/:id", h.updateProductList)

	router.GET("/orders", h.exhibitionOrders)
	router.POST("/orders", h.createOrder)
}

// healthCheck handles health check requests
func (h *Handler) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "healthy",
		"time":   time.Now().Unix(),
	})
}

// readinessCheck handles readiness check requests
func (h *Handler) readinessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ready",
		"time":   time.Now().Unix(),
	})
}

// respondError translates the error taxonomy to HTTP statuses: not-found
// to 404, validation to 400, everything else to a generic 500.
func (h *Handler) respondError(c *gin.Context, err error, notFoundMsg, failureMsg string) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": notFoundMsg})
	case errors.Is(err, service.ErrInvalidStatus):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status"})
	case errors.Is(err, service.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
	default:
		h.logger.Error(failureMsg, zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": failureMsg})
	}
}

// listProducts handles GET /products
func (h *Handler) listProducts(c *gin.Context) {
	products, err := h.catalog.ListProducts(c.Request.Context())
	if err != nil {
		h.respondError(c, err, "Product not found", "Failed to list products")
		return
	}
	c.JSON(http.StatusOK, products)
}

// getProduct handles GET /products/:id
func (h *Handler) getProduct(c *gin.Context) {
	product, err := h.catalog.GetProduct(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err, "Product not found", "Failed to get product")
		return
	}
	c.JSON(http.StatusOK, product)
}

// createProduct handles POST /products (multipart form)
func (h *Handler) createProduct(c *gin.Context) {
	buyingPrice, err1 := strconv.ParseFloat(c.DefaultPostForm("buyingPrice", "0"), 64)
	quantity, err2 := strconv.Atoi(c.DefaultPostForm("quantity", "0"))
	threshold, err3 := strconv.Atoi(c.DefaultPostForm("thresholdValue", "0"))
	if err1 != nil || err2 != nil || err3 != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	req := &service.CreateProductRequest{
		ID:             c.PostForm("id"),
		Name:           c.PostForm("name"),
		Category:       c.PostForm("category"),
		BuyingPrice:    buyingPrice,
		Quantity:       quantity,
		Unit:           c.PostForm("unit"),
		ThresholdValue: threshold,
		ExpiryDate:     c.PostForm("expiryDate"),
		Availability:   c.PostForm("availability"),
	}

	if file, err := c.FormFile("image"); err == nil && h.uploadDir != "" {
		name := uuid.NewString() + filepath.Ext(file.Filename)
		if err := c.SaveUploadedFile(file, filepath.Join(h.uploadDir, name)); err != nil {
			h.logger.Warn("Failed to save uploaded image", zap.Error(err))
		} else {
			req.Image = "/uploads/" + name
		}
	}

	product, err := h.catalog.CreateProduct(c.Request.Context(), req)
	if err != nil {
		h.respondError(c, err, "Product not found", "Failed to create product")
		return
	}
	c.JSON(http.StatusCreated, product)
}

// updateProduct handles PUT /products/:id (partial JSON merge)
func (h *Handler) updateProduct(c *gin.Context) {
	var patch models.ProductPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	product, err := h.catalog.UpdateProduct(c.Request.Context(), c.Param("id"), &patch)
	if err != nil {
		h.respondError(c, err, "Product not found", "Failed to update product")
		return
	}
	c.JSON(http.StatusOK, product)
}

// deleteProduct handles DELETE /products/:id
func (h *Handler) deleteProduct(c *gin.Context) {
	if err := h.catalog.DeleteProduct(c.Request.Context(), c.Param("id")); err != nil {
		h.respondError(c, err, "Product not found", "Failed to delete product")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Product deleted"})
}

// listExhibitions handles GET /exhibitions
func (h *Handler) listExhibitions(c *gin.Context) {
	exhibitions, err := h.exhibitions.ListExhibitions(c.Request.Context())
	if err != nil {
		h.respondError(c, err, "Exhibition not found", "Failed to list exhibitions")
		return
	}
	c.JSON(http.StatusOK, exhibitions)
}

// createExhibition handles POST /exhibitions
func (h *Handler) createExhibition(c *gin.Context) {
	var req service.CreateExhibitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	exhibition, err := h.exhibitions.CreateExhibition(c.Request.Context(), &req)
	if err != nil {
		h.respondError(c, err, "Exhibition not found", "Failed to create exhibition")
		return
	}
	c.JSON(http.StatusCreated, exhibition)
}

// listExhibitionProducts handles GET /exhibitions/:id/products
func (h *Handler) listExhibitionProducts(c *gin.Context) {
	products, err := h.exhibitions.ExhibitionProducts(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err, "Exhibition not found", "Failed to list exhibition products")
		return
	}
	c.JSON(http.StatusOK, products)
}

// addExhibitionProducts handles POST /exhibitions/:id/products
func (h *Handler) addExhibitionProducts(c *gin.Context) {
	var req struct {
		Products []service.ProposedProductRequest `json:"products"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := h.exhibitions.AddProducts(c.Request.Context(), c.Param("id"), req.Products); err != nil {
		h.respondError(c, err, "Exhibition not found", "Failed to add products")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true})
}

// listPendingApprovals handles GET /exhibitions/approve
func (h *Handler) listPendingApprovals(c *gin.Context) {
	pending, err := h.exhibitions.PendingApprovals(c.Request.Context())
	if err != nil {
		h.respondError(c, err, "Product not found", "Failed to list pending approvals")
		return
	}
	c.JSON(http.StatusOK, pending)
}

// decideApproval handles POST /exhibitions/approve
func (h *Handler) decideApproval(c *gin.Context) {
	var req struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	updated, err := h.exhibitions.Decide(c.Request.Context(), req.ID, req.Status)
	if err != nil {
		h.respondError(c, err, "Product not found", "Failed to update status")
		return
	}
	c.JSON(http.StatusOK, updated)
}

// listProductLists handles GET /product-lists
func (h *Handler) listProductLists(c *gin.Context) {
	lists, err := h.lists.List(c.Request.Context(), c.Query("exhibitionId"))
	if err != nil {
		h.respondError(c, err, "Product list not found", "Failed to list product lists")
		return
	}
	c.JSON(http.StatusOK, lists)
}

// createProductList handles POST /product-lists
func (h *Handler) createProductList(c *gin.Context) {
	var req service.CreateProductListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	list, err := h.lists.Create(c.Request.Context(), &req)
	if err != nil {
		h.respondError(c, err, "Product list not found", "Failed to create product list")
		return
	}
	c.JSON(http.StatusCreated, list)
}

// getProductList handles GET /product-lists/:id
func (h *Handler) getProductList(c *gin.Context) {
	detail, err := h.lists.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err, "Product list not found", "Failed to get product list")
		return
	}
	c.JSON(http.StatusOK, detail)
}

// updateProductList handles PUT /product-lists/:id
func (h *Handler) updateProductList(c *gin.Context) {
	var req service.UpdateProductListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := h.lists.Update(c.Request.Context(), c.Param("id"), &req); err != nil {
		h.respondError(c, err, "Product list not found", "Failed to update product list")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// exhibitionOrders handles GET /orders
func (h *Handler) exhibitionOrders(c *gin.Context) {
	view, err := h.orders.ExhibitionOrdersView(c.Request.Context())
	if err != nil {
		h.respondError(c, err, "Exhibition not found", "Failed to aggregate orders")
		return
	}
	c.JSON(http.StatusOK, view)
}

// createOrder handles POST /orders
func (h *Handler) createOrder(c *gin.Context) {
	var req service.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	order, err := h.orders.CreateOrder(c.Request.Context(), &req)
	if err != nil {
		h.respondError(c, err, "Order not found", "Failed to create order")
		return
	}
	c.JSON(http.StatusCreated, order)
}

// prometheusMiddleware collects HTTP metrics
func prometheusMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(c.Writer.Status())

		util.HTTPRequestDuration.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			status,
		).Observe(duration)

		util.HTTPRequestsTotal.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			status,
		).Inc()
	}
}
