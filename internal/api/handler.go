package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"video-order-service/internal/apperrors"
	"video-order-service/internal/models"
	"video-order-service/internal/payment"
	"video-order-service/internal/service"
	"video-order-service/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Handler contains HTTP handlers
type Handler struct {
	sessions  *service.SessionManager
	validator *payment.Validator
	orders    *service.OrderService
	gallery   *service.GalleryService
}

// NewHandler creates a new HTTP handler
func NewHandler(
	sessions *service.SessionManager,
	validator *payment.Validator,
	orders *service.OrderService,
	gallery *service.GalleryService,
) *Handler {
	return &Handler{
		sessions:  sessions,
		validator: validator,
		orders:    orders,
		gallery:   gallery,
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

	v1 := router.Group("/api/v1")
	{
		v1.POST("/drafts", h.openDraft)
		v1.GET("/drafts/:id", h.getDraft)
		v1.PATCH("/drafts/:id", h.updateDraft)
		v1.POST("/drafts/:id/images", h.addImages)
		v1.DELETE("/drafts/:id/images/:index", h.removeImage)
		v1.POST("/drafts/:id/advance", h.advance)
		v1.POST("/drafts/:id/back", h.back)
		v1.POST("/drafts/:id/submit", h.submit)
		v1.POST("/drafts/:id/payment", h.pay)
		v1.POST("/drafts/:id/payment/cancel", h.cancelPayment)

		v1.GET("/orders/:id", h.getOrder)
		v1.GET("/orders/:id/payment", h.getOrderPayment)

		v1.GET("/videos", h.listVideos)
		v1.GET("/videos/categories", h.listCategories)
	}
}

func (h *Handler) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "healthy",
		"time":   time.Now().Unix(),
	})
}

func (h *Handler) readinessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ready",
		"time":   time.Now().Unix(),
	})
}

func (h *Handler) session(c *gin.Context) (*service.DraftSession, bool) {
	session, err := h.sessions.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Draft session not found"})
		return nil, false
	}
	return session, true
}

func respondError(c *gin.Context, err error) {
	status := apperrors.HTTPStatus(err)

	var ve *apperrors.ValidationError
	if errors.As(err, &ve) {
		c.JSON(status, gin.H{"error": ve.Message, "field": ve.Field})
		return
	}

	var te *apperrors.TransitionError
	if errors.As(err, &te) {
		c.JSON(status, gin.H{"error": te.Error(), "field_errors": te.Fields})
		return
	}

	c.JSON(status, gin.H{"error": err.Error()})
}

// openDraft starts a new draft session
func (h *Handler) openDraft(c *gin.Context) {
	session := h.sessions.Open(c.Request.Context())

	c.JSON(http.StatusCreated, gin.H{
		"session_id": session.ID,
		"step":       session.Wizard.Step(),
		"draft":      session.Draft.Draft(),
	})
}

// getDraft returns the draft, its derived price and wizard position
func (h *Handler) getDraft(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"session_id":   session.ID,
		"step":         session.Wizard.Step(),
		"draft":        session.Draft.Draft(),
		"step1_valid":  session.Draft.IsStep1Valid(),
		"field_errors": session.Draft.Step1Errors(),
	})
}

type updateDraftRequest struct {
	ActivityDescription *string `json:"activity_description"`
	DurationSeconds     *int    `json:"duration_seconds"`
	Style               *string `json:"style"`
	AdditionalNotes     *string `json:"additional_notes"`
}

// updateDraft applies partial field updates to the draft
func (h *Handler) updateDraft(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}

	var req updateDraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	if req.ActivityDescription != nil {
		if err := session.Draft.SetDescription(*req.ActivityDescription); err != nil {
			respondError(c, err)
			return
		}
	}
	if req.DurationSeconds != nil {
		if err := session.Draft.SetDuration(*req.DurationSeconds); err != nil {
			respondError(c, err)
			return
		}
	}
	if req.Style != nil {
		if err := session.Draft.SetStyle(models.Style(*req.Style)); err != nil {
			respondError(c, err)
			return
		}
	}
	if req.AdditionalNotes != nil {
		if err := session.Draft.SetNotes(*req.AdditionalNotes); err != nil {
			respondError(c, err)
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"draft": session.Draft.Draft()})
}

type addImagesRequest struct {
	Files []models.Upload `json:"files" binding:"required,min=1"`
}

// addImages appends uploaded reference images to the draft
func (h *Handler) addImages(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}

	var req addImagesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	added, err := session.Draft.AddImages(req.Files)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"added": added,
		"price": session.Draft.Price(),
	})
}

// removeImage removes a reference image by position
func (h *Handler) removeImage(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}

	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid image index"})
		return
	}

	if err := session.Draft.RemoveImage(index); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"draft": session.Draft.Draft(),
		"price": session.Draft.Price(),
	})
}

// advance moves the wizard forward one step
func (h *Handler) advance(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}

	if err := session.Wizard.Advance(); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"step": session.Wizard.Step()})
}

// back moves the wizard back one step
func (h *Handler) back(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}

	if err := session.Wizard.Back(); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"step": session.Wizard.Step()})
}

// submit freezes the draft and returns the order summary for payment
func (h *Handler) submit(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}

	summary, err := session.Wizard.Submit()
	if err != nil {
		respondError(c, err)
		return
	}

	session.SetSummary(summary)
	util.OrdersSubmittedTotal.Inc()

	c.JSON(http.StatusOK, gin.H{"summary": summary})
}

type payRequest struct {
	Method string                `json:"method" binding:"required"`
	Card   *models.CardDetails   `json:"card"`
	Wallet *models.WalletDetails `json:"wallet"`
}

// pay validates the payment attempt and, on confirmation, finalizes the
// order
func (h *Handler) pay(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}

	summary, ok := session.Summary()
	if !ok {
		c.JSON(http.StatusConflict, gin.H{"error": "Draft has not been submitted"})
		return
	}

	var req payRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	// One outstanding confirmation per session: keying the attempt by
	// session ID makes a concurrent re-submit hit the in-flight guard.
	attempt := &models.PaymentAttempt{
		ID:     session.ID,
		Method: models.PaymentMethod(req.Method),
		Card:   req.Card,
		Wallet: req.Wallet,
		Status: models.PaymentStatusPending,
	}

	session.SetAttempt(attempt)

	results, err := h.validator.Validate(c.Request.Context(), attempt, summary.Price)
	if err != nil {
		respondError(c, err)
		return
	}

	result := <-results
	if result.Err != nil {
		respondError(c, result.Err)
		return
	}

	order, err := h.orders.FinalizeOrder(c.Request.Context(), summary, result.Record)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to finalize order", "details": err.Error()})
		return
	}

	h.sessions.Discard(c.Request.Context(), session.ID)

	c.JSON(http.StatusCreated, gin.H{
		"order_id":       order.ID,
		"transaction_id": result.Record.TransactionID,
		"status":         order.Status,
	})
}

// cancelPayment aborts an outstanding payment confirmation
func (h *Handler) cancelPayment(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}

	attempt := session.Attempt()
	if attempt == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No payment attempt for this session"})
		return
	}

	cancelled := h.validator.Cancel(attempt.ID)
	c.JSON(http.StatusOK, gin.H{"cancelled": cancelled})
}

// getOrder returns a finalized order with its generation status
func (h *Handler) getOrder(c *gin.Context) {
	orderID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order ID"})
		return
	}

	order, err := h.orders.GetOrderStatus(c.Request.Context(), orderID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"order": order})
}

// getOrderPayment returns the redacted payment recorded for an order
func (h *Handler) getOrderPayment(c *gin.Context) {
	orderID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order ID"})
		return
	}

	record, err := h.orders.GetPayment(c.Request.Context(), orderID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"payment": record})
}

// listVideos returns the sample gallery, optionally filtered by category
func (h *Handler) listVideos(c *gin.Context) {
	videos, err := h.gallery.ListVideos(c.Request.Context(), c.Query("category"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list videos", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"videos": videos})
}

// listCategories returns the distinct gallery categories
func (h *Handler) listCategories(c *gin.Context) {
	categories, err := h.gallery.Categories(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list categories", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"categories": categories})
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
