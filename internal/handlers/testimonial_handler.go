package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"carsu-site-backend/internal/models"
	"carsu-site-backend/internal/service"
)

// TestimonialHandler exposes the editorial testimonial library API.
type TestimonialHandler struct {
	testimonialService *service.TestimonialService
}

func NewTestimonialHandler(testimonialService *service.TestimonialService) *TestimonialHandler {
	return &TestimonialHandler{testimonialService: testimonialService}
}

func (h *TestimonialHandler) Create(c *gin.Context) {
	var req models.CreateTestimonialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	testimonial, err := h.testimonialService.Create(req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"testimonial": testimonial})
}

func (h *TestimonialHandler) Update(c *gin.Context) {
	var req models.CreateTestimonialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	testimonial, err := h.testimonialService.Update(c.Param("id"), req)
	if err != nil {
		if errors.Is(err, service.ErrTestimonialNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"testimonial": testimonial})
}

func (h *TestimonialHandler) Delete(c *gin.Context) {
	if err := h.testimonialService.Delete(c.Param("id")); err != nil {
		if errors.Is(err, service.ErrTestimonialNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "testimonial deleted successfully"})
}

func (h *TestimonialHandler) GetByID(c *gin.Context) {
	testimonial, err := h.testimonialService.GetByID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "testimonial not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"testimonial": testimonial})
}

func (h *TestimonialHandler) GetAll(c *gin.Context) {
	testimonials, err := h.testimonialService.GetAll()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"testimonials": testimonials})
}
