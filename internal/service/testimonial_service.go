package service

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"carsu-site-backend/internal/models"
	"carsu-site-backend/internal/repository"
	"carsu-site-backend/pkg/cache"
	"carsu-site-backend/pkg/logger"
)

const testimonialsCacheKey = "all"

// TestimonialService manages the shared testimonial library referenced by
// testimonial sections.
type TestimonialService struct {
	repo  repository.TestimonialRepository
	cache *cache.Cache
}

func NewTestimonialService(repo repository.TestimonialRepository, c *cache.Cache) *TestimonialService {
	return &TestimonialService{repo: repo, cache: c}
}

func (s *TestimonialService) GetAll() ([]models.Testimonial, error) {
	if s.cache != nil {
		var cached []models.Testimonial
		if err := s.cache.GetCachedTestimonials(testimonialsCacheKey, &cached); err == nil && len(cached) > 0 {
			return cached, nil
		}
	}

	testimonials, err := s.repo.GetAll()
	if err != nil {
		return nil, err
	}

	if s.cache != nil && len(testimonials) > 0 {
		if err := s.cache.CacheTestimonials(testimonialsCacheKey, testimonials); err != nil {
			logger.Warn("Failed to cache testimonials", map[string]interface{}{"error": err.Error()})
		}
	}

	return testimonials, nil
}

func (s *TestimonialService) GetByID(id string) (*models.Testimonial, error) {
	testimonial, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTestimonialNotFound
		}
		return nil, err
	}
	return testimonial, nil
}

func (s *TestimonialService) GetByIDs(ids []string) ([]models.Testimonial, error) {
	return s.repo.GetByIDs(ids)
}

func (s *TestimonialService) Create(req models.CreateTestimonialRequest) (*models.Testimonial, error) {
	testimonial := &models.Testimonial{
		ID:     uuid.NewString(),
		Quote:  req.Quote,
		Author: req.Author,
		Role:   req.Role,
		Avatar: req.Avatar,
		Rating: req.Rating,
	}

	if err := s.repo.Create(testimonial); err != nil {
		return nil, err
	}

	s.invalidate()
	return testimonial, nil
}

func (s *TestimonialService) Update(id string, req models.CreateTestimonialRequest) (*models.Testimonial, error) {
	testimonial, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	testimonial.Quote = req.Quote
	testimonial.Author = req.Author
	testimonial.Role = req.Role
	testimonial.Avatar = req.Avatar
	testimonial.Rating = req.Rating

	if err := s.repo.Update(testimonial); err != nil {
		return nil, err
	}

	s.invalidate()
	return testimonial, nil
}

func (s *TestimonialService) Delete(id string) error {
	if _, err := s.GetByID(id); err != nil {
		return err
	}
	if err := s.repo.Delete(id); err != nil {
		return err
	}
	s.invalidate()
	return nil
}

func (s *TestimonialService) invalidate() {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateTestimonials(); err != nil {
		logger.Warn("Failed to invalidate testimonial cache", map[string]interface{}{"error": err.Error()})
	}
}
