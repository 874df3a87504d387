package repository

import (
	"gorm.io/gorm"

	"carsu-site-backend/internal/models"
)

type TestimonialRepository interface {
	Create(testimonial *models.Testimonial) error
	Update(testimonial *models.Testimonial) error
	Delete(id string) error
	GetByID(id string) (*models.Testimonial, error)
	GetByIDs(ids []string) ([]models.Testimonial, error)
	GetAll() ([]models.Testimonial, error)
}

type testimonialRepository struct {
	db *gorm.DB
}

func NewTestimonialRepository(db *gorm.DB) TestimonialRepository {
	return &testimonialRepository{db: db}
}

func (r *testimonialRepository) Create(testimonial *models.Testimonial) error {
	return r.db.Create(testimonial).Error
}

func (r *testimonialRepository) Update(testimonial *models.Testimonial) error {
	return r.db.Save(testimonial).Error
}

func (r *testimonialRepository) Delete(id string) error {
	return r.db.Unscoped().Delete(&models.Testimonial{}, "id = ?", id).Error
}

func (r *testimonialRepository) GetByID(id string) (*models.Testimonial, error) {
	var testimonial models.Testimonial
	if err := r.db.First(&testimonial, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &testimonial, nil
}

// GetByIDs loads the referenced testimonials preserving the order of ids.
// Missing ids are skipped, not errors; sections degrade instead of failing.
func (r *testimonialRepository) GetByIDs(ids []string) ([]models.Testimonial, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var found []models.Testimonial
	if err := r.db.Where("id IN ?", ids).Find(&found).Error; err != nil {
		return nil, err
	}

	byID := make(map[string]models.Testimonial, len(found))
	for _, testimonial := range found {
		byID[testimonial.ID] = testimonial
	}

	ordered := make([]models.Testimonial, 0, len(ids))
	for _, id := range ids {
		if testimonial, ok := byID[id]; ok {
			ordered = append(ordered, testimonial)
		}
	}
	return ordered, nil
}

func (r *testimonialRepository) GetAll() ([]models.Testimonial, error) {
	var testimonials []models.Testimonial
	if err := r.db.Order("created_at DESC").Find(&testimonials).Error; err != nil {
		return nil, err
	}
	return testimonials, nil
}
