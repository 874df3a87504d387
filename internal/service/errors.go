package service

import "errors"

var (
	ErrPageNotFound        = errors.New("page not found")
	ErrHomePageNotFound    = errors.New("home page not found")
	ErrSlugTaken           = errors.New("slug is already in use")
	ErrTestimonialNotFound = errors.New("testimonial not found")
)
