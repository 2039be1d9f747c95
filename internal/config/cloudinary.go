package config

import (
	"errors"

	"github.com/cloudinary/cloudinary-go/v2"
)

func NewCloudinary(cfg *Config) (*cloudinary.Cloudinary, error) {
	if cfg.CloudinaryURL == "" {
		return nil, errors.New("CLOUDINARY_URL is not set")
	}
	return cloudinary.NewFromURL(cfg.CloudinaryURL)
}
