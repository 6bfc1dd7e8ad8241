package storage

import (
	"context"
	"fmt"
	"mime/multipart"
	"path/filepath"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// CloudinaryProvider uploads profile pictures to Cloudinary.
type CloudinaryProvider struct {
	cld *cloudinary.Cloudinary
}

func NewCloudinaryProviderFromURL(cloudinaryURL string) (*CloudinaryProvider, error) {
	if cloudinaryURL == "" {
		return nil, fmt.Errorf("CLOUDINARY_URL required")
	}
	cld, err := cloudinary.NewFromURL(cloudinaryURL)
	if err != nil {
		return nil, err
	}
	return &CloudinaryProvider{cld: cld}, nil
}

func (p *CloudinaryProvider) Upload(file multipart.File, filename string) (string, error) {
	publicID := filenameWithoutExt(filename)

	// Overwrite is a *bool in the SDK, so pass a pointer.
	overwrite := true
	resp, err := p.cld.Upload.Upload(context.Background(), file, uploader.UploadParams{
		PublicID:  publicID,
		Overwrite: &overwrite,
	})
	if err != nil {
		return "", err
	}
	if resp.SecureURL != "" {
		return resp.SecureURL, nil
	}
	if resp.URL != "" {
		return resp.URL, nil
	}
	return "", fmt.Errorf("cloudinary upload returned empty url")
}

func filenameWithoutExt(fn string) string {
	ext := filepath.Ext(fn)
	if ext == "" {
		return fn
	}
	return fn[:len(fn)-len(ext)]
}
