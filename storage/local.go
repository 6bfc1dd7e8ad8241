package storage

import (
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
)

// LocalProvider writes uploads to a directory served as static files.
type LocalProvider struct {
	UploadDir   string
	PublicBase  string
	PublicRoute string
}

func NewLocalProvider(uploadDir, publicBase, publicRoute string) *LocalProvider {
	_ = os.MkdirAll(uploadDir, os.ModePerm)
	return &LocalProvider{
		UploadDir:   uploadDir,
		PublicBase:  publicBase,
		PublicRoute: publicRoute,
	}
}

func (p *LocalProvider) Upload(file multipart.File, filename string) (string, error) {
	dstPath := filepath.Join(p.UploadDir, filename)

	dst, err := os.Create(dstPath)
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return "", err
	}
	if _, err := io.Copy(dst, file); err != nil {
		return "", err
	}

	return p.PublicBase + p.PublicRoute + "/" + filename, nil
}
