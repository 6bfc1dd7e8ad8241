package storage

import "mime/multipart"

// Provider stores profile pictures (locally or in the cloud).
type Provider interface {
	// Upload stores the file under filename and returns its public URL.
	Upload(file multipart.File, filename string) (string, error)
}
