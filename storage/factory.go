package storage

// NewProvider picks the storage backend: "local" (the default when provider
// is empty) or "cloudinary".
func NewProvider(provider, publicBase, cloudinaryURL string) (Provider, error) {
	if provider == "" || provider == "local" {
		if publicBase == "" {
			publicBase = "http://localhost:8080"
		}
		return NewLocalProvider("./uploads", publicBase, "/uploads"), nil
	}
	return NewCloudinaryProviderFromURL(cloudinaryURL)
}
