package utils

import "net/url"

// RandomAvatar returns a DiceBear avatar URL seeded by the user's name, used
// as the default profile picture at signup.
func RandomAvatar(name string) string {
	return "https://api.dicebear.com/9.x/avataaars/svg?seed=" + url.QueryEscape(name)
}
