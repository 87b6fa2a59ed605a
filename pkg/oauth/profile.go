package oauth

// Profile is the canonical user shape derived from a provider's raw profile
// payload.
type Profile struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Email         string `json:"email"`
	Image         string `json:"image,omitempty"`
	EmailVerified bool   `json:"emailVerified"`
}

// UserInfo pairs the normalized profile with the raw payload it was derived
// from, so callers can reach provider-specific fields without another fetch.
type UserInfo struct {
	User Profile
	Raw  map[string]any
}

// applyOverrides merges caller-supplied profile fields over the defaults,
// field by field; the override wins per field, untouched fields survive.
func applyOverrides(p Profile, overrides map[string]any) Profile {
	for key, value := range overrides {
		switch key {
		case "id":
			if s, ok := value.(string); ok {
				p.ID = s
			}
		case "name":
			if s, ok := value.(string); ok {
				p.Name = s
			}
		case "email":
			if s, ok := value.(string); ok {
				p.Email = s
			}
		case "image":
			if s, ok := value.(string); ok {
				p.Image = s
			}
		case "emailVerified":
			if b, ok := value.(bool); ok {
				p.EmailVerified = b
			}
		}
	}
	return p
}

func stringField(raw map[string]any, key string) string {
	s, _ := raw[key].(string)
	return s
}

func boolField(raw map[string]any, key string) bool {
	b, _ := raw[key].(bool)
	return b
}
