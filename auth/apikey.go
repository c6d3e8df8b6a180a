package auth

// APIKeyExtractor reads an API key from the X-Api-Key header. The user id
// comes from X-User-Id when present, else it is derived deterministically
// from the key so the same key always maps to the same pseudo-identity.
type APIKeyExtractor struct{}

// Name returns "api_key".
func (e *APIKeyExtractor) Name() string {
	return "api_key"
}

// Extract returns the API-key claim, or nil.
func (e *APIKeyExtractor) Extract(h Headers) *Claim {
	key := h.Get("x-api-key")
	if key == "" {
		return nil
	}
	userID := h.Get("x-user-id")
	if userID == "" {
		userID = pseudoIdentity("api_user", key)
	}
	return &Claim{
		UserID:   userID,
		Username: userID,
		Token:    key,
		AuthType: AuthTypeAPIKey,
	}
}
