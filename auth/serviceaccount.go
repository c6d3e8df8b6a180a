package auth

// ServiceAccountExtractor reads service-account credentials from the
// X-Service-Account and X-Service-Token headers. Both are required; absence
// of either yields no claim.
type ServiceAccountExtractor struct{}

// Name returns "service_account".
func (e *ServiceAccountExtractor) Name() string {
	return "service_account"
}

// Extract returns the service-account claim, or nil.
func (e *ServiceAccountExtractor) Extract(h Headers) *Claim {
	account := h.Get("x-service-account")
	token := h.Get("x-service-token")
	if account == "" || token == "" {
		return nil
	}
	return &Claim{
		UserID:   account,
		Username: account,
		Token:    token,
		AuthType: AuthTypeServiceAccount,
	}
}
