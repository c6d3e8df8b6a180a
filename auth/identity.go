package auth

// AuthType indicates how a credential was presented.
type AuthType string

const (
	AuthTypeJWTBearer      AuthType = "jwt_bearer"
	AuthTypeBearerToken    AuthType = "bearer_token"
	AuthTypeServiceAccount AuthType = "service_account"
	AuthTypeAPIKey         AuthType = "api_key"
	AuthTypeNone           AuthType = "none"
)

// Claim is the raw identity record produced by a credential extractor.
//
// A Claim is an optimistic reading of request headers, not a trusted
// principal: trust is established separately by the Validator's probe
// connection. Token holds the raw credential and must never be logged.
type Claim struct {
	// UserID is the subject identifier carried by the credential.
	UserID string

	// Username is the display name, when distinct from UserID.
	Username string

	// Token is the raw credential value. Never log this field.
	Token string

	// AuthType indicates which extraction path produced this claim.
	AuthType AuthType

	// Claims holds decoded token claims, when the credential carried any.
	Claims map[string]any
}
