package auth

// TokenType is the label returned alongside issued tokens.
const TokenType = "bearer"

// TokenManager abstracts token issuance and verification.
type TokenManager interface {
	Generate(userID string) (string, error)
	Validate(token string) (string, error)
}
