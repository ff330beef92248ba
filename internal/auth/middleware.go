package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/credential-gateway/internal/domain"
	apperrors "github.com/spec-kit/credential-gateway/pkg/util/errorutil"
)

const identityKey = "auth_identity"

// DefaultTokenParam is the query parameter carrying the access token.
const DefaultTokenParam = "token"

// Messages returned by the guard. The cause of a verification failure is never exposed.
const (
	MsgTokenMissing = "access token not provided"
	MsgTokenInvalid = "invalid access token"
)

// AccessGuard verifies the request-supplied token before protected handlers run.
type AccessGuard struct {
	tokens     *TokenManager
	tokenParam string
}

// NewAccessGuard constructs the guard. An empty param falls back to DefaultTokenParam.
func NewAccessGuard(tokens *TokenManager, tokenParam string) *AccessGuard {
	if tokenParam == "" {
		tokenParam = DefaultTokenParam
	}
	return &AccessGuard{tokens: tokens, tokenParam: tokenParam}
}

// Authenticate turns a raw token into an identity. An empty token counts as absent.
func (g *AccessGuard) Authenticate(token string) (domain.Identity, error) {
	if token == "" {
		return domain.Identity{}, apperrors.NewUnauthorized(MsgTokenMissing)
	}
	claims, err := g.tokens.ParseToken(token)
	if err != nil {
		return domain.Identity{}, apperrors.NewUnauthorized(MsgTokenInvalid)
	}
	return domain.Identity{Subject: claims.Subject}, nil
}

// Handle enforces authentication for protected routes.
func (g *AccessGuard) Handle(c *fiber.Ctx) error {
	identity, err := g.Authenticate(c.Query(g.tokenParam))
	if err != nil {
		return err
	}
	c.Locals(identityKey, identity)
	return c.Next()
}

// IdentityFromContext retrieves the authenticated caller.
func IdentityFromContext(c *fiber.Ctx) (domain.Identity, bool) {
	identity, ok := c.Locals(identityKey).(domain.Identity)
	return identity, ok
}
