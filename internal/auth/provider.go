package auth

import (
	"strings"
	"time"

	"github.com/sutapaslibrary/library-server/internal/domain"
	domainerrors "github.com/sutapaslibrary/library-server/internal/errors"
)

// DefaultAdminEmail is the single privileged account unless configured otherwise.
const DefaultAdminEmail = "sutapajana353@gmail.com"

// Session is an issued session token and the identity it resolves to.
type Session struct {
	ExpiresAt time.Time        `json:"expiresAt"`
	Identity  *domain.Identity `json:"identity"`
	Token     string           `json:"token"`
}

// Provider is the identity provider. It issues session tokens for an
// {email, name} pair and resolves tokens back to identities, assigning the
// admin role to exactly one configured email.
type Provider struct {
	tokens     *TokenService
	adminEmail string
}

// NewProvider creates a provider. The admin comparison is exact and
// case-sensitive.
func NewProvider(tokens *TokenService, adminEmail string) *Provider {
	if adminEmail == "" {
		adminEmail = DefaultAdminEmail
	}
	return &Provider{tokens: tokens, adminEmail: adminEmail}
}

// AdminEmail returns the privileged email.
func (p *Provider) AdminEmail() string {
	return p.adminEmail
}

// Resolve builds the identity for an email and display name.
func (p *Provider) Resolve(email, name string) *domain.Identity {
	role := domain.RoleMember
	if email == p.adminEmail {
		role = domain.RoleAdmin
	}
	if strings.TrimSpace(name) == "" {
		name, _, _ = strings.Cut(email, "@")
	}
	return &domain.Identity{Email: email, Name: name, Role: role}
}

// SignIn issues a session for email and name. No credential is checked.
func (p *Provider) SignIn(email, name string) (*Session, error) {
	ident := p.Resolve(email, name)

	token, expires, err := p.tokens.Generate(ident.Email, ident.Name)
	if err != nil {
		return nil, domainerrors.Wrap(err, domainerrors.CodeInternal, "failed to issue session")
	}

	return &Session{Token: token, ExpiresAt: expires, Identity: ident}, nil
}

// Authenticate resolves a bearer token to an identity.
func (p *Provider) Authenticate(token string) (*domain.Identity, error) {
	claims, err := p.tokens.Verify(token)
	if err != nil {
		return nil, domainerrors.Unauthorized("invalid or expired session").WithCause(err)
	}
	return p.Resolve(claims.Email, claims.Name), nil
}
