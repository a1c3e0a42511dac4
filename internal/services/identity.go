package services

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	domainagg "github.com/yungbote/slotswapper-backend/internal/domain/aggregates"
	"github.com/yungbote/slotswapper-backend/internal/platform/ctxutil"
	"github.com/yungbote/slotswapper-backend/internal/platform/logger"
)

const opAuthenticate = "Identity.Authenticate"

// IdentityProvider turns a bearer token into the caller's user id.
type IdentityProvider interface {
	Authenticate(ctx context.Context, token string) (uint, error)
	SetContextFromToken(ctx context.Context, token string) (context.Context, error)
	IssueToken(userID uint, ttl time.Duration) (string, error)
}

// JWTClaims accepts the user id either as the registered subject or as a
// numeric user_id claim.
type JWTClaims struct {
	UserID any `json:"user_id,omitempty"`
	jwt.RegisteredClaims
}

type jwtIdentityProvider struct {
	log       *logger.Logger
	secretKey []byte
	issuer    string
}

func NewIdentityProvider(log *logger.Logger, secretKey, issuer string) IdentityProvider {
	return &jwtIdentityProvider{
		log:       log.With("service", "IdentityProvider"),
		secretKey: []byte(secretKey),
		issuer:    strings.TrimSpace(issuer),
	}
}

func (p *jwtIdentityProvider) Authenticate(ctx context.Context, token string) (uint, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return 0, unauthenticated("missing token", nil)
	}
	if len(p.secretKey) == 0 {
		return 0, unauthenticated("token verification not configured", nil)
	}

	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})}
	if p.issuer != "" {
		opts = append(opts, jwt.WithIssuer(p.issuer))
	}
	parsed, err := jwt.ParseWithClaims(token, &JWTClaims{}, func(t *jwt.Token) (interface{}, error) {
		return p.secretKey, nil
	}, opts...)
	if err != nil {
		p.log.Debug("Rejected token", "error", err)
		return 0, unauthenticated("invalid or expired token", err)
	}
	claims, ok := parsed.Claims.(*JWTClaims)
	if !ok || !parsed.Valid {
		return 0, unauthenticated("invalid or expired token", nil)
	}
	userID, err := claims.userID()
	if err != nil {
		return 0, unauthenticated("invalid user id in token", err)
	}
	return userID, nil
}

func (p *jwtIdentityProvider) SetContextFromToken(ctx context.Context, token string) (context.Context, error) {
	userID, err := p.Authenticate(ctx, token)
	if err != nil {
		return ctx, err
	}
	return ctxutil.WithRequestData(ctx, &ctxutil.RequestData{
		TokenString: token,
		UserID:      userID,
	}), nil
}

func (p *jwtIdentityProvider) IssueToken(userID uint, ttl time.Duration) (string, error) {
	if userID == 0 {
		return "", fmt.Errorf("user id required")
	}
	now := time.Now()
	claims := JWTClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:  strconv.FormatUint(uint64(userID), 10),
			Issuer:   p.issuer,
			IssuedAt: jwt.NewNumericDate(now),
		},
	}
	if ttl != 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(ttl))
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(p.secretKey)
}

func (c *JWTClaims) userID() (uint, error) {
	raw := strings.TrimSpace(c.Subject)
	if raw == "" && c.UserID != nil {
		switch v := c.UserID.(type) {
		case float64:
			if v <= 0 || v != float64(uint64(v)) {
				return 0, fmt.Errorf("bad user_id claim %v", v)
			}
			return uint(v), nil
		case string:
			raw = strings.TrimSpace(v)
		default:
			return 0, fmt.Errorf("unsupported user_id claim type %T", v)
		}
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("bad subject %q", raw)
	}
	return uint(id), nil
}

func unauthenticated(msg string, cause error) error {
	return domainagg.NewError(domainagg.CodeUnauthenticated, opAuthenticate, msg, cause)
}

// callerID returns the authenticated user of ctx.
func callerID(ctx context.Context, op string) (uint, error) {
	id := ctxutil.UserID(ctx)
	if id == 0 {
		return 0, domainagg.NewError(domainagg.CodeUnauthenticated, op, "authentication required", nil)
	}
	return id, nil
}
