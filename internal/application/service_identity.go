package application

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/viralforge/campaign-marketplace/internal/domain"
	"github.com/viralforge/campaign-marketplace/internal/ports"
)

func (s *Service) ValidateToken(ctx context.Context, token string) (ports.AuthClaims, error) {
	if strings.TrimSpace(token) == "" {
		return ports.AuthClaims{}, domain.ErrUnauthorized
	}
	claims, err := s.verifier.Verify(ctx, token)
	if err != nil {
		return ports.AuthClaims{}, domain.ErrUnauthorized
	}
	if claims.TokenIdentifier == "" {
		return ports.AuthClaims{}, domain.ErrUnauthorized
	}
	return claims, nil
}

// EnsureUser resolves the caller, creating the user row on first contact.
func (s *Service) EnsureUser(ctx context.Context, claims ports.AuthClaims) (UserResponse, error) {
	user, err := s.ensureUser(ctx, claims)
	if err != nil {
		return UserResponse{}, err
	}
	return toUserResponse(user), nil
}

// CurrentUser resolves the caller without creating anything.
func (s *Service) CurrentUser(ctx context.Context, claims ports.AuthClaims) (UserResponse, error) {
	user, err := s.currentUser(ctx, claims)
	if err != nil {
		return UserResponse{}, err
	}
	return toUserResponse(user), nil
}

func (s *Service) LookupUserByEmail(ctx context.Context, email string) (UserResponse, error) {
	email = domain.NormalizeEmail(email)
	if err := domain.ValidateRequired("email", email); err != nil {
		return UserResponse{}, err
	}
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return UserResponse{}, err
	}
	return toUserResponse(user), nil
}

func (s *Service) currentUser(ctx context.Context, claims ports.AuthClaims) (domain.User, error) {
	if claims.TokenIdentifier == "" {
		return domain.User{}, domain.ErrUnauthorized
	}
	return s.users.GetByTokenIdentifier(ctx, claims.TokenIdentifier)
}

// ensureUser looks up by token identifier first. A legacy row matched by
// email is adopted only while it has no token of its own. New rows take their
// role from the verified claim and keep it for life.
func (s *Service) ensureUser(ctx context.Context, claims ports.AuthClaims) (domain.User, error) {
	user, err := s.currentUser(ctx, claims)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return domain.User{}, err
	}

	now := s.nowFn()
	if email := domain.NormalizeEmail(claims.Email); email != "" {
		legacy, lookupErr := s.users.GetByEmail(ctx, email)
		switch {
		case lookupErr == nil:
			if legacy.TokenIdentifier != "" {
				return domain.User{}, fmt.Errorf("%w: email is bound to another identity", domain.ErrConflict)
			}
			bound, bindErr := s.users.BindTokenIdentifier(ctx, legacy.UserID, claims.TokenIdentifier, now)
			if errors.Is(bindErr, domain.ErrConflict) {
				if winner, rereadErr := s.currentUser(ctx, claims); rereadErr == nil {
					return winner, nil
				}
			}
			return bound, bindErr
		case !errors.Is(lookupErr, domain.ErrNotFound):
			return domain.User{}, lookupErr
		}
	}

	if strings.TrimSpace(claims.Role) == "" {
		return domain.User{}, fmt.Errorf("%w: role claim is required to create a user", domain.ErrInvalidInput)
	}
	role, err := domain.ParseRole(claims.Role)
	if err != nil {
		return domain.User{}, err
	}
	created, err := s.users.Create(ctx, ports.CreateUserParams{
		TokenIdentifier: claims.TokenIdentifier,
		Email:           claims.Email,
		Role:            role,
		CreatedAt:       now,
	})
	if errors.Is(err, domain.ErrConflict) {
		if winner, rereadErr := s.currentUser(ctx, claims); rereadErr == nil {
			return winner, nil
		}
	}
	return created, err
}

type identityUserCreatedEvent struct {
	EventID   string `json:"event_id"`
	EventType string `json:"event_type"`
	Data      struct {
		TokenIdentifier string `json:"token_identifier"`
		Subject         string `json:"subject"`
		Issuer          string `json:"issuer"`
		Email           string `json:"email"`
		Role            string `json:"role"`
	} `json:"data"`
}

// HandleIdentityUserCreated applies a server-to-server user creation event
// from the identity provider. Replays of the same event id are ignored.
func (s *Service) HandleIdentityUserCreated(ctx context.Context, payload []byte) error {
	var evt identityUserCreatedEvent
	if err := json.Unmarshal(payload, &evt); err != nil {
		return fmt.Errorf("%w: invalid %s payload", domain.ErrInvalidInput, domain.EventIdentityUserCreated)
	}
	if err := domain.ValidateRequired("event_id", evt.EventID); err != nil {
		return err
	}
	dup, err := s.eventDedup.IsDuplicate(ctx, evt.EventID, s.nowFn())
	if err != nil {
		return err
	}
	if dup {
		return nil
	}

	tokenIdentifier := strings.TrimSpace(evt.Data.TokenIdentifier)
	if tokenIdentifier == "" && evt.Data.Subject != "" {
		tokenIdentifier = evt.Data.Subject
		if evt.Data.Issuer != "" {
			tokenIdentifier = evt.Data.Issuer + "|" + evt.Data.Subject
		}
	}
	if tokenIdentifier == "" {
		return fmt.Errorf("%w: token_identifier or subject is required", domain.ErrInvalidInput)
	}
	if _, err := s.ensureUser(ctx, ports.AuthClaims{
		TokenIdentifier: tokenIdentifier,
		Subject:         evt.Data.Subject,
		Email:           evt.Data.Email,
		Role:            evt.Data.Role,
	}); err != nil {
		return err
	}
	return s.eventDedup.MarkProcessed(ctx, evt.EventID, domain.EventIdentityUserCreated, s.nowFn().Add(s.cfg.EventDedupTTL))
}
