package auth

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/grandaincontri/incontri-backend/internal/repository"
)

// AuthUseCase is the single shared-passcode gate. The passcode is compared
// in cleartext against the configured value; there is no per-user identity,
// no hashing and no rate limit. Known security gap carried over from the
// previous deployment.
type AuthUseCase struct {
	sessions repository.SessionStore
	passcode string
	logger   *slog.Logger
}

func NewAuthUseCase(sessions repository.SessionStore, passcode string, logger *slog.Logger) *AuthUseCase {
	return &AuthUseCase{
		sessions: sessions,
		passcode: passcode,
		logger:   logger,
	}
}

// Login checks the submitted passcode. On match the session is marked
// authenticated and any stale one-shot form state is discarded; on
// mismatch the failure is parked as one-shot form state for the login
// form to replay.
func (uc *AuthUseCase) Login(ctx context.Context, sessionID, passcode string) (bool, error) {
	if strings.TrimSpace(passcode) == uc.passcode {
		if err := uc.sessions.SetAuthenticated(ctx, sessionID); err != nil {
			return false, fmt.Errorf("failed to open admin session: %w", err)
		}
		// Successful login invalidates whatever a failed form left behind.
		if _, err := uc.sessions.PopFormState(ctx, sessionID); err != nil {
			uc.logger.WarnContext(ctx, "failed to clear stale form state", slog.Any("error", err))
		}
		uc.logger.InfoContext(ctx, "admin session opened", slog.String("session_id", sessionID))
		return true, nil
	}

	state := &repository.FormState{
		Values: map[string]string{"txt_password": ""},
		Errors: []string{"Password errata."},
	}
	if err := uc.sessions.PutFormState(ctx, sessionID, state); err != nil {
		uc.logger.WarnContext(ctx, "failed to store login form state", slog.Any("error", err))
	}
	uc.logger.WarnContext(ctx, "admin login rejected", slog.String("session_id", sessionID))
	return false, nil
}

// Logout destroys the session outright.
func (uc *AuthUseCase) Logout(ctx context.Context, sessionID string) error {
	if err := uc.sessions.Destroy(ctx, sessionID); err != nil {
		return fmt.Errorf("failed to close admin session: %w", err)
	}
	uc.logger.InfoContext(ctx, "admin session closed", slog.String("session_id", sessionID))
	return nil
}

// IsAuthenticated resolves the session's admin flag.
func (uc *AuthUseCase) IsAuthenticated(ctx context.Context, sessionID string) (bool, error) {
	return uc.sessions.IsAuthenticated(ctx, sessionID)
}
