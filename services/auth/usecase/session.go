package usecase

import (
	"context"
	"fmt"

	"github.com/piresc/secureword/internal/pkg/models"
	"github.com/piresc/secureword/services/auth"
)

// ValidateSession accepts only signed session tokens
func (uc *AuthUC) ValidateSession(_ context.Context, token string) (*models.SessionInfo, error) {
	return uc.validateStage(token, models.StageSession)
}

// ValidatePending accepts only signed MFA-pending markers
func (uc *AuthUC) ValidatePending(_ context.Context, token string) (*models.SessionInfo, error) {
	return uc.validateStage(token, models.StagePending)
}

func (uc *AuthUC) validateStage(token, stage string) (*models.SessionInfo, error) {
	claims, err := uc.signer.ValidateToken(token, uc.nowF())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", auth.ErrSessionInvalid, err)
	}
	if claims.Stage != stage {
		return nil, fmt.Errorf("%w: stage %q", auth.ErrSessionInvalid, claims.Stage)
	}

	return &models.SessionInfo{
		Username:  claims.Username,
		Stage:     claims.Stage,
		TokenID:   claims.ID,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}
