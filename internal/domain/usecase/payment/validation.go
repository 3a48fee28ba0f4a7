package payment

import (
	"fmt"
	"strings"
	"unicode/utf8"

	errs "github.com/amirhossein-jamali/wallet-funding/internal/domain/error"
	"github.com/amirhossein-jamali/wallet-funding/internal/domain/port/usecase"
)

// validateStart checks a start request and returns the description to record
func (s *Service) validateStart(req usecase.StartPaymentRequest) (string, error) {
	if req.Amount < s.cfg.MinAmount {
		return "", errs.NewValidationError("amount", fmt.Sprintf("must be an integer of at least %d", s.cfg.MinAmount))
	}
	if err := s.checkMaxAmount(req.Amount); err != nil {
		return "", err
	}
	return normalizeDescription(req.Description, DefaultStartDescription)
}

// validateRecharge checks an admin recharge request and returns the description to record
func (s *Service) validateRecharge(req usecase.AdminRechargeRequest) (string, error) {
	if req.UserID == 0 {
		return "", errs.NewValidationError("user_id", "must be a positive integer")
	}
	if req.Amount < s.cfg.AdminMinAmount {
		return "", errs.NewValidationError("amount", fmt.Sprintf("must be an integer of at least %d", s.cfg.AdminMinAmount))
	}
	if err := s.checkMaxAmount(req.Amount); err != nil {
		return "", err
	}
	return normalizeDescription(req.Description, DefaultRechargeDescription)
}

func (s *Service) checkMaxAmount(amount int64) error {
	if amount > s.cfg.MaxAmount {
		return errs.NewValidationError("amount", fmt.Sprintf("must not exceed %d", s.cfg.MaxAmount))
	}
	return nil
}

func normalizeDescription(description, fallback string) (string, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return fallback, nil
	}
	if utf8.RuneCountInString(description) > MaxDescriptionLength {
		return "", errs.NewValidationError("description", fmt.Sprintf("must not exceed %d characters", MaxDescriptionLength))
	}
	return description, nil
}
