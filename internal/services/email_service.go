// file: internal/services/email_service.go
package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// emailService implements the EmailService interface. Delivery is not in
// scope, so this implementation only records the intent in the log; a real
// provider slots in behind the same interface.
type emailService struct {
	logger *zap.Logger
}

// NewEmailService creates a new instance of EmailService.
func NewEmailService(logger *zap.Logger) EmailService {
	return &emailService{
		logger: logger,
	}
}

// SendWelcomeEmail sends the post-registration welcome message.
func (s *emailService) SendWelcomeEmail(ctx context.Context, to string, fullName string) error {
	if to == "" {
		return fmt.Errorf("recipient address is required")
	}

	s.logger.Info("Sending welcome email",
		zap.String("to", to),
		zap.String("full_name", fullName),
	)
	return nil
}
