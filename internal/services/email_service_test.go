// file: internal/services/email_service_test.go
package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestSendWelcomeEmail(t *testing.T) {
	logger, _ := zap.NewDevelopment()
	defer logger.Sync()

	service := NewEmailService(logger)

	err := service.SendWelcomeEmail(context.Background(), "test@example.com", "Test User")

	assert.NoError(t, err, "SendWelcomeEmail should not return an error")
}

func TestSendWelcomeEmailRequiresRecipient(t *testing.T) {
	logger, _ := zap.NewDevelopment()
	defer logger.Sync()

	service := NewEmailService(logger)

	err := service.SendWelcomeEmail(context.Background(), "", "Test User")

	assert.Error(t, err, "SendWelcomeEmail should require a recipient")
}
