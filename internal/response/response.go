// file: internal/response/response.go
package response

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"finlit/internal/contextutils"
	"finlit/internal/services"

	"go.uber.org/zap"
)

// ===============================
// RESPONSE TYPES
// ===============================

// APIResponse is the envelope every JSON endpoint returns.
type APIResponse struct {
	Success   bool         `json:"success"`
	Data      any          `json:"data,omitempty"`
	Error     *ErrorDetail `json:"error,omitempty"`
	RequestID string       `json:"request_id,omitempty"`
	Timestamp int64        `json:"timestamp,omitempty"`
	Version   string       `json:"version,omitempty"`
}

// ErrorDetail carries error information in API responses.
type ErrorDetail struct {
	Type    string         `json:"type"`
	Message string         `json:"message"`
	Code    string         `json:"code,omitempty"`
	Details map[string]any `json:"details,omitempty"`
}

// Config holds configuration for the response system.
type Config struct {
	PrettyJSON         bool
	APIVersion         string
	MaskInternalErrors bool
}

// DefaultConfig returns production-ready response configuration.
func DefaultConfig() *Config {
	return &Config{
		PrettyJSON:         false,
		APIVersion:         "v1",
		MaskInternalErrors: true,
	}
}

// ===============================
// RESPONSE BUILDER
// ===============================

// Builder constructs and writes standardized responses.
type Builder struct {
	config *Config
	logger *zap.Logger
}

// NewBuilder creates a new response builder.
func NewBuilder(config *Config, logger *zap.Logger) *Builder {
	if config == nil {
		config = DefaultConfig()
	}
	return &Builder{
		config: config,
		logger: logger,
	}
}

// Success creates a successful API response.
func (b *Builder) Success(ctx context.Context, data any) *APIResponse {
	return &APIResponse{
		Success:   true,
		Data:      data,
		RequestID: contextutils.GetRequestID(ctx),
		Timestamp: time.Now().Unix(),
		Version:   b.config.APIVersion,
	}
}

// Error creates an error response from a service error.
func (b *Builder) Error(ctx context.Context, err error) *APIResponse {
	detail := b.convertError(err)
	b.logError(ctx, err, detail)

	return &APIResponse{
		Success:   false,
		Error:     detail,
		RequestID: contextutils.GetRequestID(ctx),
		Timestamp: time.Now().Unix(),
		Version:   b.config.APIVersion,
	}
}

// ===============================
// HTTP RESPONSE WRITERS
// ===============================

// WriteJSON writes a JSON response with appropriate headers.
func (b *Builder) WriteJSON(w http.ResponseWriter, r *http.Request, resp *APIResponse, statusCode int) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(statusCode)

	encoder := json.NewEncoder(w)
	if b.config.PrettyJSON {
		encoder.SetIndent("", "  ")
	}
	if err := encoder.Encode(resp); err != nil {
		b.logger.Error("Failed to encode JSON response",
			zap.Error(err),
			zap.String("request_id", contextutils.GetRequestID(r.Context())),
		)
	}
}

// WriteSuccess writes a 200 response.
func (b *Builder) WriteSuccess(w http.ResponseWriter, r *http.Request, data any) {
	b.WriteJSON(w, r, b.Success(r.Context(), data), http.StatusOK)
}

// WriteCreated writes a 201 response.
func (b *Builder) WriteCreated(w http.ResponseWriter, r *http.Request, data any) {
	b.WriteJSON(w, r, b.Success(r.Context(), data), http.StatusCreated)
}

// WriteError writes an error response with its mapped status code.
func (b *Builder) WriteError(w http.ResponseWriter, r *http.Request, err error) {
	resp := b.Error(r.Context(), err)
	b.WriteJSON(w, r, resp, services.GetServiceError(err).GetStatusCode())
}

// ===============================
// UTILITY METHODS
// ===============================

// convertError maps any error onto the wire shape, masking internals.
func (b *Builder) convertError(err error) *ErrorDetail {
	serviceErr := services.GetServiceError(err)
	detail := &ErrorDetail{
		Type:    serviceErr.Type,
		Message: serviceErr.Message,
		Code:    serviceErr.Code,
		Details: serviceErr.Details,
	}
	if b.config.MaskInternalErrors && serviceErr.Type == "INTERNAL_ERROR" {
		detail.Message = "An internal error occurred"
		detail.Details = nil
	}
	return detail
}

// logError logs at a level appropriate to the error class.
func (b *Builder) logError(ctx context.Context, err error, detail *ErrorDetail) {
	requestID := contextutils.GetRequestID(ctx)

	switch detail.Type {
	case "VALIDATION_ERROR", "BUSINESS_ERROR", "CONFLICT":
		b.logger.Warn("Request error",
			zap.String("request_id", requestID),
			zap.String("error_type", detail.Type),
			zap.String("error_code", detail.Code),
			zap.String("error_message", detail.Message),
		)
	case "INTERNAL_ERROR", "SERVICE_UNAVAILABLE":
		b.logger.Error("Internal error",
			zap.String("request_id", requestID),
			zap.String("error_type", detail.Type),
			zap.Error(err),
		)
	default:
		b.logger.Info("Request completed with error",
			zap.String("request_id", requestID),
			zap.String("error_type", detail.Type),
			zap.String("error_message", detail.Message),
		)
	}
}
