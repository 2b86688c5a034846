package utils

import "errors"

var (
	ErrSessionNotFound    = errors.New("diagnostic session not found")
	ErrStepIncomplete     = errors.New("current step is incomplete")
	ErrInvalidTransition  = errors.New("invalid step transition")
	ErrResetNotConfirmed  = errors.New("reset requires explicit confirmation")
	ErrInvalidShareToken  = errors.New("invalid share token")
	ErrStorageUnavailable = errors.New("storage unavailable")
	ErrInvalidInput       = errors.New("invalid input")
	ErrTaskNotFound       = errors.New("enrichment task not found")

	ErrNoContentGenerated = errors.New("no content generated")
	ErrImageUnsupported   = errors.New("image generation not supported by provider")
	ErrProviderDisabled   = errors.New("enrichment provider not configured")
)
