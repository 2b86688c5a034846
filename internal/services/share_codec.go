package services

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"fdweb/internal/models/lead_models"
	"fdweb/pkg/utils"
)

type ShareCodecInterface interface {
	Encode(req lead_models.DiagnosticRequest) (string, error)
	Decode(token string) (lead_models.DiagnosticRequest, error)
	Link(token string) string
}

// ShareCodec turns a lead into a URL-safe token and back. Links produced by
// the older browser build (standard alphabet, padded) still decode.
type ShareCodec struct {
	publicURL string
}

func NewShareCodec(publicURL string) *ShareCodec {
	return &ShareCodec{publicURL: strings.TrimRight(publicURL, "/")}
}

func (c *ShareCodec) Encode(req lead_models.DiagnosticRequest) (string, error) {
	raw, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("encode share token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(raw), nil
}

var shareEncodings = []*base64.Encoding{
	base64.RawURLEncoding,
	base64.URLEncoding,
	base64.StdEncoding,
	base64.RawStdEncoding,
}

func (c *ShareCodec) Decode(token string) (lead_models.DiagnosticRequest, error) {
	var req lead_models.DiagnosticRequest

	// query parsing turns '+' into ' '
	token = strings.ReplaceAll(strings.TrimSpace(token), " ", "+")
	if token == "" {
		return req, fmt.Errorf("%w: empty token", utils.ErrInvalidShareToken)
	}

	raw, err := decodeBase64(token)
	if err != nil {
		return req, fmt.Errorf("%w: %v", utils.ErrInvalidShareToken, err)
	}

	dec := json.NewDecoder(strings.NewReader(string(raw)))
	if err := dec.Decode(&req); err != nil {
		return lead_models.DiagnosticRequest{}, fmt.Errorf("%w: %v", utils.ErrInvalidShareToken, err)
	}
	if dec.More() {
		return lead_models.DiagnosticRequest{}, fmt.Errorf("%w: trailing data", utils.ErrInvalidShareToken)
	}
	if !req.ServiceType.Valid() {
		return lead_models.DiagnosticRequest{}, fmt.Errorf("%w: unknown service type %q", utils.ErrInvalidShareToken, req.ServiceType)
	}
	return req, nil
}

// Link is the public address that opens the results screen for token.
func (c *ShareCodec) Link(token string) string {
	return c.publicURL + "/?lead=" + url.QueryEscape(token)
}

func decodeBase64(token string) ([]byte, error) {
	var lastErr error
	for _, enc := range shareEncodings {
		raw, err := enc.DecodeString(token)
		if err == nil {
			return raw, nil
		}
		lastErr = err
	}
	return nil, lastErr
}
