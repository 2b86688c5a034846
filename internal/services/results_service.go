package services

import (
	"fdweb/internal/models/lead_models"
	"fdweb/internal/models/response_models"
)

type ResultsServiceInterface interface {
	Build(lead lead_models.DiagnosticRequest) (*response_models.DiagnosticResultResponse, error)
	FromToken(token string) (*response_models.DiagnosticResultResponse, error)
	Share(lead lead_models.DiagnosticRequest) (*response_models.ShareTokenResponse, error)
}

// ResultsService assembles the results screen: the lead, its ROI, the share
// link and the WhatsApp handoff.
type ResultsService struct {
	roi     ROIServiceInterface
	codec   ShareCodecInterface
	handoff HandoffServiceInterface
}

func NewResultsService(roi ROIServiceInterface, codec ShareCodecInterface, handoff HandoffServiceInterface) *ResultsService {
	return &ResultsService{roi: roi, codec: codec, handoff: handoff}
}

func (s *ResultsService) Build(lead lead_models.DiagnosticRequest) (*response_models.DiagnosticResultResponse, error) {
	token, err := s.codec.Encode(lead)
	if err != nil {
		return nil, err
	}
	return &response_models.DiagnosticResultResponse{
		Lead:        lead,
		ROI:         s.roi.Estimate(lead),
		ShareToken:  token,
		ShareURL:    s.codec.Link(token),
		WhatsAppURL: s.handoff.LeadLink(lead),
	}, nil
}

// FromToken reopens a shared diagnosis. The ROI is recomputed, never read
// from the token.
func (s *ResultsService) FromToken(token string) (*response_models.DiagnosticResultResponse, error) {
	lead, err := s.codec.Decode(token)
	if err != nil {
		return nil, err
	}
	return s.Build(lead)
}

func (s *ResultsService) Share(lead lead_models.DiagnosticRequest) (*response_models.ShareTokenResponse, error) {
	token, err := s.codec.Encode(lead)
	if err != nil {
		return nil, err
	}
	return &response_models.ShareTokenResponse{Token: token, URL: s.codec.Link(token)}, nil
}
