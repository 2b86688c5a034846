package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fdweb/internal/models/lead_models"
	"fdweb/pkg/utils"
)

func newResultsService() *ResultsService {
	return NewResultsService(
		NewROIService(lead_models.DefaultServiceCatalog()),
		NewShareCodec("https://fddeveloperweb.com.br"),
		NewHandoffService("5548999019525", "Cleber"),
	)
}

func TestResultsServiceFromTokenRecomputesROI(t *testing.T) {
	svc := newResultsService()
	lead := sampleLead("FD-4821", lead_models.ServiceSite)

	shared, err := svc.Share(lead)
	require.NoError(t, err)
	assert.Equal(t, "https://fddeveloperweb.com.br/?lead="+shared.Token, shared.URL)

	got, err := svc.FromToken(shared.Token)
	require.NoError(t, err)
	assert.Equal(t, lead, got.Lead)
	assert.Equal(t, "R$\u00a08.400,00", got.ROI.EstimatedRevenue)
	assert.Equal(t, shared.Token, got.ShareToken)
	assert.Contains(t, got.WhatsAppURL, "https://wa.me/5548999019525?text=")
}

func TestResultsServiceRejectsBadToken(t *testing.T) {
	_, err := newResultsService().FromToken("garbage!!")
	assert.ErrorIs(t, err, utils.ErrInvalidShareToken)
}
