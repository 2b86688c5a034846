package services

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fdweb/internal/models/lead_models"
	"fdweb/pkg/utils"
)

func TestShareCodecRoundTrip(t *testing.T) {
	codec := NewShareCodec("https://fddeveloperweb.com.br/")

	withContent := sampleLead("FD-4821", lead_models.ServiceEcommerce)
	withContent.UserName = "Café & Ação Ltda"
	withContent.AIContent = &lead_models.AIPageContent{
		Title:          "Café & Ação",
		PrimaryColor:   "#22d3ee",
		SecondaryColor: "#3b82f6",
		Headline:       "O melhor café da ilha",
		Subheadline:    "Torrado em Florianópolis",
		Strategy:       []string{"Google Maps", "Instagram", "Delivery"},
		DashboardStats: []lead_models.DashboardStat{{Label: "Pedidos", Value: "120", Trend: "+12%"}},
		Testimonial:    &lead_models.Testimonial{Name: "Ana", Text: "Excelente"},
	}

	for _, lead := range []lead_models.DiagnosticRequest{
		sampleLead("FD-1000", lead_models.ServiceSite),
		withContent,
	} {
		token, err := codec.Encode(lead)
		require.NoError(t, err)
		assert.NotContains(t, token, "+")
		assert.NotContains(t, token, "/")
		assert.NotContains(t, token, "=")

		got, err := codec.Decode(token)
		require.NoError(t, err)
		assert.Equal(t, lead, got)
	}
}

func TestShareCodecAcceptsStandardBase64(t *testing.T) {
	codec := NewShareCodec("")
	raw := `{"id":"FD-7777","userName":"Barbearia Zé","niche":"Barbearia","city":"Blumenau","state":"SC","cityPopulation":200000,"hasSite":"no","goal":"all","budget":500,"serviceType":"site"}`
	token := base64.StdEncoding.EncodeToString([]byte(raw))

	got, err := codec.Decode(token)
	require.NoError(t, err)
	assert.Equal(t, "FD-7777", got.ID)
	assert.Equal(t, "Barbearia Zé", got.UserName)
	assert.Equal(t, 200000, got.CityPopulation)
}

func TestShareCodecRestoresPlusFromQuery(t *testing.T) {
	codec := NewShareCodec("")
	lead := sampleLead("FD-1234", lead_models.ServiceSystem)
	lead.UserName = "ÿÿÿ>>>???"

	token, err := codec.Encode(lead)
	require.NoError(t, err)
	std := base64.StdEncoding.EncodeToString([]byte(mustDecodeRawURL(t, token)))

	got, err := codec.Decode(replacePlus(std))
	require.NoError(t, err)
	assert.Equal(t, lead, got)
}

func TestShareCodecRejectsGarbage(t *testing.T) {
	codec := NewShareCodec("")

	for _, token := range []string{
		"",
		"%%%not-base64%%%",
		base64.RawURLEncoding.EncodeToString([]byte("not json")),
		base64.RawURLEncoding.EncodeToString([]byte("null")),
		base64.RawURLEncoding.EncodeToString([]byte(`{"id":"FD-1","serviceType":"kiosk"}`)),
		base64.RawURLEncoding.EncodeToString([]byte(`{"serviceType":"site"} {}`)),
	} {
		_, err := codec.Decode(token)
		assert.ErrorIs(t, err, utils.ErrInvalidShareToken, "token %q", token)
	}
}

func TestShareCodecLink(t *testing.T) {
	codec := NewShareCodec("https://fddeveloperweb.com.br/")
	assert.Equal(t, "https://fddeveloperweb.com.br/?lead=abc_-", codec.Link("abc_-"))
}

func mustDecodeRawURL(t *testing.T, token string) string {
	t.Helper()
	raw, err := base64.RawURLEncoding.DecodeString(token)
	require.NoError(t, err)
	return string(raw)
}

// replacePlus mimics a query string decoder turning '+' into spaces.
func replacePlus(s string) string {
	out := []byte(s)
	for i := range out {
		if out[i] == '+' {
			out[i] = ' '
		}
	}
	return string(out)
}
