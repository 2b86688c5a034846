package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"fdweb/internal/metrics"
	"fdweb/internal/models/lead_models"
	resp "fdweb/internal/models/response_models"
	"fdweb/pkg/utils"
)

const (
	opMarket = "market"
	opMockup = "mockup"
	opImage  = "image"
	opRefine = "refine"

	defaultEnrichmentTimeout = 30 * time.Second
)

// EnrichmentServiceInterface never fails: every provider problem is answered
// with fallback content.
type EnrichmentServiceInterface interface {
	AnalyzeMarket(ctx context.Context, niche, city, state string) *resp.MarketAnalysis
	GenerateMockupContent(ctx context.Context, businessName, niche string, serviceType lead_models.ServiceType, city string) *lead_models.AIPageContent
	RefineContent(ctx context.Context, current lead_models.AIPageContent, instruction, locationContext string) *lead_models.AIPageContent
}

type EnrichmentService struct {
	client  utils.GenerativeClientInterface
	timeout time.Duration
	logger  *zap.Logger
}

func NewEnrichmentService(client utils.GenerativeClientInterface, timeout time.Duration, logger *zap.Logger) *EnrichmentService {
	if timeout <= 0 {
		timeout = defaultEnrichmentTimeout
	}
	return &EnrichmentService{client: client, timeout: timeout, logger: logger}
}

// ---------- Market analysis ----------

// marketPayload mirrors the Portuguese keys the prompt asks for.
type marketPayload struct {
	Demand        string          `json:"demanda"`
	Competitors   json.RawMessage `json:"concorrentes"`
	Opportunity   string          `json:"oportunidade"`
	AverageTicket string          `json:"ticketMedio"`
}

func FallbackMarketAnalysis() *resp.MarketAnalysis {
	return &resp.MarketAnalysis{
		Demand:        "Alta procura por serviços digitais na região.",
		Competitors:   []string{"Empresas tradicionais locais", "Negócios sem presença online"},
		Opportunity:   "Domine o Google Maps em sua cidade antes da concorrência.",
		AverageTicket: "Sob consulta",
		Fallback:      true,
	}
}

func marketPrompt(niche, city, state string) string {
	return fmt.Sprintf(`Analise o mercado de %s em %s, %s.
Responda EXCLUSIVAMENTE em formato JSON com estes campos:
{
  "demanda": "texto curto",
  "concorrentes": ["nome 1", "nome 2"],
  "oportunidade": "texto curto",
  "ticketMedio": "R$ valor"
}
Foque na realidade local desta cidade específica.`, niche, city, state)
}

func (s *EnrichmentService) AnalyzeMarket(ctx context.Context, niche, city, state string) *resp.MarketAnalysis {
	raw, err := s.generate(ctx, opMarket, marketPrompt(niche, city, state), nil)
	if err != nil {
		return s.fallbackMarket(err)
	}
	analysis, err := parseMarketAnalysis(raw)
	if err != nil {
		return s.fallbackMarket(err)
	}
	return analysis
}

func (s *EnrichmentService) fallbackMarket(err error) *resp.MarketAnalysis {
	metrics.EnrichmentFallbacks.WithLabelValues(opMarket).Inc()
	s.logger.Warn("market analysis fell back", zap.Error(err))
	return FallbackMarketAnalysis()
}

func parseMarketAnalysis(raw string) (*resp.MarketAnalysis, error) {
	var payload marketPayload
	if err := json.Unmarshal([]byte(utils.ExtractJSON(raw)), &payload); err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrNoContentGenerated, err)
	}
	competitors, err := coerceStringList(payload.Competitors)
	if err != nil {
		return nil, err
	}
	return &resp.MarketAnalysis{
		Demand:        payload.Demand,
		Competitors:   competitors,
		Opportunity:   payload.Opportunity,
		AverageTicket: payload.AverageTicket,
	}, nil
}

// coerceStringList accepts a JSON array or a single scalar, which becomes a
// one element list.
func coerceStringList(raw json.RawMessage) ([]string, error) {
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" || trimmed == "null" {
		return []string{}, nil
	}

	var list []any
	if err := json.Unmarshal(raw, &list); err == nil {
		out := make([]string, 0, len(list))
		for _, v := range list {
			out = append(out, scalarText(v))
		}
		return out, nil
	}

	var single any
	if err := json.Unmarshal(raw, &single); err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrNoContentGenerated, err)
	}
	return []string{scalarText(single)}, nil
}

func scalarText(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case nil:
		return ""
	default:
		b, _ := json.Marshal(t)
		return strings.Trim(string(b), `"`)
	}
}

// ---------- Mockup ----------

var mockupSchema = &utils.ResponseSchema{
	Type: utils.SchemaObject,
	Properties: map[string]*utils.ResponseSchema{
		"title":           {Type: utils.SchemaString},
		"headline":        {Type: utils.SchemaString},
		"subheadline":     {Type: utils.SchemaString},
		"primaryColor":    {Type: utils.SchemaString},
		"secondaryColor":  {Type: utils.SchemaString},
		"heroImagePrompt": {Type: utils.SchemaString},
		"modules":         {Type: utils.SchemaArray, Items: &utils.ResponseSchema{Type: utils.SchemaString}},
		"strategy": {
			Type:        utils.SchemaArray,
			Items:       &utils.ResponseSchema{Type: utils.SchemaString},
			Description: "3 passos para o sucesso local",
		},
		"dashboardStats": {
			Type: utils.SchemaArray,
			Items: &utils.ResponseSchema{
				Type: utils.SchemaObject,
				Properties: map[string]*utils.ResponseSchema{
					"label": {Type: utils.SchemaString},
					"value": {Type: utils.SchemaString},
					"trend": {Type: utils.SchemaString},
				},
				Order: []string{"label", "value", "trend"},
			},
		},
	},
	Order: []string{
		"title", "headline", "subheadline", "primaryColor", "secondaryColor",
		"heroImagePrompt", "modules", "strategy", "dashboardStats",
	},
	Required: []string{"title", "headline", "subheadline", "strategy"},
}

func mockupPrompt(businessName, niche string, serviceType lead_models.ServiceType, city string) string {
	return fmt.Sprintf(`Gere conteúdo para um %s da empresa "%s" em %s. Nicho: %s.
Inclua um "Estratégia de Sucesso" com 3 passos específicos para dominar o mercado local.`,
		serviceType, businessName, city, niche)
}

func heroImagePrompt(niche, city string) string {
	subject := fmt.Sprintf("%s business premium website in %s", niche, city)
	return fmt.Sprintf("A professional commercial photograph of %s. Premium aesthetics, cinematic lighting, 4k.", subject)
}

func (s *EnrichmentService) GenerateMockupContent(ctx context.Context, businessName, niche string, serviceType lead_models.ServiceType, city string) *lead_models.AIPageContent {
	raw, err := s.generate(ctx, opMockup, mockupPrompt(businessName, niche, serviceType, city), mockupSchema)
	if err != nil {
		return s.fallbackMockup(err, businessName, niche, city)
	}

	var content lead_models.AIPageContent
	if err := json.Unmarshal([]byte(utils.ExtractJSON(raw)), &content); err != nil {
		return s.fallbackMockup(err, businessName, niche, city)
	}
	if content.Title == "" && content.Headline == "" {
		return s.fallbackMockup(utils.ErrNoContentGenerated, businessName, niche, city)
	}

	content.HeroImage = s.heroImage(ctx, niche, city)
	return &content
}

// heroImage returns a data URL, or "" when the provider cannot draw.
func (s *EnrichmentService) heroImage(ctx context.Context, niche, city string) string {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	start := time.Now()
	img, err := s.client.GenerateImage(ctx, heroImagePrompt(niche, city))
	metrics.EnrichmentDuration.WithLabelValues(opImage).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.EnrichmentFallbacks.WithLabelValues(opImage).Inc()
		s.logger.Debug("hero image skipped", zap.Error(err))
		return ""
	}
	return img.DataURL()
}

func (s *EnrichmentService) fallbackMockup(err error, businessName, niche, city string) *lead_models.AIPageContent {
	metrics.EnrichmentFallbacks.WithLabelValues(opMockup).Inc()
	s.logger.Warn("mockup generation fell back", zap.Error(err), zap.String("business", businessName))
	return FallbackMockup(businessName, niche, city)
}

// FallbackMockup is the canned page used when the provider is unavailable.
func FallbackMockup(businessName, niche, city string) *lead_models.AIPageContent {
	name := strings.TrimSpace(businessName)
	if name == "" {
		name = "Sua Empresa"
	}
	where := strings.TrimSpace(city)
	if where == "" {
		where = "sua cidade"
	}
	segment := strings.TrimSpace(niche)
	if segment == "" {
		segment = "seu segmento"
	}

	return &lead_models.AIPageContent{
		Title:          name,
		PrimaryColor:   "#22d3ee",
		SecondaryColor: "#3b82f6",
		Headline:       fmt.Sprintf("%s: referência em %s em %s", name, segment, where),
		Subheadline:    fmt.Sprintf("Atendimento próximo e presença digital profissional para quem busca %s em %s.", segment, where),
		Modules:        []string{"Início", "Serviços", "Sobre", "Contato"},
		Strategy: []string{
			fmt.Sprintf("Cadastre e otimize o perfil no Google Maps em %s.", where),
			"Publique depoimentos reais de clientes toda semana.",
			"Direcione anúncios locais para o WhatsApp da empresa.",
		},
		DashboardStats: []lead_models.DashboardStat{
			{Label: "Visitas", Value: "0", Trend: "+0%"},
			{Label: "Contatos", Value: "0", Trend: "+0%"},
		},
	}
}

// ---------- Refine ----------

func refinePrompt(current, instruction, locationContext string) string {
	return fmt.Sprintf("O usuário está em %s.\nCONTEÚDO ATUAL: %s.\nPEDIDO: \"%s\".\nRetorne o JSON atualizado.",
		locationContext, current, instruction)
}

// RefineContent applies a free text instruction. The hero image is not sent
// to the provider and is restored when the answer omits it.
func (s *EnrichmentService) RefineContent(ctx context.Context, current lead_models.AIPageContent, instruction, locationContext string) *lead_models.AIPageContent {
	unchanged := current

	stripped := current
	stripped.HeroImage = ""
	body, err := json.Marshal(stripped)
	if err != nil {
		return s.fallbackRefine(err, &unchanged)
	}

	raw, err := s.generate(ctx, opRefine, refinePrompt(string(body), instruction, locationContext), nil)
	if err != nil {
		return s.fallbackRefine(err, &unchanged)
	}

	var updated lead_models.AIPageContent
	if err := json.Unmarshal([]byte(utils.ExtractJSON(raw)), &updated); err != nil {
		return s.fallbackRefine(err, &unchanged)
	}
	if updated.Title == "" && updated.Headline == "" {
		return s.fallbackRefine(utils.ErrNoContentGenerated, &unchanged)
	}
	if updated.HeroImage == "" {
		updated.HeroImage = current.HeroImage
	}
	return &updated
}

func (s *EnrichmentService) fallbackRefine(err error, current *lead_models.AIPageContent) *lead_models.AIPageContent {
	metrics.EnrichmentFallbacks.WithLabelValues(opRefine).Inc()
	s.logger.Warn("content refinement fell back", zap.Error(err))
	return current
}

// generate runs one provider call under the configured timeout. No retries.
func (s *EnrichmentService) generate(ctx context.Context, op, prompt string, schema *utils.ResponseSchema) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	start := time.Now()
	raw, err := s.client.GenerateJSON(ctx, prompt, schema)
	metrics.EnrichmentDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(raw) == "" {
		return "", utils.ErrNoContentGenerated
	}
	return raw, nil
}
