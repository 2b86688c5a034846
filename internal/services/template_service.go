package services

import "fdweb/internal/models/lead_models"

const defaultTemplatePlan = "Site Essencial"

type TemplateServiceInterface interface {
	ForPlan(plan string) (string, []lead_models.TemplateDefinition)
	ForService(t lead_models.ServiceType) (string, []lead_models.TemplateDefinition)
}

type TemplateService struct {
	catalog *lead_models.ServiceCatalog
	byPlan  map[string][]lead_models.TemplateDefinition
}

func NewTemplateService(catalog *lead_models.ServiceCatalog) *TemplateService {
	return &TemplateService{catalog: catalog, byPlan: defaultTemplates()}
}

// ForPlan returns the plan actually used and its templates. Unknown plans get
// the "Site Essencial" set.
func (s *TemplateService) ForPlan(plan string) (string, []lead_models.TemplateDefinition) {
	if tpls, ok := s.byPlan[plan]; ok {
		return plan, cloneTemplates(tpls)
	}
	return defaultTemplatePlan, cloneTemplates(s.byPlan[defaultTemplatePlan])
}

func (s *TemplateService) ForService(t lead_models.ServiceType) (string, []lead_models.TemplateDefinition) {
	return s.ForPlan(s.catalog.Lookup(t).PlanName)
}

func cloneTemplates(in []lead_models.TemplateDefinition) []lead_models.TemplateDefinition {
	out := make([]lead_models.TemplateDefinition, len(in))
	copy(out, in)
	return out
}

const AITemplateID = "ai-magic"

func defaultTemplates() map[string][]lead_models.TemplateDefinition {
	ai := lead_models.TemplateDefinition{
		ID:          AITemplateID,
		Name:        "Gerar com IA (Mágico)",
		Description: "Deixe nossa IA criar todo o conteúdo, textos e imagens do zero para o seu nicho específico.",
		Preview:     "https://images.unsplash.com/photo-1677442136019-21780ecad995?auto=format&fit=crop&q=80&w=400",
		InitialContent: lead_models.AIPageContent{
			PrimaryColor:   "#22d3ee",
			SecondaryColor: "#3b82f6",
		},
	}

	return map[string][]lead_models.TemplateDefinition{
		"Site Essencial": {
			ai,
			{
				ID:          "barber-style",
				Name:        "Barbearia Vintage",
				Description: "Estilo clássico e sofisticado para barbearias e salões masculinos.",
				Preview:     "https://images.unsplash.com/photo-1503951914875-452162b0f3f1?auto=format&fit=crop&q=80&w=400",
				InitialContent: lead_models.AIPageContent{
					PrimaryColor:   "#d97706",
					SecondaryColor: "#1c1917",
					HeroImage:      "https://images.unsplash.com/photo-1585747860715-2ba37e788b70?auto=format&fit=crop&q=80&w=1200",
					HeroTitle:      "O Corte Perfeito para o Homem Moderno",
				},
			},
			{
				ID:          "gym-style",
				Name:        "Academia High-Energy",
				Description: "Design vibrante focado em performance e resultados.",
				Preview:     "https://images.unsplash.com/photo-1534438327276-14e5300c3a48?auto=format&fit=crop&q=80&w=400",
				InitialContent: lead_models.AIPageContent{
					PrimaryColor:   "#eab308",
					SecondaryColor: "#000000",
					HeroImage:      "https://images.unsplash.com/photo-1540497077202-7c8a3999166f?auto=format&fit=crop&q=80&w=1200",
					HeroTitle:      "Supere Seus Limites Hoje",
				},
			},
		},
		"E-commerce Pro": {
			ai,
			{
				ID:          "fashion-fem",
				Name:        "Fashion Feminina",
				Description: "Elegante e chic, ideal para boutiques e lojas de acessórios.",
				Preview:     "https://images.unsplash.com/photo-1483985988355-763728e1935b?auto=format&fit=crop&q=80&w=400",
				InitialContent: lead_models.AIPageContent{
					PrimaryColor:   "#f43f5e",
					SecondaryColor: "#fff1f2",
					HeroImage:      "https://images.unsplash.com/photo-1490481651871-ab68de25d43d?auto=format&fit=crop&q=80&w=1200",
					HeroTitle:      "Sua Nova Coleção Chegou",
				},
			},
			{
				ID:          "fashion-masc",
				Name:        "Moda Masculina Urban",
				Description: "Visual urbano e moderno para o público masculino.",
				Preview:     "https://images.unsplash.com/photo-1490114538077-0a7f8cb49891?auto=format&fit=crop&q=80&w=400",
				InitialContent: lead_models.AIPageContent{
					PrimaryColor:   "#0f172a",
					SecondaryColor: "#f8fafc",
					HeroImage:      "https://images.unsplash.com/photo-1488161628813-04466f872be2?auto=format&fit=crop&q=80&w=1200",
					HeroTitle:      "O Estilo que Define Você",
				},
			},
		},
		"Sistema Custom": {
			ai,
			{
				ID:          "glass-dashboard",
				Name:        "Gestão Enterprise",
				Description: "Interface moderna para ERPs e Dashboards administrativos.",
				Preview:     "https://images.unsplash.com/photo-1551288049-bebda4e38f71?auto=format&fit=crop&q=80&w=400",
				InitialContent: lead_models.AIPageContent{
					PrimaryColor:   "#3b82f6",
					SecondaryColor: "#ffffff",
					HeroImage:      "https://images.unsplash.com/photo-1518770660439-4636190af475?auto=format&fit=crop&q=80&w=1200",
					HeroTitle:      "Sua Empresa Sob Controle",
				},
			},
		},
	}
}
