package services

import (
	"fmt"
	"net/url"
	"strings"

	"fdweb/internal/models/lead_models"
)

type HandoffServiceInterface interface {
	LeadMessage(lead lead_models.DiagnosticRequest) string
	LeadLink(lead lead_models.DiagnosticRequest) string
	EditorMessage(title, location string) string
	EditorLink(title, location string) string
}

// HandoffService builds the prefilled WhatsApp conversations that hand a lead
// over to the agency.
type HandoffService struct {
	phone       string
	contactName string
}

func NewHandoffService(phone, contactName string) *HandoffService {
	return &HandoffService{phone: phone, contactName: contactName}
}

func (s *HandoffService) LeadMessage(lead lead_models.DiagnosticRequest) string {
	lines := []string{
		fmt.Sprintf("Olá %s! 🚀", s.contactName),
		"Acabei de gerar meu diagnóstico oficial na FD Developer Web.",
		"",
		"*RESUMO DO PROJETO:*",
		"🏢 Empresa: " + lead.UserName,
		"📍 Local: " + lead.Location(),
		"💼 Nicho: " + lead.Niche,
		"🆔 ID: " + lead.ID,
		"",
		"Estou te enviando o *PRINT* do relatório completo que acabei de baixar.",
		"Podemos conversar sobre esses números?",
	}
	return strings.Join(lines, "\n")
}

func (s *HandoffService) LeadLink(lead lead_models.DiagnosticRequest) string {
	return s.link(s.LeadMessage(lead))
}

func (s *HandoffService) EditorMessage(title, location string) string {
	return fmt.Sprintf("Olá %s! Finalizei o rascunho de %s para %s. Vamos publicar?", s.contactName, title, location)
}

func (s *HandoffService) EditorLink(title, location string) string {
	return s.link(s.EditorMessage(title, location))
}

func (s *HandoffService) link(message string) string {
	return fmt.Sprintf("https://wa.me/%s?text=%s", s.phone, escapeComponent(message))
}

// componentUnescaper turns QueryEscape output into encodeURIComponent output:
// spaces as %20 and !'()* left as is.
var componentUnescaper = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

func escapeComponent(s string) string {
	return componentUnescaper.Replace(url.QueryEscape(s))
}
