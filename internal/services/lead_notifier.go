// services/lead_notifier.go
package services

import (
	"bytes"
	"crypto/tls"
	"fmt"
	"html/template"
	"mime"
	"net"
	"net/smtp"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	resp "fdweb/internal/models/response_models"
)

// LeadNotifierInterface tells the agency about a finalized lead. Delivery is
// best effort and never blocks the caller.
type LeadNotifierInterface interface {
	NotifyNewLead(result *resp.DiagnosticResultResponse)
	Close()
}

// SMTPConfig holds the SMTP + branding config.
type SMTPConfig struct {
	Host       string // e.g. "smtp.gmail.com"
	Port       int    // 587 (STARTTLS) or 465 (SMTPS)
	Username   string
	Password   string
	From       string // envelope from
	FromName   string // display name
	To         string // agency inbox
	UseSSL     bool   // true for SMTPS 465, false for STARTTLS 587
	RequireTLS bool   // fail if STARTTLS is not available

	AppName string
}

type noopNotifier struct{}

func NewNoopNotifier() LeadNotifierInterface { return noopNotifier{} }

func (noopNotifier) NotifyNewLead(*resp.DiagnosticResultResponse) {}

func (noopNotifier) Close() {}

type smtpLeadNotifier struct {
	cfg     SMTPConfig
	logger  *zap.Logger
	htmlTpl *template.Template
	textTpl *template.Template
	wg      sync.WaitGroup

	// send is swapped in tests.
	send func(to, subject string, message []byte) error
}

func NewSMTPLeadNotifier(cfg SMTPConfig, logger *zap.Logger) LeadNotifierInterface {
	n := &smtpLeadNotifier{
		cfg:     cfg,
		logger:  logger,
		htmlTpl: template.Must(template.New("leadHTML").Parse(leadHTMLTemplate)),
		textTpl: template.Must(template.New("leadText").Parse(leadTextTemplate)),
	}
	n.send = n.smtpSend
	return n
}

// ------------------- Public API -------------------

func (n *smtpLeadNotifier) NotifyNewLead(result *resp.DiagnosticResultResponse) {
	if result == nil {
		return
	}
	n.wg.Add(1)
	go func() {
		defer n.wg.Done()
		if err := n.deliver(result); err != nil {
			n.logger.Error("lead notification failed", zap.String("lead_id", result.Lead.ID), zap.Error(err))
			return
		}
		n.logger.Info("lead notification sent", zap.String("lead_id", result.Lead.ID))
	}()
}

// Close waits for in-flight notifications.
func (n *smtpLeadNotifier) Close() {
	n.wg.Wait()
}

func (n *smtpLeadNotifier) deliver(result *resp.DiagnosticResultResponse) error {
	subject := fmt.Sprintf("Novo diagnóstico %s: %s", result.Lead.ID, result.Lead.UserName)
	html, text, err := n.renderEmail(newLeadEmailData(result, n.cfg.AppName))
	if err != nil {
		return err
	}
	return n.send(n.cfg.To, subject, n.buildMessage(subject, html, text))
}

// ------------------- Rendering -------------------

type LeadEmailData struct {
	Title       string
	LeadID      string
	Business    string
	Location    string
	Niche       string
	Service     string
	Plan        string
	Revenue     string
	Reach       int64
	ShareURL    string
	WhatsAppURL string
	AppName     string
	Year        int
}

func newLeadEmailData(result *resp.DiagnosticResultResponse, appName string) LeadEmailData {
	return LeadEmailData{
		Title:       "Novo diagnóstico recebido",
		LeadID:      result.Lead.ID,
		Business:    result.Lead.UserName,
		Location:    result.Lead.Location(),
		Niche:       result.Lead.Niche,
		Service:     result.ROI.PackageRecommended,
		Plan:        result.ROI.PlanName,
		Revenue:     result.ROI.EstimatedRevenue,
		Reach:       result.ROI.EstimatedReach,
		ShareURL:    result.ShareURL,
		WhatsAppURL: result.WhatsAppURL,
		AppName:     appName,
		Year:        time.Now().Year(),
	}
}

const leadHTMLTemplate = `<!doctype html>
<html>
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width,initial-scale=1">
  <title>{{.Title}}</title>
  <style>
    body { margin: 0; padding: 0; background: #0f172a; color: #f1f5f9; font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, Helvetica, Arial, sans-serif; }
    .container { max-width: 600px; margin: 0 auto; padding: 32px; background: #1e293b; border-radius: 16px; }
    .brand { font-weight: 700; font-size: 20px; color: #22d3ee; text-transform: uppercase; }
    h1 { font-size: 24px; margin: 16px 0; }
    td { padding: 6px 0; color: #cbd5e1; }
    td.label { color: #94a3b8; width: 160px; }
    .btn { display: inline-block; margin-top: 24px; padding: 14px 28px; background: #22c55e; color: #ffffff !important; text-decoration: none; border-radius: 12px; font-weight: 600; }
    .footer { margin-top: 32px; color: #64748b; font-size: 13px; text-align: center; }
  </style>
</head>
<body>
  <div class="container">
    <div class="brand">{{.AppName}}</div>
    <h1>{{.Title}}</h1>
    <table>
      <tr><td class="label">ID</td><td>{{.LeadID}}</td></tr>
      <tr><td class="label">Empresa</td><td>{{.Business}}</td></tr>
      <tr><td class="label">Local</td><td>{{.Location}}</td></tr>
      <tr><td class="label">Nicho</td><td>{{.Niche}}</td></tr>
      <tr><td class="label">Pacote</td><td>{{.Service}} ({{.Plan}})</td></tr>
      <tr><td class="label">Alcance estimado</td><td>{{.Reach}}</td></tr>
      <tr><td class="label">Faturamento potencial</td><td>{{.Revenue}}</td></tr>
    </table>
    {{if .ShareURL}}<a class="btn" href="{{.ShareURL}}">Abrir diagnóstico</a>{{end}}
    <div class="footer">© {{.Year}} {{.AppName}}</div>
  </div>
</body>
</html>`

const leadTextTemplate = `{{.Title}}

ID: {{.LeadID}}
Empresa: {{.Business}}
Local: {{.Location}}
Nicho: {{.Niche}}
Pacote: {{.Service}} ({{.Plan}})
Alcance estimado: {{.Reach}}
Faturamento potencial: {{.Revenue}}
{{if .ShareURL}}
Diagnóstico: {{.ShareURL}}
{{end}}{{if .WhatsAppURL}}WhatsApp: {{.WhatsAppURL}}
{{end}}
- {{.AppName}} (c) {{.Year}}
`

func (n *smtpLeadNotifier) renderEmail(data LeadEmailData) (html string, text string, err error) {
	var hb, tb bytes.Buffer

	if err = n.htmlTpl.Execute(&hb, data); err != nil {
		return "", "", err
	}
	if err = n.textTpl.Execute(&tb, data); err != nil {
		return "", "", err
	}
	return hb.String(), tb.String(), nil
}

// ------------------- SMTP Send -------------------

func (n *smtpLeadNotifier) buildMessage(subject, htmlBody, textBody string) []byte {
	boundary := fmt.Sprintf("mixed_%d", time.Now().UnixNano())

	var msg bytes.Buffer
	write := func(format string, a ...any) { _, _ = fmt.Fprintf(&msg, format, a...) }

	write("From: %s\r\n", n.formatFromHeader())
	write("To: %s\r\n", n.cfg.To)
	write("Subject: %s\r\n", mime.BEncoding.Encode("UTF-8", subject))
	write("Date: %s\r\n", time.Now().Format(time.RFC1123Z))
	write("MIME-Version: 1.0\r\n")
	write("Content-Type: multipart/alternative; boundary=%q\r\n", boundary)
	write("\r\n")

	write("--%s\r\n", boundary)
	write("Content-Type: text/plain; charset=UTF-8\r\n")
	write("Content-Transfer-Encoding: 8bit\r\n\r\n")
	write("%s\r\n\r\n", textBody)

	write("--%s\r\n", boundary)
	write("Content-Type: text/html; charset=UTF-8\r\n")
	write("Content-Transfer-Encoding: 8bit\r\n\r\n")
	write("%s\r\n\r\n", htmlBody)

	write("--%s--\r\n", boundary)
	return msg.Bytes()
}

func (n *smtpLeadNotifier) smtpSend(to, _ string, message []byte) error {
	addr := net.JoinHostPort(n.cfg.Host, fmt.Sprint(n.cfg.Port))
	tlsCfg := &tls.Config{ServerName: n.cfg.Host, MinVersion: tls.VersionTLS12}

	var (
		conn net.Conn
		err  error
	)
	if n.cfg.UseSSL {
		// SMTPS (implicit TLS, usually port 465)
		conn, err = tls.DialWithDialer(&net.Dialer{Timeout: 10 * time.Second}, "tcp", addr, tlsCfg)
	} else {
		conn, err = (&net.Dialer{Timeout: 10 * time.Second}).Dial("tcp", addr)
	}
	if err != nil {
		return err
	}
	defer conn.Close()

	c, err := smtp.NewClient(conn, n.cfg.Host)
	if err != nil {
		return err
	}
	defer c.Quit()

	if !n.cfg.UseSSL {
		if ok, _ := c.Extension("STARTTLS"); ok {
			if err = c.StartTLS(tlsCfg); err != nil {
				return err
			}
		} else if n.cfg.RequireTLS {
			return fmt.Errorf("server does not support STARTTLS and RequireTLS=true")
		}
	}

	if n.cfg.Username != "" {
		if err = c.Auth(smtp.PlainAuth("", n.cfg.Username, n.cfg.Password, n.cfg.Host)); err != nil {
			return err
		}
	}
	if err = c.Mail(n.cfg.From); err != nil {
		return err
	}
	if err = c.Rcpt(to); err != nil {
		return err
	}
	w, err := c.Data()
	if err != nil {
		return err
	}
	if _, err = w.Write(message); err != nil {
		return err
	}
	return w.Close()
}

func (n *smtpLeadNotifier) formatFromHeader() string {
	name := strings.TrimSpace(n.cfg.FromName)
	if name == "" {
		return n.cfg.From
	}
	// Q-encodes non-ASCII display names, leaves ASCII untouched.
	return fmt.Sprintf("%s <%s>", mime.QEncoding.Encode("UTF-8", name), n.cfg.From)
}
