package mail

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/hibara/portfolio-api/internal/models"
)

// Supported auto-reply locales. English is the default; Japanese is selected
// when the submission came from the Japanese side of the site.
const (
	LocaleEnglish  = "en"
	LocaleJapanese = "ja"
)

// Message is a composed email ready for dispatch.
type Message struct {
	Subject string
	HTML    string
}

// Composer renders the operator notification and the per-locale auto-reply.
// Rendering is pure: templates are parsed once at construction and execution
// touches no I/O or clock, so identical inputs produce identical output.
// html/template escapes every interpolated value, which keeps submitted text
// from injecting markup into the rendered message.
type Composer struct {
	notification *template.Template
	autoReplyEn  *template.Template
	autoReplyJa  *template.Template
}

// NewComposer parses the email templates.
func NewComposer() (*Composer, error) {
	notification, err := template.New("notification").Parse(notificationTemplate)
	if err != nil {
		return nil, fmt.Errorf("parse notification template: %w", err)
	}

	autoReplyEn, err := template.New("auto_reply_en").Parse(autoReplyTemplateEn)
	if err != nil {
		return nil, fmt.Errorf("parse english auto-reply template: %w", err)
	}

	autoReplyJa, err := template.New("auto_reply_ja").Parse(autoReplyTemplateJa)
	if err != nil {
		return nil, fmt.Errorf("parse japanese auto-reply template: %w", err)
	}

	return &Composer{
		notification: notification,
		autoReplyEn:  autoReplyEn,
		autoReplyJa:  autoReplyJa,
	}, nil
}

// BuildNotification renders the owner notification for a stored submission.
// Every populated field is included; empty optional fields are omitted.
func (c *Composer) BuildNotification(submission models.ContactSubmission) (Message, error) {
	var buf bytes.Buffer
	if err := c.notification.Execute(&buf, submission); err != nil {
		return Message{}, fmt.Errorf("render notification email: %w", err)
	}

	return Message{
		Subject: fmt.Sprintf("New inquiry from %s", submission.Name),
		HTML:    buf.String(),
	}, nil
}

// BuildAutoReply renders the confirmation sent back to the submitter. The two
// locales are fully independent template sets, not one template with swapped
// strings, so each language's copy can be edited on its own.
func (c *Composer) BuildAutoReply(name, locale string) (Message, error) {
	tmpl := c.autoReplyEn
	subject := "Thank you for your inquiry - Kazuya Hibara"
	if locale == LocaleJapanese {
		tmpl = c.autoReplyJa
		subject = "お問い合わせありがとうございます - 桧原和也"
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, struct{ Name string }{Name: name}); err != nil {
		return Message{}, fmt.Errorf("render auto-reply email: %w", err)
	}

	return Message{Subject: subject, HTML: buf.String()}, nil
}

const notificationTemplate = `<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <style>
    body { font-family: 'Nunito', -apple-system, sans-serif; color: #595046; background: #F3F1E9; margin: 0; padding: 0; }
    .container { max-width: 600px; margin: 0 auto; padding: 40px 24px; }
    .card { background: #fff; border-radius: 16px; padding: 32px; box-shadow: 0 2px 12px rgba(89,80,70,0.08); }
    h1 { font-size: 24px; margin: 0 0 24px; color: #595046; }
    .label { font-size: 12px; font-weight: 700; text-transform: uppercase; letter-spacing: 0.05em; color: #FFBFA8; margin: 16px 0 4px; }
    .value { font-size: 16px; line-height: 1.6; margin: 0 0 16px; white-space: pre-wrap; }
    .footer { text-align: center; padding: 24px; font-size: 12px; color: #999; }
  </style>
</head>
<body>
  <div class="container">
    <div class="card">
      <h1>New Contact Form Submission</h1>

      <div class="label">Name</div>
      <div class="value">{{.Name}}</div>

      <div class="label">Email</div>
      <div class="value"><a href="mailto:{{.Email}}">{{.Email}}</a></div>

      <div class="label">Business Overview</div>
      <div class="value">{{.BusinessOverview}}</div>
{{if .CurrentChallenges}}
      <div class="label">Current Challenges</div>
      <div class="value">{{.CurrentChallenges}}</div>
{{end}}{{if .ToolsUsed}}
      <div class="label">Tools Used</div>
      <div class="value">{{.ToolsUsed}}</div>
{{end}}{{if .PreferredContactMethod}}
      <div class="label">Preferred Contact Method</div>
      <div class="value">{{.PreferredContactMethod}}</div>
{{end}}
    </div>
    <div class="footer">
      Sent from your portfolio contact form
    </div>
  </div>
</body>
</html>`

const autoReplyTemplateEn = `<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <style>
    body { font-family: 'Nunito', -apple-system, sans-serif; color: #595046; background: #F3F1E9; margin: 0; padding: 0; }
    .container { max-width: 600px; margin: 0 auto; padding: 40px 24px; }
    .card { background: #fff; border-radius: 16px; padding: 32px; box-shadow: 0 2px 12px rgba(89,80,70,0.08); }
    h1 { font-size: 24px; margin: 0 0 24px; color: #595046; }
    p { font-size: 16px; line-height: 1.8; margin: 0 0 16px; }
    .highlight { color: #FFBFA8; font-weight: 700; }
    .footer { text-align: center; padding: 24px; font-size: 12px; color: #999; }
  </style>
</head>
<body>
  <div class="container">
    <div class="card">
      <h1>Thank you, {{.Name}}!</h1>
      <p>I've received your inquiry and will get back to you within <span class="highlight">2 business days</span>.</p>
      <p>In the meantime, feel free to check out my portfolio for more details on how I can help automate your marketing workflows.</p>
      <p>Best regards,<br><strong>Kazuya Hibara</strong><br>AI Marketing Engineer</p>
    </div>
    <div class="footer">
      This is an automated reply. Please do not reply to this email.
    </div>
  </div>
</body>
</html>`

const autoReplyTemplateJa = `<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <style>
    body { font-family: 'Zen Maru Gothic', -apple-system, sans-serif; color: #595046; background: #F3F1E9; margin: 0; padding: 0; }
    .container { max-width: 600px; margin: 0 auto; padding: 40px 24px; }
    .card { background: #fff; border-radius: 16px; padding: 32px; box-shadow: 0 2px 12px rgba(89,80,70,0.08); }
    h1 { font-size: 24px; margin: 0 0 24px; color: #595046; }
    p { font-size: 16px; line-height: 1.8; margin: 0 0 16px; }
    .highlight { color: #FFBFA8; font-weight: 700; }
    .footer { text-align: center; padding: 24px; font-size: 12px; color: #999; }
  </style>
</head>
<body>
  <div class="container">
    <div class="card">
      <h1>{{.Name}}様、お問い合わせありがとうございます！</h1>
      <p>お問い合わせを受け付けました。<span class="highlight">2営業日以内</span>にご連絡いたします。</p>
      <p>それまでの間、ポートフォリオサイトでマーケティング自動化のソリューションの詳細をご覧ください。</p>
      <p>よろしくお願いいたします。<br><strong>桧原和也</strong><br>AIマーケティングエンジニア</p>
    </div>
    <div class="footer">
      このメールは自動返信です。このメールへの返信はご遠慮ください。
    </div>
  </div>
</body>
</html>`
