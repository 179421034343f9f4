package notification

import (
	"bytes"
	"fmt"
	"html/template"

	"athletetech/models"
)

const emailFooter = `
  <div style="margin-top: 30px; padding-top: 20px; border-top: 1px solid #eee;">
    <p style="color: #666; font-size: 12px;">
      This email was sent by AthleteTech. Please do not reply to this email.
    </p>
  </div>`

var welcomeTmpl = template.Must(template.New("welcome").Parse(`
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2 style="color: #1976d2;">Welcome to AthleteTech, {{.FirstName}}! 🎉</h2>
  <p>We're excited to have you join our community as a {{.UserType}}!</p>
  <h3>What you can do as {{if .IsCoach}}a coach{{else}}an athlete{{end}}:</h3>
  <ul>
  {{- range .Features}}
    <li>{{.}}</li>
  {{- end}}
  </ul>
  <p>Get started by logging into your dashboard:</p>
  <a href="{{.DashboardURL}}"
     style="background-color: #1976d2; color: white; padding: 10px 20px; text-decoration: none; border-radius: 5px; display: inline-block;">
    Go to Dashboard
  </a>
  <p style="margin-top: 20px;">
    If you have any questions, feel free to reach out to our support team at support@athletetech.com
  </p>` + emailFooter + `
</div>`))

var notificationTmpl = template.Must(template.New("notification").Parse(`
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2 style="color: #1976d2;">AthleteTech Notification</h2>
  <div style="padding: 20px; background-color: #f5f5f5; border-radius: 5px;">
    {{.Message}}
  </div>` + emailFooter + `
</div>`))

var (
	coachFeatures = []string{
		"Manage your training sessions",
		"Connect with athletes",
		"Schedule virtual or in-person sessions",
		"Track your athletes' progress",
	}
	athleteFeatures = []string{
		"Book training sessions",
		"Connect with expert coaches",
		"Choose between virtual or in-person training",
		"Track your progress",
	}
)

// WelcomeEmail renders the signup email for a coach or athlete.
func WelcomeEmail(user *models.User, dashboardBaseURL string) (models.EmailPayload, error) {
	isCoach := user.UserType == models.UserTypeCoach
	journey, features := "Training", athleteFeatures
	if isCoach {
		journey, features = "Coaching", coachFeatures
	}

	var buf bytes.Buffer
	err := welcomeTmpl.Execute(&buf, map[string]any{
		"FirstName":    user.FirstName,
		"UserType":     user.UserType,
		"IsCoach":      isCoach,
		"Features":     features,
		"DashboardURL": fmt.Sprintf("%s/%s-dashboard", dashboardBaseURL, user.UserType),
	})
	if err != nil {
		return models.EmailPayload{}, fmt.Errorf("failed to render welcome email: %w", err)
	}
	return models.EmailPayload{
		To:      user.Email,
		Subject: fmt.Sprintf("Welcome to AthleteTech - Your %s Journey Begins!", journey),
		HTML:    buf.String(),
	}, nil
}

// NotificationEmail wraps a plain message in the notification layout.
func NotificationEmail(to, subject, message string) (models.EmailPayload, error) {
	var buf bytes.Buffer
	if err := notificationTmpl.Execute(&buf, map[string]any{"Message": message}); err != nil {
		return models.EmailPayload{}, fmt.Errorf("failed to render notification email: %w", err)
	}
	return models.EmailPayload{To: to, Subject: subject, HTML: buf.String()}, nil
}
