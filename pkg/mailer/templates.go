package mailer

import "html/template"

// emailTemplates renders the HTML bodies for all outgoing mail. The layout is
// deliberately simple: transactional mail clients strip most styling anyway.
var emailTemplates = template.Must(template.New("emails").Parse(`
{{define "verification"}}
<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #333; max-width: 600px; margin: 0 auto;">
  <h1>{{.AppName}}</h1>
  <h2>Welcome, {{.Username}}!</h2>
  <p>Thank you for registering with {{.AppName}}. To complete your registration,
  please verify your email address.</p>
  <p><a href="{{.Link}}" style="display: inline-block; padding: 12px 30px; background-color: #4CAF50; color: white; text-decoration: none; border-radius: 5px;">Verify Email Address</a></p>
  <p>Or copy and paste this link into your browser:</p>
  <p style="word-break: break-all; color: #666; font-size: 12px;">{{.Link}}</p>
  <p><strong>Important:</strong> this verification link expires in 24 hours.</p>
  <p style="color: #777; font-size: 12px;">If you didn't create an account with {{.AppName}}, please ignore this email.</p>
</body>
</html>
{{end}}

{{define "welcome"}}
<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #333; max-width: 600px; margin: 0 auto;">
  <h1>{{.AppName}}</h1>
  <h2>Hi {{if .FirstName}}{{.FirstName}}{{else}}{{.Username}}{{end}}, your email is verified!</h2>
  <p>Your {{.AppName}} account is ready. You can now log in and start creating
  calculations.</p>
</body>
</html>
{{end}}

{{define "reset"}}
<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #333; max-width: 600px; margin: 0 auto;">
  <h1>{{.AppName}}</h1>
  <h2>Password reset requested</h2>
  <p>Hi {{.Username}}, we received a request to reset your password.</p>
  <p><a href="{{.Link}}" style="display: inline-block; padding: 12px 30px; background-color: #4CAF50; color: white; text-decoration: none; border-radius: 5px;">Reset Password</a></p>
  <p>Or copy and paste this link into your browser:</p>
  <p style="word-break: break-all; color: #666; font-size: 12px;">{{.Link}}</p>
  <p><strong>Important:</strong> this link expires in 60 minutes.</p>
  <p style="color: #777; font-size: 12px;">If you didn't request a password reset, you can safely ignore this email.</p>
</body>
</html>
{{end}}
`))

// templateData is the input for every email template; unused fields are empty.
type templateData struct {
	AppName   string
	Username  string
	FirstName string
	Link      string
}
