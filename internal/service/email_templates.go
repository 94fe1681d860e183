package service

import (
	"fmt"

	"weddinghub/internal/config"
)

// emailTemplates renders subject, HTML and plain-text bodies for every
// email the site sends. Copy is parameterized on the couple, year and
// location so it never needs editing for a new deployment.
type emailTemplates struct {
	coupleNames string
	year        string
	location    string
	baseURL     string
}

func newEmailTemplates(cfg *config.Config) *emailTemplates {
	return &emailTemplates{
		coupleNames: cfg.CoupleNames,
		year:        cfg.WeddingYear,
		location:    cfg.WeddingLocation,
		baseURL:     cfg.AppBaseURL,
	}
}

const emailStyle = `
	body { font-family: Georgia, serif; line-height: 1.6; color: #3d3d3d; }
	.container { max-width: 600px; margin: 0 auto; padding: 20px; }
	.header { background-color: #8b9d83; color: white; padding: 24px; text-align: center; border-radius: 5px 5px 0 0; }
	.content { background-color: #faf8f5; padding: 30px; border-radius: 0 0 5px 5px; }
	.code { font-size: 24px; letter-spacing: 2px; font-weight: bold; text-align: center; padding: 12px; background: #fff; border: 1px dashed #8b9d83; }
	.button { display: inline-block; padding: 12px 30px; background-color: #8b9d83; color: white; text-decoration: none; border-radius: 5px; margin: 20px 0; }
	.footer { text-align: center; margin-top: 20px; font-size: 12px; color: #999; }
`

func (t *emailTemplates) wrap(heading, inner string) string {
	return fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head>
	<meta charset="UTF-8">
	<style>%s</style>
</head>
<body>
	<div class="container">
		<div class="header">
			<h1>%s</h1>
		</div>
		<div class="content">
%s
		</div>
		<div class="footer">
			<p>%s &middot; %s &middot; %s</p>
		</div>
	</div>
</body>
</html>
`, emailStyle, heading, inner, t.coupleNames, t.location, t.year)
}

func (t *emailTemplates) saveTheDate(firstName, invitationCode string) (subject, html, text string) {
	subject = fmt.Sprintf("Save the Date! %s are getting married", t.coupleNames)

	inner := fmt.Sprintf(`
			<p>Dear %s,</p>
			<p>We're thrilled to share that %s are getting married in %s, %s!</p>
			<p>A formal invitation will follow. When it's time to RSVP, use your personal invitation code:</p>
			<p class="code">%s</p>
			<p style="text-align: center;">
				<a href="%s/rsvp" class="button">RSVP Online</a>
			</p>
			<p>We can't wait to celebrate with you.</p>
`, firstName, t.coupleNames, t.location, t.year, invitationCode, t.baseURL)
	html = t.wrap("Save the Date", inner)

	text = fmt.Sprintf(`Dear %s,

We're thrilled to share that %s are getting married in %s, %s!

A formal invitation will follow. When it's time to RSVP, use your personal invitation code:

    %s

RSVP online: %s/rsvp

We can't wait to celebrate with you.

%s
`, firstName, t.coupleNames, t.location, t.year, invitationCode, t.baseURL, t.coupleNames)

	return subject, html, text
}

func (t *emailTemplates) saveTheDateConfirmation(firstName string) (subject, html, text string) {
	subject = "You're on the list!"

	inner := fmt.Sprintf(`
			<p>Hi %s,</p>
			<p>Thanks for sharing your details. You're on the guest list for %s's wedding in %s, %s.</p>
			<p>Keep an eye on your inbox for the invitation and your personal RSVP code.</p>
`, firstName, t.coupleNames, t.location, t.year)
	html = t.wrap("You're on the List", inner)

	text = fmt.Sprintf(`Hi %s,

Thanks for sharing your details. You're on the guest list for %s's wedding in %s, %s.

Keep an eye on your inbox for the invitation and your personal RSVP code.

%s
`, firstName, t.coupleNames, t.location, t.year, t.coupleNames)

	return subject, html, text
}

func (t *emailTemplates) rsvpConfirmation(firstName string, attending bool, plusOneCount int) (subject, html, text string) {
	if attending {
		subject = "We can't wait to see you!"

		guestLine := "We have you down for a party of one."
		if plusOneCount > 0 {
			guestLine = fmt.Sprintf("We have you down with %d additional guest(s).", plusOneCount)
		}

		inner := fmt.Sprintf(`
			<p>Hi %s,</p>
			<p>Your RSVP is in &mdash; you're coming to %s's wedding in %s, %s!</p>
			<p>%s</p>
			<p>Details on the schedule, venue and accommodations are on the wedding site:</p>
			<p style="text-align: center;">
				<a href="%s" class="button">Wedding Details</a>
			</p>
`, firstName, t.coupleNames, t.location, t.year, guestLine, t.baseURL)
		html = t.wrap("See You There!", inner)

		text = fmt.Sprintf(`Hi %s,

Your RSVP is in -- you're coming to %s's wedding in %s, %s!

%s

Details on the schedule, venue and accommodations: %s

%s
`, firstName, t.coupleNames, t.location, t.year, guestLine, t.baseURL, t.coupleNames)

		return subject, html, text
	}

	subject = "We'll miss you"

	inner := fmt.Sprintf(`
			<p>Hi %s,</p>
			<p>Thanks for letting us know you can't make it to the wedding. You'll be missed!</p>
			<p>If your plans change, reach out to %s directly.</p>
`, firstName, t.coupleNames)
	html = t.wrap("We'll Miss You", inner)

	text = fmt.Sprintf(`Hi %s,

Thanks for letting us know you can't make it to the wedding. You'll be missed!

If your plans change, reach out to %s directly.

%s
`, firstName, t.coupleNames, t.coupleNames)

	return subject, html, text
}

func (t *emailTemplates) securityAlert(lockedIdentifier, clientIP string) (subject, html, text string) {
	subject = "Security alert: repeated failed logins"

	inner := fmt.Sprintf(`
			<p>Repeated failed login attempts locked out an identifier on the wedding site.</p>
			<p><strong>Identifier:</strong> %s<br>
			<strong>Client IP:</strong> %s</p>
			<p>The lockout clears automatically after 30 minutes. No action is required
			unless the pattern repeats.</p>
`, lockedIdentifier, clientIP)
	html = t.wrap("Security Alert", inner)

	text = fmt.Sprintf(`Repeated failed login attempts locked out an identifier on the wedding site.

Identifier: %s
Client IP: %s

The lockout clears automatically after 30 minutes. No action is required
unless the pattern repeats.
`, lockedIdentifier, clientIP)

	return subject, html, text
}

func (t *emailTemplates) test() (subject, html, text string) {
	subject = "Wedding site email test"

	inner := `
			<p>This is a test email from the wedding site.</p>
			<p>If you're reading this, outbound email is configured correctly.</p>
`
	html = t.wrap("Email Test", inner)

	text = `This is a test email from the wedding site.

If you're reading this, outbound email is configured correctly.
`

	return subject, html, text
}
