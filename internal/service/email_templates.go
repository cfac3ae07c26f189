package service

import "fmt"

func verificationEmailTemplate(name, verifyURL, verificationToken, appName string) (string, string, string) {
	subject := fmt.Sprintf("Verify Your Email - %s", appName)

	html := fmt.Sprintf(`<p>Dear %s,</p>
<p>Welcome to %s! To complete your registration, please verify your email address:</p>
<p><a href="%s">Verify Email Address</a></p>
<p>If the button doesn't work, copy and paste this link into your browser:</p>
<p>%s</p>
<p>If the link can't be opened on your device, use the manual verification page
and enter this code:</p>
<p><code>%s</code></p>
<p><strong>Important:</strong> This link expires in 24 hours. If you don't verify
in time, request a new email from the sign-in page.</p>
<p>If you didn't create an account with %s, please ignore this email.</p>`,
		name, appName, verifyURL, verifyURL, verificationToken, appName)

	text := fmt.Sprintf(`Dear %s,

Welcome to %s!

Please verify your email address by clicking the following link:
%s

If the link can't be opened on your device, use the manual verification page
and enter this code:
%s

This link will expire in 24 hours.

If you didn't create an account with us, please ignore this email.

Best regards,
The %s Team`, name, appName, verifyURL, verificationToken, appName)

	return subject, html, text
}

func welcomeEmailTemplate(name, appURL, appName string) (string, string, string) {
	subject := fmt.Sprintf("Welcome to %s!", appName)

	html := fmt.Sprintf(`<p>Hi %s,</p>
<p>Your email is verified and your account is active.</p>
<p>Sign in to explore the company directory, set up your vendor profile and
connect with trade partners: <a href="%s">%s</a></p>`,
		name, appURL, appURL)

	text := fmt.Sprintf(`Hi %s,

Your email is verified and your account is active.

Sign in to explore the company directory, set up your vendor profile and
connect with trade partners: %s

Best,
The %s Team`, name, appURL, appName)

	return subject, html, text
}
