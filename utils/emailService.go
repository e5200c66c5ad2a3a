package utils

import (
	"fmt"
	"lms/config"
	"net/smtp"
)

const (
	smtpHost = "smtp.gmail.com"
	smtpPort = "587"
)

// SendOTPEmail sends the one-time password used for email verification.
func SendOTPEmail(otp, email string) error {
	from := config.AppConfig.EmailSender
	password := config.AppConfig.Password

	to := []string{email}

	subject := "Subject: OTP Verification Code for Learnify\nMIME-version: 1.0;\nContent-Type: text/html; charset=\"UTF-8\";\n\n"

	body := fmt.Sprintf(`
		<html>
			<body style="font-family: Arial, sans-serif; background-color: #f4f4f4; padding: 20px;">
				<div style="max-width: 500px; margin: auto; background-color: #ffffff; border-radius: 8px; padding: 30px;">
					<h2 style="color: #333333; text-align: center;">Learnify Email Verification</h2>
					<p style="font-size: 16px; color: #555555; text-align: center;">Your One Time Password (OTP) is:</p>
					<h1 style="text-align: center; color: #4CAF50; font-size: 40px; margin: 20px 0;">%s</h1>
					<p style="font-size: 14px; color: #999999; text-align: center;">Do not share this OTP with anyone.</p>
				</div>
			</body>
		</html>
	`, otp)

	message := []byte(subject + "\n" + body)
	auth := smtp.PlainAuth("", from, password, smtpHost)

	if err := smtp.SendMail(smtpHost+":"+smtpPort, auth, from, to, message); err != nil {
		fmt.Println("Error sending email:", err)
		return err
	}

	return nil
}

// SendEnrollmentEmail sends an email notification when a student enrolls in a course
func SendEnrollmentEmail(email, userName, courseName string) error {
	from := config.AppConfig.EmailSender
	password := config.AppConfig.Password

	to := []string{email}

	subject := "Subject: Course Enrollment Confirmation - Learnify\nMIME-version: 1.0;\nContent-Type: text/html; charset=\"UTF-8\";\n\n"

	body := fmt.Sprintf(`
		<html>
			<body style="font-family: Arial, sans-serif; background-color: #f4f4f4; padding: 20px;">
				<div style="max-width: 600px; margin: auto; background-color: #ffffff; border-radius: 8px; padding: 30px;">
					<h2 style="color: #333333; text-align: center;">Enrollment Successful!</h2>
					<p style="font-size: 16px; color: #555555;">Dear %s,</p>
					<p style="font-size: 16px; color: #555555;">You have successfully enrolled in:</p>
					<h3 style="text-align: center; color: #4CAF50; margin: 20px 0;">%s</h3>
					<p style="font-size: 14px; color: #666666;">You can now watch all the lectures and start learning.</p>
					<p style="text-align: center; font-size: 12px; color: #bbbbbb; margin-top: 20px;">Learnify Team</p>
				</div>
			</body>
		</html>
	`, userName, courseName)

	message := []byte(subject + "\n" + body)
	auth := smtp.PlainAuth("", from, password, smtpHost)

	if err := smtp.SendMail(smtpHost+":"+smtpPort, auth, from, to, message); err != nil {
		fmt.Println("Error sending enrollment email:", err)
		return err
	}

	return nil
}
