// FILE: internal/pkg/mailer/email_service.go
package mailer

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

type IEmailService interface {
	SendAnalysisCompleted(toEmail, purchaseID, taskID string) error
	SendAnalysisFailed(toEmail, purchaseID, reason string) error
}

type emailService struct {
	dialer      *gomail.Dialer
	senderEmail string
	senderName  string
	clientURL   string
}

func NewEmailService(host string, port int, username, password, senderEmail, senderName, clientURL string) IEmailService {
	d := gomail.NewDialer(host, port, username, password)

	return &emailService{
		dialer:      d,
		senderEmail: senderEmail,
		senderName:  senderName,
		clientURL:   clientURL,
	}
}

func (s *emailService) SendAnalysisCompleted(toEmail, purchaseID, taskID string) error {
	m := gomail.NewMessage()
	m.SetAddressHeader("From", s.senderEmail, s.senderName)
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", fmt.Sprintf("Анализ закупки %s готов", purchaseID))

	reportLink := fmt.Sprintf("%s/procurement/%s?task=%s", s.clientURL, purchaseID, taskID)

	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>Анализ завершён</h2>
			<p>Проверка закупки <b>%s</b> завершена. Отчёт доступен по ссылке:</p>
			<a href="%s" style="background-color: #007BFF; color: white; padding: 10px 20px; text-decoration: none; border-radius: 5px; display: inline-block;">Открыть отчёт</a>
			<p>Или скопируйте ссылку:</p>
			<p>%s</p>
		</div>
	`, purchaseID, reportLink, reportLink)

	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("send completion notification: %w", err)
	}
	return nil
}

func (s *emailService) SendAnalysisFailed(toEmail, purchaseID, reason string) error {
	m := gomail.NewMessage()
	m.SetAddressHeader("From", s.senderEmail, s.senderName)
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", fmt.Sprintf("Анализ закупки %s не выполнен", purchaseID))

	if reason == "" {
		reason = "Произошла ошибка при анализе закупки"
	}

	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>Анализ не выполнен</h2>
			<p>Проверку закупки <b>%s</b> завершить не удалось:</p>
			<p>%s</p>
			<p>Токены за неудавшийся анализ не списываются.</p>
		</div>
	`, purchaseID, reason)

	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("send failure notification: %w", err)
	}
	return nil
}
