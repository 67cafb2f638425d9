package usecase

import (
	"strings"

	"jobly-relay/internal/domain"
	"jobly-relay/pkg/telegram"
)

const submissionTitle = "<b>Новая заявка с Jobly</b>"

type messageLine struct {
	prefix string
	value  func(*domain.Submission) string
}

// Order here is the order operators read the notification in.
var submissionLines = []messageLine{
	{"👤 Имя: ", func(s *domain.Submission) string { return s.Name }},
	{"✈️ Telegram: ", func(s *domain.Submission) string { return s.TG }},
	{"📧 Email: ", func(s *domain.Submission) string { return s.Email }},
	{"💼 Вакансия: ", func(s *domain.Submission) string { return s.Job }},
	{"📍 Город: ", func(s *domain.Submission) string { return s.City }},
	{"📝 Сообщение:\n", func(s *domain.Submission) string { return s.Message }},
}

// FormatSubmission renders a submission as a Telegram HTML message. Blank
// fields produce no line at all; every value is HTML-escaped.
func FormatSubmission(sub *domain.Submission) string {
	var b strings.Builder
	b.WriteString(submissionTitle)
	b.WriteByte('\n')

	for _, line := range submissionLines {
		value := strings.TrimSpace(line.value(sub))
		if value == "" {
			continue
		}
		b.WriteString(line.prefix)
		b.WriteString(telegram.EscapeHTML(value))
		b.WriteByte('\n')
	}

	return b.String()
}
