package contact

import (
	"context"
	"fmt"
	"html"
	"log/slog"
	"strconv"
	"strings"

	"github.com/grandaincontri/incontri-backend/internal/domain"
	"github.com/grandaincontri/incontri-backend/internal/infrastructure/mailer"
	"github.com/grandaincontri/incontri-backend/internal/repository"
)

// SubmitRequest is the public contact form. ProfileID and ProfileName
// identify the listing the inquiry is about; both may be absent.
type SubmitRequest struct {
	ProfileID     string `form:"profile_id" json:"profile_id"`
	ProfileName   string `form:"profile_name" json:"profile_name"`
	SenderName    string `form:"sender_name" json:"sender_name"`
	SenderPhone   string `form:"sender_phone" json:"sender_phone"`
	SenderEmail   string `form:"sender_email" json:"sender_email"`
	SenderJob     string `form:"sender_job" json:"sender_job"`
	SenderAge     string `form:"sender_age" json:"sender_age"`
	SenderCity    string `form:"sender_city" json:"sender_city"`
	SenderMessage string `form:"sender_message" json:"sender_message"`
	AgreePrivacy  string `form:"agree_privacy" json:"agree_privacy"`
}

// StepError is a failed step of the submission flow, tagged with its
// stable kind so callers never have to match on message strings.
type StepError struct {
	Kind   domain.ErrorKind `json:"kind"`
	Detail string           `json:"detail"`
}

// Outcome is the combined result of the two independent steps.
type Outcome string

const (
	OutcomeSentAndSaved Outcome = "sent_and_saved"
	OutcomeSentNotSaved Outcome = "sent_not_saved"
	OutcomeSavedNotSent Outcome = "saved_not_sent"
	OutcomeFailed       Outcome = "failed"
)

// Result reports delivery and persistence independently; either can fail
// without affecting the other.
type Result struct {
	MessageID int        `json:"message_id,omitempty"`
	EmailErr  *StepError `json:"email_error,omitempty"`
	SaveErr   *StepError `json:"save_error,omitempty"`
}

func (r *Result) EmailSent() bool { return r.EmailErr == nil }
func (r *Result) Saved() bool     { return r.SaveErr == nil }

func (r *Result) Outcome() Outcome {
	switch {
	case r.EmailSent() && r.Saved():
		return OutcomeSentAndSaved
	case r.EmailSent():
		return OutcomeSentNotSaved
	case r.Saved():
		return OutcomeSavedNotSent
	default:
		return OutcomeFailed
	}
}

type ContactUseCase struct {
	messageRepo repository.MessageRepository
	mail        mailer.Mailer
	logger      *slog.Logger
}

func NewContactUseCase(
	messageRepo repository.MessageRepository,
	mail mailer.Mailer,
	logger *slog.Logger,
) *ContactUseCase {
	return &ContactUseCase{
		messageRepo: messageRepo,
		mail:        mail,
		logger:      logger,
	}
}

// Submit validates the form, then notifies the operator and records the
// inquiry as two independent steps. Validation failure stops the whole
// flow: neither the mailer nor the repository is touched.
func (uc *ContactUseCase) Submit(ctx context.Context, req *SubmitRequest) (*Result, domain.ValidationErrors) {
	senderName := strings.TrimSpace(req.SenderName)
	senderPhone := strings.TrimSpace(req.SenderPhone)
	senderEmail := strings.TrimSpace(req.SenderEmail)
	senderAge := strings.TrimSpace(req.SenderAge)
	senderCity := strings.TrimSpace(req.SenderCity)

	senderJob := strings.TrimSpace(req.SenderJob)
	if senderJob == "" {
		senderJob = "—"
	}
	senderMsg := strings.TrimSpace(req.SenderMessage)
	if senderMsg == "" {
		senderMsg = "—"
	}

	var errs domain.ValidationErrors
	if senderName == "" {
		errs = errs.Add("Il nome è obbligatorio.")
	}
	if senderPhone == "" {
		errs = errs.Add("Il cellulare è obbligatorio.")
	}
	// The address ends up in a Reply-To header, so anything that could
	// split a header line is invalid, not just a missing "@".
	if senderEmail == "" || !strings.Contains(senderEmail, "@") ||
		strings.ContainsAny(senderEmail, " \t\r\n") {
		errs = errs.Add("Email non valida.")
	}
	age := 0
	if senderAge == "" {
		errs = errs.Add("L'età è obbligatoria.")
	} else if parsed, err := strconv.Atoi(senderAge); err != nil || parsed <= 0 {
		errs = errs.Add("L'età deve essere un numero.")
	} else {
		age = parsed
	}
	if senderCity == "" {
		errs = errs.Add("La città è obbligatoria.")
	}
	if strings.TrimSpace(req.AgreePrivacy) == "" {
		errs = errs.Add("Devi accettare l'informativa privacy.")
	}
	if len(errs) > 0 {
		return nil, errs
	}

	var profileID *int
	if id, err := strconv.Atoi(strings.TrimSpace(req.ProfileID)); err == nil && id > 0 {
		profileID = &id
	}

	result := &Result{}

	email := buildEmail(req.ProfileName, profileID, senderName, senderEmail, senderPhone, senderJob, senderAge, senderCity, senderMsg)
	if err := uc.mail.Send(ctx, email); err != nil {
		uc.logger.ErrorContext(ctx, "contact email delivery failed", slog.Any("error", err))
		result.EmailErr = &StepError{Kind: domain.KindDelivery, Detail: err.Error()}
	}

	message := &domain.Message{
		SenderName:    senderName,
		SenderPhone:   senderPhone,
		SenderEmail:   senderEmail,
		SenderJob:     senderJob,
		SenderAge:     age,
		SenderCity:    senderCity,
		SenderMessage: senderMsg,
		ProfileID:     profileID,
		CreatedAt:     domain.UTCNow(),
	}
	if err := uc.messageRepo.Insert(ctx, message); err != nil {
		uc.logger.ErrorContext(ctx, "contact message persistence failed", slog.Any("error", err))
		result.SaveErr = &StepError{Kind: domain.KindPersistence, Detail: err.Error()}
	} else {
		result.MessageID = message.ID
	}

	return result, nil
}

func buildEmail(profileName string, profileID *int, name, email, phone, job, age, city, msg string) mailer.Email {
	displayName := profileName
	if displayName == "" {
		displayName = "(senza nome)"
	}

	subject := fmt.Sprintf("Nuovo contatto per %s", orDefault(profileName, "profilo"))
	if profileID != nil {
		subject += fmt.Sprintf(" (ID %d)", *profileID)
	}

	textBody := fmt.Sprintf(`Hai ricevuto un nuovo contatto per il profilo %s.

Dettagli mittente:
- Nome: %s
- Email: %s
- Cellulare: %s
- Lavoro: %s
- Età: %s
- Città: %s

Messaggio:
%s
`, displayName, name, email, phone, job, age, city, msg)

	esc := html.EscapeString
	htmlBody := fmt.Sprintf(`<html>
<body style="font-family: Arial, sans-serif; line-height:1.5;">
  <p>Hai ricevuto un nuovo contatto per il profilo <b>%s</b>.</p>
  <p><b>Nome:</b> %s</p>
  <p><b>Email:</b> <a href="mailto:%s">%s</a></p>
  <p><b>Cellulare:</b> <a href="tel:%s">%s</a></p>
  <p><b>Lavoro:</b> %s</p>
  <p><b>Età:</b> %s</p>
  <p><b>Città:</b> %s</p>
  <p><b>Messaggio:</b><br>%s</p>
</body>
</html>
`, esc(displayName), esc(name), esc(email), esc(email), esc(phone), esc(phone), esc(job), esc(age), esc(city), esc(msg))

	return mailer.Email{
		Subject:  subject,
		TextBody: textBody,
		HTMLBody: htmlBody,
		ReplyTo:  email,
	}
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
