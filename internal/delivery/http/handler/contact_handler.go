package handler

import (
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"github.com/grandaincontri/incontri-backend/internal/usecase/contact"
)

type ContactHandler struct {
	contactUseCase *contact.ContactUseCase
	logger         *slog.Logger
}

func NewContactHandler(contactUseCase *contact.ContactUseCase, logger *slog.Logger) *ContactHandler {
	return &ContactHandler{
		contactUseCase: contactUseCase,
		logger:         logger,
	}
}

// ContactResponse reports the two steps of the submission independently;
// the outcome distinguishes all four combinations.
type ContactResponse struct {
	Outcome contact.Outcome `json:"outcome"`
	Message string          `json:"message"`
	Result  *contact.Result `json:"result,omitempty"`
}

// Submit handles POST /contact. This is the only public write path, so
// anything unexpected is caught here, logged with full detail and turned
// into a generic failure instead of leaking out.
func (h *ContactHandler) Submit(c *gin.Context) {
	defer func() {
		if r := recover(); r != nil {
			h.logger.ErrorContext(c.Request.Context(), "unhandled panic in contact submission",
				slog.Any("panic", r),
				slog.String("stack", string(debug.Stack())),
			)
			c.JSON(http.StatusInternalServerError, ErrorResponse{
				Error: "Si è verificato un errore interno durante l'invio del messaggio.",
			})
		}
	}()

	var req contact.SubmitRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "invalid request body",
		})
		return
	}

	result, valErrs := h.contactUseCase.Submit(c.Request.Context(), &req)
	if len(valErrs) > 0 {
		c.JSON(http.StatusBadRequest, ValidationResponse{
			Errors: valErrs,
		})
		return
	}

	resp := ContactResponse{
		Outcome: result.Outcome(),
		Result:  result,
	}
	status := http.StatusOK
	switch resp.Outcome {
	case contact.OutcomeSentAndSaved:
		resp.Message = "Messaggio inviato e salvato con successo!"
	case contact.OutcomeSentNotSaved:
		resp.Message = "Messaggio inviato via email, ma non salvato nel database."
	case contact.OutcomeSavedNotSent:
		resp.Message = fmt.Sprintf("Email non inviata (salvata nel database): %s", result.EmailErr.Detail)
	case contact.OutcomeFailed:
		resp.Message = fmt.Sprintf("Errore nell'invio email e nel salvataggio: %s", result.EmailErr.Detail)
		status = http.StatusInternalServerError
	}

	c.JSON(status, resp)
}
