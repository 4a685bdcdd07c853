package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/grandaincontri/incontri-backend/internal/delivery/http/middleware"
	"github.com/grandaincontri/incontri-backend/internal/domain"
	"github.com/grandaincontri/incontri-backend/internal/repository"
	"github.com/grandaincontri/incontri-backend/internal/usecase/listing"
)

type ListingHandler struct {
	listingUseCase *listing.ListingUseCase
	sessions       repository.SessionStore
	logger         *slog.Logger
}

func NewListingHandler(listingUseCase *listing.ListingUseCase, sessions repository.SessionStore, logger *slog.Logger) *ListingHandler {
	return &ListingHandler{
		listingUseCase: listingUseCase,
		sessions:       sessions,
		logger:         logger,
	}
}

// ListingResponse is the listing page payload: the filtered profiles, the
// edit-view target when one was requested, and any one-shot form state a
// failed submission parked on the session.
type ListingResponse struct {
	*listing.ListResult
	ToEdit        bool                  `json:"to_edit"`
	ProfileToEdit *domain.Profile       `json:"profile_to_edit,omitempty"`
	Form          *repository.FormState `json:"form,omitempty"`
}

// List handles GET /listings. The name and id criteria are only honored
// for authenticated sessions; anonymous callers get them silently ignored.
func (h *ListingHandler) List(c *gin.Context) {
	authenticated := middleware.IsAuthenticated(c)

	criteria := listing.Criteria{
		Gender:        strings.TrimSpace(c.Query("gender")),
		AgeRange:      strings.TrimSpace(c.Query("age_range")),
		HairColor:     strings.TrimSpace(c.Query("hair_color")),
		EyesColor:     strings.TrimSpace(c.Query("eyes_color")),
		Authenticated: authenticated,
	}
	if authenticated {
		criteria.Name = strings.TrimSpace(c.Query("name"))
		if raw := strings.TrimSpace(c.Query("id")); raw != "" {
			if id, err := strconv.Atoi(raw); err == nil {
				criteria.ID = &id
			}
		}
	}

	result, err := h.listingUseCase.List(c.Request.Context(), criteria)
	if err != nil {
		h.logger.ErrorContext(c.Request.Context(), "listing failed", slog.Any("error", err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error: "failed to load listings",
		})
		return
	}

	resp := &ListingResponse{ListResult: result}

	if raw := strings.TrimSpace(c.Query("profile_id")); raw != "" && authenticated {
		if id, err := strconv.Atoi(raw); err == nil {
			profile, err := h.listingUseCase.GetForEdit(c.Request.Context(), id)
			switch {
			case err == nil:
				resp.ProfileToEdit = profile
				resp.ToEdit = true
			case !errors.Is(err, domain.ErrProfileNotFound):
				h.logger.WarnContext(c.Request.Context(), "edit target lookup failed", slog.Any("error", err))
			}
		}
	}

	form, err := h.sessions.PopFormState(c.Request.Context(), middleware.SessionID(c))
	if err != nil {
		h.logger.WarnContext(c.Request.Context(), "form state pop failed", slog.Any("error", err))
	} else {
		resp.Form = form
	}

	c.JSON(http.StatusOK, resp)
}

// Home handles GET /home with the landing-page summary.
func (h *ListingHandler) Home(c *gin.Context) {
	result, err := h.listingUseCase.Home(c.Request.Context())
	if err != nil {
		h.logger.ErrorContext(c.Request.Context(), "home summary failed", slog.Any("error", err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error: "failed to load home summary",
		})
		return
	}

	c.JSON(http.StatusOK, result)
}
