package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/grandaincontri/incontri-backend/internal/delivery/http/middleware"
	"github.com/grandaincontri/incontri-backend/internal/repository"
	"github.com/grandaincontri/incontri-backend/internal/usecase/profile"
)

type ProfileHandler struct {
	profileUseCase *profile.ProfileUseCase
	sessions       repository.SessionStore
	logger         *slog.Logger
}

func NewProfileHandler(profileUseCase *profile.ProfileUseCase, sessions repository.SessionStore, logger *slog.Logger) *ProfileHandler {
	return &ProfileHandler{
		profileUseCase: profileUseCase,
		sessions:       sessions,
		logger:         logger,
	}
}

// mutationRequest is the full admin form: the profile fields plus the
// action flag that short-circuits to delete.
type mutationRequest struct {
	profile.SaveRequest
	Action string `form:"action" json:"action"`
}

// Mutate handles POST /profiles, the single mutation endpoint: a missing
// profile_id means create, action=delete means delete, anything else is a
// full-replace update.
func (h *ProfileHandler) Mutate(c *gin.Context) {
	var req mutationRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "invalid request body",
		})
		return
	}

	if req.Action == "delete" && req.ProfileID > 0 {
		if err := h.profileUseCase.Delete(c.Request.Context(), req.ProfileID); err != nil {
			h.logger.ErrorContext(c.Request.Context(), "profile delete failed", slog.Any("error", err))
			c.JSON(http.StatusInternalServerError, ErrorResponse{
				Error: "failed to delete profile",
			})
			return
		}
		c.JSON(http.StatusOK, SuccessResponse{
			Message: "Profilo eliminato con successo!",
		})
		return
	}

	saved, valErrs, err := h.profileUseCase.Save(c.Request.Context(), &req.SaveRequest)
	if err != nil {
		h.logger.ErrorContext(c.Request.Context(), "profile save failed", slog.Any("error", err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error: "failed to save profile",
		})
		return
	}

	if len(valErrs) > 0 {
		// Park the submission for the form to replay. A failed update
		// keeps its profile_id so the same record reopens; a failed
		// create goes back to a blank form.
		state := &repository.FormState{
			Values: formValues(&req.SaveRequest),
			Errors: valErrs,
		}
		if err := h.sessions.PutFormState(c.Request.Context(), middleware.SessionID(c), state); err != nil {
			h.logger.WarnContext(c.Request.Context(), "form state store failed", slog.Any("error", err))
		}
		c.JSON(http.StatusBadRequest, ValidationResponse{
			Errors:    valErrs,
			ProfileID: req.ProfileID,
		})
		return
	}

	if req.IsUpdate() {
		c.JSON(http.StatusOK, gin.H{
			"message": "Profilo aggiornato con successo!",
			"profile": saved,
		})
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message": "Profilo creato e pubblicato!",
		"profile": saved,
	})
}

func formValues(req *profile.SaveRequest) map[string]string {
	return map[string]string{
		"profile_id":     strconv.Itoa(req.ProfileID),
		"first_name":     req.FirstName,
		"last_name":      req.LastName,
		"gender":         req.Gender,
		"birth_year":     req.BirthYear,
		"city":           req.City,
		"occupation":     req.Occupation,
		"eyes_color":     req.EyesColor,
		"hair_color":     req.HairColor,
		"zodiac_sign":    req.ZodiacSign,
		"height_m":       req.HeightM,
		"height_cm":      req.HeightCm,
		"weight_kg":      req.WeightKg,
		"marital_status": req.MaritalStatus,
		"smoker":         req.Smoker,
		"bio":            req.Bio,
	}
}
