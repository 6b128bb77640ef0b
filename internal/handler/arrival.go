package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/kritsada/arrival-card-service/internal/model"
	"github.com/kritsada/arrival-card-service/internal/repository"
	"github.com/kritsada/arrival-card-service/internal/service"
	"github.com/kritsada/arrival-card-service/internal/validator"
)

// ProfileGetter loads one persisted profile for the lookup endpoint.
type ProfileGetter interface {
	GetByID(ctx context.Context, id uint64) (*model.PersonalProfile, error)
}

// ArrivalHandler exposes the arrival-card endpoints: submission and
// lookup.  Validation happens here, before the issuance workflow runs,
// so a rejected submission causes no side effects at all.
type ArrivalHandler struct {
	Issuer   *service.Issuer        // runs the issuance workflow
	Entries  service.EntryFormStore // entry-form lookups for GET
	Profiles ProfileGetter          // profile lookups for GET
}

// NewArrivalHandler constructs an ArrivalHandler with the provided
// collaborators.  All dependencies must be non-nil.
func NewArrivalHandler(issuer *service.Issuer, entries service.EntryFormStore, profiles ProfileGetter) *ArrivalHandler {
	if issuer == nil || entries == nil || profiles == nil {
		panic("nil collaborator passed to NewArrivalHandler")
	}
	return &ArrivalHandler{Issuer: issuer, Entries: entries, Profiles: profiles}
}

// Create handles POST /api/create.  The request body carries the three
// submission sections; on success the response contains the persisted
// rows, the document identifier, the public PDF URL and the allocated
// arrival-card number.  Validation failures return 400 with a
// section-keyed error map; every downstream failure returns 500 with the
// underlying error message.
func (h *ArrivalHandler) Create(c echo.Context) error {
	var req validator.CreateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"success": false,
			"message": "invalid request body",
		})
	}

	sub, verrs := validator.Validate(req)
	if verrs != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"success": false,
			"errors":  verrs,
		})
	}

	res, err := h.Issuer.Issue(c.Request().Context(), sub)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"success": false,
			"message": workflowMessage(err),
		})
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"success":       true,
		"profile":       res.Profile,
		"travel":        res.Travel,
		"entry":         res.Entry,
		"uniqueId":      res.UniqueID,
		"pdfUrl":        res.PDFURL,
		"arrivalCardNo": res.CardNo,
	})
}

// GetEntry handles GET /api/entry/:uniqueId.  It returns the entry-form
// linkage row and the traveller profile it points at.  Entry forms are
// immutable, so responses are safe to cache.
func (h *ArrivalHandler) GetEntry(c echo.Context) error {
	uniqueID := c.Param("uniqueId")
	if uniqueID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "missing unique id"})
	}
	ctx := c.Request().Context()

	entry, err := h.Entries.GetByUniqueID(ctx, uniqueID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"success": false, "message": "entry not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": err.Error()})
	}

	profile, err := h.Profiles.GetByID(ctx, entry.ProfileID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": err.Error()})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success":       true,
		"entry":         entry,
		"profile":       profile,
		"arrivalCardNo": entry.CardNo,
		"pdfUrl":        entry.PDFURL,
	})
}

// workflowMessage extracts the collaborator error text from a workflow
// failure, dropping the internal state prefix.
func workflowMessage(err error) string {
	var step *service.StepError
	if errors.As(err, &step) {
		return step.Err.Error()
	}
	return err.Error()
}
