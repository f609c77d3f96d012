package web

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"trendboard/internal/domain"
	"trendboard/internal/usecases"
	"trendboard/internal/validation"
	"trendboard/pkg/log"
)

// UseCases groups the operations served over HTTP.
type UseCases struct {
	Trends       *usecases.GetTrendsUseCase
	Recommend    *usecases.RecommendContentUseCase
	ToggleSave   *usecases.ToggleSaveUseCase
	Saved        *usecases.SavedContentUseCase
	Profile      *usecases.ProfileUseCase
	TrendDetails *usecases.TrendDetailsUseCase
}

// Handlers contains the HTTP handlers for the API.
type Handlers struct {
	uc      UseCases
	timeout time.Duration
}

// NewHandlers creates a new Handlers instance. Each request's backend work
// is bounded by timeout.
func NewHandlers(uc UseCases, timeout time.Duration) *Handlers {
	return &Handlers{
		uc:      uc,
		timeout: timeout,
	}
}

type errorResponse struct {
	Error  string                  `json:"error"`
	Fields []validation.FieldError `json:"fields,omitempty"`
}

type trendsResponse struct {
	Platform domain.Platform   `json:"platform"`
	Period   domain.TimePeriod `json:"period"`
	Trends   []domain.Trend    `json:"trends"`
}

type recommendationsResponse struct {
	Period domain.TimePeriod              `json:"period"`
	Items  []domain.ContentRecommendation `json:"items"`
}

type savedResponse struct {
	Items    []domain.SavedContent `json:"items"`
	Fallback bool                  `json:"fallback"`
}

type toggleRequest struct {
	IsSaved *bool `json:"isSaved"`
}

type toggleResponse struct {
	Success bool `json:"success"`
}

func (h *Handlers) requestContext(c *fiber.Ctx) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.UserContext(), h.timeout)
}

// Health reports liveness.
func (h *Handlers) Health(c *fiber.Ctx) error {
	return c.SendString("ok")
}

// Trends serves one platform's trends for a period.
func (h *Handlers) Trends(c *fiber.Ctx) error {
	platform, period, err := ParseTrendParams(c.Params("platform"), c.Query("period"))
	if err != nil {
		return respondError(c, err)
	}

	ctx, cancel := h.requestContext(c)
	defer cancel()

	return c.JSON(trendsResponse{
		Platform: platform,
		Period:   period,
		Trends:   h.uc.Trends.Execute(ctx, platform, period),
	})
}

// TrendDetails serves the drill-down view of one tag.
func (h *Handlers) TrendDetails(c *fiber.Ctx) error {
	platform, err := domain.ParsePlatform(c.Params("platform"))
	if err != nil {
		return respondError(c, err)
	}

	details, err := h.uc.TrendDetails.Execute(platform, c.Query("tag"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(details)
}

// Recommendations serves three content ideas, one per platform.
func (h *Handlers) Recommendations(c *fiber.Ctx) error {
	period, err := domain.ParsePeriod(c.Query("period"))
	if err != nil {
		return respondError(c, err)
	}

	ctx, cancel := h.requestContext(c)
	defer cancel()

	return c.JSON(recommendationsResponse{
		Period: period,
		Items:  h.uc.Recommend.Execute(ctx, period),
	})
}

// SavedContent lists saved items, optionally filtered.
func (h *Handlers) SavedContent(c *fiber.Ctx) error {
	filter, err := ParseSavedFilter(c.Query("platform"), c.Query("contentType"))
	if err != nil {
		return respondError(c, err)
	}

	ctx, cancel := h.requestContext(c)
	defer cancel()

	items, fromFallback := h.uc.Saved.List(ctx, filter)
	return c.JSON(savedResponse{Items: items, Fallback: fromFallback})
}

// SavedFacets lists the categories and platforms present in saved content.
func (h *Handlers) SavedFacets(c *fiber.Ctx) error {
	ctx, cancel := h.requestContext(c)
	defer cancel()

	return c.JSON(h.uc.Saved.Facets(ctx))
}

// ToggleSave sets the saved flag of one item.
func (h *Handlers) ToggleSave(c *fiber.Ctx) error {
	var req toggleRequest
	if err := c.BodyParser(&req); err != nil || req.IsSaved == nil {
		return c.Status(fiber.StatusBadRequest).JSON(errorResponse{Error: "Send a JSON body with an isSaved true or false value."})
	}

	ctx, cancel := h.requestContext(c)
	defer cancel()

	return c.JSON(toggleResponse{Success: h.uc.ToggleSave.Execute(ctx, c.Params("id"), *req.IsSaved)})
}

// GetProfile serves the user's profile.
func (h *Handlers) GetProfile(c *fiber.Ctx) error {
	ctx, cancel := h.requestContext(c)
	defer cancel()

	p, err := h.uc.Profile.Get(ctx)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(p)
}

// UpdateProfile validates and stores the user's profile.
func (h *Handlers) UpdateProfile(c *fiber.Ctx) error {
	var p domain.Profile
	if err := c.BodyParser(&p); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(errorResponse{Error: "That profile couldn't be read. Send it as JSON."})
	}

	ctx, cancel := h.requestContext(c)
	defer cancel()

	saved, err := h.uc.Profile.Update(ctx, p)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(saved)
}

// respondError writes err as a JSON error with a matching status.
func respondError(c *fiber.Ctx, err error) error {
	status := statusFor(err)
	if status >= fiber.StatusInternalServerError {
		log.GlobalErrorCtx(c.UserContext(), "request failed", "path", c.Path(), "error", err)
	}

	resp := errorResponse{Error: friendlyError(err)}
	var verr *validation.Error
	if errors.As(err, &verr) {
		resp.Fields = verr.Fields
	}
	return c.Status(status).JSON(resp)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidPlatform),
		errors.Is(err, domain.ErrInvalidPeriod),
		errors.Is(err, domain.ErrInvalidContentType),
		errors.Is(err, domain.ErrInvalidTag),
		errors.Is(err, domain.ErrInvalidProfile):
		return fiber.StatusBadRequest
	case errors.Is(err, domain.ErrMissingToken), errors.Is(err, domain.ErrTokenExpired):
		return fiber.StatusUnauthorized
	case errors.Is(err, domain.ErrRateLimited):
		return fiber.StatusTooManyRequests
	case errors.Is(err, domain.ErrCircuitOpen):
		return fiber.StatusServiceUnavailable
	case errors.Is(err, context.DeadlineExceeded):
		return fiber.StatusGatewayTimeout
	default:
		return fiber.StatusBadGateway
	}
}

// friendlyError returns a neutral, non-blaming error message.
func friendlyError(err error) string {
	switch {
	case errors.Is(err, domain.ErrInvalidPlatform):
		return "That platform isn't supported. Try x, tiktok or youtube."
	case errors.Is(err, domain.ErrInvalidPeriod):
		return "That time period isn't supported. Try today, week or month."
	case errors.Is(err, domain.ErrInvalidContentType):
		return "That content type isn't supported. Try video, image or article."
	case errors.Is(err, domain.ErrInvalidTag):
		return "Pick a trend to see its details."
	case errors.Is(err, domain.ErrInvalidProfile):
		return "Some profile fields need another look."
	case errors.Is(err, domain.ErrMissingToken):
		return "Please sign in to continue."
	case errors.Is(err, domain.ErrTokenExpired):
		return "Your session has expired. Please sign in again."
	case errors.Is(err, domain.ErrRateLimited):
		return "Too many requests. Please wait a moment and try again."
	case errors.Is(err, domain.ErrCircuitOpen):
		return "The service is busy right now. Please try again in a moment."
	default:
		return "Unable to load this right now. Please try again in a moment."
	}
}
