package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/toptiermen/platform/internal/ads"
)

// AdsHandler exposes the campaign orchestration to admins.  The
// request body is the full campaign spec; the response carries every
// external id the run produced.  On a partial failure the ids created
// before the failing call are reported alongside the error so the
// operator can clean up on the platform; nothing is rolled back here.
type AdsHandler struct {
	Client *ads.Client
}

func NewAdsHandler(client *ads.Client) *AdsHandler { return &AdsHandler{Client: client} }

// CreateCampaign runs the create sequence.  Long: the handler awaits
// video uploads and per-ad-set pauses synchronously.
func (h *AdsHandler) CreateCampaign(c echo.Context) error {
	var spec ads.CampaignSpec
	if err := c.Bind(&spec); err != nil {
		return respondErr(c, http.StatusBadRequest, "invalid body")
	}
	spec.Name = strings.TrimSpace(spec.Name)
	if spec.Name == "" || spec.Objective == "" {
		return respondErr(c, http.StatusBadRequest, "name and objective are required")
	}
	if len(spec.AdSets) == 0 {
		return respondErr(c, http.StatusBadRequest, "at least one ad set is required")
	}

	result, err := h.Client.CreateCampaign(c.Request().Context(), spec)
	if err != nil {
		return c.JSON(http.StatusBadGateway, echo.Map{
			"success": false,
			"error":   err.Error(),
			"partial": result,
		})
	}
	return respondOK(c, http.StatusCreated, result)
}

// Insights reads the campaign-level report.
func (h *AdsHandler) Insights(c echo.Context) error {
	campaignID := c.Param("id")
	if campaignID == "" {
		return respondErr(c, http.StatusBadRequest, "campaign id required")
	}
	insights, err := h.Client.GetCampaignInsights(c.Request().Context(), campaignID, c.QueryParam("date_preset"))
	if err != nil {
		return respondErr(c, http.StatusBadGateway, err.Error())
	}
	return respondOK(c, http.StatusOK, insights)
}
