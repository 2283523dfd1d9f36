package api

import (
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"backyard-leads/pkg/clients/leadsapi"
	"backyard-leads/pkg/clients/payment"
	"backyard-leads/pkg/config"
	"backyard-leads/pkg/export"
	"backyard-leads/pkg/models"
	"backyard-leads/pkg/services"
	"backyard-leads/pkg/store"
)

// Fixed screen messages. Remote errors show the backend's detail string when
// it gave one, otherwise the screen's fallback.
const (
	msgEmptyLocation   = "Please enter a location"
	msgMissingFields   = "Please fill in all required fields"
	msgPaymentDeclined = "Your card was declined. Please use a different card."
	fallbackValidation = `We couldn't find that US location. Try a city or neighborhood (e.g., "Carmel Valley, San Diego").`
	fallbackFetch      = "We're having trouble fetching data. Please wait a moment and retry."
	fallbackPayment    = "Payment didn't complete. Please try again or use a different card."
)

// How many leads the results page previews
const previewLimit = 6

// sessionCookie carries the order store token from checkout to success
const sessionCookie = "bl_order"

// Handlers contains all HTTP handlers for the storefront
type Handlers struct {
	cfg             *config.Config
	leadsClient     leadsapi.Client
	checkoutService services.CheckoutService
	orders          *store.OrderStore
	logger          *slog.Logger
}

// NewHandlers creates a new Handlers instance
func NewHandlers(
	cfg *config.Config,
	leadsClient leadsapi.Client,
	checkoutService services.CheckoutService,
	orders *store.OrderStore,
	logger *slog.Logger,
) *Handlers {
	return &Handlers{
		cfg:             cfg,
		leadsClient:     leadsClient,
		checkoutService: checkoutService,
		orders:          orders,
		logger:          logger,
	}
}

// HealthCheck handler for monitoring
func (h *Handlers) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
	})
}

// SearchPage renders the location search form
func (h *Handlers) SearchPage(c *gin.Context) {
	c.HTML(http.StatusOK, "search.html", gin.H{
		"Location": "",
		"Error":    "",
	})
}

// HandleSearch validates the submitted location. Empty input is rejected
// without a network call; a validated location redirects to the results page
// with the location carried as a query parameter.
func (h *Handlers) HandleSearch(c *gin.Context) {
	location := strings.TrimSpace(c.PostForm("location"))
	if location == "" {
		c.HTML(http.StatusBadRequest, "search.html", gin.H{
			"Location": "",
			"Error":    msgEmptyLocation,
		})
		return
	}

	if err := h.leadsClient.ValidateLocation(c.Request.Context(), location); err != nil {
		c.HTML(http.StatusBadGateway, "search.html", gin.H{
			"Location": location,
			"Error":    remoteMessage(err, fallbackValidation),
		})
		return
	}

	c.Redirect(http.StatusSeeOther, "/results?location="+url.QueryEscape(location))
}

// leadView pairs a lead with whether its aerial image host is allow-listed
type leadView struct {
	models.Lead
	ShowImage bool
}

// ResultsPage fetches and previews leads for the location in the query
// string. Changing the lead count re-requests this page, so every count
// selection is exactly one fresh fetch. Without a location the page stays
// idle and nothing is fetched.
func (h *Handlers) ResultsPage(c *gin.Context) {
	location := c.Query("location")
	count := parseCount(c.Query("count"))
	quote := models.NewQuote(count)

	if location == "" {
		c.HTML(http.StatusOK, "results.html", gin.H{
			"Location": "",
			"Count":    count,
			"Quote":    quote,
		})
		return
	}

	batch, err := h.leadsClient.FetchLeads(c.Request.Context(), location, count)
	if err != nil {
		// The count selector keeps its value and no partial list renders
		c.HTML(http.StatusBadGateway, "results.html", gin.H{
			"Location": location,
			"Count":    count,
			"Quote":    quote,
			"Error":    remoteMessage(err, fallbackFetch),
		})
		return
	}

	preview := make([]leadView, 0, previewLimit)
	for _, lead := range batch.Leads {
		if len(preview) == previewLimit {
			break
		}
		preview = append(preview, leadView{
			Lead:      lead,
			ShowImage: h.imageAllowed(lead.Imagery.ImageURL),
		})
	}

	c.HTML(http.StatusOK, "results.html", gin.H{
		"Location":   location,
		"Count":      count,
		"Quote":      quote,
		"FoundCount": len(batch.Leads),
		"Preview":    preview,
	})
}

// CheckoutPage renders the buyer identity form with the quote for the
// location and count carried over from results
func (h *Handlers) CheckoutPage(c *gin.Context) {
	location := c.Query("location")
	count := parseCount(c.Query("count"))

	c.HTML(http.StatusOK, "checkout.html", gin.H{
		"Location":    location,
		"Count":       count,
		"Quote":       models.NewQuote(count),
		"CompanyName": "",
		"Email":       "",
	})
}

// HandleCheckout submits the purchase. Missing buyer fields never reach the
// network. Failures re-render the form with its values retained so the user
// can resubmit; a payment decline and a fulfillment failure show different
// messages. Success stores the order, sets the session cookie, and redirects
// to the success page.
func (h *Handlers) HandleCheckout(c *gin.Context) {
	location := c.Query("location")
	count := parseCount(c.Query("count"))

	var form models.CheckoutForm
	if err := c.ShouldBind(&form); err != nil {
		h.logger.Warn("malformed checkout form", "error", err)
	}

	renderError := func(status int, message string) {
		c.HTML(status, "checkout.html", gin.H{
			"Location":    location,
			"Count":       count,
			"Quote":       models.NewQuote(count),
			"CompanyName": form.CompanyName,
			"Email":       form.Email,
			"Error":       message,
		})
	}

	token, err := h.checkoutService.Submit(c.Request.Context(), location, count, form)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrMissingFields):
			renderError(http.StatusBadRequest, msgMissingFields)
		case errors.Is(err, payment.ErrDeclined):
			renderError(http.StatusPaymentRequired, msgPaymentDeclined)
		default:
			renderError(http.StatusBadGateway, remoteMessage(err, fallbackPayment))
		}
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(sessionCookie, token, int(h.cfg.SessionTTL.Seconds()), "/", "", false, true)
	c.Redirect(http.StatusSeeOther, "/success?location="+url.QueryEscape(location)+"&count="+strconv.Itoa(count))
}

// SuccessPage shows the fulfilled order and its download links. Location and
// count come from this page's own query parameters, the order from the
// session cookie. A deep link with no session still renders; the order
// summary and downloads simply do not appear.
func (h *Handlers) SuccessPage(c *gin.Context) {
	location := c.Query("location")
	count := parseCount(c.Query("count"))

	data := gin.H{
		"Location": location,
		"Count":    count,
		"MapURL":   "https://www.google.com/maps/search/?api=1&query=" + url.QueryEscape(location),
	}

	if order, ok := h.sessionOrder(c); ok {
		data["HasOrder"] = true
		data["CompanyName"] = order.CompanyName
		data["Email"] = order.Email
		data["TotalLeads"] = order.Batch.Count
	}

	c.HTML(http.StatusOK, "success.html", data)
}

// DownloadJSON serves the order's lead batch envelope as a JSON file
func (h *Handlers) DownloadJSON(c *gin.Context) {
	order, ok := h.sessionOrder(c)
	if !ok {
		c.String(http.StatusNotFound, "no order found for this session")
		return
	}

	data, err := export.JSON(order.Batch)
	if err != nil {
		h.logger.Error("json export failed", "error", err)
		c.String(http.StatusInternalServerError, "export failed")
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+export.Filename(order.Location, "json")+`"`)
	c.Data(http.StatusOK, "application/json", data)
}

// DownloadCSV serves the order's leads as a flat CSV file
func (h *Handlers) DownloadCSV(c *gin.Context) {
	order, ok := h.sessionOrder(c)
	if !ok {
		c.String(http.StatusNotFound, "no order found for this session")
		return
	}

	data, err := export.CSV(order.Batch)
	if err != nil {
		h.logger.Error("csv export failed", "error", err)
		c.String(http.StatusInternalServerError, "export failed")
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+export.Filename(order.Location, "csv")+`"`)
	c.Data(http.StatusOK, "text/csv", data)
}

func (h *Handlers) sessionOrder(c *gin.Context) (*models.Order, bool) {
	token, err := c.Cookie(sessionCookie)
	if err != nil || token == "" {
		return nil, false
	}
	return h.orders.Get(token)
}

func (h *Handlers) imageAllowed(rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil || u.Hostname() == "" {
		return false
	}
	return h.cfg.ImageHostAllowed(u.Hostname())
}

// parseCount reads a requested lead count, defaulting when the value is
// absent or not a positive integer
func parseCount(raw string) int {
	count, err := strconv.Atoi(raw)
	if err != nil || count <= 0 {
		return models.DefaultCount
	}
	return count
}

// remoteMessage picks the user-facing text for a failed backend call: the
// backend's detail string when present, the screen fallback otherwise
func remoteMessage(err error, fallback string) string {
	var apiErr *leadsapi.APIError
	if errors.As(err, &apiErr) && apiErr.Detail != "" {
		return apiErr.Detail
	}
	return fallback
}
