package api

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
)

const apiVersion = "1.0.0"

// Page describes one dashboard page available for navigation.
type Page struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

var dashboardPages = []Page{
	{ID: "dashboard", Name: "Dashboard", Description: "Main dashboard overview"},
	{ID: "crop-monitor", Name: "Crop Monitor", Description: "Real-time crop monitoring"},
	{ID: "disease-detector", Name: "Disease Detector", Description: "AI-powered disease detection"},
	{ID: "market-trends", Name: "Market Trends", Description: "Price analysis and trends"},
	{ID: "cold-storage", Name: "Cold Storage", Description: "Storage booking and management"},
	{ID: "gov-schemes", Name: "Government Schemes", Description: "Available benefits and schemes"},
	{ID: "community", Name: "Community", Description: "Farmer discussion forum"},
	{ID: "profile", Name: "Profile", Description: "Account settings and preferences"},
}

// PagesHandler handles the dashboard, health, and resource stub endpoints.
type PagesHandler struct {
	*Handler
}

// NewPagesHandler creates a new pages handler.
func NewPagesHandler(base *Handler) *PagesHandler {
	return &PagesHandler{Handler: base}
}

// RegisterRoutes registers the dashboard and stub routes.
func (h *PagesHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.Root)
	r.Get("/health", h.Health)
	r.Get("/api/dashboard/pages", h.DashboardPages)
	r.Get("/api/live-data", h.LiveData)

	// Resource endpoints served by the frontend's own data layer for now.
	r.Get("/api/crop-monitor/status", h.CropMonitorStatus)
	r.Get("/api/community/posts", h.CommunityPosts)
	r.Get("/api/profile/{userID}", h.UserProfile)
	r.Get("/api/marketplace/products", h.MarketplaceProducts)
	r.Get("/api/orders/{userID}", h.UserOrders)
}

// Root returns the API banner.
func (h *PagesHandler) Root(w http.ResponseWriter, r *http.Request) {
	JSON(w, http.StatusOK, map[string]string{
		"message": "🌾 Project Kisan Smart Agent API",
		"status":  "running",
	})
}

// Health returns the service status and live session count.
func (h *PagesHandler) Health(w http.ResponseWriter, r *http.Request) {
	count, err := h.agent.SessionCount(r.Context())
	if err != nil {
		slog.Error("Failed to count sessions", "error", err)
	}
	JSON(w, http.StatusOK, map[string]interface{}{
		"status":          "healthy",
		"timestamp":       time.Now().UTC().Format(time.RFC3339),
		"active_sessions": count,
		"version":         apiVersion,
	})
}

// DashboardPages returns all pages available for navigation.
func (h *PagesHandler) DashboardPages(w http.ResponseWriter, r *http.Request) {
	JSON(w, http.StatusOK, map[string][]Page{"pages": dashboardPages})
}

// LiveData returns the live data feed placeholder.
func (h *PagesHandler) LiveData(w http.ResponseWriter, r *http.Request) {
	JSON(w, http.StatusOK, map[string]string{
		"status": "success",
		"data":   "This is live data",
	})
}

// CropMonitorStatus reports that crop monitoring has no backend yet.
func (h *PagesHandler) CropMonitorStatus(w http.ResponseWriter, r *http.Request) {
	JSON(w, http.StatusOK, map[string]string{"status": "not_implemented"})
}

// CommunityPosts returns the community feed.
func (h *PagesHandler) CommunityPosts(w http.ResponseWriter, r *http.Request) {
	JSON(w, http.StatusOK, map[string][]interface{}{"posts": {}})
}

// UserProfile returns the profile stub for a user.
func (h *PagesHandler) UserProfile(w http.ResponseWriter, r *http.Request) {
	JSON(w, http.StatusOK, map[string]string{
		"user_id": chi.URLParam(r, "userID"),
		"status":  "not_implemented",
	})
}

// MarketplaceProducts returns the marketplace catalogue.
func (h *PagesHandler) MarketplaceProducts(w http.ResponseWriter, r *http.Request) {
	JSON(w, http.StatusOK, map[string][]interface{}{"products": {}})
}

// UserOrders returns the order list for a user.
func (h *PagesHandler) UserOrders(w http.ResponseWriter, r *http.Request) {
	JSON(w, http.StatusOK, map[string]interface{}{
		"user_id": chi.URLParam(r, "userID"),
		"orders":  []interface{}{},
	})
}

// pageTitle renders a page id as a human-readable name.
func pageTitle(pageID string) string {
	return strings.ReplaceAll(pageID, "-", " ")
}
