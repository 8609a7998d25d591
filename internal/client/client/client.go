package client

import (
	"context"

	"github.com/dmitrijs2005/wardrobe/internal/client/models"
)

// Client is the backend contract used by the stores.
type Client interface {
	Session(ctx context.Context) (models.Identity, error)
	Login(ctx context.Context, email, password string) (models.Identity, string, error)
	Signup(ctx context.Context, username, email, password string) (string, string, error)
	Logout(ctx context.Context) error

	ListOutfits(ctx context.Context) ([]models.Outfit, error)
	UploadOutfit(ctx context.Context, file models.UploadFile) (UploadResult, error)
	DeleteOutfit(ctx context.Context, outfitID string) (string, error)
	UpdateOutfit(ctx context.Context, outfitID string, tags models.Tags) (string, error)

	SuggestOutfits(ctx context.Context, req SuggestRequest) (models.SuggestionResult, error)
	CreateWeeklyPlan(ctx context.Context, temperature *float64) (string, error)
	GetWeeklyPlans(ctx context.Context) ([]models.BackendWeeklyPlan, error)

	OutfitChat(ctx context.Context, req ChatRequest) (ChatReply, error)
}

// SuggestRequest omits Temperature and Query when unset.
type SuggestRequest struct {
	Temperature *float64 `json:"temperature,omitempty"`
	Query       string   `json:"query,omitempty"`
}

type ChatRequest struct {
	Message     string         `json:"message"`
	Temperature *float64       `json:"temperature,omitempty"`
	Context     map[string]any `json:"context,omitempty"`
}

type ChatReply struct {
	Response  string   `json:"response"`
	ImageURLs []string `json:"image_urls,omitempty"`
	Message   string   `json:"message"`
}

type UploadResult struct {
	OutfitID string `json:"outfit_id"`
	Message  string `json:"message"`
}

type messageResponse struct {
	Result  bool   `json:"result"`
	Message string `json:"message"`
}

type credentialsRequest struct {
	Username string `json:"username,omitempty"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Message  string `json:"message"`
}

type outfitsResponse struct {
	Outfits []models.Outfit `json:"outfits"`
}

type updateOutfitRequest struct {
	OutfitID string      `json:"outfit_id"`
	Tags     models.Tags `json:"tags"`
}

type suggestResponse struct {
	Outfits           []models.Outfit `json:"outfits"`
	CompositeImageURL string          `json:"composite_image_url"`
	Message           string          `json:"message"`
}

type createPlanRequest struct {
	Temperature *float64 `json:"temperature,omitempty"`
}

type weeklyPlansResponse struct {
	WeeklyPlans []models.BackendWeeklyPlan `json:"weekly_plans"`
}
