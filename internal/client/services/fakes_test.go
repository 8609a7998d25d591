package services

import (
	"context"
	"net/http"
	"sync"

	"github.com/dmitrijs2005/wardrobe/internal/client/client"
	"github.com/dmitrijs2005/wardrobe/internal/client/models"
	"github.com/dmitrijs2005/wardrobe/internal/common"
)

// ---- fake client ----

// fakeClient implements client.Client. Each operation is served by its
// func field when set, else by the Ret/Err fields.
type fakeClient struct {
	mu    sync.Mutex
	calls map[string]int

	SessionRet models.Identity
	SessionErr error

	LoginRet models.Identity
	LoginErr error

	SignupMsg string
	SignupErr error

	LogoutErr error

	ListFn  func(ctx context.Context) ([]models.Outfit, error)
	ListRet []models.Outfit
	ListErr error

	UploadRet client.UploadResult
	UploadErr error

	DeleteErr error
	UpdateErr error

	SuggestFn  func(ctx context.Context, req client.SuggestRequest) (models.SuggestionResult, error)
	SuggestRet models.SuggestionResult
	SuggestErr error

	CreatePlanErr error
	PlansRet      []models.BackendWeeklyPlan
	PlansErr      error

	ChatRet client.ChatReply
	ChatErr error

	LastUploadFile  models.UploadFile
	LastDeleteID    string
	LastUpdateID    string
	LastUpdateTags  models.Tags
	LastSuggestReqs []client.SuggestRequest
	LastChatReq     client.ChatRequest
	LastPlanTemp    *float64
}

func (f *fakeClient) count(name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.calls == nil {
		f.calls = make(map[string]int)
	}
	f.calls[name]++
}

func (f *fakeClient) Calls(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[name]
}

func (f *fakeClient) Session(ctx context.Context) (models.Identity, error) {
	f.count("Session")
	return f.SessionRet, f.SessionErr
}

func (f *fakeClient) Login(ctx context.Context, email, password string) (models.Identity, string, error) {
	f.count("Login")
	return f.LoginRet, "Login successful", f.LoginErr
}

func (f *fakeClient) Signup(ctx context.Context, username, email, password string) (string, string, error) {
	f.count("Signup")
	return "u-new", f.SignupMsg, f.SignupErr
}

func (f *fakeClient) Logout(ctx context.Context) error {
	f.count("Logout")
	return f.LogoutErr
}

func (f *fakeClient) ListOutfits(ctx context.Context) ([]models.Outfit, error) {
	f.count("ListOutfits")
	if f.ListFn != nil {
		return f.ListFn(ctx)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.Outfit(nil), f.ListRet...), f.ListErr
}

func (f *fakeClient) UploadOutfit(ctx context.Context, file models.UploadFile) (client.UploadResult, error) {
	f.count("UploadOutfit")
	f.mu.Lock()
	defer f.mu.Unlock()
	f.LastUploadFile = file
	if f.UploadErr != nil {
		return client.UploadResult{}, f.UploadErr
	}
	f.ListRet = append(f.ListRet, models.Outfit{OutfitID: f.UploadRet.OutfitID, ImageURL: "https://x/" + f.UploadRet.OutfitID + ".png"})
	return f.UploadRet, nil
}

func (f *fakeClient) DeleteOutfit(ctx context.Context, outfitID string) (string, error) {
	f.count("DeleteOutfit")
	f.mu.Lock()
	defer f.mu.Unlock()
	f.LastDeleteID = outfitID
	if f.DeleteErr != nil {
		return "", f.DeleteErr
	}
	kept := f.ListRet[:0:0]
	for _, o := range f.ListRet {
		if o.OutfitID != outfitID {
			kept = append(kept, o)
		}
	}
	f.ListRet = kept
	return "Outfit deleted successfully", nil
}

func (f *fakeClient) UpdateOutfit(ctx context.Context, outfitID string, tags models.Tags) (string, error) {
	f.count("UpdateOutfit")
	f.mu.Lock()
	defer f.mu.Unlock()
	f.LastUpdateID, f.LastUpdateTags = outfitID, tags
	if f.UpdateErr != nil {
		return "", f.UpdateErr
	}
	for i := range f.ListRet {
		if f.ListRet[i].OutfitID == outfitID {
			f.ListRet[i].Tags = tags.Clone()
		}
	}
	return "Outfit updated successfully", nil
}

func (f *fakeClient) SuggestOutfits(ctx context.Context, req client.SuggestRequest) (models.SuggestionResult, error) {
	f.count("SuggestOutfits")
	f.mu.Lock()
	f.LastSuggestReqs = append(f.LastSuggestReqs, req)
	fn := f.SuggestFn
	f.mu.Unlock()

	if fn != nil {
		return fn(ctx, req)
	}
	return f.SuggestRet, f.SuggestErr
}

func (f *fakeClient) CreateWeeklyPlan(ctx context.Context, temperature *float64) (string, error) {
	f.count("CreateWeeklyPlan")
	f.mu.Lock()
	defer f.mu.Unlock()
	f.LastPlanTemp = temperature
	return "Weekly plan created successfully", f.CreatePlanErr
}

func (f *fakeClient) GetWeeklyPlans(ctx context.Context) ([]models.BackendWeeklyPlan, error) {
	f.count("GetWeeklyPlans")
	return f.PlansRet, f.PlansErr
}

func (f *fakeClient) OutfitChat(ctx context.Context, req client.ChatRequest) (client.ChatReply, error) {
	f.count("OutfitChat")
	f.mu.Lock()
	defer f.mu.Unlock()
	f.LastChatReq = req
	return f.ChatRet, f.ChatErr
}

var _ client.Client = (*fakeClient)(nil)

func apiErr(status int, msg string) error {
	kind := common.ErrRequestFailed
	if status == http.StatusUnauthorized {
		kind = common.ErrUnauthorized
	}
	return &client.APIError{Kind: kind, Status: status, Message: msg}
}

// ---- fake view state ----

type fakeConditions struct {
	mu          sync.Mutex
	identity    models.Identity
	section     Section
	temperature float64
}

func signedInAt(section Section) *fakeConditions {
	return &fakeConditions{identity: models.Identity{UserID: "u1", Username: "ann"}, section: section, temperature: 22}
}

func (c *fakeConditions) Identity() models.Identity {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.identity
}

func (c *fakeConditions) Section() Section {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.section
}

func (c *fakeConditions) Temperature() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.temperature
}

func (c *fakeConditions) set(section Section) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.section = section
}

type fakeNavigator struct {
	mu      sync.Mutex
	reasons []string
}

func (n *fakeNavigator) ToSignIn(ctx context.Context, reason string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.reasons = append(n.reasons, reason)
}

func (n *fakeNavigator) Redirects() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.reasons...)
}

type fakeCache struct {
	identity       models.Identity
	cleared        int
	identityClears int
	SaveErr        error
}

func (c *fakeCache) LoadIdentity(ctx context.Context) (models.Identity, error) {
	return c.identity, nil
}

func (c *fakeCache) SaveIdentity(ctx context.Context, id models.Identity) error {
	if c.SaveErr != nil {
		return c.SaveErr
	}
	c.identity = id
	return nil
}

func (c *fakeCache) ClearIdentity(ctx context.Context) error {
	c.identityClears++
	c.identity = models.Identity{}
	return nil
}

func (c *fakeCache) Clear(ctx context.Context) error {
	c.cleared++
	c.identity = models.Identity{}
	return nil
}

type fakeJar struct{ cleared int }

func (j *fakeJar) Clear() { j.cleared++ }
