package mockapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/dmitrijs2005/wardrobe/internal/client/models"
	"github.com/dmitrijs2005/wardrobe/internal/common"
	"github.com/rs/xid"
)

const maxUploadSize = 10 << 20

type ctxKey struct{}

func userFrom(ctx context.Context) string {
	id, _ := ctx.Value(ctxKey{}).(string)
	return id
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeDetail writes a FastAPI HTTPException body.
func writeDetail(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}

// writeFieldError writes a FastAPI request-validation body.
func writeFieldError(w http.ResponseWriter, field, msg string) {
	writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
		"detail": []map[string]any{{"loc": []string{"body", field}, "msg": msg, "type": "value_error"}},
	})
}

func decodeBody(r *http.Request, v any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, 1<<20))
	if err := dec.Decode(v); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func (s *Server) requireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c, err := r.Cookie(common.SessionCookieName)
		if err != nil || c.Value == "" {
			writeDetail(w, http.StatusUnauthorized, "Not authenticated")
			return
		}

		userID, err := userIDFromToken(c.Value, []byte(s.cfg.SecretKey))
		switch {
		case errors.Is(err, errTokenExpired):
			writeDetail(w, http.StatusUnauthorized, "Session expired")
			return
		case err != nil:
			writeDetail(w, http.StatusUnauthorized, "Invalid session")
			return
		}
		if _, ok := s.store.userByID(userID); !ok {
			writeDetail(w, http.StatusUnauthorized, "Invalid session")
			return
		}

		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxKey{}, userID)))
	})
}

type credentials struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	var req credentials
	if err := decodeBody(r, &req); err != nil {
		writeDetail(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	for field, v := range map[string]string{"username": req.Username, "email": req.Email, "password": req.Password} {
		if strings.TrimSpace(v) == "" {
			writeFieldError(w, field, "Field required")
			return
		}
	}

	hash, err := hashPassword(req.Password, s.cfg.BcryptCost)
	if err != nil {
		writeDetail(w, http.StatusBadRequest, err.Error())
		return
	}

	u, err := s.store.addUser(req.Username, req.Email, hash)
	if errors.Is(err, errEmailTaken) {
		writeDetail(w, http.StatusBadRequest, "Email already registered")
		return
	}
	if err != nil {
		writeDetail(w, http.StatusInternalServerError, "An error occurred during signup")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"user_id": u.ID, "message": "User created successfully"})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req credentials
	if err := decodeBody(r, &req); err != nil {
		writeDetail(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	u, ok := s.store.userByEmail(req.Email)
	if !ok || !checkPassword(u.PasswordHash, req.Password) {
		writeDetail(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	token, err := generateToken(u.ID, []byte(s.cfg.SecretKey), s.cfg.SessionTTL)
	if err != nil {
		writeDetail(w, http.StatusInternalServerError, "Could not issue session")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     common.SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(s.cfg.SessionTTL.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	writeJSON(w, http.StatusOK, map[string]string{
		"user_id":  u.ID,
		"username": u.Username,
		"email":    u.Email,
		"message":  "Login successful",
	})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     common.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
	writeJSON(w, http.StatusOK, map[string]string{"message": "Logged out successfully"})
}

func (s *Server) handleSession(w http.ResponseWriter, r *http.Request) {
	u, _ := s.store.userByID(userFrom(r.Context()))
	writeJSON(w, http.StatusOK, models.Identity{UserID: u.ID, Username: u.Username, Email: u.Email})
}

func (s *Server) handleListOutfits(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"outfits": s.store.listOutfits(userFrom(r.Context()))})
}

func (s *Server) handleUploadOutfit(w http.ResponseWriter, r *http.Request) {
	userID := userFrom(r.Context())

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		writeDetail(w, http.StatusBadRequest, "Invalid multipart upload")
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		writeFieldError(w, "file", "Field required")
		return
	}
	defer file.Close()

	mediaType, _, _ := mime.ParseMediaType(header.Header.Get("Content-Type"))
	if !strings.HasPrefix(mediaType, "image/") {
		writeDetail(w, http.StatusBadRequest, "File must be an image")
		return
	}

	id := xid.New().String()
	ext := strings.ToLower(filepath.Ext(header.Filename))
	if ext == "" {
		ext = ".png"
	}
	outfit := models.Outfit{
		OutfitID:   id,
		WardrobeID: userID,
		ImageURL:   fmt.Sprintf("%s/%s/%s%s", s.cfg.ImageBaseURL, userID, id, ext),
		Tags:       tagFromFileName(header.Filename),
	}
	s.store.addOutfit(userID, outfit)

	writeJSON(w, http.StatusCreated, map[string]any{
		"outfit_id": id,
		"result":    true,
		"message":   "Outfit uploaded successfully",
	})
}

func (s *Server) handleDeleteOutfit(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("outfit_id")
	if id == "" {
		writeFieldError(w, "outfit_id", "Field required")
		return
	}

	if err := s.store.deleteOutfit(userFrom(r.Context()), id); err != nil {
		writeDetail(w, http.StatusNotFound, "Outfit not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"result": true, "message": "Outfit deleted successfully"})
}

func (s *Server) handleUpdateOutfit(w http.ResponseWriter, r *http.Request) {
	var req struct {
		OutfitID string      `json:"outfit_id"`
		Tags     models.Tags `json:"tags"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeDetail(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.OutfitID == "" {
		writeFieldError(w, "outfit_id", "Field required")
		return
	}
	if req.Tags == nil {
		req.Tags = models.Tags{}
	}

	if err := s.store.updateOutfit(userFrom(r.Context()), req.OutfitID, req.Tags); err != nil {
		writeDetail(w, http.StatusNotFound, "Outfit not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"result": true, "message": "Outfit updated successfully"})
}

func (s *Server) handleSuggest(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Temperature *float64 `json:"temperature"`
		Query       string   `json:"query"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeDetail(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	outfits := s.store.listOutfits(userFrom(r.Context()))
	if len(outfits) == 0 {
		writeDetail(w, http.StatusBadRequest, "No outfits found in wardrobe. Please add some outfits first.")
		return
	}

	picked := suggest(outfits, req.Temperature, req.Query)
	resp := map[string]any{
		"outfits":             picked,
		"composite_image_url": s.compositeURL(),
		"result":              true,
		"message":             "Outfit suggestions generated successfully",
	}
	if req.Temperature != nil {
		resp["weather"] = map[string]any{"temperature": *req.Temperature}
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) compositeURL() string {
	return fmt.Sprintf("%s/composite/%s.png", s.cfg.ImageBaseURL, xid.New().String())
}

func (s *Server) handleCreatePlan(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Temperature *float64 `json:"temperature"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeDetail(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	userID := userFrom(r.Context())
	outfits := s.store.listOutfits(userID)
	if len(outfits) == 0 {
		writeDetail(w, http.StatusBadRequest, "No outfits found in wardrobe. Please add some outfits first.")
		return
	}

	now := time.Now().UTC()
	plan := models.BackendWeeklyPlan{
		PlanID:     xid.New().String(),
		WardrobeID: userID,
		CreatedAt:  now.Format(time.RFC3339Nano),
		WeekStart:  now.Format(time.DateOnly),
		DailyPlans: make(map[string]models.BackendDailyPlan, s.cfg.PlanDays),
	}
	for i := 0; i < s.cfg.PlanDays; i++ {
		date := now.AddDate(0, 0, i)
		ids := make([]string, 0, 3)
		for _, o := range planDay(outfits, i) {
			ids = append(ids, o.OutfitID)
		}
		plan.DailyPlans[fmt.Sprintf("day%d", i+1)] = models.BackendDailyPlan{
			Date:      date.Format(time.DateOnly),
			Day:       date.Weekday().String(),
			ImageURL:  s.compositeURL(),
			OutfitIDs: ids,
		}
	}
	s.store.savePlan(userID, plan)

	writeJSON(w, http.StatusOK, map[string]any{"result": true, "message": "Weekly plan created successfully"})
}

func (s *Server) handleGetPlans(w http.ResponseWriter, r *http.Request) {
	plans := []models.BackendWeeklyPlan{}
	if p, ok := s.store.plan(userFrom(r.Context())); ok {
		plans = append(plans, p)
	}
	writeJSON(w, http.StatusOK, map[string]any{"weekly_plans": plans})
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Message     string         `json:"message"`
		Temperature *float64       `json:"temperature"`
		Context     map[string]any `json:"context"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeDetail(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		writeFieldError(w, "message", "Field required")
		return
	}

	text, images := chatReply(s.store.listOutfits(userFrom(r.Context())), req.Message, req.Temperature)
	writeJSON(w, http.StatusOK, map[string]any{
		"response":   text,
		"image_urls": images,
		"result":     true,
		"message":    "Chat response generated successfully",
	})
}
