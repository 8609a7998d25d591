package services

import (
	"context"
	"errors"
	"fmt"
	"mime"
	"strings"
	"sync"

	"github.com/dmitrijs2005/wardrobe/internal/client/client"
	"github.com/dmitrijs2005/wardrobe/internal/client/models"
	"github.com/dmitrijs2005/wardrobe/internal/common"
	"github.com/dmitrijs2005/wardrobe/internal/logging"
)

const (
	msgUploadNoIdentity = "Please sign in to upload outfits"
	msgUploadNotImage   = "Please select an image file"
	msgUploadOK         = "Outfit uploaded successfully!"
	msgUploadFailed     = "Upload failed"
)

// OutfitStore mirrors the user's wardrobe. The list only ever changes by a
// fresh fetch from the backend; mutations re-list instead of patching it.
type OutfitStore struct {
	client client.Client
	cond   Conditions
	flash  *Flash
	log    logging.Logger

	mu        sync.Mutex
	outfits   []models.Outfit
	loading   bool
	uploading bool
	gen       uint64
	mounted   bool
}

func NewOutfitStore(c client.Client, cond Conditions, flash *Flash, log logging.Logger) *OutfitStore {
	return &OutfitStore{client: c, cond: cond, flash: flash, log: log, mounted: true}
}

// Refresh re-lists the wardrobe when the wardrobe section is active and a
// user is signed in. Failures are logged; the previous list stays.
func (s *OutfitStore) Refresh(ctx context.Context) {
	if s.cond.Section() != SectionWardrobe || s.cond.Identity().IsZero() {
		return
	}
	s.list(ctx)
}

// ForceRefresh re-lists whenever a user is signed in, whatever the section.
func (s *OutfitStore) ForceRefresh(ctx context.Context) {
	if s.cond.Identity().IsZero() {
		return
	}
	s.list(ctx)
}

func (s *OutfitStore) list(ctx context.Context) {
	s.mu.Lock()
	if !s.mounted {
		s.mu.Unlock()
		return
	}
	s.gen++
	gen := s.gen
	s.loading = true
	s.mu.Unlock()

	outfits, err := s.client.ListOutfits(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.mounted || gen != s.gen {
		s.log.Debug(ctx, "dropping stale outfit list", "generation", gen)
		return
	}
	s.loading = false

	if err != nil {
		s.log.Warn(ctx, "failed to list outfits", "error", err)
		return
	}
	if outfits == nil {
		outfits = []models.Outfit{}
	}
	s.outfits = outfits
}

func isImage(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	return err == nil && strings.HasPrefix(mediaType, "image/")
}

// Upload sends one image to the backend. The outcome is also published as a
// flash message; on success the wardrobe is re-listed if it is on screen.
func (s *OutfitStore) Upload(ctx context.Context, file models.UploadFile) (string, error) {
	if s.cond.Identity().IsZero() {
		s.flash.Error(msgUploadNoIdentity)
		return "", common.ErrNoIdentity
	}
	if !isImage(file.ContentType) {
		s.flash.Error(msgUploadNotImage)
		return "", fmt.Errorf("%w: %s is not an image", common.ErrValidation, file.Name)
	}

	s.mu.Lock()
	if s.uploading {
		s.mu.Unlock()
		return "", common.ErrBusy
	}
	s.uploading = true
	s.mu.Unlock()

	res, err := s.client.UploadOutfit(ctx, file)

	s.mu.Lock()
	s.uploading = false
	mounted := s.mounted
	s.mu.Unlock()

	if !mounted {
		return res.OutfitID, err
	}
	if err != nil {
		s.flash.Error(errorText(err, msgUploadFailed))
		return "", err
	}

	msg := res.Message
	if msg == "" {
		msg = msgUploadOK
	}
	s.flash.Success(msg)
	s.Refresh(ctx)
	return res.OutfitID, nil
}

// Remove deletes an outfit. The list is re-listed, never patched.
func (s *OutfitStore) Remove(ctx context.Context, outfitID string) error {
	if _, err := s.client.DeleteOutfit(ctx, outfitID); err != nil {
		return err
	}
	s.Refresh(ctx)
	return nil
}

// Update replaces the outfit's tags with exactly tags. Callers merge edits
// themselves (see models.MergeTags).
func (s *OutfitStore) Update(ctx context.Context, outfitID string, tags models.Tags) error {
	if _, err := s.client.UpdateOutfit(ctx, outfitID, tags); err != nil {
		return err
	}
	s.Refresh(ctx)
	return nil
}

func (s *OutfitStore) Outfits() []models.Outfit {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Outfit, len(s.outfits))
	for i, o := range s.outfits {
		out[i] = o.Clone()
	}
	return out
}

func (s *OutfitStore) Find(id string) (models.Outfit, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, o := range s.outfits {
		if o.OutfitID == id {
			return o.Clone(), true
		}
	}
	return models.Outfit{}, false
}

// Grouped buckets the current list by category group.
func (s *OutfitStore) Grouped() map[models.CategoryGroup][]models.Outfit {
	return models.GroupByCategory(s.Outfits())
}

func (s *OutfitStore) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

func (s *OutfitStore) Uploading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.uploading
}

// Message returns the visible upload banner.
func (s *OutfitStore) Message() (FlashMessage, bool) {
	return s.flash.Current()
}

func (s *OutfitStore) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mounted = false
}

// errorText prefers the backend's message and falls back for transport
// failures, whose text is not meant for users.
func errorText(err error, fallback string) string {
	var apiErr *client.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	if errors.Is(err, common.ErrNetworkTimeout) {
		return fallback + ": the server took too long to respond"
	}
	if errors.Is(err, common.ErrNetworkFailure) {
		return fallback + ": cannot reach the server"
	}
	return fallback
}
