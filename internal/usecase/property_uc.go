package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/eliteassociate/realty-service/internal/entity"
	"github.com/eliteassociate/realty-service/internal/repository"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// Media upload kinds accepted by AddMedia.
const (
	MediaKindImage = "image"
	MediaKindVideo = "video"
)

// PropertyUsecase carries listing reads and owner-scoped writes. The cache
// and the event publisher are best-effort collaborators; failures there are
// logged and swallowed.
type PropertyUsecase struct {
	properties PropertyStore
	storage    MediaStorage
	cache      PropertyCacher
	events     EventPublisher
	logger     *zap.Logger
}

func NewPropertyUsecase(properties PropertyStore, storage MediaStorage, cache PropertyCacher, events EventPublisher, logger *zap.Logger) *PropertyUsecase {
	return &PropertyUsecase{
		properties: properties,
		storage:    storage,
		cache:      cache,
		events:     events,
		logger:     logger.Named("PropertyUsecase"),
	}
}

func validateProperty(p *entity.Property) error {
	if p.PropertyType != entity.PropertyTypeOwner && p.PropertyType != entity.PropertyTypeLease {
		return fmt.Errorf("%w: propertyType must be %q or %q", ErrValidation, entity.PropertyTypeOwner, entity.PropertyTypeLease)
	}
	if p.Price < 0 {
		return fmt.Errorf("%w: price cannot be negative", ErrValidation)
	}
	if strings.TrimSpace(p.City) == "" {
		return fmt.Errorf("%w: city is required", ErrValidation)
	}
	if p.Category != "" && !contains(entity.PropertyCategories, p.Category) {
		return fmt.Errorf("%w: unknown property category %q", ErrValidation, p.Category)
	}
	if p.Facing != "" && !contains(entity.Facings, strings.ToLower(p.Facing)) {
		return fmt.Errorf("%w: unknown facing %q", ErrValidation, p.Facing)
	}
	if p.Pincode != "" {
		if err := validatePincode(p.Pincode); err != nil {
			return err
		}
	}
	return nil
}

func contains(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}

// Create posts a new listing owned by the caller. Listings start active and
// available unless a valid status is supplied.
func (u *PropertyUsecase) Create(ctx context.Context, actor *entity.User, p *entity.Property) (*entity.Property, error) {
	if err := validateProperty(p); err != nil {
		return nil, err
	}
	p.UserID = actor.ID
	p.IsActive = true
	if p.Status == "" {
		p.Status = entity.StatusAvailable
	}
	if !entity.ValidPropertyStatus(p.Status) {
		return nil, fmt.Errorf("%w: invalid property status %q", ErrValidation, p.Status)
	}

	id, err := u.properties.Create(ctx, p)
	if err != nil {
		return nil, err
	}
	p.ID = id

	u.publish(ctx, SubjectPropertyCreated, map[string]string{
		"propertyId": id.Hex(),
		"userId":     actor.ID.Hex(),
	})
	u.logger.Info("Property created", zap.String("propertyID", id.Hex()), zap.String("userID", actor.ID.Hex()))
	return p, nil
}

// GetByID is the public single-listing read: cache-aside, and soft-deleted
// listings read as not found. Only active listings enter the cache, so a
// cached hit is always servable.
func (u *PropertyUsecase) GetByID(ctx context.Context, id primitive.ObjectID) (*entity.Property, error) {
	if u.cache != nil {
		cached, err := u.cache.GetProperty(ctx, id.Hex())
		if err != nil {
			u.logger.Warn("Property cache read failed", zap.String("propertyID", id.Hex()), zap.Error(err))
		} else if cached != nil {
			return cached, nil
		}
	}

	p, err := u.properties.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !p.IsActive {
		return nil, repository.ErrPropertyNotFound
	}
	if u.cache != nil {
		if err := u.cache.SetProperty(ctx, p); err != nil {
			u.logger.Warn("Property cache write failed", zap.String("propertyID", id.Hex()), zap.Error(err))
		}
	}
	return p, nil
}

// GetAny is the admin read: soft-deleted listings are visible.
func (u *PropertyUsecase) GetAny(ctx context.Context, id primitive.ObjectID) (*entity.Property, error) {
	return u.properties.GetByID(ctx, id)
}

// Search lists active listings for the public catalogue. The active flag is
// forced on here; admin views go through SearchAll.
func (u *PropertyUsecase) Search(ctx context.Context, filter entity.PropertyFilter) ([]*entity.Property, int64, error) {
	active := true
	filter.IsActive = &active
	return u.properties.FindByFilter(ctx, filter)
}

// SearchAll is the unrestricted listing view used by the admin dashboard.
func (u *PropertyUsecase) SearchAll(ctx context.Context, filter entity.PropertyFilter) ([]*entity.Property, int64, error) {
	return u.properties.FindByFilter(ctx, filter)
}

// ListOwn returns every listing the caller has posted, inactive included.
func (u *PropertyUsecase) ListOwn(ctx context.Context, actor *entity.User) ([]*entity.Property, error) {
	return u.properties.FindByUserID(ctx, actor.ID)
}

// authorize loads the listing and checks the actor may modify it. Admins
// may modify any listing; clients only their own.
func (u *PropertyUsecase) authorize(ctx context.Context, actor *entity.User, id primitive.ObjectID) (*entity.Property, error) {
	p, err := u.properties.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin() && p.UserID != actor.ID {
		return nil, ErrForbidden
	}
	return p, nil
}

// Update replaces the mutable listing fields. Ownership, media and the
// active flag are untouched.
func (u *PropertyUsecase) Update(ctx context.Context, actor *entity.User, id primitive.ObjectID, updated *entity.Property) (*entity.Property, error) {
	existing, err := u.authorize(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if err := validateProperty(updated); err != nil {
		return nil, err
	}
	if updated.Status == "" {
		updated.Status = existing.Status
	}
	if !entity.ValidPropertyStatus(updated.Status) {
		return nil, fmt.Errorf("%w: invalid property status %q", ErrValidation, updated.Status)
	}

	updated.ID = existing.ID
	updated.UserID = existing.UserID
	updated.PropertyPics = existing.PropertyPics
	updated.PropertyVideos = existing.PropertyVideos
	updated.IsActive = existing.IsActive
	updated.CreatedAt = existing.CreatedAt

	if err := u.properties.Update(ctx, updated); err != nil {
		return nil, err
	}
	u.invalidate(ctx, id)
	return updated, nil
}

// UpdateStatus moves a listing between available, sold, rented and
// under-construction.
func (u *PropertyUsecase) UpdateStatus(ctx context.Context, actor *entity.User, id primitive.ObjectID, status entity.PropertyStatus) error {
	if !entity.ValidPropertyStatus(status) {
		return fmt.Errorf("%w: invalid property status %q", ErrValidation, status)
	}
	if _, err := u.authorize(ctx, actor, id); err != nil {
		return err
	}
	if err := u.properties.UpdateStatus(ctx, id, status); err != nil {
		return err
	}
	u.invalidate(ctx, id)
	return nil
}

// Delete soft-deletes. The record and its media survive so the listing can
// be audited or restored by hand.
func (u *PropertyUsecase) Delete(ctx context.Context, actor *entity.User, id primitive.ObjectID) error {
	if _, err := u.authorize(ctx, actor, id); err != nil {
		return err
	}
	if err := u.properties.Deactivate(ctx, id); err != nil {
		return err
	}
	u.invalidate(ctx, id)
	u.publish(ctx, SubjectPropertyDeleted, map[string]string{"propertyId": id.Hex()})
	return nil
}

// Purge removes a listing permanently together with its media objects. It
// backs the admin delete; owner deletes stay soft. Storage failures are
// logged and skipped so an unreachable object store cannot block removal.
func (u *PropertyUsecase) Purge(ctx context.Context, id primitive.ObjectID) error {
	p, err := u.properties.GetByID(ctx, id)
	if err != nil {
		return err
	}

	for _, url := range append(append([]string{}, p.PropertyPics...), p.PropertyVideos...) {
		if err := u.storage.Delete(ctx, url); err != nil {
			u.logger.Warn("Failed to delete media object", zap.String("url", url), zap.Error(err))
		}
	}

	if err := u.properties.HardDelete(ctx, id); err != nil {
		return err
	}
	u.invalidate(ctx, id)
	u.publish(ctx, SubjectPropertyDeleted, map[string]string{"propertyId": id.Hex()})
	return nil
}

// MediaUpload is one file taken off a multipart form.
type MediaUpload struct {
	FileName    string
	ContentType string
	Data        []byte
}

// AddMedia uploads the files to object storage and appends their public
// URLs to the listing. Files uploaded before a failure stay attached.
func (u *PropertyUsecase) AddMedia(ctx context.Context, actor *entity.User, id primitive.ObjectID, kind string, uploads []MediaUpload) ([]string, error) {
	if kind != MediaKindImage && kind != MediaKindVideo {
		return nil, fmt.Errorf("%w: media kind must be %q or %q", ErrValidation, MediaKindImage, MediaKindVideo)
	}
	if len(uploads) == 0 {
		return nil, fmt.Errorf("%w: no files supplied", ErrValidation)
	}
	if _, err := u.authorize(ctx, actor, id); err != nil {
		return nil, err
	}

	folder := "properties/" + id.Hex()
	urls := make([]string, 0, len(uploads))
	for _, f := range uploads {
		url, err := u.storage.Upload(ctx, folder, f.FileName, f.ContentType, f.Data)
		if err != nil {
			if len(urls) > 0 {
				if attachErr := u.properties.AddMediaURLs(ctx, id, kind, urls); attachErr != nil {
					u.logger.Error("Failed to attach partially uploaded media", zap.String("propertyID", id.Hex()), zap.Error(attachErr))
				}
				u.invalidate(ctx, id)
			}
			return urls, err
		}
		urls = append(urls, url)
	}

	if err := u.properties.AddMediaURLs(ctx, id, kind, urls); err != nil {
		return nil, err
	}
	u.invalidate(ctx, id)
	return urls, nil
}

// RemoveMedia detaches one URL from the listing and deletes the underlying
// object. A storage delete failure is logged, not surfaced; the URL is
// already gone from the listing.
func (u *PropertyUsecase) RemoveMedia(ctx context.Context, actor *entity.User, id primitive.ObjectID, kind, url string) error {
	if kind != MediaKindImage && kind != MediaKindVideo {
		return fmt.Errorf("%w: media kind must be %q or %q", ErrValidation, MediaKindImage, MediaKindVideo)
	}
	if _, err := u.authorize(ctx, actor, id); err != nil {
		return err
	}
	if err := u.properties.RemoveMediaURL(ctx, id, kind, url); err != nil {
		return err
	}
	if err := u.storage.Delete(ctx, url); err != nil {
		u.logger.Warn("Failed to delete media object", zap.String("url", url), zap.Error(err))
	}
	u.invalidate(ctx, id)
	return nil
}

// Stats feeds the admin dashboard.
func (u *PropertyUsecase) Stats(ctx context.Context) (*entity.PropertyStats, error) {
	return u.properties.Stats(ctx)
}

func (u *PropertyUsecase) invalidate(ctx context.Context, id primitive.ObjectID) {
	if u.cache == nil {
		return
	}
	if err := u.cache.DeleteProperty(ctx, id.Hex()); err != nil {
		u.logger.Warn("Property cache invalidation failed", zap.String("propertyID", id.Hex()), zap.Error(err))
	}
}

func (u *PropertyUsecase) publish(ctx context.Context, subject string, payload interface{}) {
	if u.events == nil {
		return
	}
	if err := u.events.Publish(ctx, subject, payload); err != nil {
		u.logger.Warn("Event publish failed", zap.String("subject", subject), zap.Error(err))
	}
}
