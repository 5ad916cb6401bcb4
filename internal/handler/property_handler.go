package handler

import (
	"io"
	"net/http"
	"strconv"

	"github.com/eliteassociate/realty-service/internal/entity"
	"github.com/eliteassociate/realty-service/internal/usecase"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// maxUploadSize bounds a single multipart upload request.
const maxUploadSize = 10 << 20

type PropertyHandler struct {
	properties *usecase.PropertyUsecase
	logger     *zap.Logger
}

func NewPropertyHandler(properties *usecase.PropertyUsecase, logger *zap.Logger) *PropertyHandler {
	return &PropertyHandler{properties: properties, logger: logger.Named("PropertyHandler")}
}

type propertyRequest struct {
	PropertyType    string   `json:"propertyType"`
	PriceTag        string   `json:"priceTag"`
	Price           float64  `json:"price"`
	PropertyDetails string   `json:"propertyDetails"`
	ContactInfo     string   `json:"contactInfo"`
	IsFurnished     bool     `json:"isFurnished"`
	HasParking      bool     `json:"hasParking"`
	Category        string   `json:"propertyCategory"`
	BHK             int      `json:"bhk"`
	Floor           int      `json:"floor"`
	PropertyAge     int      `json:"propertyAge"`
	Facing          string   `json:"facing"`
	BuildArea       float64  `json:"buildArea"`
	CarpetArea      float64  `json:"carpetArea"`
	Locality        string   `json:"locality"`
	City            string   `json:"city"`
	State           string   `json:"state"`
	Pincode         string   `json:"pincode"`
	Landmark        string   `json:"landmark"`
	Amenities       []string `json:"amenities"`
	NearbyPlaces    []string `json:"nearbyPlaces"`
	Status          string   `json:"propertyStatus"`
}

func (req *propertyRequest) toEntity() *entity.Property {
	return &entity.Property{
		PropertyType:    req.PropertyType,
		PriceTag:        req.PriceTag,
		Price:           req.Price,
		PropertyDetails: req.PropertyDetails,
		ContactInfo:     req.ContactInfo,
		IsFurnished:     req.IsFurnished,
		HasParking:      req.HasParking,
		Category:        req.Category,
		BHK:             req.BHK,
		Floor:           req.Floor,
		PropertyAge:     req.PropertyAge,
		Facing:          req.Facing,
		BuildArea:       req.BuildArea,
		CarpetArea:      req.CarpetArea,
		Locality:        req.Locality,
		City:            req.City,
		State:           req.State,
		Pincode:         req.Pincode,
		Landmark:        req.Landmark,
		Amenities:       req.Amenities,
		NearbyPlaces:    req.NearbyPlaces,
		Status:          entity.PropertyStatus(req.Status),
	}
}

// parseFilter reads the search query parameters shared by the public and
// admin listing views.
func parseFilter(r *http.Request) entity.PropertyFilter {
	q := r.URL.Query()
	filter := entity.PropertyFilter{
		Location:     q.Get("location"),
		City:         q.Get("city"),
		State:        q.Get("state"),
		PropertyType: q.Get("propertyType"),
		Category:     q.Get("propertyCategory"),
		Facing:       q.Get("facing"),
	}
	filter.BHK, _ = strconv.Atoi(q.Get("bhk"))
	filter.MinPrice, _ = strconv.ParseFloat(q.Get("minPrice"), 64)
	filter.MaxPrice, _ = strconv.ParseFloat(q.Get("maxPrice"), 64)
	if v := q.Get("isFurnished"); v != "" {
		b := v == "true"
		filter.IsFurnished = &b
	}
	if v := q.Get("hasParking"); v != "" {
		b := v == "true"
		filter.HasParking = &b
	}
	filter.Page, _ = strconv.ParseInt(q.Get("page"), 10, 64)
	filter.Limit, _ = strconv.ParseInt(q.Get("limit"), 10, 64)
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 100 {
		filter.Limit = 10
	}
	return filter
}

func listPayload(items []*entity.Property, total, page, limit int64) envelope {
	totalPages := total / limit
	if total%limit != 0 {
		totalPages++
	}
	return envelope{
		"properties": items,
		"pagination": envelope{
			"total":      total,
			"page":       page,
			"limit":      limit,
			"totalPages": totalPages,
		},
	}
}

func (h *PropertyHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := parseFilter(r)
	items, total, err := h.properties.Search(r.Context(), filter)
	if err != nil {
		fail(w, h.logger, err)
		return
	}
	ok(w, http.StatusOK, "Properties fetched successfully", listPayload(items, total, filter.Page, filter.Limit))
}

// ListAll is the admin view: no forced active filter, with an optional
// isActive query parameter.
func (h *PropertyHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	filter := parseFilter(r)
	if v := r.URL.Query().Get("isActive"); v != "" {
		b := v == "true"
		filter.IsActive = &b
	}
	items, total, err := h.properties.SearchAll(r.Context(), filter)
	if err != nil {
		fail(w, h.logger, err)
		return
	}
	ok(w, http.StatusOK, "Properties fetched successfully", listPayload(items, total, filter.Page, filter.Limit))
}

func (h *PropertyHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, valid := pathID(w, chi.URLParam(r, "id"))
	if !valid {
		return
	}
	property, err := h.properties.GetByID(r.Context(), id)
	if err != nil {
		fail(w, h.logger, err)
		return
	}
	ok(w, http.StatusOK, "Property fetched successfully", envelope{"property": property})
}

// GetAny serves the admin read, which includes deactivated listings.
func (h *PropertyHandler) GetAny(w http.ResponseWriter, r *http.Request) {
	id, valid := pathID(w, chi.URLParam(r, "id"))
	if !valid {
		return
	}
	property, err := h.properties.GetAny(r.Context(), id)
	if err != nil {
		fail(w, h.logger, err)
		return
	}
	ok(w, http.StatusOK, "Property fetched successfully", envelope{"property": property})
}

func (h *PropertyHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.properties.Stats(r.Context())
	if err != nil {
		fail(w, h.logger, err)
		return
	}
	ok(w, http.StatusOK, "Statistics fetched successfully", envelope{"stats": stats})
}

func (h *PropertyHandler) Create(w http.ResponseWriter, r *http.Request) {
	user, found := actor(w, r)
	if !found {
		return
	}
	var req propertyRequest
	if !decode(w, r, &req) {
		return
	}

	property, err := h.properties.Create(r.Context(), user, req.toEntity())
	if err != nil {
		fail(w, h.logger, err)
		return
	}
	ok(w, http.StatusCreated, "Property posted successfully", envelope{"property": property})
}

func (h *PropertyHandler) MyPosts(w http.ResponseWriter, r *http.Request) {
	user, found := actor(w, r)
	if !found {
		return
	}
	items, err := h.properties.ListOwn(r.Context(), user)
	if err != nil {
		fail(w, h.logger, err)
		return
	}
	ok(w, http.StatusOK, "Your properties fetched successfully", envelope{"properties": items})
}

func (h *PropertyHandler) Update(w http.ResponseWriter, r *http.Request) {
	user, found := actor(w, r)
	if !found {
		return
	}
	id, valid := pathID(w, chi.URLParam(r, "id"))
	if !valid {
		return
	}
	var req propertyRequest
	if !decode(w, r, &req) {
		return
	}

	property, err := h.properties.Update(r.Context(), user, id, req.toEntity())
	if err != nil {
		fail(w, h.logger, err)
		return
	}
	ok(w, http.StatusOK, "Property updated successfully", envelope{"property": property})
}

func (h *PropertyHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user, found := actor(w, r)
	if !found {
		return
	}
	id, valid := pathID(w, chi.URLParam(r, "id"))
	if !valid {
		return
	}
	if err := h.properties.Delete(r.Context(), user, id); err != nil {
		fail(w, h.logger, err)
		return
	}
	ok(w, http.StatusOK, "Property deleted successfully", nil)
}

// Purge is the admin delete: the listing record and its media are removed
// for good.
func (h *PropertyHandler) Purge(w http.ResponseWriter, r *http.Request) {
	id, valid := pathID(w, chi.URLParam(r, "id"))
	if !valid {
		return
	}
	if err := h.properties.Purge(r.Context(), id); err != nil {
		fail(w, h.logger, err)
		return
	}
	ok(w, http.StatusOK, "Property post and all associated media deleted successfully", nil)
}

type statusRequest struct {
	Status string `json:"propertyStatus"`
}

func (h *PropertyHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	user, found := actor(w, r)
	if !found {
		return
	}
	id, valid := pathID(w, chi.URLParam(r, "id"))
	if !valid {
		return
	}
	var req statusRequest
	if !decode(w, r, &req) {
		return
	}
	if err := h.properties.UpdateStatus(r.Context(), user, id, entity.PropertyStatus(req.Status)); err != nil {
		fail(w, h.logger, err)
		return
	}
	ok(w, http.StatusOK, "Property status updated successfully", nil)
}

// uploadMedia reads the multipart files and hands them to the usecase. The
// form field name is "files" for both pictures and videos.
func (h *PropertyHandler) uploadMedia(w http.ResponseWriter, r *http.Request, kind string) {
	user, found := actor(w, r)
	if !found {
		return
	}
	id, valid := pathID(w, chi.URLParam(r, "id"))
	if !valid {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		badRequest(w, "Invalid multipart form or files too large")
		return
	}

	files := r.MultipartForm.File["files"]
	uploads := make([]usecase.MediaUpload, 0, len(files))
	for _, fh := range files {
		f, err := fh.Open()
		if err != nil {
			badRequest(w, "Failed to read uploaded file")
			return
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			badRequest(w, "Failed to read uploaded file")
			return
		}
		uploads = append(uploads, usecase.MediaUpload{
			FileName:    fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			Data:        data,
		})
	}

	urls, err := h.properties.AddMedia(r.Context(), user, id, kind, uploads)
	if err != nil {
		fail(w, h.logger, err)
		return
	}
	ok(w, http.StatusOK, "Files uploaded successfully", envelope{"urls": urls})
}

func (h *PropertyHandler) UploadPictures(w http.ResponseWriter, r *http.Request) {
	h.uploadMedia(w, r, usecase.MediaKindImage)
}

func (h *PropertyHandler) UploadVideos(w http.ResponseWriter, r *http.Request) {
	h.uploadMedia(w, r, usecase.MediaKindVideo)
}

type removeMediaRequest struct {
	URL string `json:"url"`
}

func (h *PropertyHandler) removeMedia(w http.ResponseWriter, r *http.Request, kind string) {
	user, found := actor(w, r)
	if !found {
		return
	}
	id, valid := pathID(w, chi.URLParam(r, "id"))
	if !valid {
		return
	}
	var req removeMediaRequest
	if !decode(w, r, &req) {
		return
	}
	if req.URL == "" {
		badRequest(w, "url is required")
		return
	}
	if err := h.properties.RemoveMedia(r.Context(), user, id, kind, req.URL); err != nil {
		fail(w, h.logger, err)
		return
	}
	ok(w, http.StatusOK, "File removed successfully", nil)
}

func (h *PropertyHandler) RemovePicture(w http.ResponseWriter, r *http.Request) {
	h.removeMedia(w, r, usecase.MediaKindImage)
}

func (h *PropertyHandler) RemoveVideo(w http.ResponseWriter, r *http.Request) {
	h.removeMedia(w, r, usecase.MediaKindVideo)
}
