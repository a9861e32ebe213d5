package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"gosocial/backend/internal/models"
)

// profileView is the flattened payload joining profile and user fields.
type profileView struct {
	UserID                uint           `json:"user_id"`
	ProfileID             uint           `json:"profile_id"`
	Username              string         `json:"username"`
	FirstName             string         `json:"first_name,omitempty"`
	LastName              string         `json:"last_name,omitempty"`
	DateOfBirth           *time.Time     `json:"date_of_birth,omitempty"`
	CityOfBirth           string         `json:"city_of_birth,omitempty"`
	CityOfResidence       string         `json:"city_of_residence,omitempty"`
	FamilyStatus          string         `json:"family_status,omitempty"`
	Photography           string         `json:"photography,omitempty"`
	Interests             pq.StringArray `json:"interests,omitempty"`
	AdditionalInformation string         `json:"additional_information,omitempty"`
}

func renderProfile(p *models.Profile) profileView {
	view := profileView{
		UserID:                p.UserID,
		ProfileID:             p.ID,
		DateOfBirth:           p.DateOfBirth,
		CityOfBirth:           p.CityOfBirth,
		CityOfResidence:       p.CityOfResidence,
		FamilyStatus:          p.FamilyStatus,
		Photography:           p.Photography,
		Interests:             p.Interests,
		AdditionalInformation: p.AdditionalInformation,
	}
	if p.User != nil {
		view.Username = p.User.Username
		view.FirstName = p.User.FirstName
		view.LastName = p.User.LastName
	}
	return view
}

// Profiles lists every profile.
func (h *Handler) Profiles(c *gin.Context) {
	profiles, err := h.Storage.Profiles()
	if err != nil {
		serverError(c)
		return
	}
	views := make([]profileView, 0, len(profiles))
	for i := range profiles {
		views = append(views, renderProfile(&profiles[i]))
	}
	c.JSON(http.StatusOK, gin.H{"status": 200, "data": gin.H{"profiles": views}})
}

// ProfileByUser returns the profile of the addressed user. Unlike the self
// view, a missing profile here is a plain 404.
func (h *Handler) ProfileByUser(c *gin.Context) {
	userID, err := strconv.ParseUint(c.Param("user_id"), 10, 64)
	if err != nil {
		notFound(c)
		return
	}

	profile, err := h.Storage.ProfileByUserID(uint(userID))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			notFound(c)
		} else {
			serverError(c)
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": 200, "data": gin.H{"profile": renderProfile(profile)}})
}

// SelfProfile returns the caller's profile, creating the empty row on first
// view.
func (h *Handler) SelfProfile(c *gin.Context) {
	profile, ok := h.selfProfile(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": 200, "data": gin.H{"profile": renderProfile(profile)}})
}

type updateProfileRequest struct {
	FirstName             string     `json:"first_name"`
	LastName              string     `json:"last_name"`
	DateOfBirth           *time.Time `json:"date_of_birth"`
	CityOfBirth           string     `json:"city_of_birth"`
	CityOfResidence       string     `json:"city_of_residence"`
	FamilyStatus          string     `json:"family_status"`
	Photography           string     `json:"photography"`
	Interests             []string   `json:"interests"`
	AdditionalInformation string     `json:"additional_information"`
}

// UpdateProfile replaces the caller's profile details and the name fields on
// the account itself.
func (h *Handler) UpdateProfile(c *gin.Context) {
	user := currentUser(c)

	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"data": gin.H{"errors": []string{err.Error()}}})
		return
	}

	profile, ok := h.selfProfile(c)
	if !ok {
		return
	}

	user.FirstName = req.FirstName
	user.LastName = req.LastName
	if err := h.Storage.SaveUser(user); err != nil {
		serverError(c)
		return
	}

	profile.DateOfBirth = req.DateOfBirth
	profile.CityOfBirth = req.CityOfBirth
	profile.CityOfResidence = req.CityOfResidence
	profile.FamilyStatus = req.FamilyStatus
	profile.Photography = req.Photography
	profile.Interests = pq.StringArray(req.Interests)
	profile.AdditionalInformation = req.AdditionalInformation
	profile.User = nil // avoid re-saving the association
	if err := h.Storage.SaveProfile(profile); err != nil {
		serverError(c)
		return
	}
	profile.User = user

	c.JSON(http.StatusOK, gin.H{"status": 204, "data": gin.H{"message": "resource updated successfully", "profile": renderProfile(profile)}})
}

// selfProfile loads or lazily creates the caller's profile row. On failure
// the response is already written and ok is false.
func (h *Handler) selfProfile(c *gin.Context) (*models.Profile, bool) {
	user := currentUser(c)

	profile, err := h.Storage.ProfileByUserID(user.ID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		profile, err = h.Storage.CreateProfile(user.ID)
	}
	if err != nil {
		serverError(c)
		return nil, false
	}
	return profile, true
}
