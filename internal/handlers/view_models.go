package handlers

import (
	"time"

	"weddinghub/internal/models"
)

// guestView is the JSON shape of a guest in API responses
type guestView struct {
	ID                  string        `json:"id"`
	FirstName           string        `json:"firstName"`
	LastName            string        `json:"lastName"`
	Email               string        `json:"email"`
	Phone               *string       `json:"phone"`
	AddressLine1        *string       `json:"addressLine1"`
	AddressLine2        *string       `json:"addressLine2"`
	City                *string       `json:"city"`
	State               *string       `json:"state"`
	ZipCode             *string       `json:"zipCode"`
	Country             *string       `json:"country"`
	InvitationCode      *string       `json:"invitationCode"`
	InvitationSentAt    *time.Time    `json:"invitationSentAt"`
	RSVPReceivedAt      *time.Time    `json:"rsvpReceivedAt"`
	Attending           *bool         `json:"attending"`
	DietaryRestrictions *string       `json:"dietaryRestrictions"`
	SpecialRequests     *string       `json:"specialRequests"`
	TableNumber         *int          `json:"tableNumber"`
	Notes               *string       `json:"notes"`
	PlusOnes            []plusOneView `json:"plusOnes"`
}

type plusOneView struct {
	ID                  int64   `json:"id"`
	FirstName           string  `json:"firstName"`
	LastName            string  `json:"lastName"`
	DietaryRestrictions *string `json:"dietaryRestrictions"`
	IsChild             bool    `json:"isChild"`
	Age                 *int    `json:"age"`
}

func toGuestView(g *models.Guest) guestView {
	view := guestView{
		ID:                  g.ID,
		FirstName:           g.FirstName,
		LastName:            g.LastName,
		Email:               g.Email,
		Phone:               g.Phone,
		AddressLine1:        g.AddressLine1,
		AddressLine2:        g.AddressLine2,
		City:                g.City,
		State:               g.State,
		ZipCode:             g.ZipCode,
		Country:             g.Country,
		InvitationCode:      g.InvitationCode,
		InvitationSentAt:    g.InvitationSentAt,
		RSVPReceivedAt:      g.RSVPReceivedAt,
		Attending:           g.Attending,
		DietaryRestrictions: g.DietaryRestrictions,
		SpecialRequests:     g.SpecialRequests,
		TableNumber:         g.TableNumber,
		Notes:               g.Notes,
		PlusOnes:            []plusOneView{},
	}
	for _, po := range g.PlusOnes {
		view.PlusOnes = append(view.PlusOnes, plusOneView{
			ID:                  po.ID,
			FirstName:           po.FirstName,
			LastName:            po.LastName,
			DietaryRestrictions: po.DietaryRestrictions,
			IsChild:             po.IsChild,
			Age:                 po.Age,
		})
	}
	return view
}

func toGuestViews(guests []models.Guest) []guestView {
	views := make([]guestView, 0, len(guests))
	for i := range guests {
		views = append(views, toGuestView(&guests[i]))
	}
	return views
}

// rsvpGuestView is the reduced guest shape revealed to a code lookup,
// before any admin session exists
type rsvpGuestView struct {
	FirstName    string        `json:"firstName"`
	LastName     string        `json:"lastName"`
	HasResponded bool          `json:"hasResponded"`
	Attending    *bool         `json:"attending"`
	PlusOnes     []plusOneView `json:"plusOnes"`
}

func toRSVPGuestView(g *models.Guest) rsvpGuestView {
	view := rsvpGuestView{
		FirstName:    g.FirstName,
		LastName:     g.LastName,
		HasResponded: g.HasResponded(),
		Attending:    g.Attending,
		PlusOnes:     []plusOneView{},
	}
	for _, po := range g.PlusOnes {
		view.PlusOnes = append(view.PlusOnes, plusOneView{
			ID:                  po.ID,
			FirstName:           po.FirstName,
			LastName:            po.LastName,
			DietaryRestrictions: po.DietaryRestrictions,
			IsChild:             po.IsChild,
			Age:                 po.Age,
		})
	}
	return view
}

// partyMemberView is the JSON shape of a wedding party member
type partyMemberView struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	Role      string  `json:"role"`
	Side      string  `json:"side"`
	Bio       *string `json:"bio"`
	ImageURL  *string `json:"imageUrl"`
	SortOrder int     `json:"sortOrder"`
}

func toPartyMemberView(m *models.WeddingPartyMember) partyMemberView {
	return partyMemberView{
		ID:        m.ID,
		Name:      m.Name,
		Role:      m.Role,
		Side:      m.Side,
		Bio:       m.Bio,
		ImageURL:  m.ImageURL,
		SortOrder: m.SortOrder,
	}
}

// venueView is the JSON shape of a venue
type venueView struct {
	ID           int64   `json:"id"`
	Name         string  `json:"name"`
	Description  *string `json:"description"`
	AddressLine1 *string `json:"addressLine1"`
	City         *string `json:"city"`
	State        *string `json:"state"`
	ZipCode      *string `json:"zipCode"`
	Phone        *string `json:"phone"`
	Website      *string `json:"website"`
}

func toVenueView(v *models.Venue) venueView {
	return venueView{
		ID:           v.ID,
		Name:         v.Name,
		Description:  v.Description,
		AddressLine1: v.AddressLine1,
		City:         v.City,
		State:        v.State,
		ZipCode:      v.ZipCode,
		Phone:        v.Phone,
		Website:      v.Website,
	}
}

// eventView is the JSON shape of a scheduled event
type eventView struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name"`
	Description *string    `json:"description"`
	StartTime   *time.Time `json:"startTime"`
	EndTime     *time.Time `json:"endTime"`
	Attire      *string    `json:"attire"`
	Venue       *venueView `json:"venue"`
}

func toEventView(e *models.Event) eventView {
	view := eventView{
		ID:          e.ID,
		Name:        e.Name,
		Description: e.Description,
		StartTime:   e.StartTime,
		EndTime:     e.EndTime,
		Attire:      e.Attire,
	}
	if e.Venue != nil {
		v := toVenueView(e.Venue)
		view.Venue = &v
	}
	return view
}

// hotelView is the JSON shape of an accommodation suggestion
type hotelView struct {
	ID            int64   `json:"id"`
	Name          string  `json:"name"`
	Description   *string `json:"description"`
	AddressLine1  *string `json:"addressLine1"`
	City          *string `json:"city"`
	State         *string `json:"state"`
	ZipCode       *string `json:"zipCode"`
	Phone         *string `json:"phone"`
	Website       *string `json:"website"`
	RoomBlockCode *string `json:"roomBlockCode"`
	IsRecommended bool    `json:"isRecommended"`
}

func toHotelView(h *models.Hotel) hotelView {
	return hotelView{
		ID:            h.ID,
		Name:          h.Name,
		Description:   h.Description,
		AddressLine1:  h.AddressLine1,
		City:          h.City,
		State:         h.State,
		ZipCode:       h.ZipCode,
		Phone:         h.Phone,
		Website:       h.Website,
		RoomBlockCode: h.RoomBlockCode,
		IsRecommended: h.IsRecommended,
	}
}

// userView is the JSON shape of an admin user; the password hash never leaves
type userView struct {
	ID      int64  `json:"id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	IsAdmin bool   `json:"isAdmin"`
}

func toUserView(u *models.User) userView {
	return userView{ID: u.ID, Email: u.Email, Name: u.Name, IsAdmin: u.IsAdmin}
}

// emailLogView is the JSON shape of an email log entry
type emailLogView struct {
	ID             int64      `json:"id"`
	GuestID        *string    `json:"guestId"`
	EmailType      string     `json:"emailType"`
	RecipientEmail string     `json:"recipientEmail"`
	Subject        string     `json:"subject"`
	Status         string     `json:"status"`
	OpenedAt       *time.Time `json:"openedAt"`
	CreatedAt      time.Time  `json:"createdAt"`
}

func toEmailLogView(l *models.EmailLog) emailLogView {
	return emailLogView{
		ID:             l.ID,
		GuestID:        l.GuestID,
		EmailType:      l.EmailType,
		RecipientEmail: l.RecipientEmail,
		Subject:        l.Subject,
		Status:         l.Status,
		OpenedAt:       l.OpenedAt,
		CreatedAt:      l.CreatedAt,
	}
}
