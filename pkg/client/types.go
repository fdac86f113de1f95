package client

import (
	"encoding/json"
	"slices"
	"time"
)

// Role is a capability granted to a user.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// Plot status values.
const (
	StatusActive  = "active"
	StatusDeleted = "deleted"
	StatusAll     = "all"
)

// User is the authenticated user as returned by login, register and me.
// Roles is empty for the public user listing.
type User struct {
	ID    uint64 `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Roles []Role `json:"roles,omitempty"`
}

// HasRole reports whether the user holds role. Unknown roles never match.
func (u *User) HasRole(role Role) bool {
	if u == nil || (role != RoleAdmin && role != RoleUser) {
		return false
	}
	return slices.Contains(u.Roles, role)
}

// Can gates views on capability. It is HasRole under the name the UI uses.
func (u *User) Can(role Role) bool {
	return u.HasRole(role)
}

type Crop struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
}

type Sensor struct {
	ID     uint64 `json:"id"`
	Kind   string `json:"kind"`
	Unit   string `json:"unit"`
	Source string `json:"source"`
}

// Reading is one live sensor value. Value is nil when the last poll failed.
type Reading struct {
	Kind  string   `json:"kind"`
	Unit  string   `json:"unit"`
	Value *float64 `json:"value"`
}

type LiveSnapshot struct {
	UpdatedAt *time.Time `json:"updatedAt"`
	Readings  []Reading  `json:"readings"`
}

type Health struct {
	OK   bool      `json:"ok"`
	Time time.Time `json:"time"`
}

// Config is the server's public frontend configuration.
type Config struct {
	APIBaseURL string `json:"apiBaseUrl"`
	TilesURL   string `json:"tilesUrl"`
}

type Plot struct {
	ID            uint64     `json:"id"`
	Name          string     `json:"name"`
	Lat           float64    `json:"lat"`
	Lng           float64    `json:"lng"`
	AreaHa        float64    `json:"areaHa"`
	Status        string     `json:"status"`
	DeletedAt     *time.Time `json:"deletedAt"`
	CropID        *uint64    `json:"cropId"`
	ResponsibleID *uint64    `json:"responsibleId"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
	Crop          *Crop      `json:"crop"`
	Responsible   *User      `json:"responsible"`
}

// PlotInput creates a plot. Zero CropID and ResponsibleID leave the plot
// unassigned.
type PlotInput struct {
	Name          string  `json:"name"`
	Lat           float64 `json:"lat"`
	Lng           float64 `json:"lng"`
	AreaHa        float64 `json:"areaHa"`
	CropID        uint64  `json:"cropId,omitempty"`
	ResponsibleID uint64  `json:"responsibleId,omitempty"`
}

// PlotPatch is a partial update. Nil fields are not sent. ClearCrop and
// ClearResponsible send an explicit null, which disconnects the relation.
type PlotPatch struct {
	Name             *string
	Lat              *float64
	Lng              *float64
	AreaHa           *float64
	Status           *string
	CropID           *uint64
	ClearCrop        bool
	ResponsibleID    *uint64
	ClearResponsible bool
}

func (p PlotPatch) MarshalJSON() ([]byte, error) {
	body := map[string]any{}
	if p.Name != nil {
		body["name"] = *p.Name
	}
	if p.Lat != nil {
		body["lat"] = *p.Lat
	}
	if p.Lng != nil {
		body["lng"] = *p.Lng
	}
	if p.AreaHa != nil {
		body["areaHa"] = *p.AreaHa
	}
	if p.Status != nil {
		body["status"] = *p.Status
	}
	switch {
	case p.ClearCrop:
		body["cropId"] = nil
	case p.CropID != nil:
		body["cropId"] = *p.CropID
	}
	switch {
	case p.ClearResponsible:
		body["responsibleId"] = nil
	case p.ResponsibleID != nil:
		body["responsibleId"] = *p.ResponsibleID
	}
	return json.Marshal(body)
}

// AuthResult is returned by Register and Login.
type AuthResult struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}
