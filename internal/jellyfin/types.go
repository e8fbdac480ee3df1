package jellyfin

// SystemInfo from GET /System/Info.
type SystemInfo struct {
	ServerName      string `json:"ServerName"`
	Version         string `json:"Version"`
	ID              string `json:"Id"`
	OperatingSystem string `json:"OperatingSystem"`
}

// User from GET /Users.
type User struct {
	Name string `json:"Name"`
	ID   string `json:"Id"`
}

// Item from GET /Users/{userId}/Items.
type Item struct {
	ID             string        `json:"Id"`
	Name           string        `json:"Name"`
	Path           string        `json:"Path"`
	Type           string        `json:"Type"`
	ProductionYear int           `json:"ProductionYear"`
	IndexNumber    *int          `json:"IndexNumber,omitempty"`
	SeasonNumber   *int          `json:"ParentIndexNumber,omitempty"`
	UserData       *UserData     `json:"UserData,omitempty"`
	MediaSources   []MediaSource `json:"MediaSources,omitempty"`
}

// UserData carries per-user playback state.
type UserData struct {
	Played            bool `json:"Played"`
	UnplayedItemCount *int `json:"UnplayedItemCount,omitempty"`
}

// MediaSource is one file/version backing an item. More than one means
// a combined entry.
type MediaSource struct {
	ID   string `json:"Id"`
	Path string `json:"Path"`
}

// ItemsResponse from GET /Users/{userId}/Items.
type ItemsResponse struct {
	Items            []Item `json:"Items"`
	TotalRecordCount int    `json:"TotalRecordCount"`
}
