package plex

// Section from GET /library/sections.
type Section struct {
	Key   string `json:"key"`
	Type  string `json:"type"` // "movie" or "show"
	Title string `json:"title"`
}

// Metadata from GET /library/sections/{key}/all and .../allLeaves.
type Metadata struct {
	RatingKey       string  `json:"ratingKey"`
	Title           string  `json:"title"`
	Type            string  `json:"type"`
	Year            int     `json:"year"`
	ViewCount       int     `json:"viewCount"`
	LeafCount       int     `json:"leafCount"`
	ViewedLeafCount int     `json:"viewedLeafCount"`
	Index           *int    `json:"index,omitempty"`
	ParentIndex     *int    `json:"parentIndex,omitempty"`
	Media           []Media `json:"Media,omitempty"`
}

// Media is one version of an item. More than one means a combined
// entry.
type Media struct {
	ID   int    `json:"id"`
	Part []Part `json:"Part,omitempty"`
}

// Part is one file backing a media version.
type Part struct {
	File string `json:"file"`
}

type sectionsResponse struct {
	MediaContainer struct {
		Directory []Section `json:"Directory"`
	} `json:"MediaContainer"`
}

type metadataResponse struct {
	MediaContainer struct {
		Metadata []Metadata `json:"Metadata"`
	} `json:"MediaContainer"`
}
