package models

// Dataset is the raw snapshot supplied by a data source.
type Dataset struct {
	Courses  []Course      `json:"courses" yaml:"courses"`
	Teachers []Teacher     `json:"teachers" yaml:"teachers"`
	Rooms    []Room        `json:"rooms" yaml:"rooms"`
	Classes  []ClassRecord `json:"classes" yaml:"classes"`
}

// Pagination describes a page of a longer listing.
type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalCount int `json:"total_count"`
}
