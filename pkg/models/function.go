package models

// FunctionRegion is a serverless function deployment that issues the
// benchmark queries. Static reference data.
type FunctionRegion struct {
	ID          int    `db:"id"           json:"id"`
	Name        string `db:"name"         json:"name"`
	RegionCode  string `db:"region_code"  json:"region_code"`
	RegionLabel string `db:"region_label" json:"region_label"`
	Platform    string `db:"platform"     json:"platform"`
}
