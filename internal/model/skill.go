package model

type SkillProgressResponse struct {
	Label   string  `json:"label"`
	Percent float64 `json:"percent"`
	Color   string  `json:"color"`
}

// SkillColor pairs a skill label with its chart color. All four skills share
// one progress fraction derived from curriculum completion.
type SkillColor struct {
	Label string
	Color string
}

var SkillColors = []SkillColor{
	{Label: "Nghe", Color: "#FF6B6B"},
	{Label: "Nói", Color: "#4ECDC4"},
	{Label: "Đọc", Color: "#95E1D3"},
	{Label: "Viết", Color: "#F38181"},
}
