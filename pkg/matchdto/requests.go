package matchdto

// CalculateRequest carries the raw referee inputs. All fields are the
// untouched text from the input surface; coercion to numbers happens
// in the core, never here.
type CalculateRequest struct {
	StartTime string `json:"startTime"`
	Hours     string `json:"hours"`
	Minutes   string `json:"minutes"`
	Seconds   string `json:"seconds"`
}
