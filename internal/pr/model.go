// Package pr defines the exported pull request data model and its loader
package pr

// Comment is a single inline or conversation comment left by a human reviewer
type Comment struct {
	UserLogin string `json:"user_login"`
	Body      string `json:"body"`
	Path      string `json:"path,omitempty"`
	Position  *int   `json:"position,omitempty"`
}

// Review is a top-level human review submission with its summary body
type Review struct {
	UserLogin string `json:"user_login"`
	Body      string `json:"body"`
}

// FileReview is a per-file section of an AI-generated review
type FileReview struct {
	Filename string `json:"filename"`
	Content  string `json:"content"`
}

// AIReview is a complete AI-generated review of a pull request
type AIReview struct {
	Summary     string       `json:"summary"`
	FileReviews []FileReview `json:"file_reviews"`
}

// Patch describes the diff of a single file changed by the pull request
type Patch struct {
	Filename  string `json:"filename"`
	Patch     string `json:"patch"`
	Additions int    `json:"additions"`
	Deletions int    `json:"deletions"`
	Status    string `json:"status"`
}

// PullRequest is one exported pull request with human and AI review data
type PullRequest struct {
	Number        int        `json:"number"`
	Title         string     `json:"title"`
	Comments      []Comment  `json:"comments"`
	GithubReviews []Review   `json:"github_reviews"`
	AIReviews     []AIReview `json:"ai_reviews"`
	Patches       []Patch    `json:"patches"`
}
