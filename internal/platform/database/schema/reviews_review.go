package schema

// ReviewsReviewTable represents the 'reviews.review' table
type ReviewsReviewTable struct {
	Table    string
	ID       string
	TitleID  string
	AuthorID string
	Text     string
	Score    string
	PubDate  string
}

// ReviewsReview is the schema definition for reviews.review
var ReviewsReview = ReviewsReviewTable{
	Table:    "reviews.review",
	ID:       "id",
	TitleID:  "titleid",
	AuthorID: "authorid",
	Text:     "text",
	Score:    "score",
	PubDate:  "pubdate",
}
