package schema

// ReviewsCommentTable represents the 'reviews.comment' table
type ReviewsCommentTable struct {
	Table    string
	ID       string
	ReviewID string
	AuthorID string
	Text     string
	PubDate  string
}

// ReviewsComment is the schema definition for reviews.comment
var ReviewsComment = ReviewsCommentTable{
	Table:    "reviews.comment",
	ID:       "id",
	ReviewID: "reviewid",
	AuthorID: "authorid",
	Text:     "text",
	PubDate:  "pubdate",
}
