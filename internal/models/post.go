package models

// Post is a blog entry owned by a single user.
type Post struct {
	ID      int    `json:"id"`
	Title   string `json:"title"`
	Content string `json:"content"`
	// Published is schema-only; no operation sets it.
	Published bool `json:"-"`
	OwnerID   int  `json:"owner_id"`
}

// PostPatch is a partial update. Nil fields are left untouched.
type PostPatch struct {
	Title   *string
	Content *string
}

// Empty reports whether the patch has nothing to apply.
func (p PostPatch) Empty() bool {
	return p.Title == nil && p.Content == nil
}

// ApplyTo copies every non-nil field of the patch onto post.
func (p PostPatch) ApplyTo(post *Post) {
	if p.Title != nil {
		post.Title = *p.Title
	}
	if p.Content != nil {
		post.Content = *p.Content
	}
}
